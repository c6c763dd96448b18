package parser

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ZUSParser implements Parser for the ZUS storefront, the outlet
// directory and the map provider's place profile pages.
type ZUSParser struct {
	logger *slog.Logger
}

func NewZUSParser() *ZUSParser {
	return &ZUSParser{
		logger: slog.Default().With("component", "parser"),
	}
}

func (p *ZUSParser) document(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// safeText returns the trimmed text of the first match, or "" when the
// selector matches nothing. Field-level misses are never errors.
func safeText(doc *goquery.Document, selector string) string {
	return strings.TrimSpace(doc.Find(selector).First().Text())
}

// safeAttr returns the named attribute of the first match, or "".
func safeAttr(doc *goquery.Document, selector, attr string) string {
	return strings.TrimSpace(doc.Find(selector).First().AttrOr(attr, ""))
}

// cleanLine collapses a multi-line element text into one line.
func cleanLine(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\n", ""))
}

// stripGlyphs removes icon glyphs from the Unicode private use area
// that the map provider embeds next to service labels.
func stripGlyphs(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 0xE000 && r <= 0xF8FF {
			return -1
		}
		return r
	}, s)
}
