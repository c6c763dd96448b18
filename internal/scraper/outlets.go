package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/zusdev/zus-scraper/internal/browser"
	"github.com/zusdev/zus-scraper/internal/models"
	"github.com/zusdev/zus-scraper/internal/parser"
	"github.com/zusdev/zus-scraper/internal/storage"
)

// OutletScraper walks the paginated outlet directory and persists one
// CSV row per discovered outlet.
type OutletScraper struct {
	browser    *browser.Browser
	parser     parser.Parser
	logger     *slog.Logger
	metrics    *Metrics
	maxRetries int
	baseDelay  time.Duration
}

func NewOutletScraper(b *browser.Browser, p parser.Parser, metrics *Metrics, maxRetries int, baseDelay time.Duration) *OutletScraper {
	return &OutletScraper{
		browser:    b,
		parser:     p,
		logger:     slog.Default().With("component", "outlet_scraper"),
		metrics:    metrics,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
	}
}

// ScrapePage fetches one directory page and extracts its outlet
// listings. A page that never shows the posts container after all
// retries is an error; the caller decides whether to continue.
func (s *OutletScraper) ScrapePage(ctx context.Context, page playwright.Page, pageURL string) ([]models.OutletListing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := s.browser.FetchWithRetry(page, pageURL, parser.OutletsMarker, s.maxRetries); err != nil {
		s.metrics.IncError("navigation")
		return nil, fmt.Errorf("%w: %s: %v", ErrPageNotLoaded, pageURL, err)
	}
	s.metrics.IncPageFetched("outlets")

	html, err := page.Content()
	if err != nil {
		s.metrics.IncError("content")
		return nil, fmt.Errorf("%w: %v", ErrContentUnreadable, err)
	}

	outlets, err := s.parser.ExtractOutlets(html)
	if err != nil {
		s.metrics.IncError("extract")
		return nil, fmt.Errorf("failed to extract outlets: %w", err)
	}

	s.logger.Info("extracted outlets", "url", pageURL, "count", len(outlets))
	return outlets, nil
}

// ScrapeDirectory scrapes pages [pageFrom, pageTo) of the directory,
// appending rows to csvPath. Failed pages are collected and returned so
// the operator can re-run just those, matching the end-of-run report
// the enrichment pass produces for profile links.
func (s *OutletScraper) ScrapeDirectory(ctx context.Context, baseURL string, pageFrom, pageTo int, csvPath string) ([]int, error) {
	page, err := s.browser.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	defer page.Close()

	var failedPages []int

	for n := pageFrom; n < pageTo; n++ {
		select {
		case <-ctx.Done():
			return failedPages, ctx.Err()
		default:
		}

		pageURL := fmt.Sprintf("%s%d", baseURL, n)
		s.logger.Info("scraping directory page", "page", n, "url", pageURL)

		outlets, err := s.ScrapePage(ctx, page, pageURL)
		if err != nil {
			s.logger.Error("directory page failed", "page", n, "error", err)
			failedPages = append(failedPages, n)
			continue
		}

		for _, outlet := range outlets {
			if err := storage.AppendRow(csvPath, models.OutletHeader(), outlet.Row()); err != nil {
				return failedPages, fmt.Errorf("failed to persist outlet %q: %w", outlet.Name, err)
			}
		}
		s.metrics.IncItems("outlet", len(outlets))

		time.Sleep(s.baseDelay)
	}

	return failedPages, nil
}
