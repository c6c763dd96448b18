package parser

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/zusdev/zus-scraper/internal/models"
)

const (
	// HoursMarker is the weekly-hours block; its presence signals that a
	// place profile page finished loading.
	HoursMarker = "div.t39EBf"

	addressSelector     = `button[data-item-id="address"] div.fontBodyMedium`
	phoneSelector       = `button[data-item-id^="phone:tel:"] div.fontBodyMedium`
	reviewsCountSel     = `div.TIHn2 div.fontBodyMedium.dmRWX span[aria-label]`
	reviewsAverageSel   = `div.TIHn2 div.fontBodyMedium.dmRWX span[aria-hidden]`
	servicesSelector    = `div.LTs0Rc div[aria-hidden="true"]`
	placeTypeSelector   = `div.LBgpqf button.DkEaL`
	hoursRowSelector    = "table.eK4R0e tr.y0skZc button.mWUh3d"
	hoursValueAttribute = "data-value"
)

var weekdayOrder = map[string]int{
	"Monday":    0,
	"Tuesday":   1,
	"Wednesday": 2,
	"Thursday":  3,
	"Friday":    4,
	"Saturday":  5,
	"Sunday":    6,
}

// ExtractPlaceDetails reads the fixed attribute set from a place
// profile page. Each field is extracted independently; one miss never
// aborts the rest, and numeric parse failures leave the field unset
// with a logged warning.
func (p *ZUSParser) ExtractPlaceDetails(html string) (*models.PlaceDetails, error) {
	doc, err := p.document(html)
	if err != nil {
		return nil, err
	}

	details := &models.PlaceDetails{
		Address:     safeText(doc, addressSelector),
		PhoneNumber: safeText(doc, phoneSelector),
		Services:    p.extractServices(doc),
		PlaceType:   safeText(doc, placeTypeSelector),
		OpensAt:     p.extractWeeklyHours(doc),
	}

	if raw := safeText(doc, reviewsCountSel); raw != "" {
		count, err := ParseReviewsCount(raw)
		if err != nil {
			p.logger.Warn("failed to parse reviews count", "raw", raw, "error", err)
		} else {
			details.ReviewsCount = &count
		}
	}

	if raw := safeText(doc, reviewsAverageSel); raw != "" {
		average, err := ParseReviewsAverage(raw)
		if err != nil {
			p.logger.Warn("failed to parse reviews average", "raw", raw, "error", err)
		} else {
			details.ReviewsAverage = &average
		}
	}

	return details, nil
}

func (p *ZUSParser) extractServices(doc *goquery.Document) string {
	var tags []string

	doc.Find(servicesSelector).Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(stripGlyphs(sel.Text())); text != "" {
			tags = append(tags, text)
		}
	})

	return strings.Join(tags, ", ")
}

func (p *ZUSParser) extractWeeklyHours(doc *goquery.Document) string {
	var entries []string

	doc.Find(hoursRowSelector).Each(func(_ int, sel *goquery.Selection) {
		value, ok := sel.Attr(hoursValueAttribute)
		if !ok {
			return
		}
		// The provider embeds narrow no-break spaces inside the ranges.
		value = strings.ReplaceAll(value, " ", "")
		if value = strings.TrimSpace(value); value != "" {
			entries = append(entries, value)
		}
	})

	return strings.Join(SortWeeklyHours(entries), ", ")
}

// SortWeeklyHours orders "Day, hours" entries Monday first. Entries
// whose day label is not a recognized weekday sort after all recognized
// days, keeping their original relative order.
func SortWeeklyHours(entries []string) []string {
	sorted := make([]string, len(entries))
	copy(sorted, entries)

	sort.SliceStable(sorted, func(i, j int) bool {
		return weekdayRank(sorted[i]) < weekdayRank(sorted[j])
	})

	return sorted
}

func weekdayRank(entry string) int {
	day, _, _ := strings.Cut(entry, ",")
	if rank, ok := weekdayOrder[strings.TrimSpace(day)]; ok {
		return rank
	}
	return len(weekdayOrder)
}

// ParseReviewsCount normalizes a raw count such as "(1,234)" to an
// integer, stripping non-breaking spaces, parentheses and thousands
// separators.
func ParseReviewsCount(raw string) (int, error) {
	cleaned := strings.NewReplacer(
		" ", "",
		"(", "",
		")", "",
		",", "",
	).Replace(raw)

	count, err := strconv.Atoi(strings.TrimSpace(cleaned))
	if err != nil {
		return 0, fmt.Errorf("invalid reviews count %q: %w", raw, err)
	}
	if count < 0 {
		return 0, fmt.Errorf("negative reviews count %q", raw)
	}

	return count, nil
}

// ParseReviewsAverage normalizes a raw rating such as "4,5" to a float,
// stripping spaces and converting the decimal comma.
func ParseReviewsAverage(raw string) (float64, error) {
	cleaned := strings.NewReplacer(
		" ", "",
		" ", "",
		",", ".",
	).Replace(raw)

	average, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid reviews average %q: %w", raw, err)
	}
	if average < 0 || average > 5 {
		return 0, fmt.Errorf("reviews average %q out of range", raw)
	}

	return average, nil
}
