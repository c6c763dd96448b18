package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/zusdev/zus-scraper/internal/models"
	"github.com/zusdev/zus-scraper/internal/storage"
)

// PageOpener creates browser pages; browser.Browser implements it.
type PageOpener interface {
	NewPage() (playwright.Page, error)
}

// PlaceEnricher yields the place details for a profile link, or nil
// when the profile could not be loaded.
type PlaceEnricher interface {
	Enrich(page playwright.Page, profileURL string) *models.PlaceDetails
}

// Pipeline runs enrichment over a batch of outlet listings: fetch the
// profile, reconcile, persist. Rows are only written fully assembled,
// so an interrupted run never leaves a partial row behind.
type Pipeline struct {
	pages     PageOpener
	enricher  PlaceEnricher
	logger    *slog.Logger
	baseDelay time.Duration
}

func NewPipeline(pages PageOpener, e PlaceEnricher, baseDelay time.Duration) *Pipeline {
	return &Pipeline{
		pages:     pages,
		enricher:  e,
		logger:    slog.Default().With("component", "enrich_pipeline"),
		baseDelay: baseDelay,
	}
}

// Run enriches every listing and appends one reconciled row per listing
// to csvPath. Profile links whose enrichment failed are returned so the
// operator can re-run just those.
func (p *Pipeline) Run(ctx context.Context, listings []models.OutletListing, csvPath string) ([]string, error) {
	page, err := p.pages.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	defer page.Close()

	var failedLinks []string

	for i, listing := range listings {
		select {
		case <-ctx.Done():
			return failedLinks, ctx.Err()
		default:
		}

		p.logger.Info("enriching outlet", "index", i, "name", listing.Name, "url", listing.ProfileLink)

		var details *models.PlaceDetails
		if listing.ProfileLink != "" {
			details = p.enricher.Enrich(page, listing.ProfileLink)
		}
		if details == nil {
			p.logger.Warn("enrichment unavailable, keeping primary data", "name", listing.Name)
			if listing.ProfileLink != "" {
				failedLinks = append(failedLinks, listing.ProfileLink)
			}
		}

		row := Reconcile(listing, details)
		if err := storage.AppendRow(csvPath, models.EnrichedOutletHeader(), row.Row()); err != nil {
			return failedLinks, fmt.Errorf("failed to persist enriched outlet %q: %w", listing.Name, err)
		}

		time.Sleep(p.baseDelay)
	}

	return failedLinks, nil
}

// ListingsFromRows converts CSV rows (name, address, link) back into
// outlet listings, skipping rows that are too short to carry a name.
func ListingsFromRows(rows [][]string) []models.OutletListing {
	listings := make([]models.OutletListing, 0, len(rows))

	for _, row := range rows {
		if len(row) < 1 || row[0] == "" {
			continue
		}

		listing := models.OutletListing{Name: row[0]}
		if len(row) > 1 {
			listing.Address = row[1]
		}
		if len(row) > 2 {
			listing.ProfileLink = row[2]
		}

		listings = append(listings, listing)
	}

	return listings
}
