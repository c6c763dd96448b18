package enrich

import (
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/playwright-community/playwright-go"

	"github.com/zusdev/zus-scraper/internal/browser"
	"github.com/zusdev/zus-scraper/internal/models"
	"github.com/zusdev/zus-scraper/internal/parser"
	"github.com/zusdev/zus-scraper/internal/scraper"
)

// Enricher fetches an outlet's map profile page and extracts place
// details. A profile whose marker element never appears after all
// retries yields nil details; the caller treats that as "enrichment
// unavailable", not as a fatal error.
type Enricher struct {
	browser    *browser.Browser
	parser     parser.Parser
	logger     *slog.Logger
	metrics    *scraper.Metrics
	maxRetries int
	cache      *lru.Cache[string, *models.PlaceDetails]
}

func NewEnricher(b *browser.Browser, p parser.Parser, metrics *scraper.Metrics, maxRetries, cacheSize int) (*Enricher, error) {
	if cacheSize < 2 {
		cacheSize = 2
	}

	cache, err := lru.New[string, *models.PlaceDetails](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create enrichment cache: %w", err)
	}

	return &Enricher{
		browser:    b,
		parser:     p,
		logger:     slog.Default().With("component", "enricher"),
		metrics:    metrics,
		maxRetries: maxRetries,
		cache:      cache,
	}, nil
}

// Enrich returns the place details for profileURL, or nil when the
// profile could not be loaded. Repeated links within a run are served
// from the cache instead of re-navigating.
func (e *Enricher) Enrich(page playwright.Page, profileURL string) *models.PlaceDetails {
	if details, ok := e.cache.Get(profileURL); ok {
		e.metrics.IncEnrichment("cached")
		return details
	}

	if err := e.browser.FetchWithRetry(page, profileURL, parser.HoursMarker, e.maxRetries); err != nil {
		e.logger.Warn("profile page unavailable", "url", profileURL, "error", err)
		e.metrics.IncEnrichment("failed")
		return nil
	}
	e.metrics.IncPageFetched("profile")

	html, err := page.Content()
	if err != nil {
		e.logger.Warn("profile content unreadable", "url", profileURL, "error", err)
		e.metrics.IncEnrichment("failed")
		return nil
	}

	details, err := e.parser.ExtractPlaceDetails(html)
	if err != nil {
		e.logger.Warn("profile extraction failed", "url", profileURL, "error", err)
		e.metrics.IncEnrichment("failed")
		return nil
	}

	e.cache.Add(profileURL, details)
	e.metrics.IncEnrichment("ok")

	return details
}
