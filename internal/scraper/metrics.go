package scraper

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for the scraping pipeline.
type Metrics struct {
	Registry          *prometheus.Registry
	PagesFetchedTotal *prometheus.CounterVec
	ItemsScrapedTotal *prometheus.CounterVec
	EnrichmentsTotal  *prometheus.CounterVec
	ErrorsTotal       *prometheus.CounterVec
}

// NewMetrics constructs and registers all collectors on a dedicated
// registry so tests never collide on the global one.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	pagesFetched := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zus_scraper_pages_fetched_total",
			Help: "Total pages fetched through the browser session.",
		},
		[]string{"phase"},
	)
	itemsScraped := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zus_scraper_items_scraped_total",
			Help: "Total records extracted and persisted.",
		},
		[]string{"kind"},
	)
	enrichments := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zus_scraper_enrichments_total",
			Help: "Total place-details enrichment attempts by outcome.",
		},
		[]string{"outcome"},
	)
	errorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zus_scraper_errors_total",
			Help: "Total scraper errors by type.",
		},
		[]string{"error_type"},
	)

	registry.MustRegister(pagesFetched, itemsScraped, enrichments, errorsTotal)

	return &Metrics{
		Registry:          registry,
		PagesFetchedTotal: pagesFetched,
		ItemsScrapedTotal: itemsScraped,
		EnrichmentsTotal:  enrichments,
		ErrorsTotal:       errorsTotal,
	}
}

func (m *Metrics) IncPageFetched(phase string) {
	if m == nil {
		return
	}
	m.PagesFetchedTotal.WithLabelValues(phase).Inc()
}

func (m *Metrics) IncItems(kind string, n int) {
	if m == nil {
		return
	}
	m.ItemsScrapedTotal.WithLabelValues(kind).Add(float64(n))
}

func (m *Metrics) IncEnrichment(outcome string) {
	if m == nil {
		return
	}
	m.EnrichmentsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncError(errorType string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(errorType).Inc()
}
