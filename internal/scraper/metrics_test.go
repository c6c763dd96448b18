package scraper

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.IncPageFetched("outlets")
	m.IncPageFetched("outlets")
	m.IncItems("outlet", 14)
	m.IncEnrichment("cached")
	m.IncError("navigation")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.PagesFetchedTotal.WithLabelValues("outlets")))
	assert.Equal(t, 14.0, testutil.ToFloat64(m.ItemsScrapedTotal.WithLabelValues("outlet")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EnrichmentsTotal.WithLabelValues("cached")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ErrorsTotal.WithLabelValues("navigation")))
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncPageFetched("outlets")
		m.IncItems("outlet", 1)
		m.IncEnrichment("ok")
		m.IncError("content")
	})
}
