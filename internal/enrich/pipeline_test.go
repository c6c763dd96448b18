package enrich

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zusdev/zus-scraper/internal/models"
	"github.com/zusdev/zus-scraper/internal/storage"
)

type stubPage struct{ playwright.Page }

func (stubPage) Close(...playwright.PageCloseOptions) error { return nil }

type stubOpener struct{}

func (stubOpener) NewPage() (playwright.Page, error) { return stubPage{}, nil }

// stubEnricher resolves profile links from a fixed map; unknown links
// behave like profiles whose marker never appeared.
type stubEnricher struct {
	details map[string]*models.PlaceDetails
}

func (s *stubEnricher) Enrich(_ playwright.Page, profileURL string) *models.PlaceDetails {
	return s.details[profileURL]
}

func TestPipelineRunCollectsFailedLinksAndWritesPlaceholders(t *testing.T) {
	phone := "+60 12-345 6789"
	csvPath := filepath.Join(t.TempDir(), "outlets_final.csv")

	enricher := &stubEnricher{details: map[string]*models.PlaceDetails{
		"https://maps.example.com/klcc": {
			Address:     "Suria KLCC, 50088 Kuala Lumpur",
			PhoneNumber: phone,
			PlaceType:   "Coffee shop",
		},
	}}

	listings := []models.OutletListing{
		{Name: "ZUS Coffee KLCC", Address: "Suria KLCC, 50088 Kuala Lumpur", ProfileLink: "https://maps.example.com/klcc"},
		{Name: "ZUS Coffee Bangsar", Address: "Jalan Telawi 3, 59100 Kuala Lumpur", ProfileLink: "https://maps.example.com/gone"},
		{Name: "ZUS Coffee Cyberjaya", Address: "Persiaran Multimedia, 63000 Cyberjaya"},
	}

	pipeline := NewPipeline(stubOpener{}, enricher, 0)

	failedLinks, err := pipeline.Run(context.Background(), listings, csvPath)
	require.NoError(t, err)

	// Only the link whose profile never loaded lands in the failed
	// list; the listing without a link is not a failure.
	assert.Equal(t, []string{"https://maps.example.com/gone"}, failedLinks)

	header, rows, err := storage.ReadRows(csvPath)
	require.NoError(t, err)
	assert.Equal(t, models.EnrichedOutletHeader(), header)
	require.Len(t, rows, 3)

	assert.Equal(t, "ZUS Coffee KLCC", rows[0][0])
	assert.Equal(t, phone, rows[0][5])
	assert.Equal(t, "Coffee shop", rows[0][7])

	// The failed profile still produces a full row, with every
	// enrichment column carrying the placeholder.
	assert.Equal(t, "ZUS Coffee Bangsar", rows[1][0])
	assert.Equal(t, "Jalan Telawi 3, 59100 Kuala Lumpur", rows[1][1])
	for _, col := range rows[1][3:] {
		assert.Equal(t, models.Placeholder, col)
	}

	for _, col := range rows[2][3:] {
		assert.Equal(t, models.Placeholder, col)
	}
}

func TestPipelineRunStopsOnCancelledContext(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "outlets_final.csv")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pipeline := NewPipeline(stubOpener{}, &stubEnricher{}, 0)

	_, err := pipeline.Run(ctx, []models.OutletListing{{Name: "ZUS Coffee KLCC"}}, csvPath)
	assert.ErrorIs(t, err, context.Canceled)
}
