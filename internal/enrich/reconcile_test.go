package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zusdev/zus-scraper/internal/models"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestReconcileWithNilDetails(t *testing.T) {
	primary := models.OutletListing{
		Name:        "ZUS KLCC",
		Address:     "Lot 12, Suria KLCC, Kuala Lumpur City Centre",
		ProfileLink: "https://maps.example.com/1",
	}

	out := Reconcile(primary, nil)

	assert.Equal(t, primary.Name, out.Name)
	assert.Equal(t, primary.Address, out.Address)
	assert.Equal(t, primary.ProfileLink, out.ProfileLink)

	for _, field := range []string{
		out.ReviewsCount, out.ReviewsAverage, out.PhoneNumber,
		out.Services, out.PlaceType, out.OpensAt,
	} {
		assert.Equal(t, models.Placeholder, field)
	}
}

func TestReconcileAddressHeuristic(t *testing.T) {
	longAddress := "Lot 12, Level 2, Suria KLCC, Kuala Lumpur City Centre"
	enriched := "12, Jalan Ampang, 50450 Kuala Lumpur"

	tests := []struct {
		name     string
		primary  string
		expected string
	}{
		{name: "short primary loses", primary: "KLCC,", expected: enriched},
		{name: "garbled primary loses", primary: "Lot 12, Suria ��, Kuala Lumpur", expected: enriched},
		{name: "placeholder primary loses", primary: "N/A", expected: enriched},
		{name: "long clean primary wins", primary: longAddress, expected: longAddress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Reconcile(
				models.OutletListing{Name: "ZUS", Address: tt.primary},
				&models.PlaceDetails{Address: enriched},
			)
			assert.Equal(t, tt.expected, out.Address)
		})
	}
}

func TestReconcileFillsEnrichmentFields(t *testing.T) {
	details := &models.PlaceDetails{
		Address:        "12, Jalan Ampang, 50450 Kuala Lumpur",
		PhoneNumber:    "+60 12-345 6789",
		ReviewsCount:   intPtr(1234),
		ReviewsAverage: floatPtr(4.6),
		Services:       "Dine-in, Takeaway",
		PlaceType:      "Coffee shop",
		OpensAt:        "Monday, 8am–10pm",
	}

	out := Reconcile(models.OutletListing{Name: "ZUS", Address: "Jalan Telawi 2, Bangsar Baru"}, details)

	assert.Equal(t, "1234", out.ReviewsCount)
	assert.Equal(t, "4.6", out.ReviewsAverage)
	assert.Equal(t, "+60 12-345 6789", out.PhoneNumber)
	assert.Equal(t, "Dine-in, Takeaway", out.Services)
	assert.Equal(t, "Coffee shop", out.PlaceType)
	assert.Equal(t, "Monday, 8am–10pm", out.OpensAt)
}

func TestReconcileEmptyEnrichmentFieldsGetPlaceholder(t *testing.T) {
	out := Reconcile(
		models.OutletListing{Name: "ZUS", Address: "Jalan Telawi 2, Bangsar Baru"},
		&models.PlaceDetails{Address: "somewhere long enough"},
	)

	assert.Equal(t, models.Placeholder, out.ReviewsCount)
	assert.Equal(t, models.Placeholder, out.ReviewsAverage)
	assert.Equal(t, models.Placeholder, out.PhoneNumber)
	assert.Equal(t, models.Placeholder, out.Services)
	assert.Equal(t, models.Placeholder, out.PlaceType)
	assert.Equal(t, models.Placeholder, out.OpensAt)
}

func TestListingsFromRows(t *testing.T) {
	rows := [][]string{
		{"ZUS KLCC", "Suria KLCC", "https://maps.example.com/1"},
		{"", "orphan address", "https://maps.example.com/2"},
		{"ZUS Subang", "SS15"},
	}

	listings := ListingsFromRows(rows)

	assert.Len(t, listings, 2)
	assert.Equal(t, "https://maps.example.com/1", listings[0].ProfileLink)
	assert.Equal(t, "", listings[1].ProfileLink)
}
