package enrich

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/zusdev/zus-scraper/internal/models"
)

// minTrustedAddressLen is the shortest primary address accepted as-is;
// anything shorter is assumed truncated or garbled.
const minTrustedAddressLen = 10

// Reconcile merges a primary listing with its enrichment result. With
// nil details every enrichment column carries the placeholder and the
// primary address stays untouched. Otherwise the address-quality
// heuristic decides which address wins and empty enrichment fields
// degrade to the placeholder.
func Reconcile(primary models.OutletListing, details *models.PlaceDetails) models.EnrichedOutlet {
	out := models.EnrichedOutlet{
		Name:           primary.Name,
		Address:        primary.Address,
		ProfileLink:    primary.ProfileLink,
		ReviewsCount:   models.Placeholder,
		ReviewsAverage: models.Placeholder,
		PhoneNumber:    models.Placeholder,
		Services:       models.Placeholder,
		PlaceType:      models.Placeholder,
		OpensAt:        models.Placeholder,
	}

	if details == nil {
		return out
	}

	out.Address = resolveAddress(primary.Address, details.Address)
	out.PhoneNumber = orPlaceholder(details.PhoneNumber)
	out.Services = orPlaceholder(details.Services)
	out.PlaceType = orPlaceholder(details.PlaceType)
	out.OpensAt = orPlaceholder(details.OpensAt)

	if details.ReviewsCount != nil {
		out.ReviewsCount = strconv.Itoa(*details.ReviewsCount)
	}
	if details.ReviewsAverage != nil {
		out.ReviewsAverage = strconv.FormatFloat(*details.ReviewsAverage, 'f', -1, 64)
	}

	return out
}

// resolveAddress applies the address-quality heuristic: a garbled or
// too-short primary address loses to the enrichment address, as does a
// primary address that is literally the placeholder when the
// enrichment produced a real one.
func resolveAddress(primary, enriched string) string {
	if strings.ContainsRune(primary, utf8.RuneError) || utf8.RuneCountInString(primary) < minTrustedAddressLen {
		return enriched
	}
	if primary == models.Placeholder && enriched != models.Placeholder {
		return enriched
	}
	return primary
}

func orPlaceholder(s string) string {
	if s == "" {
		return models.Placeholder
	}
	return s
}
