package parser

import (
	"github.com/zusdev/zus-scraper/internal/models"
)

// Parser extracts retail records from rendered page HTML. Implementations
// never fail on a missing field; only a wholly unreadable page is an error.
type Parser interface {
	ExtractOutlets(html string) ([]models.OutletListing, error)
	ExtractPlaceDetails(html string) (*models.PlaceDetails, error)
	ExtractProductCategories(html string) ([]ProductCategory, error)
	ExtractProduct(html, category string) (*models.Product, error)
}
