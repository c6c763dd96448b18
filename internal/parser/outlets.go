package parser

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/zusdev/zus-scraper/internal/models"
)

const (
	// OutletsMarker signals that a directory listing page finished loading.
	OutletsMarker = "div.elementor-posts-container"

	outletArticleSelector = "article.elementor-post"
	outletTextSelector    = ".elementor-widget-container p"
	outletLinkSelector    = `a.premium-button-none.premium-btn-lg[target="_blank"]`
)

// ExtractOutlets reads every outlet listing block on a directory page.
// A listing with extraction failures degrades to empty fields; listings
// without a name are dropped because they cannot be enriched or joined
// against anything later.
func (p *ZUSParser) ExtractOutlets(html string) ([]models.OutletListing, error) {
	doc, err := p.document(html)
	if err != nil {
		return nil, err
	}

	container := doc.Find(OutletsMarker).First()
	if container.Length() == 0 {
		return nil, fmt.Errorf("outlet container %q not found", OutletsMarker)
	}

	var outlets []models.OutletListing

	container.Find(outletArticleSelector).Each(func(i int, article *goquery.Selection) {
		paragraphs := article.Find(outletTextSelector)

		name := cleanLine(paragraphs.Eq(0).Text())
		address := cleanLine(paragraphs.Eq(1).Text())
		link := article.Find(outletLinkSelector).First().AttrOr("href", "")

		if name == "" {
			p.logger.Warn("skipping outlet without a name", "index", i)
			return
		}

		outlets = append(outlets, models.OutletListing{
			Name:        name,
			Address:     address,
			ProfileLink: link,
		})
	})

	return outlets, nil
}
