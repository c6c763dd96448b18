package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/zusdev/zus-scraper/internal/models"
)

const (
	// ProductMarker signals that a product detail page finished loading.
	ProductMarker = "h1.product-info__title"

	// DrinkwareTabSelector is the storefront tab that reveals the
	// drinkware collections; the scraper clicks it before extraction.
	DrinkwareTabSelector = "x-tabs button"

	tabContentSelector       = "div.tab-content"
	categoryTitleSelector    = `div[class*="collection_title"]`
	categoryWrapperSelector  = `div[class*="collection_wrapper"]`
	productLinkSelector      = ".product-card__figure a"
	productImageSelector     = `.product-gallery__media.is-selected img[src*="files/"]`
	productPriceSelector     = "sale-price.text-lg"
	productColorSelector     = "label.thumbnail-swatch .sr-only"
	productDescriptionSel    = ".accordion__content .prose"
)

var priceRe = regexp.MustCompile(`\d+\.\d{2}`)

// ProductCategory groups the product links found under one collection
// heading on the storefront.
type ProductCategory struct {
	Title string
	Links []string
}

// ExtractProductCategories pairs collection titles with the product
// links inside the matching wrapper. A category whose wrapper cannot be
// read keeps an empty link list rather than failing the page.
func (p *ZUSParser) ExtractProductCategories(html string) ([]ProductCategory, error) {
	doc, err := p.document(html)
	if err != nil {
		return nil, err
	}

	tab := doc.Find(tabContentSelector).First()
	if tab.Length() == 0 {
		return nil, fmt.Errorf("tab content %q not found", tabContentSelector)
	}

	titles := tab.Find(categoryTitleSelector)
	wrappers := tab.Find(categoryWrapperSelector)

	var categories []ProductCategory

	titles.Each(func(i int, title *goquery.Selection) {
		category := ProductCategory{Title: strings.TrimSpace(title.Text())}

		if i < wrappers.Length() {
			wrappers.Eq(i).Find(productLinkSelector).Each(func(_ int, a *goquery.Selection) {
				if href := a.AttrOr("href", ""); href != "" {
					category.Links = append(category.Links, href)
				}
			})
		} else {
			p.logger.Warn("no wrapper for category", "category", category.Title)
		}

		categories = append(categories, category)
	})

	return categories, nil
}

// ExtractProduct reads one product detail page. Name and price are
// required; every other field safe-extracts to empty.
func (p *ZUSParser) ExtractProduct(html, category string) (*models.Product, error) {
	doc, err := p.document(html)
	if err != nil {
		return nil, err
	}

	name := safeText(doc, ProductMarker)
	if name == "" {
		return nil, fmt.Errorf("product title not found")
	}

	priceText := safeText(doc, productPriceSelector)
	match := priceRe.FindString(priceText)
	if match == "" {
		return nil, fmt.Errorf("no price in %q", priceText)
	}
	price, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid price %q: %w", match, err)
	}

	var colors []string
	doc.Find(productColorSelector).Each(func(_ int, sel *goquery.Selection) {
		// Swatch labels shorter than three runes are icon shorthand,
		// not color names.
		if label := strings.TrimSpace(sel.Text()); len([]rune(label)) > 2 {
			colors = append(colors, label)
		}
	})

	return &models.Product{
		Category:    category,
		Name:        name,
		Image:       safeAttr(doc, productImageSelector, "src"),
		Colors:      strings.Join(colors, ", "),
		Price:       price,
		Description: safeText(doc, productDescriptionSel),
	}, nil
}

// AccordionClickScript force-clicks the description accordion the way a
// user would; the summary element sits behind an overlay so a plain
// click can miss.
const AccordionClickScript = `() => {
	const summary = document.querySelector("details.product-info__accordion > summary");
	if (!summary) {
		return false;
	}
	summary.scrollIntoView();
	summary.click();
	return true;
}`
