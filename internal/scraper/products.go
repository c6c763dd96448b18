package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/zusdev/zus-scraper/internal/browser"
	"github.com/zusdev/zus-scraper/internal/models"
	"github.com/zusdev/zus-scraper/internal/parser"
	"github.com/zusdev/zus-scraper/internal/storage"
)

// ProductScraper collects the drinkware catalog: storefront home, tab
// click, collection sections, then one detail page per product.
type ProductScraper struct {
	browser    *browser.Browser
	parser     parser.Parser
	logger     *slog.Logger
	metrics    *Metrics
	maxRetries int
	baseDelay  time.Duration
}

func NewProductScraper(b *browser.Browser, p parser.Parser, metrics *Metrics, maxRetries int, baseDelay time.Duration) *ProductScraper {
	return &ProductScraper{
		browser:    b,
		parser:     p,
		logger:     slog.Default().With("component", "product_scraper"),
		metrics:    metrics,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
	}
}

// ScrapeCatalog scrapes every product reachable from the drinkware tab
// and appends one CSV row per product. A product page that cannot be
// parsed is logged and skipped; the batch keeps going.
func (s *ProductScraper) ScrapeCatalog(ctx context.Context, shopURL, csvPath string) error {
	page, err := s.browser.NewPage()
	if err != nil {
		return fmt.Errorf("failed to create page: %w", err)
	}
	defer page.Close()

	if err := s.browser.FetchWithRetry(page, shopURL, parser.DrinkwareTabSelector, s.maxRetries); err != nil {
		s.metrics.IncError("navigation")
		return fmt.Errorf("%w: %v", ErrPageNotLoaded, err)
	}
	s.metrics.IncPageFetched("storefront")

	// Second tab reveals the drinkware collections.
	if err := page.Locator(parser.DrinkwareTabSelector).Nth(1).Click(); err != nil {
		return fmt.Errorf("failed to open drinkware tab: %w", err)
	}
	time.Sleep(s.baseDelay)

	html, err := page.Content()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrContentUnreadable, err)
	}

	categories, err := s.parser.ExtractProductCategories(html)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCatalogNotFound, err)
	}
	s.logger.Info("found product categories", "count", len(categories))

	for _, category := range categories {
		for _, link := range category.Links {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			if err := s.scrapeProductPage(page, category.Title, link, csvPath); err != nil {
				s.logger.Error("product page failed", "url", link, "error", err)
				s.metrics.IncError("product")
				continue
			}
			s.metrics.IncItems("product", 1)
		}
	}

	return nil
}

func (s *ProductScraper) scrapeProductPage(page playwright.Page, category, link, csvPath string) error {
	if err := s.browser.FetchWithRetry(page, link, parser.ProductMarker, s.maxRetries); err != nil {
		return fmt.Errorf("%w: %v", ErrPageNotLoaded, err)
	}
	s.metrics.IncPageFetched("product")

	// The description sits behind an accordion; a scripted click opens
	// it even when an overlay intercepts the pointer.
	if clicked, err := page.Evaluate(parser.AccordionClickScript); err != nil {
		s.logger.Warn("failed to expand accordion", "url", link, "error", err)
	} else if opened, ok := clicked.(bool); !ok || !opened {
		s.logger.Warn("accordion summary not found", "url", link)
	} else {
		time.Sleep(time.Second)
	}

	html, err := page.Content()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrContentUnreadable, err)
	}

	product, err := s.parser.ExtractProduct(html, category)
	if err != nil {
		return fmt.Errorf("failed to extract product: %w", err)
	}

	if err := storage.AppendRow(csvPath, models.ProductHeader(), product.Row()); err != nil {
		return fmt.Errorf("failed to persist product %q: %w", product.Name, err)
	}

	s.logger.Info("scraped product", "name", product.Name, "category", category)
	time.Sleep(s.baseDelay)

	return nil
}
