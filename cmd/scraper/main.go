package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/zusdev/zus-scraper/internal/browser"
	"github.com/zusdev/zus-scraper/internal/config"
	"github.com/zusdev/zus-scraper/internal/enrich"
	"github.com/zusdev/zus-scraper/internal/parser"
	"github.com/zusdev/zus-scraper/internal/scraper"
	"github.com/zusdev/zus-scraper/internal/storage"
)

// main only converts run's exit code; everything that registers a defer
// lives inside run, so cleanup fires on every path.
func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("scraper", flag.ExitOnError)
	var (
		products = fs.Bool("products", false, "Scrape the drinkware catalog")
		outlets  = fs.Bool("outlets", false, "Scrape the outlet directory")
		doEnrich = fs.Bool("enrich", false, "Enrich scraped outlets with place details")
		sqldump  = fs.Bool("sqldump", false, "Generate SQL dumps from the CSV files")
		pages    = fs.String("pages", "1-22", "Outlet directory page range, e.g. 1-22")
		headless = fs.Bool("headless", true, "Run browser in headless mode")
	)
	fs.Parse(args)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		return 1
	}

	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)

	if !*products && !*outlets && !*doEnrich && !*sqldump {
		fmt.Println("Nothing to do. Use -products, -outlets, -enrich or -sqldump.")
		fs.Usage()
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("shutdown signal received")
		cancel()
	}()

	paths := dataPaths(cfg.Scraper.DataDir)

	if *sqldump && !*products && !*outlets && !*doEnrich {
		// Pure export run, no browser needed.
		if err := exportDumps(logger, paths); err != nil {
			return 1
		}
		return 0
	}

	b, err := browser.New(&browser.Options{
		Headless:       *headless && cfg.Browser.Headless,
		Timeout:        cfg.Browser.Timeout,
		ViewportWidth:  cfg.Browser.ViewportWidth,
		ViewportHeight: cfg.Browser.ViewportHeight,
		AcceptLanguage: cfg.Browser.AcceptLanguage,
		TimezoneID:     cfg.Browser.TimezoneID,
		Locale:         cfg.Browser.Locale,
	})
	if err != nil {
		logger.Error("failed to initialize browser", "error", err)
		return 1
	}
	defer b.Close()

	p := parser.NewZUSParser()
	metrics := scraper.NewMetrics()
	report := storage.NewRunReport(filepath.Join(cfg.Scraper.DataDir, "run_report.json"))

	exitCode := 0

	if *products {
		logger.Info("scraping product catalog", "url", cfg.Scraper.ShopURL)
		ps := scraper.NewProductScraper(b, p, metrics, cfg.Scraper.MaxRetries, cfg.Scraper.BaseDelay)
		if err := ps.ScrapeCatalog(ctx, cfg.Scraper.ShopURL, paths.productsCSV); err != nil {
			logger.Error("product scrape failed", "error", err)
			exitCode = 1
		}
	}

	if *outlets && ctx.Err() == nil {
		pageFrom, pageTo, err := parsePageRange(*pages)
		if err != nil {
			logger.Error("invalid page range", "pages", *pages, "error", err)
			return 1
		}

		logger.Info("scraping outlet directory", "url", cfg.Scraper.OutletsURL, "from", pageFrom, "to", pageTo)
		osc := scraper.NewOutletScraper(b, p, metrics, cfg.Scraper.MaxRetries, cfg.Scraper.BaseDelay)
		failedPages, err := osc.ScrapeDirectory(ctx, cfg.Scraper.OutletsURL, pageFrom, pageTo+1, paths.outletsCSV)
		if err != nil {
			logger.Error("outlet scrape failed", "error", err)
			exitCode = 1
		}
		report.AddFailedPages(failedPages)
	}

	if *doEnrich && ctx.Err() == nil {
		_, rows, err := storage.ReadRows(paths.outletsCSV)
		if err != nil {
			logger.Error("failed to read outlet listings", "path", paths.outletsCSV, "error", err)
			exitCode = 1
		} else {
			listings := enrich.ListingsFromRows(rows)
			logger.Info("enriching outlets", "count", len(listings))

			enricher, err := enrich.NewEnricher(b, p, metrics, cfg.Scraper.MaxRetries, cfg.Scraper.EnrichedCache)
			if err != nil {
				logger.Error("failed to initialize enricher", "error", err)
				return 1
			}

			pipeline := enrich.NewPipeline(b, enricher, cfg.Scraper.BaseDelay)
			failedLinks, err := pipeline.Run(ctx, listings, paths.enrichedCSV)
			if err != nil {
				logger.Error("enrichment failed", "error", err)
				exitCode = 1
			}
			report.AddFailedLinks(failedLinks)
		}
	}

	if *sqldump && ctx.Err() == nil {
		if err := exportDumps(logger, paths); err != nil {
			exitCode = 1
		}
	}

	if !report.Empty() {
		if err := report.Save(); err != nil {
			logger.Error("failed to save run report", "error", err)
		} else {
			logger.Warn("run finished with failures, report saved", "path", filepath.Join(cfg.Scraper.DataDir, "run_report.json"))
		}
	}

	logger.Info("done")
	return exitCode
}

type filePaths struct {
	productsCSV string
	outletsCSV  string
	enrichedCSV string
	productsSQL string
	outletsSQL  string
}

func dataPaths(dir string) filePaths {
	return filePaths{
		productsCSV: filepath.Join(dir, "zus_products.csv"),
		outletsCSV:  filepath.Join(dir, "zus_outlets.csv"),
		enrichedCSV: filepath.Join(dir, "zus_outlets_final.csv"),
		productsSQL: filepath.Join(dir, "zus_products.sql"),
		outletsSQL:  filepath.Join(dir, "zus_outlets.sql"),
	}
}

func exportDumps(logger *slog.Logger, paths filePaths) error {
	var firstErr error

	if err := storage.ExportProductsSQL(paths.productsCSV, paths.productsSQL); err != nil {
		logger.Error("failed to export products dump", "error", err)
		firstErr = err
	} else {
		logger.Info("products dump written", "path", paths.productsSQL)
	}

	// Prefer the enriched file, fall back to the raw listing.
	source := paths.enrichedCSV
	if _, err := os.Stat(source); err != nil {
		source = paths.outletsCSV
	}
	if err := storage.ExportOutletsSQL(source, paths.outletsSQL); err != nil {
		logger.Error("failed to export outlets dump", "source", source, "error", err)
		if firstErr == nil {
			firstErr = err
		}
	} else {
		logger.Info("outlets dump written", "path", paths.outletsSQL, "source", source)
	}

	return firstErr
}

func parsePageRange(s string) (int, int, error) {
	from, to, found := strings.Cut(strings.TrimSpace(s), "-")
	if !found {
		n, err := strconv.Atoi(from)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid page %q", s)
		}
		return n, n, nil
	}

	lo, err := strconv.Atoi(strings.TrimSpace(from))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid page range %q", s)
	}
	hi, err := strconv.Atoi(strings.TrimSpace(to))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid page range %q", s)
	}
	if lo < 1 || hi < lo {
		return 0, 0, fmt.Errorf("invalid page range %q", s)
	}

	return lo, hi, nil
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
