package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/zusdev/zus-scraper/internal/config"
	"github.com/zusdev/zus-scraper/internal/database"
	"github.com/zusdev/zus-scraper/internal/storage"
)

// main only converts run's exit code; run owns the pool so its deferred
// Close fires on every path.
func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("importer", flag.ExitOnError)
	var (
		productsCSV = fs.String("products", "", "Products CSV to import (default <data dir>/zus_products.csv)")
		outletsCSV  = fs.String("outlets", "", "Enriched outlets CSV to import (default <data dir>/zus_outlets_final.csv)")
	)
	fs.Parse(args)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 1
	}

	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)

	if *productsCSV == "" {
		*productsCSV = filepath.Join(cfg.Scraper.DataDir, "zus_products.csv")
	}
	if *outletsCSV == "" {
		*outletsCSV = filepath.Join(cfg.Scraper.DataDir, "zus_outlets_final.csv")
	}

	ctx := context.Background()

	db, err := database.New(ctx, database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		Database: cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return 1
	}
	defer db.Close()

	exitCode := 0

	if n, err := importFile(ctx, *productsCSV, db.ImportProducts); err != nil {
		logger.Error("product import failed", "path", *productsCSV, "error", err)
		exitCode = 1
	} else {
		logger.Info("products imported", "path", *productsCSV, "rows", n)
	}

	if n, err := importFile(ctx, *outletsCSV, db.ImportOutlets); err != nil {
		logger.Error("outlet import failed", "path", *outletsCSV, "error", err)
		exitCode = 1
	} else {
		logger.Info("outlets imported", "path", *outletsCSV, "rows", n)
	}

	return exitCode
}

func importFile(ctx context.Context, path string, load func(context.Context, [][]string) (int, error)) (int, error) {
	_, rows, err := storage.ReadRows(path)
	if err != nil {
		return 0, err
	}
	return load(ctx, rows)
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
