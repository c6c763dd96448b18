package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zusdev/zus-scraper/internal/models"
	"github.com/zusdev/zus-scraper/internal/storage"
)

func TestRunDumpOnlyWritesScripts(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SCRAPER_DATA_DIR", dir)

	product := &models.Product{Category: "Tumblers", Name: "ZUS All Day Cup", Price: 79}
	require.NoError(t, storage.AppendRow(
		filepath.Join(dir, "zus_products.csv"), models.ProductHeader(), product.Row()))

	outlet := &models.OutletListing{Name: "ZUS Coffee KLCC", Address: "Suria KLCC, Kuala Lumpur"}
	require.NoError(t, storage.AppendRow(
		filepath.Join(dir, "zus_outlets.csv"), models.OutletHeader(), outlet.Row()))

	assert.Equal(t, 0, run([]string{"-sqldump"}))

	productsSQL, err := os.ReadFile(filepath.Join(dir, "zus_products.sql"))
	require.NoError(t, err)
	assert.Contains(t, string(productsSQL), "INSERT INTO products VALUES (1, 'Tumblers', 'ZUS All Day Cup'")

	outletsSQL, err := os.ReadFile(filepath.Join(dir, "zus_outlets.sql"))
	require.NoError(t, err)
	assert.Contains(t, string(outletsSQL), "INSERT INTO outlets VALUES (1, 'ZUS Coffee KLCC'")
}

func TestRunDumpOnlyFailsWithoutData(t *testing.T) {
	t.Setenv("SCRAPER_DATA_DIR", t.TempDir())

	assert.Equal(t, 1, run([]string{"-sqldump"}))
}

func TestRunRequiresAPhase(t *testing.T) {
	t.Setenv("SCRAPER_DATA_DIR", t.TempDir())

	assert.Equal(t, 1, run(nil))
}

func TestParsePageRange(t *testing.T) {
	tests := []struct {
		input    string
		from, to int
		hasError bool
	}{
		{input: "1-22", from: 1, to: 22},
		{input: "3", from: 3, to: 3},
		{input: " 2 - 5 ", from: 2, to: 5},
		{input: "5-2", hasError: true},
		{input: "0-4", hasError: true},
		{input: "abc", hasError: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			from, to, err := parsePageRange(tt.input)
			if tt.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.from, from)
			assert.Equal(t, tt.to, to)
		})
	}
}
