package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutletsSQL(t *testing.T) {
	rows := [][]string{
		{"ZUS KLCC", "Suria KLCC", "https://maps.example.com/1", "1234", "4.6", "+60 12-345 6789", "Dine-in, Takeaway", "Coffee shop", "Monday, 8am–10pm"},
		{"ZUS O'Connor", "N/A", "https://maps.example.com/2", "N/A", "N/A", "N/A", "N/A", "N/A", "N/A"},
	}

	script := OutletsSQL(rows)
	lines := strings.Split(strings.TrimRight(script, "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Contains(t, lines[0], "CREATE TABLE outlets")
	assert.Contains(t, lines[0], "reviews_count INTEGER")

	assert.Contains(t, lines[1], "INSERT INTO outlets VALUES (1, 'ZUS KLCC'")
	assert.Contains(t, lines[1], ", 1234, 4.6,")

	// The placeholder becomes a literal 0 in numeric columns.
	assert.Contains(t, lines[2], ", 0, 0,")
	// Embedded quotes are doubled.
	assert.Contains(t, lines[2], "'ZUS O''Connor'")
	// Text columns keep the placeholder string.
	assert.Contains(t, lines[2], "'N/A'")
}

func TestProductsSQL(t *testing.T) {
	rows := [][]string{
		{"Tumblers", "ZUS All Day Cup", "https://cdn.example.com/cup.png", "Thunder Blue, Space Black", "79.00", "Keeps drinks cold for 12 hours; it's sturdy."},
	}

	script := ProductsSQL(rows)
	lines := strings.Split(strings.TrimRight(script, "\n"), "\n")
	require.Len(t, lines, 2)

	assert.Contains(t, lines[0], "CREATE TABLE products")
	assert.Contains(t, lines[1], "INSERT INTO products VALUES (1, 'Tumblers'")
	assert.Contains(t, lines[1], ", 79.00, ")
	assert.Contains(t, lines[1], "it''s sturdy")
}

func TestNumericOrZero(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"1234", "1234"},
		{"4.6", "4.6"},
		{" 12 ", "12"},
		{"N/A", "0"},
		{"", "0"},
		{"4,6", "0"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, numericOrZero(tt.in), "input %q", tt.in)
	}
}
