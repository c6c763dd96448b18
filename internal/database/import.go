package database

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
)

const createProductsTable = `
CREATE TABLE IF NOT EXISTS products (
	id SERIAL PRIMARY KEY,
	category_title TEXT,
	name TEXT NOT NULL,
	image TEXT,
	color TEXT,
	price DECIMAL(10, 2),
	description TEXT
)`

const createOutletsTable = `
CREATE TABLE IF NOT EXISTS outlets (
	id SERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	address TEXT,
	link TEXT,
	reviews_count INTEGER,
	reviews_average FLOAT,
	phone_number TEXT,
	services TEXT,
	place_type TEXT,
	opens_at TEXT
)`

// ImportProducts loads product CSV rows (category_title, name, image,
// color, price, description) into Postgres in one transaction.
func (db *DB) ImportProducts(ctx context.Context, rows [][]string) (int, error) {
	if _, err := db.Exec(ctx, createProductsTable); err != nil {
		return 0, fmt.Errorf("failed to create products table: %w", err)
	}

	inserted := 0
	err := db.WithTx(ctx, func(tx pgx.Tx) error {
		for _, row := range rows {
			if len(row) < 6 || row[1] == "" {
				continue
			}

			price, err := strconv.ParseFloat(strings.TrimSpace(row[4]), 64)
			if err != nil {
				return fmt.Errorf("invalid price %q for product %q: %w", row[4], row[1], err)
			}

			_, err = tx.Exec(ctx,
				`INSERT INTO products (category_title, name, image, color, price, description)
				 VALUES ($1, $2, $3, $4, $5, $6)`,
				row[0], row[1], row[2], row[3], price, row[5])
			if err != nil {
				return fmt.Errorf("failed to insert product %q: %w", row[1], err)
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}

// ImportOutlets loads enriched outlet CSV rows (name, address, link,
// reviews_count, reviews_average, phone_number, services, place_type,
// opens_at) into Postgres. Placeholder numeric values become NULL here;
// only the generated dump script keeps the legacy literal-zero shape.
func (db *DB) ImportOutlets(ctx context.Context, rows [][]string) (int, error) {
	if _, err := db.Exec(ctx, createOutletsTable); err != nil {
		return 0, fmt.Errorf("failed to create outlets table: %w", err)
	}

	inserted := 0
	err := db.WithTx(ctx, func(tx pgx.Tx) error {
		for _, row := range rows {
			if len(row) < 9 || row[0] == "" {
				continue
			}

			_, err := tx.Exec(ctx,
				`INSERT INTO outlets (name, address, link, reviews_count, reviews_average,
				                      phone_number, services, place_type, opens_at)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
				row[0], row[1], row[2],
				nullableInt(row[3]), nullableFloat(row[4]),
				row[5], row[6], row[7], row[8])
			if err != nil {
				return fmt.Errorf("failed to insert outlet %q: %w", row[0], err)
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}

func nullableInt(s string) *int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &v
}

func nullableFloat(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}
