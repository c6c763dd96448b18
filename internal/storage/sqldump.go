package storage

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	productsSchema = "CREATE TABLE products (id INTEGER PRIMARY KEY, category_title TEXT, name TEXT, image TEXT, color TEXT, price DECIMAL(10, 2), description TEXT);"
	outletsSchema  = "CREATE TABLE outlets (id INTEGER PRIMARY KEY, name TEXT, address TEXT, link TEXT, reviews_count INTEGER, reviews_average FLOAT, phone_number TEXT, services TEXT, place_type TEXT, opens_at TEXT);"
)

// ProductsSQL renders the product rows as a schema statement followed
// by one INSERT per row with a synthetic 1-based id. Row layout is the
// CSV column order: category_title, name, image, color, price,
// description.
func ProductsSQL(rows [][]string) string {
	var b strings.Builder
	b.WriteString(productsSchema)
	b.WriteByte('\n')

	for i, row := range rows {
		row = pad(row, 6)
		fmt.Fprintf(&b, "INSERT INTO products VALUES (%d, '%s', '%s', '%s', '%s', %s, '%s');\n",
			i+1,
			escapeQuotes(row[0]),
			escapeQuotes(row[1]),
			escapeQuotes(row[2]),
			escapeQuotes(row[3]),
			numericOrZero(row[4]),
			escapeQuotes(row[5]),
		)
	}

	return b.String()
}

// OutletsSQL renders the enriched outlet rows. Row layout is the CSV
// column order: name, address, link, reviews_count, reviews_average,
// phone_number, services, place_type, opens_at.
func OutletsSQL(rows [][]string) string {
	var b strings.Builder
	b.WriteString(outletsSchema)
	b.WriteByte('\n')

	for i, row := range rows {
		row = pad(row, 9)
		fmt.Fprintf(&b, "INSERT INTO outlets VALUES (%d, '%s', '%s', '%s', %s, %s, '%s', '%s', '%s', '%s');\n",
			i+1,
			escapeQuotes(row[0]),
			escapeQuotes(row[1]),
			escapeQuotes(row[2]),
			numericOrZero(row[3]),
			numericOrZero(row[4]),
			escapeQuotes(row[5]),
			escapeQuotes(row[6]),
			escapeQuotes(row[7]),
			escapeQuotes(row[8]),
		)
	}

	return b.String()
}

// ExportProductsSQL reads the products CSV and writes the generated
// script next to it.
func ExportProductsSQL(csvPath, sqlPath string) error {
	_, rows, err := ReadRows(csvPath)
	if err != nil {
		return err
	}
	return os.WriteFile(sqlPath, []byte(ProductsSQL(rows)), 0644)
}

// ExportOutletsSQL reads the enriched outlets CSV and writes the
// generated script next to it.
func ExportOutletsSQL(csvPath, sqlPath string) error {
	_, rows, err := ReadRows(csvPath)
	if err != nil {
		return err
	}
	return os.WriteFile(sqlPath, []byte(OutletsSQL(rows)), 0644)
}

// escapeQuotes doubles embedded single quotes, the one escape the
// generated script needs.
func escapeQuotes(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// numericOrZero emits the value unquoted when it parses as a number and
// a literal 0 otherwise. The placeholder string therefore becomes 0 in
// numeric columns, diverging from the "N/A" policy used in the CSV
// output; the behavior is kept as-is because downstream consumers of
// the dump already expect it.
func numericOrZero(s string) string {
	s = strings.TrimSpace(s)
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return "0"
	}
	return s
}

func pad(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}
