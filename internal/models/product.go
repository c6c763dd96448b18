package models

import (
	"strconv"
	"strings"
)

// Product is a single catalog item from the storefront. Colors is the
// comma-joined list of swatch labels, matching the persisted format.
type Product struct {
	Category    string  `json:"category_title"`
	Name        string  `json:"name"`
	Image       string  `json:"image"`
	Colors      string  `json:"color"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

func ProductHeader() []string {
	return []string{"category_title", "name", "image", "color", "price", "description"}
}

func (p *Product) Row() []string {
	return []string{
		p.Category,
		p.Name,
		p.Image,
		p.Colors,
		strconv.FormatFloat(p.Price, 'f', 2, 64),
		p.Description,
	}
}

func (p *Product) Validate() []string {
	var problems []string

	if strings.TrimSpace(p.Name) == "" {
		problems = append(problems, "name is required")
	}

	if p.Price < 0 {
		problems = append(problems, "price must not be negative")
	}

	return problems
}
