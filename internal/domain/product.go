package domain

import "github.com/shopspring/decimal"

type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
}

// Product is catalog reference data. It is never mutated once loaded.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Images      []string        `json:"images"`
	Category    string          `json:"category"`
	Subcategory string          `json:"subcategory"`
	Designer    string          `json:"designer,omitempty"`
	Description string          `json:"description"`
	Materials   []string        `json:"materials"`
	Dimensions  Dimensions      `json:"dimensions"`
	InStock     bool            `json:"inStock"`
	Featured    bool            `json:"featured"`
}

type Subcategory struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Category struct {
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Image         string        `json:"image"`
	Subcategories []Subcategory `json:"subcategories"`
}
