package catalog

import (
	"slices"
	"strings"

	"github.com/kakairsyad/Interior-market/internal/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortOrder string

const (
	SortNewest    SortOrder = "newest"
	SortName      SortOrder = "name"
	SortPriceLow  SortOrder = "price-low"
	SortPriceHigh SortOrder = "price-high"
)

// ParseSortOrder maps a query value to a SortOrder, defaulting to newest.
func ParseSortOrder(s string) SortOrder {
	switch SortOrder(s) {
	case SortName, SortPriceLow, SortPriceHigh:
		return SortOrder(s)
	default:
		return SortNewest
	}
}

// Query narrows and orders a product listing. Zero values mean "no filter".
type Query struct {
	Search      string
	Category    string
	Subcategory string
	Sort        SortOrder
}

// Filter applies q to products and returns a new slice; products is not
// modified.
func Filter(products []domain.Product, q Query) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	for _, p := range products {
		if needle != "" && !matches(p, needle) {
			continue
		}
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if q.Subcategory != "" && p.Subcategory != q.Subcategory {
			continue
		}
		out = append(out, p)
	}

	switch ParseSortOrder(string(q.Sort)) {
	case SortName:
		c := collate.New(language.English)
		slices.SortStableFunc(out, func(a, b domain.Product) int {
			return c.CompareString(a.Name, b.Name)
		})
	case SortPriceLow:
		slices.SortStableFunc(out, func(a, b domain.Product) int {
			return a.Price.Cmp(b.Price)
		})
	case SortPriceHigh:
		slices.SortStableFunc(out, func(a, b domain.Product) int {
			return b.Price.Cmp(a.Price)
		})
	default:
		// featured first, catalog order otherwise
		slices.SortStableFunc(out, func(a, b domain.Product) int {
			switch {
			case a.Featured == b.Featured:
				return 0
			case a.Featured:
				return -1
			default:
				return 1
			}
		})
	}
	return out
}

func matches(p domain.Product, needle string) bool {
	for _, field := range []string{p.Name, p.Designer, p.Category, p.Subcategory} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
