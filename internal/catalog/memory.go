package catalog

import (
	"context"
	"strings"

	"github.com/kakairsyad/Interior-market/internal/domain"
)

// MemoryCatalog serves a fixed product list. It is safe for concurrent use
// because nothing mutates it after construction.
type MemoryCatalog struct {
	products   []domain.Product
	byID       map[string]int
	categories []domain.Category
}

func NewMemoryCatalog(products []domain.Product, categories []domain.Category) *MemoryCatalog {
	c := &MemoryCatalog{
		products:   products,
		byID:       make(map[string]int, len(products)),
		categories: categories,
	}
	for i, p := range products {
		c.byID[p.ID] = i
	}
	return c
}

// NewSampleCatalog returns the built-in sample catalog.
func NewSampleCatalog() *MemoryCatalog {
	return NewMemoryCatalog(SampleProducts(), SampleCategories())
}

func (c *MemoryCatalog) ListProducts(context.Context) ([]domain.Product, error) {
	return c.where(func(domain.Product) bool { return true }), nil
}

func (c *MemoryCatalog) GetProductByID(_ context.Context, id string) (domain.Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, ErrProductNotFound
	}
	return c.products[i], nil
}

func (c *MemoryCatalog) GetProductsByCategory(_ context.Context, category string) ([]domain.Product, error) {
	return c.where(func(p domain.Product) bool {
		return strings.EqualFold(p.Category, category)
	}), nil
}

func (c *MemoryCatalog) GetProductsBySubcategory(_ context.Context, subcategory string) ([]domain.Product, error) {
	return c.where(func(p domain.Product) bool {
		return strings.EqualFold(p.Subcategory, subcategory)
	}), nil
}

func (c *MemoryCatalog) GetFeaturedProducts(context.Context) ([]domain.Product, error) {
	return c.where(func(p domain.Product) bool { return p.Featured }), nil
}

func (c *MemoryCatalog) Categories(context.Context) ([]domain.Category, error) {
	out := make([]domain.Category, len(c.categories))
	copy(out, c.categories)
	return out, nil
}

func (c *MemoryCatalog) Ping(context.Context) error {
	return nil
}

func (c *MemoryCatalog) where(keep func(domain.Product) bool) []domain.Product {
	out := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
