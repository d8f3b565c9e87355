package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/kakairsyad/Interior-market/internal/domain"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// RelatedLimit is how many related products the product page shows.
const RelatedLimit = 4

// Provider is the read-only catalog. Implementations return products in
// catalog order.
type Provider interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id string) (domain.Product, error)
	GetProductsByCategory(ctx context.Context, category string) ([]domain.Product, error)
	GetProductsBySubcategory(ctx context.Context, subcategory string) ([]domain.Product, error)
	GetFeaturedProducts(ctx context.Context) ([]domain.Product, error)
	Categories(ctx context.Context) ([]domain.Category, error)
}

// Related returns up to limit products from the same category as p, without p.
func Related(ctx context.Context, provider Provider, p domain.Product, limit int) ([]domain.Product, error) {
	sameCategory, err := provider.GetProductsByCategory(ctx, p.Category)
	if err != nil {
		return nil, err
	}

	related := make([]domain.Product, 0, limit)
	for _, candidate := range sameCategory {
		if candidate.ID == p.ID {
			continue
		}
		if len(related) == limit {
			break
		}
		related = append(related, candidate)
	}
	return related, nil
}

// FindCategory looks a category up by name, ignoring case.
func FindCategory(ctx context.Context, provider Provider, name string) (domain.Category, error) {
	categories, err := provider.Categories(ctx)
	if err != nil {
		return domain.Category{}, err
	}
	for _, c := range categories {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return domain.Category{}, ErrCategoryNotFound
}
