package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCatalog_GetProductByID(t *testing.T) {
	c := NewSampleCatalog()
	ctx := context.Background()

	p, err := c.GetProductByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Minimal Oak Chair", p.Name)
	assert.Equal(t, "299", p.Price.String())

	_, err = c.GetProductByID(ctx, "404")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestMemoryCatalog_GetProductsByCategory_CaseInsensitive(t *testing.T) {
	c := NewSampleCatalog()

	products, err := c.GetProductsByCategory(context.Background(), "lighting")
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "2", products[0].ID)
	assert.Equal(t, "5", products[1].ID)
}

func TestMemoryCatalog_GetProductsBySubcategory(t *testing.T) {
	c := NewSampleCatalog()

	products, err := c.GetProductsBySubcategory(context.Background(), "TABLE LAMPS")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Concrete Table Lamp", products[0].Name)
}

func TestMemoryCatalog_GetFeaturedProducts(t *testing.T) {
	c := NewSampleCatalog()

	products, err := c.GetFeaturedProducts(context.Background())
	require.NoError(t, err)

	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"1", "2", "3", "6"}, ids)
}

func TestRelated_ExcludesSelf(t *testing.T) {
	c := NewSampleCatalog()
	ctx := context.Background()

	chair, err := c.GetProductByID(ctx, "1")
	require.NoError(t, err)

	related, err := Related(ctx, c, chair, RelatedLimit)
	require.NoError(t, err)
	require.Len(t, related, 2)
	for _, p := range related {
		assert.NotEqual(t, chair.ID, p.ID)
		assert.Equal(t, "Furniture", p.Category)
	}
}

func TestRelated_RespectsLimit(t *testing.T) {
	c := NewSampleCatalog()
	ctx := context.Background()

	chair, _ := c.GetProductByID(ctx, "1")
	related, err := Related(ctx, c, chair, 1)
	require.NoError(t, err)
	assert.Len(t, related, 1)
	assert.Equal(t, "3", related[0].ID)
}

func TestFindCategory(t *testing.T) {
	c := NewSampleCatalog()
	ctx := context.Background()

	cat, err := FindCategory(ctx, c, "lighting")
	require.NoError(t, err)
	assert.Equal(t, "Lighting", cat.Name)
	assert.Len(t, cat.Subcategories, 3)

	_, err = FindCategory(ctx, c, "Garden")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}
