package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/kakairsyad/Interior-market/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *catalog.SQLiteCatalog {
	// Use in-memory database for tests
	repo, err := catalog.NewSQLiteCatalog(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	require.NoError(t, repo.RunMigrations())
	require.NoError(t, repo.Seed(context.Background(), catalog.SampleCategories(), catalog.SampleProducts()))

	return repo
}

func TestSQLiteCatalog_ListProductsAfterSeed(t *testing.T) {
	repo := setupTestDB(t)

	products, err := repo.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 6)

	for i, want := range catalog.SampleProducts() {
		got := products[i]
		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, want.Name, got.Name)
		assert.True(t, want.Price.Equal(got.Price), "price of %s", want.ID)
		assert.Equal(t, want.Images, got.Images)
		assert.Equal(t, want.Designer, got.Designer)
		assert.Equal(t, want.InStock, got.InStock)
		assert.Equal(t, want.Featured, got.Featured)
	}
}

func TestSQLiteCatalog_MigrationsAreIdempotent(t *testing.T) {
	repo := setupTestDB(t)

	assert.NoError(t, repo.RunMigrations())
}

func TestSQLiteCatalog_GetProductByID(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	p, err := repo.GetProductByID(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, "Walnut Coffee Table", p.Name)
	assert.Equal(t, []string{"Solid Walnut", "Natural Wax Finish"}, p.Materials)
	assert.Equal(t, 120.0, p.Dimensions.Width)

	_, err = repo.GetProductByID(ctx, "missing")
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestSQLiteCatalog_CategoryQueries(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	furniture, err := repo.GetProductsByCategory(ctx, "FURNITURE")
	require.NoError(t, err)
	assert.Len(t, furniture, 3)

	pendants, err := repo.GetProductsBySubcategory(ctx, "pendant lights")
	require.NoError(t, err)
	require.Len(t, pendants, 1)
	assert.Equal(t, "2", pendants[0].ID)

	featured, err := repo.GetFeaturedProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, featured, 4)
}

func TestSQLiteCatalog_Categories(t *testing.T) {
	repo := setupTestDB(t)

	categories, err := repo.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, catalog.SampleCategories(), categories)
}

func TestSQLiteCatalog_WithContext(t *testing.T) {
	repo := setupTestDB(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	products, err := repo.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 6)
}
