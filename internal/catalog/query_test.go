package catalog

import (
	"testing"

	"github.com/kakairsyad/Interior-market/internal/domain"
	"github.com/stretchr/testify/assert"
)

func ids(products []domain.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestFilter_SearchMatchesNameDesignerAndCategories(t *testing.T) {
	products := SampleProducts()

	assert.Equal(t, []string{"1"}, ids(Filter(products, Query{Search: "oak", Sort: SortName})))
	assert.Equal(t, []string{"2"}, ids(Filter(products, Query{Search: "light studio"})))
	assert.Equal(t, []string{"4"}, ids(Filter(products, Query{Search: "TEXTILES"})))
	assert.Empty(t, Filter(products, Query{Search: "sofa"}))
}

func TestFilter_CategoryIsExact(t *testing.T) {
	products := SampleProducts()

	assert.Equal(t, []string{"1", "3", "6"}, ids(Filter(products, Query{Category: "Furniture"})))
	assert.Empty(t, Filter(products, Query{Category: "furniture"}))
}

func TestFilter_Sorts(t *testing.T) {
	products := SampleProducts()

	assert.Equal(t, []string{"4", "5", "2", "1", "6", "3"}, ids(Filter(products, Query{Sort: SortPriceLow})))
	assert.Equal(t, []string{"3", "6", "1", "2", "5", "4"}, ids(Filter(products, Query{Sort: SortPriceHigh})))
	assert.Equal(t, []string{"2", "5", "1", "6", "3", "4"}, ids(Filter(products, Query{Sort: SortName})))
	assert.Equal(t, []string{"1", "2", "3", "6", "4", "5"}, ids(Filter(products, Query{})))
}

func TestFilter_DoesNotModifyInput(t *testing.T) {
	products := SampleProducts()
	before := ids(products)

	Filter(products, Query{Sort: SortPriceHigh})

	assert.Equal(t, before, ids(products))
}

func TestParseSortOrder(t *testing.T) {
	assert.Equal(t, SortPriceLow, ParseSortOrder("price-low"))
	assert.Equal(t, SortNewest, ParseSortOrder("cheapest"))
	assert.Equal(t, SortNewest, ParseSortOrder(""))
}
