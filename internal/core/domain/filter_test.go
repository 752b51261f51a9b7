package domain_test

import (
	"testing"

	"github.com/ahmadnk31/5gfones-search/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }

func iptr(v int) *int { return &v }

func productIDs(ps []domain.ProductResult) []int {
	ids := make([]int, len(ps))
	for i, p := range ps {
		ids[i] = p.ID
	}
	return ids
}

func TestApplyFilters(t *testing.T) {

	t.Run("PriceRange", func(t *testing.T) {
		ps := []domain.ProductResult{
			{ID: 1, BasePrice: 10},
			{ID: 2, BasePrice: 50},
			{ID: 3, BasePrice: 100},
		}
		f := domain.FilterOptions{MinPrice: fptr(20), MaxPrice: fptr(80)}

		got := domain.ApplyFilters(ps, f)

		assert.Equal(t, []int{2}, productIDs(got))
	})

	t.Run("PriceBoundsInclusive", func(t *testing.T) {
		ps := []domain.ProductResult{
			{ID: 1, BasePrice: 20},
			{ID: 2, BasePrice: 80},
		}
		f := domain.FilterOptions{MinPrice: fptr(20), MaxPrice: fptr(80)}

		got := domain.ApplyFilters(ps, f)

		assert.Equal(t, []int{1, 2}, productIDs(got))
	})

	t.Run("StockOnlyWithPriceSort", func(t *testing.T) {
		ps := []domain.ProductResult{
			{ID: 1, InStock: 0, BasePrice: 5},
			{ID: 2, InStock: 3, BasePrice: 1},
		}
		f := domain.FilterOptions{
			InStockOnly: true,
			SortBy:      domain.SortPriceAsc,
		}

		got := domain.ApplyFilters(ps, f)

		assert.Equal(t, []int{2}, productIDs(got))
	})

	t.Run("CategorySetOrSemantics", func(t *testing.T) {
		ps := []domain.ProductResult{
			{ID: 1, CategoryID: iptr(10)},
			{ID: 2, CategoryID: iptr(20)},
			{ID: 3, CategoryID: iptr(30)},
		}
		f := domain.FilterOptions{CategoryIDs: []int{10, 30}}

		got := domain.ApplyFilters(ps, f)

		assert.Equal(t, []int{1, 3}, productIDs(got))
	})

	t.Run("MissingCategoryExcludedWhenFilterActive", func(t *testing.T) {
		ps := []domain.ProductResult{
			{ID: 1, CategoryID: nil},
			{ID: 2, CategoryID: iptr(10)},
		}
		f := domain.FilterOptions{CategoryIDs: []int{10}}

		got := domain.ApplyFilters(ps, f)

		assert.Equal(t, []int{2}, productIDs(got))
	})

	t.Run("MissingBrandExcludedWhenFilterActive", func(t *testing.T) {
		ps := []domain.ProductResult{
			{ID: 1, BrandID: nil},
			{ID: 2, BrandID: iptr(7)},
		}
		f := domain.FilterOptions{BrandIDs: []int{7}}

		got := domain.ApplyFilters(ps, f)

		assert.Equal(t, []int{2}, productIDs(got))
	})

	t.Run("AllPredicatesAnded", func(t *testing.T) {
		ps := []domain.ProductResult{
			{ID: 1, BasePrice: 50, CategoryID: iptr(10), BrandID: iptr(7), InStock: 1},
			{ID: 2, BasePrice: 50, CategoryID: iptr(10), BrandID: iptr(8), InStock: 1},
			{ID: 3, BasePrice: 500, CategoryID: iptr(10), BrandID: iptr(7), InStock: 1},
			{ID: 4, BasePrice: 50, CategoryID: iptr(10), BrandID: iptr(7), InStock: 0},
		}
		f := domain.FilterOptions{
			CategoryIDs: []int{10},
			BrandIDs:    []int{7},
			MaxPrice:    fptr(100),
			InStockOnly: true,
		}

		got := domain.ApplyFilters(ps, f)

		assert.Equal(t, []int{1}, productIDs(got))
	})

	t.Run("InputNotMutated", func(t *testing.T) {
		ps := []domain.ProductResult{
			{ID: 2, BasePrice: 9},
			{ID: 1, BasePrice: 1},
		}
		f := domain.FilterOptions{SortBy: domain.SortPriceAsc}

		_ = domain.ApplyFilters(ps, f)

		assert.Equal(t, []int{2, 1}, productIDs(ps))
	})
}

func TestSortProducts(t *testing.T) {

	t.Run("NameAsc", func(t *testing.T) {
		ps := []domain.ProductResult{
			{ID: 1, Name: "Zeta"},
			{ID: 2, Name: "Alpha"},
			{ID: 3, Name: "Mu"},
		}

		domain.SortProducts(ps, domain.SortNameAsc)

		require.Len(t, ps, 3)
		assert.Equal(t, "Alpha", ps[0].Name)
		assert.Equal(t, "Mu", ps[1].Name)
		assert.Equal(t, "Zeta", ps[2].Name)
	})

	t.Run("NameDesc", func(t *testing.T) {
		ps := []domain.ProductResult{
			{ID: 1, Name: "Alpha"},
			{ID: 2, Name: "Zeta"},
		}

		domain.SortProducts(ps, domain.SortNameDesc)

		assert.Equal(t, []int{2, 1}, productIDs(ps))
	})

	t.Run("NewestByIDDesc", func(t *testing.T) {
		ps := []domain.ProductResult{
			{ID: 5}, {ID: 9}, {ID: 1},
		}

		domain.SortProducts(ps, domain.SortNewest)

		assert.Equal(t, []int{9, 5, 1}, productIDs(ps))
	})

	t.Run("OldestByIDAsc", func(t *testing.T) {
		ps := []domain.ProductResult{
			{ID: 5}, {ID: 9}, {ID: 1},
		}

		domain.SortProducts(ps, domain.SortOldest)

		assert.Equal(t, []int{1, 5, 9}, productIDs(ps))
	})

	t.Run("PriceTiesKeepInputOrder", func(t *testing.T) {
		ps := []domain.ProductResult{
			{ID: 1, BasePrice: 10},
			{ID: 2, BasePrice: 5},
			{ID: 3, BasePrice: 10},
			{ID: 4, BasePrice: 10},
		}

		domain.SortProducts(ps, domain.SortPriceAsc)

		assert.Equal(t, []int{2, 1, 3, 4}, productIDs(ps))
	})

	t.Run("RelevanceResortsWhenAllScored", func(t *testing.T) {
		ps := []domain.ProductResult{
			{ID: 9, Similarity: fptr(0.4)},
			{ID: 7, Similarity: fptr(0.9)},
		}

		domain.SortProducts(ps, domain.SortRelevance)

		assert.Equal(t, []int{7, 9}, productIDs(ps))
	})

	t.Run("RelevancePreservesOrderWhenUnscored", func(t *testing.T) {
		ps := []domain.ProductResult{
			{ID: 9, Similarity: fptr(0.4)},
			{ID: 7}, // one missing score disables the re-sort
			{ID: 3, Similarity: fptr(0.9)},
		}

		domain.SortProducts(ps, domain.SortRelevance)

		assert.Equal(t, []int{9, 7, 3}, productIDs(ps))
	})

	t.Run("RelevanceScoreTiesKeepInputOrder", func(t *testing.T) {
		ps := []domain.ProductResult{
			{ID: 1, Similarity: fptr(0.5)},
			{ID: 2, Similarity: fptr(0.5)},
			{ID: 3, Similarity: fptr(0.5)},
		}

		domain.SortProducts(ps, domain.SortRelevance)

		assert.Equal(t, []int{1, 2, 3}, productIDs(ps))
	})
}

func TestValidSort(t *testing.T) {
	for _, s := range []domain.SortBy{
		"", domain.SortRelevance, domain.SortNewest, domain.SortOldest,
		domain.SortPriceAsc, domain.SortPriceDesc,
		domain.SortNameAsc, domain.SortNameDesc,
	} {
		assert.True(t, domain.ValidSort(s), "sort %q", s)
	}
	assert.False(t, domain.ValidSort("rating"))
}
