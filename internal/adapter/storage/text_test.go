package storage

import (
	"testing"

	"github.com/ahmadnk31/5gfones-search/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTextQuery(t *testing.T) {

	t.Run("NoFilters", func(t *testing.T) {
		sql, args := buildTextQuery("iphone", domain.FilterOptions{}, 16, 0)

		require.Len(t, args, 3)
		assert.Equal(t, "iphone", args[0])
		assert.Equal(t, 16, args[1])
		assert.Equal(t, 0, args[2])
		assert.Contains(t, sql, "websearch_to_tsquery")
		assert.Contains(t, sql, "ts_rank")
		assert.NotContains(t, sql, "category_id = ANY")
	})

	t.Run("AllFilters", func(t *testing.T) {
		minPrice, maxPrice := 10.0, 500.0
		f := domain.FilterOptions{
			CategoryIDs: []int{1, 2},
			BrandIDs:    []int{7},
			MinPrice:    &minPrice,
			MaxPrice:    &maxPrice,
			InStockOnly: true,
			SortBy:      domain.SortPriceDesc,
		}

		sql, args := buildTextQuery("iphone", f, 16, 32)

		require.Len(t, args, 7)
		assert.Equal(t, []int{1, 2}, args[1])
		assert.Equal(t, []int{7}, args[2])
		assert.Equal(t, minPrice, args[3])
		assert.Equal(t, maxPrice, args[4])
		assert.Equal(t, 16, args[5])
		assert.Equal(t, 32, args[6])

		assert.Contains(t, sql, "p.category_id = ANY($2)")
		assert.Contains(t, sql, "p.brand_id = ANY($3)")
		assert.Contains(t, sql, "p.base_price >= $4")
		assert.Contains(t, sql, "p.base_price <= $5")
		assert.Contains(t, sql, "p.in_stock > 0")
		assert.Contains(t, sql, "LIMIT $6 OFFSET $7")
		assert.Contains(t, sql, "ORDER BY p.base_price DESC")
	})

	t.Run("SortClauses", func(t *testing.T) {
		tests := []struct {
			sort domain.SortBy
			want string
		}{
			{domain.SortNewest, "p.product_id DESC"},
			{domain.SortOldest, "p.product_id ASC"},
			{domain.SortPriceAsc, "p.base_price ASC"},
			{domain.SortNameAsc, "p.name ASC"},
			{domain.SortNameDesc, "p.name DESC"},
			{domain.SortRelevance, "ts_rank"},
			{"", "ts_rank"},
		}
		for _, tc := range tests {
			sql, _ := buildTextQuery("q", domain.FilterOptions{SortBy: tc.sort}, 1, 0)
			assert.Contains(t, sql, tc.want, "sort %q", tc.sort)
		}
	})
}
