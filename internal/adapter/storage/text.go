package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ahmadnk31/5gfones-search/internal/core/domain"
	"github.com/ahmadnk31/5gfones-search/internal/core/port"
)

var _ port.TextSearcher = (*Storage)(nil)

// SearchText runs keyword search over the product name with the whole
// filter set, sort order and pagination applied at the query level,
// so nothing unfiltered crosses the wire. The window count is the
// server-side total before pagination.
func (s Storage) SearchText(
	ctx context.Context,
	query string,
	filters domain.FilterOptions,
	limit, offset int,
) ([]domain.RawRecord, int, error) {
	const op = "Storage.SearchText"

	if err := ctx.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	sql, args := buildTextQuery(query, filters, limit, offset)

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var (
		rs    []domain.RawRecord
		total int
	)
	for rows.Next() {
		var (
			r        domain.RawRecord
			imageURL *string
			brands   []byte
		)
		err := rows.Scan(
			&r.ID, &r.Name, &r.BasePrice, &imageURL, &r.InStock,
			&brands, &r.CategoryID, &r.BrandID, &r.VariantCount,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		if imageURL != nil {
			r.ImageURL = *imageURL
		}
		if err := unmarshalBrands(brands, &r.Brand); err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		rs = append(rs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return rs, total, nil
}

func buildTextQuery(
	query string, filters domain.FilterOptions, limit, offset int,
) (string, []any) {
	var b strings.Builder
	args := []any{query}

	b.WriteString(`
	SELECT p.product_id, p.name, p.base_price, p.image_url, p.in_stock,
	       COALESCE(
	           jsonb_agg(b.name) FILTER (WHERE b.name IS NOT NULL), '[]'
	       ) AS brands,
	       p.category_id, p.brand_id,
	       (SELECT count(*) FROM product_variants v
	         WHERE v.product_id = p.product_id) AS variant_count,
	       count(*) OVER () AS total
	FROM products p
	LEFT JOIN brands b ON b.brand_id = p.brand_id
	WHERE to_tsvector('simple', p.name)
	      @@ websearch_to_tsquery('simple', $1)`)

	addArg := func(arg any) int {
		args = append(args, arg)
		return len(args)
	}

	if len(filters.CategoryIDs) > 0 {
		fmt.Fprintf(&b, "\n\t  AND p.category_id = ANY($%d)",
			addArg(filters.CategoryIDs))
	}
	if len(filters.BrandIDs) > 0 {
		fmt.Fprintf(&b, "\n\t  AND p.brand_id = ANY($%d)",
			addArg(filters.BrandIDs))
	}
	if filters.MinPrice != nil {
		fmt.Fprintf(&b, "\n\t  AND p.base_price >= $%d",
			addArg(*filters.MinPrice))
	}
	if filters.MaxPrice != nil {
		fmt.Fprintf(&b, "\n\t  AND p.base_price <= $%d",
			addArg(*filters.MaxPrice))
	}
	if filters.InStockOnly {
		b.WriteString("\n\t  AND p.in_stock > 0")
	}

	b.WriteString("\n\tGROUP BY p.product_id")
	b.WriteString("\n\tORDER BY " + textOrderClause(filters.SortBy))

	fmt.Fprintf(&b, "\n\tLIMIT $%d", addArg(limit))
	fmt.Fprintf(&b, " OFFSET $%d;", addArg(offset))

	return b.String(), args
}

// textOrderClause maps the sort enumeration onto ORDER BY. Newest and
// oldest key off product_id as a recency proxy, consistent with the
// in-memory engine.
func textOrderClause(by domain.SortBy) string {
	switch by {
	case domain.SortNewest:
		return "p.product_id DESC"
	case domain.SortOldest:
		return "p.product_id ASC"
	case domain.SortPriceAsc:
		return "p.base_price ASC, p.product_id ASC"
	case domain.SortPriceDesc:
		return "p.base_price DESC, p.product_id ASC"
	case domain.SortNameAsc:
		return "p.name ASC"
	case domain.SortNameDesc:
		return "p.name DESC"
	default:
		return "ts_rank(to_tsvector('simple', p.name), " +
			"websearch_to_tsquery('simple', $1)) DESC, p.product_id ASC"
	}
}

func unmarshalBrands(data []byte, b *domain.BrandField) error {
	if len(data) == 0 {
		b.Names = nil
		return nil
	}
	return json.Unmarshal(data, b)
}
