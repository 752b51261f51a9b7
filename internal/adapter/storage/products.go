package storage

import (
	"context"
	"fmt"

	"github.com/ahmadnk31/5gfones-search/internal/core/domain"
	"github.com/ahmadnk31/5gfones-search/internal/core/port"
)

var (
	_ port.ProductsReader = (*Storage)(nil)
	_ port.VariantCounter = (*Storage)(nil)
)

const productsWithEmbeddingsQuery = `
	SELECT p.product_id, p.name, p.base_price, p.image_url, p.in_stock,
	       COALESCE(
	           jsonb_agg(b.name) FILTER (WHERE b.name IS NOT NULL), '[]'
	       ) AS brands,
	       p.category_id, p.brand_id,
	       e.embedding
	FROM products p
	LEFT JOIN brands b ON b.brand_id = p.brand_id
	LEFT JOIN product_embeddings e ON e.product_id = p.product_id
	GROUP BY p.product_id, e.embedding
	ORDER BY p.product_id
	LIMIT $1 OFFSET $2;`

// ProductsWithEmbeddings pulls a window of products joined with their
// stored embedding vectors for in-process similarity scoring. A
// product without a stored vector comes back with a nil embedding.
func (s Storage) ProductsWithEmbeddings(
	ctx context.Context, limit, offset int,
) ([]domain.EmbeddedRecord, error) {
	const op = "Storage.ProductsWithEmbeddings"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := s.db.Query(ctx, productsWithEmbeddingsQuery, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var rs []domain.EmbeddedRecord
	for rows.Next() {
		var (
			r        domain.EmbeddedRecord
			imageURL *string
			brands   []byte
		)
		err := rows.Scan(
			&r.ID, &r.Name, &r.BasePrice, &imageURL, &r.InStock,
			&brands, &r.CategoryID, &r.BrandID, &r.Embedding,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if imageURL != nil {
			r.ImageURL = *imageURL
		}
		if err := unmarshalBrands(brands, &r.Brand); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		rs = append(rs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return rs, nil
}

// CountVariants reports the number of variants of one product.
func (s Storage) CountVariants(ctx context.Context, productID int) (int, error) {
	const op = "Storage.CountVariants"

	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var n int
	err := s.db.QueryRow(ctx,
		`SELECT count(*) FROM product_variants WHERE product_id = $1;`,
		productID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}
