package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmadnk31/5gfones-search/internal/core/domain"
	"github.com/ahmadnk31/5gfones-search/internal/core/port"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var _ port.VectorSearcher = (*Storage)(nil)

// match_products embeds the query and ranks by vector distance on the
// database side. It accepts at most one category and one brand, so
// multi-valued filter sets are left to the in-memory engine.
const vectorQuery = `
	SELECT product_id, name, base_price, image_url, in_stock,
	       brands, category_id, brand_id, variant_count, similarity
	FROM match_products($1, $2, $3, $4, $5, $6, $7);`

func (s Storage) SearchVector(
	ctx context.Context,
	query string,
	limit, offset int,
	filters domain.FilterOptions,
) ([]domain.RawRecord, error) {
	const op = "Storage.SearchVector"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := s.db.Query(ctx, vectorQuery,
		query, limit, offset,
		singleID(filters.CategoryIDs), singleID(filters.BrandIDs),
		filters.MinPrice, filters.MaxPrice,
	)
	if err != nil {
		if functionMissing(err) {
			return nil, fmt.Errorf("%s: match_products: %w",
				op, domain.ErrUnavailable)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var rs []domain.RawRecord
	for rows.Next() {
		var (
			r        domain.RawRecord
			imageURL *string
			brands   []byte
		)
		err := rows.Scan(
			&r.ID, &r.Name, &r.BasePrice, &imageURL, &r.InStock,
			&brands, &r.CategoryID, &r.BrandID, &r.VariantCount,
			&r.Similarity,
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

// functionMissing reports whether the error means the match_products
// function has not been installed in this database.
func functionMissing(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == pgerrcode.UndefinedFunction
}

func singleID(ids []int) *int {
	if len(ids) == 1 {
		return &ids[0]
	}
	return nil
}
