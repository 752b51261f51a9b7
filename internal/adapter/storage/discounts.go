package storage

import (
	"context"
	"fmt"

	"github.com/ahmadnk31/5gfones-search/internal/core/port"
)

var _ port.DiscountsReader = (*Storage)(nil)

// CategoryDiscounts loads all currently active per-category discount
// rates in one read; the discount cache owns expiry.
func (s Storage) CategoryDiscounts(ctx context.Context) (map[int]float64, error) {
	const op = "Storage.CategoryDiscounts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := s.db.Query(ctx, `
		SELECT category_id, rate
		FROM category_discounts
		WHERE starts_at <= now() AND ends_at > now();`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	rates := make(map[int]float64)
	for rows.Next() {
		var (
			categoryID int
			rate       float64
		)
		if err := rows.Scan(&categoryID, &rate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		rates[categoryID] = rate
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return rates, nil
}
