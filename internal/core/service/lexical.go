package service

import (
	"context"
	"fmt"

	"github.com/ahmadnk31/5gfones-search/internal/core/domain"
)

// searchLexical delegates to the full-text capability, which applies
// the filter set, sort order and pagination at the query level, so no
// in-memory pass is needed and the reported total is exact.
func (s *Service) searchLexical(
	ctx context.Context,
	query string,
	limit, offset int,
	filters domain.FilterOptions,
) (domain.SearchResult, error) {
	const op = "Service.searchLexical"

	rs, total, err := s.text.SearchText(ctx, query, filters, limit, offset)
	if err != nil {
		return domain.SearchResult{}, fmt.Errorf("%s: %w", op, err)
	}

	ps, err := domain.Normalize(rs)
	if err != nil {
		return domain.SearchResult{}, fmt.Errorf("%s: %w", op, err)
	}

	return domain.SearchResult{Products: ps, Count: total}, nil
}
