package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmadnk31/5gfones-search/internal/core/domain"
)

// searchSemantic delegates to the vector search capability. The
// backing function supports limit/offset natively but only a subset of
// the filter contract, so the filter engine always runs over the page
// as the source of truth. Unavailability is a soft failure.
func (s *Service) searchSemantic(
	ctx context.Context,
	query string,
	limit, offset int,
	filters domain.FilterOptions,
) (domain.SearchResult, error) {
	const op = "Service.searchSemantic"

	rs, err := s.vector.SearchVector(ctx, query, limit, offset, filters)
	if err != nil {
		return domain.SearchResult{}, fmt.Errorf("%s: %w", op, err)
	}

	ps, err := domain.Normalize(rs)
	if err != nil {
		return domain.SearchResult{}, fmt.Errorf("%s: %w", op, err)
	}

	ps = domain.ApplyFilters(ps, filters)

	// The ranking function reports no server-side total; offset plus
	// the page length is the best available approximation.
	return domain.SearchResult{Products: ps, Count: offset + len(ps)}, nil
}

func soft(err error) bool {
	return errors.Is(err, domain.ErrUnavailable)
}
