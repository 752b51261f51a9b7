package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"

	"github.com/ahmadnk31/5gfones-search/internal/core/domain"
)

const (
	// localCandidateLimit caps how many products are pulled into
	// memory for in-process scoring per call.
	localCandidateLimit = 200

	// substringScore is assigned when the whole query appears in the
	// product name; partial word overlap is scaled by overlapFactor.
	substringScore = 0.7
	overlapFactor  = 0.5
)

// searchLocal is the last-resort strategy: it scores a window of
// candidates in process against a freshly generated query embedding.
// Candidates without a stored embedding get a heuristic text-overlap
// score. The fetch is unfiltered by embedding content, so the filter
// engine must run afterwards.
func (s *Service) searchLocal(
	ctx context.Context,
	query string,
	limit, offset int,
	filters domain.FilterOptions,
) (domain.SearchResult, error) {
	const op = "Service.searchLocal"

	qvec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return domain.SearchResult{}, fmt.Errorf("%s: %w", op, err)
	}

	candidates, err := s.products.ProductsWithEmbeddings(ctx, localCandidateLimit, 0)
	if err != nil {
		return domain.SearchResult{}, fmt.Errorf("%s: %w", op, err)
	}

	rs := make([]domain.RawRecord, len(candidates))
	for i, c := range candidates {
		score := scoreCandidate(query, c, qvec)
		rs[i] = c.RawRecord
		rs[i].Similarity = &score
	}

	ps, err := domain.Normalize(rs)
	if err != nil {
		return domain.SearchResult{}, fmt.Errorf("%s: %w", op, err)
	}

	s.attachVariantCounts(ctx, ps)

	sorted := filters
	if sorted.SortBy == "" {
		sorted.SortBy = domain.SortRelevance
	}
	ps = domain.ApplyFilters(ps, sorted)

	total := len(ps)
	ps = slicePage(ps, limit, offset)

	return domain.SearchResult{Products: ps, Count: total}, nil
}

func scoreCandidate(
	query string, c domain.EmbeddedRecord, qvec []float32,
) float64 {
	if len(c.Embedding) > 0 {
		return CosineSimilarity(qvec, c.Embedding)
	}
	name := ""
	if c.Name != nil {
		name = *c.Name
	}
	return overlapScore(query, name)
}

// overlapScore is the fallback for candidates lacking an embedding:
// a whole-query substring match in the name scores a fixed high
// value, otherwise the fraction of query words found as substrings
// of the name, scaled down.
func overlapScore(query, name string) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	n := strings.ToLower(name)
	if q == "" {
		return 0
	}
	if strings.Contains(n, q) {
		return substringScore
	}

	words := strings.Fields(q)
	if len(words) == 0 {
		return 0
	}
	var found int
	for _, w := range words {
		if strings.Contains(n, w) {
			found++
		}
	}
	return float64(found) / float64(len(words)) * overlapFactor
}

// CosineSimilarity returns dot(a,b) / (||a|| * ||b||), or 0 when
// either vector has zero norm or the lengths differ.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// attachVariantCounts fans the per-product count lookups out over the
// worker pool. The reads are independent, so no ordering is needed,
// only that all complete before the strategy returns. A failed lookup
// leaves the default of zero.
func (s *Service) attachVariantCounts(ctx context.Context, ps []domain.ProductResult) {
	const op = "Service.attachVariantCounts"

	if s.variants == nil {
		return
	}

	var wg sync.WaitGroup
	for i := range ps {
		wg.Add(1)
		p := &ps[i]
		err := s.pool.Submit(func() {
			defer wg.Done()
			n, err := s.variants.CountVariants(ctx, p.ID)
			if err != nil {
				slog.Warn("failed to count variants",
					"op", op, "productID", p.ID, "err", err)
				return
			}
			p.VariantCount = n
		})
		if err != nil {
			wg.Done()
			slog.Warn("failed to submit count task", "op", op, "err", err)
		}
	}
	wg.Wait()
}

func slicePage(ps []domain.ProductResult, limit, offset int) []domain.ProductResult {
	if offset >= len(ps) {
		return []domain.ProductResult{}
	}
	end := offset + limit
	if end > len(ps) {
		end = len(ps)
	}
	return ps[offset:end]
}
