package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmadnk31/5gfones-search/internal/core/domain"
	"github.com/ahmadnk31/5gfones-search/internal/core/port"
	"github.com/panjf2000/ants/v2"
)

var _ port.ProductSearcher = (*Service)(nil)

const (
	strategySemantic = "semantic"
	strategyLexical  = "lexical"
	strategyLocal    = "local"
)

// Service orchestrates the three-stage search fallback chain:
// semantic, then lexical, then local embedding similarity. Each call
// is stateless; the first strategy yielding at least one result wins
// and the last strategy's output is authoritative even when empty.
type Service struct {
	vector   port.VectorSearcher
	text     port.TextSearcher
	embedder port.Embedder
	products port.ProductsReader
	variants port.VariantCounter
	events   port.SearchEventsProducer
	pool     *ants.Pool
}

// New constructs the search service. events may be nil when analytics
// production is not configured. poolSize bounds the concurrent
// variant-count fan-out of the local strategy.
func New(
	vector port.VectorSearcher,
	text port.TextSearcher,
	embedder port.Embedder,
	products port.ProductsReader,
	variants port.VariantCounter,
	events port.SearchEventsProducer,
	poolSize int,
) (*Service, error) {
	const op = "service.New"

	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Service{
		vector:   vector,
		text:     text,
		embedder: embedder,
		products: products,
		variants: variants,
		events:   events,
		pool:     pool,
	}, nil
}

func (s *Service) Close() {
	s.pool.Release()
}

// Search runs the fallback chain for one query. The chain is tried
// sequentially on purpose: a later strategy costs an embedding call,
// so it only runs once the earlier, cheaper ones came back empty or
// unavailable. Hard errors short-circuit with the cause attached so
// operators can tell "no matches" from "search broken".
func (s *Service) Search(
	ctx context.Context,
	query string,
	page, perPage int,
	filters domain.FilterOptions,
) (domain.SearchResult, error) {
	const op = "Service.Search"
	log := slog.With("op", op, "query", query)

	if page < 1 || perPage < 1 {
		return domain.SearchResult{}, fmt.Errorf(
			"%s: page=%d perPage=%d: %w", op, page, perPage, domain.ErrInvalidPage,
		)
	}
	if err := ctx.Err(); err != nil {
		return domain.SearchResult{}, fmt.Errorf("%s: %w", op, err)
	}

	offset := (page - 1) * perPage
	started := time.Now()

	res, strategy, err := s.runChain(ctx, log, query, perPage, offset, filters)
	if err != nil {
		return domain.SearchResult{}, fmt.Errorf("%s: %w", op, err)
	}

	s.produceEvent(ctx, domain.SearchEvent{
		Query:    query,
		Strategy: strategy,
		Results:  len(res.Products),
		TookMs:   time.Since(started).Milliseconds(),
	})

	return res, nil
}

func (s *Service) runChain(
	ctx context.Context,
	log *slog.Logger,
	query string,
	limit, offset int,
	filters domain.FilterOptions,
) (domain.SearchResult, string, error) {
	res, err := s.searchSemantic(ctx, query, limit, offset, filters)
	switch {
	case err == nil && len(res.Products) > 0:
		return res, strategySemantic, nil
	case err != nil && !soft(err):
		return domain.SearchResult{}, strategySemantic, err
	default:
		log.Debug("semantic strategy exhausted, trying lexical",
			"unavailable", err != nil)
	}

	res, err = s.searchLexical(ctx, query, limit, offset, filters)
	switch {
	case err == nil && len(res.Products) > 0:
		return res, strategyLexical, nil
	case err != nil && !soft(err):
		return domain.SearchResult{}, strategyLexical, err
	default:
		log.Debug("lexical strategy exhausted, trying local similarity",
			"unavailable", err != nil)
	}

	// Last resort: its output is authoritative, empty included.
	res, err = s.searchLocal(ctx, query, limit, offset, filters)
	if err != nil {
		return domain.SearchResult{}, strategyLocal, err
	}
	return res, strategyLocal, nil
}

func (s *Service) produceEvent(ctx context.Context, e domain.SearchEvent) {
	const op = "Service.produceEvent"

	if s.events == nil {
		return
	}
	// Analytics never fails the search.
	if err := s.events.ProduceSearchEvent(ctx, e); err != nil {
		slog.Warn("failed to produce search event", "op", op, "err", err)
	}
}
