package port

import (
	"context"

	"github.com/ahmadnk31/5gfones-search/internal/core/domain"
)

// ProductSearcher is the single operation this subsystem exposes to
// its callers (storefront search pages, admin tools).
type ProductSearcher interface {
	Search(
		ctx context.Context,
		query string,
		page, perPage int,
		filters domain.FilterOptions,
	) (domain.SearchResult, error)
}

// VectorSearcher is the semantic search capability. The backing store
// owns embedding generation and nearest-neighbor ranking; zero results
// without error is distinct from [domain.ErrUnavailable], which an
// implementation must return when the capability is not present.
type VectorSearcher interface {
	SearchVector(
		ctx context.Context,
		query string,
		limit, offset int,
		filters domain.FilterOptions,
	) ([]domain.RawRecord, error)
}

// TextSearcher is the lexical full-text search capability. Filters and
// sort are applied at the query level; the returned total is the
// server-side matching count before pagination.
type TextSearcher interface {
	SearchText(
		ctx context.Context,
		query string,
		filters domain.FilterOptions,
		limit, offset int,
	) ([]domain.RawRecord, int, error)
}

// Embedder generates an embedding vector for free text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// ProductsReader bulk-fetches product records with their stored
// embedding vectors for in-process similarity scoring.
type ProductsReader interface {
	ProductsWithEmbeddings(
		ctx context.Context, limit, offset int,
	) ([]domain.EmbeddedRecord, error)
}

// VariantCounter reports the number of purchasable variants of one
// product.
type VariantCounter interface {
	CountVariants(ctx context.Context, productID int) (int, error)
}

// SearchEventsProducer publishes completed-search analytics events.
type SearchEventsProducer interface {
	ProduceSearchEvent(ctx context.Context, e domain.SearchEvent) error
}

// DiscountsReader loads the current per-category discount rates.
type DiscountsReader interface {
	CategoryDiscounts(ctx context.Context) (map[int]float64, error)
}
