package domain

type (
	// A ProductResult is the canonical post-normalization search hit.
	// Every result carries ID, Name, BasePrice and InStock; the
	// remaining fields depend on what the originating strategy selected.
	ProductResult struct {
		ID           int
		Name         string
		BasePrice    float64
		ImageURL     string
		InStock      int
		BrandNames   []string
		CategoryID   *int
		BrandID      *int
		VariantCount int
		Similarity   *float64
	}

	// A SearchResult is the paginated output of one search call.
	// Count is the total matching count before pagination; it may be
	// approximate when the strategy filtered in memory.
	SearchResult struct {
		Products []ProductResult
		Count    int
	}

	// A SearchEvent describes one completed search call for analytics.
	SearchEvent struct {
		Query    string
		Strategy string
		Results  int
		TookMs   int64
	}
)

// Purchasable reports whether the product can be added to a cart.
func (p ProductResult) Purchasable() bool {
	return p.InStock > 0
}
