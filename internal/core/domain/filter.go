package domain

import (
	"slices"
	"sort"
)

type SortBy string

const (
	SortRelevance SortBy = "relevance"
	SortNewest    SortBy = "newest"
	SortOldest    SortBy = "oldest"
	SortPriceAsc  SortBy = "price_asc"
	SortPriceDesc SortBy = "price_desc"
	SortNameAsc   SortBy = "name_asc"
	SortNameDesc  SortBy = "name_desc"
)

// ValidSort reports whether s is a member of the sort enumeration.
// The empty string is valid and means SortRelevance.
func ValidSort(s SortBy) bool {
	switch s {
	case "", SortRelevance, SortNewest, SortOldest,
		SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc:
		return true
	}
	return false
}

// FilterOptions is the caller-supplied declarative filter set.
// All supplied criteria are ANDed together; within CategoryIDs and
// BrandIDs the match is OR against the set.
type FilterOptions struct {
	CategoryIDs []int
	BrandIDs    []int
	MinPrice    *float64
	MaxPrice    *float64
	InStockOnly bool
	SortBy      SortBy
}

// HasPredicates reports whether any filter criterion is active,
// ignoring the sort order.
func (f FilterOptions) HasPredicates() bool {
	return len(f.CategoryIDs) > 0 || len(f.BrandIDs) > 0 ||
		f.MinPrice != nil || f.MaxPrice != nil || f.InStockOnly
}

// Matches reports whether p satisfies every active predicate.
// A product lacking CategoryID or BrandID fails the corresponding
// filter when it is active.
func (f FilterOptions) Matches(p ProductResult) bool {
	if f.MinPrice != nil && p.BasePrice < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.BasePrice > *f.MaxPrice {
		return false
	}
	if len(f.CategoryIDs) > 0 {
		if p.CategoryID == nil || !slices.Contains(f.CategoryIDs, *p.CategoryID) {
			return false
		}
	}
	if len(f.BrandIDs) > 0 {
		if p.BrandID == nil || !slices.Contains(f.BrandIDs, *p.BrandID) {
			return false
		}
	}
	if f.InStockOnly && p.InStock <= 0 {
		return false
	}
	return true
}

// ApplyFilters returns the subset of ps satisfying f, filtered and
// sorted. It is the single source of truth for sort semantics and is
// invoked whenever a strategy's backing query could not apply the
// filter set natively. The input slice is not mutated.
func ApplyFilters(ps []ProductResult, f FilterOptions) []ProductResult {
	out := make([]ProductResult, 0, len(ps))
	for _, p := range ps {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	SortProducts(out, f.SortBy)
	return out
}

// SortProducts orders ps in place by the given mode. Sorting is
// stable: equal-key elements retain their relative input order, which
// preserves the pre-ranking the strategies produce.
func SortProducts(ps []ProductResult, by SortBy) {
	switch by {
	case SortNewest:
		// Product ID is a documented proxy for recency: the backing
		// queries do not select created_at at this point.
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].ID > ps[j].ID })
	case SortOldest:
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].ID < ps[j].ID })
	case SortPriceAsc:
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].BasePrice < ps[j].BasePrice })
	case SortPriceDesc:
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].BasePrice > ps[j].BasePrice })
	case SortNameAsc:
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].Name < ps[j].Name })
	case SortNameDesc:
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].Name > ps[j].Name })
	default:
		// Relevance: re-rank by similarity only when every item
		// carries a score; otherwise the incoming order is the
		// strategy's own ranking and must not be disturbed.
		if !allScored(ps) {
			return
		}
		sort.SliceStable(ps, func(i, j int) bool {
			return *ps[i].Similarity > *ps[j].Similarity
		})
	}
}

func allScored(ps []ProductResult) bool {
	if len(ps) == 0 {
		return false
	}
	for _, p := range ps {
		if p.Similarity == nil {
			return false
		}
	}
	return true
}
