package httphandler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/ahmadnk31/5gfones-search/internal/core/discount"
	"github.com/ahmadnk31/5gfones-search/internal/core/domain"
	"github.com/ahmadnk31/5gfones-search/internal/core/port"
)

// GET /v1/search?q=&page=&per_page=&category_ids=&brand_ids=
//               &min_price=&max_price=&in_stock=&sort=
// (200 OK with results or empty list, 400 Bad request, 503 search down)

const (
	defaultPage    = 1
	defaultPerPage = 24
	maxPerPage     = 100
)

type SearchHandler struct {
	searcher  port.ProductSearcher
	discounts *discount.Cache
}

// RegisterSearch mounts the search endpoint. discounts may be nil
// when no discount table is configured.
func RegisterSearch(
	mux *http.ServeMux,
	searcher port.ProductSearcher,
	discounts *discount.Cache,
) {
	h := SearchHandler{searcher, discounts}
	mux.HandleFunc("GET /v1/search", h.GetSearch)
}

func (h SearchHandler) GetSearch(w http.ResponseWriter, r *http.Request) {
	const op = "SearchHandler.GetSearch"
	log := slog.With("op", op)

	query, page, perPage, filters, err := parseSearchParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		log.Warn("bad search request", "err", err)
		return
	}

	res, err := h.searcher.Search(r.Context(), query, page, perPage, filters)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPage) {
			http.Error(w, "invalid pagination", http.StatusBadRequest)
			log.Warn("bad pagination", "err", err)
			return
		}
		// Never leak backing-capability payloads to the caller.
		http.Error(
			w, "search temporarily unavailable", http.StatusServiceUnavailable,
		)
		log.Error("search failed", "query", query, "err", err)
		return
	}

	resp := h.toResponse(r.Context(), res)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Error("failed to write response body", "err", err)
		return
	}

	log.Info("search served",
		"query", query, "page", page, "results", len(resp.Products))
}

func (h SearchHandler) toResponse(
	ctx context.Context, res domain.SearchResult,
) SearchResponse {
	resp := SearchResponse{
		Products: make([]Product, 0, len(res.Products)),
		Count:    res.Count,
	}
	for _, p := range res.Products {
		resp.Products = append(resp.Products, Product{
			ID:              p.ID,
			Name:            p.Name,
			BasePrice:       p.BasePrice,
			DiscountedPrice: h.discountedPrice(ctx, p),
			ImageURL:        p.ImageURL,
			InStock:         p.InStock,
			BrandNames:      p.BrandNames,
			VariantCount:    p.VariantCount,
			Similarity:      p.Similarity,
		})
	}
	return resp
}

func (h SearchHandler) discountedPrice(
	ctx context.Context, p domain.ProductResult,
) *float64 {
	const op = "SearchHandler.discountedPrice"

	if h.discounts == nil || p.CategoryID == nil {
		return nil
	}
	rate, err := h.discounts.Rate(ctx, *p.CategoryID)
	if err != nil {
		slog.Warn("failed to read discount rate", "op", op, "err", err)
		return nil
	}
	if rate <= 0 {
		return nil
	}
	discounted := p.BasePrice * (1 - rate)
	return &discounted
}

func parseSearchParams(
	r *http.Request,
) (query string, page, perPage int, filters domain.FilterOptions, err error) {
	q := r.URL.Query()
	query = strings.TrimSpace(q.Get("q"))

	page, err = intParam(q.Get("page"), defaultPage)
	if err != nil || page < 1 {
		return "", 0, 0, filters, errors.New("invalid page")
	}
	perPage, err = intParam(q.Get("per_page"), defaultPerPage)
	if err != nil || perPage < 1 || perPage > maxPerPage {
		return "", 0, 0, filters, errors.New("invalid per_page")
	}

	filters.CategoryIDs, err = idsParam(q.Get("category_ids"))
	if err != nil {
		return "", 0, 0, filters, errors.New("invalid category_ids")
	}
	filters.BrandIDs, err = idsParam(q.Get("brand_ids"))
	if err != nil {
		return "", 0, 0, filters, errors.New("invalid brand_ids")
	}
	filters.MinPrice, err = priceParam(q.Get("min_price"))
	if err != nil {
		return "", 0, 0, filters, errors.New("invalid min_price")
	}
	filters.MaxPrice, err = priceParam(q.Get("max_price"))
	if err != nil {
		return "", 0, 0, filters, errors.New("invalid max_price")
	}
	filters.InStockOnly = q.Get("in_stock") == "true"

	filters.SortBy = domain.SortBy(q.Get("sort"))
	if !domain.ValidSort(filters.SortBy) {
		return "", 0, 0, filters, errors.New("invalid sort")
	}

	return query, page, perPage, filters, nil
}

func intParam(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}

func idsParam(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func priceParam(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return nil, errors.New("negative or malformed price")
	}
	return &v, nil
}
