package httphandler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ahmadnk31/5gfones-search/internal/adapter/httphandler"
	"github.com/ahmadnk31/5gfones-search/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSearcher struct {
	mock.Mock
}

func (m *MockSearcher) Search(
	ctx context.Context, query string, page, perPage int,
	filters domain.FilterOptions,
) (domain.SearchResult, error) {
	args := m.Called(ctx, query, page, perPage, filters)
	return args.Get(0).(domain.SearchResult), args.Error(1)
}

func newServer(searcher *MockSearcher) *http.ServeMux {
	mux := http.NewServeMux()
	httphandler.RegisterSearch(mux, searcher, nil)
	return mux
}

func doGet(t *testing.T, mux *http.ServeMux, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestGetSearch(t *testing.T) {

	t.Run("ResultsServed", func(t *testing.T) {
		searcher := new(MockSearcher)
		searcher.On("Search",
			mock.Anything, "iphone", 1, 24, mock.Anything,
		).Return(domain.SearchResult{
			Products: []domain.ProductResult{{
				ID: 1, Name: "iPhone 15", BasePrice: 999,
				InStock: 2, BrandNames: []string{"Apple"},
			}},
			Count: 1,
		}, nil)

		rec := doGet(t, newServer(searcher), "/v1/search?q=iphone")

		require.Equal(t, http.StatusOK, rec.Code)

		var resp httphandler.SearchResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Products, 1)
		assert.Equal(t, "iPhone 15", resp.Products[0].Name)
		assert.Equal(t, 1, resp.Count)
	})

	t.Run("EmptyIsOKNotError", func(t *testing.T) {
		searcher := new(MockSearcher)
		searcher.On("Search",
			mock.Anything, "nothing", 1, 24, mock.Anything,
		).Return(domain.SearchResult{Products: []domain.ProductResult{}}, nil)

		rec := doGet(t, newServer(searcher), "/v1/search?q=nothing")

		require.Equal(t, http.StatusOK, rec.Code)

		var resp httphandler.SearchResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Empty(t, resp.Products)
		assert.Zero(t, resp.Count)
	})

	t.Run("SearchDownIs503WithGenericMessage", func(t *testing.T) {
		searcher := new(MockSearcher)
		searcher.On("Search",
			mock.Anything, "iphone", 1, 24, mock.Anything,
		).Return(domain.SearchResult{}, errors.New("pgx: SQLSTATE 57014"))

		rec := doGet(t, newServer(searcher), "/v1/search?q=iphone")

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "search temporarily unavailable")
		assert.NotContains(t, rec.Body.String(), "SQLSTATE")
	})

	t.Run("FiltersParsed", func(t *testing.T) {
		searcher := new(MockSearcher)
		searcher.On("Search",
			mock.Anything, "phone", 2, 10,
			mock.MatchedBy(func(f domain.FilterOptions) bool {
				return len(f.CategoryIDs) == 2 &&
					f.CategoryIDs[0] == 3 && f.CategoryIDs[1] == 4 &&
					f.MinPrice != nil && *f.MinPrice == 100 &&
					f.InStockOnly &&
					f.SortBy == domain.SortPriceAsc
			}),
		).Return(domain.SearchResult{Products: []domain.ProductResult{}}, nil)

		rec := doGet(t, newServer(searcher),
			"/v1/search?q=phone&page=2&per_page=10&category_ids=3,4"+
				"&min_price=100&in_stock=true&sort=price_asc")

		require.Equal(t, http.StatusOK, rec.Code)
		searcher.AssertExpectations(t)
	})

	t.Run("InvalidPage", func(t *testing.T) {
		rec := doGet(t, newServer(new(MockSearcher)), "/v1/search?q=x&page=0")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("InvalidSort", func(t *testing.T) {
		rec := doGet(t, newServer(new(MockSearcher)), "/v1/search?q=x&sort=rating")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("InvalidCategoryIDs", func(t *testing.T) {
		rec := doGet(t, newServer(new(MockSearcher)),
			"/v1/search?q=x&category_ids=a,b")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("NegativePrice", func(t *testing.T) {
		rec := doGet(t, newServer(new(MockSearcher)),
			"/v1/search?q=x&min_price=-5")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("InvalidPageRejectedByService", func(t *testing.T) {
		searcher := new(MockSearcher)
		searcher.On("Search",
			mock.Anything, "x", 1, 24, mock.Anything,
		).Return(domain.SearchResult{}, domain.ErrInvalidPage)

		rec := doGet(t, newServer(searcher), "/v1/search?q=x")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
