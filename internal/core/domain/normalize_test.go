package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/ahmadnk31/5gfones-search/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sptr(s string) *string { return &s }

func rawProduct(id int) domain.RawRecord {
	stock := 3
	price := 99.9
	name := "Test Phone"
	return domain.RawRecord{
		ID:        &id,
		Name:      &name,
		BasePrice: &price,
		InStock:   &stock,
	}
}

func TestNormalize(t *testing.T) {

	t.Run("RequiredFieldsPresent", func(t *testing.T) {
		ps, err := domain.Normalize([]domain.RawRecord{rawProduct(1)})
		require.NoError(t, err)
		require.Len(t, ps, 1)

		assert.Equal(t, 1, ps[0].ID)
		assert.Equal(t, "Test Phone", ps[0].Name)
		assert.Equal(t, 99.9, ps[0].BasePrice)
		assert.Equal(t, 3, ps[0].InStock)
	})

	t.Run("BrandNamesAlwaysList", func(t *testing.T) {
		ps, err := domain.Normalize([]domain.RawRecord{rawProduct(1)})
		require.NoError(t, err)

		assert.NotNil(t, ps[0].BrandNames)
		assert.Empty(t, ps[0].BrandNames)
	})

	t.Run("VariantCountDefaultsZero", func(t *testing.T) {
		r := rawProduct(1)
		r.VariantCount = -5

		ps, err := domain.Normalize([]domain.RawRecord{r})
		require.NoError(t, err)

		assert.Zero(t, ps[0].VariantCount)
	})

	t.Run("MissingIDFailsBatch", func(t *testing.T) {
		good := rawProduct(1)
		bad := rawProduct(2)
		bad.ID = nil

		_, err := domain.Normalize([]domain.RawRecord{good, bad})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrMalformedRecord)
	})

	t.Run("MissingNameFailsBatch", func(t *testing.T) {
		bad := rawProduct(1)
		bad.Name = sptr("")

		_, err := domain.Normalize([]domain.RawRecord{bad})
		assert.ErrorIs(t, err, domain.ErrMalformedRecord)
	})

	t.Run("MissingPriceFailsBatch", func(t *testing.T) {
		bad := rawProduct(1)
		bad.BasePrice = nil

		_, err := domain.Normalize([]domain.RawRecord{bad})
		assert.ErrorIs(t, err, domain.ErrMalformedRecord)
	})

	t.Run("MissingStockFailsBatch", func(t *testing.T) {
		bad := rawProduct(1)
		bad.InStock = nil

		_, err := domain.Normalize([]domain.RawRecord{bad})
		assert.ErrorIs(t, err, domain.ErrMalformedRecord)
	})

	t.Run("EmptyBatch", func(t *testing.T) {
		ps, err := domain.Normalize(nil)
		require.NoError(t, err)
		assert.Empty(t, ps)
	})

	t.Run("Idempotent", func(t *testing.T) {
		r := rawProduct(1)
		r.Brand = domain.BrandField{Names: []string{"Acme", "Globex"}}
		r.VariantCount = 4
		sim := 0.5
		r.Similarity = &sim

		first, err := domain.Normalize([]domain.RawRecord{r})
		require.NoError(t, err)

		again, err := domain.Normalize([]domain.RawRecord{first[0].Raw()})
		require.NoError(t, err)

		assert.Equal(t, first, again)
	})
}

func TestBrandFieldUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []string
	}{
		{"Null", `null`, nil},
		{"SingleObject", `{"name":"Acme"}`, []string{"Acme"}},
		{"ObjectList", `[{"name":"Acme"},{"name":"Globex"}]`, []string{"Acme", "Globex"}},
		{"StringList", `["Acme","Globex"]`, []string{"Acme", "Globex"}},
		{"BareString", `"Acme"`, []string{"Acme"}},
		{"EmptyList", `[]`, nil},
		{"ObjectWithoutName", `{}`, nil},
		{"ListSkipsEmptyNames", `[{"name":""},{"name":"Acme"}]`, []string{"Acme"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var b domain.BrandField
			err := json.Unmarshal([]byte(tc.data), &b)
			require.NoError(t, err)
			assert.Equal(t, tc.want, b.Names)
		})
	}

	t.Run("MalformedJSON", func(t *testing.T) {
		var b domain.BrandField
		err := json.Unmarshal([]byte(`{bad`), &b)
		assert.Error(t, err)
	})
}
