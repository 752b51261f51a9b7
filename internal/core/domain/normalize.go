package domain

import (
	"encoding/json"
	"fmt"
)

type (
	// A RawRecord is a backing-strategy record at the ingestion
	// boundary. Required fields are pointers so absence is
	// distinguishable from the zero value.
	RawRecord struct {
		ID           *int
		Name         *string
		BasePrice    *float64
		ImageURL     string
		InStock      *int
		Brand        BrandField
		CategoryID   *int
		BrandID      *int
		VariantCount int
		Similarity   *float64
	}

	// An EmbeddedRecord is a raw record bundled with its precomputed
	// embedding vector. A nil Embedding means none is stored.
	EmbeddedRecord struct {
		RawRecord
		Embedding []float32
	}
)

// BrandField absorbs the differing brand shapes the backing queries
// produce: a single nested object, a list of objects, a bare string,
// a list of strings, or null. It never leaves the normalizer as
// anything but a flat name list.
type BrandField struct {
	Names []string
}

type brandObject struct {
	Name string `json:"name"`
}

func (b *BrandField) UnmarshalJSON(data []byte) error {
	b.Names = nil
	if string(data) == "null" {
		return nil
	}

	switch data[0] {
	case '[':
		var objs []brandObject
		if err := json.Unmarshal(data, &objs); err == nil {
			for _, o := range objs {
				if o.Name != "" {
					b.Names = append(b.Names, o.Name)
				}
			}
			return nil
		}
		var names []string
		if err := json.Unmarshal(data, &names); err != nil {
			return err
		}
		for _, n := range names {
			if n != "" {
				b.Names = append(b.Names, n)
			}
		}
		return nil
	case '{':
		var o brandObject
		if err := json.Unmarshal(data, &o); err != nil {
			return err
		}
		if o.Name != "" {
			b.Names = []string{o.Name}
		}
		return nil
	default:
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		if name != "" {
			b.Names = []string{name}
		}
		return nil
	}
}

// Normalize converts raw records into the canonical ProductResult
// list. It fails the whole batch on the first record missing a
// required field: skipping would silently shrink server-side counts
// and break pagination math downstream. Pure transform, idempotent.
func Normalize(rs []RawRecord) ([]ProductResult, error) {
	const op = "domain.Normalize"

	ps := make([]ProductResult, 0, len(rs))
	for i, r := range rs {
		p, err := r.normalize()
		if err != nil {
			return nil, fmt.Errorf("%s: record %d: %w", op, i, err)
		}
		ps = append(ps, p)
	}
	return ps, nil
}

func (r RawRecord) normalize() (ProductResult, error) {
	switch {
	case r.ID == nil:
		return ProductResult{}, fmt.Errorf("%w: missing id", ErrMalformedRecord)
	case r.Name == nil || *r.Name == "":
		return ProductResult{}, fmt.Errorf("%w: missing name", ErrMalformedRecord)
	case r.BasePrice == nil:
		return ProductResult{}, fmt.Errorf("%w: missing base price", ErrMalformedRecord)
	case r.InStock == nil:
		return ProductResult{}, fmt.Errorf("%w: missing stock", ErrMalformedRecord)
	}

	brandNames := r.Brand.Names
	if brandNames == nil {
		brandNames = []string{}
	}

	variantCount := r.VariantCount
	if variantCount < 0 {
		variantCount = 0
	}

	return ProductResult{
		ID:           *r.ID,
		Name:         *r.Name,
		BasePrice:    *r.BasePrice,
		ImageURL:     r.ImageURL,
		InStock:      *r.InStock,
		BrandNames:   brandNames,
		CategoryID:   r.CategoryID,
		BrandID:      r.BrandID,
		VariantCount: variantCount,
		Similarity:   r.Similarity,
	}, nil
}

// Raw converts an already-normalized result back into a raw record.
// Normalize(Raw(p)) yields p unchanged.
func (p ProductResult) Raw() RawRecord {
	id, name, price, stock := p.ID, p.Name, p.BasePrice, p.InStock
	return RawRecord{
		ID:           &id,
		Name:         &name,
		BasePrice:    &price,
		ImageURL:     p.ImageURL,
		InStock:      &stock,
		Brand:        BrandField{Names: p.BrandNames},
		CategoryID:   p.CategoryID,
		BrandID:      p.BrandID,
		VariantCount: p.VariantCount,
		Similarity:   p.Similarity,
	}
}
