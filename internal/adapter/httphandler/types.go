package httphandler

type (
	Product struct {
		ID              int      `json:"id"`
		Name            string   `json:"name"`
		BasePrice       float64  `json:"base_price"`
		DiscountedPrice *float64 `json:"discounted_price,omitempty"`
		ImageURL        string   `json:"image_url,omitempty"`
		InStock         int      `json:"in_stock"`
		BrandNames      []string `json:"brand_names"`
		VariantCount    int      `json:"variant_count"`
		Similarity      *float64 `json:"similarity,omitempty"`
	}

	SearchResponse struct {
		Products []Product `json:"products"`
		Count    int       `json:"count"`
	}
)
