package dto

type Filter struct {
	Limit     int     `query:"limit"`
	Page      int     `query:"page"`
	Q         string  `query:"q"`
	Category  string  `query:"category"`
	MinPrice  float64 `query:"min_price"`
	MaxPrice  float64 `query:"max_price"`
	MinRating float64 `query:"min_rating"`
	SortBy    string  `query:"sort_by"`
	Order     string  `query:"order"`
}

type TopRatedFilter struct {
	Limit      int `query:"limit"`
	MinRatings int `query:"minRatings"`
}

type PaginationMetadata struct {
	TotalCount uint64 `json:"total_count"`
	Page       uint64 `json:"page"`
	Limit      int    `json:"limit"`
}

type PaginationResponse struct {
	Metadata PaginationMetadata `json:"_metadata"`
	Records  interface{}        `json:"records"`
}
