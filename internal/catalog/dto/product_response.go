package dto

type RatingStatsResponse struct {
	AvgRating    float64     `json:"avgRating"`
	TotalRatings int         `json:"totalRatings"`
	RatingCounts map[int]int `json:"ratingCounts"`
}

type ReviewResponse struct {
	UserID    string `json:"userId"`
	Rating    int    `json:"rating"`
	Review    string `json:"review"`
	CreatedAt int64  `json:"createdAt"`
}

type SellerCountResponse struct {
	SellerName   string `json:"sellerName" bson:"_id"`
	ProductCount int64  `json:"productCount" bson:"product_count"`
}
