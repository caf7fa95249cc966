package dto

type ProductRequest struct {
	ID            string  `json:"id" param:"id"`
	Title         string  `json:"title" validate:"required"`
	Description   string  `json:"description" validate:"required"`
	ImgSrc        string  `json:"imgSrc" validate:"required"`
	Category      string  `json:"category" validate:"required"`
	SellerName    string  `json:"sellerName" validate:"required"`
	SellerAddress string  `json:"sellerAddress" validate:"required"`
	Price         float64 `json:"price" validate:"gte=0"`
	Stock         int64   `json:"stock" validate:"gte=0"`
}

type RatingRequest struct {
	ProductID string `json:"-" param:"id"`
	UserID    string `json:"userId" validate:"required"`
	Rating    int    `json:"rating" validate:"required,gte=1,lte=5"`
	Review    string `json:"review"`
}
