package service

import (
	"context"

	"github.com/Gani-23/Oauth4.0/internal/catalog/domain"
	"github.com/Gani-23/Oauth4.0/internal/catalog/dto"
	pkgdto "github.com/Gani-23/Oauth4.0/pkg/dto"
)

type ProductService interface {
	AddProduct(ctx context.Context, data dto.ProductRequest) (product domain.Product, err error)
	GetProducts(ctx context.Context, param pkgdto.Filter) (resp pkgdto.PaginationResponse, err error)
	GetProductByID(ctx context.Context, id string) (product domain.Product, err error)
	UpdateProduct(ctx context.Context, data dto.ProductRequest) (err error)
	DeleteProduct(ctx context.Context, id string) (err error)
	UpsertRating(ctx context.Context, req dto.RatingRequest) (product domain.Product, err error)
	DeleteRating(ctx context.Context, productID string, userID string) (err error)
	GetRatingStats(ctx context.Context, productID string) (stats dto.RatingStatsResponse, err error)
	GetProductReviews(ctx context.Context, productID string) (reviews []dto.ReviewResponse, err error)
	GetTopRatedProducts(ctx context.Context, param pkgdto.TopRatedFilter) (products []domain.Product, err error)
	GetCategories(ctx context.Context) (categories []string, err error)
	GetFeaturedProducts(ctx context.Context, limit int) (products []domain.Product, err error)
	GetSellerCounts(ctx context.Context) (sellers []dto.SellerCountResponse, err error)
	ConsumeEvent()
}
