package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Gani-23/Oauth4.0/internal/catalog/domain"
	"github.com/Gani-23/Oauth4.0/internal/catalog/dto"
	pkgdto "github.com/Gani-23/Oauth4.0/pkg/dto"
)

type ProductRepository interface {
	AddProduct(ctx context.Context, data domain.Product) (id primitive.ObjectID, err error)
	GetProducts(ctx context.Context, param pkgdto.Filter) (data []domain.Product, err error)
	CountProducts(ctx context.Context, param pkgdto.Filter) (count int64, err error)
	GetProductByID(ctx context.Context, id string) (product domain.Product, err error)
	UpdateProduct(ctx context.Context, data domain.Product) (err error)
	DeleteProduct(ctx context.Context, id string) (err error)
	ReplaceProductRatings(ctx context.Context, id primitive.ObjectID, ratings []domain.Rating, avgRating float64, totalRatings int) (err error)
	GetTopRatedProducts(ctx context.Context, limit int, minRatings int) (data []domain.Product, err error)
	GetCategories(ctx context.Context) (categories []string, err error)
	GetFeaturedProducts(ctx context.Context, limit int) (data []domain.Product, err error)
	GetSellerCounts(ctx context.Context) (data []dto.SellerCountResponse, err error)
	GetProductsRatedByUser(ctx context.Context, userID string) (data []domain.Product, err error)
}
