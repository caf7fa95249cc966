package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gani-23/Oauth4.0/internal/catalog/domain"
	"github.com/Gani-23/Oauth4.0/internal/catalog/dto"
	pkgdto "github.com/Gani-23/Oauth4.0/pkg/dto"
	"github.com/Gani-23/Oauth4.0/pkg/errs"
)

type stubProductService struct {
	upsertRating        func(ctx context.Context, req dto.RatingRequest) (domain.Product, error)
	deleteRating        func(ctx context.Context, productID string, userID string) error
	getRatingStats      func(ctx context.Context, productID string) (dto.RatingStatsResponse, error)
	getTopRatedProducts func(ctx context.Context, param pkgdto.TopRatedFilter) ([]domain.Product, error)
}

func (s *stubProductService) AddProduct(ctx context.Context, data dto.ProductRequest) (domain.Product, error) {
	return domain.Product{}, nil
}

func (s *stubProductService) GetProducts(ctx context.Context, param pkgdto.Filter) (pkgdto.PaginationResponse, error) {
	return pkgdto.PaginationResponse{}, nil
}

func (s *stubProductService) GetProductByID(ctx context.Context, id string) (domain.Product, error) {
	return domain.Product{}, nil
}

func (s *stubProductService) UpdateProduct(ctx context.Context, data dto.ProductRequest) error {
	return nil
}

func (s *stubProductService) DeleteProduct(ctx context.Context, id string) error {
	return nil
}

func (s *stubProductService) UpsertRating(ctx context.Context, req dto.RatingRequest) (domain.Product, error) {
	return s.upsertRating(ctx, req)
}

func (s *stubProductService) DeleteRating(ctx context.Context, productID string, userID string) error {
	return s.deleteRating(ctx, productID, userID)
}

func (s *stubProductService) GetRatingStats(ctx context.Context, productID string) (dto.RatingStatsResponse, error) {
	return s.getRatingStats(ctx, productID)
}

func (s *stubProductService) GetProductReviews(ctx context.Context, productID string) ([]dto.ReviewResponse, error) {
	return nil, nil
}

func (s *stubProductService) GetTopRatedProducts(ctx context.Context, param pkgdto.TopRatedFilter) ([]domain.Product, error) {
	return s.getTopRatedProducts(ctx, param)
}

func (s *stubProductService) GetCategories(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (s *stubProductService) GetFeaturedProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	return nil, nil
}

func (s *stubProductService) GetSellerCounts(ctx context.Context) ([]dto.SellerCountResponse, error) {
	return nil, nil
}

func (s *stubProductService) ConsumeEvent() {}

func noopAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return next
}

func setupEcho(svc *stubProductService) *echo.Echo {
	e := echo.New()
	g := e.Group("/api/v1")
	CreateProductController(g, svc, noopAuth)
	return e
}

func TestUpsertRatingEndpoint(t *testing.T) {
	testCases := []struct {
		Name           string
		Body           string
		ServiceErr     error
		ExpectedStatus int
	}{
		{
			Name:           "Valid request",
			Body:           `{"userId": "u1", "rating": 5, "review": "great"}`,
			ExpectedStatus: http.StatusOK,
		},
		{
			Name:           "Invalid payload type",
			Body:           `{"userId": "u1", "rating": "five"}`,
			ExpectedStatus: http.StatusBadRequest,
		},
		{
			Name:           "Validation failure from service",
			Body:           `{"userId": "u1", "rating": 9}`,
			ServiceErr:     errs.ErrValidation,
			ExpectedStatus: http.StatusBadRequest,
		},
		{
			Name:           "Unknown product",
			Body:           `{"userId": "u1", "rating": 4}`,
			ServiceErr:     errs.ErrNotFound,
			ExpectedStatus: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			svc := &stubProductService{
				upsertRating: func(ctx context.Context, req dto.RatingRequest) (domain.Product, error) {
					if tc.ServiceErr != nil {
						return domain.Product{}, tc.ServiceErr
					}
					assert.Equal(t, "p1", req.ProductID)
					return domain.Product{AvgRating: 5, TotalRatings: 1}, nil
				},
			}
			e := setupEcho(svc)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/products/p1/rate", strings.NewReader(tc.Body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tc.ExpectedStatus, rec.Code)

			if tc.ExpectedStatus != http.StatusOK {
				var resp map[string]interface{}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, "error", resp["status"])
			}
		})
	}
}

func TestDeleteRatingEndpoint(t *testing.T) {
	svc := &stubProductService{
		deleteRating: func(ctx context.Context, productID string, userID string) error {
			assert.Equal(t, "p1", productID)
			assert.Equal(t, "u1", userID)
			return errs.ErrRatingNotFound
		},
	}
	e := setupEcho(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/products/p1/ratings/u1", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), errs.ErrRatingNotFound.Error())
}

func TestGetRatingStatsEndpoint(t *testing.T) {
	svc := &stubProductService{
		getRatingStats: func(ctx context.Context, productID string) (dto.RatingStatsResponse, error) {
			return dto.RatingStatsResponse{
				AvgRating:    4.5,
				TotalRatings: 2,
				RatingCounts: map[int]int{1: 0, 2: 0, 3: 0, 4: 1, 5: 1},
			}, nil
		},
	}
	e := setupEcho(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/p1/ratings", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"avgRating":4.5`)
	assert.Contains(t, rec.Body.String(), `"totalRatings":2`)
}

func TestTopRatedEndpointQueryValidation(t *testing.T) {
	svc := &stubProductService{
		getTopRatedProducts: func(ctx context.Context, param pkgdto.TopRatedFilter) ([]domain.Product, error) {
			assert.Equal(t, 2, param.Limit)
			assert.Equal(t, 2, param.MinRatings)
			return []domain.Product{}, nil
		},
	}
	e := setupEcho(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/top-rated?limit=2&minRatings=2", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/products/top-rated?limit=abc", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), errs.ErrInvalidQueryParam.Error())
}
