package service

import (
	"context"
	"encoding/json"
	"sort"
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Gani-23/Oauth4.0/internal/catalog/domain"
	"github.com/Gani-23/Oauth4.0/internal/catalog/dto"
	pkgdto "github.com/Gani-23/Oauth4.0/pkg/dto"
	"github.com/Gani-23/Oauth4.0/pkg/errs"
)

type fakeProductRepository struct {
	products map[string]domain.Product
}

func newFakeProductRepository() *fakeProductRepository {
	return &fakeProductRepository{products: map[string]domain.Product{}}
}

func (f *fakeProductRepository) AddProduct(ctx context.Context, data domain.Product) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	data.ID = id
	f.products[id.Hex()] = data
	return id, nil
}

func (f *fakeProductRepository) GetProducts(ctx context.Context, param pkgdto.Filter) ([]domain.Product, error) {
	data := make([]domain.Product, 0, len(f.products))
	for _, p := range f.products {
		data = append(data, p)
	}
	return data, nil
}

func (f *fakeProductRepository) CountProducts(ctx context.Context, param pkgdto.Filter) (int64, error) {
	return int64(len(f.products)), nil
}

func (f *fakeProductRepository) GetProductByID(ctx context.Context, id string) (domain.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return domain.Product{}, errs.ErrNotFound
	}
	return product, nil
}

func (f *fakeProductRepository) UpdateProduct(ctx context.Context, data domain.Product) error {
	if _, ok := f.products[data.ID.Hex()]; !ok {
		return errs.ErrNotFound
	}
	f.products[data.ID.Hex()] = data
	return nil
}

func (f *fakeProductRepository) DeleteProduct(ctx context.Context, id string) error {
	if _, ok := f.products[id]; !ok {
		return errs.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepository) ReplaceProductRatings(ctx context.Context, id primitive.ObjectID, ratings []domain.Rating, avgRating float64, totalRatings int) error {
	product, ok := f.products[id.Hex()]
	if !ok {
		return errs.ErrNotFound
	}
	product.Ratings = ratings
	product.AvgRating = avgRating
	product.TotalRatings = totalRatings
	f.products[id.Hex()] = product
	return nil
}

func (f *fakeProductRepository) GetTopRatedProducts(ctx context.Context, limit int, minRatings int) ([]domain.Product, error) {
	data := make([]domain.Product, 0, len(f.products))
	for _, p := range f.products {
		if p.TotalRatings >= minRatings {
			data = append(data, p)
		}
	}
	sort.Slice(data, func(i, j int) bool {
		return data[i].AvgRating > data[j].AvgRating
	})
	if len(data) > limit {
		data = data[:limit]
	}
	return data, nil
}

func (f *fakeProductRepository) GetCategories(ctx context.Context) ([]string, error) {
	seen := map[string]struct{}{}
	categories := []string{}
	for _, p := range f.products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	return categories, nil
}

func (f *fakeProductRepository) GetFeaturedProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	return f.GetTopRatedProducts(ctx, limit, 0)
}

func (f *fakeProductRepository) GetSellerCounts(ctx context.Context) ([]dto.SellerCountResponse, error) {
	counts := map[string]int64{}
	for _, p := range f.products {
		counts[p.SellerName]++
	}
	data := []dto.SellerCountResponse{}
	for seller, count := range counts {
		data = append(data, dto.SellerCountResponse{SellerName: seller, ProductCount: count})
	}
	return data, nil
}

func (f *fakeProductRepository) GetProductsRatedByUser(ctx context.Context, userID string) ([]domain.Product, error) {
	data := []domain.Product{}
	for _, p := range f.products {
		for _, r := range p.Ratings {
			if r.UserID == userID {
				data = append(data, p)
				break
			}
		}
	}
	return data, nil
}

type fakeProducer struct {
	messages []kafkago.Message
}

func (f *fakeProducer) WriteMessages(msgs ...kafkago.Message) (int, error) {
	f.messages = append(f.messages, msgs...)
	return len(msgs), nil
}

func (f *fakeProducer) eventTypes() []string {
	types := make([]string, 0, len(f.messages))
	for _, msg := range f.messages {
		var kafkaMsg pkgdto.KafkaMessage
		if err := json.Unmarshal(msg.Value, &kafkaMsg); err != nil {
			continue
		}
		types = append(types, kafkaMsg.EventType)
	}
	return types
}

func setupProductService(t *testing.T) (ProductService, *fakeProductRepository, *fakeProducer) {
	t.Helper()

	repo := newFakeProductRepository()
	producer := &fakeProducer{}
	svc := CreateProductService(repo, producer, nil)

	return svc, repo, producer
}

func seedProduct(t *testing.T, repo *fakeProductRepository) string {
	t.Helper()

	id, err := repo.AddProduct(context.Background(), domain.Product{
		Title:         "Mechanical keyboard",
		Description:   "Tenkeyless, brown switches",
		ImgSrc:        "https://img.example.com/kb.png",
		Category:      "electronics",
		SellerName:    "Keeb Corner",
		SellerAddress: "12 Switch Street",
		Price:         89.99,
		Stock:         40,
		Ratings:       []domain.Rating{},
	})
	require.NoError(t, err)

	return id.Hex()
}

func TestUpsertRatingValidation(t *testing.T) {
	svc, repo, _ := setupProductService(t)
	productID := seedProduct(t, repo)

	testCases := []struct {
		Name        string
		Request     dto.RatingRequest
		ExpectedErr error
	}{
		{
			Name:        "Missing userId",
			Request:     dto.RatingRequest{ProductID: productID, Rating: 4},
			ExpectedErr: errs.ErrValidation,
		},
		{
			Name:        "Missing rating",
			Request:     dto.RatingRequest{ProductID: productID, UserID: "u1"},
			ExpectedErr: errs.ErrValidation,
		},
		{
			Name:        "Rating below range",
			Request:     dto.RatingRequest{ProductID: productID, UserID: "u1", Rating: 0},
			ExpectedErr: errs.ErrValidation,
		},
		{
			Name:        "Rating above range",
			Request:     dto.RatingRequest{ProductID: productID, UserID: "u1", Rating: 6},
			ExpectedErr: errs.ErrValidation,
		},
		{
			Name:    "Lower bound accepted",
			Request: dto.RatingRequest{ProductID: productID, UserID: "u1", Rating: 1},
		},
		{
			Name:    "Upper bound accepted",
			Request: dto.RatingRequest{ProductID: productID, UserID: "u2", Rating: 5},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			_, err := svc.UpsertRating(context.Background(), tc.Request)
			if tc.ExpectedErr != nil {
				assert.ErrorIs(t, err, tc.ExpectedErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestUpsertRatingUnknownProduct(t *testing.T) {
	svc, _, _ := setupProductService(t)

	_, err := svc.UpsertRating(context.Background(), dto.RatingRequest{
		ProductID: primitive.NewObjectID().Hex(),
		UserID:    "u1",
		Rating:    4,
	})

	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestUpsertRatingKeepsAggregatesConsistent(t *testing.T) {
	svc, repo, producer := setupProductService(t)
	productID := seedProduct(t, repo)
	ctx := context.Background()

	for _, req := range []dto.RatingRequest{
		{ProductID: productID, UserID: "u1", Rating: 5, Review: "excellent"},
		{ProductID: productID, UserID: "u2", Rating: 5},
		{ProductID: productID, UserID: "u3", Rating: 4, Review: "pretty good"},
	} {
		_, err := svc.UpsertRating(ctx, req)
		require.NoError(t, err)
	}

	stats, err := svc.GetRatingStats(ctx, productID)
	require.NoError(t, err)
	assert.InDelta(t, 14.0/3.0, stats.AvgRating, 1e-9)
	assert.Equal(t, 3, stats.TotalRatings)
	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 0, 4: 1, 5: 2}, stats.RatingCounts)

	assert.Contains(t, producer.eventTypes(), "product_rated")
}

func TestUpsertRatingIdempotentPerUser(t *testing.T) {
	svc, repo, _ := setupProductService(t)
	productID := seedProduct(t, repo)
	ctx := context.Background()

	req := dto.RatingRequest{ProductID: productID, UserID: "u1", Rating: 4, Review: "good"}
	_, err := svc.UpsertRating(ctx, req)
	require.NoError(t, err)
	product, err := svc.UpsertRating(ctx, req)
	require.NoError(t, err)

	assert.Len(t, product.Ratings, 1)
	assert.Equal(t, 4.0, product.AvgRating)
	assert.Equal(t, 1, product.TotalRatings)
}

func TestUpsertRatingEmptyReviewPreservesPrior(t *testing.T) {
	svc, repo, _ := setupProductService(t)
	productID := seedProduct(t, repo)
	ctx := context.Background()

	_, err := svc.UpsertRating(ctx, dto.RatingRequest{ProductID: productID, UserID: "u1", Rating: 5, Review: "keeper"})
	require.NoError(t, err)

	product, err := svc.UpsertRating(ctx, dto.RatingRequest{ProductID: productID, UserID: "u1", Rating: 3})
	require.NoError(t, err)

	require.Len(t, product.Ratings, 1)
	assert.Equal(t, "keeper", product.Ratings[0].Review)
	assert.Equal(t, 3, product.Ratings[0].Rating)
}

func TestDeleteRating(t *testing.T) {
	svc, repo, producer := setupProductService(t)
	productID := seedProduct(t, repo)
	ctx := context.Background()

	err := svc.DeleteRating(ctx, productID, "u1")
	assert.ErrorIs(t, err, errs.ErrRatingNotFound)

	err = svc.DeleteRating(ctx, primitive.NewObjectID().Hex(), "u1")
	assert.ErrorIs(t, err, errs.ErrNotFound)

	_, err = svc.UpsertRating(ctx, dto.RatingRequest{ProductID: productID, UserID: "u1", Rating: 5, Review: "to be removed"})
	require.NoError(t, err)
	_, err = svc.UpsertRating(ctx, dto.RatingRequest{ProductID: productID, UserID: "u2", Rating: 3})
	require.NoError(t, err)

	err = svc.DeleteRating(ctx, productID, "u1")
	require.NoError(t, err)

	stats, err := svc.GetRatingStats(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalRatings)
	assert.Equal(t, 3.0, stats.AvgRating)

	reviews, err := svc.GetProductReviews(ctx, productID)
	require.NoError(t, err)
	assert.Empty(t, reviews)

	assert.Contains(t, producer.eventTypes(), "rating_deleted")
}

func TestGetRatingStatsNoRatings(t *testing.T) {
	svc, repo, _ := setupProductService(t)
	productID := seedProduct(t, repo)

	stats, err := svc.GetRatingStats(context.Background(), productID)
	require.NoError(t, err)

	assert.Equal(t, 0.0, stats.AvgRating)
	assert.Equal(t, 0, stats.TotalRatings)
	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}, stats.RatingCounts)
}

func TestGetRatingStatsUnknownProduct(t *testing.T) {
	svc, _, _ := setupProductService(t)

	_, err := svc.GetRatingStats(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestGetProductReviewsOrdering(t *testing.T) {
	svc, repo, _ := setupProductService(t)
	productID := seedProduct(t, repo)
	ctx := context.Background()

	_, err := svc.UpsertRating(ctx, dto.RatingRequest{ProductID: productID, UserID: "u1", Rating: 5, Review: "first"})
	require.NoError(t, err)
	_, err = svc.UpsertRating(ctx, dto.RatingRequest{ProductID: productID, UserID: "u2", Rating: 4})
	require.NoError(t, err)
	_, err = svc.UpsertRating(ctx, dto.RatingRequest{ProductID: productID, UserID: "u3", Rating: 2, Review: "last"})
	require.NoError(t, err)

	reviews, err := svc.GetProductReviews(ctx, productID)
	require.NoError(t, err)

	require.Len(t, reviews, 2)
	assert.Equal(t, "last", reviews[0].Review)
	assert.Equal(t, "first", reviews[1].Review)
}

func TestGetTopRatedProducts(t *testing.T) {
	svc, repo, _ := setupProductService(t)
	ctx := context.Background()

	highButSingle := seedProduct(t, repo)
	popular := seedProduct(t, repo)
	mediocre := seedProduct(t, repo)

	_, err := svc.UpsertRating(ctx, dto.RatingRequest{ProductID: highButSingle, UserID: "u1", Rating: 5})
	require.NoError(t, err)

	for _, req := range []dto.RatingRequest{
		{ProductID: popular, UserID: "u1", Rating: 5},
		{ProductID: popular, UserID: "u2", Rating: 4},
		{ProductID: mediocre, UserID: "u1", Rating: 3},
		{ProductID: mediocre, UserID: "u2", Rating: 2},
	} {
		_, err := svc.UpsertRating(ctx, req)
		require.NoError(t, err)
	}

	products, err := svc.GetTopRatedProducts(ctx, pkgdto.TopRatedFilter{Limit: 2, MinRatings: 2})
	require.NoError(t, err)

	require.Len(t, products, 2)
	assert.Equal(t, popular, products[0].ID.Hex())
	assert.Equal(t, mediocre, products[1].ID.Hex())

	_, err = svc.GetTopRatedProducts(ctx, pkgdto.TopRatedFilter{Limit: -1})
	assert.ErrorIs(t, err, errs.ErrInvalidQueryParam)
}

func TestGetProductsRejectsNegativePaging(t *testing.T) {
	svc, _, _ := setupProductService(t)

	_, err := svc.GetProducts(context.Background(), pkgdto.Filter{Page: -1})
	assert.ErrorIs(t, err, errs.ErrInvalidQueryParam)

	_, err = svc.GetProducts(context.Background(), pkgdto.Filter{Limit: -5})
	assert.ErrorIs(t, err, errs.ErrInvalidQueryParam)
}

func TestAddProductValidation(t *testing.T) {
	svc, _, producer := setupProductService(t)

	_, err := svc.AddProduct(context.Background(), dto.ProductRequest{Title: "incomplete"})
	assert.ErrorIs(t, err, errs.ErrValidation)

	product, err := svc.AddProduct(context.Background(), dto.ProductRequest{
		Title:         "Desk lamp",
		Description:   "Warm white, dimmable",
		ImgSrc:        "https://img.example.com/lamp.png",
		Category:      "home",
		SellerName:    "Bright Things",
		SellerAddress: "7 Lumen Lane",
		Price:         25,
		Stock:         12,
	})
	require.NoError(t, err)
	assert.False(t, product.ID.IsZero())
	assert.Equal(t, 0, product.TotalRatings)

	assert.Contains(t, producer.eventTypes(), "product_created")
}

func TestRemoveUserRatingsScrubsAllProducts(t *testing.T) {
	svc, repo, _ := setupProductService(t)
	ctx := context.Background()

	first := seedProduct(t, repo)
	second := seedProduct(t, repo)

	for _, req := range []dto.RatingRequest{
		{ProductID: first, UserID: "leaver", Rating: 5},
		{ProductID: first, UserID: "stayer", Rating: 3},
		{ProductID: second, UserID: "leaver", Rating: 1},
	} {
		_, err := svc.UpsertRating(ctx, req)
		require.NoError(t, err)
	}

	impl := svc.(*ProductServiceImpl)
	require.NoError(t, impl.RemoveUserRatings(ctx, "leaver"))

	stats, err := svc.GetRatingStats(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalRatings)
	assert.Equal(t, 3.0, stats.AvgRating)

	stats, err = svc.GetRatingStats(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalRatings)
	assert.Equal(t, 0.0, stats.AvgRating)
}
