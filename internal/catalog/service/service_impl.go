package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/Gani-23/Oauth4.0/internal/catalog/domain"
	"github.com/Gani-23/Oauth4.0/internal/catalog/dto"
	"github.com/Gani-23/Oauth4.0/internal/catalog/repository"
	"github.com/Gani-23/Oauth4.0/internal/infrastructure/messagequeue/kafka"
	pkgdto "github.com/Gani-23/Oauth4.0/pkg/dto"
	"github.com/Gani-23/Oauth4.0/pkg/errs"
	"github.com/Gani-23/Oauth4.0/pkg/metrics"
	"github.com/Gani-23/Oauth4.0/pkg/validator"
)

const (
	defaultPage          = 1
	defaultLimit         = 10
	defaultTopRatedLimit = 10
	defaultMinRatings    = 1
)

type ProductServiceImpl struct {
	repo          repository.ProductRepository
	kafkaProducer kafka.Producer
	kafkaReader   *kafkago.Reader
}

func CreateProductService(repo repository.ProductRepository, kafkaProducer kafka.Producer, kafkaReader *kafkago.Reader) ProductService {
	return &ProductServiceImpl{repo: repo, kafkaProducer: kafkaProducer, kafkaReader: kafkaReader}
}

func (s *ProductServiceImpl) AddProduct(ctx context.Context, data dto.ProductRequest) (product domain.Product, err error) {
	details, err := validator.Validate(data)
	if err != nil {
		log.Ctx(ctx).Error().Interface("details", details).Str("component", "AddProduct").Msg("payload validation failed")
		return
	}

	timestamp := time.Now().UnixMilli()
	product = domain.Product{
		Title:         data.Title,
		Description:   data.Description,
		ImgSrc:        data.ImgSrc,
		Category:      data.Category,
		SellerName:    data.SellerName,
		SellerAddress: data.SellerAddress,
		Price:         data.Price,
		Stock:         data.Stock,
		Ratings:       []domain.Rating{},
		CreatedAt:     timestamp,
		UpdatedAt:     timestamp,
	}

	productID, err := s.repo.AddProduct(ctx, product)
	if err != nil {
		return
	}

	product.ID = productID
	s.publishEvent(ctx, "product_created", product)

	return product, nil
}

func (s *ProductServiceImpl) GetProducts(ctx context.Context, param pkgdto.Filter) (resp pkgdto.PaginationResponse, err error) {
	if param.Page < 0 || param.Limit < 0 {
		return resp, errs.ErrInvalidQueryParam
	}

	if param.Page == 0 {
		param.Page = defaultPage
	}
	if param.Limit == 0 {
		param.Limit = defaultLimit
	}

	data, err := s.repo.GetProducts(ctx, param)
	if err != nil {
		return
	}

	count, err := s.repo.CountProducts(ctx, param)
	if err != nil {
		return
	}

	if data == nil {
		data = []domain.Product{}
	}

	resp = pkgdto.PaginationResponse{
		Metadata: pkgdto.PaginationMetadata{
			TotalCount: uint64(count),
			Page:       uint64(param.Page),
			Limit:      param.Limit,
		},
		Records: data,
	}

	return resp, nil
}

func (s *ProductServiceImpl) GetProductByID(ctx context.Context, id string) (product domain.Product, err error) {
	return s.repo.GetProductByID(ctx, id)
}

func (s *ProductServiceImpl) UpdateProduct(ctx context.Context, data dto.ProductRequest) (err error) {
	details, err := validator.Validate(data)
	if err != nil {
		log.Ctx(ctx).Error().Interface("details", details).Str("component", "UpdateProduct").Msg("payload validation failed")
		return
	}

	product, err := s.repo.GetProductByID(ctx, data.ID)
	if err != nil {
		return
	}

	product.Title = data.Title
	product.Description = data.Description
	product.ImgSrc = data.ImgSrc
	product.Category = data.Category
	product.SellerName = data.SellerName
	product.SellerAddress = data.SellerAddress
	product.Price = data.Price
	product.Stock = data.Stock
	product.UpdatedAt = time.Now().UnixMilli()

	if err = s.repo.UpdateProduct(ctx, product); err != nil {
		return
	}

	s.publishEvent(ctx, "product_updated", product)

	return nil
}

func (s *ProductServiceImpl) DeleteProduct(ctx context.Context, id string) (err error) {
	if err = s.repo.DeleteProduct(ctx, id); err != nil {
		return
	}

	s.publishEvent(ctx, "product_deleted", map[string]string{"id": id})

	return nil
}

// UpsertRating inserts or replaces the caller's rating on a product. The
// aggregates are recomputed from the full rating list and persisted in the
// same write as the rating change.
func (s *ProductServiceImpl) UpsertRating(ctx context.Context, req dto.RatingRequest) (product domain.Product, err error) {
	details, err := validator.Validate(req)
	if err != nil {
		log.Ctx(ctx).Error().Interface("details", details).Str("component", "UpsertRating").Msg("payload validation failed")
		metrics.RatingMutations.WithLabelValues("upsert", "invalid").Inc()
		return
	}

	product, err = s.repo.GetProductByID(ctx, req.ProductID)
	if err != nil {
		metrics.RatingMutations.WithLabelValues("upsert", "error").Inc()
		return
	}

	product.UpsertRating(req.UserID, req.Rating, req.Review, time.Now().UnixMilli())

	if err = s.repo.ReplaceProductRatings(ctx, product.ID, product.Ratings, product.AvgRating, product.TotalRatings); err != nil {
		metrics.RatingMutations.WithLabelValues("upsert", "error").Inc()
		return
	}

	metrics.RatingMutations.WithLabelValues("upsert", "success").Inc()
	s.publishEvent(ctx, "product_rated", dto.RatingStatsResponse{
		AvgRating:    product.AvgRating,
		TotalRatings: product.TotalRatings,
		RatingCounts: product.RatingHistogram(),
	})

	return product, nil
}

func (s *ProductServiceImpl) DeleteRating(ctx context.Context, productID string, userID string) (err error) {
	product, err := s.repo.GetProductByID(ctx, productID)
	if err != nil {
		metrics.RatingMutations.WithLabelValues("delete", "error").Inc()
		return
	}

	if removed := product.RemoveRating(userID); !removed {
		metrics.RatingMutations.WithLabelValues("delete", "not_found").Inc()
		return errs.ErrRatingNotFound
	}

	if err = s.repo.ReplaceProductRatings(ctx, product.ID, product.Ratings, product.AvgRating, product.TotalRatings); err != nil {
		metrics.RatingMutations.WithLabelValues("delete", "error").Inc()
		return
	}

	metrics.RatingMutations.WithLabelValues("delete", "success").Inc()
	s.publishEvent(ctx, "rating_deleted", map[string]string{"productId": productID, "userId": userID})

	return nil
}

func (s *ProductServiceImpl) GetRatingStats(ctx context.Context, productID string) (stats dto.RatingStatsResponse, err error) {
	product, err := s.repo.GetProductByID(ctx, productID)
	if err != nil {
		return
	}

	stats = dto.RatingStatsResponse{
		AvgRating:    product.AvgRating,
		TotalRatings: product.TotalRatings,
		RatingCounts: product.RatingHistogram(),
	}

	return stats, nil
}

func (s *ProductServiceImpl) GetProductReviews(ctx context.Context, productID string) (reviews []dto.ReviewResponse, err error) {
	product, err := s.repo.GetProductByID(ctx, productID)
	if err != nil {
		return
	}

	entries := product.Reviews()
	reviews = make([]dto.ReviewResponse, 0, len(entries))
	for _, entry := range entries {
		reviews = append(reviews, dto.ReviewResponse{
			UserID:    entry.UserID,
			Rating:    entry.Rating,
			Review:    entry.Review,
			CreatedAt: entry.CreatedAt,
		})
	}

	return reviews, nil
}

func (s *ProductServiceImpl) GetTopRatedProducts(ctx context.Context, param pkgdto.TopRatedFilter) (products []domain.Product, err error) {
	if param.Limit < 0 || param.MinRatings < 0 {
		return nil, errs.ErrInvalidQueryParam
	}

	if param.Limit == 0 {
		param.Limit = defaultTopRatedLimit
	}
	if param.MinRatings == 0 {
		param.MinRatings = defaultMinRatings
	}

	products, err = s.repo.GetTopRatedProducts(ctx, param.Limit, param.MinRatings)
	if err != nil {
		return
	}

	if products == nil {
		products = []domain.Product{}
	}

	return products, nil
}

func (s *ProductServiceImpl) GetCategories(ctx context.Context) (categories []string, err error) {
	categories, err = s.repo.GetCategories(ctx)
	if err != nil {
		return
	}

	if categories == nil {
		categories = []string{}
	}

	return categories, nil
}

func (s *ProductServiceImpl) GetFeaturedProducts(ctx context.Context, limit int) (products []domain.Product, err error) {
	if limit < 0 {
		return nil, errs.ErrInvalidQueryParam
	}

	if limit == 0 {
		limit = defaultLimit
	}

	products, err = s.repo.GetFeaturedProducts(ctx, limit)
	if err != nil {
		return
	}

	if products == nil {
		products = []domain.Product{}
	}

	return products, nil
}

func (s *ProductServiceImpl) GetSellerCounts(ctx context.Context) (sellers []dto.SellerCountResponse, err error) {
	sellers, err = s.repo.GetSellerCounts(ctx)
	if err != nil {
		return
	}

	if sellers == nil {
		sellers = []dto.SellerCountResponse{}
	}

	return sellers, nil
}

// ConsumeEvent processes user lifecycle events. Deleting a user scrubs
// that user's ratings from every product it rated.
func (s *ProductServiceImpl) ConsumeEvent() {
	for {
		msg, err := s.kafkaReader.ReadMessage(context.Background())
		if err != nil {
			log.Error().Err(err).Str("component", "ConsumeEvent").Msg("")
			continue
		}

		var receivedMsg pkgdto.KafkaMessage
		if err := json.Unmarshal(msg.Value, &receivedMsg); err != nil {
			log.Error().Err(err).Str("component", "ConsumeEvent").Msg("")
			continue
		}

		switch receivedMsg.EventType {
		case "user_deleted":
			var payload struct {
				ExternalID string `json:"externalId"`
			}

			dataBytes, err := json.Marshal(receivedMsg.Data)
			if err != nil {
				log.Error().Err(err).Str("component", "ConsumeEvent").Msg("")
				continue
			}

			if err := json.Unmarshal(dataBytes, &payload); err != nil {
				log.Error().Err(err).Str("component", "ConsumeEvent").Msg("")
				continue
			}

			if err := s.RemoveUserRatings(context.Background(), payload.ExternalID); err != nil {
				log.Error().Err(err).Str("component", "ConsumeEvent").Msg("")
				continue
			}
		default:
			log.Info().Str("component", "ConsumeEvent").Str("event_type", receivedMsg.EventType).Msg("ignoring event")
		}
	}
}

// RemoveUserRatings drops every rating a user left, product by product,
// recomputing each product's aggregates along the way.
func (s *ProductServiceImpl) RemoveUserRatings(ctx context.Context, userID string) (err error) {
	products, err := s.repo.GetProductsRatedByUser(ctx, userID)
	if err != nil {
		return
	}

	for i := range products {
		if removed := products[i].RemoveRating(userID); !removed {
			continue
		}

		if err = s.repo.ReplaceProductRatings(ctx, products[i].ID, products[i].Ratings, products[i].AvgRating, products[i].TotalRatings); err != nil {
			return
		}
	}

	return nil
}

func (s *ProductServiceImpl) publishEvent(ctx context.Context, eventType string, data interface{}) {
	kafkaMsg := pkgdto.KafkaMessage{
		EventType: eventType,
		Data:      data,
	}

	jsonMsg, err := json.Marshal(kafkaMsg)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "publishEvent").Msg("")
		return
	}

	maxRetries := 3
	for i := 0; i < maxRetries; i++ {
		_, err = s.kafkaProducer.WriteMessages(kafkago.Message{Value: jsonMsg})
		if err == nil {
			return
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "publishEvent").Msg("")
		time.Sleep(time.Second * time.Duration(i+1))
	}

	log.Ctx(ctx).Error().Err(err).Str("component", "publishEvent").Str("event_type", eventType).Msg("giving up publishing event")
}
