package repository

import (
	"context"
	"regexp"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Gani-23/Oauth4.0/internal/catalog/domain"
	"github.com/Gani-23/Oauth4.0/internal/catalog/dto"
	pkgdto "github.com/Gani-23/Oauth4.0/pkg/dto"
	"github.com/Gani-23/Oauth4.0/pkg/errs"
)

// sortFields maps the exposed sort keys onto document fields.
var sortFields = map[string]string{
	"title":        "title",
	"price":        "price",
	"stock":        "stock",
	"category":     "category",
	"sellerName":   "seller_name",
	"avgRating":    "avg_rating",
	"totalRatings": "total_ratings",
	"createdAt":    "created_at",
}

type MongoDBProductRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewMongoDBRepository(db *mongo.Database) ProductRepository {
	return &MongoDBProductRepositoryImpl{db: db}
}

func (r *MongoDBProductRepositoryImpl) AddProduct(ctx context.Context, data domain.Product) (id primitive.ObjectID, err error) {
	result, err := r.db.Collection("products").InsertOne(ctx, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddProduct").Msg("")
		return
	}

	return result.InsertedID.(primitive.ObjectID), err
}

func buildProductFilter(param pkgdto.Filter) bson.D {
	filter := bson.D{}

	if param.Category != "" {
		filter = append(filter, bson.E{Key: "category", Value: param.Category})
	}

	priceRange := bson.D{}
	if param.MinPrice > 0 {
		priceRange = append(priceRange, bson.E{Key: "$gte", Value: param.MinPrice})
	}
	if param.MaxPrice > 0 {
		priceRange = append(priceRange, bson.E{Key: "$lte", Value: param.MaxPrice})
	}
	if len(priceRange) > 0 {
		filter = append(filter, bson.E{Key: "price", Value: priceRange})
	}

	if param.MinRating > 0 {
		filter = append(filter, bson.E{Key: "avg_rating", Value: bson.D{{Key: "$gte", Value: param.MinRating}}})
	}

	if param.Q != "" {
		// Quote the term so the search stays a literal substring match;
		// metacharacters in user input would otherwise change the query
		// or make the server reject it outright.
		regex := primitive.Regex{Pattern: regexp.QuoteMeta(param.Q), Options: "i"}
		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "title", Value: regex}},
			bson.D{{Key: "description", Value: regex}},
			bson.D{{Key: "category", Value: regex}},
			bson.D{{Key: "seller_name", Value: regex}},
		}})
	}

	return filter
}

func buildProductSort(param pkgdto.Filter) bson.D {
	sortField, ok := sortFields[param.SortBy]
	if !ok {
		sortField = "created_at"
	}

	// Newest-first only when the caller asked for no ordering at all; an
	// explicit order=asc wins even without a sort key.
	sortOrder := 1
	if param.Order == "desc" || (param.Order == "" && param.SortBy == "") {
		sortOrder = -1
	}

	return bson.D{{Key: sortField, Value: sortOrder}}
}

func (r *MongoDBProductRepositoryImpl) GetProducts(ctx context.Context, param pkgdto.Filter) (data []domain.Product, err error) {
	opts := options.Find()

	if param.Limit != 0 && param.Page != 0 {
		opts.SetSkip((int64(param.Page) - 1) * int64(param.Limit))
		opts.SetLimit(int64(param.Limit))
	}

	opts.SetSort(buildProductSort(param))

	cursor, err := r.db.Collection("products").Find(ctx, buildProductFilter(param), opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
		return
	}

	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
		return
	}

	return data, nil
}

func (r *MongoDBProductRepositoryImpl) CountProducts(ctx context.Context, param pkgdto.Filter) (count int64, err error) {
	count, err = r.db.Collection("products").CountDocuments(ctx, buildProductFilter(param))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "CountProducts").Msg("")
		return
	}

	return count, nil
}

func (r *MongoDBProductRepositoryImpl) GetProductByID(ctx context.Context, id string) (product domain.Product, err error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProductByID").Msg("")
		return product, errs.ErrNotFound
	}

	filter := bson.D{{Key: "_id", Value: productID}}

	err = r.db.Collection("products").FindOne(ctx, filter).Decode(&product)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProductByID").Msg("")
		if err == mongo.ErrNoDocuments {
			return product, errs.ErrNotFound
		}

		return product, err
	}
	return product, nil
}

func (r *MongoDBProductRepositoryImpl) UpdateProduct(ctx context.Context, data domain.Product) (err error) {
	filter := bson.D{{Key: "_id", Value: data.ID}}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "title", Value: data.Title},
		{Key: "description", Value: data.Description},
		{Key: "img_src", Value: data.ImgSrc},
		{Key: "category", Value: data.Category},
		{Key: "seller_name", Value: data.SellerName},
		{Key: "seller_address", Value: data.SellerAddress},
		{Key: "price", Value: data.Price},
		{Key: "stock", Value: data.Stock},
		{Key: "updated_at", Value: data.UpdatedAt},
	}}}

	result, err := r.db.Collection("products").UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateProduct").Msg("Failed to update product")
		return
	}

	if result.MatchedCount == 0 {
		return errs.ErrNotFound
	}

	return nil
}

func (r *MongoDBProductRepositoryImpl) DeleteProduct(ctx context.Context, id string) (err error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteProduct").Msg("")
		return errs.ErrNotFound
	}

	filter := bson.D{{Key: "_id", Value: productID}}

	result, err := r.db.Collection("products").DeleteOne(ctx, filter)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteProduct").Msg("")
		return
	}

	if result.DeletedCount == 0 {
		return errs.ErrNotFound
	}

	return
}

// ReplaceProductRatings writes the ratings array and both aggregates in a
// single update so no reader can observe them out of sync.
func (r *MongoDBProductRepositoryImpl) ReplaceProductRatings(ctx context.Context, id primitive.ObjectID, ratings []domain.Rating, avgRating float64, totalRatings int) (err error) {
	filter := bson.D{{Key: "_id", Value: id}}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "ratings", Value: ratings},
		{Key: "avg_rating", Value: avgRating},
		{Key: "total_ratings", Value: totalRatings},
	}}}

	result, err := r.db.Collection("products").UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "ReplaceProductRatings").Msg("Failed to update product ratings")
		return
	}

	if result.MatchedCount == 0 {
		return errs.ErrNotFound
	}

	return nil
}

func (r *MongoDBProductRepositoryImpl) GetTopRatedProducts(ctx context.Context, limit int, minRatings int) (data []domain.Product, err error) {
	filter := bson.D{{Key: "total_ratings", Value: bson.D{{Key: "$gte", Value: minRatings}}}}

	opts := options.Find().
		SetSort(bson.D{{Key: "avg_rating", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.db.Collection("products").Find(ctx, filter, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetTopRatedProducts").Msg("")
		return
	}

	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetTopRatedProducts").Msg("")
		return
	}

	return data, nil
}

func (r *MongoDBProductRepositoryImpl) GetCategories(ctx context.Context) (categories []string, err error) {
	values, err := r.db.Collection("products").Distinct(ctx, "category", bson.D{})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetCategories").Msg("")
		return
	}

	for _, value := range values {
		if category, ok := value.(string); ok {
			categories = append(categories, category)
		}
	}

	return categories, nil
}

func (r *MongoDBProductRepositoryImpl) GetFeaturedProducts(ctx context.Context, limit int) (data []domain.Product, err error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sample", Value: bson.D{{Key: "size", Value: limit}}}},
	}

	cursor, err := r.db.Collection("products").Aggregate(ctx, pipeline)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetFeaturedProducts").Msg("")
		return
	}

	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetFeaturedProducts").Msg("")
		return
	}

	return data, nil
}

func (r *MongoDBProductRepositoryImpl) GetSellerCounts(ctx context.Context) (data []dto.SellerCountResponse, err error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$seller_name"},
			{Key: "product_count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "product_count", Value: -1}}}},
		{{Key: "$limit", Value: 5}},
	}

	cursor, err := r.db.Collection("products").Aggregate(ctx, pipeline)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetSellerCounts").Msg("")
		return
	}

	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetSellerCounts").Msg("")
		return
	}

	return data, nil
}

func (r *MongoDBProductRepositoryImpl) GetProductsRatedByUser(ctx context.Context, userID string) (data []domain.Product, err error) {
	filter := bson.D{{Key: "ratings.user_id", Value: userID}}

	cursor, err := r.db.Collection("products").Find(ctx, filter)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProductsRatedByUser").Msg("")
		return
	}

	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProductsRatedByUser").Msg("")
		return
	}

	return data, nil
}
