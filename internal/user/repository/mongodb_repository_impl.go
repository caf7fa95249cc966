package repository

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Gani-23/Oauth4.0/internal/user/domain"
	"github.com/Gani-23/Oauth4.0/pkg/errs"
)

type MongoDBUserRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewMongoDBRepository(db *mongo.Database) UserRepository {
	return &MongoDBUserRepositoryImpl{db: db}
}

// identifierFilter matches a user by username or email, the two unique
// keys a caller may supply interchangeably.
func identifierFilter(identifier string) bson.D {
	return bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "username", Value: identifier}},
		bson.D{{Key: "email", Value: identifier}},
	}}}
}

func (r *MongoDBUserRepositoryImpl) AddUser(ctx context.Context, data domain.User) (id primitive.ObjectID, err error) {
	result, err := r.db.Collection("users").InsertOne(ctx, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddUser").Msg("")
		return
	}

	return result.InsertedID.(primitive.ObjectID), err
}

func (r *MongoDBUserRepositoryImpl) findOne(ctx context.Context, component string, filter bson.D) (res domain.User, err error) {
	err = r.db.Collection("users").FindOne(ctx, filter).Decode(&res)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return domain.User{}, nil
		}

		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return domain.User{}, err
	}

	return res, nil
}

func (r *MongoDBUserRepositoryImpl) GetUserByUsername(ctx context.Context, username string) (res domain.User, err error) {
	return r.findOne(ctx, "GetUserByUsername", bson.D{{Key: "username", Value: username}})
}

func (r *MongoDBUserRepositoryImpl) GetUserByEmail(ctx context.Context, email string) (res domain.User, err error) {
	return r.findOne(ctx, "GetUserByEmail", bson.D{{Key: "email", Value: email}})
}

func (r *MongoDBUserRepositoryImpl) GetUserByIdentifier(ctx context.Context, identifier string) (res domain.User, err error) {
	return r.findOne(ctx, "GetUserByIdentifier", identifierFilter(identifier))
}

func (r *MongoDBUserRepositoryImpl) UpdateUserName(ctx context.Context, identifier string, name string, timestamp int64) (err error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: name},
		{Key: "updated_at", Value: timestamp},
	}}}

	result, err := r.db.Collection("users").UpdateOne(ctx, identifierFilter(identifier), update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateUserName").Msg("Failed to update user")
		return
	}

	if result.MatchedCount == 0 {
		return errs.ErrAccountNotFound
	}

	return nil
}

func (r *MongoDBUserRepositoryImpl) UpdateUserPassword(ctx context.Context, identifier string, hashedPassword string, timestamp int64) (err error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "hashed_password", Value: hashedPassword},
		{Key: "updated_at", Value: timestamp},
	}}}

	result, err := r.db.Collection("users").UpdateOne(ctx, identifierFilter(identifier), update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateUserPassword").Msg("Failed to update user")
		return
	}

	if result.MatchedCount == 0 {
		return errs.ErrAccountNotFound
	}

	return nil
}

func (r *MongoDBUserRepositoryImpl) DeleteUser(ctx context.Context, identifier string) (err error) {
	result, err := r.db.Collection("users").DeleteOne(ctx, identifierFilter(identifier))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteUser").Msg("")
		return
	}

	if result.DeletedCount == 0 {
		return errs.ErrAccountNotFound
	}

	return
}
