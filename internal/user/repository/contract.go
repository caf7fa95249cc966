package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Gani-23/Oauth4.0/internal/user/domain"
)

type UserRepository interface {
	AddUser(ctx context.Context, data domain.User) (id primitive.ObjectID, err error)
	GetUserByUsername(ctx context.Context, username string) (res domain.User, err error)
	GetUserByEmail(ctx context.Context, email string) (res domain.User, err error)
	GetUserByIdentifier(ctx context.Context, identifier string) (res domain.User, err error)
	UpdateUserName(ctx context.Context, identifier string, name string, timestamp int64) (err error)
	UpdateUserPassword(ctx context.Context, identifier string, hashedPassword string, timestamp int64) (err error)
	DeleteUser(ctx context.Context, identifier string) (err error)
}
