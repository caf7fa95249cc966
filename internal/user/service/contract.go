package service

import (
	"context"

	"github.com/Gani-23/Oauth4.0/internal/user/dto"
)

type UserService interface {
	Register(ctx context.Context, data dto.RegisterRequest) (resp dto.UserResponse, err error)
	Login(ctx context.Context, payload dto.LoginRequest) (resp dto.LoginResponse, err error)
	UpdateUserName(ctx context.Context, payload dto.UpdateNameRequest) (err error)
	UpdatePassword(ctx context.Context, payload dto.UpdatePasswordRequest) (err error)
	DeleteUser(ctx context.Context, identifier string) (err error)
}
