package auth_service

import (
	"context"

	"inkpost-service/internal/model"
)

//go:generate mockery --name Service --dir . --output ../../../mocks/auth --outpkg mocks --filename AuthService.go

type Service interface {
	Register(ctx context.Context, username, password string) (*model.User, error)
	Login(ctx context.Context, username, password string) (*model.Token, error)
}
