package ports

import (
	"context"

	"github.com/avdeev0/EventRegistry/internal/domain"
)

type UserRepo interface {
	Create(ctx context.Context, user *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}
