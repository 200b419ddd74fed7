package ports

import (
	"context"

	"github.com/avdeev0/EventRegistry/internal/domain"
)

type RegistrationRepo interface {
	// Create inserts unconditionally; Reserve additionally holds the event's
	// registration count under its capacity.
	Create(ctx context.Context, reg *domain.Registration) error
	Reserve(ctx context.Context, reg *domain.Registration) error
	ListByEvent(ctx context.Context, eventID string) ([]*domain.Registration, error)
}
