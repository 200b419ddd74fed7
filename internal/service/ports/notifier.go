package ports

import (
	"context"

	"github.com/avdeev0/EventRegistry/internal/domain"
)

type RegistrationNotifier interface {
	NotifyRegistrationCreated(ctx context.Context, event *domain.Event, reg *domain.Registration)
}
