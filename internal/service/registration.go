package service

import (
	"context"
	"fmt"
	"time"

	"github.com/avdeev0/EventRegistry/internal/domain"
	"github.com/avdeev0/EventRegistry/internal/service/ports"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/logger"
)

type RegistrationService struct {
	regRepo   ports.RegistrationRepo
	eventRepo ports.EventRepo
	notifier  ports.RegistrationNotifier
	logger    logger.Logger

	// enforceCapacity routes inserts through the capacity-checked path.
	// Off by default: historically registrations were purely additive.
	enforceCapacity bool
}

func NewRegistrationService(
	regRepo ports.RegistrationRepo,
	eventRepo ports.EventRepo,
	notifier ports.RegistrationNotifier,
	logger logger.Logger,
	enforceCapacity bool,
) *RegistrationService {
	return &RegistrationService{
		regRepo:         regRepo,
		eventRepo:       eventRepo,
		notifier:        notifier,
		logger:          logger,
		enforceCapacity: enforceCapacity,
	}
}

func (s *RegistrationService) Register(ctx context.Context, input domain.RegisterInput) (*domain.Registration, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if input.Email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if input.Phone == "" {
		return nil, fmt.Errorf("%w: phone is required", domain.ErrValidation)
	}

	event, err := s.eventRepo.GetByID(ctx, input.EventID)
	if err != nil {
		return nil, fmt.Errorf("check event: %w", err)
	}

	reg := &domain.Registration{
		ID:        uuid.New().String(),
		EventID:   event.ID,
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		CreatedAt: time.Now().UTC(),
	}

	if s.enforceCapacity {
		err = s.regRepo.Reserve(ctx, reg)
	} else {
		err = s.regRepo.Create(ctx, reg)
	}
	if err != nil {
		return nil, fmt.Errorf("create registration: %w", err)
	}

	s.logger.Info("registration created",
		logger.String("registration_id", reg.ID),
		logger.String("event_id", event.ID),
	)

	go s.notifier.NotifyRegistrationCreated(context.WithoutCancel(ctx), event, reg)

	return reg, nil
}

func (s *RegistrationService) ListByEvent(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, fmt.Errorf("check event: %w", err)
	}

	return s.regRepo.ListByEvent(ctx, eventID)
}
