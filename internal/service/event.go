package service

import (
	"context"
	"fmt"
	"time"

	"github.com/avdeev0/EventRegistry/internal/domain"
	"github.com/avdeev0/EventRegistry/internal/service/ports"
	"github.com/google/uuid"
)

const clockLayout = "15:04"

type EventService struct {
	repo    ports.EventRepo
	regRepo ports.RegistrationRepo
}

func NewEventService(repo ports.EventRepo, regRepo ports.RegistrationRepo) *EventService {
	return &EventService{
		repo:    repo,
		regRepo: regRepo,
	}
}

func (s *EventService) Create(ctx context.Context, input domain.CreateEventInput) (*domain.Event, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if input.Organizer == "" {
		return nil, fmt.Errorf("%w: organizer is required", domain.ErrValidation)
	}
	if input.Description == "" {
		return nil, fmt.Errorf("%w: description is required", domain.ErrValidation)
	}
	if input.Capacity < 1 {
		return nil, fmt.Errorf("%w: capacity must be positive", domain.ErrValidation)
	}

	today := midnightUTC(time.Now())
	if input.Date.Before(today) {
		return nil, fmt.Errorf("%w: date must not be in the past", domain.ErrValidation)
	}

	start, err := normalizeClock(input.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start_time %q", domain.ErrValidation, input.StartTime)
	}
	end, err := normalizeClock(input.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end_time %q", domain.ErrValidation, input.EndTime)
	}

	event := &domain.Event{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Organizer:   input.Organizer,
		Date:        midnightUTC(input.Date),
		StartTime:   start,
		EndTime:     end,
		Description: input.Description,
		Capacity:    input.Capacity,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	return event, nil
}

func (s *EventService) GetDetails(ctx context.Context, id string) (*domain.EventDetails, error) {
	details, err := s.repo.GetDetails(ctx, id)
	if err != nil {
		return nil, err
	}

	regs, err := s.regRepo.ListByEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}

	details.Registrations = make([]domain.Registration, len(regs))
	for i, reg := range regs {
		details.Registrations[i] = *reg
	}

	return details, nil
}

func (s *EventService) List(ctx context.Context) ([]*domain.Event, error) {
	return s.repo.List(ctx)
}

// normalizeClock reduces a wall-clock string to the stored "HH:MM" form.
// Seconds, if supplied, are dropped.
func normalizeClock(s string) (string, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		t, err = time.Parse("15:04:05", s)
		if err != nil {
			return "", err
		}
	}
	return t.Format(clockLayout), nil
}

func midnightUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
