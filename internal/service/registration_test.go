package service

import (
	"context"
	"testing"
	"time"

	"github.com/avdeev0/EventRegistry/internal/domain"
	"github.com/avdeev0/EventRegistry/internal/service/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validRegisterInput() domain.RegisterInput {
	return domain.RegisterInput{
		EventID: "e1",
		Name:    "Bob",
		Email:   "bob@example.com",
		Phone:   "+1234567",
	}
}

func TestRegistrationService_Register_Success(t *testing.T) {
	regRepo := mocks.NewMockRegistrationRepo(t)
	eventRepo := mocks.NewMockEventRepo(t)
	notifier := mocks.NewMockRegistrationNotifier(t)
	svc := NewRegistrationService(regRepo, eventRepo, notifier, newTestLogger(t), false)

	event := &domain.Event{ID: "e1", Name: "GopherCon", Capacity: 10}
	eventRepo.EXPECT().GetByID(mock.Anything, "e1").Return(event, nil)
	regRepo.EXPECT().Create(mock.Anything, mock.Anything).Return(nil)
	notifier.EXPECT().NotifyRegistrationCreated(mock.Anything, event, mock.Anything).Return()

	reg, err := svc.Register(context.Background(), validRegisterInput())

	require.NoError(t, err)
	assert.NotEmpty(t, reg.ID)
	assert.Equal(t, "e1", reg.EventID)
	assert.Equal(t, "Bob", reg.Name)

	time.Sleep(50 * time.Millisecond) // goroutine notify
}

func TestRegistrationService_Register_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*domain.RegisterInput)
	}{
		{"empty name", func(in *domain.RegisterInput) { in.Name = "" }},
		{"empty email", func(in *domain.RegisterInput) { in.Email = "" }},
		{"empty phone", func(in *domain.RegisterInput) { in.Phone = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewRegistrationService(nil, nil, nil, newTestLogger(t), false)

			input := validRegisterInput()
			tc.mutate(&input)

			_, err := svc.Register(context.Background(), input)

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestRegistrationService_Register_UnknownEvent(t *testing.T) {
	regRepo := mocks.NewMockRegistrationRepo(t)
	eventRepo := mocks.NewMockEventRepo(t)
	svc := NewRegistrationService(regRepo, eventRepo, nil, newTestLogger(t), false)

	eventRepo.EXPECT().GetByID(mock.Anything, "ghost").Return(nil, domain.ErrEventNotFound)

	input := validRegisterInput()
	input.EventID = "ghost"

	_, err := svc.Register(context.Background(), input)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestRegistrationService_Register_CapacityEnforced(t *testing.T) {
	regRepo := mocks.NewMockRegistrationRepo(t)
	eventRepo := mocks.NewMockEventRepo(t)
	notifier := mocks.NewMockRegistrationNotifier(t)
	svc := NewRegistrationService(regRepo, eventRepo, notifier, newTestLogger(t), true)

	event := &domain.Event{ID: "e1", Name: "GopherCon", Capacity: 1}
	eventRepo.EXPECT().GetByID(mock.Anything, "e1").Return(event, nil)
	regRepo.EXPECT().Reserve(mock.Anything, mock.Anything).Return(nil)
	notifier.EXPECT().NotifyRegistrationCreated(mock.Anything, event, mock.Anything).Return()

	_, err := svc.Register(context.Background(), validRegisterInput())

	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond) // goroutine notify
}

func TestRegistrationService_Register_EventFull(t *testing.T) {
	regRepo := mocks.NewMockRegistrationRepo(t)
	eventRepo := mocks.NewMockEventRepo(t)
	svc := NewRegistrationService(regRepo, eventRepo, nil, newTestLogger(t), true)

	event := &domain.Event{ID: "e1", Name: "GopherCon", Capacity: 1}
	eventRepo.EXPECT().GetByID(mock.Anything, "e1").Return(event, nil)
	regRepo.EXPECT().Reserve(mock.Anything, mock.Anything).Return(domain.ErrEventFull)

	_, err := svc.Register(context.Background(), validRegisterInput())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEventFull)
}

func TestRegistrationService_Register_DuplicatesAllowed(t *testing.T) {
	regRepo := mocks.NewMockRegistrationRepo(t)
	eventRepo := mocks.NewMockEventRepo(t)
	notifier := mocks.NewMockRegistrationNotifier(t)
	svc := NewRegistrationService(regRepo, eventRepo, notifier, newTestLogger(t), false)

	event := &domain.Event{ID: "e1", Name: "GopherCon", Capacity: 10}
	eventRepo.EXPECT().GetByID(mock.Anything, "e1").Return(event, nil).Twice()
	regRepo.EXPECT().Create(mock.Anything, mock.Anything).Return(nil).Twice()
	notifier.EXPECT().NotifyRegistrationCreated(mock.Anything, event, mock.Anything).Return().Twice()

	first, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	second, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)

	time.Sleep(50 * time.Millisecond) // goroutine notify
}

func TestRegistrationService_ListByEvent(t *testing.T) {
	regRepo := mocks.NewMockRegistrationRepo(t)
	eventRepo := mocks.NewMockEventRepo(t)
	svc := NewRegistrationService(regRepo, eventRepo, nil, newTestLogger(t), false)

	eventRepo.EXPECT().GetByID(mock.Anything, "e1").Return(&domain.Event{ID: "e1"}, nil)
	regs := []*domain.Registration{
		{ID: "r1", EventID: "e1", Name: "Bob"},
		{ID: "r2", EventID: "e1", Name: "Carol"},
	}
	regRepo.EXPECT().ListByEvent(mock.Anything, "e1").Return(regs, nil)

	got, err := svc.ListByEvent(context.Background(), "e1")

	require.NoError(t, err)
	assert.Equal(t, regs, got)
}

func TestRegistrationService_ListByEvent_UnknownEvent(t *testing.T) {
	regRepo := mocks.NewMockRegistrationRepo(t)
	eventRepo := mocks.NewMockEventRepo(t)
	svc := NewRegistrationService(regRepo, eventRepo, nil, newTestLogger(t), false)

	eventRepo.EXPECT().GetByID(mock.Anything, "ghost").Return(nil, domain.ErrEventNotFound)

	_, err := svc.ListByEvent(context.Background(), "ghost")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}
