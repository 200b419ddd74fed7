package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/avdeev0/EventRegistry/internal/domain"
	"github.com/avdeev0/EventRegistry/internal/service/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/logger"
	"golang.org/x/crypto/bcrypt"
)

func newTestLogger(t *testing.T) logger.Logger {
	t.Helper()
	log, err := logger.InitLogger("slog", "test", "test", logger.WithLevel(logger.ErrorLevel))
	if err != nil {
		t.Fatalf("init test logger: %v", err)
	}
	return log
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthService_SignUp_Success(t *testing.T) {
	userRepo := mocks.NewMockUserRepo(t)
	sessionRepo := mocks.NewMockSessionRepo(t)
	svc := NewAuthService(userRepo, sessionRepo, time.Hour, newTestLogger(t))

	userRepo.EXPECT().Create(mock.Anything, mock.Anything).Return(nil)

	user, err := svc.SignUp(context.Background(), domain.SignUpInput{
		Username: "alice",
		Password: "pw1",
		Role:     domain.RoleCreator,
	})

	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, domain.RoleCreator, user.Role)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "pw1", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw1")))
}

func TestAuthService_SignUp_EmptyUsername(t *testing.T) {
	svc := NewAuthService(nil, nil, time.Hour, newTestLogger(t))

	_, err := svc.SignUp(context.Background(), domain.SignUpInput{Password: "pw", Role: domain.RoleJoiner})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAuthService_SignUp_EmptyPassword(t *testing.T) {
	svc := NewAuthService(nil, nil, time.Hour, newTestLogger(t))

	_, err := svc.SignUp(context.Background(), domain.SignUpInput{Username: "alice", Role: domain.RoleJoiner})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAuthService_SignUp_UnknownRole(t *testing.T) {
	svc := NewAuthService(nil, nil, time.Hour, newTestLogger(t))

	_, err := svc.SignUp(context.Background(), domain.SignUpInput{
		Username: "alice",
		Password: "pw",
		Role:     "admin",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAuthService_SignUp_UsernameTaken(t *testing.T) {
	userRepo := mocks.NewMockUserRepo(t)
	sessionRepo := mocks.NewMockSessionRepo(t)
	svc := NewAuthService(userRepo, sessionRepo, time.Hour, newTestLogger(t))

	userRepo.EXPECT().Create(mock.Anything, mock.Anything).Return(domain.ErrUsernameTaken)

	_, err := svc.SignUp(context.Background(), domain.SignUpInput{
		Username: "taken",
		Password: "pw",
		Role:     domain.RoleJoiner,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestAuthService_Login_Success(t *testing.T) {
	userRepo := mocks.NewMockUserRepo(t)
	sessionRepo := mocks.NewMockSessionRepo(t)
	svc := NewAuthService(userRepo, sessionRepo, time.Hour, newTestLogger(t))

	user := &domain.User{
		ID:           "u1",
		Username:     "alice",
		PasswordHash: hashOf(t, "pw1"),
		Role:         domain.RoleCreator,
	}
	userRepo.EXPECT().GetByUsername(mock.Anything, "alice").Return(user, nil)
	sessionRepo.EXPECT().Create(mock.Anything, mock.Anything).Return(nil)

	session, err := svc.Login(context.Background(), "alice", "pw1", domain.RoleCreator)

	require.NoError(t, err)
	assert.Equal(t, "u1", session.UserID)
	assert.Equal(t, "alice", session.Username)
	assert.Equal(t, domain.RoleCreator, session.Role)
	assert.NotEmpty(t, session.Token)
	assert.True(t, session.ExpiresAt.After(time.Now()))
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	userRepo := mocks.NewMockUserRepo(t)
	sessionRepo := mocks.NewMockSessionRepo(t)
	svc := NewAuthService(userRepo, sessionRepo, time.Hour, newTestLogger(t))

	user := &domain.User{
		ID:           "u1",
		Username:     "alice",
		PasswordHash: hashOf(t, "pw1"),
		Role:         domain.RoleCreator,
	}
	userRepo.EXPECT().GetByUsername(mock.Anything, "alice").Return(user, nil)

	_, err := svc.Login(context.Background(), "alice", "wrong", domain.RoleCreator)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_WrongRole(t *testing.T) {
	userRepo := mocks.NewMockUserRepo(t)
	sessionRepo := mocks.NewMockSessionRepo(t)
	svc := NewAuthService(userRepo, sessionRepo, time.Hour, newTestLogger(t))

	user := &domain.User{
		ID:           "u1",
		Username:     "alice",
		PasswordHash: hashOf(t, "pw1"),
		Role:         domain.RoleCreator,
	}
	userRepo.EXPECT().GetByUsername(mock.Anything, "alice").Return(user, nil)

	_, err := svc.Login(context.Background(), "alice", "pw1", domain.RoleJoiner)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	userRepo := mocks.NewMockUserRepo(t)
	sessionRepo := mocks.NewMockSessionRepo(t)
	svc := NewAuthService(userRepo, sessionRepo, time.Hour, newTestLogger(t))

	userRepo.EXPECT().GetByUsername(mock.Anything, "ghost").Return(nil, domain.ErrUserNotFound)

	_, err := svc.Login(context.Background(), "ghost", "pw", domain.RoleJoiner)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_SignUpThenLogin_RoundTrip(t *testing.T) {
	userRepo := mocks.NewMockUserRepo(t)
	sessionRepo := mocks.NewMockSessionRepo(t)
	svc := NewAuthService(userRepo, sessionRepo, time.Hour, newTestLogger(t))

	var stored *domain.User
	userRepo.EXPECT().Create(mock.Anything, mock.Anything).RunAndReturn(
		func(_ context.Context, u *domain.User) error {
			stored = u
			return nil
		})

	_, err := svc.SignUp(context.Background(), domain.SignUpInput{
		Username: "bob",
		Password: "secret",
		Role:     domain.RoleJoiner,
	})
	require.NoError(t, err)
	require.NotNil(t, stored)

	userRepo.EXPECT().GetByUsername(mock.Anything, "bob").Return(stored, nil)
	sessionRepo.EXPECT().Create(mock.Anything, mock.Anything).Return(nil)

	session, err := svc.Login(context.Background(), "bob", "secret", domain.RoleJoiner)

	require.NoError(t, err)
	assert.Equal(t, stored.ID, session.UserID)
}

func TestAuthService_Logout(t *testing.T) {
	userRepo := mocks.NewMockUserRepo(t)
	sessionRepo := mocks.NewMockSessionRepo(t)
	svc := NewAuthService(userRepo, sessionRepo, time.Hour, newTestLogger(t))

	sessionRepo.EXPECT().Delete(mock.Anything, "tok1").Return(nil)

	require.NoError(t, svc.Logout(context.Background(), "tok1"))
}

func TestAuthService_Authenticate_Success(t *testing.T) {
	userRepo := mocks.NewMockUserRepo(t)
	sessionRepo := mocks.NewMockSessionRepo(t)
	svc := NewAuthService(userRepo, sessionRepo, time.Hour, newTestLogger(t))

	session := &domain.Session{
		Token:     "tok1",
		UserID:    "u1",
		Username:  "alice",
		Role:      domain.RoleCreator,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	sessionRepo.EXPECT().GetByToken(mock.Anything, "tok1").Return(session, nil)

	got, err := svc.Authenticate(context.Background(), "tok1")

	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
}

func TestAuthService_Authenticate_ExpiredSession(t *testing.T) {
	userRepo := mocks.NewMockUserRepo(t)
	sessionRepo := mocks.NewMockSessionRepo(t)
	svc := NewAuthService(userRepo, sessionRepo, time.Hour, newTestLogger(t))

	session := &domain.Session{
		Token:     "tok1",
		UserID:    "u1",
		Username:  "alice",
		Role:      domain.RoleCreator,
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	sessionRepo.EXPECT().GetByToken(mock.Anything, "tok1").Return(session, nil)

	_, err := svc.Authenticate(context.Background(), "tok1")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestAuthService_Authenticate_NotFound(t *testing.T) {
	userRepo := mocks.NewMockUserRepo(t)
	sessionRepo := mocks.NewMockSessionRepo(t)
	svc := NewAuthService(userRepo, sessionRepo, time.Hour, newTestLogger(t))

	sessionRepo.EXPECT().GetByToken(mock.Anything, "stale").Return(nil, domain.ErrSessionNotFound)

	_, err := svc.Authenticate(context.Background(), "stale")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestAuthService_PurgeExpiredSessions(t *testing.T) {
	userRepo := mocks.NewMockUserRepo(t)
	sessionRepo := mocks.NewMockSessionRepo(t)
	svc := NewAuthService(userRepo, sessionRepo, time.Hour, newTestLogger(t))

	sessionRepo.EXPECT().DeleteExpired(mock.Anything).Return(int64(3), nil)

	purged, err := svc.PurgeExpiredSessions(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(3), purged)
}

func TestAuthService_PurgeExpiredSessions_Error(t *testing.T) {
	userRepo := mocks.NewMockUserRepo(t)
	sessionRepo := mocks.NewMockSessionRepo(t)
	svc := NewAuthService(userRepo, sessionRepo, time.Hour, newTestLogger(t))

	repoErr := errors.New("db error")
	sessionRepo.EXPECT().DeleteExpired(mock.Anything).Return(int64(0), repoErr)

	_, err := svc.PurgeExpiredSessions(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, repoErr)
}
