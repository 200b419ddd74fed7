package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avdeev0/EventRegistry/internal/domain"
	"github.com/avdeev0/EventRegistry/internal/handler/dto"
	hmocks "github.com/avdeev0/EventRegistry/internal/handler/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/ginext"
)

func setupRouter(t *testing.T) (*hmocks.MockAuthSvc, *hmocks.MockEventSvc, *hmocks.MockRegistrationSvc, http.Handler) {
	t.Helper()
	authSvc := hmocks.NewMockAuthSvc(t)
	eventSvc := hmocks.NewMockEventSvc(t)
	regSvc := hmocks.NewMockRegistrationSvc(t)

	h := NewHandler(authSvc, eventSvc, regSvc)

	r := ginext.New("test")
	api := r.Group("/api")
	{
		api.POST("/auth/signup", h.SignUp)
		api.POST("/auth/login", h.Login)
		api.POST("/auth/logout", h.Logout)
		api.GET("/events", h.ListEvents)
		api.GET("/events/:id", h.GetEvent)
		api.POST("/events", h.CreateEvent)
		api.POST("/events/:id/register", h.RegisterForEvent)
		api.GET("/events/:id/registrations", h.ListRegistrations)
	}

	return authSvc, eventSvc, regSvc, r
}

// --- Auth ---

func TestHandler_SignUp_Success(t *testing.T) {
	authSvc, _, _, r := setupRouter(t)

	user := &domain.User{
		ID:        uuid.New().String(),
		Username:  "alice",
		Role:      domain.RoleCreator,
		CreatedAt: time.Now(),
	}
	authSvc.EXPECT().SignUp(mock.Anything, mock.Anything).Return(user, nil)

	body, _ := json.Marshal(dto.SignUpRequest{Username: "alice", Password: "pw1", Role: "creator"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp dto.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, "creator", resp.Role)
}

func TestHandler_SignUp_BadRole(t *testing.T) {
	_, _, _, r := setupRouter(t)

	body := []byte(`{"username":"alice","password":"pw1","role":"admin"}`)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_SignUp_UsernameTaken(t *testing.T) {
	authSvc, _, _, r := setupRouter(t)

	authSvc.EXPECT().SignUp(mock.Anything, mock.Anything).Return(nil, domain.ErrUsernameTaken)

	body, _ := json.Marshal(dto.SignUpRequest{Username: "taken", Password: "pw1", Role: "joiner"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Login_Success(t *testing.T) {
	authSvc, _, _, r := setupRouter(t)

	session := &domain.Session{
		Token:     uuid.New().String(),
		UserID:    uuid.New().String(),
		Username:  "alice",
		Role:      domain.RoleCreator,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	authSvc.EXPECT().Login(mock.Anything, "alice", "pw1", domain.RoleCreator).Return(session, nil)

	body, _ := json.Marshal(dto.LoginRequest{Username: "alice", Password: "pw1", Role: "creator"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, session.Token, resp.Token)
	assert.Equal(t, "creator", resp.Role)
}

func TestHandler_Login_InvalidCredentials(t *testing.T) {
	authSvc, _, _, r := setupRouter(t)

	authSvc.EXPECT().Login(mock.Anything, "alice", "wrong", domain.RoleCreator).
		Return(nil, domain.ErrInvalidCredentials)

	body, _ := json.Marshal(dto.LoginRequest{Username: "alice", Password: "wrong", Role: "creator"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandler_Logout_Success(t *testing.T) {
	authSvc, _, _, r := setupRouter(t)

	token := uuid.New().String()
	authSvc.EXPECT().Logout(mock.Anything, token).Return(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_Logout_MissingToken(t *testing.T) {
	_, _, _, r := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// --- Events ---

func TestHandler_CreateEvent_Success(t *testing.T) {
	_, eventSvc, _, r := setupRouter(t)

	date := time.Now().UTC().AddDate(0, 0, 7)
	event := &domain.Event{
		ID:          uuid.New().String(),
		Name:        "GopherCon",
		Organizer:   "alice",
		Date:        date,
		StartTime:   "10:00",
		EndTime:     "18:00",
		Description: "annual gathering",
		Capacity:    100,
		CreatedAt:   time.Now(),
	}
	eventSvc.EXPECT().Create(mock.Anything, mock.Anything).Return(event, nil)

	body, _ := json.Marshal(dto.CreateEventRequest{
		Name:        "GopherCon",
		Organizer:   "alice",
		Date:        date.Format("2006-01-02"),
		StartTime:   "10:00",
		EndTime:     "18:00",
		Description: "annual gathering",
		Capacity:    100,
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/events", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp dto.EventResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "GopherCon", resp.Name)
	assert.Equal(t, 100, resp.Capacity)
}

func TestHandler_CreateEvent_BadRequest(t *testing.T) {
	_, _, _, r := setupRouter(t)

	body := []byte(`{"name":""}`)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/events", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_CreateEvent_InvalidDate(t *testing.T) {
	_, _, _, r := setupRouter(t)

	body := []byte(`{"name":"X","organizer":"Y","date":"not-a-date","start_time":"10:00","end_time":"11:00","description":"Z","capacity":5}`)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/events", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_GetEvent_Success(t *testing.T) {
	_, eventSvc, _, r := setupRouter(t)

	eventID := uuid.New().String()
	details := &domain.EventDetails{
		Event:      domain.Event{ID: eventID, Name: "GopherCon", Capacity: 100, Date: time.Now(), CreatedAt: time.Now()},
		Registered: 5,
		Registrations: []domain.Registration{
			{ID: "r1", EventID: eventID, Name: "Bob", CreatedAt: time.Now()},
		},
	}
	eventSvc.EXPECT().GetDetails(mock.Anything, eventID).Return(details, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/events/"+eventID, nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.EventDetailsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 5, resp.Registered)
	assert.Len(t, resp.Registrations, 1)
}

func TestHandler_GetEvent_InvalidID(t *testing.T) {
	_, _, _, r := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/events/not-a-uuid", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_GetEvent_NotFound(t *testing.T) {
	_, eventSvc, _, r := setupRouter(t)

	eventID := uuid.New().String()
	eventSvc.EXPECT().GetDetails(mock.Anything, eventID).Return(nil, domain.ErrEventNotFound)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/events/"+eventID, nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_ListEvents_Success(t *testing.T) {
	_, eventSvc, _, r := setupRouter(t)

	events := []*domain.Event{
		{ID: "e1", Name: "Event 1", Date: time.Now(), CreatedAt: time.Now()},
		{ID: "e2", Name: "Event 2", Date: time.Now(), CreatedAt: time.Now()},
	}
	eventSvc.EXPECT().List(mock.Anything).Return(events, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []dto.EventResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}

// --- Registrations ---

func TestHandler_RegisterForEvent_Success(t *testing.T) {
	_, _, regSvc, r := setupRouter(t)

	eventID := uuid.New().String()
	reg := &domain.Registration{
		ID:        uuid.New().String(),
		EventID:   eventID,
		Name:      "Bob",
		Email:     "bob@example.com",
		Phone:     "+1234567",
		CreatedAt: time.Now(),
	}
	regSvc.EXPECT().Register(mock.Anything, mock.Anything).Return(reg, nil)

	body, _ := json.Marshal(dto.RegisterRequest{Name: "Bob", Email: "bob@example.com", Phone: "+1234567"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/events/"+eventID+"/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp dto.RegistrationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Bob", resp.Name)
	assert.Equal(t, eventID, resp.EventID)
}

func TestHandler_RegisterForEvent_InvalidEventID(t *testing.T) {
	_, _, _, r := setupRouter(t)

	body := []byte(`{"name":"Bob","email":"bob@example.com","phone":"+1234567"}`)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/events/bad-id/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_RegisterForEvent_UnknownEvent(t *testing.T) {
	_, _, regSvc, r := setupRouter(t)

	eventID := uuid.New().String()
	regSvc.EXPECT().Register(mock.Anything, mock.Anything).Return(nil, domain.ErrEventNotFound)

	body, _ := json.Marshal(dto.RegisterRequest{Name: "Bob", Email: "bob@example.com", Phone: "+1234567"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/events/"+eventID+"/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_RegisterForEvent_EventFull(t *testing.T) {
	_, _, regSvc, r := setupRouter(t)

	eventID := uuid.New().String()
	regSvc.EXPECT().Register(mock.Anything, mock.Anything).Return(nil, domain.ErrEventFull)

	body, _ := json.Marshal(dto.RegisterRequest{Name: "Bob", Email: "bob@example.com", Phone: "+1234567"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/events/"+eventID+"/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandler_ListRegistrations_Success(t *testing.T) {
	_, _, regSvc, r := setupRouter(t)

	eventID := uuid.New().String()
	regs := []*domain.Registration{
		{ID: "r1", EventID: eventID, Name: "Bob", CreatedAt: time.Now()},
		{ID: "r2", EventID: eventID, Name: "Carol", CreatedAt: time.Now()},
	}
	regSvc.EXPECT().ListByEvent(mock.Anything, eventID).Return(regs, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/events/"+eventID+"/registrations", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []dto.RegistrationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}

func TestHandler_ListRegistrations_InvalidID(t *testing.T) {
	_, _, _, r := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/events/bad-id/registrations", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_HandleError_InternalError(t *testing.T) {
	_, eventSvc, _, r := setupRouter(t)

	eventID := uuid.New().String()
	eventSvc.EXPECT().GetDetails(mock.Anything, eventID).Return(nil, assert.AnError)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/events/"+eventID, nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
