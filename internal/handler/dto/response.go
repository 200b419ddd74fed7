package dto

import (
	"time"

	"github.com/avdeev0/EventRegistry/internal/domain"
)

const dateLayout = "2006-01-02"

type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

type SessionResponse struct {
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	ExpiresAt string `json:"expires_at"`
}

type EventResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Organizer   string `json:"organizer"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Description string `json:"description"`
	Capacity    int    `json:"capacity"`
	CreatedAt   string `json:"created_at"`
}

type EventDetailsResponse struct {
	Event         EventResponse          `json:"event"`
	Registered    int                    `json:"registered"`
	Registrations []RegistrationResponse `json:"registrations"`
}

type RegistrationResponse struct {
	ID        string `json:"id"`
	EventID   string `json:"event_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	CreatedAt string `json:"created_at"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

func ToSessionResponse(s *domain.Session) SessionResponse {
	return SessionResponse{
		Token:     s.Token,
		UserID:    s.UserID,
		Username:  s.Username,
		Role:      string(s.Role),
		ExpiresAt: s.ExpiresAt.Format(time.RFC3339),
	}
}

func ToEventResponse(e *domain.Event) EventResponse {
	return EventResponse{
		ID:          e.ID,
		Name:        e.Name,
		Organizer:   e.Organizer,
		Date:        e.Date.Format(dateLayout),
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Description: e.Description,
		Capacity:    e.Capacity,
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
	}
}

func ToEventDetailsResponse(d *domain.EventDetails) EventDetailsResponse {
	regs := make([]RegistrationResponse, 0, len(d.Registrations))
	for _, reg := range d.Registrations {
		regs = append(regs, ToRegistrationResponse(&reg))
	}

	return EventDetailsResponse{
		Event:         ToEventResponse(&d.Event),
		Registered:    d.Registered,
		Registrations: regs,
	}
}

func ToRegistrationResponse(r *domain.Registration) RegistrationResponse {
	return RegistrationResponse{
		ID:        r.ID,
		EventID:   r.EventID,
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
	}
}
