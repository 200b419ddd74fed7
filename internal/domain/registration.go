package domain

import "time"

type Registration struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

type RegisterInput struct {
	EventID string
	Name    string
	Email   string
	Phone   string
}
