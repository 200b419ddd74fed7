package domain

import "time"

type Event struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Organizer   string    `json:"organizer"`
	Date        time.Time `json:"date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	Description string    `json:"description"`
	Capacity    int       `json:"capacity"`
	CreatedAt   time.Time `json:"created_at"`
}

type EventDetails struct {
	Event         Event          `json:"event"`
	Registered    int            `json:"registered"`
	Registrations []Registration `json:"registrations"`
}

type CreateEventInput struct {
	Name        string
	Organizer   string
	Date        time.Time
	StartTime   string
	EndTime     string
	Description string
	Capacity    int
}
