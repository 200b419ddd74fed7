package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avdeev0/EventRegistry/internal/domain"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"
)

type EventRepository struct {
	db       *dbpg.DB
	strategy retry.Strategy
}

func NewEventRepo(db *dbpg.DB) *EventRepository {
	return &EventRepository{
		db: db,
		strategy: retry.Strategy{
			Attempts: 3,
			Delay:    500 * time.Millisecond,
			Backoff:  2,
		},
	}
}

func (r *EventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `INSERT INTO events (id, name, organizer, event_date, start_time, end_time, description, capacity, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecWithRetry(
		ctx, r.strategy, query,
		e.ID, e.Name, e.Organizer, e.Date, e.StartTime,
		e.EndTime, e.Description, e.Capacity, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT id, name, organizer, event_date, start_time, end_time, description, capacity, created_at
			  FROM events
			  WHERE id=$1`

	row, err := r.db.QueryRowWithRetry(ctx, r.strategy, query, id)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}

	var e domain.Event
	if err = row.Scan(
		&e.ID, &e.Name, &e.Organizer, &e.Date, &e.StartTime,
		&e.EndTime, &e.Description, &e.Capacity, &e.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("scan event: %w", err)
	}

	return &e, nil
}

// List returns every event in insertion order. Listings are always read
// straight from the store, never cached.
func (r *EventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	query := `SELECT id, name, organizer, event_date, start_time, end_time, description, capacity, created_at
			  FROM events
			  ORDER BY created_at ASC`

	rows, err := r.db.QueryWithRetry(ctx, r.strategy, query)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var res []*domain.Event
	for rows.Next() {
		var e domain.Event
		if err = rows.Scan(
			&e.ID, &e.Name, &e.Organizer, &e.Date, &e.StartTime,
			&e.EndTime, &e.Description, &e.Capacity, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		res = append(res, &e)
	}

	return res, rows.Err()
}

func (r *EventRepository) GetDetails(ctx context.Context, eventID string) (*domain.EventDetails, error) {
	query := `
		SELECT
            e.id, e.name, e.organizer, e.event_date,
            e.start_time, e.end_time, e.description, e.capacity, e.created_at,
            COUNT(r.id) AS registered
        FROM events e
        LEFT JOIN registrations r ON r.event_id = e.id
        WHERE e.id = $1
        GROUP BY e.id`

	row, err := r.db.QueryRowWithRetry(ctx, r.strategy, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("get details: %w", err)
	}

	var d domain.EventDetails
	err = row.Scan(
		&d.Event.ID, &d.Event.Name, &d.Event.Organizer, &d.Event.Date,
		&d.Event.StartTime, &d.Event.EndTime, &d.Event.Description,
		&d.Event.Capacity, &d.Event.CreatedAt,
		&d.Registered,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event details: %w", err)
	}

	return &d, nil
}
