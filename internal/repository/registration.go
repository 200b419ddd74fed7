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

type RegistrationRepository struct {
	db       *dbpg.DB
	strategy retry.Strategy
}

func NewRegistrationRepo(db *dbpg.DB) *RegistrationRepository {
	return &RegistrationRepository{
		db: db,
		strategy: retry.Strategy{
			Attempts: 3,
			Delay:    500 * time.Millisecond,
			Backoff:  2,
		},
	}
}

// Create inserts a registration without looking at the event's capacity.
// Duplicate submissions for the same person are allowed.
func (r *RegistrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	query := `INSERT INTO registrations (id, event_id, name, email, phone, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecWithRetry(
		ctx, r.strategy, query,
		reg.ID, reg.EventID, reg.Name, reg.Email, reg.Phone, reg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert registration: %w", err)
	}

	return nil
}

// Reserve inserts a registration only while the event still has free spots.
// The event row is locked for the duration of the transaction so two
// concurrent registrations cannot both take the last spot.
func (r *RegistrationRepository) Reserve(ctx context.Context, reg *domain.Registration) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	capQuery := `SELECT capacity FROM events WHERE id = $1 FOR UPDATE`
	var capacity int
	if err = tx.QueryRowContext(ctx, capQuery, reg.EventID).Scan(&capacity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrEventNotFound
		}
		return fmt.Errorf("get capacity: %w", err)
	}

	countQuery := `SELECT COUNT(*) FROM registrations WHERE event_id = $1`
	var registered int
	if err = tx.QueryRowContext(ctx, countQuery, reg.EventID).Scan(&registered); err != nil {
		return fmt.Errorf("count registrations: %w", err)
	}

	if registered >= capacity {
		return domain.ErrEventFull
	}

	query := `INSERT INTO registrations (id, event_id, name, email, phone, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = tx.ExecContext(
		ctx, query,
		reg.ID, reg.EventID, reg.Name, reg.Email, reg.Phone, reg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert registration: %w", err)
	}

	return tx.Commit()
}

func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	query := `SELECT id, event_id, name, email, phone, created_at
			  FROM registrations
			  WHERE event_id = $1
			  ORDER BY created_at ASC`

	rows, err := r.db.QueryWithRetry(ctx, r.strategy, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registrations by event: %w", err)
	}
	defer rows.Close()

	var res []*domain.Registration
	for rows.Next() {
		var reg domain.Registration
		if err = rows.Scan(&reg.ID, &reg.EventID, &reg.Name, &reg.Email, &reg.Phone, &reg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		res = append(res, &reg)
	}

	return res, rows.Err()
}
