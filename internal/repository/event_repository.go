package repository

import (
	"context"

	"timealign/internal/model"
	"timealign/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	FindByID(ctx context.Context, id string) (*model.Event, error)
}

type EventRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &EventRepositoryImpl{
		pool: pool,
	}
}

func (r *EventRepositoryImpl) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	query := `
		INSERT INTO events (id, title, description, start_date, end_date, start_hour, end_hour, timezone, duration)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, title, description, start_date, end_date, start_hour, end_hour, timezone, duration, created_at
	`
	err := r.pool.QueryRow(ctx, query,
		event.ID, event.Title, event.Description,
		event.StartDate, event.EndDate,
		event.StartHour, event.EndHour,
		event.Timezone, event.Duration,
	).Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.StartDate,
		&event.EndDate,
		&event.StartHour,
		&event.EndHour,
		&event.Timezone,
		&event.Duration,
		&event.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (r *EventRepositoryImpl) FindByID(ctx context.Context, id string) (*model.Event, error) {
	query := `
		SELECT id, title, description, start_date, end_date, start_hour, end_hour, timezone, duration, created_at
		FROM events
		WHERE id = $1
	`

	var event model.Event
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.StartDate,
		&event.EndDate,
		&event.StartHour,
		&event.EndHour,
		&event.Timezone,
		&event.Duration,
		&event.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, app_errors.ErrEventNotFound
		}
		return nil, err
	}

	return &event, nil
}
