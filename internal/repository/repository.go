// Package repository implements all database queries for the event planner.
// It uses pgx directly (no ORM). Money columns are read as text and parsed
// into decimals so no value passes through a float.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Shivanand-hulikatti/event-planner/internal/model"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

const pgForeignKeyViolation = "23503"

// notFoundIfMissingParent turns a foreign-key violation into ErrNotFound.
func notFoundIfMissingParent(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return ErrNotFound
	}
	return err
}

// numericArg encodes an optional amount as a query argument.
func numericArg(d decimal.NullDecimal) any {
	if !d.Valid {
		return nil
	}
	return d.Decimal.String()
}

// parseNumeric decodes a NUMERIC column selected as ::text.
func parseNumeric(s *string) (decimal.NullDecimal, error) {
	if s == nil {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("parse numeric %q: %w", *s, err)
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}, nil
}

// EventRepository handles persistence for events.
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository constructs an EventRepository.
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `id, name, event_date, headcount_price::text, created_at`

func scanEvent(row pgx.Row) (*model.Event, error) {
	var (
		e     model.Event
		price *string
	)
	if err := row.Scan(&e.ID, &e.Name, &e.EventDate, &price, &e.CreatedAt); err != nil {
		return nil, err
	}
	p, err := parseNumeric(price)
	if err != nil {
		return nil, err
	}
	e.HeadcountPrice = p
	return &e, nil
}

// Create inserts a new event with a generated UUID and no price.
func (r *EventRepository) Create(ctx context.Context, req model.CreateEventRequest) (*model.Event, error) {
	y, m, d := req.EventDate.Date()
	event := &model.Event{
		ID:        uuid.New().String(),
		Name:      req.Name,
		EventDate: time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Now().UTC(),
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO events (id, name, event_date, created_at)
		 VALUES ($1, $2, $3, $4)`,
		event.ID, event.Name, event.EventDate, event.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return event, nil
}

// List returns all events ordered by event date.
func (r *EventRepository) List(ctx context.Context) ([]model.Event, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+eventColumns+`
		 FROM events
		 ORDER BY event_date ASC, created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

// GetByID returns a single event or ErrNotFound.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	e, err := scanEvent(r.db.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1`,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

// SetHeadcountPrice sets the per-head price, or clears it when price is null.
func (r *EventRepository) SetHeadcountPrice(ctx context.Context, id string, price decimal.NullDecimal) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE events SET headcount_price = $2::numeric WHERE id = $1`,
		id, numericArg(price),
	)
	if err != nil {
		return fmt.Errorf("update headcount price: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListIDsInDateRange returns the ids of events held between from and to,
// both days inclusive.
func (r *EventRepository) ListIDsInDateRange(ctx context.Context, from, to time.Time) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id FROM events
		 WHERE event_date BETWEEN $1 AND $2
		 ORDER BY event_date ASC, id ASC`,
		from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("list events in range: %w", err)
	}
	defer rows.Close()

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan event id: %w", err)
	}
	return ids, nil
}
