package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shivanand-hulikatti/event-planner/internal/model"
)

// AttendeeRepository handles persistence for attendees and seating groups.
type AttendeeRepository struct {
	db *pgxpool.Pool
}

// NewAttendeeRepository constructs an AttendeeRepository.
func NewAttendeeRepository(db *pgxpool.Pool) *AttendeeRepository {
	return &AttendeeRepository{db: db}
}

// CreateGroup inserts a seating group for an event.
func (r *AttendeeRepository) CreateGroup(ctx context.Context, eventID string, req model.CreateGroupRequest) (*model.SeatingGroup, error) {
	g := &model.SeatingGroup{
		ID:        uuid.New().String(),
		EventID:   eventID,
		Name:      req.Name,
		IsService: req.IsService,
		CreatedAt: time.Now().UTC(),
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO seating_groups (id, event_id, name, is_service, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		g.ID, g.EventID, g.Name, g.IsService, g.CreatedAt,
	)
	if err != nil {
		if errors.Is(notFoundIfMissingParent(err), ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("insert seating group: %w", err)
	}
	return g, nil
}

// Create inserts an attendee. A group from another event is rejected as
// not found.
func (r *AttendeeRepository) Create(ctx context.Context, eventID string, req model.AddAttendeeRequest) (*model.Attendee, error) {
	a := &model.Attendee{
		ID:          uuid.New().String(),
		EventID:     eventID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
		IsMinor:     req.IsMinor,
		Diet:        req.Diet,
		GroupID:     req.GroupID,
		CreatedAt:   time.Now().UTC(),
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if a.GroupID != nil {
		err = tx.QueryRow(ctx,
			`SELECT is_service FROM seating_groups WHERE id = $1 AND event_id = $2`,
			*a.GroupID, eventID,
		).Scan(&a.InServiceGroup)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("lookup seating group: %w", err)
		}
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO attendees (id, event_id, first_name, last_name, date_of_birth, is_minor, diet, group_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		a.ID, a.EventID, a.FirstName, a.LastName, a.DateOfBirth, a.IsMinor, a.Diet, a.GroupID, a.CreatedAt,
	)
	if err != nil {
		if errors.Is(notFoundIfMissingParent(err), ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("insert attendee: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return a, nil
}

// ListByEvent returns all attendees of an event with their seating group's
// service flag resolved.
func (r *AttendeeRepository) ListByEvent(ctx context.Context, eventID string) ([]model.Attendee, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.id, a.event_id, a.first_name, a.last_name, a.date_of_birth, a.is_minor,
		        a.diet, a.group_id, COALESCE(g.is_service, FALSE), a.created_at
		 FROM attendees a
		 LEFT JOIN seating_groups g ON g.id = a.group_id
		 WHERE a.event_id = $1
		 ORDER BY a.created_at ASC, a.id ASC`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	defer rows.Close()

	var attendees []model.Attendee
	for rows.Next() {
		var a model.Attendee
		if err := rows.Scan(&a.ID, &a.EventID, &a.FirstName, &a.LastName, &a.DateOfBirth, &a.IsMinor,
			&a.Diet, &a.GroupID, &a.InServiceGroup, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan attendee: %w", err)
		}
		attendees = append(attendees, a)
	}
	return attendees, rows.Err()
}
