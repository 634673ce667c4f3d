package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shivanand-hulikatti/event-planner/internal/model"
)

// AccommodationRepository handles persistence for room bookings.
type AccommodationRepository struct {
	db *pgxpool.Pool
}

// NewAccommodationRepository constructs an AccommodationRepository.
func NewAccommodationRepository(db *pgxpool.Pool) *AccommodationRepository {
	return &AccommodationRepository{db: db}
}

// Create books a room for an event.
func (r *AccommodationRepository) Create(ctx context.Context, eventID string, req model.AddBookingRequest) (*model.AccommodationBooking, error) {
	b := &model.AccommodationBooking{
		ID:         uuid.New().String(),
		EventID:    eventID,
		RoomName:   req.RoomName,
		GuestCount: req.GuestCount,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		Notes:      req.Notes,
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO accommodation_bookings (id, event_id, room_name, guest_count, check_in, check_out, notes, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		b.ID, b.EventID, b.RoomName, b.GuestCount, b.CheckIn, b.CheckOut, b.Notes, time.Now().UTC(),
	)
	if err != nil {
		if errors.Is(notFoundIfMissingParent(err), ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("insert booking: %w", err)
	}
	return b, nil
}

// ListByEvent returns the room bookings of an event.
func (r *AccommodationRepository) ListByEvent(ctx context.Context, eventID string) ([]model.AccommodationBooking, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, event_id, room_name, guest_count, check_in, check_out, notes
		 FROM accommodation_bookings
		 WHERE event_id = $1
		 ORDER BY check_in ASC, room_name ASC`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []model.AccommodationBooking
	for rows.Next() {
		var b model.AccommodationBooking
		if err := rows.Scan(&b.ID, &b.EventID, &b.RoomName, &b.GuestCount, &b.CheckIn, &b.CheckOut, &b.Notes); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
