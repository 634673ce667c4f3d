package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Shivanand-hulikatti/event-planner/internal/model"
	"github.com/Shivanand-hulikatti/event-planner/internal/repository"
	"github.com/Shivanand-hulikatti/event-planner/internal/summary"
)

// ErrInvalidPrice is returned for a negative head-count price.
var ErrInvalidPrice error = &ValidationError{msg: "headcount price cannot be negative"}

// EventStore is the event access the summary engine needs.
type EventStore interface {
	GetByID(ctx context.Context, id string) (*model.Event, error)
	SetHeadcountPrice(ctx context.Context, id string, price decimal.NullDecimal) error
	ListIDsInDateRange(ctx context.Context, from, to time.Time) ([]string, error)
}

// AttendeeReader lists an event's attendees.
type AttendeeReader interface {
	ListByEvent(ctx context.Context, eventID string) ([]model.Attendee, error)
}

// PaymentReader lists an event's payment ledger.
type PaymentReader interface {
	ListByEvent(ctx context.Context, eventID string) ([]model.PaymentRecord, error)
}

// AddOnReader returns an event's add-on configuration, nil when unset.
type AddOnReader interface {
	GetByEvent(ctx context.Context, eventID string) (*model.AddOnConfig, error)
}

// BookingReader lists an event's accommodation bookings.
type BookingReader interface {
	ListByEvent(ctx context.Context, eventID string) ([]model.AccommodationBooking, error)
}

// SummaryStore persists snapshots.
type SummaryStore interface {
	Upsert(ctx context.Context, s *model.EventSummary) error
}

// Sources groups the record sets a summary is derived from.
type Sources struct {
	Events    EventStore
	Attendees AttendeeReader
	Payments  PaymentReader
	AddOns    AddOnReader
	Bookings  BookingReader
}

// SweepResult reports one pass over the events near their lead time.
type SweepResult struct {
	Due        int
	Recomputed int
	Failed     int
}

// SummaryService recomputes and stores event summaries.
type SummaryService struct {
	src   Sources
	store SummaryStore
	gate  summary.Gate
	clock summary.Clock
	log   *zap.Logger
}

// NewSummaryService constructs a SummaryService. A nil clock reads the wall
// clock.
func NewSummaryService(src Sources, store SummaryStore, gate summary.Gate, clock summary.Clock, log *zap.Logger) *SummaryService {
	if clock == nil {
		clock = summary.SystemClock{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &SummaryService{src: src, store: store, gate: gate, clock: clock, log: log}
}

// GetSummary recomputes the snapshot of an event and returns it.
func (s *SummaryService) GetSummary(ctx context.Context, eventID string) (*model.SummaryView, error) {
	return s.recompute(ctx, eventID)
}

// Refresh forces a recompute without touching any input.
func (s *SummaryService) Refresh(ctx context.Context, eventID string) (*model.SummaryView, error) {
	return s.recompute(ctx, eventID)
}

// SetHeadcountPrice updates the per-head price (null clears it) and returns
// the recomputed snapshot.
func (s *SummaryService) SetHeadcountPrice(ctx context.Context, eventID string, price decimal.NullDecimal) (*model.SummaryView, error) {
	if eventID == "" {
		return nil, repository.ErrNotFound
	}
	if price.Valid && price.Decimal.IsNegative() {
		return nil, ErrInvalidPrice
	}
	if err := s.src.Events.SetHeadcountPrice(ctx, eventID, price); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("set headcount price: %w", err)
	}
	return s.recompute(ctx, eventID)
}

// Sweep recomputes every event whose date falls inside the sweep window, one
// at a time. A failing event is logged and skipped.
func (s *SummaryService) Sweep(ctx context.Context) (SweepResult, error) {
	var res SweepResult

	from, to := s.gate.SweepWindow(s.clock.Now())
	ids, err := s.src.Events.ListIDsInDateRange(ctx, from, to)
	if err != nil {
		return res, fmt.Errorf("list due events: %w", err)
	}
	res.Due = len(ids)

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if _, err := s.recompute(ctx, id); err != nil {
			res.Failed++
			s.log.Warn("summary recompute failed", zap.String("event_id", id), zap.Error(err))
			continue
		}
		res.Recomputed++
	}
	return res, nil
}

// recompute reads every source fresh, derives the snapshot in memory and
// writes it with one upsert.
func (s *SummaryService) recompute(ctx context.Context, eventID string) (*model.SummaryView, error) {
	if eventID == "" {
		return nil, repository.ErrNotFound
	}

	ev, err := s.src.Events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("load event: %w", err)
	}

	in := summary.Input{Event: *ev}
	if in.Attendees, err = s.src.Attendees.ListByEvent(ctx, eventID); err != nil {
		return nil, fmt.Errorf("load attendees: %w", err)
	}
	if in.AddOns, err = s.src.AddOns.GetByEvent(ctx, eventID); err != nil {
		return nil, fmt.Errorf("load add-ons: %w", err)
	}
	if in.Payments, err = s.src.Payments.ListByEvent(ctx, eventID); err != nil {
		return nil, fmt.Errorf("load payments: %w", err)
	}
	if in.Bookings, err = s.src.Bookings.ListByEvent(ctx, eventID); err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}

	now := s.clock.Now()
	snap := summary.Compute(in, s.gate, now)
	if err := s.store.Upsert(ctx, &snap); err != nil {
		return nil, fmt.Errorf("store summary: %w", err)
	}

	return &model.SummaryView{
		Summary:     snap,
		EventDate:   ev.EventDate,
		DaysUntil:   s.gate.DaysUntil(ev.EventDate, now),
		BookedRooms: summary.BookedRooms(in.Bookings),
		RoomsCount:  len(in.Bookings),
	}, nil
}
