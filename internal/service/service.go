// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the repository layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Shivanand-hulikatti/event-planner/internal/model"
	"github.com/Shivanand-hulikatti/event-planner/internal/repository"
)

// EventService manages the records a summary is derived from. None of its
// writes touch the stored snapshot.
type EventService struct {
	events         *repository.EventRepository
	attendees      *repository.AttendeeRepository
	payments       *repository.PaymentRepository
	addOns         *repository.AddOnRepository
	accommodations *repository.AccommodationRepository
}

// NewEventService constructs an EventService with its dependencies.
func NewEventService(
	events *repository.EventRepository,
	attendees *repository.AttendeeRepository,
	payments *repository.PaymentRepository,
	addOns *repository.AddOnRepository,
	accommodations *repository.AccommodationRepository,
) *EventService {
	return &EventService{
		events:         events,
		attendees:      attendees,
		payments:       payments,
		addOns:         addOns,
		accommodations: accommodations,
	}
}

// CreateEvent validates the request and delegates to the repository.
func (s *EventService) CreateEvent(ctx context.Context, req model.CreateEventRequest) (*model.Event, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, invalid("event name is required")
	}
	if req.EventDate.IsZero() {
		return nil, invalid("event_date is required")
	}
	return s.events.Create(ctx, req)
}

// ListEvents returns all events.
func (s *EventService) ListEvents(ctx context.Context) ([]model.Event, error) {
	return s.events.List(ctx)
}

// GetEvent returns a single event by ID.
func (s *EventService) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	if id == "" {
		return nil, invalid("event id is required")
	}
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

// CreateGroup adds a seating group to an event.
func (s *EventService) CreateGroup(ctx context.Context, eventID string, req model.CreateGroupRequest) (*model.SeatingGroup, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, invalid("group name is required")
	}
	return passNotFound(s.attendees.CreateGroup(ctx, eventID, req))
}

// AddAttendee validates and stores a guest.
func (s *EventService) AddAttendee(ctx context.Context, eventID string, req model.AddAttendeeRequest) (*model.Attendee, error) {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Diet = strings.TrimSpace(req.Diet)
	if req.FirstName == "" {
		return nil, invalid("first_name is required")
	}
	return passNotFound(s.attendees.Create(ctx, eventID, req))
}

// ListAttendees returns all attendees of an event.
func (s *EventService) ListAttendees(ctx context.Context, eventID string) ([]model.Attendee, error) {
	if _, err := s.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}
	return s.attendees.ListByEvent(ctx, eventID)
}

// RecordPayment appends a ledger entry.
func (s *EventService) RecordPayment(ctx context.Context, eventID string, req model.RecordPaymentRequest) (*model.PaymentRecord, error) {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return nil, invalid("title is required")
	}
	if !req.Amount.IsPositive() {
		return nil, invalid("amount must be positive")
	}
	return passNotFound(s.payments.Create(ctx, eventID, req))
}

// MarkPaymentPaid settles a ledger entry.
func (s *EventService) MarkPaymentPaid(ctx context.Context, eventID, paymentID string) error {
	if err := s.payments.MarkPaid(ctx, eventID, paymentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("mark payment paid: %w", err)
	}
	return nil
}

// PutAddOns replaces the add-on configuration of an event.
func (s *EventService) PutAddOns(ctx context.Context, eventID string, req model.PutAddOnsRequest) (*model.AddOnConfig, error) {
	if err := validateAddOns(req); err != nil {
		return nil, err
	}
	return passNotFound(s.addOns.Put(ctx, eventID, req))
}

// AddBooking books a room for some of the event's guests.
func (s *EventService) AddBooking(ctx context.Context, eventID string, req model.AddBookingRequest) (*model.AccommodationBooking, error) {
	req.RoomName = strings.TrimSpace(req.RoomName)
	if req.RoomName == "" {
		return nil, invalid("room_name is required")
	}
	if req.GuestCount <= 0 {
		return nil, invalid("guest_count must be a positive integer")
	}
	if req.CheckIn.IsZero() || !req.CheckOut.After(req.CheckIn) {
		return nil, invalid("check_out must be after check_in")
	}
	return passNotFound(s.accommodations.Create(ctx, eventID, req))
}

// ValidationError is a request that failed validation. Its message is safe
// to show to the caller.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func invalid(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

func validateAddOns(req model.PutAddOnsRequest) error {
	for name, src := range map[string]model.AddOnSource{
		"sweet_table_source":   req.SweetTableSource,
		"guest_package_source": req.GuestPackageSource,
	} {
		switch src {
		case "", model.AddOnSourceVenue, model.AddOnSourceExternal:
		default:
			return invalid("%s must be %q or %q", name, model.AddOnSourceVenue, model.AddOnSourceExternal)
		}
	}
	if req.SweetTableAmount.Valid && req.SweetTableAmount.Decimal.IsNegative() {
		return invalid("sweet_table_amount cannot be negative")
	}
	if req.GuestPackageUnitPrice.Valid && req.GuestPackageUnitPrice.Decimal.IsNegative() {
		return invalid("guest_package_unit_price cannot be negative")
	}
	if req.GuestPackageCount != nil && *req.GuestPackageCount < 0 {
		return invalid("guest_package_count cannot be negative")
	}
	return nil
}

// passNotFound surfaces ErrNotFound directly so handlers can set the
// correct HTTP status, and wraps anything else.
func passNotFound[T any](v T, err error) (T, error) {
	if err == nil {
		return v, nil
	}
	var zero T
	if errors.Is(err, repository.ErrNotFound) {
		return zero, repository.ErrNotFound
	}
	return zero, fmt.Errorf("store record: %w", err)
}
