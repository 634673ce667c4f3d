// Package model defines the core domain types for the event planner.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event is the occasion being planned. It is the root aggregate for
// attendees, payments, add-ons, bookings and the derived summary.
type Event struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	EventDate time.Time `json:"event_date"`
	// HeadcountPrice stays invalid (null) until an operator sets it.
	HeadcountPrice decimal.NullDecimal `json:"headcount_price"`
	CreatedAt      time.Time           `json:"created_at"`
}

// SeatingGroup is a table or other seating unit. Service groups seat
// entertainment or vendor staff at the discounted rate.
type SeatingGroup struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Name      string    `json:"name"`
	IsService bool      `json:"is_service"`
	CreatedAt time.Time `json:"created_at"`
}

// Attendee is a single guest of an event.
type Attendee struct {
	ID          string     `json:"id"`
	EventID     string     `json:"event_id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	IsMinor     bool       `json:"is_minor"`
	Diet        string     `json:"diet"`
	GroupID     *string    `json:"group_id,omitempty"`
	// InServiceGroup is resolved from the attendee's seating group on read.
	InServiceGroup bool      `json:"in_service_group"`
	CreatedAt      time.Time `json:"created_at"`
}

// AddOnSource says who provides an optional add-on.
type AddOnSource string

const (
	AddOnSourceVenue    AddOnSource = "venue"
	AddOnSourceExternal AddOnSource = "external"
)

// AddOnConfig holds the optional priced selections of an event. Prices and
// counts only carry meaning when the matching source is the venue.
type AddOnConfig struct {
	EventID               string              `json:"event_id"`
	CakeSource            string              `json:"cake_source"`
	CakeFlavors           string              `json:"cake_flavors"`
	SweetTableSource      AddOnSource         `json:"sweet_table_source"`
	SweetTableAmount      decimal.NullDecimal `json:"sweet_table_amount"`
	GuestPackageSource    AddOnSource         `json:"guest_package_source"`
	GuestPackageUnitPrice decimal.NullDecimal `json:"guest_package_unit_price"`
	GuestPackageCount     *int                `json:"guest_package_count,omitempty"`
	UpdatedAt             time.Time           `json:"updated_at"`
}

// PaymentStatus is the settlement state of a payment record.
type PaymentStatus string

const (
	PaymentPaid   PaymentStatus = "paid"
	PaymentUnpaid PaymentStatus = "unpaid"
)

// PaymentRecord is one installment in an event's payment ledger.
type PaymentRecord struct {
	ID        string          `json:"id"`
	EventID   string          `json:"event_id"`
	Title     string          `json:"title"`
	Amount    decimal.Decimal `json:"amount"`
	Status    PaymentStatus   `json:"status"`
	DueDate   *time.Time      `json:"due_date,omitempty"`
	PaidAt    *time.Time      `json:"paid_at,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// AccommodationBooking reserves a room for some of the event's guests.
type AccommodationBooking struct {
	ID         string    `json:"id"`
	EventID    string    `json:"event_id"`
	RoomName   string    `json:"room_name"`
	GuestCount int       `json:"guest_count"`
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`
	Notes      string    `json:"notes,omitempty"`
}

// EventSummary is the derived snapshot, exactly one per event. It is
// always written whole.
type EventSummary struct {
	EventID   string `json:"event_id"`
	IsVisible bool   `json:"is_visible"`

	Adults       int `json:"adults"`
	MinorsMidAge int `json:"minors_mid_age"`
	MinorsYoung  int `json:"minors_young"`
	ServiceSeats int `json:"service_seats"`

	DietStandard             int `json:"diet_standard"`
	DietVegetarian           int `json:"diet_vegetarian"`
	DietVegan                int `json:"diet_vegan"`
	DietGlutenFree           int `json:"diet_gluten_free"`
	DietLactoseFree          int `json:"diet_lactose_free"`
	DietGlutenAndLactoseFree int `json:"diet_gluten_and_lactose_free"`
	DietOther                int `json:"diet_other"`

	HeadcountPrice   decimal.NullDecimal `json:"headcount_price"`
	BaseCost         decimal.NullDecimal `json:"base_cost"`
	MidMinorCost     decimal.NullDecimal `json:"mid_minor_cost"`
	ServiceSeatCost  decimal.NullDecimal `json:"service_seat_cost"`
	CakeCost         decimal.NullDecimal `json:"cake_cost"`
	SweetTableCost   decimal.NullDecimal `json:"sweet_table_cost"`
	GuestPackageCost decimal.NullDecimal `json:"guest_package_cost"`
	TotalCost        decimal.NullDecimal `json:"total_cost"`
	PaidAmount       decimal.NullDecimal `json:"paid_amount"`
	RemainingAmount  decimal.NullDecimal `json:"remaining_amount"`

	CakeSource         *string `json:"cake_source"`
	CakeFlavors        *string `json:"cake_flavors"`
	SweetTableSource   *string `json:"sweet_table_source"`
	GuestPackageSource *string `json:"guest_package_source"`
	GuestPackageCount  *int    `json:"guest_package_count"`

	RoomsCount         int `json:"rooms_count"`
	AccommodatedGuests int `json:"accommodated_guests"`

	ComputedAt time.Time `json:"computed_at"`
}

// BookedRoom is the per-booking line of the accommodation rollup.
type BookedRoom struct {
	RoomName   string    `json:"room_name"`
	GuestCount int       `json:"guest_count"`
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`
	Notes      string    `json:"notes,omitempty"`
}

// SummaryView is what the summary endpoints return: the stored snapshot
// plus values that only make sense at read time.
type SummaryView struct {
	Summary     EventSummary `json:"summary"`
	EventDate   time.Time    `json:"event_date"`
	DaysUntil   int          `json:"days_until"`
	BookedRooms []BookedRoom `json:"booked_rooms"`
	RoomsCount  int          `json:"rooms_count"`
}

// ─── Request payloads ─────────────────────────────────────────────────────────

// CreateEventRequest is the payload for registering a new event.
type CreateEventRequest struct {
	Name      string    `json:"name"`
	EventDate time.Time `json:"event_date"`
}

// SetPriceRequest sets or clears (null) the per-head price.
type SetPriceRequest struct {
	Price decimal.NullDecimal `json:"price"`
}

// CreateGroupRequest is the payload for adding a seating group.
type CreateGroupRequest struct {
	Name      string `json:"name"`
	IsService bool   `json:"is_service"`
}

// AddAttendeeRequest is the payload for adding a guest.
type AddAttendeeRequest struct {
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	IsMinor     bool       `json:"is_minor"`
	Diet        string     `json:"diet"`
	GroupID     *string    `json:"group_id,omitempty"`
}

// RecordPaymentRequest is the payload for adding a ledger entry.
type RecordPaymentRequest struct {
	Title   string          `json:"title"`
	Amount  decimal.Decimal `json:"amount"`
	Paid    bool            `json:"paid"`
	DueDate *time.Time      `json:"due_date,omitempty"`
}

// PutAddOnsRequest replaces an event's add-on configuration.
type PutAddOnsRequest struct {
	CakeSource            string              `json:"cake_source"`
	CakeFlavors           string              `json:"cake_flavors"`
	SweetTableSource      AddOnSource         `json:"sweet_table_source"`
	SweetTableAmount      decimal.NullDecimal `json:"sweet_table_amount"`
	GuestPackageSource    AddOnSource         `json:"guest_package_source"`
	GuestPackageUnitPrice decimal.NullDecimal `json:"guest_package_unit_price"`
	GuestPackageCount     *int                `json:"guest_package_count,omitempty"`
}

// AddBookingRequest is the payload for reserving a room.
type AddBookingRequest struct {
	RoomName   string    `json:"room_name"`
	GuestCount int       `json:"guest_count"`
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`
	Notes      string    `json:"notes,omitempty"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}
