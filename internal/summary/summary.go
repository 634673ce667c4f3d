package summary

import (
	"time"

	"github.com/Shivanand-hulikatti/event-planner/internal/model"
)

// Input is everything a summary is derived from, read fresh for one event.
type Input struct {
	Event     model.Event
	Attendees []model.Attendee
	AddOns    *model.AddOnConfig // nil until an organizer sets it
	Payments  []model.PaymentRecord
	Bookings  []model.AccommodationBooking
}

// Compute derives the full snapshot for in at time now. Equal inputs yield
// equal snapshots apart from ComputedAt.
func Compute(in Input, gate Gate, now time.Time) model.EventSummary {
	ev := in.Event
	class := Classify(in.Attendees, ev.EventDate)
	cost := CalculateCost(class, ev.HeadcountPrice, in.AddOns)
	rec := Reconcile(in.Payments, ev.HeadcountPrice, cost.Total)

	s := model.EventSummary{
		EventID:   ev.ID,
		IsVisible: gate.IsVisible(ev.EventDate, now),

		Adults:       class.Adults,
		MinorsMidAge: class.MidMinors,
		MinorsYoung:  class.YoungMinors,
		ServiceSeats: class.ServiceSeats,

		DietStandard:             class.Diets[DietStandard],
		DietVegetarian:           class.Diets[DietVegetarian],
		DietVegan:                class.Diets[DietVegan],
		DietGlutenFree:           class.Diets[DietGlutenFree],
		DietLactoseFree:          class.Diets[DietLactoseFree],
		DietGlutenAndLactoseFree: class.Diets[DietGlutenAndLactoseFree],
		DietOther:                class.Diets[DietOther],

		HeadcountPrice:   ev.HeadcountPrice,
		BaseCost:         cost.Base,
		MidMinorCost:     cost.MidMinor,
		ServiceSeatCost:  cost.ServiceSeat,
		CakeCost:         cost.Cake,
		SweetTableCost:   cost.SweetTable,
		GuestPackageCost: cost.GuestPackage,
		TotalCost:        cost.Total,
		PaidAmount:       rec.Paid,
		RemainingAmount:  rec.Remaining,

		RoomsCount: len(in.Bookings),

		ComputedAt: now.UTC(),
	}

	for _, b := range in.Bookings {
		s.AccommodatedGuests += b.GuestCount
	}

	if a := in.AddOns; a != nil {
		s.CakeSource = optional(a.CakeSource)
		s.CakeFlavors = optional(a.CakeFlavors)
		s.SweetTableSource = optional(string(a.SweetTableSource))
		s.GuestPackageSource = optional(string(a.GuestPackageSource))
		if a.GuestPackageCount != nil {
			n := *a.GuestPackageCount
			s.GuestPackageCount = &n
		}
	}
	return s
}

// BookedRooms lists the accommodation rollup lines.
func BookedRooms(bookings []model.AccommodationBooking) []model.BookedRoom {
	rooms := make([]model.BookedRoom, 0, len(bookings))
	for _, b := range bookings {
		rooms = append(rooms, model.BookedRoom{
			RoomName:   b.RoomName,
			GuestCount: b.GuestCount,
			CheckIn:    b.CheckIn,
			CheckOut:   b.CheckOut,
			Notes:      b.Notes,
		})
	}
	return rooms
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
