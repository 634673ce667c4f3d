package summary

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Shivanand-hulikatti/event-planner/internal/model"
)

func scenarioInput(p decimal.NullDecimal) Input {
	event := model.Event{ID: "ev-1", EventDate: weddingDay, HeadcountPrice: p}

	var attendees []model.Attendee
	for i := 0; i < 10; i++ {
		attendees = append(attendees, model.Attendee{})
	}
	attendees = append(attendees,
		model.Attendee{IsMinor: true, DateOfBirth: dob(2020, time.May, 1), Diet: "vegan"},
		model.Attendee{IsMinor: true, DateOfBirth: dob(2019, time.May, 1)},
		model.Attendee{IsMinor: true, DateOfBirth: dob(2025, time.May, 1), Diet: "lactose-free"},
	)

	return Input{Event: event, Attendees: attendees}
}

func TestCompute_PricedEvent(t *testing.T) {
	in := scenarioInput(price("100"))
	in.Payments = []model.PaymentRecord{
		payment("500", model.PaymentPaid),
		payment("300", model.PaymentPaid),
		payment("200", model.PaymentUnpaid),
	}
	now := weddingDay.AddDate(0, 0, -30)

	s := Compute(in, NewGate(4, time.UTC), now)

	assert.Equal(t, "ev-1", s.EventID)
	assert.False(t, s.IsVisible)
	assert.Equal(t, 10, s.Adults)
	assert.Equal(t, 2, s.MinorsMidAge)
	assert.Equal(t, 1, s.MinorsYoung)
	assert.Equal(t, 11, s.DietStandard)
	assert.Equal(t, 1, s.DietVegan)
	assert.Equal(t, 1, s.DietLactoseFree)
	assertMoney(t, "1000", s.BaseCost)
	assertMoney(t, "100", s.MidMinorCost)
	assertMoney(t, "1100", s.TotalCost)
	assertMoney(t, "800", s.PaidAmount)
	assertMoney(t, "300", s.RemainingAmount)
	assert.Equal(t, now.UTC(), s.ComputedAt)
}

func TestCompute_UnpricedEventHasNoCosts(t *testing.T) {
	in := scenarioInput(decimal.NullDecimal{})
	in.Payments = []model.PaymentRecord{payment("500", model.PaymentPaid)}
	in.AddOns = &model.AddOnConfig{
		SweetTableSource: model.AddOnSourceVenue,
		SweetTableAmount: price("400"),
	}

	s := Compute(in, NewGate(4, time.UTC), weddingDay.AddDate(0, 0, -2))

	assert.True(t, s.IsVisible)
	for name, line := range map[string]decimal.NullDecimal{
		"price":         s.HeadcountPrice,
		"base":          s.BaseCost,
		"mid minor":     s.MidMinorCost,
		"service seat":  s.ServiceSeatCost,
		"cake":          s.CakeCost,
		"sweet table":   s.SweetTableCost,
		"guest package": s.GuestPackageCost,
		"total":         s.TotalCost,
		"paid":          s.PaidAmount,
		"remaining":     s.RemainingAmount,
	} {
		assert.False(t, line.Valid, name)
	}
	assert.Equal(t, 13, s.Adults+s.MinorsMidAge+s.MinorsYoung)
}

func TestCompute_AddOnFieldsAndRooms(t *testing.T) {
	in := scenarioInput(price("100"))
	in.AddOns = &model.AddOnConfig{
		CakeSource:         "external",
		CakeFlavors:        "vanilla, raspberry",
		GuestPackageSource: model.AddOnSourceExternal,
		GuestPackageCount:  intPtr(60),
	}
	in.Bookings = []model.AccommodationBooking{
		{RoomName: "Suite", GuestCount: 2},
		{RoomName: "Double 4", GuestCount: 3},
	}

	s := Compute(in, NewGate(4, time.UTC), weddingDay)

	if assert.NotNil(t, s.CakeSource) {
		assert.Equal(t, "external", *s.CakeSource)
	}
	if assert.NotNil(t, s.CakeFlavors) {
		assert.Equal(t, "vanilla, raspberry", *s.CakeFlavors)
	}
	assert.Nil(t, s.SweetTableSource)
	if assert.NotNil(t, s.GuestPackageCount) {
		assert.Equal(t, 60, *s.GuestPackageCount)
	}
	assert.False(t, s.GuestPackageCost.Valid)
	assert.Equal(t, 2, s.RoomsCount)
	assert.Equal(t, 5, s.AccommodatedGuests)

	rooms := BookedRooms(in.Bookings)
	assert.Len(t, rooms, 2)
	assert.Equal(t, "Suite", rooms[0].RoomName)
}

func TestCompute_Idempotent(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	in := Input{
		Event:     model.Event{ID: "ev-2", EventDate: weddingDay, HeadcountPrice: price("250.40")},
		Attendees: randomAttendees(r, 60),
		Payments:  []model.PaymentRecord{payment("1000", model.PaymentPaid)},
	}
	gate := NewGate(4, time.UTC)

	first := Compute(in, gate, weddingDay.Add(-3*time.Hour))
	second := Compute(in, gate, weddingDay.Add(-1*time.Hour))

	first.ComputedAt, second.ComputedAt = time.Time{}, time.Time{}
	assert.Equal(t, first, second)
}

func TestCompute_NoAttendees(t *testing.T) {
	s := Compute(Input{Event: model.Event{ID: "ev-3", EventDate: weddingDay, HeadcountPrice: price("100")}},
		NewGate(4, time.UTC), weddingDay)

	assert.Zero(t, s.Adults+s.MinorsMidAge+s.MinorsYoung)
	assertMoney(t, "0", s.TotalCost)
	assertMoney(t, "0", s.PaidAmount)
	assertMoney(t, "0", s.RemainingAmount)
}
