package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shivanand-hulikatti/event-planner/internal/model"
	"github.com/Shivanand-hulikatti/event-planner/internal/repository"
	"github.com/Shivanand-hulikatti/event-planner/internal/summary"
)

// ─── In-memory fakes ──────────────────────────────────────────────────────────

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

type fakeDB struct {
	mu        sync.Mutex
	events    map[string]*model.Event
	attendees map[string][]model.Attendee
	payments  map[string][]model.PaymentRecord
	addOns    map[string]*model.AddOnConfig
	bookings  map[string][]model.AccommodationBooking
	summaries map[string]model.EventSummary
	upserts   int

	failAttendees map[string]bool
	failUpsert    bool
	failList      bool
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		events:        map[string]*model.Event{},
		attendees:     map[string][]model.Attendee{},
		payments:      map[string][]model.PaymentRecord{},
		addOns:        map[string]*model.AddOnConfig{},
		bookings:      map[string][]model.AccommodationBooking{},
		summaries:     map[string]model.EventSummary{},
		failAttendees: map[string]bool{},
	}
}

var errStorage = errors.New("connection reset")

type fakeEvents struct{ db *fakeDB }

func (f fakeEvents) GetByID(_ context.Context, id string) (*model.Event, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	ev, ok := f.db.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *ev
	return &cp, nil
}

func (f fakeEvents) SetHeadcountPrice(_ context.Context, id string, price decimal.NullDecimal) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	ev, ok := f.db.events[id]
	if !ok {
		return repository.ErrNotFound
	}
	ev.HeadcountPrice = price
	return nil
}

func (f fakeEvents) ListIDsInDateRange(_ context.Context, from, to time.Time) ([]string, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if f.db.failList {
		return nil, errStorage
	}
	var ids []string
	for id, ev := range f.db.events {
		if !ev.EventDate.Before(from) && !ev.EventDate.After(to) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

type fakeAttendees struct{ db *fakeDB }

func (f fakeAttendees) ListByEvent(_ context.Context, eventID string) ([]model.Attendee, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if f.db.failAttendees[eventID] {
		return nil, errStorage
	}
	return f.db.attendees[eventID], nil
}

type fakePayments struct{ db *fakeDB }

func (f fakePayments) ListByEvent(_ context.Context, eventID string) ([]model.PaymentRecord, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	return f.db.payments[eventID], nil
}

type fakeAddOns struct{ db *fakeDB }

func (f fakeAddOns) GetByEvent(_ context.Context, eventID string) (*model.AddOnConfig, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	return f.db.addOns[eventID], nil
}

type fakeBookings struct{ db *fakeDB }

func (f fakeBookings) ListByEvent(_ context.Context, eventID string) ([]model.AccommodationBooking, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	return f.db.bookings[eventID], nil
}

type fakeSummaries struct{ db *fakeDB }

func (f fakeSummaries) Upsert(_ context.Context, s *model.EventSummary) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if f.db.failUpsert {
		return errStorage
	}
	f.db.upserts++
	f.db.summaries[s.EventID] = *s
	return nil
}

var today = time.Date(2026, time.October, 14, 10, 0, 0, 0, time.UTC)

func day(offset int) time.Time {
	return time.Date(2026, time.October, 14+offset, 0, 0, 0, 0, time.UTC)
}

func newTestService(db *fakeDB, clock *fakeClock) *SummaryService {
	src := Sources{
		Events:    fakeEvents{db},
		Attendees: fakeAttendees{db},
		Payments:  fakePayments{db},
		AddOns:    fakeAddOns{db},
		Bookings:  fakeBookings{db},
	}
	return NewSummaryService(src, fakeSummaries{db}, summary.NewGate(4, time.UTC), clock, nil)
}

func money(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

func seedWedding(db *fakeDB, id string, date time.Time, price decimal.NullDecimal) {
	db.events[id] = &model.Event{ID: id, Name: "Wedding " + id, EventDate: date, HeadcountPrice: price}
	var attendees []model.Attendee
	for i := 0; i < 10; i++ {
		attendees = append(attendees, model.Attendee{EventID: id})
	}
	five := date.AddDate(-5, 0, 0)
	one := date.AddDate(-1, 0, 0)
	attendees = append(attendees,
		model.Attendee{EventID: id, IsMinor: true, DateOfBirth: &five},
		model.Attendee{EventID: id, IsMinor: true},
		model.Attendee{EventID: id, IsMinor: true, DateOfBirth: &one},
	)
	db.attendees[id] = attendees
	db.payments[id] = []model.PaymentRecord{
		{EventID: id, Amount: decimal.NewFromInt(500), Status: model.PaymentPaid},
		{EventID: id, Amount: decimal.NewFromInt(300), Status: model.PaymentPaid},
		{EventID: id, Amount: decimal.NewFromInt(200), Status: model.PaymentUnpaid},
	}
}

// ─── Tests ────────────────────────────────────────────────────────────────────

func TestSummaryService_GetSummary(t *testing.T) {
	db := newFakeDB()
	seedWedding(db, "ev-1", day(3), money("100"))
	db.bookings["ev-1"] = []model.AccommodationBooking{{RoomName: "Suite", GuestCount: 2}}
	svc := newTestService(db, &fakeClock{now: today})

	view, err := svc.GetSummary(context.Background(), "ev-1")
	require.NoError(t, err)

	s := view.Summary
	assert.True(t, s.IsVisible)
	assert.Equal(t, 3, view.DaysUntil)
	assert.Equal(t, day(3), view.EventDate)
	assert.Equal(t, 10, s.Adults)
	assert.Equal(t, 2, s.MinorsMidAge)
	assert.Equal(t, 1, s.MinorsYoung)
	assert.True(t, decimal.NewFromInt(1100).Equal(s.TotalCost.Decimal))
	assert.True(t, decimal.NewFromInt(800).Equal(s.PaidAmount.Decimal))
	assert.True(t, decimal.NewFromInt(300).Equal(s.RemainingAmount.Decimal))
	assert.Equal(t, 1, view.RoomsCount)
	assert.Len(t, view.BookedRooms, 1)
	assert.Equal(t, s, db.summaries["ev-1"])
}

func TestSummaryService_NotVisibleBeforeLeadTime(t *testing.T) {
	db := newFakeDB()
	seedWedding(db, "ev-1", day(5), money("100"))
	svc := newTestService(db, &fakeClock{now: today})

	view, err := svc.Refresh(context.Background(), "ev-1")
	require.NoError(t, err)
	assert.False(t, view.Summary.IsVisible)
	assert.Equal(t, 5, view.DaysUntil)
}

func TestSummaryService_NotFound(t *testing.T) {
	db := newFakeDB()
	svc := newTestService(db, &fakeClock{now: today})

	_, err := svc.GetSummary(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.SetHeadcountPrice(context.Background(), "missing", money("10"))
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.Refresh(context.Background(), "")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Zero(t, db.upserts)
}

func TestSummaryService_SetHeadcountPrice(t *testing.T) {
	db := newFakeDB()
	seedWedding(db, "ev-1", day(20), decimal.NullDecimal{})
	svc := newTestService(db, &fakeClock{now: today})
	ctx := context.Background()

	view, err := svc.GetSummary(ctx, "ev-1")
	require.NoError(t, err)
	assert.False(t, view.Summary.TotalCost.Valid)
	assert.False(t, view.Summary.PaidAmount.Valid)
	assert.False(t, view.Summary.RemainingAmount.Valid)

	view, err = svc.SetHeadcountPrice(ctx, "ev-1", money("100"))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1100).Equal(view.Summary.TotalCost.Decimal))
	assert.True(t, db.events["ev-1"].HeadcountPrice.Valid)

	view, err = svc.SetHeadcountPrice(ctx, "ev-1", decimal.NullDecimal{})
	require.NoError(t, err)
	assert.False(t, view.Summary.HeadcountPrice.Valid)
	assert.False(t, view.Summary.TotalCost.Valid)
	assert.False(t, db.summaries["ev-1"].BaseCost.Valid)
}

func TestSummaryService_RejectsNegativePrice(t *testing.T) {
	db := newFakeDB()
	seedWedding(db, "ev-1", day(20), money("100"))
	svc := newTestService(db, &fakeClock{now: today})

	_, err := svc.SetHeadcountPrice(context.Background(), "ev-1", money("-1"))

	assert.ErrorIs(t, err, ErrInvalidPrice)
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.True(t, decimal.NewFromInt(100).Equal(db.events["ev-1"].HeadcountPrice.Decimal))
}

func TestSummaryService_RefreshIsIdempotent(t *testing.T) {
	db := newFakeDB()
	seedWedding(db, "ev-1", day(2), money("149.99"))
	clock := &fakeClock{now: today}
	svc := newTestService(db, clock)
	ctx := context.Background()

	first, err := svc.Refresh(ctx, "ev-1")
	require.NoError(t, err)
	clock.now = clock.now.Add(90 * time.Second)
	second, err := svc.Refresh(ctx, "ev-1")
	require.NoError(t, err)

	assert.NotEqual(t, first.Summary.ComputedAt, second.Summary.ComputedAt)
	first.Summary.ComputedAt, second.Summary.ComputedAt = time.Time{}, time.Time{}
	assert.Equal(t, first, second)
}

func TestSummaryService_FailedRecomputeKeepsPreviousSnapshot(t *testing.T) {
	db := newFakeDB()
	seedWedding(db, "ev-1", day(2), money("100"))
	svc := newTestService(db, &fakeClock{now: today})
	ctx := context.Background()

	good, err := svc.Refresh(ctx, "ev-1")
	require.NoError(t, err)

	db.failAttendees["ev-1"] = true
	_, err = svc.Refresh(ctx, "ev-1")
	assert.ErrorIs(t, err, errStorage)
	assert.Equal(t, good.Summary, db.summaries["ev-1"])

	db.failAttendees["ev-1"] = false
	db.failUpsert = true
	_, err = svc.SetHeadcountPrice(ctx, "ev-1", money("200"))
	assert.ErrorIs(t, err, errStorage)
	assert.Equal(t, good.Summary, db.summaries["ev-1"])
}

func TestSummaryService_Sweep(t *testing.T) {
	db := newFakeDB()
	seedWedding(db, "past", day(-1), money("100"))
	seedWedding(db, "today", day(0), money("100"))
	seedWedding(db, "soon", day(4), money("100"))
	seedWedding(db, "edge", day(5), money("100"))
	seedWedding(db, "broken", day(2), money("100"))
	seedWedding(db, "later", day(6), money("100"))
	db.failAttendees["broken"] = true
	svc := newTestService(db, &fakeClock{now: today})

	res, err := svc.Sweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, SweepResult{Due: 4, Recomputed: 3, Failed: 1}, res)
	assert.True(t, db.summaries["today"].IsVisible)
	assert.True(t, db.summaries["soon"].IsVisible)
	assert.False(t, db.summaries["edge"].IsVisible)
	assert.NotContains(t, db.summaries, "past")
	assert.NotContains(t, db.summaries, "later")
	assert.NotContains(t, db.summaries, "broken")
}

func TestSummaryService_SweepListFailure(t *testing.T) {
	db := newFakeDB()
	db.failList = true
	svc := newTestService(db, &fakeClock{now: today})

	_, err := svc.Sweep(context.Background())
	assert.ErrorIs(t, err, errStorage)
}

func TestSummaryService_SweepFlipsVisibilityWhenDayArrives(t *testing.T) {
	db := newFakeDB()
	seedWedding(db, "ev-1", day(5), money("100"))
	clock := &fakeClock{now: today}
	svc := newTestService(db, clock)

	_, err := svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.False(t, db.summaries["ev-1"].IsVisible)

	clock.now = day(1).Add(time.Minute)
	_, err = svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.True(t, db.summaries["ev-1"].IsVisible)
}
