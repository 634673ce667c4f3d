package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Shivanand-hulikatti/event-planner/internal/model"
)

// SummaryRepository stores the derived snapshot, one row per event.
type SummaryRepository struct {
	db *pgxpool.Pool
}

// NewSummaryRepository constructs a SummaryRepository.
func NewSummaryRepository(db *pgxpool.Pool) *SummaryRepository {
	return &SummaryRepository{db: db}
}

// Upsert writes the snapshot of an event, replacing every column of any
// previous one in a single statement.
func (r *SummaryRepository) Upsert(ctx context.Context, s *model.EventSummary) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO event_summaries (
		     event_id, is_visible,
		     adults, minors_mid_age, minors_young, service_seats,
		     diet_standard, diet_vegetarian, diet_vegan, diet_gluten_free,
		     diet_lactose_free, diet_gluten_and_lactose_free, diet_other,
		     headcount_price, base_cost, mid_minor_cost, service_seat_cost, cake_cost,
		     sweet_table_cost, guest_package_cost, total_cost, paid_amount, remaining_amount,
		     cake_source, cake_flavors, sweet_table_source, guest_package_source, guest_package_count,
		     rooms_count, accommodated_guests, computed_at)
		 VALUES (
		     $1, $2,
		     $3, $4, $5, $6,
		     $7, $8, $9, $10,
		     $11, $12, $13,
		     $14::numeric, $15::numeric, $16::numeric, $17::numeric, $18::numeric,
		     $19::numeric, $20::numeric, $21::numeric, $22::numeric, $23::numeric,
		     $24, $25, $26, $27, $28,
		     $29, $30, $31)
		 ON CONFLICT (event_id) DO UPDATE SET
		     is_visible = EXCLUDED.is_visible,
		     adults = EXCLUDED.adults,
		     minors_mid_age = EXCLUDED.minors_mid_age,
		     minors_young = EXCLUDED.minors_young,
		     service_seats = EXCLUDED.service_seats,
		     diet_standard = EXCLUDED.diet_standard,
		     diet_vegetarian = EXCLUDED.diet_vegetarian,
		     diet_vegan = EXCLUDED.diet_vegan,
		     diet_gluten_free = EXCLUDED.diet_gluten_free,
		     diet_lactose_free = EXCLUDED.diet_lactose_free,
		     diet_gluten_and_lactose_free = EXCLUDED.diet_gluten_and_lactose_free,
		     diet_other = EXCLUDED.diet_other,
		     headcount_price = EXCLUDED.headcount_price,
		     base_cost = EXCLUDED.base_cost,
		     mid_minor_cost = EXCLUDED.mid_minor_cost,
		     service_seat_cost = EXCLUDED.service_seat_cost,
		     cake_cost = EXCLUDED.cake_cost,
		     sweet_table_cost = EXCLUDED.sweet_table_cost,
		     guest_package_cost = EXCLUDED.guest_package_cost,
		     total_cost = EXCLUDED.total_cost,
		     paid_amount = EXCLUDED.paid_amount,
		     remaining_amount = EXCLUDED.remaining_amount,
		     cake_source = EXCLUDED.cake_source,
		     cake_flavors = EXCLUDED.cake_flavors,
		     sweet_table_source = EXCLUDED.sweet_table_source,
		     guest_package_source = EXCLUDED.guest_package_source,
		     guest_package_count = EXCLUDED.guest_package_count,
		     rooms_count = EXCLUDED.rooms_count,
		     accommodated_guests = EXCLUDED.accommodated_guests,
		     computed_at = EXCLUDED.computed_at`,
		s.EventID, s.IsVisible,
		s.Adults, s.MinorsMidAge, s.MinorsYoung, s.ServiceSeats,
		s.DietStandard, s.DietVegetarian, s.DietVegan, s.DietGlutenFree,
		s.DietLactoseFree, s.DietGlutenAndLactoseFree, s.DietOther,
		numericArg(s.HeadcountPrice), numericArg(s.BaseCost), numericArg(s.MidMinorCost),
		numericArg(s.ServiceSeatCost), numericArg(s.CakeCost),
		numericArg(s.SweetTableCost), numericArg(s.GuestPackageCost), numericArg(s.TotalCost),
		numericArg(s.PaidAmount), numericArg(s.RemainingAmount),
		s.CakeSource, s.CakeFlavors, s.SweetTableSource, s.GuestPackageSource, s.GuestPackageCount,
		s.RoomsCount, s.AccommodatedGuests, s.ComputedAt,
	)
	if err != nil {
		if errors.Is(notFoundIfMissingParent(err), ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("upsert summary: %w", err)
	}
	return nil
}

// GetByEvent returns the stored snapshot of an event or ErrNotFound.
func (r *SummaryRepository) GetByEvent(ctx context.Context, eventID string) (*model.EventSummary, error) {
	var (
		s     model.EventSummary
		money [10]*string
	)
	err := r.db.QueryRow(ctx,
		`SELECT event_id, is_visible,
		        adults, minors_mid_age, minors_young, service_seats,
		        diet_standard, diet_vegetarian, diet_vegan, diet_gluten_free,
		        diet_lactose_free, diet_gluten_and_lactose_free, diet_other,
		        headcount_price::text, base_cost::text, mid_minor_cost::text, service_seat_cost::text,
		        cake_cost::text, sweet_table_cost::text, guest_package_cost::text, total_cost::text,
		        paid_amount::text, remaining_amount::text,
		        cake_source, cake_flavors, sweet_table_source, guest_package_source, guest_package_count,
		        rooms_count, accommodated_guests, computed_at
		 FROM event_summaries WHERE event_id = $1`,
		eventID,
	).Scan(&s.EventID, &s.IsVisible,
		&s.Adults, &s.MinorsMidAge, &s.MinorsYoung, &s.ServiceSeats,
		&s.DietStandard, &s.DietVegetarian, &s.DietVegan, &s.DietGlutenFree,
		&s.DietLactoseFree, &s.DietGlutenAndLactoseFree, &s.DietOther,
		&money[0], &money[1], &money[2], &money[3],
		&money[4], &money[5], &money[6], &money[7],
		&money[8], &money[9],
		&s.CakeSource, &s.CakeFlavors, &s.SweetTableSource, &s.GuestPackageSource, &s.GuestPackageCount,
		&s.RoomsCount, &s.AccommodatedGuests, &s.ComputedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get summary: %w", err)
	}

	targets := [10]*decimal.NullDecimal{
		&s.HeadcountPrice, &s.BaseCost, &s.MidMinorCost, &s.ServiceSeatCost,
		&s.CakeCost, &s.SweetTableCost, &s.GuestPackageCost, &s.TotalCost,
		&s.PaidAmount, &s.RemainingAmount,
	}
	for i, raw := range money {
		if *targets[i], err = parseNumeric(raw); err != nil {
			return nil, err
		}
	}
	return &s, nil
}
