package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shivanand-hulikatti/event-planner/internal/model"
)

// AddOnRepository handles persistence for add-on configurations.
type AddOnRepository struct {
	db *pgxpool.Pool
}

// NewAddOnRepository constructs an AddOnRepository.
func NewAddOnRepository(db *pgxpool.Pool) *AddOnRepository {
	return &AddOnRepository{db: db}
}

// Put replaces the add-on configuration of an event.
func (r *AddOnRepository) Put(ctx context.Context, eventID string, req model.PutAddOnsRequest) (*model.AddOnConfig, error) {
	c := &model.AddOnConfig{
		EventID:               eventID,
		CakeSource:            req.CakeSource,
		CakeFlavors:           req.CakeFlavors,
		SweetTableSource:      req.SweetTableSource,
		SweetTableAmount:      req.SweetTableAmount,
		GuestPackageSource:    req.GuestPackageSource,
		GuestPackageUnitPrice: req.GuestPackageUnitPrice,
		GuestPackageCount:     req.GuestPackageCount,
		UpdatedAt:             time.Now().UTC(),
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO addon_configs (event_id, cake_source, cake_flavors, sweet_table_source, sweet_table_amount,
		                            guest_package_source, guest_package_unit_price, guest_package_count, updated_at)
		 VALUES ($1, $2, $3, $4, $5::numeric, $6, $7::numeric, $8, $9)
		 ON CONFLICT (event_id) DO UPDATE SET
		     cake_source = EXCLUDED.cake_source,
		     cake_flavors = EXCLUDED.cake_flavors,
		     sweet_table_source = EXCLUDED.sweet_table_source,
		     sweet_table_amount = EXCLUDED.sweet_table_amount,
		     guest_package_source = EXCLUDED.guest_package_source,
		     guest_package_unit_price = EXCLUDED.guest_package_unit_price,
		     guest_package_count = EXCLUDED.guest_package_count,
		     updated_at = EXCLUDED.updated_at`,
		c.EventID, c.CakeSource, c.CakeFlavors, string(c.SweetTableSource), numericArg(c.SweetTableAmount),
		string(c.GuestPackageSource), numericArg(c.GuestPackageUnitPrice), c.GuestPackageCount, c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(notFoundIfMissingParent(err), ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("upsert add-ons: %w", err)
	}
	return c, nil
}

// GetByEvent returns the add-on configuration of an event, or nil when the
// organizer has not set one yet.
func (r *AddOnRepository) GetByEvent(ctx context.Context, eventID string) (*model.AddOnConfig, error) {
	var (
		c                model.AddOnConfig
		sweetSource      string
		packageSource    string
		sweetAmount      *string
		packageUnitPrice *string
	)
	err := r.db.QueryRow(ctx,
		`SELECT event_id, cake_source, cake_flavors, sweet_table_source, sweet_table_amount::text,
		        guest_package_source, guest_package_unit_price::text, guest_package_count, updated_at
		 FROM addon_configs WHERE event_id = $1`,
		eventID,
	).Scan(&c.EventID, &c.CakeSource, &c.CakeFlavors, &sweetSource, &sweetAmount,
		&packageSource, &packageUnitPrice, &c.GuestPackageCount, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get add-ons: %w", err)
	}

	c.SweetTableSource = model.AddOnSource(sweetSource)
	c.GuestPackageSource = model.AddOnSource(packageSource)
	if c.SweetTableAmount, err = parseNumeric(sweetAmount); err != nil {
		return nil, err
	}
	if c.GuestPackageUnitPrice, err = parseNumeric(packageUnitPrice); err != nil {
		return nil, err
	}
	return &c, nil
}
