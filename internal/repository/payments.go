package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Shivanand-hulikatti/event-planner/internal/model"
)

// PaymentRepository handles persistence for the payment ledger.
type PaymentRepository struct {
	db *pgxpool.Pool
}

// NewPaymentRepository constructs a PaymentRepository.
func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create appends a ledger entry to an event.
func (r *PaymentRepository) Create(ctx context.Context, eventID string, req model.RecordPaymentRequest) (*model.PaymentRecord, error) {
	now := time.Now().UTC()
	p := &model.PaymentRecord{
		ID:        uuid.New().String(),
		EventID:   eventID,
		Title:     req.Title,
		Amount:    req.Amount,
		Status:    model.PaymentUnpaid,
		DueDate:   req.DueDate,
		CreatedAt: now,
	}
	if req.Paid {
		p.Status = model.PaymentPaid
		p.PaidAt = &now
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO payments (id, event_id, title, amount, status, due_date, paid_at, created_at)
		 VALUES ($1, $2, $3, $4::numeric, $5, $6, $7, $8)`,
		p.ID, p.EventID, p.Title, p.Amount.String(), string(p.Status), p.DueDate, p.PaidAt, p.CreatedAt,
	)
	if err != nil {
		if errors.Is(notFoundIfMissingParent(err), ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("insert payment: %w", err)
	}
	return p, nil
}

// MarkPaid settles a ledger entry. Settling an already paid entry keeps
// its original paid_at.
func (r *PaymentRepository) MarkPaid(ctx context.Context, eventID, paymentID string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE payments
		 SET status = 'paid', paid_at = COALESCE(paid_at, $3)
		 WHERE id = $1 AND event_id = $2`,
		paymentID, eventID, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("mark payment paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByEvent returns the whole ledger of an event.
func (r *PaymentRepository) ListByEvent(ctx context.Context, eventID string) ([]model.PaymentRecord, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, event_id, title, amount::text, status, due_date, paid_at, created_at
		 FROM payments
		 WHERE event_id = $1
		 ORDER BY created_at ASC, id ASC`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var payments []model.PaymentRecord
	for rows.Next() {
		var (
			p      model.PaymentRecord
			amount string
			status string
		)
		if err := rows.Scan(&p.ID, &p.EventID, &p.Title, &amount, &status, &p.DueDate, &p.PaidAt, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		if p.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("parse payment amount: %w", err)
		}
		p.Status = model.PaymentStatus(status)
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
