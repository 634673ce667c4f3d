package summary

import (
	"github.com/shopspring/decimal"

	"github.com/Shivanand-hulikatti/event-planner/internal/model"
)

// Reconciliation is the paid/outstanding position of an event.
type Reconciliation struct {
	Paid      decimal.NullDecimal
	Remaining decimal.NullDecimal
}

// Reconcile sums paid ledger entries. Nothing is reported for an unpriced
// event; remaining needs a total.
func Reconcile(payments []model.PaymentRecord, price, total decimal.NullDecimal) Reconciliation {
	var r Reconciliation
	if !price.Valid {
		return r
	}

	paid := decimal.Zero
	for _, p := range payments {
		if p.Status == model.PaymentPaid {
			paid = paid.Add(p.Amount)
		}
	}
	r.Paid = some(paid)

	if total.Valid {
		r.Remaining = some(total.Decimal.Sub(paid))
	}
	return r
}
