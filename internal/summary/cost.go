package summary

import (
	"github.com/shopspring/decimal"

	"github.com/Shivanand-hulikatti/event-planner/internal/model"
)

var half = decimal.New(5, -1)

// CostBreakdown holds every cost line. An invalid line is absent, which is
// distinct from a line that computes to zero.
type CostBreakdown struct {
	Base         decimal.NullDecimal
	MidMinor     decimal.NullDecimal
	ServiceSeat  decimal.NullDecimal
	Cake         decimal.NullDecimal
	SweetTable   decimal.NullDecimal
	GuestPackage decimal.NullDecimal
	Total        decimal.NullDecimal
}

func some(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// CalculateCost prices the classified headcount. Without a price every line
// is absent. Add-on lines need the venue as source plus their amounts; the
// cake is priced individually and never carries a number here.
func CalculateCost(c Classification, price decimal.NullDecimal, addOns *model.AddOnConfig) CostBreakdown {
	var b CostBreakdown
	if !price.Valid {
		return b
	}
	p := price.Decimal

	base := decimal.NewFromInt(int64(c.Adults)).Mul(p)
	midMinor := decimal.NewFromInt(int64(c.MidMinors)).Mul(p).Mul(half)
	serviceSeat := decimal.NewFromInt(int64(c.ServiceSeats)).Mul(p).Mul(half)

	b.Base = some(base)
	b.MidMinor = some(midMinor)
	b.ServiceSeat = some(serviceSeat)
	b.SweetTable = sweetTableCost(addOns)
	b.GuestPackage = guestPackageCost(addOns)

	total := base.Add(midMinor).Add(serviceSeat)
	for _, line := range []decimal.NullDecimal{b.SweetTable, b.GuestPackage} {
		if line.Valid {
			total = total.Add(line.Decimal)
		}
	}
	b.Total = some(total)
	return b
}

func sweetTableCost(a *model.AddOnConfig) decimal.NullDecimal {
	if a == nil || a.SweetTableSource != model.AddOnSourceVenue || !a.SweetTableAmount.Valid {
		return decimal.NullDecimal{}
	}
	return some(a.SweetTableAmount.Decimal)
}

func guestPackageCost(a *model.AddOnConfig) decimal.NullDecimal {
	if a == nil || a.GuestPackageSource != model.AddOnSourceVenue ||
		!a.GuestPackageUnitPrice.Valid || a.GuestPackageCount == nil {
		return decimal.NullDecimal{}
	}
	count := decimal.NewFromInt(int64(*a.GuestPackageCount))
	return some(a.GuestPackageUnitPrice.Decimal.Mul(count))
}
