package service

import (
	"github.com/google/uuid"
	"github.com/sangkips/investify-pos/internal/domain/entity"
	"github.com/sangkips/investify-pos/pkg/apperror"
	"github.com/sangkips/investify-pos/pkg/money"
	"github.com/shopspring/decimal"
)

// DefaultTaxRate is the flat rate applied when none is configured.
var DefaultTaxRate = decimal.RequireFromString("0.10")

// OrderService is the order ledger: it owns the line items of the current order
// and derives subtotal, taxes and total from them on every read.
type OrderService struct {
	lines   []entity.OrderLine
	taxRate decimal.Decimal
}

// NewOrderService creates an empty ledger. An out-of-range rate falls back to DefaultTaxRate.
func NewOrderService(taxRate decimal.Decimal) *OrderService {
	s := &OrderService{taxRate: DefaultTaxRate}
	s.SetTaxRate(taxRate)
	return s
}

// AddLine appends a line. unitPrice is rounded to cents.
func (s *OrderService) AddLine(name string, quantity int, unitPrice decimal.Decimal) (entity.OrderLine, error) {
	var errs apperror.FieldErrors
	if quantity <= 0 {
		errs.Add("quantity", "Quantity must be greater than 0")
	}
	if unitPrice.IsNegative() {
		errs.Add("unit_price", "Unit price cannot be negative")
	}
	if len(errs) == 0 {
		lineTotal := unitPrice.Round(money.Places).Mul(decimal.NewFromInt(int64(quantity)))
		if !s.fits(0, lineTotal) {
			errs.Add("unit_price", "Line would take the order past the maximum amount")
		}
	}
	if err := errs.Err(); err != nil {
		return entity.OrderLine{}, err
	}

	line := entity.NewOrderLine(name, quantity, money.FromDecimal(unitPrice))
	s.lines = append(s.lines, line)
	return line, nil
}

// RemoveLine removes the line with id. Unknown ids are ignored.
func (s *OrderService) RemoveLine(id uuid.UUID) {
	for i, l := range s.lines {
		if l.ID == id {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return
		}
	}
}

// SetQuantity updates a line's quantity and total. Non-positive quantities and
// quantities that would take the order past money.MaxCents are ignored.
func (s *OrderService) SetQuantity(id uuid.UUID, quantity int) {
	if quantity <= 0 {
		return
	}
	for i := range s.lines {
		l := &s.lines[i]
		if l.ID != id {
			continue
		}
		lineTotal := money.ToDecimal(l.UnitPrice).Mul(decimal.NewFromInt(int64(quantity)))
		if !s.fits(l.Total, lineTotal) {
			return
		}
		l.Quantity = quantity
		l.Recalculate()
		return
	}
}

// fits reports whether the subtotal stays within money.MaxCents once a line
// worth replaced cents is swapped for one worth lineTotal.
func (s *OrderService) fits(replaced int64, lineTotal decimal.Decimal) bool {
	return money.InRange(money.ToDecimal(s.SubTotal() - replaced).Add(lineTotal))
}

// SetTaxRate accepts rates in [0, 1]; anything else leaves the current rate.
func (s *OrderService) SetTaxRate(rate decimal.Decimal) {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return
	}
	s.taxRate = rate
}

// Clear removes all lines.
func (s *OrderService) Clear() {
	s.lines = nil
}

// Line returns the line with id.
func (s *OrderService) Line(id uuid.UUID) (entity.OrderLine, bool) {
	for _, l := range s.lines {
		if l.ID == id {
			return l, true
		}
	}
	return entity.OrderLine{}, false
}

// Lines returns a copy of the lines in insertion order.
func (s *OrderService) Lines() []entity.OrderLine {
	out := make([]entity.OrderLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// TaxRate returns the current flat tax rate.
func (s *OrderService) TaxRate() decimal.Decimal {
	return s.taxRate
}

// SubTotal returns the sum of line totals, in cents.
func (s *OrderService) SubTotal() int64 {
	var sum int64
	for _, l := range s.lines {
		sum += l.Total
	}
	return sum
}

// Taxes returns round2(subtotal × taxRate), in cents.
func (s *OrderService) Taxes() int64 {
	return money.Mul(s.SubTotal(), s.taxRate)
}

// Total returns subtotal + taxes, in cents.
func (s *OrderService) Total() int64 {
	return s.SubTotal() + s.Taxes()
}

// ItemCount returns the number of lines.
func (s *OrderService) ItemCount() int {
	return len(s.lines)
}

// IsEmpty reports whether the order has no lines.
func (s *OrderService) IsEmpty() bool {
	return len(s.lines) == 0
}

// Totals returns all derived values at once.
func (s *OrderService) Totals() entity.OrderTotals {
	subTotal := s.SubTotal()
	taxes := money.Mul(subTotal, s.taxRate)
	return entity.OrderTotals{
		SubTotal:  subTotal,
		Taxes:     taxes,
		Total:     subTotal + taxes,
		ItemCount: len(s.lines),
		IsEmpty:   len(s.lines) == 0,
	}
}
