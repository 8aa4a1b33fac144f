package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/investify-pos/internal/domain/entity"
	"github.com/sangkips/investify-pos/internal/domain/enum"
	"github.com/sangkips/investify-pos/pkg/apperror"
	"github.com/sangkips/investify-pos/pkg/money"
	"github.com/shopspring/decimal"
)

// OrderTotaler exposes the order total the allocator is bounded by.
type OrderTotaler interface {
	Total() int64
}

// PaymentService allocates tender amounts across payment methods against the
// order total. Payments are kept in insertion order.
type PaymentService struct {
	order        OrderTotaler
	payments     []entity.Payment
	activeMethod enum.PaymentMethod
	reference    string
	now          func() time.Time
}

// NewPaymentService creates an allocator bounded by order's total.
func NewPaymentService(order OrderTotaler) *PaymentService {
	return &PaymentService{
		order: order,
		now:   time.Now,
	}
}

// SetActiveMethod selects the method for the next allocation; PaymentMethodNone
// unselects. The staged reference is cleared on every call.
func (s *PaymentService) SetActiveMethod(method enum.PaymentMethod) {
	if !method.Valid() {
		method = enum.PaymentMethodNone
	}
	s.activeMethod = method
	s.reference = ""
}

// SetReference stages a reference for the next allocation.
func (s *PaymentService) SetReference(reference string) {
	s.reference = reference
}

// AssignPayment records a payment with the active method. The explicit
// reference wins over the staged one. Nothing is mutated when an error is returned.
func (s *PaymentService) AssignPayment(amount decimal.Decimal, reference string) (entity.Payment, error) {
	if !s.activeMethod.Valid() {
		return entity.Payment{}, apperror.ErrNoMethodSelected
	}
	if !amount.IsPositive() {
		return entity.Payment{}, apperror.ErrInvalidAmount
	}
	if amount.GreaterThan(money.ToDecimal(s.RemainingAmount())) {
		return entity.Payment{}, apperror.ErrOverAllocation
	}

	ref := reference
	if ref == "" {
		ref = s.reference
	}
	payment := entity.Payment{
		ID:        uuid.New(),
		Method:    s.activeMethod,
		Amount:    money.FromDecimal(amount),
		Timestamp: s.now(),
		Reference: ref,
	}

	if err := validatePayment(payment); err != nil {
		return entity.Payment{}, err
	}

	s.payments = append(s.payments, payment)
	s.reference = ""
	if s.IsPaymentComplete() {
		s.activeMethod = enum.PaymentMethodNone
	}
	return payment, nil
}

// validatePayment runs every rule and reports all violations together.
func validatePayment(p entity.Payment) error {
	var errs apperror.FieldErrors
	if p.Amount <= 0 {
		errs.Add("amount", "Amount must be greater than 0")
	}
	if p.Amount > entity.MaxPaymentAmount {
		errs.Add("amount", "Amount exceeds the maximum limit")
	}
	if cfg, ok := p.Method.Config(); ok && cfg.RequiresReference && strings.TrimSpace(p.Reference) == "" {
		errs.Add("reference", cfg.Label+" requires a reference")
	}
	return errs.Err()
}

// AssignRemainingAmount pays the whole remaining balance with the active method.
func (s *PaymentService) AssignRemainingAmount() (*entity.Payment, error) {
	return s.assignShare(s.RemainingAmount())
}

// AssignHalfAmount pays half the order total, capped at the remaining balance.
func (s *PaymentService) AssignHalfAmount() (*entity.Payment, error) {
	return s.assignShare(min(money.Div(s.order.Total(), 2), s.RemainingAmount()))
}

// AssignQuarterAmount pays a quarter of the order total, capped at the remaining balance.
func (s *PaymentService) AssignQuarterAmount() (*entity.Payment, error) {
	return s.assignShare(min(money.Div(s.order.Total(), 4), s.RemainingAmount()))
}

// assignShare is a no-op (nil payment, nil error) without an active method or a positive amount.
func (s *PaymentService) assignShare(cents int64) (*entity.Payment, error) {
	if cents <= 0 || !s.activeMethod.Valid() {
		return nil, nil
	}
	p, err := s.AssignPayment(money.ToDecimal(cents), "")
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// RemovePayment removes the payment with id. Unknown ids are ignored.
func (s *PaymentService) RemovePayment(id uuid.UUID) {
	for i, p := range s.payments {
		if p.ID == id {
			s.payments = append(s.payments[:i], s.payments[i+1:]...)
			return
		}
	}
}

// RemovePaymentsByMethod removes every payment of method, keeping the order of the rest.
func (s *PaymentService) RemovePaymentsByMethod(method enum.PaymentMethod) {
	kept := s.payments[:0]
	for _, p := range s.payments {
		if p.Method != method {
			kept = append(kept, p)
		}
	}
	clear(s.payments[len(kept):])
	s.payments = kept
}

// ClearAllPayments empties the list and resets the method and staged reference.
func (s *PaymentService) ClearAllPayments() {
	s.payments = nil
	s.activeMethod = enum.PaymentMethodNone
	s.reference = ""
}

// Payments returns a copy of the payments in insertion order.
func (s *PaymentService) Payments() []entity.Payment {
	out := make([]entity.Payment, len(s.payments))
	copy(out, s.payments)
	return out
}

// ActiveMethod returns the selected method, or PaymentMethodNone.
func (s *PaymentService) ActiveMethod() enum.PaymentMethod {
	return s.activeMethod
}

// ActiveMethodConfig returns the configuration of the selected method.
func (s *PaymentService) ActiveMethodConfig() (enum.PaymentMethodConfig, bool) {
	return s.activeMethod.Config()
}

// Reference returns the staged reference.
func (s *PaymentService) Reference() string {
	return s.reference
}

// RequiresReference reports whether the selected method needs a reference.
func (s *PaymentService) RequiresReference() bool {
	return s.activeMethod.RequiresReference()
}

// TotalAssigned returns the sum of all payments, in cents.
func (s *PaymentService) TotalAssigned() int64 {
	var sum int64
	for _, p := range s.payments {
		sum += p.Amount
	}
	return sum
}

// PaymentsByMethod returns the amount per method; every method is present.
func (s *PaymentService) PaymentsByMethod() map[enum.PaymentMethod]int64 {
	out := make(map[enum.PaymentMethod]int64, 4)
	for _, m := range enum.AllPaymentMethods() {
		out[m] = 0
	}
	for _, p := range s.payments {
		out[p.Method] += p.Amount
	}
	return out
}

// Summary groups payments by method for methods with a non-zero amount,
// in the order of the method table.
func (s *PaymentService) Summary() []entity.PaymentSummary {
	byMethod := s.PaymentsByMethod()
	var out []entity.PaymentSummary
	for _, cfg := range enum.PaymentMethods() {
		amount := byMethod[cfg.Method]
		if amount <= 0 {
			continue
		}
		summary := entity.PaymentSummary{Method: cfg.Method, Config: cfg, Amount: amount}
		for _, p := range s.payments {
			if p.Method == cfg.Method {
				summary.Payments = append(summary.Payments, p)
			}
		}
		out = append(out, summary)
	}
	return out
}

// RemainingAmount returns max(0, order total − total assigned), in cents.
func (s *PaymentService) RemainingAmount() int64 {
	return max(0, s.order.Total()-s.TotalAssigned())
}

// IsPaymentComplete reports whether nothing remains to be paid.
func (s *PaymentService) IsPaymentComplete() bool {
	return s.RemainingAmount() == 0
}

// CanAssignPayment reports whether a method is selected and, when it needs a
// reference, a non-blank one is staged.
func (s *PaymentService) CanAssignPayment() bool {
	if !s.activeMethod.Valid() {
		return false
	}
	return !s.RequiresReference() || strings.TrimSpace(s.reference) != ""
}
