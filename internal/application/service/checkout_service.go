package service

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/investify-pos/internal/domain/entity"
	"github.com/sangkips/investify-pos/internal/domain/enum"
	"github.com/sangkips/investify-pos/pkg/apperror"
	"github.com/sangkips/investify-pos/pkg/money"
	"github.com/sangkips/investify-pos/pkg/utils"
	"github.com/shopspring/decimal"
)

// CheckoutService is the terminal session: one ledger, one calculator and one
// allocator. The components are single-owner; the mutex serialises the
// concurrent HTTP host onto them.
type CheckoutService struct {
	mu         sync.Mutex
	order      *OrderService
	calculator *CalculatorService
	payments   *PaymentService
	storeName  string
	now        func() time.Time
}

// NewCheckoutService creates an empty session.
func NewCheckoutService(taxRate decimal.Decimal, storeName string) *CheckoutService {
	order := NewOrderService(taxRate)
	return &CheckoutService{
		order:      order,
		calculator: NewCalculatorService(),
		payments:   NewPaymentService(order),
		storeName:  storeName,
		now:        time.Now,
	}
}

// CalculatorView is what the host renders for the calculator.
type CalculatorView struct {
	Display       string                 `json:"display"`
	Expression    string                 `json:"expression"`
	PartialResult *string                `json:"partial_result"`
	State         entity.CalculatorState `json:"state"`
}

// AllocationView is the allocator status.
type AllocationView struct {
	ActiveMethod      enum.PaymentMethod      `json:"active_method"`
	Reference         string                  `json:"reference"`
	RequiresReference bool                    `json:"requires_reference"`
	CanAssignPayment  bool                    `json:"can_assign_payment"`
	IsPaymentComplete bool                    `json:"is_payment_complete"`
	TotalAssigned     float64                 `json:"total_assigned"`
	RemainingAmount   float64                 `json:"remaining_amount"`
	PaymentsByMethod  map[string]float64      `json:"payments_by_method"`
	Summary           []entity.PaymentSummary `json:"summary"`
}

// Snapshot is the full session state returned to the host.
type Snapshot struct {
	Lines      []entity.OrderLine `json:"lines"`
	Totals     entity.OrderTotals `json:"totals"`
	TaxRate    string             `json:"tax_rate"`
	Calculator CalculatorView     `json:"calculator"`
	Payments   []entity.Payment   `json:"payments"`
	Allocation AllocationView     `json:"allocation"`
}

// Snapshot returns the whole session.
func (s *CheckoutService) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return &Snapshot{
		Lines:      s.order.Lines(),
		Totals:     s.order.Totals(),
		TaxRate:    s.order.TaxRate().String(),
		Calculator: s.calculatorView(),
		Payments:   s.payments.Payments(),
		Allocation: s.allocationView(),
	}
}

// Calculator returns the calculator view.
func (s *CheckoutService) Calculator() CalculatorView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calculatorView()
}

// Allocation returns the allocator status.
func (s *CheckoutService) Allocation() AllocationView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allocationView()
}

func (s *CheckoutService) calculatorView() CalculatorView {
	view := CalculatorView{
		Display:    s.calculator.Display(),
		Expression: s.calculator.CurrentExpression(),
		State:      s.calculator.State(),
	}
	if partial, ok := s.calculator.PartialResult(); ok {
		view.PartialResult = &partial
	}
	return view
}

func (s *CheckoutService) allocationView() AllocationView {
	byMethod := make(map[string]float64, 4)
	for m, cents := range s.payments.PaymentsByMethod() {
		byMethod[m.String()] = money.ToFloat(cents)
	}
	return AllocationView{
		ActiveMethod:      s.payments.ActiveMethod(),
		Reference:         s.payments.Reference(),
		RequiresReference: s.payments.RequiresReference(),
		CanAssignPayment:  s.payments.CanAssignPayment(),
		IsPaymentComplete: s.payments.IsPaymentComplete(),
		TotalAssigned:     money.ToFloat(s.payments.TotalAssigned()),
		RemainingAmount:   money.ToFloat(s.payments.RemainingAmount()),
		PaymentsByMethod:  byMethod,
		Summary:           s.payments.Summary(),
	}
}

// Reset clears the order, the calculator and the payments for the next customer.
func (s *CheckoutService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.order.Clear()
	s.calculator.Clear()
	s.payments.ClearAllPayments()
}

// AddLine adds an item to the order.
func (s *CheckoutService) AddLine(name string, quantity int, unitPrice decimal.Decimal) (entity.OrderLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.AddLine(name, quantity, unitPrice)
}

// RemoveLine removes an item from the order.
func (s *CheckoutService) RemoveLine(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order.RemoveLine(id)
}

// SetQuantity changes the quantity of an item. Returns false if the line does not exist.
func (s *CheckoutService) SetQuantity(id uuid.UUID, quantity int) (entity.OrderLine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order.SetQuantity(id, quantity)
	return s.order.Line(id)
}

// SetTaxRate changes the flat tax rate; out-of-range values are ignored.
func (s *CheckoutService) SetTaxRate(rate decimal.Decimal) entity.OrderTotals {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order.SetTaxRate(rate)
	return s.order.Totals()
}

// ClearOrder removes all items.
func (s *CheckoutService) ClearOrder() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order.Clear()
}

// InputDigit forwards a digit to the calculator.
func (s *CheckoutService) InputDigit(d int) CalculatorView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calculator.InputDigit(d)
	return s.calculatorView()
}

// InputDecimal forwards the decimal separator to the calculator.
func (s *CheckoutService) InputDecimal() CalculatorView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calculator.InputDecimal()
	return s.calculatorView()
}

// PerformOperation forwards an operator to the calculator.
func (s *CheckoutService) PerformOperation(op enum.Operator) CalculatorView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calculator.PerformOperation(op)
	return s.calculatorView()
}

// ClearCalculator resets the calculator.
func (s *CheckoutService) ClearCalculator() CalculatorView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calculator.Clear()
	return s.calculatorView()
}

// LoadRemaining puts the remaining balance on the calculator display.
func (s *CheckoutService) LoadRemaining() CalculatorView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calculator.LoadAmount(s.payments.RemainingAmount())
	return s.calculatorView()
}

// PressKey maps a keyboard key onto the calculator. Enter (or "=") with an
// active method commits the expression and assigns the result as a payment.
func (s *CheckoutService) PressKey(key string) (*entity.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		d, _ := strconv.Atoi(key)
		s.calculator.InputDigit(d)
		return nil, nil
	}

	switch key {
	case ".", ",":
		s.calculator.InputDecimal()
	case "c", "C", "Delete":
		s.calculator.Clear()
	case "Escape":
		// dismisses the keypad on the client; the entry is kept
	case "F12":
		s.calculator.LoadAmount(s.payments.RemainingAmount())
	case "=", "Enter":
		s.calculator.PerformOperation(enum.OperatorEquals)
		if s.payments.ActiveMethod().Valid() {
			return s.assignFromCalculator("")
		}
	default:
		op, err := enum.ParseOperator(key)
		if err != nil {
			return nil, apperror.UnsupportedKey(key)
		}
		s.calculator.PerformOperation(op)
	}
	return nil, nil
}

// SetActiveMethod selects (or with PaymentMethodNone, unselects) the payment method.
func (s *CheckoutService) SetActiveMethod(method enum.PaymentMethod) AllocationView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments.SetActiveMethod(method)
	return s.allocationView()
}

// SetReference stages a reference for the next payment.
func (s *CheckoutService) SetReference(reference string) AllocationView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments.SetReference(reference)
	return s.allocationView()
}

// AssignPayment records an explicit amount with the active method.
func (s *CheckoutService) AssignPayment(amount decimal.Decimal, reference string) (entity.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.payments.AssignPayment(amount, reference)
}

// AssignFromCalculator assigns the calculator display as a payment, clears the
// calculator and loads whatever balance is left.
func (s *CheckoutService) AssignFromCalculator(reference string) (*entity.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assignFromCalculator(reference)
}

func (s *CheckoutService) assignFromCalculator(reference string) (*entity.Payment, error) {
	p, err := s.payments.AssignPayment(s.calculator.Value(), reference)
	if err != nil {
		return nil, err
	}
	s.calculator.Clear()
	if remaining := s.payments.RemainingAmount(); remaining > 0 {
		s.calculator.LoadAmount(remaining)
	}
	return &p, nil
}

// Share selects which convenience allocator to run.
type Share string

const (
	ShareRemaining Share = "remaining"
	ShareHalf      Share = "half"
	ShareQuarter   Share = "quarter"
)

// AssignShare runs a convenience allocator. A nil payment with a nil error
// means there was nothing to assign.
func (s *CheckoutService) AssignShare(share Share) (*entity.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch share {
	case ShareRemaining:
		return s.payments.AssignRemainingAmount()
	case ShareHalf:
		return s.payments.AssignHalfAmount()
	case ShareQuarter:
		return s.payments.AssignQuarterAmount()
	default:
		return nil, apperror.UnknownShare(string(share))
	}
}

// RemovePayment removes one payment.
func (s *CheckoutService) RemovePayment(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments.RemovePayment(id)
}

// RemovePaymentsByMethod removes every payment of a method.
func (s *CheckoutService) RemovePaymentsByMethod(method enum.PaymentMethod) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments.RemovePaymentsByMethod(method)
}

// ClearAllPayments removes all payments and resets the method selection.
func (s *CheckoutService) ClearAllPayments() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments.ClearAllPayments()
}

// Receipt builds a printable receipt of the current order and its payments.
func (s *CheckoutService) Receipt(cashier string) *entity.Receipt {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	totals := s.order.Totals()
	receipt := &entity.Receipt{
		Header:    entity.ReceiptHeader{StoreName: s.storeName},
		InvoiceNo: utils.ReceiptNumber("INV", now),
		Date:      now.Format("2006-01-02 15:04"),
		Cashier:   cashier,
		Items:     []entity.ReceiptItem{},
		Tenders:   []entity.ReceiptTender{},
		SubTotal:  money.Format(totals.SubTotal),
		Taxes:     money.Format(totals.Taxes),
		Total:     money.Format(totals.Total),
		Paid:      money.Format(s.payments.TotalAssigned()),
		Due:       money.Format(s.payments.RemainingAmount()),
	}
	for _, l := range s.order.Lines() {
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: money.Format(l.UnitPrice),
			Total:     money.Format(l.Total),
		})
	}
	for _, p := range s.payments.Payments() {
		receipt.Tenders = append(receipt.Tenders, entity.ReceiptTender{
			Method:    p.Method.Label(),
			Amount:    money.Format(p.Amount),
			Reference: p.Reference,
		})
		if p.Method == enum.PaymentMethodCash {
			receipt.OpenDrawer = true
		}
	}
	return receipt
}
