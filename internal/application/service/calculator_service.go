package service

import (
	"strconv"
	"strings"

	"github.com/sangkips/investify-pos/internal/domain/entity"
	"github.com/sangkips/investify-pos/internal/domain/enum"
	"github.com/sangkips/investify-pos/pkg/money"
	"github.com/shopspring/decimal"
)

// InputDigit appends d to the display, or starts a new number after an operator.
// Values outside 0-9 leave the state unchanged.
func InputDigit(s entity.CalculatorState, d int) entity.CalculatorState {
	if d < 0 || d > 9 {
		return s
	}
	digit := strconv.Itoa(d)

	switch {
	case s.AwaitingNewEntry:
		s.Display = digit
		s.AwaitingNewEntry = false
	case s.Display == "0":
		s.Display = digit
	default:
		s.Display += digit
	}
	return s
}

// InputDecimal adds the decimal separator; the display never holds more than one.
func InputDecimal(s entity.CalculatorState) entity.CalculatorState {
	switch {
	case s.AwaitingNewEntry:
		s.Display = "0."
		s.AwaitingNewEntry = false
	case !strings.Contains(s.Display, "."):
		s.Display += "."
	}
	return s
}

// PerformOperation applies an operator key. Chained operators resolve left to
// right without precedence: 5 + 3 + 2 = gives 10.
func PerformOperation(s entity.CalculatorState, op enum.Operator) entity.CalculatorState {
	if op != enum.OperatorEquals && !op.IsArithmetic() {
		return s
	}

	if s.HasPending() && !s.AwaitingNewEntry {
		result := apply(s.PendingOperand.Decimal, s.Value(), s.PendingOperator)
		if op == enum.OperatorEquals {
			return entity.CalculatorState{
				Display:          result.String(),
				AwaitingNewEntry: true,
			}
		}
		return entity.CalculatorState{
			Display:          result.String(),
			PendingOperand:   decimal.NewNullDecimal(result),
			PendingOperator:  op,
			AwaitingNewEntry: true,
		}
	}

	if op == enum.OperatorEquals {
		return s
	}

	s.PendingOperand = decimal.NewNullDecimal(s.Value())
	s.PendingOperator = op
	s.AwaitingNewEntry = true
	return s
}

// ClearCalculator returns the identity state.
func ClearCalculator() entity.CalculatorState {
	return entity.NewCalculatorState()
}

// LoadAmount shows an amount (in cents) with two decimals, ready to be
// consumed or replaced by the next digit.
func LoadAmount(s entity.CalculatorState, cents int64) entity.CalculatorState {
	s.Display = money.Format(cents)
	s.AwaitingNewEntry = true
	return s
}

// apply evaluates a binary operation. Division by zero yields the dividend.
func apply(first, second decimal.Decimal, op enum.Operator) decimal.Decimal {
	switch op {
	case enum.OperatorAdd:
		return first.Add(second)
	case enum.OperatorSubtract:
		return first.Sub(second)
	case enum.OperatorMultiply:
		return first.Mul(second)
	case enum.OperatorDivide:
		if second.IsZero() {
			return first
		}
		return first.Div(second)
	default:
		return second
	}
}

// CalculatorService keeps the latest calculator state for the host.
type CalculatorService struct {
	state entity.CalculatorState
}

// NewCalculatorService creates a calculator in the identity state.
func NewCalculatorService() *CalculatorService {
	return &CalculatorService{state: entity.NewCalculatorState()}
}

// InputDigit handles a digit key.
func (s *CalculatorService) InputDigit(d int) {
	s.state = InputDigit(s.state, d)
}

// InputDecimal handles the decimal separator key.
func (s *CalculatorService) InputDecimal() {
	s.state = InputDecimal(s.state)
}

// PerformOperation handles an operator key.
func (s *CalculatorService) PerformOperation(op enum.Operator) {
	s.state = PerformOperation(s.state, op)
}

// Clear resets the calculator.
func (s *CalculatorService) Clear() {
	s.state = ClearCalculator()
}

// LoadAmount puts an amount on the display.
func (s *CalculatorService) LoadAmount(cents int64) {
	s.state = LoadAmount(s.state, cents)
}

// State returns the current state.
func (s *CalculatorService) State() entity.CalculatorState {
	return s.state
}

// Display returns the current display string.
func (s *CalculatorService) Display() string {
	return s.state.Display
}

// Value returns the display as a number.
func (s *CalculatorService) Value() decimal.Decimal {
	return s.state.Value()
}

// CurrentExpression renders the pending operation, e.g. "5 +" or "5 + 3".
func (s *CalculatorService) CurrentExpression() string {
	st := s.state
	if !st.HasPending() {
		return ""
	}
	expr := st.PendingOperand.Decimal.String() + " " + st.PendingOperator.Symbol()
	if st.AwaitingNewEntry {
		return expr
	}
	return expr + " " + st.Display
}

// PartialResult previews the pending operation without committing it.
// ok is false when there is nothing to resolve.
func (s *CalculatorService) PartialResult() (result string, ok bool) {
	if !s.state.HasPending() || s.state.AwaitingNewEntry {
		return "", false
	}
	return PerformOperation(s.state, enum.OperatorEquals).Display, true
}
