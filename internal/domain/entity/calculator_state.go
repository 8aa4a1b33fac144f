package entity

import (
	"strings"

	"github.com/sangkips/investify-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// CalculatorState is the input state of the tender calculator. It is a plain
// value: transitions return a new state and never share mutable data.
type CalculatorState struct {
	Display          string              `json:"display"`
	PendingOperand   decimal.NullDecimal `json:"pending_operand"`
	PendingOperator  enum.Operator       `json:"pending_operator"`
	AwaitingNewEntry bool                `json:"awaiting_new_entry"`
}

// NewCalculatorState returns the identity state.
func NewCalculatorState() CalculatorState {
	return CalculatorState{Display: "0"}
}

// Value parses the display. A trailing separator ("5.") is accepted and an
// unparsable display reads as zero.
func (s CalculatorState) Value() decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSuffix(s.Display, "."))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// HasPending reports whether a binary operation is waiting for its right operand.
func (s CalculatorState) HasPending() bool {
	return s.PendingOperand.Valid && s.PendingOperator.IsArithmetic()
}
