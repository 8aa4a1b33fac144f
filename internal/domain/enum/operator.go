package enum

import (
	"encoding/json"
	"fmt"
)

// Operator is a calculator key that combines or commits operands.
// The zero value means no operation is pending.
type Operator int

const (
	OperatorNone     Operator = 0
	OperatorAdd      Operator = 1
	OperatorSubtract Operator = 2
	OperatorMultiply Operator = 3
	OperatorDivide   Operator = 4
	OperatorEquals   Operator = 5
)

// Symbol returns the display symbol of the operator.
func (o Operator) Symbol() string {
	switch o {
	case OperatorAdd:
		return "+"
	case OperatorSubtract:
		return "−"
	case OperatorMultiply:
		return "×"
	case OperatorDivide:
		return "÷"
	case OperatorEquals:
		return "="
	default:
		return ""
	}
}

func (o Operator) String() string {
	return o.Symbol()
}

// IsArithmetic reports whether o is one of + − × ÷.
func (o Operator) IsArithmetic() bool {
	return o >= OperatorAdd && o <= OperatorDivide
}

// ParseOperator accepts ASCII and typographic operator forms. "Enter" maps to equals.
func ParseOperator(s string) (Operator, error) {
	switch s {
	case "+":
		return OperatorAdd, nil
	case "-", "−":
		return OperatorSubtract, nil
	case "*", "×", "x":
		return OperatorMultiply, nil
	case "/", "÷":
		return OperatorDivide, nil
	case "=", "Enter":
		return OperatorEquals, nil
	}
	return OperatorNone, fmt.Errorf("unknown operator %q", s)
}

func (o Operator) MarshalJSON() ([]byte, error) {
	if o == OperatorNone {
		return []byte("null"), nil
	}
	return json.Marshal(o.Symbol())
}

func (o *Operator) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = OperatorNone
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseOperator(str)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}
