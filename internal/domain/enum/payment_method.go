package enum

import (
	"encoding/json"
	"fmt"
	"strings"
)

// PaymentMethod is a tender type accepted at checkout.
// The zero value means no method is selected.
type PaymentMethod int

const (
	PaymentMethodNone     PaymentMethod = 0
	PaymentMethodCash     PaymentMethod = 1
	PaymentMethodWallet   PaymentMethod = 2
	PaymentMethodTransfer PaymentMethod = 3
	PaymentMethodOther    PaymentMethod = 4
)

// PaymentMethodConfig describes how a payment method is presented and validated.
type PaymentMethodConfig struct {
	Method            PaymentMethod `json:"id"`
	Label             string        `json:"label"`
	Color             string        `json:"color"`
	Icon              string        `json:"icon"`
	RequiresReference bool          `json:"requires_reference"`
}

var paymentMethodConfigs = [...]PaymentMethodConfig{
	{Method: PaymentMethodCash, Label: "Cash", Color: "green", Icon: "💵"},
	{Method: PaymentMethodTransfer, Label: "Transfer", Color: "cyan", Icon: "📱", RequiresReference: true},
	{Method: PaymentMethodWallet, Label: "Wallet", Color: "orange", Icon: "📋"},
	{Method: PaymentMethodOther, Label: "Other", Color: "grey", Icon: "🎫"},
}

// PaymentMethods returns the method table in display order.
func PaymentMethods() []PaymentMethodConfig {
	out := make([]PaymentMethodConfig, len(paymentMethodConfigs))
	copy(out, paymentMethodConfigs[:])
	return out
}

// AllPaymentMethods returns every selectable method in declaration order.
func AllPaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentMethodCash, PaymentMethodWallet, PaymentMethodTransfer, PaymentMethodOther}
}

// Config returns the configuration for m. ok is false for PaymentMethodNone
// and out-of-range values.
func (m PaymentMethod) Config() (PaymentMethodConfig, bool) {
	for _, c := range paymentMethodConfigs {
		if c.Method == m {
			return c, true
		}
	}
	return PaymentMethodConfig{}, false
}

// Valid reports whether m is one of the selectable methods.
func (m PaymentMethod) Valid() bool {
	_, ok := m.Config()
	return ok
}

// RequiresReference reports whether payments with m need a reference.
func (m PaymentMethod) RequiresReference() bool {
	c, ok := m.Config()
	return ok && c.RequiresReference
}

// Label returns the human readable label, or "" for an invalid method.
func (m PaymentMethod) Label() string {
	c, _ := m.Config()
	return c.Label
}

func (m PaymentMethod) String() string {
	switch m {
	case PaymentMethodCash:
		return "Cash"
	case PaymentMethodWallet:
		return "Wallet"
	case PaymentMethodTransfer:
		return "Transfer"
	case PaymentMethodOther:
		return "Other"
	default:
		return "None"
	}
}

// ParsePaymentMethod resolves a method by name, case-insensitively.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	for _, m := range AllPaymentMethods() {
		if strings.EqualFold(m.String(), strings.TrimSpace(s)) {
			return m, nil
		}
	}
	return PaymentMethodNone, fmt.Errorf("unknown payment method %q", s)
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	if !m.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(m.String())
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = PaymentMethodNone
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		if !PaymentMethod(i).Valid() {
			return fmt.Errorf("unknown payment method %d", i)
		}
		*m = PaymentMethod(i)
		return nil
	}
	parsed, err := ParsePaymentMethod(str)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
