package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/investify-pos/internal/domain/enum"
	"github.com/sangkips/investify-pos/pkg/money"
)

// MaxPaymentAmount is the largest single payment accepted, in cents (999,999.99).
const MaxPaymentAmount int64 = 99999999

// Payment is a tender recorded against the current order. It is never mutated
// after creation.
type Payment struct {
	ID        uuid.UUID          `json:"id"`
	Method    enum.PaymentMethod `json:"method"`
	Amount    int64              `json:"-"` // Stored in cents, excluded from JSON
	Timestamp time.Time          `json:"timestamp"`
	Reference string             `json:"reference,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p Payment) MarshalJSON() ([]byte, error) {
	type Alias Payment
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(p),
		Amount: money.ToFloat(p.Amount),
	})
}

// PaymentSummary groups the payments of one method.
type PaymentSummary struct {
	Method   enum.PaymentMethod       `json:"method"`
	Config   enum.PaymentMethodConfig `json:"config"`
	Amount   int64                    `json:"-"`
	Payments []Payment                `json:"payments"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s PaymentSummary) MarshalJSON() ([]byte, error) {
	type Alias PaymentSummary
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(s),
		Amount: money.ToFloat(s.Amount),
	})
}
