package request

import (
	"github.com/sangkips/investify-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// AddLineRequest adds an item to the order. Quantity and price rules are
// enforced by the ledger so that every violation is reported at once.
type AddLineRequest struct {
	Name      string          `json:"name" binding:"required,max=255"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// SetQuantityRequest changes the quantity of a line; values <= 0 are ignored.
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// SetTaxRateRequest changes the flat tax rate; values outside [0, 1] are ignored.
type SetTaxRateRequest struct {
	Rate decimal.Decimal `json:"rate"`
}

// DigitRequest is a calculator digit key.
type DigitRequest struct {
	Digit *int `json:"digit" binding:"required,min=0,max=9"`
}

// OperationRequest is a calculator operator key: + - * / × ÷ − =
type OperationRequest struct {
	Operator string `json:"operator" binding:"required"`
}

// KeysRequest replays keyboard keys in order, e.g. ["1", "2", "+", "3", "Enter"].
type KeysRequest struct {
	Keys []string `json:"keys" binding:"required,min=1,max=64"`
}

// SetActiveMethodRequest selects a payment method; null unselects.
type SetActiveMethodRequest struct {
	Method enum.PaymentMethod `json:"method"`
}

// SetReferenceRequest stages a reference for the next payment.
type SetReferenceRequest struct {
	Reference string `json:"reference" binding:"max=120"`
}

// AssignPaymentRequest records a payment with the active method. Without an
// amount the calculator display is used.
type AssignPaymentRequest struct {
	Amount    *decimal.Decimal `json:"amount"`
	Reference string           `json:"reference" binding:"max=120"`
}

// PrintReceiptRequest prints the current order; Preview skips the printer.
type PrintReceiptRequest struct {
	Preview bool `json:"preview"`
}
