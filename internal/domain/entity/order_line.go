package entity

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/sangkips/investify-pos/pkg/money"
)

// OrderLine represents a line item in the current order
type OrderLine struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	UnitPrice int64     `json:"-"` // Stored in cents, excluded from JSON
	Total     int64     `json:"-"` // Stored in cents, excluded from JSON
}

// NewOrderLine creates a line with a fresh id and its total computed.
func NewOrderLine(name string, quantity int, unitPrice int64) OrderLine {
	line := OrderLine{
		ID:        uuid.New(),
		Name:      name,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}
	line.Recalculate()
	return line
}

// Recalculate sets Total to quantity × unit price.
func (l *OrderLine) Recalculate() {
	l.Total = int64(l.Quantity) * l.UnitPrice
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (l OrderLine) MarshalJSON() ([]byte, error) {
	type Alias OrderLine
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(l),
		UnitPrice: money.ToFloat(l.UnitPrice),
		Total:     money.ToFloat(l.Total),
	})
}

// OrderTotals is derived from the current lines; it is never stored.
type OrderTotals struct {
	SubTotal  int64 `json:"-"`
	Taxes     int64 `json:"-"`
	Total     int64 `json:"-"`
	ItemCount int   `json:"item_count"`
	IsEmpty   bool  `json:"is_empty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (t OrderTotals) MarshalJSON() ([]byte, error) {
	type Alias OrderTotals
	return json.Marshal(&struct {
		Alias
		SubTotal float64 `json:"sub_total"`
		Taxes    float64 `json:"taxes"`
		Total    float64 `json:"total"`
	}{
		Alias:    Alias(t),
		SubTotal: money.ToFloat(t.SubTotal),
		Taxes:    money.ToFloat(t.Taxes),
		Total:    money.ToFloat(t.Total),
	})
}
