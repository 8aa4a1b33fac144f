package entity

// ReceiptHeader holds the store header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	TaxID     string `json:"tax_id,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Total     string `json:"total"`
}

// ReceiptTender is one payment line on a receipt.
type ReceiptTender struct {
	Method    string `json:"method"`
	Amount    string `json:"amount"`
	Reference string `json:"reference,omitempty"`
}

// Receipt is a value object representing a printable receipt.
// It is composed from the ledger and the recorded payments at print time.
// Money fields are pre-formatted with two decimals.
type Receipt struct {
	Header    ReceiptHeader   `json:"header"`
	InvoiceNo string          `json:"invoice_no"`
	Date      string          `json:"date"`
	Cashier   string          `json:"cashier,omitempty"`
	Items     []ReceiptItem   `json:"items"`
	Tenders   []ReceiptTender `json:"tenders"`
	SubTotal  string          `json:"sub_total"`
	Taxes     string          `json:"taxes"`
	Total     string          `json:"total"`
	Paid      string          `json:"paid"`
	Due       string          `json:"due"`

	// OpenDrawer is set when cash was tendered.
	OpenDrawer bool `json:"open_drawer"`
}
