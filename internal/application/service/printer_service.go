package service

import (
	"context"
	"fmt"

	"github.com/sangkips/investify-pos/internal/domain/entity"
	"github.com/sangkips/investify-pos/pkg/printer"
	"go.uber.org/zap"
)

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer     printer.Printer
	printerType string
	width       int
	logger      *zap.Logger
}

// NewPrinterService creates a new printer service.
// width is the paper width in characters (32 for 58mm, 48 for 80mm).
func NewPrinterService(p printer.Printer, printerType string, width int, logger *zap.Logger) *PrinterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PrinterService{
		printer:     p,
		printerType: printerType,
		width:       width,
		logger:      logger,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// PrintReceipt formats and prints a receipt. Printing is abandoned when ctx is
// done.
func (s *PrinterService) PrintReceipt(ctx context.Context, r *entity.Receipt) error {
	data := FormatReceipt(r, s.width)
	if err := s.printer.Print(ctx, data); err != nil {
		s.logger.Error("printer error",
			zap.String("invoice_no", r.InvoiceNo),
			zap.String("printer_type", s.printerType),
			zap.Error(err),
		)
		return fmt.Errorf("failed to print receipt: %w", err)
	}

	s.logger.Info("receipt printed",
		zap.String("invoice_no", r.InvoiceNo),
		zap.Int("bytes", len(data)),
	)
	return nil
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)
	if r.OpenDrawer {
		doc.OpenDrawer()
	}

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Wrap(r.Header.Address, "")
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}
	if r.Header.TaxID != "" {
		doc.TextF("Tax ID: %s", r.Header.TaxID)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Invoice:", r.InvoiceNo).
		KeyValue("Date:", r.Date)
	if r.Cashier != "" {
		doc.KeyValue("Cashier:", r.Cashier)
	}

	doc.Separator('-')

	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Name, item.Total)
		if item.Quantity > 1 {
			doc.TextF("  @ %s each", item.UnitPrice)
		}
	}

	doc.Separator('-')

	doc.KeyValue("Subtotal:", r.SubTotal).
		KeyValue("Taxes:", r.Taxes).
		SetBold(true).
		KeyValue("TOTAL:", r.Total).
		SetBold(false)

	if len(r.Tenders) > 0 {
		doc.Separator('-')
		for _, t := range r.Tenders {
			doc.KeyValue(t.Method+":", t.Amount)
			if t.Reference != "" {
				doc.Wrap("Ref: "+t.Reference, "  ")
			}
		}
	}

	doc.KeyValue("Paid:", r.Paid)
	if r.Due != "0.00" {
		doc.KeyValue("Due:", r.Due)
	}

	doc.Separator('-')

	// Footer
	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Barcode(r.InvoiceNo).
		Text("Thank you for your purchase!").
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
