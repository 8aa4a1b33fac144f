package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/investify-pos/internal/application/service"
	"github.com/sangkips/investify-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/investify-pos/internal/presentation/http/dto/response"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService  *service.PrinterService
	checkoutService *service.CheckoutService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService, checkoutService *service.CheckoutService) *PrinterHandler {
	return &PrinterHandler{
		printerService:  printerService,
		checkoutService: checkoutService,
	}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	status := h.printerService.GetStatus()
	response.OK(c, "Printer status retrieved", status)
}

// PrintReceipt builds the receipt of the current order and prints it.
func (h *PrinterHandler) PrintReceipt(c *gin.Context) {
	var req request.PrintReceiptRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	receipt := h.checkoutService.Receipt(GetOperatorName(c))
	if req.Preview {
		response.OK(c, "Receipt preview", gin.H{
			"receipt": receipt,
		})
		return
	}

	if err := h.printerService.PrintReceipt(c.Request.Context(), receipt); err != nil {
		// The receipt is still useful to the host when the printer is down
		response.OK(c, "Receipt generated but printing failed", gin.H{
			"receipt": receipt,
			"warning": err.Error(),
		})
		return
	}

	response.OK(c, "Receipt printed successfully", gin.H{
		"receipt": receipt,
	})
}
