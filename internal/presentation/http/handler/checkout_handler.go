package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/investify-pos/internal/application/service"
	"github.com/sangkips/investify-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/investify-pos/internal/presentation/http/dto/response"
	"github.com/sangkips/investify-pos/pkg/apperror"
)

// CheckoutHandler handles the order ledger of the checkout session
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// Get returns the whole session: lines, totals, calculator and payments
func (h *CheckoutHandler) Get(c *gin.Context) {
	response.OK(c, "Checkout retrieved", h.checkoutService.Snapshot())
}

// Reset starts over for the next customer
func (h *CheckoutHandler) Reset(c *gin.Context) {
	h.checkoutService.Reset()
	response.OK(c, "Checkout reset", h.checkoutService.Snapshot())
}

// AddLine handles adding an item to the order
func (h *CheckoutHandler) AddLine(c *gin.Context) {
	var req request.AddLineRequest
	if !bindJSON(c, &req) {
		return
	}

	line, err := h.checkoutService.AddLine(req.Name, req.Quantity, req.UnitPrice)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Line added", gin.H{
		"line":   line,
		"totals": h.checkoutService.Snapshot().Totals,
	})
}

// SetQuantity handles changing the quantity of a line
func (h *CheckoutHandler) SetQuantity(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req request.SetQuantityRequest
	if !bindJSON(c, &req) {
		return
	}

	line, found := h.checkoutService.SetQuantity(id, req.Quantity)
	if !found {
		response.Error(c, apperror.ErrLineNotFound)
		return
	}

	response.OK(c, "Line updated", gin.H{
		"line":   line,
		"totals": h.checkoutService.Snapshot().Totals,
	})
}

// RemoveLine handles removing a line; unknown ids are ignored
func (h *CheckoutHandler) RemoveLine(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	h.checkoutService.RemoveLine(id)
	response.OK(c, "Line removed", h.checkoutService.Snapshot().Totals)
}

// ClearLines handles removing every line
func (h *CheckoutHandler) ClearLines(c *gin.Context) {
	h.checkoutService.ClearOrder()
	response.OK(c, "Order cleared", h.checkoutService.Snapshot().Totals)
}

// SetTaxRate handles changing the flat tax rate
func (h *CheckoutHandler) SetTaxRate(c *gin.Context) {
	var req request.SetTaxRateRequest
	if !bindJSON(c, &req) {
		return
	}

	totals := h.checkoutService.SetTaxRate(req.Rate)
	snap := h.checkoutService.Snapshot()
	response.OK(c, "Tax rate updated", gin.H{
		"tax_rate": snap.TaxRate,
		"totals":   totals,
	})
}
