package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/investify-pos/internal/application/service"
	"github.com/sangkips/investify-pos/internal/domain/entity"
	"github.com/sangkips/investify-pos/internal/domain/enum"
	"github.com/sangkips/investify-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/investify-pos/internal/presentation/http/dto/response"
)

// CalculatorHandler handles the tender calculator keys
type CalculatorHandler struct {
	checkoutService *service.CheckoutService
}

// NewCalculatorHandler creates a new calculator handler
func NewCalculatorHandler(checkoutService *service.CheckoutService) *CalculatorHandler {
	return &CalculatorHandler{checkoutService: checkoutService}
}

// Get returns the calculator view
func (h *CalculatorHandler) Get(c *gin.Context) {
	response.OK(c, "Calculator retrieved", h.checkoutService.Calculator())
}

// Digit handles a digit key
func (h *CalculatorHandler) Digit(c *gin.Context) {
	var req request.DigitRequest
	if !bindJSON(c, &req) {
		return
	}
	response.OK(c, "Digit entered", h.checkoutService.InputDigit(*req.Digit))
}

// Decimal handles the decimal separator key
func (h *CalculatorHandler) Decimal(c *gin.Context) {
	response.OK(c, "Decimal entered", h.checkoutService.InputDecimal())
}

// Operation handles an operator key
func (h *CalculatorHandler) Operation(c *gin.Context) {
	var req request.OperationRequest
	if !bindJSON(c, &req) {
		return
	}

	op, err := enum.ParseOperator(req.Operator)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.OK(c, "Operation applied", h.checkoutService.PerformOperation(op))
}

// Clear resets the calculator
func (h *CalculatorHandler) Clear(c *gin.Context) {
	response.OK(c, "Calculator cleared", h.checkoutService.ClearCalculator())
}

// LoadRemaining puts the remaining balance on the display
func (h *CalculatorHandler) LoadRemaining(c *gin.Context) {
	response.OK(c, "Remaining amount loaded", h.checkoutService.LoadRemaining())
}

// Keys replays keyboard keys. Processing stops at the first rejected key; the
// payments made by earlier keys are kept and reported.
func (h *CalculatorHandler) Keys(c *gin.Context) {
	var req request.KeysRequest
	if !bindJSON(c, &req) {
		return
	}

	payments := []entity.Payment{}
	for _, key := range req.Keys {
		p, err := h.checkoutService.PressKey(key)
		if err != nil {
			response.Error(c, err)
			return
		}
		if p != nil {
			payments = append(payments, *p)
		}
	}

	response.OK(c, "Keys processed", gin.H{
		"calculator": h.checkoutService.Calculator(),
		"payments":   payments,
		"allocation": h.checkoutService.Allocation(),
	})
}
