package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/investify-pos/internal/application/service"
	"github.com/sangkips/investify-pos/internal/domain/entity"
	"github.com/sangkips/investify-pos/internal/domain/enum"
	"github.com/sangkips/investify-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/investify-pos/internal/presentation/http/dto/response"
)

// PaymentHandler handles payment allocation
type PaymentHandler struct {
	checkoutService *service.CheckoutService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(checkoutService *service.CheckoutService) *PaymentHandler {
	return &PaymentHandler{checkoutService: checkoutService}
}

// Methods returns the payment method table
func (h *PaymentHandler) Methods(c *gin.Context) {
	response.OK(c, "Payment methods retrieved", enum.PaymentMethods())
}

// SetActiveMethod selects the method for the next payment
func (h *PaymentHandler) SetActiveMethod(c *gin.Context) {
	var req request.SetActiveMethodRequest
	if !bindJSON(c, &req) {
		return
	}
	response.OK(c, "Payment method updated", h.checkoutService.SetActiveMethod(req.Method))
}

// SetReference stages the reference for the next payment
func (h *PaymentHandler) SetReference(c *gin.Context) {
	var req request.SetReferenceRequest
	if !bindJSON(c, &req) {
		return
	}
	response.OK(c, "Reference updated", h.checkoutService.SetReference(req.Reference))
}

// Assign records a payment for an explicit amount or the calculator display
func (h *PaymentHandler) Assign(c *gin.Context) {
	var req request.AssignPaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	var (
		payment *entity.Payment
		err     error
	)
	if req.Amount != nil {
		var p entity.Payment
		p, err = h.checkoutService.AssignPayment(*req.Amount, req.Reference)
		payment = &p
	} else {
		payment, err = h.checkoutService.AssignFromCalculator(req.Reference)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	h.created(c, payment)
}

// AssignShare returns a handler running a convenience allocator
func (h *PaymentHandler) AssignShare(share service.Share) gin.HandlerFunc {
	return func(c *gin.Context) {
		payment, err := h.checkoutService.AssignShare(share)
		if err != nil {
			response.Error(c, err)
			return
		}
		if payment == nil {
			response.OK(c, "Nothing to assign", gin.H{
				"payment":    nil,
				"allocation": h.checkoutService.Allocation(),
			})
			return
		}
		h.created(c, payment)
	}
}

func (h *PaymentHandler) created(c *gin.Context, payment *entity.Payment) {
	response.Created(c, "Payment recorded", gin.H{
		"payment":    payment,
		"allocation": h.checkoutService.Allocation(),
	})
}

// Remove deletes one payment
func (h *PaymentHandler) Remove(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	h.checkoutService.RemovePayment(id)
	response.OK(c, "Payment removed", h.checkoutService.Allocation())
}

// RemoveByMethod deletes all payments of ?method=, or every payment when no
// method is given
func (h *PaymentHandler) RemoveByMethod(c *gin.Context) {
	name := c.Query("method")
	if name == "" {
		h.checkoutService.ClearAllPayments()
		response.OK(c, "Payments cleared", h.checkoutService.Allocation())
		return
	}

	method, err := enum.ParsePaymentMethod(name)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	h.checkoutService.RemovePaymentsByMethod(method)
	response.OK(c, method.Label()+" payments removed", h.checkoutService.Allocation())
}
