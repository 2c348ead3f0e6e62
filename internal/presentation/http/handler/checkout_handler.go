package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tofrito/till-api/internal/application/service"
	"github.com/tofrito/till-api/internal/domain/enum"
	"github.com/tofrito/till-api/internal/presentation/http/dto/request"
	"github.com/tofrito/till-api/internal/presentation/http/dto/response"
	"github.com/tofrito/till-api/pkg/money"
)

// CheckoutHandler drives the payment sub-flow for the checkout in progress
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// GetState returns the checkout view plus the quick-tender
// denominations for the cash screen.
func (h *CheckoutHandler) GetState(c *gin.Context) {
	response.OK(c, "Checkout state", gin.H{
		"checkout":      h.checkoutService.View(),
		"denominations": money.QuickTenderDenominations,
	})
}

// UnlockDiscount opens the discount gate with the manager passcode.
func (h *CheckoutHandler) UnlockDiscount(c *gin.Context) {
	var req request.UnlockDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "passcode is required")
		return
	}

	if err := h.checkoutService.UnlockDiscount(req.Passcode); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Discount unlocked", h.checkoutService.View())
}

// LockDiscount closes the gate and clears the staged discount.
func (h *CheckoutHandler) LockDiscount(c *gin.Context) {
	h.checkoutService.LockDiscount()
	response.OK(c, "Discount locked", h.checkoutService.View())
}

// StageDiscount stores the discount input as typed.
func (h *CheckoutHandler) StageDiscount(c *gin.Context) {
	var req request.StageDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.checkoutService.StageDiscount(req.Value); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Discount staged", h.checkoutService.View())
}

// SelectMethod picks the payment method.
func (h *CheckoutHandler) SelectMethod(c *gin.Context) {
	var req request.SelectMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "method is required")
		return
	}

	method, err := enum.ParsePaymentMethod(req.Method)
	if err != nil {
		response.BadRequest(c, "Unknown payment method")
		return
	}

	h.checkoutService.SelectMethod(method)
	response.OK(c, "Payment method selected", h.checkoutService.View())
}

// AckPix acknowledges the PIX scan-and-pay step.
func (h *CheckoutHandler) AckPix(c *gin.Context) {
	if err := h.checkoutService.AckPix(); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Pix payment acknowledged", h.checkoutService.View())
}

// TenderKey applies one keypad action to the cash tender buffer.
func (h *CheckoutHandler) TenderKey(c *gin.Context) {
	var req request.TenderKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "key is required")
		return
	}

	if err := h.checkoutService.TenderKey(req.Key); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tender updated", h.checkoutService.View())
}

// TenderQuickAdd adds a fixed denomination to the tendered amount.
func (h *CheckoutHandler) TenderQuickAdd(c *gin.Context) {
	var req request.TenderQuickAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "amount is required")
		return
	}

	if err := h.checkoutService.TenderQuickAdd(req.Amount); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tender updated", h.checkoutService.View())
}

// Confirm finalizes the checkout and returns the ticket number for the
// customer ("senha") screen.
func (h *CheckoutHandler) Confirm(c *gin.Context) {
	result, err := h.checkoutService.Confirm(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order confirmed", result)
}
