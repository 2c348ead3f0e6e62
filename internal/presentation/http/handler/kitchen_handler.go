package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tofrito/till-api/internal/application/service"
	"github.com/tofrito/till-api/internal/presentation/http/dto/response"
)

// KitchenHandler serves the kitchen display views
type KitchenHandler struct {
	kitchenService *service.KitchenService
}

// NewKitchenHandler creates a new kitchen handler
func NewKitchenHandler(kitchenService *service.KitchenService) *KitchenHandler {
	return &KitchenHandler{kitchenService: kitchenService}
}

// Queue returns both kitchen views: pending orders oldest-first and
// today's finished orders newest-first.
func (h *KitchenHandler) Queue(c *gin.Context) {
	ctx := c.Request.Context()
	response.OK(c, "Kitchen queue", gin.H{
		"active":    h.kitchenService.ActiveQueue(ctx),
		"completed": h.kitchenService.CompletedToday(ctx),
	})
}

// MarkDone flags an order as fulfilled in the kitchen.
func (h *KitchenHandler) MarkDone(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	h.kitchenService.MarkDone(c.Request.Context(), id)
	response.OK(c, "Order marked done", nil)
}

// ReturnToPreparation moves an order back to the active queue.
func (h *KitchenHandler) ReturnToPreparation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	h.kitchenService.ReturnToPreparation(c.Request.Context(), id)
	response.OK(c, "Order returned to preparation", nil)
}
