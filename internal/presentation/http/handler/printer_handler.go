package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tofrito/till-api/internal/application/service"
	"github.com/tofrito/till-api/internal/presentation/http/dto/response"
)

// PrinterHandler exposes ticket printer status and test printing
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// Status returns printer connection status.
func (h *PrinterHandler) Status(c *gin.Context) {
	response.OK(c, "Printer status", h.printerService.GetStatus())
}

// TestPrint sends a test ticket to the printer. The rendered receipt
// is returned either way so the UI can show what would have printed.
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	receipt, err := h.printerService.TestPrint()
	if err != nil {
		response.Success(c, 200, "Printer unavailable, returning receipt preview", receipt)
		return
	}
	response.OK(c, "Test ticket printed", receipt)
}
