package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tofrito/till-api/internal/application/service"
	"github.com/tofrito/till-api/internal/presentation/http/dto/response"
	"github.com/tofrito/till-api/pkg/pagination"
)

// ReportHandler serves sales summaries, the audit listing, and the
// manager-only mutations (cancel, reset).
type ReportHandler struct {
	reportService *service.ReportService
	ledgerService *service.LedgerService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService, ledgerService *service.LedgerService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		ledgerService: ledgerService,
	}
}

// Summary returns the sales summary. ?today=true restricts it to
// transactions created today.
func (h *ReportHandler) Summary(c *gin.Context) {
	if c.Query("today") == "true" {
		response.OK(c, "Daily summary", h.reportService.SummaryToday())
		return
	}
	response.OK(c, "Sales summary", h.reportService.Summary())
}

// Transactions lists the full ledger newest-first, cancelled entries
// included, for audit.
func (h *ReportHandler) Transactions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	result := h.reportService.Transactions(&pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	})

	response.SuccessWithPagination(c, 200, "Transactions retrieved", result)
}

// Cancel flips a completed transaction to cancelled. Unknown or
// already-cancelled ids are no-ops, not errors.
func (h *ReportHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	h.reportService.Cancel(c.Request.Context(), id)
	response.OK(c, "Transaction cancelled", nil)
}

// Reset wipes the ledger, the ticket counter, and the kitchen markers.
func (h *ReportHandler) Reset(c *gin.Context) {
	h.ledgerService.Reset(c.Request.Context())
	response.OK(c, "System reset", nil)
}
