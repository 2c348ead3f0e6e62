package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tofrito/till-api/internal/domain/entity"
	"github.com/tofrito/till-api/internal/domain/enum"
	"github.com/tofrito/till-api/pkg/pagination"
)

// ReportService derives sales summaries from the ledger. Cancelled
// transactions are excluded from every figure but stay visible in the
// audit listing; cancellation itself is delegated to the ledger.
type ReportService struct {
	ledger *LedgerService

	now func() time.Time
}

// NewReportService creates a new report service
func NewReportService(ledger *LedgerService) *ReportService {
	return &ReportService{ledger: ledger, now: time.Now}
}

// Summary aggregates all completed transactions in the ledger.
func (s *ReportService) Summary() *entity.DailySummary {
	return summarize(s.ledger.Transactions())
}

// SummaryToday aggregates completed transactions created today.
func (s *ReportService) SummaryToday() *entity.DailySummary {
	var todays []entity.Transaction
	now := s.now()
	for _, tx := range s.ledger.Transactions() {
		if tx.CreatedOn(now) {
			todays = append(todays, tx)
		}
	}
	return summarize(todays)
}

// Transactions lists the full ledger newest-first for audit, including
// cancelled entries with their status marker.
func (s *ReportService) Transactions(params *pagination.PaginationParams) *pagination.PaginatedResult[entity.Transaction] {
	txs := s.ledger.Transactions()

	// Ledger is append-ordered; reverse for newest-first display.
	for i, j := 0, len(txs)-1; i < j; i, j = i+1, j-1 {
		txs[i], txs[j] = txs[j], txs[i]
	}

	return pagination.Slice(txs, params)
}

// Cancel delegates the one allowed mutation to the ledger.
func (s *ReportService) Cancel(ctx context.Context, id uuid.UUID) {
	s.ledger.Cancel(ctx, id)
}

func summarize(txs []entity.Transaction) *entity.DailySummary {
	summary := &entity.DailySummary{
		MethodBreakdown: make(map[string]int64, 4),
	}
	for _, m := range enum.AllPaymentMethods() {
		summary.MethodBreakdown[m.String()] = 0
	}

	for _, tx := range txs {
		if !tx.IsCompleted() {
			continue
		}
		summary.TotalSales++
		summary.TotalRevenue += tx.Total
		summary.MethodBreakdown[tx.PaymentMethod.String()] += tx.Total
	}

	if summary.TotalSales > 0 {
		summary.AverageTicket = summary.TotalRevenue / int64(summary.TotalSales)
	}
	return summary
}
