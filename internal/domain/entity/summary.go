package entity

// DailySummary aggregates completed transactions for the reports
// screen. Cancelled transactions contribute to none of the figures.
// Amounts are in centavos.
type DailySummary struct {
	TotalSales      int              `json:"total_sales"`
	TotalRevenue    int64            `json:"total_revenue"`
	AverageTicket   int64            `json:"average_ticket"`
	MethodBreakdown map[string]int64 `json:"method_breakdown"`
}
