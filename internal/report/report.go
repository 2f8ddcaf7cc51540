// Package report implements the aggregation pipelines over the operations
// table: spending by category, cashback by category, per-card summaries,
// top expenses, and the composed dashboard. Every function here is a pure
// transformation of (rows, parameters); persistence and I/O live with the
// callers.
package report

// Report kinds, used by sinks, the archive and event messages.
const (
	KindSpending  = "spending_by_category"
	KindCashback  = "cashback_by_category"
	KindDashboard = "dashboard"
)
