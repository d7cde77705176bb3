package report

// Entry is the slice of a transaction the engine needs: its type, amount and
// calendar date (ISO-8601 string, parsed here with the skip-on-malformed
// policy).
type Entry struct {
	Type   string
	Amount float64
	Date   string
}

// MonthSummary is the rollup of one calendar month. Monetary figures are
// rounded to 2 decimal places and NetRevenue is the difference of the two
// already rounded sums, rounded again.
type MonthSummary struct {
	Month        int
	Year         int
	TotalIncome  float64
	TotalExpense float64
	NetRevenue   float64
	Count        int
}

// Snapshot is the point in time dashboard summary. It is computed, never
// persisted.
type Snapshot struct {
	MonthIncome     float64
	MonthExpense    float64
	NetRevenue      float64
	DelinquentCount int
	DelinquentOwed  float64
}

// TierGroup aggregates clients sharing a purchase tier. Tier is empty for
// clients with the attribute unset. MeanAge and MeanIncome are nil when no
// client in the group has the attribute set.
type TierGroup struct {
	Tier       string
	Count      int
	TotalOwed  float64
	MeanAge    *float64
	MeanIncome *float64
}
