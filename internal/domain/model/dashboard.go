package model

// ChartSeries is a daily running-balance series for the dashboard chart.
// Labels and Balances are parallel; multiple postings on one day collapse to
// the day's final balance.
type ChartSeries struct {
	Labels   []string
	Balances []float64
}

// Dashboard aggregates everything the landing page shows.
type Dashboard struct {
	Balance float64
	Recent  []AnnotatedTransaction
	Chart   ChartSeries
}

// ChildOverview pairs a child account with its current balance for the admin
// listing.
type ChildOverview struct {
	User    User
	Balance float64
}
