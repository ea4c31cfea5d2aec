package dto

import "github.com/familybank/allowance/internal/domain/model"

// ChartResponse is the daily balance series for the dashboard chart.
type ChartResponse struct {
	Labels   []string  `json:"labels"`
	Balances []float64 `json:"balances"`
}

// DashboardResponse is the landing page payload.
type DashboardResponse struct {
	Balance float64               `json:"balance"`
	Recent  []TransactionResponse `json:"recent"`
	Chart   ChartResponse         `json:"chart"`
}

// NewDashboardResponse maps the dashboard aggregate onto the wire shape.
func NewDashboardResponse(d *model.Dashboard) DashboardResponse {
	return DashboardResponse{
		Balance: d.Balance,
		Recent:  NewTransactionResponses(d.Recent),
		Chart:   ChartResponse{Labels: d.Chart.Labels, Balances: d.Chart.Balances},
	}
}
