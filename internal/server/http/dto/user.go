package dto

// CreateUserRequest describes the admin payload for a new child account.
// AllowanceStartDate uses the 2006-01-02 layout.
type CreateUserRequest struct {
	Username           string  `json:"username"`
	Password           string  `json:"password"`
	DisplayName        string  `json:"display_name"`
	MonthlyAllowance   float64 `json:"monthly_allowance"`
	StartingBalance    float64 `json:"starting_balance"`
	AllowanceStartDate *string `json:"allowance_start_date"`
}

// UpdateUserRequest is a partial profile update. Omitted fields stay as-is;
// an explicit empty AllowanceStartDate clears the override.
type UpdateUserRequest struct {
	DisplayName        *string  `json:"display_name"`
	Password           *string  `json:"password"`
	MonthlyAllowance   *float64 `json:"monthly_allowance"`
	StartingBalance    *float64 `json:"starting_balance"`
	AllowanceStartDate *string  `json:"allowance_start_date"`
}

// AdjustRequest posts a signed manual adjustment.
type AdjustRequest struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

// BalanceResponse reports a single balance figure.
type BalanceResponse struct {
	Balance float64 `json:"balance"`
}

// ChildResponse pairs a child profile with its current balance.
type ChildResponse struct {
	UserResponse
	Balance float64 `json:"balance"`
}
