package model

import "time"

// User represents a household member: the admin parent or a child with an allowance.
type User struct {
	ID               int64
	Username         string
	PasswordHash     string
	DisplayName      string
	IsAdmin          bool
	MonthlyAllowance float64
	StartingBalance  float64
	// AllowanceStartDate overrides CreatedAt as the first accrual day when set.
	AllowanceStartDate *time.Time
	CreatedAt          time.Time
}

// AccrualStart returns the first day income should be posted for a user
// with no income history yet.
func (u *User) AccrualStart() time.Time {
	if u.AllowanceStartDate != nil {
		return *u.AllowanceStartDate
	}
	return u.CreatedAt
}
