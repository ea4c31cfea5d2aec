package handlers

import (
	"time"

	domainErrors "github.com/familybank/allowance/internal/domain/errors"
)

// parseDate parses an allowance start date in the 2006-01-02 layout as a UTC
// midnight instant.
func parseDate(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, domainErrors.ErrInvalidDate
	}
	return t.UTC(), nil
}
