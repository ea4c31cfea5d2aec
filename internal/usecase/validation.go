package usecase

import "math"

// ValidAmount reports whether v is a usable positive money amount.
func ValidAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}
