package utils

import "math"

// Round2 rounds to two decimal places, the precision used for money and kg.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// PercentageChange returns the change from previous to current in percent.
// A rise from zero is reported as 100 and no movement from zero as 0.
func PercentageChange(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return Round2((current - previous) / previous * 100)
}

func StringPtr(s string) *string {
	return &s
}
