package domain

import "math"

// PaybackSentinel is reported for payback-style metrics that never pay back.
const PaybackSentinel = 999.0

// SafeDiv returns num/den, or 0 when den is zero or the result is not finite.
func SafeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	q := num / den
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return 0
	}
	return q
}

// SafePct returns num/den × 100 with the same guards as SafeDiv.
func SafePct(num, den float64) float64 {
	return SafeDiv(num, den) * 100
}
