package domain

import (
	"fmt"
	"math"
	"strings"
)

// CommissionPolicy selects the dollar base commission percentages apply to.
type CommissionPolicy string

const (
	// CommissionPolicyUpfront pays commission on upfront cash only.
	CommissionPolicyUpfront CommissionPolicy = "upfront"
	// CommissionPolicyFull pays commission on the full deal value.
	CommissionPolicyFull CommissionPolicy = "full"
)

// String returns the string representation of CommissionPolicy.
func (p CommissionPolicy) String() string {
	return string(p)
}

// IsValid checks if the policy is a valid value.
func (p CommissionPolicy) IsValid() bool {
	return p == CommissionPolicyUpfront || p == CommissionPolicyFull
}

// ParseCommissionPolicy converts raw configuration into a CommissionPolicy.
// Matching is case-insensitive; unknown values are rejected.
func ParseCommissionPolicy(s string) (CommissionPolicy, error) {
	p := CommissionPolicy(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCommissionPolicy, s)
	}
	return p, nil
}

// DealEconomics describes the average deal and how its cash is collected.
type DealEconomics struct {
	AvgDealValue         float64          `json:"avg_deal_value"`
	UpfrontPct           float64          `json:"upfront_pct"`            // 0-100
	ContractLengthMonths float64          `json:"contract_length_months"` // > 0
	DeferredTimingMonths float64          `json:"deferred_timing_months"` // > 0
	CommissionPolicy     CommissionPolicy `json:"commission_policy"`
	GRR                  float64          `json:"grr"`                 // gross revenue retention, 0-1
	GovernmentCostPct    float64          `json:"government_cost_pct"` // 0-100
}

// UpfrontCash is the portion of the deal collected immediately.
func (d DealEconomics) UpfrontCash() float64 {
	return d.AvgDealValue * d.UpfrontPct / 100
}

// DeferredCash is the portion of the deal collected at a later milestone.
func (d DealEconomics) DeferredCash() float64 {
	return d.AvgDealValue * (100 - d.UpfrontPct) / 100
}

// CommissionBase returns the per-deal dollar base selected by the commission
// policy: upfront cash or the full deal value. Zero for an unknown policy.
func (d DealEconomics) CommissionBase() float64 {
	switch d.CommissionPolicy {
	case CommissionPolicyFull:
		return d.AvgDealValue
	case CommissionPolicyUpfront:
		return d.UpfrontCash()
	default:
		return 0
	}
}

// Validate checks ranges and the commission policy.
func (d DealEconomics) Validate() error {
	if d.AvgDealValue <= 0 {
		return fmt.Errorf("%w: avg_deal_value %.2f", ErrNonPositive, d.AvgDealValue)
	}
	if err := checkPct("upfront_pct", d.UpfrontPct); err != nil {
		return err
	}
	if d.ContractLengthMonths <= 0 {
		return fmt.Errorf("%w: contract_length_months %.2f", ErrNonPositive, d.ContractLengthMonths)
	}
	if d.DeferredTimingMonths <= 0 {
		return fmt.Errorf("%w: deferred_timing_months %.2f", ErrNonPositive, d.DeferredTimingMonths)
	}
	if !d.CommissionPolicy.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownCommissionPolicy, d.CommissionPolicy)
	}
	if err := checkRate("grr", d.GRR); err != nil {
		return err
	}
	return checkPct("government_cost_pct", d.GovernmentCostPct)
}

func checkRate(field string, v float64) error {
	if v < 0 || v > 1 || math.IsNaN(v) {
		return fmt.Errorf("%w: %s %.4f", ErrRateOutOfRange, field, v)
	}
	return nil
}

func checkPct(field string, v float64) error {
	if v < 0 || v > 100 || math.IsNaN(v) {
		return fmt.Errorf("%w: %s %.2f", ErrPercentOutOfRange, field, v)
	}
	return nil
}

func checkNonNegative(field string, v float64) error {
	if v < 0 || math.IsNaN(v) {
		return fmt.Errorf("%w: %s %.2f", ErrNegativeAmount, field, v)
	}
	return nil
}
