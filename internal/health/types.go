// Package health grades a revenue plan against unit-economics thresholds.
package health

// Verdict is the overall grade of a plan.
type Verdict string

const (
	VerdictHealthy   Verdict = "HEALTHY"
	VerdictAtRisk    Verdict = "AT_RISK"
	VerdictUnhealthy Verdict = "UNHEALTHY"
)

// Input contains the headline metrics the gate reads.
type Input struct {
	LTVCACRatio   float64
	PaybackMonths float64
	GrossMargin   float64 // percent
	EBITDA        float64
	EBITDAMargin  float64 // percent
}

// Thresholds are the soft criteria limits.
type Thresholds struct {
	MinLTVCAC        float64
	MaxPaybackMonths float64
	MinGrossMargin   float64
	MinEBITDAMargin  float64 // exclusive
	UnhealthyLTVCAC  float64 // hard floor
}

// DefaultThresholds returns the standard SaaS health limits.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinLTVCAC:        3,
		MaxPaybackMonths: 12,
		MinGrossMargin:   50,
		MinEBITDAMargin:  0,
		UnhealthyLTVCAC:  1,
	}
}

// CriterionResult represents pass/fail for one criterion.
type CriterionResult struct {
	Name      string `json:"name"`
	Threshold string `json:"threshold"`
	Actual    string `json:"actual"`
	Pass      bool   `json:"pass"`
}

// Result contains the verdict with its checklist.
type Result struct {
	Verdict  Verdict           `json:"verdict"`
	Criteria []CriterionResult `json:"criteria"` // soft criteria
	Triggers []CriterionResult `json:"triggers"` // hard triggers, Pass=false means fired
}

// Failed returns the names of failed criteria and fired triggers.
func (r *Result) Failed() []string {
	var out []string
	for _, c := range r.Criteria {
		if !c.Pass {
			out = append(out, c.Name)
		}
	}
	for _, c := range r.Triggers {
		if !c.Pass {
			out = append(out, c.Name)
		}
	}
	return out
}
