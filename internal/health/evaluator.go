package health

import "fmt"

// Evaluator grades plans against a fixed set of thresholds.
type Evaluator struct {
	t Thresholds
}

// NewEvaluator creates an evaluator using DefaultThresholds.
func NewEvaluator() *Evaluator {
	return &Evaluator{t: DefaultThresholds()}
}

// NewEvaluatorWithThresholds creates an evaluator with custom limits.
func NewEvaluatorWithThresholds(t Thresholds) *Evaluator {
	return &Evaluator{t: t}
}

// Evaluate produces a Result from input.
// UNHEALTHY if ANY trigger fires.
// HEALTHY if ALL criteria pass.
// AT_RISK otherwise.
func (e *Evaluator) Evaluate(input Input) *Result {
	criteria := e.evaluateCriteria(input)
	triggers := e.evaluateTriggers(input)

	verdict := VerdictHealthy
	for _, c := range criteria {
		if !c.Pass {
			verdict = VerdictAtRisk
			break
		}
	}
	for _, c := range triggers {
		if !c.Pass {
			verdict = VerdictUnhealthy
			break
		}
	}

	return &Result{
		Verdict:  verdict,
		Criteria: criteria,
		Triggers: triggers,
	}
}

func (e *Evaluator) evaluateCriteria(input Input) []CriterionResult {
	return []CriterionResult{
		{
			Name:      "LTV:CAC ratio",
			Threshold: fmt.Sprintf(">= %.1f", e.t.MinLTVCAC),
			Actual:    fmt.Sprintf("%.2f", input.LTVCACRatio),
			Pass:      input.LTVCACRatio >= e.t.MinLTVCAC,
		},
		{
			Name:      "CAC payback",
			Threshold: fmt.Sprintf("<= %.0f months", e.t.MaxPaybackMonths),
			Actual:    fmt.Sprintf("%.1f months", input.PaybackMonths),
			Pass:      input.PaybackMonths <= e.t.MaxPaybackMonths,
		},
		{
			Name:      "EBITDA margin",
			Threshold: fmt.Sprintf("> %.0f%%", e.t.MinEBITDAMargin),
			Actual:    fmt.Sprintf("%.2f%%", input.EBITDAMargin),
			Pass:      input.EBITDAMargin > e.t.MinEBITDAMargin,
		},
		{
			Name:      "Gross margin",
			Threshold: fmt.Sprintf(">= %.0f%%", e.t.MinGrossMargin),
			Actual:    fmt.Sprintf("%.2f%%", input.GrossMargin),
			Pass:      input.GrossMargin >= e.t.MinGrossMargin,
		},
	}
}

// evaluateTriggers checks the hard failures.
// Pass=true means NOT triggered.
func (e *Evaluator) evaluateTriggers(input Input) []CriterionResult {
	return []CriterionResult{
		{
			Name:      "Loss-making",
			Threshold: "EBITDA <= 0",
			Actual:    fmt.Sprintf("%.2f", input.EBITDA),
			Pass:      input.EBITDA > 0,
		},
		{
			Name:      "Customers cost more than they return",
			Threshold: fmt.Sprintf("LTV:CAC < %.1f", e.t.UnhealthyLTVCAC),
			Actual:    fmt.Sprintf("%.2f", input.LTVCACRatio),
			Pass:      input.LTVCACRatio >= e.t.UnhealthyLTVCAC,
		},
	}
}
