package health

import (
	"strings"
	"testing"
)

func healthyInput() Input {
	return Input{
		LTVCACRatio:   4.5,
		PaybackMonths: 6,
		GrossMargin:   60,
		EBITDA:        25000,
		EBITDAMargin:  12,
	}
}

func TestEvaluate_Healthy(t *testing.T) {
	result := NewEvaluator().Evaluate(healthyInput())

	if result.Verdict != VerdictHealthy {
		t.Errorf("Expected HEALTHY, got %s", result.Verdict)
	}
	for i, c := range result.Criteria {
		if !c.Pass {
			t.Errorf("criterion %d (%s) should pass", i+1, c.Name)
		}
	}
	for i, c := range result.Triggers {
		if !c.Pass {
			t.Errorf("trigger %d (%s) should not fire", i+1, c.Name)
		}
	}
	if len(result.Failed()) != 0 {
		t.Errorf("Expected no failures, got %v", result.Failed())
	}
}

func TestEvaluate_AtRisk(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Input)
	}{
		{"low ltv:cac", func(in *Input) { in.LTVCACRatio = 2 }},
		{"slow payback", func(in *Input) { in.PaybackMonths = 18 }},
		{"thin gross margin", func(in *Input) { in.GrossMargin = 40 }},
		{"payback sentinel", func(in *Input) { in.PaybackMonths = 999 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := healthyInput()
			tt.mutate(&in)
			result := NewEvaluator().Evaluate(in)
			if result.Verdict != VerdictAtRisk {
				t.Errorf("Expected AT_RISK, got %s", result.Verdict)
			}
		})
	}
}

func TestEvaluate_Unhealthy(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Input)
	}{
		{"zero ebitda", func(in *Input) { in.EBITDA = 0; in.EBITDAMargin = 0 }},
		{"loss", func(in *Input) { in.EBITDA = -1; in.EBITDAMargin = -5 }},
		{"ltv below cac", func(in *Input) { in.LTVCACRatio = 0.8 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := healthyInput()
			tt.mutate(&in)
			result := NewEvaluator().Evaluate(in)
			if result.Verdict != VerdictUnhealthy {
				t.Errorf("Expected UNHEALTHY, got %s", result.Verdict)
			}
		})
	}
}

func TestEvaluate_BoundariesInclusive(t *testing.T) {
	in := Input{LTVCACRatio: 3, PaybackMonths: 12, GrossMargin: 50, EBITDA: 1, EBITDAMargin: 0.01}
	if v := NewEvaluator().Evaluate(in).Verdict; v != VerdictHealthy {
		t.Errorf("Expected HEALTHY at exact thresholds, got %s", v)
	}
}

func TestEvaluate_CustomThresholds(t *testing.T) {
	th := DefaultThresholds()
	th.MinLTVCAC = 5
	result := NewEvaluatorWithThresholds(th).Evaluate(healthyInput())
	if result.Verdict != VerdictAtRisk {
		t.Errorf("Expected AT_RISK with stricter LTV:CAC, got %s", result.Verdict)
	}
}

func TestRenderMarkdown(t *testing.T) {
	in := healthyInput()
	in.EBITDA = -10
	md := RenderMarkdown(NewEvaluator().Evaluate(in))

	for _, want := range []string{"## Health: UNHEALTHY", "| 1 | Loss-making | EBITDA <= 0 | -10.00 | TRIGGERED |", "- Loss-making"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}
