package reporting

import (
	"context"
	"fmt"
	"time"

	"revops-engine/internal/domain"
	"revops-engine/internal/engine"
	"revops-engine/internal/scenario"
	"revops-engine/internal/sensitivity"
)

// ReportMetrics are the outputs analysed in the sensitivity section.
var ReportMetrics = []string{
	engine.MetricEBITDA,
	engine.MetricLTVCAC,
	engine.MetricSales,
}

// Generator produces reports from a set of inputs.
type Generator struct {
	engine  *engine.Engine
	bumpPct float64
	now     func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator(e *engine.Engine) *Generator {
	return &Generator{
		engine:  e,
		bumpPct: sensitivity.DefaultBumpPct,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// WithBumpPct sets the sensitivity bump.
func (g *Generator) WithBumpPct(pct float64) *Generator {
	if pct > 0 {
		g.bumpPct = pct
	}
	return g
}

// Generate produces a complete report.
func (g *Generator) Generate(ctx context.Context, in domain.Inputs) (*Report, error) {
	results, err := g.engine.Calculate(ctx, in)
	if err != nil {
		return nil, err
	}

	tables := engine.Sensitivity(in, g.bumpPct, ReportMetrics...)

	presets, err := Presets(ctx, g.engine, in)
	if err != nil {
		return nil, err
	}

	return &Report{
		GeneratedAt: g.now(),
		BumpPct:     g.bumpPct,
		Results:     results,
		Sensitivity: tables,
		Drivers:     sensitivity.Summarize(tables),
		Presets:     presets,
	}, nil
}

// Presets runs in under every predefined what-if preset.
func Presets(ctx context.Context, e *engine.Engine, in domain.Inputs) ([]PresetRow, error) {
	rows := make([]PresetRow, 0, len(domain.ScenarioPresets))
	for _, p := range domain.ScenarioPresets {
		r, err := e.Calculate(ctx, scenario.ApplyPreset(in, p))
		if err != nil {
			return nil, fmt.Errorf("preset %s: %w", p.ScenarioID, err)
		}
		rows = append(rows, PresetRow{
			ScenarioID:  p.ScenarioID,
			Sales:       r.GTM.Sales,
			Revenue:     r.GTM.RevenueUpfront,
			Spend:       r.GTM.Spend,
			LTVCACRatio: r.LTVCACRatio,
			EBITDA:      r.PnL.EBITDA,
			Verdict:     r.Health.Verdict,
		})
	}
	return rows, nil
}
