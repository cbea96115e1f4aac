// Package reporting renders calculation results as Markdown and CSV.
package reporting

import (
	"time"

	"revops-engine/internal/engine"
	"revops-engine/internal/health"
	"revops-engine/internal/sensitivity"
)

// Report is everything rendered into REPORT.md.
type Report struct {
	// Metadata
	GeneratedAt time.Time
	BumpPct     float64

	Results     *engine.Results
	Sensitivity []sensitivity.Table  // one table per analysed metric
	Drivers     []sensitivity.Driver // top input per metric
	Presets     []PresetRow          // best to worst case
}

// PresetRow summarizes the plan under one what-if preset.
type PresetRow struct {
	ScenarioID  string         `json:"scenario_id"`
	Sales       float64        `json:"sales"`
	Revenue     float64        `json:"revenue_upfront"`
	Spend       float64        `json:"spend"`
	LTVCACRatio float64        `json:"ltv_cac_ratio"`
	EBITDA      float64        `json:"ebitda"`
	Verdict     health.Verdict `json:"verdict"`
}
