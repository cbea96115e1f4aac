// Package sensitivity ranks model inputs by how strongly they move an output.
//
// Each input is bumped by a fixed percentage while every other input is held at
// its baseline; the resulting elasticity is normalized to a 1% input change.
package sensitivity

import (
	"math"
	"sort"

	"revops-engine/internal/domain"
)

// DefaultBumpPct is the input bump used when callers do not choose one.
const DefaultBumpPct = 10.0

// MetricFunc evaluates one scalar output for a set of inputs. It must be pure.
type MetricFunc func(domain.Params) float64

// MultiMetricFunc evaluates several named outputs for a set of inputs. It must be pure.
type MultiMetricFunc func(domain.Params) map[string]float64

// Record is the sensitivity of one output to one input.
type Record struct {
	Input           string  `json:"input"`
	BaseValue       float64 `json:"base_value"`
	BumpedValue     float64 `json:"bumped_value"`
	BaseOutput      float64 `json:"base_output"`
	BumpedOutput    float64 `json:"bumped_output"`
	OutputChangePct float64 `json:"output_change_pct"`
	Sensitivity     float64 `json:"sensitivity"` // %Δoutput per 1% Δinput
	Skipped         bool    `json:"skipped"`     // zero-valued input, not bumped
}

// Table is the ranked sensitivity of one metric to every input.
type Table struct {
	Metric     string   `json:"metric"`
	BumpPct    float64  `json:"bump_pct"`
	BaseOutput float64  `json:"base_output"`
	Records    []Record `json:"records"`
}

// MostSensitive returns the top-ranked input, or false for an empty table.
func (t Table) MostSensitive() (Record, bool) {
	if len(t.Records) == 0 {
		return Record{}, false
	}
	return t.Records[0], true
}

// Calculate computes the sensitivity of fn to every input in inputs.
//
// Zero-valued inputs are not bumped and report sensitivity 0. When the baseline
// output is 0 the percentage change is undefined and reported as 0. Records are
// ordered by |sensitivity| descending; ties keep insertion order.
func Calculate(fn MetricFunc, inputs domain.Params, bumpPct float64, metric string) Table {
	base := fn(inputs.Clone())
	records := make([]Record, 0, len(inputs))

	for _, in := range inputs {
		r := Record{
			Input:      in.Name,
			BaseValue:  in.Value,
			BaseOutput: base,
		}
		if in.Value == 0 || bumpPct == 0 {
			r.BumpedValue = in.Value
			r.BumpedOutput = base
			r.Skipped = true
			records = append(records, r)
			continue
		}

		r.BumpedValue = in.Value * (1 + bumpPct/100)
		r.BumpedOutput = fn(inputs.With(in.Name, r.BumpedValue))
		r.OutputChangePct = percentChange(base, r.BumpedOutput)
		r.Sensitivity = finite(r.OutputChangePct / bumpPct)
		records = append(records, r)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return math.Abs(records[i].Sensitivity) > math.Abs(records[j].Sensitivity)
	})

	return Table{
		Metric:     metric,
		BumpPct:    bumpPct,
		BaseOutput: base,
		Records:    records,
	}
}

// MultiMetric runs Calculate once per metric returned by fn at the baseline.
// Every metric bumps its inputs independently from a fresh copy of inputs.
// Tables are ordered by metric name.
func MultiMetric(fn MultiMetricFunc, inputs domain.Params, bumpPct float64) []Table {
	baseline := fn(inputs.Clone())

	names := make([]string, 0, len(baseline))
	for name := range baseline {
		names = append(names, name)
	}
	sort.Strings(names)

	tables := make([]Table, 0, len(names))
	for _, name := range names {
		metric := name
		single := func(p domain.Params) float64 {
			return fn(p)[metric]
		}
		tables = append(tables, Calculate(single, inputs.Clone(), bumpPct, metric))
	}
	return tables
}

// Driver is the input that moves a metric the most.
type Driver struct {
	Metric      string  `json:"metric"`
	Input       string  `json:"input"`
	Sensitivity float64 `json:"sensitivity"`
}

// Summarize returns the top driver of each table, skipping tables where no
// input moves the metric.
func Summarize(tables []Table) []Driver {
	var out []Driver
	for _, t := range tables {
		top, ok := t.MostSensitive()
		if !ok || top.Sensitivity == 0 {
			continue
		}
		out = append(out, Driver{Metric: t.Metric, Input: top.Input, Sensitivity: top.Sensitivity})
	}
	return out
}

// percentChange is (to - from) / |from| × 100, or 0 when from is 0.
func percentChange(from, to float64) float64 {
	return finite(domain.SafeDiv(to-from, math.Abs(from)) * 100)
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
