package domain

import "time"

// ScenarioPreset scales the funnel and cost inputs of a plan for what-if analysis.
type ScenarioPreset struct {
	ScenarioID     string  `json:"scenario_id"`     // "optimistic" | "realistic" | "pessimistic" | "degraded"
	RateMultiplier float64 `json:"rate_multiplier"` // applied to every conversion rate, result capped at 1
	LeadMultiplier float64 `json:"lead_multiplier"` // applied to monthly leads
	CostMultiplier float64 `json:"cost_multiplier"` // applied to the active channel price
}

// Scenario ID constants
const (
	ScenarioOptimistic  = "optimistic"
	ScenarioRealistic   = "realistic"
	ScenarioPessimistic = "pessimistic"
	ScenarioDegraded    = "degraded"
)

// Predefined presets. Realistic is the identity.
var (
	ScenarioPresetOptimistic = ScenarioPreset{
		ScenarioID:     ScenarioOptimistic,
		RateMultiplier: 1.10,
		LeadMultiplier: 1.10,
		CostMultiplier: 0.95,
	}

	ScenarioPresetRealistic = ScenarioPreset{
		ScenarioID:     ScenarioRealistic,
		RateMultiplier: 1.0,
		LeadMultiplier: 1.0,
		CostMultiplier: 1.0,
	}

	ScenarioPresetPessimistic = ScenarioPreset{
		ScenarioID:     ScenarioPessimistic,
		RateMultiplier: 0.90,
		LeadMultiplier: 0.90,
		CostMultiplier: 1.10,
	}

	ScenarioPresetDegraded = ScenarioPreset{
		ScenarioID:     ScenarioDegraded,
		RateMultiplier: 0.75,
		LeadMultiplier: 0.80,
		CostMultiplier: 1.25,
	}
)

// ScenarioPresets lists the presets from best to worst case.
var ScenarioPresets = []ScenarioPreset{
	ScenarioPresetOptimistic,
	ScenarioPresetRealistic,
	ScenarioPresetPessimistic,
	ScenarioPresetDegraded,
}

// PresetByID looks up a predefined preset.
func PresetByID(id string) (ScenarioPreset, bool) {
	for _, p := range ScenarioPresets {
		if p.ScenarioID == id {
			return p, true
		}
	}
	return ScenarioPreset{}, false
}

// Param is one named numeric input of a model.
type Param struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Params is an ordered set of named inputs. Order is insertion order and is
// used to break ties when ranking sensitivities.
type Params []Param

// Get returns the value of name.
func (p Params) Get(name string) (float64, bool) {
	for _, kv := range p {
		if kv.Name == name {
			return kv.Value, true
		}
	}
	return 0, false
}

// With returns a copy of p with name set to v, appending name if absent.
func (p Params) With(name string, v float64) Params {
	out := p.Clone()
	for i := range out {
		if out[i].Name == name {
			out[i].Value = v
			return out
		}
	}
	return append(out, Param{Name: name, Value: v})
}

// Clone returns a copy of p that shares no backing array.
func (p Params) Clone() Params {
	if p == nil {
		return nil
	}
	out := make(Params, len(p))
	copy(out, p)
	return out
}

// Map returns p as a map.
func (p Params) Map() map[string]float64 {
	m := make(map[string]float64, len(p))
	for _, kv := range p {
		m[kv.Name] = kv.Value
	}
	return m
}

// Scenario is a named snapshot of model inputs.
// Params is the numeric view used for comparison; Inputs, when present, is the
// structured plan Params were taken from.
type Scenario struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Params  Params    `json:"params"`
	Inputs  *Inputs   `json:"inputs,omitempty"`
	SavedAt time.Time `json:"saved_at"`
}

// Clone returns a deep copy of s.
func (s Scenario) Clone() Scenario {
	out := s
	out.Params = s.Params.Clone()
	if s.Inputs != nil {
		in := s.Inputs.Clone()
		out.Inputs = &in
	}
	return out
}

// MetricDelta compares one output metric across two scenarios.
type MetricDelta struct {
	Metric   string  `json:"metric"`
	A        float64 `json:"a"`
	B        float64 `json:"b"`
	AbsDelta float64 `json:"abs_delta"` // B - A
	PctDelta float64 `json:"pct_delta"` // (B - A) / |A| × 100, 0 when A is 0
}
