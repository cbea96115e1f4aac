package engine

import (
	"math"

	"revops-engine/internal/domain"
	"revops-engine/internal/sensitivity"
)

// binding exposes one numeric field of Inputs under a stable name.
type binding struct {
	name string
	get  func() float64
	set  func(float64)
}

func floatBinding(name string, p *float64) binding {
	return binding{
		name: name,
		get:  func() float64 { return *p },
		set:  func(v float64) { *p = v },
	}
}

// headcountBinding rounds to the nearest whole person and never goes negative.
func headcountBinding(name string, p *int) binding {
	return binding{
		name: name,
		get:  func() float64 { return float64(*p) },
		set:  func(v float64) { *p = int(math.Max(0, math.Round(v))) },
	}
}

// bindings lists every tunable field of in in a stable order: deal, channels
// in input order, team, compensation, operating costs.
func bindings(in *domain.Inputs) []binding {
	b := []binding{
		floatBinding("deal.avg_deal_value", &in.Deal.AvgDealValue),
		floatBinding("deal.upfront_pct", &in.Deal.UpfrontPct),
		floatBinding("deal.contract_length_months", &in.Deal.ContractLengthMonths),
		floatBinding("deal.deferred_timing_months", &in.Deal.DeferredTimingMonths),
		floatBinding("deal.grr", &in.Deal.GRR),
		floatBinding("deal.government_cost_pct", &in.Deal.GovernmentCostPct),
	}

	for i := range in.Channels {
		ch := &in.Channels[i]
		prefix := "channel." + ch.ID + "."
		b = append(b,
			floatBinding(prefix+"monthly_leads", &ch.MonthlyLeads),
			floatBinding(prefix+"contact_rate", &ch.ContactRate),
			floatBinding(prefix+"meeting_rate", &ch.MeetingRate),
			floatBinding(prefix+"show_up_rate", &ch.ShowUpRate),
			floatBinding(prefix+"close_rate", &ch.CloseRate),
			binding{
				name: prefix + "price",
				get:  func() float64 { return ch.Price() },
				set:  ch.SetPrice,
			},
		)
	}

	b = append(b,
		headcountBinding("team.closers", &in.Team.Closers),
		headcountBinding("team.setters", &in.Team.Setters),
		headcountBinding("team.managers", &in.Team.Managers),
		headcountBinding("team.bench", &in.Team.Bench),
	)

	for _, rc := range []struct {
		role domain.Role
		comp *domain.RoleCompensation
	}{
		{domain.RoleCloser, &in.Team.CloserComp},
		{domain.RoleSetter, &in.Team.SetterComp},
		{domain.RoleManager, &in.Team.ManagerComp},
		{domain.RoleBench, &in.Team.BenchComp},
	} {
		prefix := "comp." + rc.role.String() + "."
		b = append(b,
			floatBinding(prefix+"base", &rc.comp.Base),
			floatBinding(prefix+"variable", &rc.comp.Variable),
			floatBinding(prefix+"commission_pct", &rc.comp.CommissionPct),
		)
	}

	return append(b,
		floatBinding("opex.office_rent", &in.Opex.OfficeRent),
		floatBinding("opex.software_costs", &in.Opex.SoftwareCosts),
		floatBinding("opex.other_opex", &in.Opex.OtherOpex),
	)
}

// Params returns every tunable input of in as named parameters.
func Params(in domain.Inputs) domain.Params {
	bs := bindings(&in)
	out := make(domain.Params, len(bs))
	for i, b := range bs {
		out[i] = domain.Param{Name: b.name, Value: b.get()}
	}
	return out
}

// ApplyParams returns a copy of template with every known parameter applied.
// Unknown names are ignored. The result is not validated: a bumped rate may
// leave [0, 1].
func ApplyParams(template domain.Inputs, params domain.Params) domain.Inputs {
	out := template.Clone()
	index := make(map[string]binding)
	for _, b := range bindings(&out) {
		index[b.name] = b
	}
	for _, p := range params {
		if b, ok := index[p.Name]; ok {
			b.set(p.Value)
		}
	}
	return out
}

// MetricFunc adapts the full calculation pass to a single sensitivity metric
// named by one of the Metric constants.
func MetricFunc(template domain.Inputs, metric string) sensitivity.MetricFunc {
	return func(p domain.Params) float64 {
		return Compute(ApplyParams(template, p), DefaultWorkingDays, nil).Flatten()[metric]
	}
}

// MultiMetricFunc adapts the full calculation pass to every headline metric.
func MultiMetricFunc(template domain.Inputs) sensitivity.MultiMetricFunc {
	return func(p domain.Params) map[string]float64 {
		return Compute(ApplyParams(template, p), DefaultWorkingDays, nil).Flatten()
	}
}

// Sensitivity ranks every input of in by its effect on each of metrics.
// An empty metrics list analyses every headline metric.
func Sensitivity(in domain.Inputs, bumpPct float64, metrics ...string) []sensitivity.Table {
	params := Params(in)
	if len(metrics) == 0 {
		return sensitivity.MultiMetric(MultiMetricFunc(in), params, bumpPct)
	}
	tables := make([]sensitivity.Table, 0, len(metrics))
	for _, m := range metrics {
		tables = append(tables, sensitivity.Calculate(MetricFunc(in, m), params, bumpPct, m))
	}
	return tables
}

// KnownMetric reports whether name is a headline metric.
func KnownMetric(name string) bool {
	_, ok := (&Results{}).Flatten()[name]
	return ok
}
