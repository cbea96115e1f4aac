package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revops-engine/internal/domain"
)

func TestParams_Names(t *testing.T) {
	p := Params(testInputs())

	for _, name := range []string{
		"deal.avg_deal_value",
		"channel.outbound.close_rate",
		"channel.outbound.price",
		"team.closers",
		"comp.closer.commission_pct",
		"opex.office_rent",
	} {
		_, ok := p.Get(name)
		assert.True(t, ok, "missing param %s", name)
	}

	price, _ := p.Get("channel.outbound.price")
	assert.Equal(t, 50.0, price)
	assert.Equal(t, "deal.avg_deal_value", p[0].Name)
}

func TestApplyParams_RoundTrip(t *testing.T) {
	in := testInputs()
	assert.Equal(t, in, ApplyParams(in, Params(in)))
}

func TestApplyParams(t *testing.T) {
	in := testInputs()
	out := ApplyParams(in, domain.Params{
		{Name: "channel.outbound.price", Value: 60},
		{Name: "team.closers", Value: 2.6},
		{Name: "team.setters", Value: -3},
		{Name: "comp.manager.base", Value: 100000},
		{Name: "nonsense", Value: 1},
	})

	assert.Equal(t, 60.0, *out.Channels[0].CPL)
	assert.Nil(t, out.Channels[0].CPC)
	assert.Equal(t, 3, out.Team.Closers)
	assert.Equal(t, 0, out.Team.Setters)
	assert.Equal(t, 100000.0, out.Team.ManagerComp.Base)

	// template untouched
	assert.Equal(t, 50.0, *in.Channels[0].CPL)
	assert.Equal(t, 2, in.Team.Closers)
}

func TestSensitivity_EBITDA(t *testing.T) {
	tables := Sensitivity(testInputs(), 10, MetricEBITDA)
	require.Len(t, tables, 1)
	table := tables[0]
	assert.Equal(t, MetricEBITDA, table.Metric)
	assert.InDelta(t, 989937.5, table.BaseOutput, 1e-6)

	byName := make(map[string]float64)
	for _, r := range table.Records {
		byName[r.Input] = r.Sensitivity
	}

	// +500 rent on 989,937.5 EBITDA, per 1%
	assert.InDelta(t, -500/989937.5*100/10, byName["opex.office_rent"], 1e-9)
	// EBITDA = 0.75 × revenue - spend - 85,000. Conversion rates move revenue only.
	assert.InDelta(t, 0.75*1433250/989937.5, byName["channel.outbound.contact_rate"], 1e-9)
	assert.InDelta(t, 0.75*1433250/989937.5, byName["channel.outbound.close_rate"], 1e-9)
	// Leads are bought per lead, so +10% leads also adds 5,000 of spend.
	assert.InDelta(t, (0.75*1433250-50000)/989937.5, byName["channel.outbound.monthly_leads"], 1e-9)
	assert.Less(t, byName["channel.outbound.monthly_leads"], byName["channel.outbound.contact_rate"])
	assert.Equal(t, 0.0, byName["deal.grr"])

	top, ok := table.MostSensitive()
	require.True(t, ok)
	assert.InDelta(t, 0.75*1433250/989937.5, top.Sensitivity, 1e-6)
}

func TestSensitivity_AllMetrics(t *testing.T) {
	tables := Sensitivity(testInputs(), 10)
	assert.Len(t, tables, len(Compute(testInputs(), DefaultWorkingDays, nil).Flatten()))
	for i := 1; i < len(tables); i++ {
		assert.Less(t, tables[i-1].Metric, tables[i].Metric)
	}
}
