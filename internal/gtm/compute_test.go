package gtm

import (
	"math"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revops-engine/internal/domain"
)

func testDeal() domain.DealEconomics {
	return domain.DealEconomics{
		AvgDealValue:         50000,
		UpfrontPct:           70,
		ContractLengthMonths: 12,
		DeferredTimingMonths: 6,
		CommissionPolicy:     domain.CommissionPolicyUpfront,
		GRR:                  0.90,
		GovernmentCostPct:    10,
	}
}

func testChannel(id string) domain.Channel {
	return domain.Channel{
		ID:      id,
		Name:    "Channel " + id,
		Enabled: true,
		FunnelRates: domain.FunnelRates{
			ContactRate: 0.65,
			MeetingRate: 0.30,
			ShowUpRate:  0.70,
			CloseRate:   0.30,
		},
		MonthlyLeads: 1000,
		CostMethod:   domain.CostMethodCPL,
		CPL:          domain.Float64Ptr(50),
	}
}

func TestComputeChannelMetrics_CPLExample(t *testing.T) {
	m := ComputeChannelMetrics(testChannel("a"), testDeal())

	assert.InDelta(t, 1000.0, m.Leads, 1e-9)
	assert.InDelta(t, 650.0, m.Contacts, 1e-9)
	assert.InDelta(t, 195.0, m.MeetingsScheduled, 1e-9)
	assert.InDelta(t, 136.5, m.MeetingsHeld, 1e-9)
	assert.InDelta(t, 40.95, m.Sales, 1e-9)
	assert.InDelta(t, 50000.0, m.Spend, 1e-9)
	assert.InDelta(t, 40.95*35000, m.RevenueUpfront, 1e-6)
	assert.InDelta(t, 50000/40.95, m.CostPerSale, 1e-9)
	assert.InDelta(t, 0.30, m.BlendedCloseRate, 1e-9)
	assert.Equal(t, "a", m.ChannelID)
}

func TestComputeChannelMetrics_SpendByMethod(t *testing.T) {
	deal := testDeal()
	base := ComputeChannelMetrics(testChannel("a"), deal)

	tests := []struct {
		method domain.CostMethod
		price  float64
		want   float64
	}{
		{domain.CostMethodCPL, 50, base.Leads * 50},
		{domain.CostMethodCPC, 80, base.Contacts * 80},
		{domain.CostMethodCPM, 300, base.MeetingsHeld * 300},
		{domain.CostMethodCPA, 1200, base.Sales * 1200},
		{domain.CostMethodBudget, 25000, 25000},
	}

	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			ch := testChannel("a")
			ch.CostMethod = tt.method
			ch.SetPrice(tt.price)

			m := ComputeChannelMetrics(ch, deal)
			assert.InDelta(t, tt.want, m.Spend, 1e-6)
		})
	}
}

func TestComputeChannelMetrics_Disabled(t *testing.T) {
	ch := testChannel("off")
	ch.Enabled = false

	m := ComputeChannelMetrics(ch, testDeal())
	assert.Equal(t, domain.GTMMetrics{ChannelID: "off", ChannelName: "Channel off"}, m)
}

func TestComputeChannelMetrics_ZeroSales(t *testing.T) {
	ch := testChannel("a")
	ch.CloseRate = 0

	m := ComputeChannelMetrics(ch, testDeal())
	assert.Equal(t, 0.0, m.Sales)
	assert.Equal(t, 0.0, m.CostPerSale)
	assert.Equal(t, 0.0, m.BlendedCloseRate)
	assert.Equal(t, 50000.0, m.Spend, "spend still incurred at the lead stage")
	assert.False(t, math.IsNaN(m.ROAS()))
}

func TestComputeAggregate_Empty(t *testing.T) {
	per, total := ComputeAggregate(nil, testDeal())
	assert.Empty(t, per)
	assert.Equal(t, domain.GTMMetrics{}, total)
}

func TestComputeAggregate_BlendedRatesFromSums(t *testing.T) {
	a := testChannel("a")
	b := testChannel("b")
	b.MonthlyLeads = 200
	b.CloseRate = 0.10
	b.CostMethod = domain.CostMethodBudget
	b.MonthlyBudget = domain.Float64Ptr(8000)

	per, total := ComputeAggregate([]domain.Channel{a, b}, testDeal())
	require.Len(t, per, 2)

	wantClose := (per[0].Sales + per[1].Sales) / (per[0].MeetingsHeld + per[1].MeetingsHeld)
	meanClose := (per[0].BlendedCloseRate + per[1].BlendedCloseRate) / 2

	assert.InDelta(t, wantClose, total.BlendedCloseRate, 1e-12)
	assert.NotEqual(t, meanClose, total.BlendedCloseRate)
	assert.InDelta(t, (per[0].Spend+per[1].Spend)/(per[0].Sales+per[1].Sales), total.CostPerSale, 1e-9)
	assert.InDelta(t, 58000.0, total.Spend, 1e-9)
}

// funnelFromSeed maps quick-generated integers onto a valid channel.
func funnelFromSeed(leads uint16, c, m, s, cl uint16, method uint8, prices [5]uint16) domain.Channel {
	rate := func(v uint16) float64 { return float64(v) / math.MaxUint16 }
	price := func(v uint16) *float64 { return domain.Float64Ptr(float64(v) + 1) }
	return domain.Channel{
		ID:      "q",
		Enabled: true,
		FunnelRates: domain.FunnelRates{
			ContactRate: rate(c),
			MeetingRate: rate(m),
			ShowUpRate:  rate(s),
			CloseRate:   rate(cl),
		},
		MonthlyLeads:  float64(leads),
		CostMethod:    domain.CostMethods[int(method)%len(domain.CostMethods)],
		CPL:           price(prices[0]),
		CPC:           price(prices[1]),
		CPM:           price(prices[2]),
		CPA:           price(prices[3]),
		MonthlyBudget: price(prices[4]),
	}
}

func TestProperty_MonotonicFunnel(t *testing.T) {
	deal := testDeal()
	f := func(leads, c, m, s, cl uint16, method uint8, prices [5]uint16) bool {
		got := ComputeChannelMetrics(funnelFromSeed(leads, c, m, s, cl, method, prices), deal)
		return got.Leads >= got.Contacts &&
			got.Contacts >= got.MeetingsScheduled &&
			got.MeetingsScheduled >= got.MeetingsHeld &&
			got.MeetingsHeld >= got.Sales &&
			got.Sales >= 0
	}
	require.NoError(t, quick.Check(f, nil))
}

func TestProperty_SpendIgnoresInactivePrices(t *testing.T) {
	deal := testDeal()
	f := func(leads, c, m, s, cl uint16, method uint8, prices, other [5]uint16) bool {
		ch := funnelFromSeed(leads, c, m, s, cl, method, prices)
		alt := funnelFromSeed(leads, c, m, s, cl, method, other)
		alt.SetPrice(ch.Price())

		return ComputeChannelMetrics(ch, deal).Spend == ComputeChannelMetrics(alt, deal).Spend
	}
	require.NoError(t, quick.Check(f, nil))
}

func TestProperty_AggregateIsSumOfChannels(t *testing.T) {
	deal := testDeal()
	f := func(seeds []uint16, enabled []bool) bool {
		channels := make([]domain.Channel, len(seeds))
		for i, s := range seeds {
			ch := funnelFromSeed(s, s/2+1, s/3+1, s/4+1, s/5+1, uint8(i), [5]uint16{s, s, s, s, s})
			ch.Enabled = i >= len(enabled) || enabled[i]
			channels[i] = ch
		}

		per, total := ComputeAggregate(channels, deal)
		var want domain.GTMMetrics
		for i, ch := range channels {
			m := ComputeChannelMetrics(ch, deal)
			if m != per[i] {
				return false
			}
			want.Leads += m.Leads
			want.Contacts += m.Contacts
			want.MeetingsScheduled += m.MeetingsScheduled
			want.MeetingsHeld += m.MeetingsHeld
			want.Sales += m.Sales
			want.RevenueUpfront += m.RevenueUpfront
			want.Spend += m.Spend
		}
		return total.Leads == want.Leads &&
			total.Contacts == want.Contacts &&
			total.MeetingsScheduled == want.MeetingsScheduled &&
			total.MeetingsHeld == want.MeetingsHeld &&
			total.Sales == want.Sales &&
			total.RevenueUpfront == want.RevenueUpfront &&
			total.Spend == want.Spend
	}
	require.NoError(t, quick.Check(f, nil))
}

func TestProperty_DisabledContributesZero(t *testing.T) {
	deal := testDeal()
	f := func(leads, c, m, s, cl uint16, method uint8, prices [5]uint16) bool {
		on := testChannel("on")
		off := funnelFromSeed(leads, c, m, s, cl, method, prices)
		off.ID = "off"
		off.Enabled = false

		_, withOff := ComputeAggregate([]domain.Channel{on, off}, deal)
		_, alone := ComputeAggregate([]domain.Channel{on}, deal)
		return withOff == alone
	}
	require.NoError(t, quick.Check(f, nil))
}
