package commission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revops-engine/internal/domain"
)

func testDeal(policy domain.CommissionPolicy) domain.DealEconomics {
	return domain.DealEconomics{
		AvgDealValue:         50000,
		UpfrontPct:           70,
		ContractLengthMonths: 12,
		DeferredTimingMonths: 6,
		CommissionPolicy:     policy,
		GRR:                  0.9,
	}
}

var (
	closer  = domain.RoleCompensation{Base: 60000, Variable: 60000, CommissionPct: 20}
	setter  = domain.RoleCompensation{Base: 40000, Variable: 24000, CommissionPct: 5}
	manager = domain.RoleCompensation{Base: 90000, Variable: 30000, CommissionPct: 2}
)

func TestCalculatePools_UpfrontExample(t *testing.T) {
	b := CalculatePools(10, closer, setter, manager, testDeal(domain.CommissionPolicyUpfront))

	assert.Equal(t, 35000.0, b.CommissionBase)
	assert.Equal(t, 350000.0, b.TotalCommissionBase)
	assert.InDelta(t, 70000.0, b.CloserPool, 1e-9)
	assert.InDelta(t, 17500.0, b.SetterPool, 1e-9)
	assert.InDelta(t, 7000.0, b.ManagerPool, 1e-9)
	assert.InDelta(t, 94500.0, b.TotalCommission, 1e-9)
}

func TestCalculatePools_FullPolicyUsesDealValue(t *testing.T) {
	b := CalculatePools(10, closer, setter, manager, testDeal(domain.CommissionPolicyFull))

	assert.Equal(t, 50000.0, b.CommissionBase)
	assert.InDelta(t, 100000.0, b.CloserPool, 1e-9)
}

func TestCalculatePools_UpfrontLessThanFull(t *testing.T) {
	for _, pct := range []float64{0, 10, 50, 99.9} {
		up := testDeal(domain.CommissionPolicyUpfront)
		up.UpfrontPct = pct
		full := up
		full.CommissionPolicy = domain.CommissionPolicyFull

		a := CalculatePools(7, closer, setter, manager, up)
		b := CalculatePools(7, closer, setter, manager, full)

		assert.Less(t, a.TotalCommission, b.TotalCommission, "upfront_pct %.1f", pct)
		assert.Equal(t, up.UpfrontCash(), a.CommissionBase)
		assert.Equal(t, full.AvgDealValue, b.CommissionBase)
	}
}

func TestCalculatePools_NoNormalization(t *testing.T) {
	big := domain.RoleCompensation{CommissionPct: 80}
	b := CalculatePools(1, big, big, big, testDeal(domain.CommissionPolicyFull))

	// 240% of the base: pools are independent override structures.
	assert.InDelta(t, 120000.0, b.TotalCommission, 1e-9)
}

func TestCalculatePools_ZeroSales(t *testing.T) {
	b := CalculatePools(0, closer, setter, manager, testDeal(domain.CommissionPolicyUpfront))
	assert.Equal(t, 0.0, b.TotalCommission)
	assert.Equal(t, 35000.0, b.CommissionBase)
}

func TestCalculatePerPersonEarnings(t *testing.T) {
	team := domain.TeamStructure{
		Closers:     2,
		Setters:     0,
		Managers:    1,
		Bench:       1,
		CloserComp:  closer,
		SetterComp:  setter,
		ManagerComp: domain.RoleCompensation{Base: 90000, CommissionPct: 2},
		BenchComp:   domain.RoleCompensation{Base: 36000},
	}
	pools := CalculateTeamPools(10, team, testDeal(domain.CommissionPolicyUpfront))

	rows := CalculatePerPersonEarnings(pools, team, 20)
	require.Len(t, rows, 4)

	c := rows[0]
	assert.Equal(t, domain.RoleCloser, c.Role)
	assert.InDelta(t, 35000.0, c.MonthlyCommission, 1e-9)
	assert.InDelta(t, 1750.0, c.DailyCommission, 1e-9)
	assert.InDelta(t, 420000.0, c.AnnualCommission, 1e-9)
	assert.InDelta(t, 700.0, c.OTEAttainmentPct, 1e-9)
	assert.InDelta(t, 5000.0, c.MonthlyBase, 1e-9)

	s := rows[1]
	assert.Equal(t, domain.RoleSetter, s.Role)
	assert.Equal(t, 0, s.Headcount)
	assert.Equal(t, 0.0, s.MonthlyCommission, "zero headcount must not divide")

	m := rows[2]
	assert.InDelta(t, 7000.0, m.MonthlyCommission, 1e-9)
	assert.Equal(t, 0.0, m.OTEAttainmentPct, "zero variable target")

	b := rows[3]
	assert.Equal(t, domain.RoleBench, b.Role)
	assert.Equal(t, 0.0, b.MonthlyCommission)
	assert.InDelta(t, 3000.0, b.MonthlyBase, 1e-9)
}

func TestCalculatePerPersonEarnings_ZeroWorkingDays(t *testing.T) {
	team := domain.TeamStructure{Closers: 1, CloserComp: closer}
	pools := CalculateTeamPools(1, team, testDeal(domain.CommissionPolicyUpfront))

	rows := CalculatePerPersonEarnings(pools, team, 0)
	assert.Equal(t, 0.0, rows[0].DailyCommission)
	assert.Greater(t, rows[0].MonthlyCommission, 0.0)
}

func TestCalculateOTERequirements(t *testing.T) {
	req := CalculateOTERequirements(60000, 10, 35000)

	assert.InDelta(t, 600000.0, req.CommissionRevenueNeeded, 1e-6)
	assert.InDelta(t, 600000.0/35000, req.AnnualDeals, 1e-9)
	assert.InDelta(t, req.AnnualDeals/12, req.MonthlyDeals, 1e-12)
	assert.InDelta(t, req.AnnualDeals/52, req.WeeklyDeals, 1e-12)
}

func TestCalculateOTERequirements_Degenerate(t *testing.T) {
	assert.Equal(t, 0.0, CalculateOTERequirements(60000, 0, 35000).AnnualDeals)
	assert.Equal(t, 0.0, CalculateOTERequirements(60000, 10, 0).AnnualDeals)
	assert.Equal(t, 0.0, CalculateOTERequirements(0, 10, 35000).AnnualDeals)
}

func TestTeamOTERequirements(t *testing.T) {
	team := domain.TeamStructure{Closers: 1, CloserComp: closer, SetterComp: setter, ManagerComp: manager}
	reqs := TeamOTERequirements(team, testDeal(domain.CommissionPolicyFull))

	require.Len(t, reqs, 3)
	assert.InDelta(t, 60000.0/0.20/50000, reqs[domain.RoleCloser].AnnualDeals, 1e-9)
	_, hasBench := reqs[domain.RoleBench]
	assert.False(t, hasBench)
}
