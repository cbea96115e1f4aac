// Package commission computes commission pools, per-person payouts and OTE quotas.
package commission

import "revops-engine/internal/domain"

// WeeksPerYear is used to turn annual quotas into weekly ones.
const WeeksPerYear = 52.0

// CalculatePools computes the monthly commission owed to each role pool.
//
// The per-deal base depends on the deal's commission policy: upfront cash under
// CommissionPolicyUpfront, the full deal value under CommissionPolicyFull.
// Pools are independent; role percentages are not normalized and may sum past 100.
func CalculatePools(salesCount float64, closer, setter, manager domain.RoleCompensation, deal domain.DealEconomics) domain.CommissionBreakdown {
	base := deal.CommissionBase()
	totalBase := salesCount * base

	b := domain.CommissionBreakdown{
		CloserPool:          totalBase * closer.CommissionPct / 100,
		SetterPool:          totalBase * setter.CommissionPct / 100,
		ManagerPool:         totalBase * manager.CommissionPct / 100,
		CommissionBase:      base,
		TotalCommissionBase: totalBase,
	}
	b.TotalCommission = b.CloserPool + b.SetterPool + b.ManagerPool
	return b
}

// CalculateTeamPools is CalculatePools with the pay plans taken from team.
func CalculateTeamPools(salesCount float64, team domain.TeamStructure, deal domain.DealEconomics) domain.CommissionBreakdown {
	return CalculatePools(salesCount, team.CloserComp, team.SetterComp, team.ManagerComp, deal)
}
