package commission

import "revops-engine/internal/domain"

// CalculateOTERequirements inverts the commission formula: given a variable
// earnings target, how many deals must close per year, month and week.
// A zero commission percentage or zero per-deal base yields zero quotas.
func CalculateOTERequirements(targetVariable, commissionPct, commissionBasePerDeal float64) domain.OTERequirements {
	revenueNeeded := domain.SafeDiv(targetVariable, commissionPct/100)
	annualDeals := domain.SafeDiv(revenueNeeded, commissionBasePerDeal)

	return domain.OTERequirements{
		TargetVariable:          targetVariable,
		CommissionPct:           commissionPct,
		CommissionBasePerDeal:   commissionBasePerDeal,
		CommissionRevenueNeeded: revenueNeeded,
		AnnualDeals:             annualDeals,
		MonthlyDeals:            annualDeals / 12,
		WeeklyDeals:             annualDeals / WeeksPerYear,
	}
}

// TeamOTERequirements computes quotas for every commissioned role of team
// using the deal's policy-selected commission base.
func TeamOTERequirements(team domain.TeamStructure, deal domain.DealEconomics) map[domain.Role]domain.OTERequirements {
	base := deal.CommissionBase()
	out := make(map[domain.Role]domain.OTERequirements, 3)
	for _, role := range []domain.Role{domain.RoleCloser, domain.RoleSetter, domain.RoleManager} {
		comp := team.Compensation(role)
		out[role] = CalculateOTERequirements(comp.Variable, comp.CommissionPct, base)
	}
	return out
}
