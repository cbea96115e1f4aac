package commission

import "revops-engine/internal/domain"

// CalculatePerPersonEarnings splits each role pool across its headcount.
// One row is returned per role in domain.Roles order. Roles with no headcount
// report zero commission; bench has no pool and only reports base pay.
func CalculatePerPersonEarnings(pools domain.CommissionBreakdown, team domain.TeamStructure, workingDays float64) []domain.PersonEarnings {
	out := make([]domain.PersonEarnings, 0, len(domain.Roles))

	for _, role := range domain.Roles {
		headcount := team.Headcount(role)
		comp := team.Compensation(role)

		e := domain.PersonEarnings{
			Role:      role,
			Headcount: headcount,
		}
		if headcount > 0 {
			e.MonthlyBase = comp.Base / 12
			e.MonthlyCommission = pools.Pool(role) / float64(headcount)
			e.DailyCommission = domain.SafeDiv(e.MonthlyCommission, workingDays)
			e.AnnualCommission = e.MonthlyCommission * 12
			e.OTEAttainmentPct = domain.SafePct(e.AnnualCommission, comp.Variable)
		}
		out = append(out, e)
	}

	return out
}
