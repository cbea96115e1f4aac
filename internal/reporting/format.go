package reporting

import (
	"sort"

	"github.com/shopspring/decimal"

	"revops-engine/internal/domain"
	"revops-engine/internal/engine"
)

// money formats an amount rounded half away from zero to cents.
func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// fixed formats a plain quantity with n decimals.
func fixed(v float64, n int32) string {
	return decimal.NewFromFloat(v).StringFixed(n)
}

// months formats a payback period, spelling out the sentinel.
func months(v float64) string {
	if v >= domain.PaybackSentinel {
		return "never"
	}
	return fixed(v, 1)
}

// quotaRoles lists the roles of res.OTEQuotas in reporting order.
func quotaRoles(res *engine.Results) []domain.Role {
	roles := make([]domain.Role, 0, len(res.OTEQuotas))
	for role := range res.OTEQuotas {
		roles = append(roles, role)
	}
	order := make(map[domain.Role]int, len(domain.Roles))
	for i, r := range domain.Roles {
		order[r] = i
	}
	sort.Slice(roles, func(i, j int) bool { return order[roles[i]] < order[roles[j]] })
	return roles
}
