// Package pnl builds the monthly profit and loss statement.
package pnl

import "revops-engine/internal/domain"

// Calculate composes a monthly P&L.
//
//	net revenue  = gross revenue - government fees
//	COGS         = monthly team base + commissions
//	gross profit = net revenue - COGS
//	EBITDA       = gross profit - (marketing + operating costs)
//
// Margins are percentages of net revenue and are 0 when net revenue is 0.
func Calculate(grossRevenue, teamBaseAnnual, commissions, marketingSpend float64, opex domain.OperatingCosts, govCostPct float64) domain.PnLStatement {
	p := domain.PnLStatement{
		GrossRevenue: grossRevenue,
		GovFees:      grossRevenue * govCostPct / 100,
		TeamBase:     teamBaseAnnual / 12,
		Commissions:  commissions,
		Marketing:    marketingSpend,
		Opex:         opex.Total(),
	}

	p.NetRevenue = p.GrossRevenue - p.GovFees
	p.COGS = p.TeamBase + p.Commissions
	p.GrossProfit = p.NetRevenue - p.COGS
	p.GrossMargin = domain.SafePct(p.GrossProfit, p.NetRevenue)

	p.TotalOpex = p.Marketing + p.Opex
	p.EBITDA = p.GrossProfit - p.TotalOpex
	p.EBITDAMargin = domain.SafePct(p.EBITDA, p.NetRevenue)

	return p
}
