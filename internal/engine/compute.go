package engine

import (
	"revops-engine/internal/commission"
	"revops-engine/internal/domain"
	"revops-engine/internal/gtm"
	"revops-engine/internal/health"
	"revops-engine/internal/pnl"
	"revops-engine/internal/uniteconomics"
)

// DefaultWorkingDays is the number of selling days in a month.
const DefaultWorkingDays = 22.0

// Compute runs the full calculation chain on in without validating it.
// Callers that accept untrusted inputs go through Engine.Calculate instead.
func Compute(in domain.Inputs, workingDays float64, ev *health.Evaluator) *Results {
	if ev == nil {
		ev = health.NewEvaluator()
	}

	perChannel, total := gtm.ComputeAggregate(in.Channels, in.Deal)

	channels := make([]ChannelResult, len(in.Channels))
	for i, ch := range in.Channels {
		m := perChannel[i]
		ue := uniteconomics.Calculate(in.Deal, m.CostPerSale)
		channels[i] = ChannelResult{
			Metrics:       m,
			CostMethod:    ch.CostMethod,
			UnitEconomics: ue,
			LTVCACRatio:   ue.LTVCACRatio(),
			EffectiveCPL:  gtm.EffectiveCPL(ch.CostMethod, ch.Price(), ch.FunnelRates),
			BudgetPerLead: budgetPerLead(ch),
			ROAS:          m.ROAS(),
		}
	}

	blended := uniteconomics.Calculate(in.Deal, total.CostPerSale)
	pools := commission.CalculateTeamPools(total.Sales, in.Team, in.Deal)
	statement := pnl.Calculate(
		total.RevenueUpfront,
		in.Team.TotalBase(),
		pools.TotalCommission,
		total.Spend,
		in.Opex,
		in.Deal.GovernmentCostPct,
	)

	return &Results{
		GTM:           total,
		Channels:      channels,
		UnitEconomics: blended,
		LTVCACRatio:   blended.LTVCACRatio(),
		Commissions:   pools,
		Earnings:      commission.CalculatePerPersonEarnings(pools, in.Team, workingDays),
		OTEQuotas:     commission.TeamOTERequirements(in.Team, in.Deal),
		PnL:           statement,
		Health: ev.Evaluate(health.Input{
			LTVCACRatio:   blended.LTVCACRatio(),
			PaybackMonths: blended.PaybackMonths,
			GrossMargin:   statement.GrossMargin,
			EBITDA:        statement.EBITDA,
			EBITDAMargin:  statement.EBITDAMargin,
		}),
	}
}

// budgetPerLead spreads a fixed monthly budget over the channel's planned
// leads. Zero for channels priced per funnel event.
func budgetPerLead(ch domain.Channel) float64 {
	if ch.CostMethod != domain.CostMethodBudget {
		return 0
	}
	return domain.SafeDiv(ch.Price(), ch.MonthlyLeads)
}
