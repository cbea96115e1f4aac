package reporting

import (
	"fmt"
	"strings"
	"time"

	"revops-engine/internal/domain"
	"revops-engine/internal/engine"
	"revops-engine/internal/health"
)

// sensitivityRows is how many inputs each sensitivity table lists.
const sensitivityRows = 5

// RenderMarkdown renders report as Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Revenue Operations Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))

	res := r.Results
	sb.WriteString(RenderResultsMarkdown(res))

	// Sensitivity
	if len(r.Sensitivity) > 0 {
		sb.WriteString(fmt.Sprintf("## Sensitivity (+%s%% per input)\n\n", fixed(r.BumpPct, 0)))
		if len(r.Drivers) > 0 {
			sb.WriteString("| Metric | Top Driver | Sensitivity |\n")
			sb.WriteString("|--------|------------|-------------|\n")
			for _, d := range r.Drivers {
				sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n", d.Metric, d.Input, fixed(d.Sensitivity, 4)))
			}
			sb.WriteString("\n")
		}
		for _, t := range r.Sensitivity {
			sb.WriteString(fmt.Sprintf("### %s\n\n", t.Metric))
			sb.WriteString("| Input | Base | Sensitivity |\n")
			sb.WriteString("|-------|------|-------------|\n")
			for i, rec := range t.Records {
				if i == sensitivityRows {
					break
				}
				sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n", rec.Input, fixed(rec.BaseValue, 4), fixed(rec.Sensitivity, 4)))
			}
			sb.WriteString("\n")
		}
	}

	// Presets
	if len(r.Presets) > 0 {
		sb.WriteString("## Scenario Presets\n\n")
		sb.WriteString("| Scenario | Sales | Revenue | Spend | LTV:CAC | EBITDA | Health |\n")
		sb.WriteString("|----------|-------|---------|-------|---------|--------|--------|\n")
		for _, p := range r.Presets {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s | %s |\n",
				p.ScenarioID, fixed(p.Sales, 2), money(p.Revenue), money(p.Spend),
				fixed(p.LTVCACRatio, 2), money(p.EBITDA), p.Verdict))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// RenderResultsMarkdown renders one calculation pass: headline metrics,
// channels, commissions, quotas, P&L and health.
func RenderResultsMarkdown(res *engine.Results) string {
	var sb strings.Builder

	// Headline
	sb.WriteString("## Headline\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Monthly Sales | %s |\n", fixed(res.GTM.Sales, 2)))
	sb.WriteString(fmt.Sprintf("| Upfront Revenue | %s |\n", money(res.GTM.RevenueUpfront)))
	sb.WriteString(fmt.Sprintf("| Marketing Spend | %s |\n", money(res.GTM.Spend)))
	sb.WriteString(fmt.Sprintf("| CAC | %s |\n", money(res.UnitEconomics.CAC)))
	sb.WriteString(fmt.Sprintf("| LTV | %s |\n", money(res.UnitEconomics.LTV)))
	sb.WriteString(fmt.Sprintf("| LTV:CAC | %s |\n", fixed(res.LTVCACRatio, 2)))
	sb.WriteString(fmt.Sprintf("| Payback (months) | %s |\n", months(res.UnitEconomics.PaybackMonths)))
	sb.WriteString(fmt.Sprintf("| EBITDA | %s |\n", money(res.PnL.EBITDA)))
	sb.WriteString(fmt.Sprintf("| EBITDA Margin | %s%% |\n", fixed(res.PnL.EBITDAMargin, 2)))
	sb.WriteString("\n")

	// Channels
	sb.WriteString("## Channels\n\n")
	if len(res.Channels) > 0 {
		sb.WriteString("| Channel | Method | Leads | Sales | Spend | Cost/Sale | Eff. CPL | ROAS | LTV:CAC |\n")
		sb.WriteString("|---------|--------|-------|-------|-------|-----------|----------|------|---------|\n")
		for _, c := range res.Channels {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
				channelLabel(c), c.CostMethod,
				fixed(c.Metrics.Leads, 0), fixed(c.Metrics.Sales, 2),
				money(c.Metrics.Spend), money(c.Metrics.CostPerSale), effectiveCPLCell(c),
				fixed(c.ROAS, 2), fixed(c.LTVCACRatio, 2)))
		}
	} else {
		sb.WriteString("No channels configured.\n")
	}
	sb.WriteString("\n")

	// Commissions
	sb.WriteString("## Commissions\n\n")
	sb.WriteString(fmt.Sprintf("Commission base per deal: %s\n\n", money(res.Commissions.CommissionBase)))
	sb.WriteString("| Role | Headcount | Monthly | Daily | Annual | OTE Attainment |\n")
	sb.WriteString("|------|-----------|---------|-------|--------|----------------|\n")
	for _, e := range res.Earnings {
		sb.WriteString(fmt.Sprintf("| %s | %d | %s | %s | %s | %s%% |\n",
			e.Role, e.Headcount, money(e.MonthlyCommission), money(e.DailyCommission),
			money(e.AnnualCommission), fixed(e.OTEAttainmentPct, 1)))
	}
	sb.WriteString("\n")

	// Quotas
	if len(res.OTEQuotas) > 0 {
		sb.WriteString("## OTE Quotas\n\n")
		sb.WriteString("| Role | Variable Target | Annual Deals | Monthly Deals | Weekly Deals |\n")
		sb.WriteString("|------|-----------------|--------------|---------------|--------------|\n")
		for _, role := range quotaRoles(res) {
			q := res.OTEQuotas[role]
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
				role, money(q.TargetVariable), fixed(q.AnnualDeals, 2),
				fixed(q.MonthlyDeals, 2), fixed(q.WeeklyDeals, 2)))
		}
		sb.WriteString("\n")
	}

	// P&L
	p := res.PnL
	sb.WriteString("## Monthly P&L\n\n")
	sb.WriteString("| Line | Amount |\n")
	sb.WriteString("|------|--------|\n")
	for _, line := range []struct {
		name string
		v    float64
	}{
		{"Gross Revenue", p.GrossRevenue},
		{"Government Fees", -p.GovFees},
		{"Net Revenue", p.NetRevenue},
		{"Team Base", -p.TeamBase},
		{"Commissions", -p.Commissions},
		{"Gross Profit", p.GrossProfit},
		{"Marketing", -p.Marketing},
		{"Operating Costs", -p.Opex},
		{"EBITDA", p.EBITDA},
	} {
		sb.WriteString(fmt.Sprintf("| %s | %s |\n", line.name, money(line.v)))
	}
	sb.WriteString(fmt.Sprintf("\nGross margin: %s%% | EBITDA margin: %s%%\n\n",
		fixed(p.GrossMargin, 2), fixed(p.EBITDAMargin, 2)))

	if res.Health != nil {
		sb.WriteString(health.RenderMarkdown(res.Health))
	}

	return sb.String()
}

func channelLabel(c engine.ChannelResult) string {
	if c.Metrics.ChannelName != "" {
		return c.Metrics.ChannelName
	}
	return c.Metrics.ChannelID
}

// effectiveCPLCell shows the budget spread per lead for fixed-budget channels,
// which have no effective CPL.
func effectiveCPLCell(c engine.ChannelResult) string {
	if c.CostMethod == domain.CostMethodBudget {
		return money(c.BudgetPerLead) + " (budget)"
	}
	return money(c.EffectiveCPL)
}
