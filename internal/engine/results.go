package engine

import (
	"revops-engine/internal/domain"
	"revops-engine/internal/health"
)

// ChannelResult is the funnel output and acquisition economics of one channel.
type ChannelResult struct {
	Metrics       domain.GTMMetrics    `json:"metrics"`
	CostMethod    domain.CostMethod    `json:"cost_method"`
	UnitEconomics domain.UnitEconomics `json:"unit_economics"`
	LTVCACRatio   float64              `json:"ltv_cac_ratio"`
	EffectiveCPL  float64              `json:"effective_cpl"`   // 0 for BUDGET
	BudgetPerLead float64              `json:"budget_per_lead"` // BUDGET only
	ROAS          float64              `json:"roas"`
}

// Results is the full output of one calculation pass.
type Results struct {
	GTM           domain.GTMMetrics                      `json:"gtm"`
	Channels      []ChannelResult                        `json:"channels"`
	UnitEconomics domain.UnitEconomics                   `json:"unit_economics"`
	LTVCACRatio   float64                                `json:"ltv_cac_ratio"`
	Commissions   domain.CommissionBreakdown             `json:"commissions"`
	Earnings      []domain.PersonEarnings                `json:"earnings"`
	OTEQuotas     map[domain.Role]domain.OTERequirements `json:"ote_quotas"`
	PnL           domain.PnLStatement                    `json:"pnl"`
	Health        *health.Result                         `json:"health"`
}

// Clone returns a deep copy of r.
func (r *Results) Clone() *Results {
	if r == nil {
		return nil
	}
	out := *r
	out.Channels = append([]ChannelResult(nil), r.Channels...)
	out.Earnings = append([]domain.PersonEarnings(nil), r.Earnings...)
	if r.OTEQuotas != nil {
		out.OTEQuotas = make(map[domain.Role]domain.OTERequirements, len(r.OTEQuotas))
		for k, v := range r.OTEQuotas {
			out.OTEQuotas[k] = v
		}
	}
	if r.Health != nil {
		h := *r.Health
		h.Criteria = append([]health.CriterionResult(nil), r.Health.Criteria...)
		h.Triggers = append([]health.CriterionResult(nil), r.Health.Triggers...)
		out.Health = &h
	}
	return &out
}

// Headline metric names returned by Flatten.
const (
	MetricLeads        = "gtm.leads"
	MetricSales        = "gtm.sales"
	MetricSpend        = "gtm.spend"
	MetricRevenue      = "gtm.revenue_upfront"
	MetricCostPerSale  = "gtm.cost_per_sale"
	MetricCloseRate    = "gtm.blended_close_rate"
	MetricLTV          = "unit.ltv"
	MetricCAC          = "unit.cac"
	MetricLTVCAC       = "unit.ltv_cac_ratio"
	MetricPayback      = "unit.payback_months"
	MetricCommissions  = "commission.total"
	MetricGrossRevenue = "pnl.gross_revenue"
	MetricNetRevenue   = "pnl.net_revenue"
	MetricGrossProfit  = "pnl.gross_profit"
	MetricGrossMargin  = "pnl.gross_margin"
	MetricEBITDA       = "pnl.ebitda"
	MetricEBITDAMargin = "pnl.ebitda_margin"
)

// Flatten returns the headline metrics keyed by name.
func (r *Results) Flatten() map[string]float64 {
	return map[string]float64{
		MetricLeads:        r.GTM.Leads,
		MetricSales:        r.GTM.Sales,
		MetricSpend:        r.GTM.Spend,
		MetricRevenue:      r.GTM.RevenueUpfront,
		MetricCostPerSale:  r.GTM.CostPerSale,
		MetricCloseRate:    r.GTM.BlendedCloseRate,
		MetricLTV:          r.UnitEconomics.LTV,
		MetricCAC:          r.UnitEconomics.CAC,
		MetricLTVCAC:       r.LTVCACRatio,
		MetricPayback:      r.UnitEconomics.PaybackMonths,
		MetricCommissions:  r.Commissions.TotalCommission,
		MetricGrossRevenue: r.PnL.GrossRevenue,
		MetricNetRevenue:   r.PnL.NetRevenue,
		MetricGrossProfit:  r.PnL.GrossProfit,
		MetricGrossMargin:  r.PnL.GrossMargin,
		MetricEBITDA:       r.PnL.EBITDA,
		MetricEBITDAMargin: r.PnL.EBITDAMargin,
	}
}
