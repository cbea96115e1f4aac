package domain

// UnitEconomics relates customer value to acquisition cost.
type UnitEconomics struct {
	LTV           float64 `json:"ltv"`
	CAC           float64 `json:"cac"`
	PaybackMonths float64 `json:"payback_months"` // PaybackSentinel when never
	UpfrontCash   float64 `json:"upfront_cash"`
	DeferredCash  float64 `json:"deferred_cash"`
}

// LTVCACRatio is LTV / CAC (0 when CAC is 0).
func (u UnitEconomics) LTVCACRatio() float64 {
	return SafeDiv(u.LTV, u.CAC)
}

// CommissionBreakdown is the monthly commission owed per role pool.
type CommissionBreakdown struct {
	CloserPool          float64 `json:"closer_pool"`
	SetterPool          float64 `json:"setter_pool"`
	ManagerPool         float64 `json:"manager_pool"`
	TotalCommission     float64 `json:"total_commission"`
	CommissionBase      float64 `json:"commission_base"`       // per-deal base chosen by policy
	TotalCommissionBase float64 `json:"total_commission_base"` // sales × CommissionBase
}

// Pool returns the commission pool of role. Bench has no pool.
func (c CommissionBreakdown) Pool(role Role) float64 {
	switch role {
	case RoleCloser:
		return c.CloserPool
	case RoleSetter:
		return c.SetterPool
	case RoleManager:
		return c.ManagerPool
	}
	return 0
}

// PersonEarnings is what one person in a role earns from commission.
type PersonEarnings struct {
	Role              Role    `json:"role"`
	Headcount         int     `json:"headcount"`
	MonthlyCommission float64 `json:"monthly_commission"`
	DailyCommission   float64 `json:"daily_commission"`
	AnnualCommission  float64 `json:"annual_commission"`
	MonthlyBase       float64 `json:"monthly_base"`
	OTEAttainmentPct  float64 `json:"ote_attainment_pct"` // annual commission / variable target × 100
}

// OTERequirements are the deal quotas needed to earn a variable target.
type OTERequirements struct {
	TargetVariable          float64 `json:"target_variable"`
	CommissionPct           float64 `json:"commission_pct"`
	CommissionBasePerDeal   float64 `json:"commission_base_per_deal"`
	CommissionRevenueNeeded float64 `json:"commission_revenue_needed"`
	AnnualDeals             float64 `json:"annual_deals"`
	MonthlyDeals            float64 `json:"monthly_deals"`
	WeeklyDeals             float64 `json:"weekly_deals"`
}

// PnLStatement is a monthly categorized profit and loss statement.
type PnLStatement struct {
	GrossRevenue float64 `json:"gross_revenue"`
	GovFees      float64 `json:"gov_fees"`
	NetRevenue   float64 `json:"net_revenue"`

	TeamBase    float64 `json:"team_base"` // monthly
	Commissions float64 `json:"commissions"`
	COGS        float64 `json:"cogs"`

	GrossProfit float64 `json:"gross_profit"`
	GrossMargin float64 `json:"gross_margin"` // percent of net revenue

	Marketing float64 `json:"marketing"`
	Opex      float64 `json:"opex"`
	TotalOpex float64 `json:"total_opex"`

	EBITDA       float64 `json:"ebitda"`
	EBITDAMargin float64 `json:"ebitda_margin"` // percent of net revenue
}
