// Package document converts the persisted plan layout to and from domain inputs.
//
// The layout is a flat JSON (or YAML) document with top-level keys
// deal_economics, team, compensation, operating_costs, ote_quotas,
// gtm_channels, timestamp and version. Missing keys fall back to Default.
// ote_quotas is derived on export and ignored on import.
package document

// Version is the layout version written on export.
const Version = "1.0"

// Document is the persisted plan.
type Document struct {
	DealEconomics  Deal             `json:"deal_economics" yaml:"deal_economics"`
	Team           Team             `json:"team" yaml:"team"`
	Compensation   Compensation     `json:"compensation" yaml:"compensation"`
	OperatingCosts Opex             `json:"operating_costs" yaml:"operating_costs"`
	OTEQuotas      map[string]Quota `json:"ote_quotas,omitempty" yaml:"ote_quotas,omitempty"`
	GTMChannels    []Channel        `json:"gtm_channels" yaml:"gtm_channels"`
	Timestamp      string           `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	Version        string           `json:"version,omitempty" yaml:"version,omitempty"`
}

// Deal mirrors domain.DealEconomics with a raw commission policy.
type Deal struct {
	AvgDealValue         float64 `json:"avg_deal_value" yaml:"avg_deal_value"`
	UpfrontPct           float64 `json:"upfront_pct" yaml:"upfront_pct"`
	ContractLengthMonths float64 `json:"contract_length_months" yaml:"contract_length_months"`
	DeferredTimingMonths float64 `json:"deferred_timing_months" yaml:"deferred_timing_months"`
	CommissionPolicy     string  `json:"commission_policy" yaml:"commission_policy"`
	GRR                  float64 `json:"grr" yaml:"grr"`
	GovernmentCostPct    float64 `json:"government_cost_pct" yaml:"government_cost_pct"`
}

// Team holds headcount per role.
type Team struct {
	Closers  int `json:"closers" yaml:"closers"`
	Setters  int `json:"setters" yaml:"setters"`
	Managers int `json:"managers" yaml:"managers"`
	Bench    int `json:"bench" yaml:"bench"`
}

// Compensation holds one pay plan per role.
type Compensation struct {
	Closer  RoleComp `json:"closer" yaml:"closer"`
	Setter  RoleComp `json:"setter" yaml:"setter"`
	Manager RoleComp `json:"manager" yaml:"manager"`
	Bench   RoleComp `json:"bench" yaml:"bench"`
}

// RoleComp is an annual pay plan.
type RoleComp struct {
	Base          float64 `json:"base" yaml:"base"`
	Variable      float64 `json:"variable" yaml:"variable"`
	CommissionPct float64 `json:"commission_pct" yaml:"commission_pct"`
}

// Opex holds monthly operating costs.
type Opex struct {
	OfficeRent    float64 `json:"office_rent" yaml:"office_rent"`
	SoftwareCosts float64 `json:"software_costs" yaml:"software_costs"`
	OtherOpex     float64 `json:"other_opex" yaml:"other_opex"`
}

// Quota is the derived deal quota of one role, rounded to cents.
type Quota struct {
	TargetVariable          float64 `json:"target_variable" yaml:"target_variable"`
	CommissionRevenueNeeded float64 `json:"commission_revenue_needed" yaml:"commission_revenue_needed"`
	AnnualDeals             float64 `json:"annual_deals" yaml:"annual_deals"`
	MonthlyDeals            float64 `json:"monthly_deals" yaml:"monthly_deals"`
	WeeklyDeals             float64 `json:"weekly_deals" yaml:"weekly_deals"`
}

// Channel mirrors domain.Channel with a raw cost method.
// A missing enabled flag means enabled.
type Channel struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Segment       string   `json:"segment,omitempty" yaml:"segment,omitempty"`
	Enabled       *bool    `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	ContactRate   float64  `json:"contact_rate" yaml:"contact_rate"`
	MeetingRate   float64  `json:"meeting_rate" yaml:"meeting_rate"`
	ShowUpRate    float64  `json:"show_up_rate" yaml:"show_up_rate"`
	CloseRate     float64  `json:"close_rate" yaml:"close_rate"`
	MonthlyLeads  float64  `json:"monthly_leads" yaml:"monthly_leads"`
	CostMethod    string   `json:"cost_method" yaml:"cost_method"`
	CPL           *float64 `json:"cpl,omitempty" yaml:"cpl,omitempty"`
	CPC           *float64 `json:"cpc,omitempty" yaml:"cpc,omitempty"`
	CPM           *float64 `json:"cpm,omitempty" yaml:"cpm,omitempty"`
	CPA           *float64 `json:"cpa,omitempty" yaml:"cpa,omitempty"`
	MonthlyBudget *float64 `json:"monthly_budget,omitempty" yaml:"monthly_budget,omitempty"`
}

// Default returns the documented fallback plan.
func Default() Document {
	return Document{
		DealEconomics: Deal{
			AvgDealValue:         50000,
			UpfrontPct:           70,
			ContractLengthMonths: 12,
			DeferredTimingMonths: 6,
			CommissionPolicy:     "upfront",
			GRR:                  0.90,
			GovernmentCostPct:    10,
		},
		Team: Team{Closers: 2, Setters: 2, Managers: 1},
		Compensation: Compensation{
			Closer:  RoleComp{Base: 60000, Variable: 60000, CommissionPct: 10},
			Setter:  RoleComp{Base: 45000, Variable: 30000, CommissionPct: 3},
			Manager: RoleComp{Base: 90000, Variable: 60000, CommissionPct: 2},
			Bench:   RoleComp{Base: 40000},
		},
		OperatingCosts: Opex{OfficeRent: 5000, SoftwareCosts: 2000, OtherOpex: 3000},
		GTMChannels: []Channel{{
			ID:           "outbound",
			Name:         "Outbound",
			ContactRate:  0.65,
			MeetingRate:  0.30,
			ShowUpRate:   0.70,
			CloseRate:    0.30,
			MonthlyLeads: 1000,
			CostMethod:   "CPL",
			CPL:          floatPtr(50),
		}},
		Version: Version,
	}
}

func floatPtr(v float64) *float64 {
	return &v
}

func boolPtr(v bool) *bool {
	return &v
}
