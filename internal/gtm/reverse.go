package gtm

import "revops-engine/internal/domain"

// ReverseEngineerLeads returns the monthly leads needed to reach target at stage.
// StageMeetings means meetings held. Returns 0 when any rate on the path is 0
// or the stage is unknown.
func ReverseEngineerLeads(target float64, stage domain.Stage, rates domain.FunnelRates) float64 {
	if stage == domain.StageLeads {
		return target
	}
	return domain.SafeDiv(target, cumulativeRate(stage, rates))
}

// cumulativeRate is the product of rates from leads up to stage.
func cumulativeRate(stage domain.Stage, r domain.FunnelRates) float64 {
	switch stage {
	case domain.StageLeads:
		return 1
	case domain.StageContacts:
		return r.ContactRate
	case domain.StageMeetings:
		return r.ContactRate * r.MeetingRate * r.ShowUpRate
	case domain.StageSales:
		return r.LeadToSale()
	default:
		return 0
	}
}

// EffectiveCPL normalizes a price under any cost method to a price per lead,
// for comparing channels. BUDGET has no per-unit price and returns 0.
func EffectiveCPL(method domain.CostMethod, cost float64, rates domain.FunnelRates) float64 {
	switch method {
	case domain.CostMethodCPL:
		return cost
	case domain.CostMethodCPC:
		return cost * cumulativeRate(domain.StageContacts, rates)
	case domain.CostMethodCPM:
		return cost * cumulativeRate(domain.StageMeetings, rates)
	case domain.CostMethodCPA:
		return cost * cumulativeRate(domain.StageSales, rates)
	default:
		return 0
	}
}

// LeadPlan is the volume needed at every stage to hit a monthly sales target.
type LeadPlan struct {
	TargetSales       float64 `json:"target_sales"`
	Leads             float64 `json:"leads"`
	Contacts          float64 `json:"contacts"`
	MeetingsScheduled float64 `json:"meetings_scheduled"`
	MeetingsHeld      float64 `json:"meetings_held"`
}

// PlanLeads walks the funnel backwards from targetSales. Any zero rate on the
// path zeroes every stage above it.
func PlanLeads(targetSales float64, rates domain.FunnelRates) LeadPlan {
	held := domain.SafeDiv(targetSales, rates.CloseRate)
	scheduled := domain.SafeDiv(held, rates.ShowUpRate)
	contacts := domain.SafeDiv(scheduled, rates.MeetingRate)
	leads := domain.SafeDiv(contacts, rates.ContactRate)

	return LeadPlan{
		TargetSales:       targetSales,
		Leads:             leads,
		Contacts:          contacts,
		MeetingsScheduled: scheduled,
		MeetingsHeld:      held,
	}
}
