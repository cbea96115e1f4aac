// Package gtm computes go-to-market funnel volumes, revenue and marketing spend.
package gtm

import "revops-engine/internal/domain"

// ComputeChannelMetrics runs one channel through the funnel cascade.
// A disabled channel yields all-zero metrics.
func ComputeChannelMetrics(ch domain.Channel, deal domain.DealEconomics) domain.GTMMetrics {
	m := domain.GTMMetrics{
		ChannelID:   ch.ID,
		ChannelName: ch.Name,
	}
	if !ch.Enabled {
		return m
	}

	m.Leads = ch.MonthlyLeads
	m.Contacts = m.Leads * ch.ContactRate
	m.MeetingsScheduled = m.Contacts * ch.MeetingRate
	m.MeetingsHeld = m.MeetingsScheduled * ch.ShowUpRate
	m.Sales = m.MeetingsHeld * ch.CloseRate

	m.RevenueUpfront = m.Sales * deal.UpfrontCash()
	m.Spend = computeSpend(ch.CostMethod, ch.Price(), m)

	fillDerived(&m)
	return m
}

// ComputeAggregate computes every channel and sums the results field by field.
// Ratios on the total are recomputed from the summed counts, never averaged.
func ComputeAggregate(channels []domain.Channel, deal domain.DealEconomics) ([]domain.GTMMetrics, domain.GTMMetrics) {
	perChannel := make([]domain.GTMMetrics, len(channels))
	var total domain.GTMMetrics

	for i, ch := range channels {
		m := ComputeChannelMetrics(ch, deal)
		perChannel[i] = m

		total.Leads += m.Leads
		total.Contacts += m.Contacts
		total.MeetingsScheduled += m.MeetingsScheduled
		total.MeetingsHeld += m.MeetingsHeld
		total.Sales += m.Sales
		total.RevenueUpfront += m.RevenueUpfront
		total.Spend += m.Spend
	}

	fillDerived(&total)
	return perChannel, total
}

// computeSpend attributes spend to exactly one funnel stage.
// Summing across stages would count the same marketing dollars more than once.
func computeSpend(method domain.CostMethod, price float64, m domain.GTMMetrics) float64 {
	switch method {
	case domain.CostMethodCPL:
		return m.Leads * price
	case domain.CostMethodCPC:
		return m.Contacts * price
	case domain.CostMethodCPM:
		return m.MeetingsHeld * price
	case domain.CostMethodCPA:
		return m.Sales * price
	case domain.CostMethodBudget:
		return price
	default:
		return 0
	}
}

// fillDerived sets CostPerSale and BlendedCloseRate from raw counts.
func fillDerived(m *domain.GTMMetrics) {
	m.CostPerSale = domain.SafeDiv(m.Spend, m.Sales)
	m.BlendedCloseRate = domain.SafeDiv(m.Sales, m.MeetingsHeld)
}
