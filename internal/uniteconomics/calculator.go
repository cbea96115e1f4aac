// Package uniteconomics derives lifetime value, acquisition cost and payback.
package uniteconomics

import "revops-engine/internal/domain"

// Calculate derives unit economics from the deal and a cost per sale.
// The caller decides whether costPerSale is blended or per channel.
//
// LTV haircuts only the deferred cash by GRR; upfront cash is already collected.
// Payback is months of upfront cash needed to recover CAC, or
// domain.PaybackSentinel when there is no upfront cash.
func Calculate(deal domain.DealEconomics, costPerSale float64) domain.UnitEconomics {
	upfront := deal.UpfrontCash()
	deferred := deal.DeferredCash()

	payback := domain.PaybackSentinel
	if upfront > 0 {
		payback = costPerSale / (upfront / 12)
	}

	return domain.UnitEconomics{
		LTV:           upfront + deferred*deal.GRR,
		CAC:           costPerSale,
		PaybackMonths: payback,
		UpfrontCash:   upfront,
		DeferredCash:  deferred,
	}
}
