package uniteconomics

import (
	"math"
	"testing"

	"revops-engine/internal/domain"
)

func exampleDeal() domain.DealEconomics {
	return domain.DealEconomics{
		AvgDealValue:         50000,
		UpfrontPct:           70,
		ContractLengthMonths: 12,
		DeferredTimingMonths: 6,
		CommissionPolicy:     domain.CommissionPolicyUpfront,
		GRR:                  0.90,
	}
}

func TestCalculate_Example(t *testing.T) {
	ue := Calculate(exampleDeal(), 5000)

	if ue.UpfrontCash != 35000 {
		t.Errorf("expected upfront 35000, got %f", ue.UpfrontCash)
	}
	if ue.DeferredCash != 15000 {
		t.Errorf("expected deferred 15000, got %f", ue.DeferredCash)
	}
	// 35000 + 15000 × 0.90 = 48500
	if math.Abs(ue.LTV-48500) > 1e-9 {
		t.Errorf("expected LTV 48500, got %f", ue.LTV)
	}
	if ue.CAC != 5000 {
		t.Errorf("expected CAC passthrough 5000, got %f", ue.CAC)
	}
	// 5000 / (35000 / 12) = 1.714...
	if math.Abs(ue.PaybackMonths-5000/(35000.0/12)) > 1e-9 {
		t.Errorf("unexpected payback %f", ue.PaybackMonths)
	}
	if math.Abs(ue.LTVCACRatio()-9.7) > 1e-9 {
		t.Errorf("expected LTV:CAC 9.7, got %f", ue.LTVCACRatio())
	}
}

func TestCalculate_NoUpfrontCash(t *testing.T) {
	deal := exampleDeal()
	deal.UpfrontPct = 0

	ue := Calculate(deal, 5000)

	if ue.PaybackMonths != domain.PaybackSentinel {
		t.Errorf("expected payback sentinel %f, got %f", domain.PaybackSentinel, ue.PaybackMonths)
	}
	// Only retained deferred cash counts.
	if math.Abs(ue.LTV-45000) > 1e-9 {
		t.Errorf("expected LTV 45000, got %f", ue.LTV)
	}
}

func TestCalculate_ZeroCAC(t *testing.T) {
	ue := Calculate(exampleDeal(), 0)

	if ue.PaybackMonths != 0 {
		t.Errorf("expected zero payback, got %f", ue.PaybackMonths)
	}
	if ue.LTVCACRatio() != 0 {
		t.Errorf("expected LTV:CAC 0 for zero CAC, got %f", ue.LTVCACRatio())
	}
}

func TestCalculate_FullRetentionEqualsDealValue(t *testing.T) {
	deal := exampleDeal()
	deal.GRR = 1

	ue := Calculate(deal, 1000)
	if math.Abs(ue.LTV-deal.AvgDealValue) > 1e-9 {
		t.Errorf("expected LTV %f with full retention, got %f", deal.AvgDealValue, ue.LTV)
	}
}
