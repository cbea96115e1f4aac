package document

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"revops-engine/internal/commission"
	"revops-engine/internal/domain"
)

// ToInputs converts doc to validated domain inputs.
// Channels without an ID are numbered in document order.
func (doc Document) ToInputs() (domain.Inputs, error) {
	policy, err := domain.ParseCommissionPolicy(doc.DealEconomics.CommissionPolicy)
	if err != nil {
		return domain.Inputs{}, fmt.Errorf("deal economics: %w", err)
	}

	in := domain.Inputs{
		Deal: domain.DealEconomics{
			AvgDealValue:         doc.DealEconomics.AvgDealValue,
			UpfrontPct:           doc.DealEconomics.UpfrontPct,
			ContractLengthMonths: doc.DealEconomics.ContractLengthMonths,
			DeferredTimingMonths: doc.DealEconomics.DeferredTimingMonths,
			CommissionPolicy:     policy,
			GRR:                  doc.DealEconomics.GRR,
			GovernmentCostPct:    doc.DealEconomics.GovernmentCostPct,
		},
		Channels: make([]domain.Channel, 0, len(doc.GTMChannels)),
		Team: domain.TeamStructure{
			Closers:     doc.Team.Closers,
			Setters:     doc.Team.Setters,
			Managers:    doc.Team.Managers,
			Bench:       doc.Team.Bench,
			CloserComp:  doc.Compensation.Closer.toDomain(),
			SetterComp:  doc.Compensation.Setter.toDomain(),
			ManagerComp: doc.Compensation.Manager.toDomain(),
			BenchComp:   doc.Compensation.Bench.toDomain(),
		},
		Opex: domain.OperatingCosts{
			OfficeRent:    doc.OperatingCosts.OfficeRent,
			SoftwareCosts: doc.OperatingCosts.SoftwareCosts,
			OtherOpex:     doc.OperatingCosts.OtherOpex,
		},
	}

	for i, c := range doc.GTMChannels {
		ch, err := c.toDomain(i)
		if err != nil {
			return domain.Inputs{}, err
		}
		in.Channels = append(in.Channels, ch)
	}

	if err := in.Validate(); err != nil {
		return domain.Inputs{}, err
	}
	return in, nil
}

func (c RoleComp) toDomain() domain.RoleCompensation {
	return domain.RoleCompensation{Base: c.Base, Variable: c.Variable, CommissionPct: c.CommissionPct}
}

func (c Channel) toDomain(i int) (domain.Channel, error) {
	id := c.ID
	if id == "" {
		id = fmt.Sprintf("channel-%d", i+1)
	}
	method, err := domain.ParseCostMethod(c.CostMethod)
	if err != nil {
		return domain.Channel{}, fmt.Errorf("channel %q: %w", id, err)
	}

	enabled := true
	if c.Enabled != nil {
		enabled = *c.Enabled
	}

	return domain.Channel{
		ID:      id,
		Name:    c.Name,
		Segment: c.Segment,
		Enabled: enabled,
		FunnelRates: domain.FunnelRates{
			ContactRate: c.ContactRate,
			MeetingRate: c.MeetingRate,
			ShowUpRate:  c.ShowUpRate,
			CloseRate:   c.CloseRate,
		},
		MonthlyLeads:  c.MonthlyLeads,
		CostMethod:    method,
		CPL:           clonePtr(c.CPL),
		CPC:           clonePtr(c.CPC),
		CPM:           clonePtr(c.CPM),
		CPA:           clonePtr(c.CPA),
		MonthlyBudget: clonePtr(c.MonthlyBudget),
	}, nil
}

// FromInputs builds an export document stamped with at.
// OTE quotas are derived from the team and deal and rounded to cents.
func FromInputs(in domain.Inputs, at time.Time) Document {
	doc := Document{
		DealEconomics: Deal{
			AvgDealValue:         in.Deal.AvgDealValue,
			UpfrontPct:           in.Deal.UpfrontPct,
			ContractLengthMonths: in.Deal.ContractLengthMonths,
			DeferredTimingMonths: in.Deal.DeferredTimingMonths,
			CommissionPolicy:     in.Deal.CommissionPolicy.String(),
			GRR:                  in.Deal.GRR,
			GovernmentCostPct:    in.Deal.GovernmentCostPct,
		},
		Team: Team{
			Closers:  in.Team.Closers,
			Setters:  in.Team.Setters,
			Managers: in.Team.Managers,
			Bench:    in.Team.Bench,
		},
		Compensation: Compensation{
			Closer:  fromDomainComp(in.Team.CloserComp),
			Setter:  fromDomainComp(in.Team.SetterComp),
			Manager: fromDomainComp(in.Team.ManagerComp),
			Bench:   fromDomainComp(in.Team.BenchComp),
		},
		OperatingCosts: Opex{
			OfficeRent:    in.Opex.OfficeRent,
			SoftwareCosts: in.Opex.SoftwareCosts,
			OtherOpex:     in.Opex.OtherOpex,
		},
		OTEQuotas:   make(map[string]Quota),
		GTMChannels: make([]Channel, 0, len(in.Channels)),
		Timestamp:   at.UTC().Format(time.RFC3339),
		Version:     Version,
	}

	for role, q := range commission.TeamOTERequirements(in.Team, in.Deal) {
		doc.OTEQuotas[role.String()] = Quota{
			TargetVariable:          round2(q.TargetVariable),
			CommissionRevenueNeeded: round2(q.CommissionRevenueNeeded),
			AnnualDeals:             round2(q.AnnualDeals),
			MonthlyDeals:            round2(q.MonthlyDeals),
			WeeklyDeals:             round2(q.WeeklyDeals),
		}
	}

	for _, ch := range in.Channels {
		doc.GTMChannels = append(doc.GTMChannels, Channel{
			ID:            ch.ID,
			Name:          ch.Name,
			Segment:       ch.Segment,
			Enabled:       boolPtr(ch.Enabled),
			ContactRate:   ch.ContactRate,
			MeetingRate:   ch.MeetingRate,
			ShowUpRate:    ch.ShowUpRate,
			CloseRate:     ch.CloseRate,
			MonthlyLeads:  ch.MonthlyLeads,
			CostMethod:    ch.CostMethod.String(),
			CPL:           clonePtr(ch.CPL),
			CPC:           clonePtr(ch.CPC),
			CPM:           clonePtr(ch.CPM),
			CPA:           clonePtr(ch.CPA),
			MonthlyBudget: clonePtr(ch.MonthlyBudget),
		})
	}

	return doc
}

func fromDomainComp(c domain.RoleCompensation) RoleComp {
	return RoleComp{Base: c.Base, Variable: c.Variable, CommissionPct: c.CommissionPct}
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func clonePtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
