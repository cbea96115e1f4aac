package domain

import (
	"fmt"
	"strings"
)

// CostMethod selects the single funnel stage marketing spend is attributed to.
type CostMethod string

const (
	CostMethodCPL    CostMethod = "CPL"    // cost per lead
	CostMethodCPC    CostMethod = "CPC"    // cost per contact
	CostMethodCPM    CostMethod = "CPM"    // cost per meeting held
	CostMethodCPA    CostMethod = "CPA"    // cost per sale
	CostMethodBudget CostMethod = "BUDGET" // fixed monthly budget
)

// CostMethods lists every cost method in a stable order.
var CostMethods = []CostMethod{
	CostMethodCPL,
	CostMethodCPC,
	CostMethodCPM,
	CostMethodCPA,
	CostMethodBudget,
}

// String returns the string representation of CostMethod.
func (m CostMethod) String() string {
	return string(m)
}

// IsValid checks if the cost method is a valid value.
func (m CostMethod) IsValid() bool {
	switch m {
	case CostMethodCPL, CostMethodCPC, CostMethodCPM, CostMethodCPA, CostMethodBudget:
		return true
	}
	return false
}

// ParseCostMethod converts raw configuration into a CostMethod.
// Matching is case-insensitive; unknown values are rejected.
func ParseCostMethod(s string) (CostMethod, error) {
	m := CostMethod(strings.ToUpper(strings.TrimSpace(s)))
	if !m.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCostMethod, s)
	}
	return m, nil
}

// FunnelRates are the four stage-to-stage conversion rates of a channel.
type FunnelRates struct {
	ContactRate float64 `json:"contact_rate"`
	MeetingRate float64 `json:"meeting_rate"`
	ShowUpRate  float64 `json:"show_up_rate"`
	CloseRate   float64 `json:"close_rate"`
}

// LeadToSale is the cumulative conversion from lead to sale.
func (r FunnelRates) LeadToSale() float64 {
	return r.ContactRate * r.MeetingRate * r.ShowUpRate * r.CloseRate
}

// Validate checks every rate is within [0, 1].
func (r FunnelRates) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"contact_rate", r.ContactRate},
		{"meeting_rate", r.MeetingRate},
		{"show_up_rate", r.ShowUpRate},
		{"close_rate", r.CloseRate},
	} {
		if err := checkRate(f.name, f.v); err != nil {
			return err
		}
	}
	return nil
}

// Channel is a named lead source with its own funnel rates and cost structure.
// Exactly one price field is read: the one matching CostMethod.
type Channel struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Segment string `json:"segment"`
	Enabled bool   `json:"enabled"`

	FunnelRates
	MonthlyLeads float64 `json:"monthly_leads"`

	CostMethod    CostMethod `json:"cost_method"`
	CPL           *float64   `json:"cpl,omitempty"`
	CPC           *float64   `json:"cpc,omitempty"`
	CPM           *float64   `json:"cpm,omitempty"`
	CPA           *float64   `json:"cpa,omitempty"`
	MonthlyBudget *float64   `json:"monthly_budget,omitempty"`
}

// Price returns the price field matching CostMethod, or 0 when it is absent.
func (c Channel) Price() float64 {
	var p *float64
	switch c.CostMethod {
	case CostMethodCPL:
		p = c.CPL
	case CostMethodCPC:
		p = c.CPC
	case CostMethodCPM:
		p = c.CPM
	case CostMethodCPA:
		p = c.CPA
	case CostMethodBudget:
		p = c.MonthlyBudget
	}
	if p == nil {
		return 0
	}
	return *p
}

// SetPrice stores v in the price field matching CostMethod.
func (c *Channel) SetPrice(v float64) {
	switch c.CostMethod {
	case CostMethodCPL:
		c.CPL = &v
	case CostMethodCPC:
		c.CPC = &v
	case CostMethodCPM:
		c.CPM = &v
	case CostMethodCPA:
		c.CPA = &v
	case CostMethodBudget:
		c.MonthlyBudget = &v
	}
}

// Clone returns a copy that shares no price pointers with c.
func (c Channel) Clone() Channel {
	out := c
	out.CPL = clonePtr(c.CPL)
	out.CPC = clonePtr(c.CPC)
	out.CPM = clonePtr(c.CPM)
	out.CPA = clonePtr(c.CPA)
	out.MonthlyBudget = clonePtr(c.MonthlyBudget)
	return out
}

// Validate checks rates, lead volume and the active price field.
// Disabled channels still need a valid cost method but may carry zero leads.
func (c Channel) Validate() error {
	if err := c.FunnelRates.Validate(); err != nil {
		return fmt.Errorf("channel %q: %w", c.ID, err)
	}
	if err := checkNonNegative("monthly_leads", c.MonthlyLeads); err != nil {
		return fmt.Errorf("channel %q: %w", c.ID, err)
	}
	if c.Enabled && c.MonthlyLeads == 0 {
		return fmt.Errorf("channel %q: %w: monthly_leads", c.ID, ErrNonPositive)
	}
	if !c.CostMethod.IsValid() {
		return fmt.Errorf("channel %q: %w: %q", c.ID, ErrUnknownCostMethod, c.CostMethod)
	}
	if c.Price() <= 0 {
		return fmt.Errorf("channel %q: %w: %s", c.ID, ErrMissingPrice, c.CostMethod)
	}
	return nil
}

func clonePtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Float64Ptr returns a pointer to v.
func Float64Ptr(v float64) *float64 {
	return &v
}
