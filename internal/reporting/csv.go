package reporting

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"revops-engine/internal/engine"
	"revops-engine/internal/sensitivity"
)

// WriteChannelsCSV writes one row per channel to w.
func WriteChannelsCSV(w io.Writer, res *engine.Results) error {
	records := [][]string{{
		"channel_id", "channel_name", "cost_method",
		"leads", "contacts", "meetings_scheduled", "meetings_held", "sales",
		"revenue_upfront", "spend", "cost_per_sale", "effective_cpl",
		"roas", "ltv", "cac", "ltv_cac_ratio", "payback_months", "budget_per_lead",
	}}
	for _, c := range res.Channels {
		m := c.Metrics
		records = append(records, []string{
			m.ChannelID, m.ChannelName, c.CostMethod.String(),
			fixed(m.Leads, 6), fixed(m.Contacts, 6), fixed(m.MeetingsScheduled, 6),
			fixed(m.MeetingsHeld, 6), fixed(m.Sales, 6),
			money(m.RevenueUpfront), money(m.Spend), money(m.CostPerSale), money(c.EffectiveCPL),
			fixed(c.ROAS, 6), money(c.UnitEconomics.LTV), money(c.UnitEconomics.CAC),
			fixed(c.LTVCACRatio, 6), fixed(c.UnitEconomics.PaybackMonths, 6), money(c.BudgetPerLead),
		})
	}

	if err := csv.NewWriter(w).WriteAll(records); err != nil {
		return fmt.Errorf("write channels csv: %w", err)
	}
	return nil
}

// WriteSensitivityCSV writes every record of every table to w, in table order.
func WriteSensitivityCSV(w io.Writer, tables []sensitivity.Table) error {
	records := [][]string{{
		"metric", "rank", "input", "base_value", "bumped_value",
		"base_output", "bumped_output", "output_change_pct", "sensitivity", "skipped",
	}}
	for _, t := range tables {
		for i, r := range t.Records {
			records = append(records, []string{
				t.Metric, strconv.Itoa(i + 1), r.Input,
				fixed(r.BaseValue, 6), fixed(r.BumpedValue, 6),
				fixed(r.BaseOutput, 6), fixed(r.BumpedOutput, 6),
				fixed(r.OutputChangePct, 6), fixed(r.Sensitivity, 6), strconv.FormatBool(r.Skipped),
			})
		}
	}

	if err := csv.NewWriter(w).WriteAll(records); err != nil {
		return fmt.Errorf("write sensitivity csv: %w", err)
	}
	return nil
}
