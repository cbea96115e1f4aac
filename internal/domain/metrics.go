package domain

// GTMMetrics are the funnel volumes, revenue and spend of one channel or of the
// aggregate over all channels. All values are monthly.
type GTMMetrics struct {
	ChannelID   string `json:"channel_id,omitempty"`
	ChannelName string `json:"channel_name,omitempty"`

	Leads             float64 `json:"leads"`
	Contacts          float64 `json:"contacts"`
	MeetingsScheduled float64 `json:"meetings_scheduled"`
	MeetingsHeld      float64 `json:"meetings_held"`
	Sales             float64 `json:"sales"`

	RevenueUpfront   float64 `json:"revenue_upfront"`
	Spend            float64 `json:"spend"`
	CostPerSale      float64 `json:"cost_per_sale"`      // spend / sales
	BlendedCloseRate float64 `json:"blended_close_rate"` // sales / meetings held
}

// ROAS is upfront revenue per unit of spend (0 when spend is 0).
func (m GTMMetrics) ROAS() float64 {
	return SafeDiv(m.RevenueUpfront, m.Spend)
}

// OverallConversion is sales per lead (0 when leads is 0).
func (m GTMMetrics) OverallConversion() float64 {
	return SafeDiv(m.Sales, m.Leads)
}
