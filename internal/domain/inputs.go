package domain

import "fmt"

// Inputs bundles everything one calculation pass reads.
type Inputs struct {
	Deal     DealEconomics  `json:"deal_economics"`
	Channels []Channel      `json:"channels"`
	Team     TeamStructure  `json:"team"`
	Opex     OperatingCosts `json:"operating_costs"`
}

// Validate checks every component and rejects duplicate channel IDs.
func (in Inputs) Validate() error {
	if err := in.Deal.Validate(); err != nil {
		return fmt.Errorf("deal economics: %w", err)
	}
	seen := make(map[string]struct{}, len(in.Channels))
	for _, ch := range in.Channels {
		if _, dup := seen[ch.ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateChannel, ch.ID)
		}
		seen[ch.ID] = struct{}{}
		if err := ch.Validate(); err != nil {
			return err
		}
	}
	if err := in.Team.Validate(); err != nil {
		return fmt.Errorf("team: %w", err)
	}
	if err := in.Opex.Validate(); err != nil {
		return fmt.Errorf("operating costs: %w", err)
	}
	return nil
}

// Clone returns a deep copy of in.
func (in Inputs) Clone() Inputs {
	out := in
	if in.Channels != nil {
		out.Channels = make([]Channel, len(in.Channels))
		for i, ch := range in.Channels {
			out.Channels[i] = ch.Clone()
		}
	}
	return out
}
