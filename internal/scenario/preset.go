package scenario

import (
	"errors"
	"fmt"
	"math"

	"revops-engine/internal/domain"
)

// ErrUnknownPreset is returned for a preset name outside domain.ScenarioPresets.
var ErrUnknownPreset = errors.New("unknown scenario preset")

// ApplyPreset returns a copy of in with every channel scaled by p.
// Conversion rates are capped at 1; deal, team and operating costs are unchanged.
func ApplyPreset(in domain.Inputs, p domain.ScenarioPreset) domain.Inputs {
	out := in.Clone()
	for i := range out.Channels {
		ch := &out.Channels[i]
		ch.ContactRate = scaleRate(ch.ContactRate, p.RateMultiplier)
		ch.MeetingRate = scaleRate(ch.MeetingRate, p.RateMultiplier)
		ch.ShowUpRate = scaleRate(ch.ShowUpRate, p.RateMultiplier)
		ch.CloseRate = scaleRate(ch.CloseRate, p.RateMultiplier)
		ch.MonthlyLeads *= p.LeadMultiplier
		if price := ch.Price(); price > 0 {
			ch.SetPrice(price * p.CostMultiplier)
		}
	}
	return out
}

// ApplyPresetByID looks up a preset by ID and applies it.
func ApplyPresetByID(in domain.Inputs, id string) (domain.Inputs, error) {
	p, ok := domain.PresetByID(id)
	if !ok {
		return domain.Inputs{}, fmt.Errorf("%w: %q", ErrUnknownPreset, id)
	}
	return ApplyPreset(in, p), nil
}

func scaleRate(r, mult float64) float64 {
	return math.Min(1, r*mult)
}
