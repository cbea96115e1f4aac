package domain

import (
	"fmt"
	"strings"
)

// Stage is a funnel stage that a reverse calculation can target.
type Stage string

const (
	StageLeads    Stage = "leads"
	StageContacts Stage = "contacts"
	StageMeetings Stage = "meetings" // meetings held
	StageSales    Stage = "sales"
)

// IsValid checks if the stage is a valid value.
func (s Stage) IsValid() bool {
	switch s {
	case StageLeads, StageContacts, StageMeetings, StageSales:
		return true
	}
	return false
}

// ParseStage converts raw input into a Stage. Matching is case-insensitive.
func ParseStage(s string) (Stage, error) {
	st := Stage(strings.ToLower(strings.TrimSpace(s)))
	if !st.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStage, s)
	}
	return st, nil
}
