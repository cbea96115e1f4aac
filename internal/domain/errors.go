package domain

import "errors"

// Validation errors. Returned wrapped with field context; match with errors.Is.
var (
	// ErrRateOutOfRange is returned when a conversion rate or retention rate is outside [0, 1].
	ErrRateOutOfRange = errors.New("rate out of range [0, 1]")

	// ErrPercentOutOfRange is returned when a percentage is outside [0, 100].
	ErrPercentOutOfRange = errors.New("percentage out of range [0, 100]")

	// ErrNegativeAmount is returned when a monetary value or count is negative.
	ErrNegativeAmount = errors.New("negative amount")

	// ErrNonPositive is returned when a value that must be strictly positive is not.
	ErrNonPositive = errors.New("value must be positive")

	// ErrMissingPrice is returned when the price field for the selected cost method
	// is absent or not positive.
	ErrMissingPrice = errors.New("missing or non-positive price for cost method")

	// ErrUnknownCostMethod is returned for a cost method outside the closed set.
	ErrUnknownCostMethod = errors.New("unknown cost method")

	// ErrUnknownCommissionPolicy is returned for a commission policy outside the closed set.
	ErrUnknownCommissionPolicy = errors.New("unknown commission policy")

	// ErrDuplicateChannel is returned when two channels share an ID.
	ErrDuplicateChannel = errors.New("duplicate channel id")

	// ErrUnknownStage is returned for a funnel stage outside the closed set.
	ErrUnknownStage = errors.New("unknown funnel stage")
)
