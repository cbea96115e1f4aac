package httpapi

import (
	"errors"
	"net/http"

	"revops-engine/internal/document"
	"revops-engine/internal/domain"
	"revops-engine/internal/scenario"
	"revops-engine/internal/storage"
)

// ErrUnknownMetric is returned when a request names a metric the engine does not produce.
var ErrUnknownMetric = errors.New("unknown metric")

// ErrBadRequest is returned for structurally invalid requests.
var ErrBadRequest = errors.New("bad request")

var validationErrors = []error{
	domain.ErrRateOutOfRange,
	domain.ErrPercentOutOfRange,
	domain.ErrNegativeAmount,
	domain.ErrNonPositive,
	domain.ErrMissingPrice,
	domain.ErrUnknownCostMethod,
	domain.ErrUnknownCommissionPolicy,
	domain.ErrDuplicateChannel,
	domain.ErrUnknownStage,
	ErrUnknownMetric,
}

// statusFor maps an error to an HTTP status.
func statusFor(err error) int {
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return http.StatusUnprocessableEntity
		}
	}
	switch {
	case errors.Is(err, document.ErrMalformed), errors.Is(err, ErrBadRequest), errors.Is(err, storage.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, scenario.ErrUnknownPreset):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

type errorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}
