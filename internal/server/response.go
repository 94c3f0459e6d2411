package server

import (
	"errors"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rgehrsitz/kalkulator/internal/breakeven"
	"github.com/rgehrsitz/kalkulator/internal/calculation"
	"github.com/rgehrsitz/kalkulator/internal/config"
	"github.com/rgehrsitz/kalkulator/internal/domain"
)

// Response is the envelope of every API response
type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    interface{}  `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
	Meta    *Meta        `json:"meta,omitempty"`
}

type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// Meta identifies one calculation request
type Meta struct {
	CalculationID uuid.UUID `json:"calculation_id"`
	StartedAt     time.Time `json:"started_at"`
	DurationMs    int64     `json:"duration_ms"`
}

func newMeta(started time.Time) *Meta {
	return &Meta{
		CalculationID: uuid.New(),
		StartedAt:     started.UTC(),
		DurationMs:    time.Since(started).Milliseconds(),
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		fallback := Response{
			Success: false,
			Error: &ErrorDetail{
				Code:    "ENCODING_ERROR",
				Message: "Failed to encode response",
			},
		}
		_ = json.NewEncoder(w).Encode(fallback)
	}
}

// Success responses
func Success(w http.ResponseWriter, data interface{}, meta *Meta) {
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

// Error responses
func BadRequest(w http.ResponseWriter, message string, details map[string]string, meta *Meta) {
	writeJSON(w, http.StatusBadRequest, Response{
		Success: false,
		Error: &ErrorDetail{
			Code:    "BAD_REQUEST",
			Message: message,
			Details: details,
		},
		Meta: meta,
	})
}

func ValidationError(w http.ResponseWriter, details map[string]string, meta *Meta) {
	writeJSON(w, http.StatusUnprocessableEntity, Response{
		Success: false,
		Error: &ErrorDetail{
			Code:    "VALIDATION_ERROR",
			Message: "Validation failed",
			Details: details,
		},
		Meta: meta,
	})
}

func InternalServerError(w http.ResponseWriter, message string, meta *Meta) {
	writeJSON(w, http.StatusInternalServerError, Response{
		Success: false,
		Error: &ErrorDetail{
			Code:    "INTERNAL_SERVER_ERROR",
			Message: message,
		},
		Meta: meta,
	})
}

// HandleError maps calculation and input errors to HTTP responses
func HandleError(w http.ResponseWriter, err error, meta *Meta) {
	var validationErrs config.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap(), meta)
		return
	}

	switch {
	case errors.Is(err, config.ErrMalformedBody):
		BadRequest(w, "Request body must be a JSON object", nil, meta)
	case errors.Is(err, domain.ErrUnknownContract):
		BadRequest(w, err.Error(), map[string]string{"type": "unknown contract type"}, meta)
	case errors.Is(err, domain.ErrUnsupportedYear), errors.Is(err, calculation.ErrUnsupportedRegime):
		BadRequest(w, err.Error(), map[string]string{"year": "unsupported tax year"}, meta)
	case errors.As(err, new(*breakeven.BreakEvenError)):
		BadRequest(w, err.Error(), nil, meta)
	default:
		InternalServerError(w, "An unexpected error occurred", meta)
	}
}
