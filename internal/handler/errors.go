package handler

import (
	"errors"
	"net/http"

	"github.com/ScottNealon/ArtifactScouter_Go/internal/domain"
)

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."

	ErrMsgInvalidArtifactError = "Artifact description is invalid"
	ErrMsgInvalidScoringError  = "Scoring configuration is invalid"
	ErrMsgRollHistoryError     = "Substat roll history does not match any roll combination"
	ErrMsgNoDataError          = "No game data for the requested combination"
	ErrMsgProfileNotFoundErr   = "Scoring profile not found"
	ErrMsgCharacterNotFound    = "Character not found"
)

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and
// messages a caller can act on. Internal invariant violations surface as 500s
// without detail.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrInvalidArtifact):
		return http.StatusBadRequest, ErrMsgInvalidArtifactError
	case errors.Is(err, domain.ErrInvalidScoring):
		return http.StatusBadRequest, ErrMsgInvalidScoringError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestError
	case errors.Is(err, domain.ErrRollHistory):
		return http.StatusUnprocessableEntity, ErrMsgRollHistoryError
	case errors.Is(err, domain.ErrNoData):
		return http.StatusNotFound, ErrMsgNoDataError
	case errors.Is(err, domain.ErrMassInvariant):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// errorReason labels an error for the evaluation error counter.
func errorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidArtifact):
		return "invalid_artifact"
	case errors.Is(err, domain.ErrInvalidScoring):
		return "invalid_scoring"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrRollHistory):
		return "roll_history"
	case errors.Is(err, domain.ErrNoData):
		return "no_data"
	case errors.Is(err, domain.ErrMassInvariant):
		return "mass_invariant"
	default:
		return "internal"
	}
}
