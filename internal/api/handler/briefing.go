package handler

import (
	"errors"
	"net/http"

	"github.com/osintlabs/threatlens/internal/ai"
	"github.com/osintlabs/threatlens/internal/api/response"
	"github.com/osintlabs/threatlens/internal/store"
)

// NewBriefingHandler returns an http.HandlerFunc for
// POST /api/v1/threats/{threatID}/briefing.
//
// Generation failures surface to the caller; this path never substitutes
// fallback text the way enrichment does.
func NewBriefingHandler(svc ThreatService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := threatID(w, r)
		if !ok {
			return
		}

		briefing, err := svc.GenerateBriefing(r.Context(), id)
		if err != nil {
			writeGenerationError(w, err, "briefing")
			return
		}

		response.JSON(w, briefingResponse{Briefing: briefing})
	}
}

type briefingResponse struct {
	Briefing string `json:"briefing"`
}

// writeGenerationError maps derived-content failures onto the API error
// contract, shared by the briefing and quiz handlers.
func writeGenerationError(w http.ResponseWriter, err error, kind string) {
	var parseErr *ai.ParseError
	switch {
	case errors.Is(err, store.ErrNotFound):
		response.Error(w, http.StatusNotFound, "NOT_FOUND", "Threat not found", nil)
	case errors.Is(err, ai.ErrNotConfigured):
		response.Error(w, http.StatusServiceUnavailable, "AI_NOT_CONFIGURED",
			"AI model is not configured", nil)
	case errors.As(err, &parseErr):
		response.Error(w, http.StatusBadGateway, "AI_INVALID_RESPONSE",
			"The AI engine returned a malformed "+kind+" response",
			map[string]string{"cause": parseErr.Cause.Error()})
	case errors.Is(err, ai.ErrGenerateFailed):
		response.Error(w, http.StatusBadGateway, "AI_ENGINE_ERROR",
			"Failed to generate "+kind, nil)
	default:
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
			"An unexpected error occurred", nil)
	}
}
