package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	mw "github.com/osintlabs/threatlens/internal/api/middleware"
	"github.com/osintlabs/threatlens/internal/api/response"
)

// Dependencies holds all handler and middleware dependencies for the router.
type Dependencies struct {
	RateLimit *mw.RateLimit

	HealthHandler          http.HandlerFunc
	CreateThreatHandler    http.HandlerFunc
	ListThreatsHandler     http.HandlerFunc
	ListPrioritizedHandler http.HandlerFunc
	GetThreatHandler       http.HandlerFunc
	BriefingHandler        http.HandlerFunc
	QuizHandler            http.HandlerFunc
}

// NewRouter builds the Chi router with middleware stack and all routes.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.RequestID)
	r.Use(mw.Logger)
	r.Use(mw.Recovery)

	r.Get("/api/v1/health", orNotImplemented(deps.HealthHandler))

	r.Group(func(r chi.Router) {
		if deps.RateLimit != nil {
			r.Use(deps.RateLimit.Limit)
		}

		r.Post("/api/v1/threats", orNotImplemented(deps.CreateThreatHandler))
		r.Get("/api/v1/threats", orNotImplemented(deps.ListThreatsHandler))
		r.Get("/api/v1/threats/prioritized", orNotImplemented(deps.ListPrioritizedHandler))
		r.Get("/api/v1/threats/{threatID}", orNotImplemented(deps.GetThreatHandler))

		r.Post("/api/v1/threats/{threatID}/briefing", orNotImplemented(deps.BriefingHandler))
		r.Post("/api/v1/threats/{threatID}/quiz", orNotImplemented(deps.QuizHandler))
	})

	return r
}

// orNotImplemented returns the handler if non-nil, or a 501 placeholder.
func orNotImplemented(h http.HandlerFunc) http.HandlerFunc {
	if h != nil {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotImplemented, "NOT_IMPLEMENTED", "Endpoint not yet implemented", nil)
	}
}
