package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/osintlabs/threatlens/internal/api/response"
	"github.com/osintlabs/threatlens/internal/store"
	"github.com/osintlabs/threatlens/internal/threat"
	"github.com/osintlabs/threatlens/pkg/models"
)

// ThreatService defines the service surface the handlers depend on.
type ThreatService interface {
	Create(ctx context.Context, params models.CreateThreatParams) (*models.Threat, error)
	List(ctx context.Context, offset, limit int) ([]*models.Threat, error)
	ListPrioritized(ctx context.Context) ([]*models.Threat, error)
	Get(ctx context.Context, id int64) (*models.Threat, error)
	GenerateBriefing(ctx context.Context, id int64) (string, error)
	GenerateQuiz(ctx context.Context, id int64) ([]models.QuizQuestion, error)
}

// NewCreateThreatHandler returns an http.HandlerFunc for POST /api/v1/threats.
// Creation always succeeds at the storage step even when enrichment fails;
// the response then carries sentinel analysis fields and a zero score.
func NewCreateThreatHandler(svc ThreatService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateThreatParams
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}

		if req.Title == "" {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "title is required", nil)
			return
		}
		if req.Type == "" {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "type is required", nil)
			return
		}
		if req.Severity == "" {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "severity is required", nil)
			return
		}
		if req.Source == "" {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "source is required", nil)
			return
		}

		created, err := svc.Create(r.Context(), req)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"Failed to create threat", nil)
			return
		}

		response.Created(w, created)
	}
}

// NewListThreatsHandler returns an http.HandlerFunc for GET /api/v1/threats.
func NewListThreatsHandler(svc ThreatService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offset := queryInt(r, "offset", 0)
		limit := queryInt(r, "limit", threat.DefaultListLimit)

		threats, err := svc.List(r.Context(), offset, limit)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"Failed to list threats", nil)
			return
		}
		if threats == nil {
			threats = []*models.Threat{}
		}

		response.Collection(w, threats, response.PaginationMeta{
			Offset: offset,
			Limit:  limit,
			Count:  len(threats),
		})
	}
}

// NewListPrioritizedHandler returns an http.HandlerFunc for
// GET /api/v1/threats/prioritized.
func NewListPrioritizedHandler(svc ThreatService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		threats, err := svc.ListPrioritized(r.Context())
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"Failed to list prioritized threats", nil)
			return
		}
		if threats == nil {
			threats = []*models.Threat{}
		}
		response.JSON(w, threats)
	}
}

// NewGetThreatHandler returns an http.HandlerFunc for GET /api/v1/threats/{threatID}.
func NewGetThreatHandler(svc ThreatService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := threatID(w, r)
		if !ok {
			return
		}

		t, err := svc.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				response.Error(w, http.StatusNotFound, "NOT_FOUND", "Threat not found", nil)
				return
			}
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"Failed to fetch threat", nil)
			return
		}

		response.JSON(w, t)
	}
}

// threatID parses the {threatID} URL parameter, writing a 400 on failure.
func threatID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "threatID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
			"threatID must be a positive integer", nil)
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, key string, defaultVal int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}
