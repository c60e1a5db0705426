// Package threat holds the prioritization and retrieval service plus the
// on-demand briefing and quiz generators.
package threat

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/osintlabs/threatlens/internal/ai"
	"github.com/osintlabs/threatlens/internal/cache"
	"github.com/osintlabs/threatlens/internal/store"
	"github.com/osintlabs/threatlens/pkg/models"
)

const (
	// PrioritizedLimit caps the ranked feed.
	PrioritizedLimit = 20

	// DefaultListLimit applies when a list request sends no limit.
	DefaultListLimit = 100
	maxListLimit     = 500

	prioritizedTTL = 60 * time.Second
)

// Service exposes creation (which triggers enrichment), listing, ranking,
// and the derived-content generators. The cache may be nil; cache failures
// always fall through to the store.
type Service struct {
	store store.Store
	ai    *ai.Service
	cache cache.Cache
}

// NewService creates a Service.
func NewService(st store.Store, aiSvc *ai.Service, ca cache.Cache) *Service {
	return &Service{store: st, ai: aiSvc, cache: ca}
}

// Create enriches the caller-supplied fields and persists the combined
// record. Enrichment failure of any kind is absorbed here: the record is
// stored with sentinel analysis values and a zero score, and the caller
// never sees the engine error. Ingestion must not be blocked by
// analysis-engine outages.
func (s *Service) Create(ctx context.Context, params models.CreateThreatParams) (*models.Threat, error) {
	if params.Title == "" {
		return nil, fmt.Errorf("title is required")
	}

	analysis, err := s.ai.Enrich(ctx, params.Title, params.Description)
	if err != nil {
		slog.Warn("enrichment degraded, storing with fallback analysis",
			"title", params.Title, "error", err)
	}

	created, err := s.store.CreateThreat(ctx, &models.Threat{
		Title:         params.Title,
		Type:          params.Type,
		Severity:      params.Severity,
		Source:        params.Source,
		Description:   params.Description,
		PriorityScore: analysis.PriorityScore,
		AISummary:     analysis.Summary,
		AIMitigation:  analysis.Mitigation,
		AIEntities:    analysis.Entities,
	})
	if err != nil {
		return nil, err
	}

	s.invalidatePrioritized(ctx)
	return created, nil
}

// List returns records in insertion order.
func (s *Service) List(ctx context.Context, offset, limit int) ([]*models.Threat, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.store.ListThreats(ctx, offset, limit)
}

// ListPrioritized returns at most PrioritizedLimit records by descending
// priority score, served through a short-TTL cache when one is configured.
func (s *Service) ListPrioritized(ctx context.Context) ([]*models.Threat, error) {
	if s.cache != nil {
		if data, ok, err := s.cache.Get(ctx, cache.PrioritizedFeedKey()); err == nil && ok {
			var threats []*models.Threat
			if err := json.Unmarshal(data, &threats); err == nil {
				return threats, nil
			}
		}
	}

	threats, err := s.store.ListPrioritized(ctx, PrioritizedLimit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(threats); err == nil {
			_ = s.cache.Set(ctx, cache.PrioritizedFeedKey(), data, prioritizedTTL)
		}
	}
	return threats, nil
}

// Get returns one record or store.ErrNotFound.
func (s *Service) Get(ctx context.Context, id int64) (*models.Threat, error) {
	return s.store.GetThreat(ctx, id)
}

// GenerateBriefing produces an executive briefing for a stored record. It is
// never cached or persisted. Unlike Create, engine failures surface to the
// caller verbatim.
func (s *Service) GenerateBriefing(ctx context.Context, id int64) (string, error) {
	t, err := s.store.GetThreat(ctx, id)
	if err != nil {
		return "", err
	}
	return s.ai.Briefing(ctx, t.Title, t.Description)
}

// GenerateQuiz produces a three-question quiz from a stored record's
// analysis fields. Parse failures surface with their cause attached.
func (s *Service) GenerateQuiz(ctx context.Context, id int64) ([]models.QuizQuestion, error) {
	t, err := s.store.GetThreat(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.ai.Quiz(ctx, t.Title, t.AISummary, t.AIMitigation)
}

func (s *Service) invalidatePrioritized(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.PrioritizedFeedKey()); err != nil {
		slog.Warn("failed to invalidate prioritized cache", "error", err)
	}
}
