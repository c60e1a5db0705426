// Package ai owns the prompt and response-parsing contracts with the
// external analysis engine. It builds instructions, sanitizes and validates
// structured output, and classifies failures; the engine round-trip itself
// is behind models.Provider.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/osintlabs/threatlens/pkg/models"
)

// Sentinel field values substituted when analysis is unavailable. They are
// stored as record content, distinct from absent fields.
const (
	summaryUnconfigured = "AI model is not configured."
	fieldUnavailable    = "Not available."

	summaryFailed    = "Error during AI analysis."
	mitigationFailed = "Could not be generated."
	entitiesFailed   = "Could not be extracted."
)

// Service is the analysis engine adapter shared by the enrichment and
// derived-content paths. One instance serves both; do not construct a second
// copy with divergent prompt or parsing logic.
//
// The provider may be nil, which means no credential was configured.
// Service never retries; callers decide fallback behavior.
type Service struct {
	provider models.Provider
	timeout  time.Duration
}

// NewService creates a Service. A nil provider is valid and puts the
// service in unconfigured mode.
func NewService(provider models.Provider, timeout time.Duration) *Service {
	return &Service{provider: provider, timeout: timeout}
}

// Configured reports whether an engine credential is present.
func (s *Service) Configured() bool {
	return s.provider != nil
}

// Provider returns the underlying provider name, or "none".
func (s *Service) Provider() string {
	if s.provider == nil {
		return "none"
	}
	return s.provider.Name()
}

// enrichmentResponse mirrors the JSON object the enrichment prompt demands.
type enrichmentResponse struct {
	Summary       string  `json:"summary"`
	Mitigation    string  `json:"mitigation"`
	Entities      string  `json:"entities"`
	PriorityScore float64 `json:"priority_score"`
}

// Enrich derives summary, mitigation, entities and a priority score for a
// threat item. It ALWAYS returns a usable Analysis: on any failure the
// returned Analysis holds sentinel values and the error describes what went
// wrong. Callers on the ingestion path log the error and persist anyway.
func (s *Service) Enrich(ctx context.Context, title, description string) (models.Analysis, error) {
	if s.provider == nil {
		return models.Analysis{
			Summary:    summaryUnconfigured,
			Mitigation: fieldUnavailable,
			Entities:   fieldUnavailable,
		}, ErrNotConfigured
	}

	raw, err := s.generate(ctx, enrichmentPrompt(title, description))
	if err != nil {
		return failedAnalysis(), err
	}

	cleaned := stripFences(raw)
	var resp enrichmentResponse
	if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
		return failedAnalysis(), &ParseError{Raw: raw, Cause: err}
	}

	// Missing keys default to "N/A"; the zero score stays 0.0.
	if resp.Summary == "" {
		resp.Summary = "N/A"
	}
	if resp.Mitigation == "" {
		resp.Mitigation = "N/A"
	}
	if resp.Entities == "" {
		resp.Entities = "N/A"
	}

	return models.Analysis{
		Summary:       resp.Summary,
		Mitigation:    resp.Mitigation,
		Entities:      resp.Entities,
		PriorityScore: resp.PriorityScore,
	}, nil
}

// Briefing generates a two-paragraph executive briefing as raw text. Unlike
// Enrich, every failure surfaces to the caller; there is no fallback text.
func (s *Service) Briefing(ctx context.Context, title, description string) (string, error) {
	if s.provider == nil {
		return "", ErrNotConfigured
	}

	raw, err := s.generate(ctx, briefingPrompt(title, description))
	if err != nil {
		return "", err
	}
	return stripFences(raw), nil
}

// Quiz generates a three-question multiple-choice quiz from a stored
// record's analysis fields. The response contract is strict: exactly 3
// questions, exactly 4 options each, answer a member of its options. Any
// violation is a *ParseError; no fallback quiz is synthesized.
func (s *Service) Quiz(ctx context.Context, title, summary, mitigation string) ([]models.QuizQuestion, error) {
	if s.provider == nil {
		return nil, ErrNotConfigured
	}

	raw, err := s.generate(ctx, quizPrompt(title, summary, mitigation))
	if err != nil {
		return nil, err
	}

	cleaned := stripFences(raw)
	var quiz []models.QuizQuestion
	if err := json.Unmarshal([]byte(cleaned), &quiz); err != nil {
		return nil, &ParseError{Raw: raw, Cause: err}
	}

	if err := validateQuiz(quiz); err != nil {
		return nil, &ParseError{Raw: raw, Cause: err}
	}

	return quiz, nil
}

// generate performs one blocking engine round-trip bounded by the
// configured inference timeout.
func (s *Service) generate(ctx context.Context, prompt string) (string, error) {
	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	raw, err := s.provider.Generate(callCtx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerateFailed, err)
	}
	return raw, nil
}

func validateQuiz(quiz []models.QuizQuestion) error {
	if len(quiz) != 3 {
		return fmt.Errorf("expected 3 questions, got %d", len(quiz))
	}
	for i, q := range quiz {
		if q.Question == "" {
			return fmt.Errorf("question %d: empty question text", i+1)
		}
		if len(q.Options) != 4 {
			return fmt.Errorf("question %d: expected 4 options, got %d", i+1, len(q.Options))
		}
		found := false
		for _, opt := range q.Options {
			if opt == q.Answer {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("question %d: answer %q is not one of the options", i+1, q.Answer)
		}
	}
	return nil
}

func failedAnalysis() models.Analysis {
	return models.Analysis{
		Summary:    summaryFailed,
		Mitigation: mitigationFailed,
		Entities:   entitiesFailed,
	}
}
