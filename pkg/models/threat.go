// Package models contains shared data models used across the ThreatLens codebase.
package models

import "time"

// Threat is a persisted cybersecurity news item enriched with AI analysis.
//
// Title is the deduplication key for ingestion: the ingestor reads all
// existing titles before a cycle and skips feed entries it has already seen.
// There is deliberately no uniqueness constraint at the database level.
//
// Severity is the caller-supplied band and PriorityScore the AI-assigned
// score; the two are independent axes and may disagree (a "Medium" record
// can carry a 9.0 score). Neither is reconciled against the other.
type Threat struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	Severity    string    `json:"severity"`
	Source      string    `json:"source"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`

	// AI-derived fields, set exactly once at creation and never updated.
	// Sentinel text ("Not available.", etc.) is valid content, not absence.
	PriorityScore float64 `json:"priority_score"`
	AISummary     string  `json:"ai_summary"`
	AIMitigation  string  `json:"ai_mitigation"`
	AIEntities    string  `json:"ai_entities"`
}

// CreateThreatParams holds the caller-supplied fields for a new threat.
// The AI-derived fields are filled in by the enrichment step.
type CreateThreatParams struct {
	Title       string `json:"title"`
	Type        string `json:"type"`
	Severity    string `json:"severity"`
	Source      string `json:"source"`
	Description string `json:"description"`
}

// Analysis is the transient structured result of one enrichment call.
// It is folded into a Threat at creation time and discarded.
type Analysis struct {
	Summary       string
	Mitigation    string
	Entities      string
	PriorityScore float64
}

// QuizQuestion is one entry of an on-demand generated quiz. A quiz is
// exactly three questions; each question has exactly four options and the
// answer must equal one of them. Quizzes are never persisted.
type QuizQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
}
