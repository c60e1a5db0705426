package ai

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured means no engine credential is present. Enrichment
	// swallows it with sentinel values; briefing/quiz surface it as a
	// service-unavailable condition.
	ErrNotConfigured = errors.New("ai engine not configured")

	// ErrGenerateFailed covers transport and quota errors calling the engine.
	ErrGenerateFailed = errors.New("ai engine call failed")
)

// ParseError reports a response that was not valid or well-shaped JSON where
// JSON was required. It carries the raw engine text for diagnosis.
type ParseError struct {
	Raw   string
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid ai engine response: %v", e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }
