package ai_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osintlabs/threatlens/internal/ai"
	"github.com/osintlabs/threatlens/internal/ai/mock"
)

const enrichmentJSON = `{
	"summary": "Ransomware campaign targeting hospitals.",
	"mitigation": "* Patch now\n* Segment networks\n* Test backups",
	"entities": "LockBit, CVE-2024-1234",
	"priority_score": 9
}`

const quizJSON = `[
	{"question": "Q1", "options": ["A", "B", "C", "D"], "answer": "B", "explanation": "E1"},
	{"question": "Q2", "options": ["A", "B", "C", "D"], "answer": "D", "explanation": "E2"},
	{"question": "Q3", "options": ["A", "B", "C", "D"], "answer": "A", "explanation": "E3"}
]`

// --- Enrich ---

func TestEnrich_ParsesWellFormedResponse(t *testing.T) {
	svc := ai.NewService(mock.NewProvider(enrichmentJSON), time.Minute)

	analysis, err := svc.Enrich(context.Background(), "LockBit returns", "details")
	require.NoError(t, err)

	assert.Equal(t, "Ransomware campaign targeting hospitals.", analysis.Summary)
	assert.Contains(t, analysis.Mitigation, "* Patch now")
	assert.Equal(t, "LockBit, CVE-2024-1234", analysis.Entities)
	assert.Equal(t, 9.0, analysis.PriorityScore)
}

func TestEnrich_StripsCodeFences(t *testing.T) {
	svc := ai.NewService(mock.NewProvider("```json\n"+enrichmentJSON+"\n```"), time.Minute)

	analysis, err := svc.Enrich(context.Background(), "title", "desc")
	require.NoError(t, err)
	assert.Equal(t, 9.0, analysis.PriorityScore)
}

func TestEnrich_MissingKeysDefaultToNA(t *testing.T) {
	svc := ai.NewService(mock.NewProvider(`{"summary": "only a summary"}`), time.Minute)

	analysis, err := svc.Enrich(context.Background(), "title", "desc")
	require.NoError(t, err)

	assert.Equal(t, "only a summary", analysis.Summary)
	assert.Equal(t, "N/A", analysis.Mitigation)
	assert.Equal(t, "N/A", analysis.Entities)
	assert.Equal(t, 0.0, analysis.PriorityScore)
}

func TestEnrich_Unconfigured_ReturnsSentinels(t *testing.T) {
	svc := ai.NewService(nil, time.Minute)

	analysis, err := svc.Enrich(context.Background(), "title", "desc")
	require.ErrorIs(t, err, ai.ErrNotConfigured)

	assert.Equal(t, "AI model is not configured.", analysis.Summary)
	assert.Equal(t, "Not available.", analysis.Mitigation)
	assert.Equal(t, "Not available.", analysis.Entities)
	assert.Equal(t, 0.0, analysis.PriorityScore)
}

func TestEnrich_InvocationFailure_ReturnsSentinels(t *testing.T) {
	svc := ai.NewService(mock.NewFailingProvider(errors.New("quota exceeded")), time.Minute)

	analysis, err := svc.Enrich(context.Background(), "title", "desc")
	require.ErrorIs(t, err, ai.ErrGenerateFailed)

	assert.Equal(t, "Error during AI analysis.", analysis.Summary)
	assert.Equal(t, "Could not be generated.", analysis.Mitigation)
	assert.Equal(t, "Could not be extracted.", analysis.Entities)
	assert.Equal(t, 0.0, analysis.PriorityScore)
}

func TestEnrich_MalformedJSON_ReturnsParseError(t *testing.T) {
	svc := ai.NewService(mock.NewProvider("this is not json"), time.Minute)

	analysis, err := svc.Enrich(context.Background(), "title", "desc")

	var parseErr *ai.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "this is not json", parseErr.Raw)
	assert.Error(t, parseErr.Cause)

	// Adapter still hands back a usable fallback analysis.
	assert.Equal(t, "Error during AI analysis.", analysis.Summary)
	assert.Equal(t, 0.0, analysis.PriorityScore)
}

func TestEnrich_TimeoutCancelsCall(t *testing.T) {
	svc := ai.NewService(mock.NewBlockingProvider(), 50*time.Millisecond)

	start := time.Now()
	_, err := svc.Enrich(context.Background(), "title", "desc")
	require.ErrorIs(t, err, ai.ErrGenerateFailed)
	assert.Less(t, time.Since(start), 5*time.Second)
}

// --- Briefing ---

func TestBriefing_ReturnsTrimmedText(t *testing.T) {
	svc := ai.NewService(mock.NewProvider("\n  Two paragraphs of plain text.  \n"), time.Minute)

	text, err := svc.Briefing(context.Background(), "title", "desc")
	require.NoError(t, err)
	assert.Equal(t, "Two paragraphs of plain text.", text)
}

func TestBriefing_Unconfigured_Fails(t *testing.T) {
	svc := ai.NewService(nil, time.Minute)

	_, err := svc.Briefing(context.Background(), "title", "desc")
	assert.ErrorIs(t, err, ai.ErrNotConfigured)
}

func TestBriefing_InvocationErrorSurfaces(t *testing.T) {
	svc := ai.NewService(mock.NewFailingProvider(errors.New("network down")), time.Minute)

	_, err := svc.Briefing(context.Background(), "title", "desc")
	require.ErrorIs(t, err, ai.ErrGenerateFailed)
	assert.Contains(t, err.Error(), "network down")
}

// --- Quiz ---

func TestQuiz_ParsesWellFormedResponse(t *testing.T) {
	svc := ai.NewService(mock.NewProvider(quizJSON), time.Minute)

	quiz, err := svc.Quiz(context.Background(), "title", "summary", "mitigation")
	require.NoError(t, err)

	require.Len(t, quiz, 3)
	for _, q := range quiz {
		assert.Len(t, q.Options, 4)
		assert.Contains(t, q.Options, q.Answer)
		assert.NotEmpty(t, q.Question)
	}
}

func TestQuiz_StripsCodeFences(t *testing.T) {
	svc := ai.NewService(mock.NewProvider("```json\n"+quizJSON+"\n```"), time.Minute)

	quiz, err := svc.Quiz(context.Background(), "title", "summary", "mitigation")
	require.NoError(t, err)
	assert.Len(t, quiz, 3)
}

func TestQuiz_RejectsMalformedOutput(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{
			name:     "not json",
			response: "sorry, I cannot help with that",
		},
		{
			name:     "wrong question count",
			response: `[{"question": "Q1", "options": ["A","B","C","D"], "answer": "A", "explanation": "E"}]`,
		},
		{
			name: "wrong option count",
			response: `[
				{"question": "Q1", "options": ["A","B","C"], "answer": "A", "explanation": "E"},
				{"question": "Q2", "options": ["A","B","C","D"], "answer": "A", "explanation": "E"},
				{"question": "Q3", "options": ["A","B","C","D"], "answer": "A", "explanation": "E"}
			]`,
		},
		{
			name: "answer not among options",
			response: `[
				{"question": "Q1", "options": ["A","B","C","D"], "answer": "E", "explanation": "E"},
				{"question": "Q2", "options": ["A","B","C","D"], "answer": "A", "explanation": "E"},
				{"question": "Q3", "options": ["A","B","C","D"], "answer": "A", "explanation": "E"}
			]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := ai.NewService(mock.NewProvider(tt.response), time.Minute)

			_, err := svc.Quiz(context.Background(), "title", "summary", "mitigation")

			var parseErr *ai.ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.NotEmpty(t, parseErr.Raw)
		})
	}
}

func TestQuiz_Unconfigured_Fails(t *testing.T) {
	svc := ai.NewService(nil, time.Minute)

	_, err := svc.Quiz(context.Background(), "title", "summary", "mitigation")
	assert.ErrorIs(t, err, ai.ErrNotConfigured)
}

// --- prompt contracts ---

func TestEnrich_PromptCarriesThreatContext(t *testing.T) {
	provider := mock.NewProvider(enrichmentJSON)
	svc := ai.NewService(provider, time.Minute)

	_, err := svc.Enrich(context.Background(), "Zero-day in Exchange", "actively exploited")
	require.NoError(t, err)

	require.Len(t, provider.Prompts, 1)
	assert.Contains(t, provider.Prompts[0], "Zero-day in Exchange")
	assert.Contains(t, provider.Prompts[0], "actively exploited")
	assert.Contains(t, provider.Prompts[0], "priority_score")
}

func TestQuiz_PromptCarriesAnalysisFields(t *testing.T) {
	provider := mock.NewProvider(quizJSON)
	svc := ai.NewService(provider, time.Minute)

	_, err := svc.Quiz(context.Background(), "T", "the summary", "the mitigation")
	require.NoError(t, err)

	require.Len(t, provider.Prompts, 1)
	assert.Contains(t, provider.Prompts[0], "the summary")
	assert.Contains(t, provider.Prompts[0], "the mitigation")
}
