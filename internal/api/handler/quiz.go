package handler

import (
	"net/http"

	"github.com/osintlabs/threatlens/internal/api/response"
)

// NewQuizHandler returns an http.HandlerFunc for
// POST /api/v1/threats/{threatID}/quiz.
//
// A well-formed response is always exactly three questions with four
// options each; a malformed engine response is a 502, never a partial quiz.
func NewQuizHandler(svc ThreatService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := threatID(w, r)
		if !ok {
			return
		}

		quiz, err := svc.GenerateQuiz(r.Context(), id)
		if err != nil {
			writeGenerationError(w, err, "quiz")
			return
		}

		response.JSON(w, quiz)
	}
}
