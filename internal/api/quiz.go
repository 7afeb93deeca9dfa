package api

import (
	"net/http"

	"github.com/erazemk/garderoba/internal/quiz"
)

// quizSteps handles GET /api/quiz.
func quizSteps(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, quiz.Steps())
}

// quizProfile handles POST /api/quiz/profile.
func quizProfile(w http.ResponseWriter, r *http.Request) {
	var answers quiz.Answers
	if err := decodeJSON(r, &answers); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := quiz.Evaluate(answers)
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, profile)
}
