package handlers

import (
	"errors"
	"net/http"

	"gugudan/internal/models"
	"gugudan/internal/service"
)

// QuizHandler handles quiz play
type QuizHandler struct {
	quiz *service.QuizService
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(quiz *service.QuizService) *QuizHandler {
	return &QuizHandler{quiz: quiz}
}

// PendingQuiz summarizes a stored quiz that can be resumed
type PendingQuiz struct {
	Dan       int         `json:"dan"`
	Mode      models.Mode `json:"mode"`
	Index     int         `json:"index"`
	Total     int         `json:"total"`
	Correct   int         `json:"correct"`
	StartedAt int64       `json:"startedAt"`
}

// QuizStatus is the response of GET /api/quiz
type QuizStatus struct {
	Current *service.QuizState `json:"current,omitempty"`
	Pending *PendingQuiz       `json:"pending,omitempty"`
}

type startRequest struct {
	Dan  *int        `json:"dan"`
	Mode models.Mode `json:"mode"`
}

type pickRequest struct {
	Value *int `json:"value"`
}

// Status returns the running quiz and, when none is in progress, the
// resumable snapshot
func (h *QuizHandler) Status(w http.ResponseWriter, r *http.Request) {
	var status QuizStatus
	if state, ok := h.quiz.Current(); ok {
		status.Current = &state
	}
	if session, ok := h.quiz.Pending(r.Context()); ok {
		status.Pending = &PendingQuiz{
			Dan:       session.Dan,
			Mode:      session.Mode,
			Index:     session.Index,
			Total:     session.Total,
			Correct:   session.Correct,
			StartedAt: session.StartedAt,
		}
	}
	respondJSON(w, http.StatusOK, status)
}

// Start begins a new quiz
func (h *QuizHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", nil)
		return
	}
	if req.Dan == nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidDan, "", nil)
		return
	}

	outcome, err := h.quiz.Start(r.Context(), *req.Dan, req.Mode)
	if err != nil {
		respondQuizError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, outcome)
}

// Resume continues the stored quiz
func (h *QuizHandler) Resume(w http.ResponseWriter, r *http.Request) {
	state, err := h.quiz.Resume(r.Context())
	if err != nil {
		respondQuizError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

// Discard throws the stored quiz away
func (h *QuizHandler) Discard(w http.ResponseWriter, r *http.Request) {
	h.quiz.Discard(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// Pick answers the current question
func (h *QuizHandler) Pick(w http.ResponseWriter, r *http.Request) {
	var req pickRequest
	if err := decodeJSON(w, r, &req); err != nil || req.Value == nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", nil)
		return
	}

	outcome, err := h.quiz.Pick(r.Context(), *req.Value)
	if err != nil {
		respondQuizError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, outcome)
}

// Next moves to the following question or finishes the quiz
func (h *QuizHandler) Next(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.quiz.Next(r.Context())
	if err != nil {
		respondQuizError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, outcome)
}

// respondQuizError maps quiz errors to client errors. Quiz play never
// answers with a 5xx.
func respondQuizError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidDan):
		respondWithError(w, http.StatusBadRequest, ErrInvalidDan, "", nil)
	case errors.Is(err, service.ErrInvalidMode):
		respondWithError(w, http.StatusBadRequest, ErrInvalidMode, "", nil)
	case errors.Is(err, service.ErrNoActiveQuiz):
		respondWithError(w, http.StatusNotFound, ErrNoQuiz, "", nil)
	case errors.Is(err, service.ErrNotAnswered):
		respondWithError(w, http.StatusConflict, ErrAnswerFirst, "", nil)
	default:
		respondWithError(w, http.StatusUnprocessableEntity, err.Error(), "Quiz request failed", err)
	}
}
