package handlers

import (
	"net/http"

	"gugudan/internal/security"
)

// Handlers groups everything the router needs
type Handlers struct {
	Kid        *KidHandler
	Quiz       *QuizHandler
	Parent     *ParentHandler
	Middleware *Middleware
	// UnlockLimiter throttles PIN attempts; nil disables it
	UnlockLimiter *security.RateLimiter
}

// Register adds every API route to mux
func (h Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/home", h.Kid.Home)
	mux.HandleFunc("GET /api/learn/{dan}", h.Kid.Learn)
	mux.HandleFunc("GET /api/results/last", h.Kid.LastResult)
	mux.HandleFunc("GET /api/results", h.Kid.Results)
	mux.HandleFunc("GET /api/collection", h.Kid.Collection)
	mux.HandleFunc("GET /api/settings", h.Kid.Settings)

	mux.HandleFunc("GET /api/quiz", h.Quiz.Status)
	mux.HandleFunc("POST /api/quiz/start", h.Quiz.Start)
	mux.HandleFunc("POST /api/quiz/resume", h.Quiz.Resume)
	mux.HandleFunc("POST /api/quiz/discard", h.Quiz.Discard)
	mux.HandleFunc("POST /api/quiz/pick", h.Quiz.Pick)
	mux.HandleFunc("POST /api/quiz/next", h.Quiz.Next)

	unlock := h.Parent.Unlock
	if h.UnlockLimiter != nil {
		unlock = h.UnlockLimiter.Middleware(unlock)
	}
	mux.HandleFunc("POST /api/parents/unlock", unlock)
	mux.HandleFunc("PUT /api/parents/settings", h.Middleware.RequireParent(h.Parent.UpdateSettings))
	mux.HandleFunc("POST /api/parents/reset", h.Middleware.RequireParent(h.Parent.Reset))
	mux.HandleFunc("GET /api/parents/report.xlsx", h.Middleware.RequireParent(h.Parent.Report))

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}
