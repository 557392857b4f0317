package handlers

import (
	"log"
	"net/http"
	"time"

	"gugudan/internal/security"
)

// Middleware holds dependencies for middleware functions
type Middleware struct {
	tokens *security.ParentTokens
	debug  bool
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(tokens *security.ParentTokens, debug bool) *Middleware {
	return &Middleware{tokens: tokens, debug: debug}
}

// RequireParent is middleware that requires a valid parent token
func (m *Middleware) RequireParent(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := security.BearerToken(r)
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
			return
		}
		if err := m.tokens.Verify(token); err != nil {
			if m.debug {
				log.Printf("[DEBUG] Rejected parent token: %v", err)
			}
			respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
			return
		}
		next(w, r)
	}
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Call next handler
		next.ServeHTTP(w, r)

		// Log request
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
