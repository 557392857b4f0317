package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"gugudan/internal/models"
	"gugudan/internal/report"
	"gugudan/internal/repository"
	"gugudan/internal/security"
	"gugudan/internal/service"
)

// ParentHandler handles the PIN-gated parent area
type ParentHandler struct {
	pins     *security.PINChecker
	tokens   *security.ParentTokens
	settings *service.SettingsService
	reset    *service.ResetService
	results  *repository.ResultRepository
	stats    *repository.StatsRepository
	loc      *time.Location
}

// NewParentHandler creates a new parent handler
func NewParentHandler(pins *security.PINChecker, tokens *security.ParentTokens, settings *service.SettingsService, reset *service.ResetService, results *repository.ResultRepository, stats *repository.StatsRepository, loc *time.Location) *ParentHandler {
	if loc == nil {
		loc = time.Local
	}
	return &ParentHandler{
		pins:     pins,
		tokens:   tokens,
		settings: settings,
		reset:    reset,
		results:  results,
		stats:    stats,
		loc:      loc,
	}
}

type unlockRequest struct {
	PIN string `json:"pin"`
}

type unlockResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Unlock trades the parent PIN for a short-lived token
func (h *ParentHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	var req unlockRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", nil)
		return
	}

	if err := h.pins.Check(req.PIN); err != nil {
		log.Printf("Parent unlock rejected from %s", security.GetClientIP(r))
		respondWithError(w, http.StatusUnauthorized, ErrWrongPIN, "", nil)
		return
	}

	token, expires, err := h.tokens.Issue()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to issue parent token", err)
		return
	}
	respondJSON(w, http.StatusOK, unlockResponse{Token: token, ExpiresAt: expires})
}

// UpdateSettings applies the fields present in the body over the current
// settings
func (h *ParentHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	settings := h.settings.Get()
	if err := decodeJSON(w, r, &settings); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", nil)
		return
	}

	if err := h.settings.Update(r.Context(), settings); err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidQuizCount),
			errors.Is(err, models.ErrInvalidMaxRight),
			errors.Is(err, models.ErrInvalidLearnView):
			respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		default:
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to update settings", err)
		}
		return
	}
	respondJSON(w, http.StatusOK, h.settings.Get())
}

// Reset wipes all stored progress
func (h *ParentHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.reset.Reset(r.Context()); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Reset failed, please try again", "Reset failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Report downloads the results and weak facts as a workbook
func (h *ParentHandler) Report(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var buf bytes.Buffer
	if err := report.WriteWorkbook(&buf, h.results.Recent(ctx), h.stats.All(ctx), h.loc); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to build report", err)
		return
	}

	filename := fmt.Sprintf("gugudan-report-%s.xlsx", time.Now().In(h.loc).Format("20060102"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("Failed to write report: %v", err)
	}
}
