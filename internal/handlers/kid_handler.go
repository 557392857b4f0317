package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"gugudan/internal/models"
	"gugudan/internal/repository"
	"gugudan/internal/service"
)

// KidHandler serves the read-only screens of the app
type KidHandler struct {
	home     *service.HomeService
	settings *service.SettingsService
	rewards  *service.RewardService
	results  *repository.ResultRepository
}

// NewKidHandler creates a new kid handler
func NewKidHandler(home *service.HomeService, settings *service.SettingsService, rewards *service.RewardService, results *repository.ResultRepository) *KidHandler {
	return &KidHandler{
		home:     home,
		settings: settings,
		rewards:  rewards,
		results:  results,
	}
}

// Home returns today's totals and what the home screen shows
func (h *KidHandler) Home(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.home.Summary(r.Context()))
}

// Learn returns the multiplication table for one dan
func (h *KidHandler) Learn(w http.ResponseWriter, r *http.Request) {
	dan, err := strconv.Atoi(r.PathValue("dan"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidDan, "", nil)
		return
	}

	table, err := service.BuildLearnTable(dan, h.settings.Get())
	if errors.Is(err, service.ErrInvalidDan) {
		respondWithError(w, http.StatusBadRequest, ErrInvalidDan, "", nil)
		return
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to build learn table", err)
		return
	}
	respondJSON(w, http.StatusOK, table)
}

// LastResult returns the most recent finished quiz
func (h *KidHandler) LastResult(w http.ResponseWriter, r *http.Request) {
	result, ok := h.results.Last(r.Context())
	if !ok {
		respondWithError(w, http.StatusNotFound, ErrNoResult, "", nil)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Results returns the result history, newest first
func (h *KidHandler) Results(w http.ResponseWriter, r *http.Request) {
	results := h.results.Recent(r.Context())
	if results == nil {
		results = []models.Result{}
	}
	respondJSON(w, http.StatusOK, results)
}

// Collection returns every badge with its unlock time
func (h *KidHandler) Collection(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.rewards.Collection(r.Context()))
}

// Settings returns the current settings
func (h *KidHandler) Settings(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.settings.Get())
}
