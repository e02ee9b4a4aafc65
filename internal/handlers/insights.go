package handlers

import (
	"net/http"

	"moneyflow/internal/middleware"
	"moneyflow/internal/services"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) ListInsights(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	limit := parseInt(r.URL.Query().Get("limit"), 20)
	insights, err := h.insights.List(r.Context(), userID, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load insights")
		return
	}
	respondJSON(w, http.StatusOK, insights)
}

func (h *Handler) MarkInsightRead(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	insightID, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid insight id")
		return
	}
	insight, err := h.insights.MarkRead(r.Context(), insightID)
	if err != nil {
		if err == services.ErrInsightNotFound {
			respondError(w, http.StatusNotFound, "insight_not_found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to mark insight")
		return
	}
	respondJSON(w, http.StatusOK, insight)
}

func (h *Handler) UnreadInsightCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	count, err := h.insights.UnreadCount(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to count insights")
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"unread": count})
}

// GenerateInsights runs the advisor for the caller. Generation failures
// degrade to the static fallback inside the service, so this endpoint only
// errors on store problems.
func (h *Handler) GenerateInsights(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	insights, err := h.insights.Generate(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to generate insights")
		return
	}
	respondJSON(w, http.StatusCreated, insights)
}
