// internal/server/handlers/metrics.go

package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"sovradar/internal/domain/sov"
)

// MetricsHandler handles share-of-voice HTTP requests
type MetricsHandler struct {
	service sov.Service
}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler(service sov.Service) *MetricsHandler {
	return &MetricsHandler{
		service: service,
	}
}

// GetOverall returns the aggregate metrics document
func (h *MetricsHandler) GetOverall(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Overall(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get overall metrics", err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// GetByKeyword returns the per-keyword metrics document
func (h *MetricsHandler) GetByKeyword(w http.ResponseWriter, r *http.Request) {
	results, err := h.service.ByKeyword(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get per-keyword metrics", err)
		return
	}

	respondWithJSON(w, http.StatusOK, results)
}

// GetRecords returns the raw collected records, optionally filtered by
// the keyword query parameter
func (h *MetricsHandler) GetRecords(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")

	records, err := h.service.Records(r.Context(), keyword)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get records", err)
		return
	}

	respondWithJSON(w, http.StatusOK, records)
}

// GetInsights returns the narrative text generated for the last run
func (h *MetricsHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	text, err := h.service.Insights(r.Context())
	if err != nil {
		if errors.Is(err, sov.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "No insights generated yet", nil)
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to get insights", err)
		}
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"insights": text})
}

// GetFilters returns the filter values driving the dashboard selectors
func (h *MetricsHandler) GetFilters(w http.ResponseWriter, r *http.Request) {
	filters, err := h.service.Filters(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get filters", err)
		return
	}

	respondWithJSON(w, http.StatusOK, filters)
}

// Refresh re-runs collection and aggregation end-to-end. An insight
// failure shows up as a warning on the summary, not as an error status.
func (h *MetricsHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Refresh(r.Context())
	if err != nil {
		respondWithError(w, http.StatusBadGateway, "Refresh failed", err)
		return
	}

	respondWithJSON(w, http.StatusOK, summary)
}

// Helper for JSON responses
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Failed to marshal response"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// Helper for error responses
func respondWithError(w http.ResponseWriter, code int, message string, err error) {
	if err != nil && code >= 500 {
		log.Printf("HTTP %d: %s: %v", code, message, err)
	}

	response := map[string]string{"error": message}

	jsonResponse, _ := json.Marshal(response)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(jsonResponse)
}
