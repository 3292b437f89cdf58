package api

import (
	"net/http"
	"strconv"

	"github.com/baxromumarov/offer-sync/internal/archive"
	"github.com/baxromumarov/offer-sync/internal/observability"
)

func (s *Server) handleListOffers(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		respondError(w, http.StatusServiceUnavailable, "offer archive is not configured")
		return
	}

	limit, offset := parsePagination(r, 20)
	offers, err := s.archive.ListOffers(r.Context(), limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch offers: "+err.Error())
		return
	}
	if offers == nil {
		offers = []archive.Offer{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"items":  offers,
		"limit":  limit,
		"offset": offset,
	})
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		respondError(w, http.StatusServiceUnavailable, "offer archive is not configured")
		return
	}

	limit, offset := parsePagination(r, 20)
	runs, err := s.archive.ListRuns(r.Context(), limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch runs: "+err.Error())
		return
	}
	if runs == nil {
		runs = []archive.RunSummary{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"items":  runs,
		"limit":  limit,
		"offset": offset,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, observability.Snapshot())
}

// handleTriggerSync runs a full cycle synchronously. The runner serializes
// cycles internally, so a concurrent scheduled run just makes this wait.
func (s *Server) handleTriggerSync(w http.ResponseWriter, r *http.Request) {
	result, err := s.runner.Sync(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Sync failed: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"run_id":         result.RunID,
		"companies":      len(result.Companies),
		"offers":         len(result.Offers),
		"rows_published": len(result.Table.Rows),
		"duration":       result.Duration.String(),
	})
}

func parsePagination(r *http.Request, defaultLimit int) (int, int) {
	q := r.URL.Query()
	limit := defaultLimit
	offset := 0

	if v := q.Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}

	if v := q.Get("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}

	if limit <= 0 {
		limit = defaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
