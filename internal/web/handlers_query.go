package web

import (
	"net/http"
)

// handleConflicts returns the conflict report of a project.
func (s *Server) handleConflicts(w http.ResponseWriter, r *http.Request) {
	report, err := s.service.Conflicts(r.Context(), projectID(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// handleUnavailable returns the slots the act in ?act= cannot start in.
func (s *Server) handleUnavailable(w http.ResponseWriter, r *http.Request) {
	actID := r.URL.Query().Get("act")
	if actID == "" {
		s.respondError(w, r, badRequest{msg: "missing act query parameter"})
		return
	}

	indices, err := s.service.UnavailableSlots(r.Context(), projectID(r), dayParam(r), actID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"indices": indices})
}

// handleSortedActs returns act ids, most constrained first.
func (s *Server) handleSortedActs(w http.ResponseWriter, r *http.Request) {
	ids, err := s.service.SortByAvailability(r.Context(), projectID(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"actIds": ids})
}

// handleSlotTimes returns clock windows for a day's slots.
func (s *Server) handleSlotTimes(w http.ResponseWriter, r *http.Request) {
	times, err := s.service.SlotTimes(r.Context(), projectID(r), dayParam(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"times": times})
}
