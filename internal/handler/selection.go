package handler

import (
	"encoding/json"
	"net/http"

	"wanderlist/internal/domain"
)

// selectRequest picks one candidate from the pending selection by position.
// A pointer so that a missing field is distinguishable from choice zero.
type selectRequest struct {
	Choice *int `json:"choice"`
}

type selectionResponse struct {
	Selection domain.CandidateSet `json:"selection"`
}

// getSelection handles GET /api/list/selection.
// The pending selection is a resource that only exists while an add is
// suspended, so "nothing pending" is a plain 404.
func (s *Server) getSelection(w http.ResponseWriter, r *http.Request) {
	pending, ok := s.list.PendingSelection()
	if !ok {
		writeJSON(w, http.StatusNotFound,
			errorResponse{Error: errorDetail{Code: "not_found", Message: "no selection pending"}})
		return
	}
	writeJSON(w, http.StatusOK, selectionResponse{Selection: pending})
}

// selectCandidate handles POST /api/list/selection.
// Completing the selection appends the entry the suspended add was for.
func (s *Server) selectCandidate(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "request body must be JSON with a choice field")
		return
	}
	if req.Choice == nil {
		requestError(w, "choice is required")
		return
	}

	entry, err := s.list.Select(r.Context(), *req.Choice)
	if err != nil {
		writeError(w, err)
		return
	}

	s.broadcast()
	writeJSON(w, http.StatusCreated, entryResponse{Entry: entry, Entries: s.list.Snapshot()})
}

// cancelSelection handles DELETE /api/list/selection. Cancelling when
// nothing is pending lands in the same place, so it is not an error.
func (s *Server) cancelSelection(w http.ResponseWriter, r *http.Request) {
	s.list.CancelSelection()
	w.WriteHeader(http.StatusNoContent)
}
