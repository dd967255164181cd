package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"wanderlist/internal/domain"
)

// listResponse carries the full ordered snapshot. Every successful mutation
// returns it so clients never need a follow-up read.
type listResponse struct {
	Entries []domain.TripEntry `json:"entries"`
}

// entryResponse is returned when a mutation created one specific entry.
type entryResponse struct {
	Entry   domain.TripEntry   `json:"entry"`
	Entries []domain.TripEntry `json:"entries"`
}

type addRequest struct {
	Name string `json:"name"`
}

// reorderRequest uses pointers so a missing field is distinguishable from
// position zero.
type reorderRequest struct {
	From *int `json:"from"`
	To   *int `json:"to"`
}

// getList handles GET /api/list.
func (s *Server) getList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, listResponse{Entries: s.list.Snapshot()})
}

// addEntry handles POST /api/list/entries.
// Exactly one geocoding match appends the place and returns 201. Several
// matches suspend the add and return 202 with the candidates; the client
// finishes the flow via the selection endpoints.
func (s *Server) addEntry(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "request body must be JSON with a name field")
		return
	}

	outcome, err := s.list.Add(r.Context(), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	if !outcome.Added() {
		writeJSON(w, http.StatusAccepted, selectionResponse{Selection: *outcome.Candidates})
		return
	}

	s.broadcast()
	writeJSON(w, http.StatusCreated, entryResponse{Entry: *outcome.Entry, Entries: s.list.Snapshot()})
}

// deleteEntry handles DELETE /api/list/entries/{index}.
func (s *Server) deleteEntry(w http.ResponseWriter, r *http.Request) {
	index, ok := indexParam(w, r)
	if !ok {
		return
	}

	if err := s.list.Delete(index); err != nil {
		writeError(w, err)
		return
	}

	s.broadcast()
	writeJSON(w, http.StatusOK, listResponse{Entries: s.list.Snapshot()})
}

// reorderEntries handles POST /api/list/reorder.
func (s *Server) reorderEntries(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "request body must be JSON with from and to fields")
		return
	}
	if req.From == nil || req.To == nil {
		requestError(w, "from and to are required")
		return
	}

	if err := s.list.Reorder(*req.From, *req.To); err != nil {
		writeError(w, err)
		return
	}

	s.broadcast()
	writeJSON(w, http.StatusOK, listResponse{Entries: s.list.Snapshot()})
}

// toggleVisited handles POST /api/list/entries/{index}/toggle.
// Marking a place visited also moves it to the end of the list; the
// returned snapshot reflects the new order.
func (s *Server) toggleVisited(w http.ResponseWriter, r *http.Request) {
	index, ok := indexParam(w, r)
	if !ok {
		return
	}

	if err := s.list.ToggleVisited(index); err != nil {
		writeError(w, err)
		return
	}

	s.broadcast()
	writeJSON(w, http.StatusOK, listResponse{Entries: s.list.Snapshot()})
}

// clearList handles DELETE /api/list. Asking the user "are you sure" is the
// client's job; this endpoint clears unconditionally.
func (s *Server) clearList(w http.ResponseWriter, r *http.Request) {
	s.list.ClearAll()
	s.broadcast()
	writeJSON(w, http.StatusOK, listResponse{Entries: s.list.Snapshot()})
}

// refreshWeather handles POST /api/list/weather/refresh.
// Per-entry fetch failures degrade those entries to unavailable, so the
// refresh itself succeeds unless the request is cancelled mid-flight.
func (s *Server) refreshWeather(w http.ResponseWriter, r *http.Request) {
	if err := s.list.RefreshWeather(r.Context()); err != nil {
		writeError(w, err)
		return
	}

	s.broadcast()
	writeJSON(w, http.StatusOK, listResponse{Entries: s.list.Snapshot()})
}

// indexParam parses the {index} URL parameter. Non-numeric input is a 422;
// whether the number is in range is the engine's call.
func indexParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "index")
	index, err := strconv.Atoi(raw)
	if err != nil {
		requestError(w, fmt.Sprintf("index %q is not a number", raw))
		return 0, false
	}
	return index, true
}
