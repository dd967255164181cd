// Package handler implements the HTTP handlers for the WanderList API.
// All handlers are methods on Server. Methods are split into intent-specific
// files (list.go, selection.go, export.go, updates.go, health.go) but all
// share the same Server struct so they can access its dependencies.
package handler

import (
	"context"

	"github.com/go-chi/chi/v5"

	"wanderlist/internal/domain"
	"wanderlist/internal/engine"
)

// ListEngine defines the wish-list operations the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the real engine or the network.
type ListEngine interface {
	Snapshot() []domain.TripEntry
	Add(ctx context.Context, name string) (engine.AddOutcome, error)
	Select(ctx context.Context, choice int) (domain.TripEntry, error)
	CancelSelection()
	PendingSelection() (domain.CandidateSet, bool)
	Delete(index int) error
	Reorder(from, to int) error
	ToggleVisited(index int) error
	ClearAll()
	RefreshWeather(ctx context.Context) error
}

// Server holds the dependencies for all API endpoints.
// Methods are in intent-specific files but all operate on this struct.
type Server struct {
	list    ListEngine
	updates *UpdatesHub
}

// NewServer constructs the Server with all its dependencies.
// updates may be nil: the websocket endpoint is then not registered and
// mutations skip broadcasting.
func NewServer(list ListEngine, updates *UpdatesHub) *Server {
	return &Server{list: list, updates: updates}
}

// Routes assembles the full API surface on a fresh chi router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.getHealth)
	r.Get("/openapi.yaml", s.getOpenAPI)

	r.Route("/api", func(r chi.Router) {
		r.Route("/list", func(r chi.Router) {
			r.Get("/", s.getList)
			r.Delete("/", s.clearList)

			r.Post("/entries", s.addEntry)
			r.Delete("/entries/{index}", s.deleteEntry)
			r.Post("/entries/{index}/toggle", s.toggleVisited)

			r.Get("/selection", s.getSelection)
			r.Post("/selection", s.selectCandidate)
			r.Delete("/selection", s.cancelSelection)

			r.Post("/reorder", s.reorderEntries)
			r.Post("/weather/refresh", s.refreshWeather)
			r.Get("/export", s.exportList)
		})

		if s.updates != nil {
			r.Get("/updates", s.handleUpdates)
		}
	})

	return r
}

// broadcast pushes the fresh snapshot to live-update subscribers after a
// successful mutation.
func (s *Server) broadcast() {
	if s.updates != nil {
		s.updates.Broadcast(s.list.Snapshot())
	}
}
