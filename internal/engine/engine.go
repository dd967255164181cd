// Package engine owns the wish list: one ordered list of trip entries and
// every operation that may change it. The engine is the single writer; the
// HTTP layer calls into it, the store and the gateways serve it. Positions
// in the list are the external handle for entries, which is why every
// operation here is index-based.
package engine

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"wanderlist/internal/domain"
	"wanderlist/internal/store"
)

// Geocoder resolves a free-text place query into candidates.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". internal/gateway
// provides the production implementation; tests inject a mock.
type Geocoder interface {
	Search(ctx context.Context, query string) ([]domain.Candidate, error)
}

// WeatherProvider fetches the current weather snapshot for a point.
type WeatherProvider interface {
	Current(ctx context.Context, at domain.Coordinates) (*domain.Weather, error)
}

// Engine holds the authoritative in-memory list state.
//
// Two locks serialize access. mu guards the entries slice: every read and
// every structural mutation holds it, so the list is never observed
// mid-mutation. flowMu serializes the add flow (Add, Select,
// CancelSelection) end to end, including its network phase, and guards the
// pending candidate set. Gateway calls never run under mu, so weather
// refreshes and adds can overlap structural edits without blocking them.
type Engine struct {
	mu      sync.Mutex
	entries []domain.TripEntry

	flowMu  sync.Mutex
	pending *domain.CandidateSet

	store    store.Store
	geocoder Geocoder
	weather  WeatherProvider
}

// New restores an engine from the store. Persisted attribute sequences of
// unequal length (the trace of a save torn by a crash) are reconciled by
// truncating to the shortest: the surviving prefix is still a correctly
// aligned list, and only the torn tail is lost.
func New(st store.Store, geocoder Geocoder, weather WeatherProvider) *Engine {
	return &Engine{
		entries:  entriesFromSnapshot(st.Load()),
		store:    st,
		geocoder: geocoder,
		weather:  weather,
	}
}

// Snapshot returns a copy of the list safe to hand to other goroutines.
func (e *Engine) Snapshot() []domain.TripEntry {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]domain.TripEntry, len(e.entries))
	for i, entry := range e.entries {
		out[i] = entry.Clone()
	}
	return out
}

// persist writes the current list through to the store. Persistence is best
// effort: a failed save is logged and the in-memory state stays
// authoritative; it never rolls a mutation back. Callers hold mu.
func (e *Engine) persist() {
	if err := e.store.Save(snapshotOf(e.entries)); err != nil {
		slog.Error("saving wish list failed, keeping in-memory state", "error", err)
	}
}

func snapshotOf(entries []domain.TripEntry) store.Snapshot {
	snap := store.Snapshot{
		Names:       make([]string, len(entries)),
		Coordinates: make([]domain.Coordinates, len(entries)),
		Visited:     make([]bool, len(entries)),
		Weather:     make([]*domain.Weather, len(entries)),
	}
	for i, entry := range entries {
		snap.Names[i] = entry.Name
		snap.Coordinates[i] = entry.Coordinates
		snap.Visited[i] = entry.Visited
		snap.Weather[i] = entry.Weather
	}
	return snap
}

func entriesFromSnapshot(snap store.Snapshot) []domain.TripEntry {
	n := min(len(snap.Names), len(snap.Coordinates), len(snap.Visited), len(snap.Weather))
	if n != len(snap.Names) || n != len(snap.Coordinates) || n != len(snap.Visited) || n != len(snap.Weather) {
		slog.Warn("persisted attributes out of step, truncating to shortest",
			"names", len(snap.Names),
			"coordinates", len(snap.Coordinates),
			"visited", len(snap.Visited),
			"weather", len(snap.Weather),
		)
	}

	entries := make([]domain.TripEntry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, domain.TripEntry{
			ID:          uuid.New(),
			Name:        snap.Names[i],
			Coordinates: snap.Coordinates[i],
			Visited:     snap.Visited[i],
			Weather:     snap.Weather[i],
		})
	}
	return entries
}
