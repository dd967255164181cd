package engine

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"wanderlist/internal/domain"
)

// AddOutcome is the result of an Add: either a created entry, or the
// candidate set the user must choose from when the query was ambiguous.
type AddOutcome struct {
	Entry      *domain.TripEntry
	Candidates *domain.CandidateSet
}

// Added reports whether the add completed and created an entry.
func (o AddOutcome) Added() bool { return o.Entry != nil }

// Add resolves name to a place and appends it to the end of the list.
//
// The empty-name check runs before any network call. Exactly one geocoding
// match appends immediately; several matches suspend the add, parking the
// candidate set as the single pending selection until Select or
// CancelSelection; zero matches is domain.ErrNotFound. Only Select or a
// single-match add ever touches the list, so an abandoned query leaves no
// trace.
func (e *Engine) Add(ctx context.Context, name string) (AddOutcome, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return AddOutcome{}, fmt.Errorf("engine.Engine.Add: %w: place name is required", domain.ErrValidation)
	}

	e.flowMu.Lock()
	defer e.flowMu.Unlock()

	if e.pending != nil {
		return AddOutcome{}, fmt.Errorf("engine.Engine.Add: %w: finish choosing a match for %q first",
			domain.ErrSelectionPending, e.pending.Query)
	}

	candidates, err := e.geocoder.Search(ctx, name)
	if err != nil {
		return AddOutcome{}, fmt.Errorf("engine.Engine.Add: %w", err)
	}

	switch len(candidates) {
	case 0:
		return AddOutcome{}, fmt.Errorf("engine.Engine.Add: %w: no place matches %q", domain.ErrNotFound, name)
	case 1:
		entry := e.appendResolved(ctx, name, candidates[0].Coordinates)
		return AddOutcome{Entry: &entry}, nil
	default:
		e.pending = &domain.CandidateSet{Query: name, Candidates: candidates}
		return AddOutcome{Candidates: e.pendingCopy()}, nil
	}
}

// Select completes the pending add with the chosen candidate. The new entry
// keeps the query text as its name; only the coordinates come from the
// candidate. An out-of-range choice keeps the selection pending so the user
// can choose again.
func (e *Engine) Select(ctx context.Context, choice int) (domain.TripEntry, error) {
	e.flowMu.Lock()
	defer e.flowMu.Unlock()

	if e.pending == nil {
		return domain.TripEntry{}, fmt.Errorf("engine.Engine.Select: %w", domain.ErrNoSelection)
	}
	if choice < 0 || choice >= len(e.pending.Candidates) {
		return domain.TripEntry{}, fmt.Errorf("engine.Engine.Select: %w: no candidate at index %d",
			domain.ErrIndex, choice)
	}

	chosen := e.pending.Candidates[choice]
	name := e.pending.Query
	e.pending = nil

	return e.appendResolved(ctx, name, chosen.Coordinates), nil
}

// CancelSelection discards the pending candidate set, if any. Nothing was
// appended or persisted while the add was suspended, so there is nothing
// else to undo. Cancelling twice is fine.
func (e *Engine) CancelSelection() {
	e.flowMu.Lock()
	defer e.flowMu.Unlock()
	e.pending = nil
}

// PendingSelection returns a copy of the candidate set the engine is
// waiting on, if an add is suspended.
func (e *Engine) PendingSelection() (domain.CandidateSet, bool) {
	e.flowMu.Lock()
	defer e.flowMu.Unlock()

	if e.pending == nil {
		return domain.CandidateSet{}, false
	}
	return *e.pendingCopy(), true
}

// pendingCopy deep-copies the pending set so callers cannot mutate it.
// Called with flowMu held.
func (e *Engine) pendingCopy() *domain.CandidateSet {
	return &domain.CandidateSet{
		Query:      e.pending.Query,
		Candidates: slices.Clone(e.pending.Candidates),
	}
}

// appendResolved fetches the initial weather snapshot (best effort) and
// appends the finished entry. Called with flowMu held; takes mu itself.
func (e *Engine) appendResolved(ctx context.Context, name string, at domain.Coordinates) domain.TripEntry {
	entry := domain.TripEntry{
		ID:          uuid.New(),
		Name:        name,
		Coordinates: at,
		Weather:     e.fetchWeather(ctx, at),
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.entries = append(e.entries, entry)
	e.persist()
	return entry.Clone()
}

// fetchWeather degrades a failed fetch to an unavailable snapshot: a dead
// weather service must not block adding places.
func (e *Engine) fetchWeather(ctx context.Context, at domain.Coordinates) *domain.Weather {
	weather, err := e.weather.Current(ctx, at)
	if err != nil {
		slog.Warn("weather fetch failed, marking unavailable", "error", err)
		return domain.UnavailableWeather(time.Now().UTC())
	}
	return weather
}
