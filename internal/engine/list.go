package engine

import (
	"fmt"
	"slices"

	"wanderlist/internal/domain"
)

// Delete removes the entry at index. The relative order of the remaining
// entries is preserved.
func (e *Engine) Delete(index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if index < 0 || index >= len(e.entries) {
		return fmt.Errorf("engine.Engine.Delete: %w: no entry at index %d", domain.ErrIndex, index)
	}

	e.entries = append(e.entries[:index], e.entries[index+1:]...)
	e.persist()
	return nil
}

// Reorder removes the entry at from and reinserts it at to, shifting
// everything in between by one. Equal positions are a no-op (a drag dropped
// back where it started) and do not trigger a save.
func (e *Engine) Reorder(from, to int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if from < 0 || from >= len(e.entries) {
		return fmt.Errorf("engine.Engine.Reorder: %w: no entry at index %d", domain.ErrIndex, from)
	}
	if to < 0 || to >= len(e.entries) {
		return fmt.Errorf("engine.Engine.Reorder: %w: no entry at index %d", domain.ErrIndex, to)
	}
	if from == to {
		return nil
	}

	entry := e.entries[from]
	e.entries = append(e.entries[:from], e.entries[from+1:]...)
	e.entries = slices.Insert(e.entries, to, entry)
	e.persist()
	return nil
}

// ToggleVisited flips the visited flag at index. Marking an entry visited
// also moves it to the end of the list, so finished places sink below the
// ones still being planned; unmarking flips the flag in place.
func (e *Engine) ToggleVisited(index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if index < 0 || index >= len(e.entries) {
		return fmt.Errorf("engine.Engine.ToggleVisited: %w: no entry at index %d", domain.ErrIndex, index)
	}

	entry := e.entries[index]
	entry.Visited = !entry.Visited
	if entry.Visited {
		e.entries = append(e.entries[:index], e.entries[index+1:]...)
		e.entries = append(e.entries, entry)
	} else {
		e.entries[index] = entry
	}
	e.persist()
	return nil
}

// ClearAll empties the list. Asking the user to confirm is the caller's
// job; the engine just clears and persists the empty state.
func (e *Engine) ClearAll() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.entries = []domain.TripEntry{}
	e.persist()
}
