package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"wanderlist/internal/domain"
)

// refreshTarget pins an entry's identity and coordinates while its fetch
// runs outside the lock.
type refreshTarget struct {
	id uuid.UUID
	at domain.Coordinates
}

// RefreshWeather re-fetches weather for every entry concurrently and
// applies all results as one atomic replacement.
//
// Per-entry failures degrade that entry to an unavailable snapshot and
// never abort the refresh. Results are matched back by entry ID, not
// position: entries deleted while fetches were in flight silently drop
// their result, entries added during the refresh keep the snapshot that
// arrived with them, and reordering cannot mis-assign anything. A cancelled
// context aborts without applying any results.
func (e *Engine) RefreshWeather(ctx context.Context) error {
	e.mu.Lock()
	targets := make([]refreshTarget, len(e.entries))
	for i, entry := range e.entries {
		targets[i] = refreshTarget{id: entry.ID, at: entry.Coordinates}
	}
	e.mu.Unlock()

	if len(targets) == 0 {
		return nil
	}

	results := make([]*domain.Weather, len(targets))
	var wg sync.WaitGroup
	for i, target := range targets {
		wg.Add(1)
		go func(i int, at domain.Coordinates) {
			defer wg.Done()
			results[i] = e.fetchWeather(ctx, at)
		}(i, target.at)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("engine.Engine.RefreshWeather: %w", err)
	}

	byID := make(map[uuid.UUID]*domain.Weather, len(targets))
	for i, target := range targets {
		byID[target.id] = results[i]
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.entries {
		if weather, ok := byID[e.entries[i].ID]; ok {
			e.entries[i].Weather = weather
		}
	}
	e.persist()
	return nil
}
