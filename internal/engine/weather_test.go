package engine_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wanderlist/internal/domain"
	"wanderlist/internal/engine"
	"wanderlist/internal/store"
)

func seededEngineWithWeather(weather *mockWeather, placeNames ...string) (*engine.Engine, *mockStore) {
	ms := &mockStore{loadFn: func() store.Snapshot { return seedSnapshot(placeNames...) }}
	return engine.New(ms, &mockGeocoder{}, weather), ms
}

// blockingWeather answers every fetch with weatherFor, but only after the
// test closes release. started is closed once the first fetch is in flight.
func blockingWeather() (weather *mockWeather, started chan struct{}, release chan struct{}) {
	started = make(chan struct{})
	release = make(chan struct{})
	var once sync.Once
	weather = &mockWeather{current: func(_ context.Context, at domain.Coordinates) (*domain.Weather, error) {
		once.Do(func() { close(started) })
		<-release
		return weatherFor(at), nil
	}}
	return weather, started, release
}

// ---- RefreshWeather --------------------------------------------------------

func TestRefreshWeather_UpdatesEveryEntry(t *testing.T) {
	weather := &mockWeather{current: func(_ context.Context, at domain.Coordinates) (*domain.Weather, error) {
		return weatherFor(at), nil
	}}
	eng, ms := seededEngineWithWeather(weather, "A", "B", "C")

	require.NoError(t, eng.RefreshWeather(context.Background()))

	got := eng.Snapshot()
	require.Len(t, got, 3)
	for i, entry := range got {
		require.NotNil(t, entry.Weather, "entry %d", i)
		assert.Equal(t, domain.WeatherOK, entry.Weather.Status)
		assert.InDelta(t, entry.Coordinates.Latitude*10, entry.Weather.TemperatureC, 1e-9,
			"each entry gets the snapshot for its own coordinates")
	}
	require.Len(t, ms.saved, 1, "one save covers the whole refresh")
}

func TestRefreshWeather_PartialFailureDegradesOnlyTheFailingEntry(t *testing.T) {
	weather := &mockWeather{current: func(_ context.Context, at domain.Coordinates) (*domain.Weather, error) {
		if at.Latitude == 1 {
			return nil, fmt.Errorf("gateway.Weather.Current: %w: status 503", domain.ErrGateway)
		}
		return weatherFor(at), nil
	}}
	eng, _ := seededEngineWithWeather(weather, "A", "B", "C")

	require.NoError(t, eng.RefreshWeather(context.Background()), "a failed fetch is not a refresh failure")

	got := eng.Snapshot()
	require.Len(t, got, 3)
	for i, entry := range got {
		require.NotNil(t, entry.Weather, "entry %d", i)
	}
	assert.Equal(t, domain.WeatherOK, got[0].Weather.Status)
	assert.Equal(t, domain.WeatherUnavailable, got[1].Weather.Status)
	assert.False(t, got[1].Weather.FetchedAt.IsZero())
	assert.Equal(t, domain.WeatherOK, got[2].Weather.Status)
}

func TestRefreshWeather_EmptyList(t *testing.T) {
	eng, ms := seededEngineWithWeather(&mockWeather{})

	require.NoError(t, eng.RefreshWeather(context.Background()))
	assert.Empty(t, ms.saved, "nothing to fetch, nothing to save")
}

func TestRefreshWeather_CancelledContextAppliesNothing(t *testing.T) {
	weather := &mockWeather{current: func(_ context.Context, at domain.Coordinates) (*domain.Weather, error) {
		return weatherFor(at), nil
	}}
	eng, ms := seededEngineWithWeather(weather, "A", "B")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := eng.RefreshWeather(ctx)

	require.ErrorIs(t, err, context.Canceled)
	for i, entry := range eng.Snapshot() {
		assert.Nil(t, entry.Weather, "entry %d: an aborted refresh must not apply results", i)
	}
	assert.Empty(t, ms.saved)
}

func TestRefreshWeather_DeleteDuringFetchDropsTheResult(t *testing.T) {
	weather, started, release := blockingWeather()
	eng, _ := seededEngineWithWeather(weather, "A", "B", "C")

	done := make(chan error, 1)
	go func() { done <- eng.RefreshWeather(context.Background()) }()

	<-started
	require.NoError(t, eng.Delete(0))
	close(release)
	require.NoError(t, <-done)

	got := eng.Snapshot()
	require.Equal(t, []string{"B", "C"}, names(got), "the refresh must not resurrect a deleted entry")
	for i, entry := range got {
		require.NotNil(t, entry.Weather, "entry %d", i)
		assert.InDelta(t, entry.Coordinates.Latitude*10, entry.Weather.TemperatureC, 1e-9)
	}
}

func TestRefreshWeather_ReorderDuringFetchFollowsTheEntry(t *testing.T) {
	weather, started, release := blockingWeather()
	eng, _ := seededEngineWithWeather(weather, "A", "B", "C")

	done := make(chan error, 1)
	go func() { done <- eng.RefreshWeather(context.Background()) }()

	<-started
	require.NoError(t, eng.Reorder(0, 2))
	close(release)
	require.NoError(t, <-done)

	got := eng.Snapshot()
	require.Equal(t, []string{"B", "C", "A"}, names(got))
	for i, entry := range got {
		require.NotNil(t, entry.Weather, "entry %d", i)
		assert.InDelta(t, entry.Coordinates.Latitude*10, entry.Weather.TemperatureC, 1e-9,
			"results follow the entry, not its old position")
	}
}
