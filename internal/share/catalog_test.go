package share

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestCatalogUnknownPlatform(t *testing.T) {
	catalog := NewCatalog(&fakeProbe{installed: map[string]bool{}})
	_, err := catalog.Capabilities("friendster")
	var unknown UnknownPlatformError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "friendster", unknown.Platform)
}

func TestCatalogAllCapabilitiesStableOrder(t *testing.T) {
	catalog := NewCatalog(&fakeProbe{installed: map[string]bool{}})
	all := catalog.AllCapabilities()
	require.Len(t, all, len(Platforms()))
	for i, p := range Platforms() {
		assert.Equal(t, p, all[i].Platform)
	}
}

func TestCatalogAvailabilityRule(t *testing.T) {
	catalog := NewCatalog(&fakeProbe{installed: map[string]bool{"instagram": false}})
	require.NoError(t, catalog.RefreshAvailability(context.Background()))

	// Installed or web fallback makes a platform selectable; neither excludes it.
	twitter := catalog.Availability(PlatformTwitter)
	assert.False(t, twitter.Installed)
	assert.True(t, twitter.Available, "web fallback keeps an uninstalled platform selectable")

	instagram := catalog.Availability(PlatformInstagram)
	assert.False(t, instagram.Installed)
	assert.False(t, instagram.Available, "no app and no web fallback means not selectable")

	native := catalog.Availability(PlatformNative)
	assert.True(t, native.Installed)
	assert.True(t, native.Available)
}

func TestCatalogRefreshUpdatesSnapshot(t *testing.T) {
	probe := &fakeProbe{installed: map[string]bool{}}
	catalog := NewCatalog(probe)
	require.NoError(t, catalog.RefreshAvailability(context.Background()))
	assert.False(t, catalog.Availability(PlatformInstagram).Available)

	probe.mu.Lock()
	probe.installed["instagram"] = true
	probe.mu.Unlock()
	require.NoError(t, catalog.RefreshAvailability(context.Background()))

	got := catalog.Availability(PlatformInstagram)
	assert.True(t, got.Installed)
	assert.True(t, got.Available)
}

type flakyProbe struct{}

func (flakyProbe) IsInstalled(_ context.Context, identifier string) (bool, error) {
	if identifier == "telegram" {
		return false, errors.New("probe timeout")
	}
	return true, nil
}

func TestCatalogRefreshSurvivesProbeFailure(t *testing.T) {
	catalog := NewCatalog(flakyProbe{})
	err := catalog.RefreshAvailability(context.Background())
	require.Error(t, err, "the first probe failure is reported")

	// The rest of the snapshot is still refreshed.
	assert.True(t, catalog.Availability(PlatformTwitter).Installed)
	assert.False(t, catalog.Availability(PlatformTelegram).Installed)
	assert.True(t, catalog.Availability(PlatformTelegram).Available, "web fallback still applies")
}

func TestCatalogRefreshHonorsCancellation(t *testing.T) {
	catalog := NewCatalog(&fakeProbe{installed: map[string]bool{}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := catalog.RefreshAvailability(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCatalogConcurrentReadersNeverBlockOrTearState(t *testing.T) {
	probe := &fakeProbe{installed: map[string]bool{}}
	catalog := NewCatalog(probe)

	var wg sync.WaitGroup
	stop := make(chan struct{})

	// Readers observe either the old snapshot or the new one, never a mix:
	// instagram (no fallback) is available exactly when it is installed.
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				a := catalog.Availability(PlatformInstagram)
				assert.Equal(t, a.Installed, a.Available)
				_ = catalog.AvailablePlatforms()
			}
		}()
	}

	for i := range 100 {
		probe.mu.Lock()
		probe.installed["instagram"] = i%2 == 0
		probe.mu.Unlock()
		require.NoError(t, catalog.RefreshAvailability(context.Background()))
	}
	close(stop)
	wg.Wait()
}
