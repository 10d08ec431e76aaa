package share

import (
	"context"
	"fmt"
	"sync/atomic"

	"shareflow/internal/logutil"
)

// PresenceProbe reports whether a platform's app is installed on the host.
// Implementations live outside the engine.
type PresenceProbe interface {
	IsInstalled(ctx context.Context, identifier string) (bool, error)
}

// Catalog holds the immutable capability descriptors plus a refreshable
// availability snapshot. Reads never block: RefreshAvailability builds a new
// snapshot and swaps it in atomically, so in-flight readers see either the
// old state or the new one, never a mix.
type Catalog struct {
	descriptors map[Platform]*Capabilities
	order       []Platform
	probe       PresenceProbe
	avail       atomic.Pointer[map[Platform]Availability]
}

// NewCatalog registers the builtin descriptor table. Until the first
// RefreshAvailability, nothing is considered installed; platforms with a web
// fallback are still selectable.
func NewCatalog(probe PresenceProbe) *Catalog {
	c := &Catalog{
		descriptors: make(map[Platform]*Capabilities),
		probe:       probe,
	}
	for _, caps := range builtinCapabilities() {
		c.descriptors[caps.Platform] = caps
		c.order = append(c.order, caps.Platform)
	}
	snapshot := make(map[Platform]Availability, len(c.descriptors))
	for p, caps := range c.descriptors {
		snapshot[p] = availabilityFor(caps, p == PlatformNative)
	}
	c.avail.Store(&snapshot)
	return c
}

// Capabilities returns the descriptor for a platform. An unknown key is a
// programmer error.
func (c *Catalog) Capabilities(p Platform) (*Capabilities, error) {
	caps, ok := c.descriptors[p]
	if !ok {
		return nil, UnknownPlatformError{Platform: string(p)}
	}
	return caps, nil
}

// AllCapabilities returns every descriptor in registration order, for
// building a share-target picker.
func (c *Catalog) AllCapabilities() []*Capabilities {
	out := make([]*Capabilities, 0, len(c.order))
	for _, p := range c.order {
		out = append(out, c.descriptors[p])
	}
	return out
}

// Availability returns the current snapshot entry for a platform. Unknown
// platforms read as unavailable.
func (c *Catalog) Availability(p Platform) Availability {
	snapshot := *c.avail.Load()
	return snapshot[p]
}

// AvailablePlatforms lists the selectable targets: installed, or reachable
// through a web fallback.
func (c *Catalog) AvailablePlatforms() []Platform {
	snapshot := *c.avail.Load()
	out := make([]Platform, 0, len(c.order))
	for _, p := range c.order {
		if snapshot[p].Available {
			out = append(out, p)
		}
	}
	return out
}

// RefreshAvailability re-probes every platform's installed state and swaps
// the snapshot in one atomic store. Probe failures mark the platform as not
// installed rather than aborting the refresh; the first error is returned so
// callers can log it.
func (c *Catalog) RefreshAvailability(ctx context.Context) error {
	snapshot := make(map[Platform]Availability, len(c.descriptors))
	var firstErr error
	for _, p := range c.order {
		caps := c.descriptors[p]
		if p == PlatformNative {
			snapshot[p] = Availability{Installed: true, Available: true}
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		installed, err := c.probe.IsInstalled(ctx, caps.AppID)
		if err != nil {
			logutil.Debugf("presence probe failed: platform=%s err=%v", p, err)
			if firstErr == nil {
				firstErr = fmt.Errorf("probe %s: %w", p, err)
			}
			installed = false
		}
		a := availabilityFor(caps, installed)
		snapshot[p] = a
		logutil.Debugf("availability: platform=%s installed=%t available=%t", p, a.Installed, a.Available)
	}
	c.avail.Store(&snapshot)
	return firstErr
}

func availabilityFor(caps *Capabilities, installed bool) Availability {
	return Availability{
		Installed: installed,
		Available: installed || caps.HasWebFallback,
	}
}
