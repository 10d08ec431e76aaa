// Package probe implements the app presence checks the catalog's
// availability refresh relies on.
package probe

import (
	"context"
	"os/exec"
	"strings"
	"sync"
)

// Static answers from a fixed table. Useful for tests and for pinning
// availability through configuration.
type Static struct {
	mu        sync.RWMutex
	installed map[string]bool
}

// NewStatic builds a probe that reports exactly the given identifiers as
// installed.
func NewStatic(installed ...string) *Static {
	m := make(map[string]bool, len(installed))
	for _, id := range installed {
		m[strings.ToLower(id)] = true
	}
	return &Static{installed: m}
}

// Set overrides one identifier's installed state.
func (s *Static) Set(identifier string, installed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.installed[strings.ToLower(identifier)] = installed
}

// IsInstalled reports the pinned state for the identifier.
func (s *Static) IsInstalled(_ context.Context, identifier string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.installed[strings.ToLower(identifier)], nil
}

// Path treats the identifier as a host command name and reports it installed
// when the binary is on PATH. This is the desktop analog of checking for an
// app's URL-scheme handler.
type Path struct{}

// IsInstalled looks the identifier up on PATH.
func (Path) IsInstalled(_ context.Context, identifier string) (bool, error) {
	_, err := exec.LookPath(identifier)
	if err != nil {
		return false, nil
	}
	return true, nil
}
