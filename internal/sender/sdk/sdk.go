// Package sdk implements the vendor-SDK sender. One Sender serves every
// platform with a host SDK integration, constructing the per-platform client
// lazily from environment credentials on first use.
package sdk

import (
	"context"
	"fmt"
	"sync"

	"shareflow/internal/logutil"
	"shareflow/internal/share"
)

const senderName = "vendor-sdk"

// platformClient is one platform's SDK integration.
type platformClient interface {
	post(ctx context.Context, b share.Bundle) error
}

// Sender routes a bundle to the matching vendor SDK client.
type Sender struct {
	mu      sync.Mutex
	clients map[share.Platform]platformClient
}

// New constructs the vendor-SDK sender. Clients are not built until a
// bundle for their platform arrives, so missing credentials only surface
// when that platform is actually used.
func New() *Sender {
	return &Sender{clients: make(map[share.Platform]platformClient)}
}

// Name identifies the sender.
func (s *Sender) Name() string { return senderName }

// Send hands the bundle to the platform's SDK client.
func (s *Sender) Send(ctx context.Context, b share.Bundle) error {
	client, err := s.client(ctx, b.Platform)
	if err != nil {
		return err
	}
	logutil.Debugf("vendor sdk send: platform=%s media=%d", b.Platform, len(b.Media))
	return client.post(ctx, b)
}

func (s *Sender) client(ctx context.Context, p share.Platform) (platformClient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.clients[p]; ok {
		return c, nil
	}

	var (
		c   platformClient
		err error
	)
	switch p {
	case share.PlatformTwitter:
		c, err = newTwitterClient(ctx)
	case share.PlatformMastodon:
		c, err = newMastodonClient(ctx)
	case share.PlatformBluesky:
		c, err = newBlueskyClient(ctx)
	default:
		err = fmt.Errorf("no host SDK integration for %s", p)
	}
	if err != nil {
		return nil, err
	}
	s.clients[p] = c
	return c, nil
}
