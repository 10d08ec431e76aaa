// Package web implements the web-fallback sender: when a platform's app is
// not installed but it declares a web share endpoint, the composed content
// is handed to the browser instead.
package web

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"

	"shareflow/internal/logutil"
	"shareflow/internal/share"
)

const senderName = "web"

// Opener hands a URL to the host browser.
type Opener interface {
	OpenURL(ctx context.Context, rawURL string) error
}

// ExecOpener shells out to the platform's URL opener.
type ExecOpener struct{}

// OpenURL launches the default browser on the URL.
func (ExecOpener) OpenURL(ctx context.Context, rawURL string) error {
	name := "xdg-open"
	if runtime.GOOS == "darwin" {
		name = "open"
	}
	if err := exec.CommandContext(ctx, name, rawURL).Run(); err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	return nil
}

// Sender builds each platform's share endpoint URL and opens it.
type Sender struct {
	opener Opener
}

// New constructs the web-fallback sender. A nil opener defaults to the
// exec-based one.
func New(opener Opener) *Sender {
	if opener == nil {
		opener = ExecOpener{}
	}
	return &Sender{opener: opener}
}

// Name identifies the sender.
func (s *Sender) Name() string { return senderName }

// Send builds the share URL for the bundle's platform and hands it to the
// browser. Exactly one URL is opened per call.
func (s *Sender) Send(ctx context.Context, b share.Bundle) error {
	shareURL, err := ShareURL(b)
	if err != nil {
		return err
	}
	logutil.Debugf("opening web share: platform=%s url=%s", b.Platform, shareURL)
	return s.opener.OpenURL(ctx, shareURL)
}

// ShareURL returns the platform's web share endpoint with the bundle's
// content encoded in the query. Construction is pure so it can be tested
// without a browser.
func ShareURL(b share.Bundle) (string, error) {
	text := b.ComposeText()
	switch b.Platform {
	case share.PlatformTwitter:
		q := url.Values{}
		q.Set("text", text)
		return "https://twitter.com/intent/tweet?" + q.Encode(), nil
	case share.PlatformFacebook:
		q := url.Values{}
		q.Set("u", b.URL)
		if b.Text != "" {
			q.Set("quote", b.Text)
		}
		return "https://www.facebook.com/sharer/sharer.php?" + q.Encode(), nil
	case share.PlatformWhatsApp:
		q := url.Values{}
		q.Set("text", text)
		return "https://wa.me/?" + q.Encode(), nil
	case share.PlatformTelegram:
		q := url.Values{}
		q.Set("url", b.URL)
		q.Set("text", b.Text)
		return "https://t.me/share/url?" + q.Encode(), nil
	case share.PlatformLinkedIn:
		q := url.Values{}
		q.Set("url", b.URL)
		return "https://www.linkedin.com/sharing/share-offsite/?" + q.Encode(), nil
	case share.PlatformMastodon:
		// Instance-agnostic share redirector.
		q := url.Values{}
		q.Set("text", text)
		return "https://mastodonshare.com/?" + q.Encode(), nil
	case share.PlatformBluesky:
		q := url.Values{}
		q.Set("text", text)
		return "https://bsky.app/intent/compose?" + q.Encode(), nil
	default:
		return "", fmt.Errorf("%s has no web share endpoint", b.Platform)
	}
}
