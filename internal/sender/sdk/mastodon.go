package sdk

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	mastodonapi "github.com/mattn/go-mastodon"

	"shareflow/internal/share"
)

const (
	envMastodonServer       = "SHAREFLOW_MASTODON_SERVER"
	envMastodonAccessToken  = "SHAREFLOW_MASTODON_ACCESS_TOKEN"
	envMastodonClientID     = "SHAREFLOW_MASTODON_CLIENT_ID"
	envMastodonClientSecret = "SHAREFLOW_MASTODON_CLIENT_SECRET"

	mastodonTimeout = 30 * time.Second
)

type mastodonClient struct {
	client *mastodonapi.Client
}

func newMastodonClient(_ context.Context) (*mastodonClient, error) {
	server := strings.TrimSpace(os.Getenv(envMastodonServer))
	token := strings.TrimSpace(os.Getenv(envMastodonAccessToken))

	var missing []string
	if server == "" {
		missing = append(missing, envMastodonServer)
	}
	if token == "" {
		missing = append(missing, envMastodonAccessToken)
	}
	if len(missing) > 0 {
		return nil, share.MissingEnvError{Sender: "mastodon", Variables: missing}
	}

	client := mastodonapi.NewClient(&mastodonapi.Config{
		Server:       server,
		AccessToken:  token,
		ClientID:     strings.TrimSpace(os.Getenv(envMastodonClientID)),
		ClientSecret: strings.TrimSpace(os.Getenv(envMastodonClientSecret)),
	})
	client.Timeout = mastodonTimeout

	return &mastodonClient{client: client}, nil
}

func (c *mastodonClient) post(ctx context.Context, b share.Bundle) error {
	var mediaIDs []mastodonapi.ID
	for _, m := range b.Media {
		attachment, err := c.uploadMedia(ctx, m.Source)
		if err != nil {
			return err
		}
		mediaIDs = append(mediaIDs, attachment.ID)
	}

	if _, err := c.client.PostStatus(ctx, &mastodonapi.Toot{
		Status:      b.ComposeText(),
		SpoilerText: b.Title,
		MediaIDs:    mediaIDs,
	}); err != nil {
		return fmt.Errorf("post status: %w", err)
	}
	return nil
}

func (c *mastodonClient) uploadMedia(ctx context.Context, path string) (*mastodonapi.Attachment, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open media: %w", err)
	}
	defer file.Close()

	attachment, err := c.client.UploadMediaFromMedia(ctx, &mastodonapi.Media{File: file})
	if err != nil {
		return nil, fmt.Errorf("upload media: %w", err)
	}
	return attachment, nil
}
