package sdk

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/bluesky-social/indigo/api/atproto"
	"github.com/bluesky-social/indigo/api/bsky"
	"github.com/bluesky-social/indigo/lex/util"
	"github.com/bluesky-social/indigo/xrpc"

	"shareflow/internal/share"
)

const (
	envBlueskyHandle      = "SHAREFLOW_BLUESKY_HANDLE"
	envBlueskyAppPassword = "SHAREFLOW_BLUESKY_APP_PASSWORD"
	envBlueskyPDSURL      = "SHAREFLOW_BLUESKY_PDS_URL"

	defaultPDSURL  = "https://bsky.social"
	blueskyTimeout = 30 * time.Second
)

type blueskyClient struct {
	client *xrpc.Client
}

func newBlueskyClient(ctx context.Context) (*blueskyClient, error) {
	handle := strings.TrimSpace(os.Getenv(envBlueskyHandle))
	password := strings.TrimSpace(os.Getenv(envBlueskyAppPassword))
	pdsURL := strings.TrimSpace(os.Getenv(envBlueskyPDSURL))
	if pdsURL == "" {
		pdsURL = defaultPDSURL
	}

	var missing []string
	if handle == "" {
		missing = append(missing, envBlueskyHandle)
	}
	if password == "" {
		missing = append(missing, envBlueskyAppPassword)
	}
	if len(missing) > 0 {
		return nil, share.MissingEnvError{Sender: "bluesky", Variables: missing}
	}

	userAgent := "shareflow/1"
	xrpcClient := &xrpc.Client{
		Client:    &http.Client{Timeout: blueskyTimeout},
		Host:      pdsURL,
		UserAgent: &userAgent,
	}

	session, err := atproto.ServerCreateSession(ctx, xrpcClient, &atproto.ServerCreateSession_Input{
		Identifier: handle,
		Password:   password,
	})
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	xrpcClient.Auth = &xrpc.AuthInfo{
		AccessJwt:  session.AccessJwt,
		RefreshJwt: session.RefreshJwt,
		Handle:     session.Handle,
		Did:        session.Did,
	}
	return &blueskyClient{client: xrpcClient}, nil
}

func (c *blueskyClient) post(ctx context.Context, b share.Bundle) error {
	post := &bsky.FeedPost{
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Text:      b.ComposeText(),
	}

	var images []*bsky.EmbedImages_Image
	for _, m := range b.Media {
		if m.Type != share.MediaImage {
			continue
		}
		blob, err := c.uploadBlob(ctx, m.Source)
		if err != nil {
			return err
		}
		images = append(images, &bsky.EmbedImages_Image{
			Alt:   b.Title,
			Image: blob,
		})
	}
	if len(images) > 0 {
		post.Embed = &bsky.FeedPost_Embed{
			EmbedImages: &bsky.EmbedImages{Images: images},
		}
	}

	if _, err := atproto.RepoCreateRecord(ctx, c.client, &atproto.RepoCreateRecord_Input{
		Collection: "app.bsky.feed.post",
		Repo:       c.client.Auth.Did,
		Record:     &util.LexiconTypeDecoder{Val: post},
	}); err != nil {
		return fmt.Errorf("create record: %w", err)
	}
	return nil
}

func (c *blueskyClient) uploadBlob(ctx context.Context, path string) (*util.LexBlob, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	resp, err := atproto.RepoUploadBlob(ctx, c.client, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("upload blob: %w", err)
	}
	if resp.Blob == nil {
		return nil, fmt.Errorf("upload blob: empty response")
	}
	return resp.Blob, nil
}
