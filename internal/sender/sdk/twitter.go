package sdk

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/michimani/gotwi"
	"github.com/michimani/gotwi/media/upload"
	uploadtypes "github.com/michimani/gotwi/media/upload/types"
	"github.com/michimani/gotwi/resources"
	"github.com/michimani/gotwi/tweet/managetweet"
	managetweettypes "github.com/michimani/gotwi/tweet/managetweet/types"

	"shareflow/internal/logutil"
	"shareflow/internal/share"
)

const (
	envTwitterAPIKey       = "SHAREFLOW_TWITTER_CONSUMER_KEY"
	envTwitterAPISecret    = "SHAREFLOW_TWITTER_CONSUMER_SECRET"
	envTwitterAccessToken  = "SHAREFLOW_TWITTER_ACCESS_TOKEN"
	envTwitterAccessSecret = "SHAREFLOW_TWITTER_ACCESS_TOKEN_SECRET"

	twitterTimeout  = 30 * time.Second
	twitterImageCap = 4
)

type twitterClient struct {
	api *gotwi.Client
}

func newTwitterClient(_ context.Context) (*twitterClient, error) {
	cfg := map[string]string{
		envTwitterAPIKey:       strings.TrimSpace(os.Getenv(envTwitterAPIKey)),
		envTwitterAPISecret:    strings.TrimSpace(os.Getenv(envTwitterAPISecret)),
		envTwitterAccessToken:  strings.TrimSpace(os.Getenv(envTwitterAccessToken)),
		envTwitterAccessSecret: strings.TrimSpace(os.Getenv(envTwitterAccessSecret)),
	}
	var missing []string
	for _, key := range []string{envTwitterAPIKey, envTwitterAPISecret, envTwitterAccessToken, envTwitterAccessSecret} {
		if cfg[key] == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, share.MissingEnvError{Sender: "twitter", Variables: missing}
	}

	client, err := gotwi.NewClient(&gotwi.NewClientInput{
		HTTPClient:           &http.Client{Timeout: twitterTimeout},
		AuthenticationMethod: gotwi.AuthenMethodOAuth1UserContext,
		OAuthToken:           cfg[envTwitterAccessToken],
		OAuthTokenSecret:     cfg[envTwitterAccessSecret],
		APIKey:               cfg[envTwitterAPIKey],
		APIKeySecret:         cfg[envTwitterAPISecret],
		Debug:                logutil.Verbose(),
	})
	if err != nil {
		return nil, fmt.Errorf("create X client: %w", err)
	}
	if !client.IsReady() {
		return nil, fmt.Errorf("twitter client not ready")
	}
	return &twitterClient{api: client}, nil
}

func (c *twitterClient) post(ctx context.Context, b share.Bundle) error {
	var mediaIDs []string
	for _, m := range b.Media {
		if m.Type != share.MediaImage {
			continue
		}
		if len(mediaIDs) == twitterImageCap {
			break
		}
		id, err := c.uploadImage(ctx, m.Source)
		if err != nil {
			return err
		}
		mediaIDs = append(mediaIDs, id)
	}

	input := &managetweettypes.CreateInput{
		Text: gotwi.String(b.ComposeText()),
	}
	if len(mediaIDs) > 0 {
		input.Media = &managetweettypes.CreateInputMedia{MediaIDs: mediaIDs}
	}

	if _, err := managetweet.Create(ctx, c.api, input); err != nil {
		return fmt.Errorf("post tweet: %w", unwrapGotwiError(err))
	}
	logutil.Debugf("tweet posted: media_count=%d", len(mediaIDs))
	return nil
}

func (c *twitterClient) uploadImage(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}

	mediaType, category, err := resolveTwitterMediaType(data)
	if err != nil {
		return "", err
	}

	initRes, err := upload.Initialize(ctx, c.api, &uploadtypes.InitializeInput{
		MediaType:     mediaType,
		TotalBytes:    len(data),
		MediaCategory: category,
	})
	if err != nil {
		return "", fmt.Errorf("initialize upload: %w", err)
	}
	mediaID := initRes.Data.MediaID

	appendIn := &uploadtypes.AppendInput{
		MediaID:      mediaID,
		Media:        bytes.NewReader(data),
		SegmentIndex: 0,
	}
	appendIn.GenerateBoundary()
	if _, err := upload.Append(ctx, c.api, appendIn); err != nil {
		return "", fmt.Errorf("append upload: %w", err)
	}

	finalizeRes, err := upload.Finalize(ctx, c.api, &uploadtypes.FinalizeInput{MediaID: mediaID})
	if err != nil {
		return "", fmt.Errorf("finalize upload: %w", err)
	}

	state := finalizeRes.Data.ProcessingInfo.State
	switch state {
	case "", resources.ProcessingInfoStateSucceeded:
	case resources.ProcessingInfoStateInProgress, resources.ProcessingInfoStatePending:
		wait := time.Duration(finalizeRes.Data.ProcessingInfo.CheckAfterSecs) * time.Second
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
			// images usually finish within the advertised window
		}
	default:
		return "", fmt.Errorf("media processing failed: state=%s", state)
	}

	return mediaID, nil
}

func resolveTwitterMediaType(data []byte) (uploadtypes.MediaType, uploadtypes.MediaCategory, error) {
	detected := http.DetectContentType(data)
	switch {
	case strings.Contains(detected, "jpeg"):
		return uploadtypes.MediaTypeJPEG, uploadtypes.MediaCategoryTweetImage, nil
	case strings.Contains(detected, "png"):
		return uploadtypes.MediaTypePNG, uploadtypes.MediaCategoryTweetImage, nil
	case strings.Contains(detected, "gif"):
		return uploadtypes.MediaTypeGIF, uploadtypes.MediaCategoryTweetGIF, nil
	case strings.Contains(detected, "webp"):
		return uploadtypes.MediaTypeWebP, uploadtypes.MediaCategoryTweetImage, nil
	}
	return "", "", fmt.Errorf("unsupported image content type %q", detected)
}

func unwrapGotwiError(err error) error {
	var gwErr *gotwi.GotwiError
	if !errors.As(err, &gwErr) || gwErr == nil {
		return err
	}

	parts := make([]string, 0, 4)
	if gwErr.Title != "" {
		parts = append(parts, gwErr.Title)
	}
	if gwErr.Detail != "" {
		parts = append(parts, gwErr.Detail)
	}
	for _, apiErr := range gwErr.APIErrors {
		if apiErr.Message != "" {
			parts = append(parts, apiErr.Message)
		}
	}
	if len(parts) == 0 {
		if msg := gwErr.Error(); msg != "" {
			parts = append(parts, msg)
		} else {
			parts = append(parts, "X API request failed")
		}
	}
	return fmt.Errorf("%s", strings.Join(parts, "; "))
}
