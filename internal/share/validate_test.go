package share

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codes(issues []Issue) []string {
	out := make([]string, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.Code)
	}
	return out
}

func TestValidateTextLengthBoundary(t *testing.T) {
	caps := &Capabilities{Platform: PlatformTwitter, DisplayName: "X", MaxTextLength: 280}

	atLimit := Post{Text: strings.Repeat("a", 280)}
	assert.Empty(t, Validate(atLimit, caps).Errors, "text at the limit must pass")

	overLimit := Post{Text: strings.Repeat("a", 281)}
	result := Validate(overLimit, caps)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, CodeTextTooLong, result.Errors[0].Code)
}

func TestValidateCountsRunesNotBytes(t *testing.T) {
	caps := &Capabilities{MaxTextLength: 3}
	assert.True(t, Validate(Post{Text: "日本語"}, caps).Valid())
	assert.False(t, Validate(Post{Text: "日本語!"}, caps).Valid())
}

func TestValidateHashtagAndMentionCaps(t *testing.T) {
	caps := &Capabilities{MaxHashtags: 2, MaxMentions: 1}
	post := Post{
		Hashtags: []string{"a", "b", "c"},
		Mentions: []string{"x", "y"},
	}
	result := Validate(post, caps)
	assert.ElementsMatch(t, []string{CodeTooManyHashtags, CodeTooManyMentions}, codes(result.Errors))
}

func TestValidateMediaLimits(t *testing.T) {
	caps := &Capabilities{
		MaxImages:        1,
		MaxVideos:        1,
		MaxFileSize:      100,
		MaxVideoDuration: 10 * time.Second,
		ImageFormats:     []string{"jpg"},
		VideoFormats:     []string{"mp4"},
	}
	post := Post{
		Text: "m",
		Media: []Media{
			{Type: MediaImage, Source: "a.jpg", Format: "jpg", Size: 50},
			{Type: MediaImage, Source: "b.bmp", Format: "bmp", Size: 500},
			{Type: MediaVideo, Source: "c.mp4", Format: "mp4", Size: 50, Duration: 30 * time.Second},
		},
	}
	result := Validate(post, caps)
	assert.ElementsMatch(t,
		[]string{CodeTooManyImages, CodeFileTooLarge, CodeUnsupportedFormat, CodeVideoTooLong},
		codes(result.Errors),
		"every violation must be collected in one pass")
}

func TestValidateImageDimensions(t *testing.T) {
	caps := &Capabilities{MaxImageWidth: 1000, MaxImageHeight: 800}

	atLimit := Post{Media: []Media{{Type: MediaImage, Source: "a.jpg", Width: 1000, Height: 800}}}
	assert.True(t, Validate(atLimit, caps).Valid())

	tooWide := Post{Media: []Media{{Type: MediaImage, Source: "b.jpg", Width: 1001, Height: 10}}}
	result := Validate(tooWide, caps)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, CodeImageTooLarge, result.Errors[0].Code)

	// Unstated dimensions (0x0) never trip the check.
	unknown := Post{Media: []Media{{Type: MediaImage, Source: "c.jpg"}}}
	assert.True(t, Validate(unknown, caps).Valid())
}

func TestValidateMediaRequired(t *testing.T) {
	caps := &Capabilities{DisplayName: "Instagram", MediaRequired: true}

	result := Validate(Post{Text: "caption only"}, caps)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, CodeMediaRequired, result.Errors[0].Code)

	withMedia := Post{Text: "caption", Media: []Media{{Type: MediaImage, Source: "a.jpg", Format: "jpg"}}}
	assert.True(t, Validate(withMedia, caps).Valid())
}

func TestValidateLinkIsWarningNotError(t *testing.T) {
	caps := &Capabilities{DisplayName: "Instagram", SupportsLinks: false}
	post := Post{Text: "look", URL: "https://example.com"}

	result := Validate(post, caps)
	assert.True(t, result.Valid(), "a link on a linkless platform must not block dispatch")
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, CodeLinkUnsupported, result.Warnings[0].Code)
}

func TestValidateZeroLimitsMeanUnlimited(t *testing.T) {
	caps := &Capabilities{}
	post := Post{
		Text:     strings.Repeat("a", 100000),
		Hashtags: make([]string, 50),
		Media:    []Media{{Type: MediaImage, Format: "tiff", Size: 1 << 40}},
	}
	result := Validate(post, caps)
	assert.True(t, result.Valid())
}
