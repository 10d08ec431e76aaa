package share

import "time"

// Capabilities is the per-platform descriptor consulted by the validator and
// the resolver. Descriptors are built once in NewCatalog and never modified
// afterwards; the mutable installed/available state lives in the catalog's
// availability snapshot instead.
type Capabilities struct {
	Platform    Platform
	DisplayName string

	// AppID is the identifier handed to the presence probe.
	AppID string

	MaxTextLength    int // runes, 0 = unlimited
	MaxHashtags      int // 0 = unlimited
	MaxMentions      int // 0 = unlimited
	MaxImages        int
	MaxVideos        int
	MaxFileSize      int64 // bytes per attachment, 0 = unlimited
	MaxImageWidth    int   // px, 0 = unlimited
	MaxImageHeight   int   // px, 0 = unlimited
	MaxVideoDuration time.Duration

	ImageFormats []string
	VideoFormats []string

	SupportsLinks   bool
	SupportsStories bool
	MediaRequired   bool

	// RequiresSdk marks platforms with a vendor SDK path the resolver may
	// pick when a post's shape falls outside IntentCompatible.
	RequiresSdk bool

	// RequiresUserEdit marks platforms that always hand off to their own
	// editor; the resolver never substitutes a web fallback for these.
	RequiresUserEdit bool

	HasWebFallback bool

	// IntentCompatible reports whether a post's content shape can go through
	// the simple intent path while the app is installed. Nil means any shape
	// is compatible. Declared here, once per platform, so the resolver stays
	// platform-agnostic.
	IntentCompatible func(Post) bool
}

// Availability is the refreshable part of a platform's state.
type Availability struct {
	Installed bool
	// Available means the platform is a selectable target: installed, or
	// reachable through a declared web fallback.
	Available bool
}

const (
	megabyte = int64(1 << 20)

	twitterVideoLimit = 140 * time.Second
)

var commonImageFormats = []string{"jpg", "jpeg", "png", "gif", "webp"}

// builtinCapabilities is the full descriptor table. Limits follow each
// platform's published constraints; the compatibility predicates encode the
// current vendor policy for when rich content forces the SDK editor.
func builtinCapabilities() []*Capabilities {
	return []*Capabilities{
		{
			Platform:         PlatformTwitter,
			DisplayName:      "X (Twitter)",
			AppID:            "twitter",
			MaxTextLength:    280,
			MaxHashtags:      10,
			MaxMentions:      10,
			MaxImages:        4,
			MaxVideos:        1,
			MaxFileSize:      5 * megabyte,
			MaxImageWidth:    8192,
			MaxImageHeight:   8192,
			MaxVideoDuration: twitterVideoLimit,
			ImageFormats:     commonImageFormats,
			VideoFormats:     []string{"mp4", "mov"},
			SupportsLinks:    true,
			RequiresSdk:      true,
			HasWebFallback:   true,
			IntentCompatible: func(p Post) bool {
				for _, m := range p.Media {
					if m.Type == MediaVideo && m.Duration > twitterVideoLimit {
						return false
					}
				}
				return p.MediaCount(MediaImage) <= 4
			},
		},
		{
			Platform:       PlatformMastodon,
			DisplayName:    "Mastodon",
			AppID:          "mastodon",
			MaxTextLength:  500,
			MaxImages:      4,
			MaxVideos:      1,
			MaxFileSize:    8 * megabyte,
			ImageFormats:   commonImageFormats,
			VideoFormats:   []string{"mp4", "mov", "webm"},
			SupportsLinks:  true,
			RequiresSdk:    true,
			HasWebFallback: true,
		},
		{
			Platform:       PlatformBluesky,
			DisplayName:    "Bluesky",
			AppID:          "bluesky",
			MaxTextLength:  300,
			MaxHashtags:    8,
			MaxMentions:    8,
			MaxImages:      4,
			MaxVideos:      1,
			MaxFileSize:    1 * megabyte,
			ImageFormats:   commonImageFormats,
			VideoFormats:   []string{"mp4"},
			SupportsLinks:  true,
			RequiresSdk:    true,
			HasWebFallback: true,
		},
		{
			Platform:         PlatformInstagram,
			DisplayName:      "Instagram",
			AppID:            "instagram",
			MaxTextLength:    2200,
			MaxHashtags:      30,
			MaxMentions:      20,
			MaxImages:        10,
			MaxVideos:        1,
			MaxFileSize:      100 * megabyte,
			MaxVideoDuration: 60 * time.Second,
			ImageFormats:     []string{"jpg", "jpeg", "png"},
			VideoFormats:     []string{"mp4", "mov"},
			SupportsStories:  true,
			MediaRequired:    true,
			RequiresSdk:      true,
			RequiresUserEdit: true,
		},
		{
			Platform:        PlatformFacebook,
			DisplayName:     "Facebook",
			AppID:           "facebook",
			MaxTextLength:   63206,
			MaxHashtags:     30,
			MaxImages:       10,
			MaxVideos:       1,
			MaxFileSize:     100 * megabyte,
			ImageFormats:    commonImageFormats,
			VideoFormats:    []string{"mp4", "mov"},
			SupportsLinks:   true,
			SupportsStories: true,
			RequiresSdk:     true,
			HasWebFallback:  true,
			IntentCompatible: func(p Post) bool {
				if p.MediaCount(MediaImage) > 1 || p.MediaCount(MediaVideo) > 0 {
					return false
				}
				return p.Location == nil
			},
		},
		{
			Platform:       PlatformWhatsApp,
			DisplayName:    "WhatsApp",
			AppID:          "whatsapp",
			MaxTextLength:  65536,
			MaxImages:      30,
			MaxVideos:      30,
			MaxFileSize:    16 * megabyte,
			ImageFormats:   commonImageFormats,
			VideoFormats:   []string{"mp4", "3gp"},
			SupportsLinks:  true,
			HasWebFallback: true,
		},
		{
			Platform:       PlatformTelegram,
			DisplayName:    "Telegram",
			AppID:          "telegram",
			MaxTextLength:  4096,
			MaxImages:      10,
			MaxVideos:      10,
			MaxFileSize:    50 * megabyte,
			ImageFormats:   commonImageFormats,
			VideoFormats:   []string{"mp4", "mov", "webm"},
			SupportsLinks:  true,
			HasWebFallback: true,
		},
		{
			Platform:       PlatformLinkedIn,
			DisplayName:    "LinkedIn",
			AppID:          "linkedin",
			MaxTextLength:  3000,
			MaxHashtags:    20,
			MaxImages:      9,
			MaxVideos:      1,
			MaxFileSize:    200 * megabyte,
			ImageFormats:   []string{"jpg", "jpeg", "png", "gif"},
			VideoFormats:   []string{"mp4"},
			SupportsLinks:  true,
			HasWebFallback: true,
		},
		{
			Platform:      PlatformNative,
			DisplayName:   "System share",
			AppID:         "native",
			MaxImages:     10,
			MaxVideos:     10,
			ImageFormats:  commonImageFormats,
			VideoFormats:  []string{"mp4", "mov", "webm", "3gp"},
			SupportsLinks: true,
		},
	}
}
