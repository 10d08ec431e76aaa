package share

import "strings"

// Platform identifies a supported social network target. The set is closed;
// descriptors for every member are registered in the Catalog at construction.
type Platform string

const (
	PlatformTwitter   Platform = "twitter"
	PlatformMastodon  Platform = "mastodon"
	PlatformBluesky   Platform = "bluesky"
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
	PlatformWhatsApp  Platform = "whatsapp"
	PlatformTelegram  Platform = "telegram"
	PlatformLinkedIn  Platform = "linkedin"

	// PlatformNative is the generic OS share surface rather than a specific
	// network; it is always considered installed.
	PlatformNative Platform = "native"
)

func (p Platform) String() string { return string(p) }

// Platforms returns the closed set of supported targets in display order.
func Platforms() []Platform {
	return []Platform{
		PlatformTwitter,
		PlatformMastodon,
		PlatformBluesky,
		PlatformInstagram,
		PlatformFacebook,
		PlatformWhatsApp,
		PlatformTelegram,
		PlatformLinkedIn,
		PlatformNative,
	}
}

// ParsePlatform resolves a user-supplied name to a Platform.
func ParsePlatform(s string) (Platform, error) {
	name := strings.TrimSpace(strings.ToLower(s))
	for _, p := range Platforms() {
		if string(p) == name {
			return p, nil
		}
	}
	return "", UnknownPlatformError{Platform: s}
}
