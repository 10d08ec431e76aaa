package share

import (
	"fmt"
	"strings"
)

// UnknownPlatformError reports a lookup with a platform key that was never
// registered. This is a programmer error; callers should treat it as fatal.
type UnknownPlatformError struct {
	Platform string
}

func (e UnknownPlatformError) Error() string {
	return fmt.Sprintf("unknown platform %q", e.Platform)
}

// MissingEnvError is returned when a sender's required configuration is missing.
type MissingEnvError struct {
	Sender    string
	Variables []string
}

func (e MissingEnvError) Error() string {
	if len(e.Variables) == 0 {
		return fmt.Sprintf("%s credentials not configured", e.Sender)
	}
	return fmt.Sprintf("%s credentials not configured (missing %s)", e.Sender, strings.Join(e.Variables, ", "))
}

// UserCancelledError is returned by a sender when the user backed out of the
// hand-off (closed the vendor editor, dismissed the share surface) before
// anything was published.
type UserCancelledError struct {
	Platform Platform
}

func (e UserCancelledError) Error() string {
	return fmt.Sprintf("share to %s cancelled by user", e.Platform)
}
