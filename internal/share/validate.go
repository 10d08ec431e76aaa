package share

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Stable issue codes. Errors block dispatch; warnings accompany it.
const (
	CodeTextTooLong       = "TEXT_TOO_LONG"
	CodeTooManyHashtags   = "TOO_MANY_HASHTAGS"
	CodeTooManyMentions   = "TOO_MANY_MENTIONS"
	CodeTooManyImages     = "TOO_MANY_IMAGES"
	CodeTooManyVideos     = "TOO_MANY_VIDEOS"
	CodeFileTooLarge      = "FILE_TOO_LARGE"
	CodeImageTooLarge     = "IMAGE_DIMENSIONS_TOO_LARGE"
	CodeVideoTooLong      = "VIDEO_TOO_LONG"
	CodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	CodeMediaRequired     = "MEDIA_REQUIRED"
	CodeLinkUnsupported   = "LINK_UNSUPPORTED"
)

// Issue is a single validation finding with a stable code.
type Issue struct {
	Code    string
	Message string
}

func (i Issue) String() string { return fmt.Sprintf("%s: %s", i.Code, i.Message) }

// ValidationResult separates blocking errors from advisory warnings so a
// suboptimal-but-deliverable post can proceed while a platform-rejectable
// one is stopped before any external call.
type ValidationResult struct {
	Errors   []Issue
	Warnings []Issue
}

// Valid reports whether dispatch may proceed.
func (r ValidationResult) Valid() bool { return len(r.Errors) == 0 }

func (r *ValidationResult) addError(code, format string, args ...any) {
	r.Errors = append(r.Errors, Issue{Code: code, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) addWarning(code, format string, args ...any) {
	r.Warnings = append(r.Warnings, Issue{Code: code, Message: fmt.Sprintf(format, args...)})
}

// Validate checks a post against a platform's capability descriptor. Every
// check runs; nothing short-circuits, so the caller gets the complete list
// of violations in one pass. Text length counts runes, not bytes.
func Validate(post Post, caps *Capabilities) ValidationResult {
	var result ValidationResult

	if caps.MaxTextLength > 0 {
		if n := utf8.RuneCountInString(post.Text); n > caps.MaxTextLength {
			result.addError(CodeTextTooLong, "text is %d characters, %s allows %d", n, caps.DisplayName, caps.MaxTextLength)
		}
	}

	if caps.MaxHashtags > 0 && len(post.Hashtags) > caps.MaxHashtags {
		result.addError(CodeTooManyHashtags, "%d hashtags, %s allows %d", len(post.Hashtags), caps.DisplayName, caps.MaxHashtags)
	}
	if caps.MaxMentions > 0 && len(post.Mentions) > caps.MaxMentions {
		result.addError(CodeTooManyMentions, "%d mentions, %s allows %d", len(post.Mentions), caps.DisplayName, caps.MaxMentions)
	}

	if images := post.MediaCount(MediaImage); caps.MaxImages > 0 && images > caps.MaxImages {
		result.addError(CodeTooManyImages, "%d images, %s allows %d", images, caps.DisplayName, caps.MaxImages)
	}
	if videos := post.MediaCount(MediaVideo); caps.MaxVideos > 0 && videos > caps.MaxVideos {
		result.addError(CodeTooManyVideos, "%d videos, %s allows %d", videos, caps.DisplayName, caps.MaxVideos)
	}

	for _, m := range post.Media {
		if caps.MaxFileSize > 0 && m.Size > caps.MaxFileSize {
			result.addError(CodeFileTooLarge, "%q is %d bytes, %s allows %d", m.Source, m.Size, caps.DisplayName, caps.MaxFileSize)
		}
		if m.Type == MediaImage && dimensionsExceeded(m, caps) {
			result.addError(CodeImageTooLarge, "%q is %dx%d, %s allows %dx%d", m.Source, m.Width, m.Height, caps.DisplayName, caps.MaxImageWidth, caps.MaxImageHeight)
		}
		if caps.MaxVideoDuration > 0 && m.Type == MediaVideo && m.Duration > caps.MaxVideoDuration {
			result.addError(CodeVideoTooLong, "%q runs %s, %s allows %s", m.Source, m.Duration, caps.DisplayName, caps.MaxVideoDuration)
		}
		if !formatSupported(m, caps) {
			result.addError(CodeUnsupportedFormat, "%q format %q not supported by %s", m.Source, m.Format, caps.DisplayName)
		}
	}

	if caps.MediaRequired && len(post.Media) == 0 {
		result.addError(CodeMediaRequired, "%s rejects text-only posts", caps.DisplayName)
	}

	// A link on a platform without link support still goes out as plain
	// text, so this is advisory only.
	if post.URL != "" && !caps.SupportsLinks {
		result.addWarning(CodeLinkUnsupported, "%s does not support links; the URL will be sent as plain text", caps.DisplayName)
	}

	return result
}

func dimensionsExceeded(m Media, caps *Capabilities) bool {
	if caps.MaxImageWidth > 0 && m.Width > caps.MaxImageWidth {
		return true
	}
	return caps.MaxImageHeight > 0 && m.Height > caps.MaxImageHeight
}

func formatSupported(m Media, caps *Capabilities) bool {
	var allowed []string
	switch m.Type {
	case MediaImage:
		allowed = caps.ImageFormats
	case MediaVideo:
		allowed = caps.VideoFormats
	}
	if len(allowed) == 0 {
		return true
	}
	format := strings.ToLower(strings.TrimPrefix(m.Format, "."))
	for _, f := range allowed {
		if f == format {
			return true
		}
	}
	return false
}
