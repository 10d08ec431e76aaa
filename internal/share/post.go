package share

import (
	"strings"
	"time"
)

// MediaType distinguishes the two attachment kinds subject to separate
// per-platform count limits.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// Media describes one attachment. Source is an opaque reference produced by
// the media pipeline; the engine never opens it.
type Media struct {
	Type     MediaType
	Source   string
	Format   string // lowercase extension without dot, e.g. "jpg"
	Width    int
	Height   int
	Size     int64 // bytes
	Duration time.Duration
	Order    int
}

// Location is an optional place tag on a post.
type Location struct {
	Name      string
	Latitude  float64
	Longitude float64
}

// Post is the content of one share attempt. Values are treated as immutable
// once validated: preference application returns a fresh copy and never
// mutates its input.
type Post struct {
	Title        string
	Text         string
	Hashtags     []string // ordered, stored without the '#' prefix
	Mentions     []string // ordered, stored without the '@' prefix
	Media        []Media  // ordered by Order
	URL          string
	Location     *Location
	Platform     Platform
	Placeholders map[string]string
	Metadata     map[string]string
}

// Clone returns a deep copy so enrichment can build a new value.
func (p Post) Clone() Post {
	out := p
	out.Hashtags = append([]string(nil), p.Hashtags...)
	out.Mentions = append([]string(nil), p.Mentions...)
	out.Media = append([]Media(nil), p.Media...)
	if p.Location != nil {
		loc := *p.Location
		out.Location = &loc
	}
	if p.Placeholders != nil {
		out.Placeholders = make(map[string]string, len(p.Placeholders))
		for k, v := range p.Placeholders {
			out.Placeholders[k] = v
		}
	}
	if p.Metadata != nil {
		out.Metadata = make(map[string]string, len(p.Metadata))
		for k, v := range p.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}

// MediaCount reports how many attachments of the given type the post carries.
func (p Post) MediaCount(t MediaType) int {
	n := 0
	for _, m := range p.Media {
		if m.Type == t {
			n++
		}
	}
	return n
}

// canonicalTag strips a leading '#' and folds case so "#Travel" and "travel"
// compare equal.
func canonicalTag(tag string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(tag), "#"))
}

func canonicalMention(m string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(m), "@"))
}

func containsTag(tags []string, tag string) bool {
	want := canonicalTag(tag)
	for _, t := range tags {
		if canonicalTag(t) == want {
			return true
		}
	}
	return false
}

func containsMention(mentions []string, m string) bool {
	want := canonicalMention(m)
	for _, existing := range mentions {
		if canonicalMention(existing) == want {
			return true
		}
	}
	return false
}
