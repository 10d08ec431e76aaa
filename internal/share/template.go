package share

import (
	"regexp"
	"strings"
)

// Template is one entry of a template catalog: the text and hashtag bodies a
// post is rendered from for a given platform and content category.
type Template struct {
	Platform      Platform
	Category      string
	Text          string
	Hashtags      string
	MaxTextLength int
	SortOrder     int
}

// placeholderPattern matches {{name}} tokens. Names are alphanumeric only.
var placeholderPattern = regexp.MustCompile(`\{\{([A-Za-z0-9]+)\}\}`)

// Render substitutes every {{name}} token case-insensitively from values.
// Tokens with no matching key are left verbatim so a missing value degrades
// the message instead of dropping it. The receiver must be non-nil; a nil
// template is a caller bug and panics.
func (t *Template) Render(values map[string]string) string {
	return substitute(t.Text, values)
}

// RenderWithHashtags renders the hashtag body, then normalizes the result
// into '#'-prefixed, case-insensitively deduplicated tokens in first-seen
// order, joined by single spaces.
func (t *Template) RenderWithHashtags(values map[string]string) string {
	rendered := substitute(t.Hashtags, values)
	return strings.Join(NormalizeHashtags(rendered), " ")
}

func substitute(template string, values map[string]string) string {
	if len(values) == 0 {
		return template
	}
	lowered := make(map[string]string, len(values))
	for k, v := range values {
		lowered[strings.ToLower(k)] = v
	}
	return placeholderPattern.ReplaceAllStringFunc(template, func(token string) string {
		name := strings.ToLower(token[2 : len(token)-2])
		if v, ok := lowered[name]; ok {
			return v
		}
		return token
	})
}

// ExtractPlaceholders returns the distinct token names of a template in
// first-seen order, lowercased. Intended for authoring and validation
// tooling.
func ExtractPlaceholders(template string) []string {
	var names []string
	seen := make(map[string]struct{})
	for _, match := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		name := strings.ToLower(match[1])
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// NormalizeHashtags splits a free-form hashtag string on whitespace and
// commas, strips any existing '#' prefixes, drops case-insensitive
// duplicates keeping the first spelling, and returns each survivor with a
// single '#' prefix.
func NormalizeHashtags(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == ','
	})
	var out []string
	seen := make(map[string]struct{})
	for _, f := range fields {
		tag := strings.TrimPrefix(f, "#")
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, "#"+tag)
	}
	return out
}
