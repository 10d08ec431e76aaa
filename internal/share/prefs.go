package share

// AppHashtag is the mandatory attribution tag inserted at the front of the
// keyword list when the user has the toggle enabled.
const AppHashtag = "shareflow"

// PlatformPrefs are the per-platform preference fields.
type PlatformPrefs struct {
	Enabled         bool
	DefaultHashtags []string
	DefaultMentions []string
	// HashtagCap overrides the platform's MaxHashtags when set (> 0) and
	// lower than the platform limit.
	HashtagCap int
}

// Preferences is the read-only user preference input to ApplyPreferences.
type Preferences struct {
	// PlatformOrder is the display order for the share-target picker.
	PlatformOrder []Platform
	// IncludeAppHashtag prepends AppHashtag to every post's keywords.
	IncludeAppHashtag bool
	// IncludeLocation keeps the post's place tag; when false, location is
	// stripped during enrichment.
	IncludeLocation bool
	Platforms       map[Platform]PlatformPrefs
}

// EnabledPlatforms returns the targets the user has switched on, in display
// order.
func (p Preferences) EnabledPlatforms() []Platform {
	out := make([]Platform, 0, len(p.PlatformOrder))
	for _, platform := range p.PlatformOrder {
		if p.Platforms[platform].Enabled {
			out = append(out, platform)
		}
	}
	return out
}

// ApplyPreferences merges preferences into a post and returns the enriched
// copy; the input is never mutated. Steps run in a fixed order so the result
// is reproducible:
//
//  1. insert the attribution tag at the front (when enabled, once),
//  2. append the platform's default hashtags, skipping duplicates,
//  3. append the platform's default mentions, skipping duplicates,
//  4. truncate the keyword list to the effective cap, keeping the original
//     order so attribution and defaults are never dropped before
//     user-authored tags,
//  5. clear the location when the toggle is off.
//
// The function is idempotent: re-applying the same preferences to an
// already-enriched post changes nothing.
func ApplyPreferences(post Post, prefs Preferences, caps *Capabilities) Post {
	out := post.Clone()
	pp := prefs.Platforms[post.Platform]

	if prefs.IncludeAppHashtag && !containsTag(out.Hashtags, AppHashtag) {
		out.Hashtags = append([]string{AppHashtag}, out.Hashtags...)
	}

	for _, tag := range pp.DefaultHashtags {
		if !containsTag(out.Hashtags, tag) {
			out.Hashtags = append(out.Hashtags, tag)
		}
	}

	for _, mention := range pp.DefaultMentions {
		if !containsMention(out.Mentions, mention) {
			out.Mentions = append(out.Mentions, mention)
		}
	}

	if limit := effectiveHashtagCap(pp, caps); limit > 0 && len(out.Hashtags) > limit {
		out.Hashtags = out.Hashtags[:limit]
	}

	if !prefs.IncludeLocation {
		out.Location = nil
	}

	return out
}

func effectiveHashtagCap(pp PlatformPrefs, caps *Capabilities) int {
	limit := caps.MaxHashtags
	if pp.HashtagCap > 0 && (limit == 0 || pp.HashtagCap < limit) {
		limit = pp.HashtagCap
	}
	return limit
}
