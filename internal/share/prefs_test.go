package share

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prefsWith(pp PlatformPrefs) Preferences {
	return Preferences{
		IncludeAppHashtag: true,
		IncludeLocation:   true,
		Platforms:         map[Platform]PlatformPrefs{PlatformTwitter: pp},
	}
}

func TestApplyPreferencesInsertsAttributionFirst(t *testing.T) {
	caps := &Capabilities{MaxHashtags: 10}
	post := Post{Platform: PlatformTwitter, Hashtags: []string{"sunset"}}

	got := ApplyPreferences(post, prefsWith(PlatformPrefs{}), caps)
	assert.Equal(t, []string{AppHashtag, "sunset"}, got.Hashtags)
}

func TestApplyPreferencesSkipsDuplicateDefaults(t *testing.T) {
	caps := &Capabilities{MaxHashtags: 10}
	post := Post{Platform: PlatformTwitter, Hashtags: []string{"Travel"}}
	prefs := prefsWith(PlatformPrefs{DefaultHashtags: []string{"travel", "beach"}})
	prefs.IncludeAppHashtag = false

	got := ApplyPreferences(post, prefs, caps)
	assert.Equal(t, []string{"Travel", "beach"}, got.Hashtags,
		"user spelling wins and the case-insensitive duplicate is skipped")
}

func TestApplyPreferencesAppendsMentionsWithoutDuplicates(t *testing.T) {
	caps := &Capabilities{}
	post := Post{Platform: PlatformTwitter, Mentions: []string{"alice"}}
	prefs := prefsWith(PlatformPrefs{DefaultMentions: []string{"Alice", "bob"}})

	got := ApplyPreferences(post, prefs, caps)
	assert.Equal(t, []string{"alice", "bob"}, got.Mentions)
}

func TestApplyPreferencesTruncatesPreservingOrder(t *testing.T) {
	caps := &Capabilities{MaxHashtags: 3}
	post := Post{Platform: PlatformTwitter, Hashtags: []string{"one", "two", "three", "four"}}

	got := ApplyPreferences(post, prefsWith(PlatformPrefs{}), caps)
	assert.Equal(t, []string{AppHashtag, "one", "two"}, got.Hashtags,
		"attribution is never dropped ahead of user tags while the cap is >= 1")
}

func TestApplyPreferencesHashtagCapOverride(t *testing.T) {
	caps := &Capabilities{MaxHashtags: 10}
	post := Post{Platform: PlatformTwitter, Hashtags: []string{"a", "b", "c"}}
	prefs := prefsWith(PlatformPrefs{HashtagCap: 2})
	prefs.IncludeAppHashtag = false

	got := ApplyPreferences(post, prefs, caps)
	assert.Equal(t, []string{"a", "b"}, got.Hashtags)
}

func TestApplyPreferencesClearsLocationWhenToggledOff(t *testing.T) {
	caps := &Capabilities{}
	post := Post{Platform: PlatformTwitter, Location: &Location{Name: "Lisbon"}}

	prefs := prefsWith(PlatformPrefs{})
	prefs.IncludeLocation = false
	got := ApplyPreferences(post, prefs, caps)
	assert.Nil(t, got.Location)

	prefs.IncludeLocation = true
	got = ApplyPreferences(post, prefs, caps)
	require.NotNil(t, got.Location)
	assert.Equal(t, "Lisbon", got.Location.Name)
}

func TestApplyPreferencesIdempotent(t *testing.T) {
	caps := &Capabilities{MaxHashtags: 4}
	prefs := prefsWith(PlatformPrefs{
		DefaultHashtags: []string{"travel", "beach", "sunset"},
		DefaultMentions: []string{"shareflowapp"},
	})
	post := Post{
		Platform: PlatformTwitter,
		Hashtags: []string{"Travel", "boats"},
		Mentions: []string{"alice"},
		Location: &Location{Name: "Faro"},
	}

	once := ApplyPreferences(post, prefs, caps)
	twice := ApplyPreferences(once, prefs, caps)
	assert.Equal(t, once.Hashtags, twice.Hashtags)
	assert.Equal(t, once.Mentions, twice.Mentions)
	assert.Equal(t, once.Location, twice.Location)
}

func TestApplyPreferencesDoesNotMutateInput(t *testing.T) {
	caps := &Capabilities{MaxHashtags: 10}
	post := Post{Platform: PlatformTwitter, Hashtags: []string{"sunset"}, Location: &Location{Name: "Faro"}}
	prefs := prefsWith(PlatformPrefs{DefaultHashtags: []string{"travel"}})
	prefs.IncludeLocation = false

	_ = ApplyPreferences(post, prefs, caps)
	assert.Equal(t, []string{"sunset"}, post.Hashtags)
	assert.NotNil(t, post.Location)
}

func TestEnabledPlatformsFollowsDisplayOrder(t *testing.T) {
	prefs := Preferences{
		PlatformOrder: []Platform{PlatformMastodon, PlatformTwitter, PlatformBluesky},
		Platforms: map[Platform]PlatformPrefs{
			PlatformMastodon: {Enabled: true},
			PlatformTwitter:  {Enabled: false},
			PlatformBluesky:  {Enabled: true},
		},
	}
	assert.Equal(t, []Platform{PlatformMastodon, PlatformBluesky}, prefs.EnabledPlatforms())
}
