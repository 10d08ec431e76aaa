package templatecfg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareflow/internal/share"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "templates.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSortsBySortOrder(t *testing.T) {
	path := writeCatalog(t, `
templates:
  - platform: twitter
    category: release
    textTemplate: "v{{version}} is out"
    hashtagTemplate: "release {{project}}"
    maxTextLength: 280
    sortOrder: 2
  - platform: twitter
    category: trip
    textTemplate: "Off to {{city}}!"
    sortOrder: 1
`)
	catalog, err := Load(path)
	require.NoError(t, err)

	all := catalog.All()
	require.Len(t, all, 2)
	assert.Equal(t, "trip", all[0].Category)
	assert.Equal(t, "release", all[1].Category)
}

func TestLoadRejectsUnknownPlatform(t *testing.T) {
	path := writeCatalog(t, `
templates:
  - platform: friendster
    category: trip
    textTemplate: "x"
`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "unknown platform")
}

func TestLoadRejectsMalformedPlaceholder(t *testing.T) {
	path := writeCatalog(t, `
templates:
  - platform: twitter
    category: trip
    textTemplate: "Off to {{city name}}!"
`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "alphanumeric")
}

func TestLoadRejectsMissingCategory(t *testing.T) {
	path := writeCatalog(t, `
templates:
  - platform: twitter
    textTemplate: "x"
`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "category")
}

func TestFindMatchesCaseInsensitiveCategory(t *testing.T) {
	path := writeCatalog(t, `
templates:
  - platform: twitter
    category: Trip
    textTemplate: "Off to {{city}}!"
    hashtagTemplate: "travel {{city}}"
`)
	catalog, err := Load(path)
	require.NoError(t, err)

	tmpl, ok := catalog.Find(share.PlatformTwitter, "trip")
	require.True(t, ok)
	assert.Equal(t, "Off to Lisbon!", tmpl.Render(map[string]string{"city": "Lisbon"}))
	assert.Equal(t, "#travel #Lisbon", tmpl.RenderWithHashtags(map[string]string{"city": "Lisbon"}))

	_, ok = catalog.Find(share.PlatformMastodon, "trip")
	assert.False(t, ok)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
