// Package templatecfg loads share template catalogs from a config file.
package templatecfg

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"shareflow/internal/share"
)

// bareTokenPattern finds anything that looks like a placeholder so malformed
// names (non-alphanumeric) can be rejected at load time instead of surviving
// verbatim into posts.
var bareTokenPattern = regexp.MustCompile(`\{\{([^}]*)\}\}`)

var validName = regexp.MustCompile(`^[A-Za-z0-9]+$`)

type record struct {
	Platform        string `mapstructure:"platform"`
	Category        string `mapstructure:"category"`
	TextTemplate    string `mapstructure:"textTemplate"`
	HashtagTemplate string `mapstructure:"hashtagTemplate"`
	MaxTextLength   int    `mapstructure:"maxTextLength"`
	SortOrder       int    `mapstructure:"sortOrder"`
}

// Catalog is an ordered set of templates looked up by platform and category.
type Catalog struct {
	templates []share.Template
}

// Load reads a template catalog file (YAML, JSON, or TOML — whatever viper
// recognizes from the extension) with a top-level `templates` list.
func Load(path string) (*Catalog, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read template config: %w", err)
	}

	var records []record
	if err := v.UnmarshalKey("templates", &records); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	catalog := &Catalog{}
	for i, r := range records {
		platform, err := share.ParsePlatform(r.Platform)
		if err != nil {
			return nil, fmt.Errorf("template %d: %w", i, err)
		}
		if strings.TrimSpace(r.Category) == "" {
			return nil, fmt.Errorf("template %d: category is required", i)
		}
		if err := checkPlaceholders(r.TextTemplate); err != nil {
			return nil, fmt.Errorf("template %d (%s/%s): %w", i, r.Platform, r.Category, err)
		}
		if err := checkPlaceholders(r.HashtagTemplate); err != nil {
			return nil, fmt.Errorf("template %d (%s/%s): %w", i, r.Platform, r.Category, err)
		}
		catalog.templates = append(catalog.templates, share.Template{
			Platform:      platform,
			Category:      strings.ToLower(strings.TrimSpace(r.Category)),
			Text:          r.TextTemplate,
			Hashtags:      r.HashtagTemplate,
			MaxTextLength: r.MaxTextLength,
			SortOrder:     r.SortOrder,
		})
	}

	sort.SliceStable(catalog.templates, func(i, j int) bool {
		return catalog.templates[i].SortOrder < catalog.templates[j].SortOrder
	})
	return catalog, nil
}

// All returns every template in sort order.
func (c *Catalog) All() []share.Template {
	return append([]share.Template(nil), c.templates...)
}

// Find returns the first template matching platform and category.
func (c *Catalog) Find(platform share.Platform, category string) (*share.Template, bool) {
	want := strings.ToLower(strings.TrimSpace(category))
	for i := range c.templates {
		if c.templates[i].Platform == platform && c.templates[i].Category == want {
			return &c.templates[i], true
		}
	}
	return nil, false
}

func checkPlaceholders(template string) error {
	for _, match := range bareTokenPattern.FindAllStringSubmatch(template, -1) {
		if !validName.MatchString(match[1]) {
			return fmt.Errorf("invalid placeholder name %q: names are alphanumeric only", match[1])
		}
	}
	return nil
}
