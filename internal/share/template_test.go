package share

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderSubstitutesTokens(t *testing.T) {
	tmpl := &Template{Text: "Visiting {{city}} with {{friend}}!"}
	got := tmpl.Render(map[string]string{"city": "Lisbon", "friend": "Sam"})
	assert.Equal(t, "Visiting Lisbon with Sam!", got)
}

func TestRenderCaseInsensitiveKeys(t *testing.T) {
	tmpl := &Template{Text: "Hello {{Name}} and {{NAME}}"}
	got := tmpl.Render(map[string]string{"name": "Ada"})
	assert.Equal(t, "Hello Ada and Ada", got)

	tmpl = &Template{Text: "Hello {{name}}"}
	got = tmpl.Render(map[string]string{"NAME": "Ada"})
	assert.Equal(t, "Hello Ada", got)
}

func TestRenderUnknownTokenLeftVerbatim(t *testing.T) {
	tmpl := &Template{Text: "Hello {{name}}, welcome to {{city}}"}
	got := tmpl.Render(map[string]string{"name": "Ada"})
	assert.Equal(t, "Hello Ada, welcome to {{city}}", got)
}

func TestRenderIdentityLaw(t *testing.T) {
	templates := []string{
		"",
		"no tokens here",
		"one {{token}}",
		"{{a}}{{b}}{{a}}",
		"malformed {{ spaced }} stays",
	}
	for _, text := range templates {
		tmpl := &Template{Text: text}
		assert.Equal(t, text, tmpl.Render(nil), "render with empty placeholders must be identity")
		assert.Equal(t, text, tmpl.Render(map[string]string{}))
	}
}

func TestRenderIdempotentWithoutNestedTokens(t *testing.T) {
	values := map[string]string{"city": "Porto"}
	tmpl := &Template{Text: "Off to {{city}}"}
	once := tmpl.Render(values)
	again := (&Template{Text: once}).Render(values)
	assert.Equal(t, once, again)
}

func TestRenderWithHashtags(t *testing.T) {
	tmpl := &Template{Hashtags: "{{topic}} Travel #travel sunsets"}
	got := tmpl.RenderWithHashtags(map[string]string{"topic": "Beach"})
	assert.Equal(t, "#Beach #Travel #sunsets", got)
}

func TestExtractPlaceholders(t *testing.T) {
	got := ExtractPlaceholders("{{City}} then {{friend}} then {{city}} again")
	assert.Equal(t, []string{"city", "friend"}, got)

	assert.Nil(t, ExtractPlaceholders("no tokens"))
}

func TestNormalizeHashtags(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"already prefixed", "#travel #food", []string{"#travel", "#food"}},
		{"bare words", "travel food", []string{"#travel", "#food"}},
		{"dedupe case-insensitive first-seen", "Travel #travel TRAVEL", []string{"#Travel"}},
		{"commas and whitespace", "travel,food,  drinks", []string{"#travel", "#food", "#drinks"}},
		{"empty", "", nil},
		{"lone hash dropped", "# travel", []string{"#travel"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeHashtags(tt.input))
		})
	}
}
