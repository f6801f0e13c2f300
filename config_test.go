package sunreader_test

import (
	"testing"

	"github.com/cornellsun/sunreader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classes(names ...string) func(string) bool {
	return func(c string) bool {
		for _, n := range names {
			if n == c {
				return true
			}
		}
		return false
	}
}

func TestDefaultConfig_Match(t *testing.T) {
	t.Parallel()

	cfg := sunreader.DefaultConfig()

	tests := []struct {
		name    string
		tag     string
		classes []string
		kind    sunreader.BlockKind
		matched bool
	}{
		{"plain paragraph", "p", nil, sunreader.KindParagraph, true},
		{"caption", "p", []string{"wp-caption-text"}, sunreader.KindCaption, true},
		{"credit", "p", []string{"wp-media-credit"}, sunreader.KindImageCredit, true},
		{"credit wins over caption", "p", []string{"wp-caption-text", "wp-media-credit"}, sunreader.KindImageCredit, true},
		{"image", "img", nil, sunreader.KindImage, true},
		{"heading", "h2", nil, sunreader.KindHeading, true},
		{"upper case tag", "H2", nil, sunreader.KindHeading, true},
		{"pull quote", "aside", []string{"module"}, sunreader.KindBlockQuote, true},
		{"aside without module", "aside", nil, "", false},
		{"h3 not recognized", "h3", nil, "", false},
		{"div not recognized", "div", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rule, ok := cfg.Match(tt.tag, classes(tt.classes...))

			assert.Equal(t, tt.matched, ok)
			assert.Equal(t, tt.kind, rule.Kind)
		})
	}
}

func TestDefaultConfig_Style(t *testing.T) {
	t.Parallel()

	cfg := sunreader.DefaultConfig()

	assert.Equal(t, "Georgia", cfg.Style.FontFamily)
	assert.Equal(t, 18.0, cfg.Style.FontSize)
	assert.Equal(t, 10.0, cfg.Style.LineSpacing)
	require.NoError(t, cfg.Validate())
}

func TestParseConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*sunreader.ParseConfig)
	}{
		{"empty tag", func(c *sunreader.ParseConfig) {
			c.Rules = append(c.Rules, sunreader.Rule{Kind: sunreader.KindHeading})
		}},
		{"unknown kind", func(c *sunreader.ParseConfig) {
			c.Rules = append(c.Rules, sunreader.Rule{Tag: "h3", Kind: "subheading"})
		}},
		{"zero font size", func(c *sunreader.ParseConfig) { c.Style.FontSize = 0 }},
		{"negative line spacing", func(c *sunreader.ParseConfig) { c.Style.LineSpacing = -1 }},
		{"invalid base URL", func(c *sunreader.ParseConfig) { c.BaseURL = "https://exa mple.com" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := sunreader.DefaultConfig()
			tt.modify(&cfg)

			err := cfg.Validate()

			require.Error(t, err)
			assert.Equal(t, sunreader.EINVALID, sunreader.ErrorCode(err))
		})
	}
}
