package sunreader

import "strings"

// Default typography for paragraph text.
const (
	DefaultFontFamily  = "Georgia"
	DefaultFontSize    = 18
	DefaultLineSpacing = 10
)

// Rule maps an element shape to the kind of block it produces.
// An element matches when its tag equals Tag and, if Class is set,
// it carries that CSS class.
type Rule struct {
	Tag   string    `json:"tag" yaml:"tag"`
	Class string    `json:"class,omitempty" yaml:"class,omitempty"`
	Kind  BlockKind `json:"kind" yaml:"kind"`
}

// Matches reports whether an element with the given tag and class test
// satisfies the rule.
func (r Rule) Matches(tag string, hasClass func(string) bool) bool {
	if !strings.EqualFold(r.Tag, tag) {
		return false
	}
	return r.Class == "" || hasClass(r.Class)
}

// TextStyle is the typography applied to paragraph text.
type TextStyle struct {
	FontFamily  string  `json:"fontFamily" yaml:"font_family"`
	FontSize    float64 `json:"fontSize" yaml:"font_size"`
	LineSpacing float64 `json:"lineSpacing" yaml:"line_spacing"`
}

// ParseConfig is the classification vocabulary of a CMS markup dialect.
//
// Rules are evaluated in order for every element and the first match wins,
// so more specific rules (tag plus class) must precede generic ones for the
// same tag. Elements matching no rule produce no block.
type ParseConfig struct {
	Rules []Rule    `json:"rules" yaml:"rules"`
	Style TextStyle `json:"style" yaml:"style"`

	// BaseURL, when set, is used to resolve relative image URLs.
	BaseURL string `json:"baseUrl,omitempty" yaml:"base_url,omitempty"`
}

// DefaultConfig returns the vocabulary used by WordPress article bodies.
func DefaultConfig() ParseConfig {
	return ParseConfig{
		Rules: []Rule{
			{Tag: "p", Class: "wp-media-credit", Kind: KindImageCredit},
			{Tag: "p", Class: "wp-caption-text", Kind: KindCaption},
			{Tag: "p", Kind: KindParagraph},
			{Tag: "img", Kind: KindImage},
			{Tag: "aside", Class: "module", Kind: KindBlockQuote},
			{Tag: "h2", Kind: KindHeading},
		},
		Style: TextStyle{
			FontFamily:  DefaultFontFamily,
			FontSize:    DefaultFontSize,
			LineSpacing: DefaultLineSpacing,
		},
	}
}

// Match returns the first rule matching the element, if any.
func (c *ParseConfig) Match(tag string, hasClass func(string) bool) (Rule, bool) {
	for _, r := range c.Rules {
		if r.Matches(tag, hasClass) {
			return r, true
		}
	}
	return Rule{}, false
}

// Validate returns an error if the configuration contains invalid fields.
func (c *ParseConfig) Validate() error {
	for i, r := range c.Rules {
		if r.Tag == "" {
			return Errorf(EINVALID, "rule %d: tag required", i)
		}
		if !r.Kind.Valid() {
			return Errorf(EINVALID, "rule %d: unknown block kind %q", i, r.Kind)
		}
	}
	if c.Style.FontSize <= 0 {
		return Errorf(EINVALID, "font size must be positive")
	}
	if c.Style.LineSpacing < 0 {
		return Errorf(EINVALID, "line spacing must not be negative")
	}
	if c.BaseURL != "" && !IsValidURL(c.BaseURL) {
		return Errorf(EINVALID, "invalid base URL %q", c.BaseURL)
	}
	return nil
}
