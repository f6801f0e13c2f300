package sunreader

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

// BlockKind identifies the variant held by a Block.
type BlockKind string

// Block kinds, one per semantic unit of article body content.
const (
	KindHeading     BlockKind = "heading"
	KindParagraph   BlockKind = "paragraph"
	KindCaption     BlockKind = "caption"
	KindImageCredit BlockKind = "image_credit"
	KindImage       BlockKind = "image"
	KindBlockQuote  BlockKind = "block_quote"
)

// Valid reports whether k is one of the known block kinds.
func (k BlockKind) Valid() bool {
	switch k {
	case KindHeading, KindParagraph, KindCaption, KindImageCredit, KindImage, KindBlockQuote:
		return true
	}
	return false
}

// Block is one semantic unit of article body content. It is a tagged union:
// Kind selects which payload field is meaningful.
//
//   - Heading, Caption, ImageCredit, BlockQuote use Text.
//   - Paragraph uses Rich.
//   - Image uses URL.
//
// Blocks are values; they hold no reference to the document they came from.
type Block struct {
	Kind BlockKind   `json:"kind"`
	Text string      `json:"text,omitempty"`
	URL  string      `json:"url,omitempty"`
	Rich *StyledText `json:"rich,omitempty"`
}

// NewHeading returns a heading block.
func NewHeading(text string) Block { return Block{Kind: KindHeading, Text: text} }

// NewParagraph returns a paragraph block holding styled text.
func NewParagraph(rich *StyledText) Block { return Block{Kind: KindParagraph, Rich: rich} }

// NewCaption returns a photo caption block.
func NewCaption(text string) Block { return Block{Kind: KindCaption, Text: text} }

// NewImageCredit returns a photo credit block.
func NewImageCredit(text string) Block { return Block{Kind: KindImageCredit, Text: text} }

// NewImage returns an image block.
func NewImage(sourceURL string) Block { return Block{Kind: KindImage, URL: sourceURL} }

// NewBlockQuote returns a block quote (pull quote) block.
func NewBlockQuote(text string) Block { return Block{Kind: KindBlockQuote, Text: text} }

// Validate returns an error if the block breaks the invariants of its kind.
func (b Block) Validate() error {
	switch b.Kind {
	case KindHeading, KindCaption, KindImageCredit, KindBlockQuote:
		if b.Text == "" {
			return Errorf(EINVALID, "%s block text required", b.Kind)
		}
	case KindParagraph:
		if b.Rich == nil || b.Rich.Len() == 0 {
			return Errorf(EINVALID, "paragraph block text required")
		}
	case KindImage:
		if !IsValidURL(b.URL) {
			return Errorf(EINVALID, "image block URL %q is not a valid URL", b.URL)
		}
	default:
		return Errorf(EINVALID, "unknown block kind %q", b.Kind)
	}
	return nil
}

// PlainText returns the block's text content without styling.
// Image blocks return an empty string.
func (b Block) PlainText() string {
	if b.Kind == KindParagraph {
		if b.Rich == nil {
			return ""
		}
		return b.Rich.String()
	}
	return b.Text
}

// ImageURLs returns the source URLs of all image blocks in document order.
func ImageURLs(blocks []Block) []string {
	var urls []string
	for _, b := range blocks {
		if b.Kind == KindImage {
			urls = append(urls, b.URL)
		}
	}
	return urls
}

// IsValidURL reports whether s is a non-empty URL string without whitespace
// that net/url can parse.
func IsValidURL(s string) bool {
	if s == "" || strings.ContainsAny(s, " \t\n\r\f\v") {
		return false
	}
	_, err := url.Parse(s)
	return err == nil
}

// StyledText is rich text: ordered runs of text, each with its own style,
// plus one paragraph style that applies to the whole range.
type StyledText struct {
	Runs      []Run          `json:"runs"`
	Paragraph ParagraphStyle `json:"paragraph"`
}

// Run is a span of text sharing a single style.
type Run struct {
	Text  string   `json:"text"`
	Style RunStyle `json:"style"`
}

// RunStyle holds the character-level attributes of a run.
type RunStyle struct {
	FontFamily    string  `json:"fontFamily,omitempty"`
	FontSize      float64 `json:"fontSize,omitempty"`
	Bold          bool    `json:"bold,omitempty"`
	Italic        bool    `json:"italic,omitempty"`
	Underline     bool    `json:"underline,omitempty"`
	Strikethrough bool    `json:"strikethrough,omitempty"`
	Superscript   bool    `json:"superscript,omitempty"`
	Subscript     bool    `json:"subscript,omitempty"`
	Link          string  `json:"link,omitempty"`
}

// ParagraphStyle holds attributes applied uniformly to a whole StyledText.
type ParagraphStyle struct {
	LineSpacing float64 `json:"lineSpacing"`
}

// String returns the concatenated text of all runs.
func (t *StyledText) String() string {
	if t == nil {
		return ""
	}
	var sb strings.Builder
	for _, r := range t.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Len returns the length of the text in runes.
func (t *StyledText) Len() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, r := range t.Runs {
		n += utf8.RuneCountInString(r.Text)
	}
	return n
}

// Append adds text with the given style, merging it into the last run when
// the styles are equal. Empty text is ignored.
func (t *StyledText) Append(text string, style RunStyle) {
	if text == "" {
		return
	}
	if n := len(t.Runs); n > 0 && t.Runs[n-1].Style == style {
		t.Runs[n-1].Text += text
		return
	}
	t.Runs = append(t.Runs, Run{Text: text, Style: style})
}
