// Package htmltomarkdown renders content blocks as Markdown. Blocks are
// first written as semantic HTML and then converted with html-to-markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
	"github.com/cornellsun/sunreader"
	"golang.org/x/net/html"
)

// Ensure Renderer implements sunreader.Renderer at compile time.
var _ sunreader.Renderer = (*Renderer)(nil)

// Renderer wraps html-to-markdown to render blocks as Markdown.
type Renderer struct {
	conv *converter.Converter
}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			strikethrough.NewStrikethroughPlugin(),
		),
	)
	return &Renderer{conv: conv}
}

// Render converts blocks to Markdown. An empty block list renders as an
// empty string.
func (r *Renderer) Render(blocks []sunreader.Block) (string, error) {
	if len(blocks) == 0 {
		return "", nil
	}

	md, err := r.conv.ConvertString(RenderHTML(blocks))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(md), nil
}

// RenderHTML writes blocks as semantic HTML: headings as h2, paragraphs
// with inline formatting, images as figures, captions and credits as
// emphasized and small print, pull quotes as blockquotes.
func RenderHTML(blocks []sunreader.Block) string {
	var sb strings.Builder
	for _, b := range blocks {
		switch b.Kind {
		case sunreader.KindHeading:
			sb.WriteString("<h2>" + html.EscapeString(b.Text) + "</h2>\n")
		case sunreader.KindParagraph:
			sb.WriteString("<p>")
			if b.Rich != nil {
				for _, run := range b.Rich.Runs {
					writeRun(&sb, run)
				}
			}
			sb.WriteString("</p>\n")
		case sunreader.KindCaption:
			sb.WriteString("<p><em>" + html.EscapeString(b.Text) + "</em></p>\n")
		case sunreader.KindImageCredit:
			sb.WriteString("<p><small>" + html.EscapeString(b.Text) + "</small></p>\n")
		case sunreader.KindImage:
			sb.WriteString(`<figure><img src="` + html.EscapeString(b.URL) + `" alt=""></figure>` + "\n")
		case sunreader.KindBlockQuote:
			sb.WriteString("<blockquote><p>" + html.EscapeString(b.Text) + "</p></blockquote>\n")
		}
	}
	return sb.String()
}

// writeRun writes a run wrapped in the inline elements its style implies.
func writeRun(sb *strings.Builder, run sunreader.Run) {
	type tag struct{ open, close string }
	var tags []tag
	s := run.Style
	if s.Link != "" {
		tags = append(tags, tag{`<a href="` + html.EscapeString(s.Link) + `">`, "</a>"})
	}
	if s.Bold {
		tags = append(tags, tag{"<strong>", "</strong>"})
	}
	if s.Italic {
		tags = append(tags, tag{"<em>", "</em>"})
	}
	if s.Strikethrough {
		tags = append(tags, tag{"<del>", "</del>"})
	}
	if s.Superscript {
		tags = append(tags, tag{"<sup>", "</sup>"})
	}
	if s.Subscript {
		tags = append(tags, tag{"<sub>", "</sub>"})
	}

	for _, t := range tags {
		sb.WriteString(t.open)
	}
	for i, line := range strings.Split(run.Text, "\n") {
		if i > 0 {
			sb.WriteString("<br>")
		}
		sb.WriteString(html.EscapeString(line))
	}
	for i := len(tags) - 1; i >= 0; i-- {
		sb.WriteString(tags[i].close)
	}
}
