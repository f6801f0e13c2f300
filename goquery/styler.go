package goquery

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cornellsun/sunreader"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Styler converts a paragraph element into styled rich text.
type Styler interface {
	Style(sel *goquery.Selection, style sunreader.TextStyle) (*sunreader.StyledText, error)
}

// StylerFunc adapts an ordinary function to the Styler interface.
type StylerFunc func(sel *goquery.Selection, style sunreader.TextStyle) (*sunreader.StyledText, error)

// Style calls f(sel, style).
func (f StylerFunc) Style(sel *goquery.Selection, style sunreader.TextStyle) (*sunreader.StyledText, error) {
	return f(sel, style)
}

// Ensure DOMStyler implements Styler at compile time.
var _ Styler = (*DOMStyler)(nil)

// DOMStyler styles paragraphs by rewriting the DOM rather than the markup
// text: the paragraph's children are copied into a detached span that
// carries the body font, and the span tree is walked into runs.
// Inline elements (emphasis, links, bold, ...) become run attributes;
// unsupported tags degrade to plain inline text.
type DOMStyler struct{}

// NewDOMStyler creates a new DOMStyler.
func NewDOMStyler() *DOMStyler {
	return &DOMStyler{}
}

// Style returns the styled text of the first element in sel.
// Returns an error if the selection is empty or yields no text.
func (s *DOMStyler) Style(sel *goquery.Selection, style sunreader.TextStyle) (*sunreader.StyledText, error) {
	if sel.Length() == 0 {
		return nil, sunreader.Errorf(sunreader.EINVALID, "empty selection")
	}

	span := wrapInSpan(sel.Get(0), style)

	text := &sunreader.StyledText{
		Paragraph: sunreader.ParagraphStyle{LineSpacing: style.LineSpacing},
	}
	w := &runWriter{text: text}
	w.walk(span, sunreader.RunStyle{})
	w.trimTrailing()

	if text.Len() == 0 {
		return nil, sunreader.Errorf(sunreader.EINVALID, "paragraph has no text")
	}
	return text, nil
}

// RenderMarkup returns the rewritten markup of the first element in sel:
// the paragraph tag replaced by a span carrying the body font.
func RenderMarkup(sel *goquery.Selection, style sunreader.TextStyle) (string, error) {
	if sel.Length() == 0 {
		return "", sunreader.Errorf(sunreader.EINVALID, "empty selection")
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, wrapInSpan(sel.Get(0), style)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// wrapInSpan returns a detached span holding deep copies of n's children.
// The source document is left untouched.
func wrapInSpan(n *html.Node, style sunreader.TextStyle) *html.Node {
	span := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Span,
		Data:     "span",
		Attr: []html.Attribute{{
			Key: "style",
			Val: fmt.Sprintf("font-family: '%s'; font-size: %s",
				style.FontFamily, strconv.FormatFloat(style.FontSize, 'f', -1, 64)),
		}},
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		span.AppendChild(cloneNode(c))
	}
	return span
}

func cloneNode(n *html.Node) *html.Node {
	clone := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		clone.AppendChild(cloneNode(c))
	}
	return clone
}

// runWriter accumulates runs while collapsing whitespace the way a browser
// lays out inline text.
type runWriter struct {
	text      *sunreader.StyledText
	lastSpace bool
}

func (w *runWriter) walk(n *html.Node, style sunreader.RunStyle) {
	switch n.Type {
	case html.TextNode:
		w.writeText(n.Data, style)
		return
	case html.ElementNode:
	default:
		return
	}

	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Noscript, atom.Template, atom.Img:
		return
	case atom.Br:
		w.writeBreak(style)
		return
	}

	style = applyElement(n, style)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c, style)
	}
}

func (w *runWriter) writeText(s string, style sunreader.RunStyle) {
	var sb strings.Builder
	for _, r := range s {
		if isCollapsible(r) {
			if !w.lastSpace && w.text.Len()+sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			w.lastSpace = true
			continue
		}
		sb.WriteRune(r)
		w.lastSpace = false
	}
	w.text.Append(sb.String(), style)
}

func (w *runWriter) writeBreak(style sunreader.RunStyle) {
	// Drop the space collapsed just before the break.
	if n := len(w.text.Runs); n > 0 && w.lastSpace {
		last := &w.text.Runs[n-1]
		last.Text = strings.TrimSuffix(last.Text, " ")
		if last.Text == "" {
			w.text.Runs = w.text.Runs[:n-1]
		}
	}
	w.text.Append("\n", style)
	w.lastSpace = true
}

// trimTrailing removes trailing spaces and line breaks.
func (w *runWriter) trimTrailing() {
	for n := len(w.text.Runs); n > 0; n = len(w.text.Runs) {
		last := &w.text.Runs[n-1]
		last.Text = strings.TrimRight(last.Text, " \n")
		if last.Text != "" {
			return
		}
		w.text.Runs = w.text.Runs[:n-1]
	}
}

// applyElement returns style updated with the attributes implied by the
// element's tag and inline style declarations.
func applyElement(n *html.Node, style sunreader.RunStyle) sunreader.RunStyle {
	switch n.DataAtom {
	case atom.B, atom.Strong:
		style.Bold = true
	case atom.I, atom.Em, atom.Cite, atom.Var, atom.Dfn:
		style.Italic = true
	case atom.U, atom.Ins:
		style.Underline = true
	case atom.S, atom.Strike, atom.Del:
		style.Strikethrough = true
	case atom.Sup:
		style.Superscript = true
	case atom.Sub:
		style.Subscript = true
	case atom.A:
		if href := attr(n, "href"); href != "" {
			style.Link = href
		}
	}

	if decl := attr(n, "style"); decl != "" {
		style = applyDeclarations(decl, style)
	}
	return style
}

// applyDeclarations applies the subset of CSS declarations that map onto
// run attributes. Unknown properties and unparsable values are ignored.
func applyDeclarations(decl string, style sunreader.RunStyle) sunreader.RunStyle {
	for _, d := range strings.Split(decl, ";") {
		prop, value, ok := strings.Cut(d, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		value = strings.TrimSpace(value)
		lower := strings.ToLower(value)

		switch prop {
		case "font-family":
			family, _, _ := strings.Cut(value, ",")
			family = strings.Trim(strings.TrimSpace(family), `'"`)
			if family != "" {
				style.FontFamily = family
			}
		case "font-size":
			if size, ok := parseFontSize(lower); ok {
				style.FontSize = size
			}
		case "font-weight":
			switch lower {
			case "bold", "bolder":
				style.Bold = true
			case "normal", "lighter":
				style.Bold = false
			default:
				if w, err := strconv.Atoi(lower); err == nil {
					style.Bold = w >= 600
				}
			}
		case "font-style":
			style.Italic = lower == "italic" || lower == "oblique"
		case "text-decoration", "text-decoration-line":
			if lower == "none" {
				style.Underline = false
				style.Strikethrough = false
			}
			if strings.Contains(lower, "underline") {
				style.Underline = true
			}
			if strings.Contains(lower, "line-through") {
				style.Strikethrough = true
			}
		}
	}
	return style
}

func parseFontSize(v string) (float64, bool) {
	v = strings.TrimSuffix(strings.TrimSuffix(v, "px"), "pt")
	size, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || size <= 0 {
		return 0, false
	}
	return size, true
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
