package goquery

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// skipElements are elements whose text content is discarded.
var skipElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
}

// blockElements are elements that separate words when stripped.
var blockElements = map[string]bool{
	"p": true, "div": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "li": true, "blockquote": true,
	"pre": true, "table": true, "tr": true, "td": true, "th": true,
	"section": true, "article": true, "header": true, "footer": true,
	"aside": true, "figure": true, "figcaption": true, "br": true,
}

// visibleText returns the element's rendered text with whitespace runs
// collapsed to single spaces and the ends trimmed. Script-like elements are
// skipped and block boundaries separate words.
func visibleText(sel *goquery.Selection) string {
	var sb strings.Builder
	for _, n := range sel.Nodes {
		writeVisibleText(&sb, n)
	}
	return collapseWhitespace(sb.String())
}

func writeVisibleText(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.ElementNode:
		if skipElements[n.Data] {
			return
		}
	}

	block := n.Type == html.ElementNode && blockElements[n.Data]
	if block {
		sb.WriteByte(' ')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeVisibleText(sb, c)
	}
	if block {
		sb.WriteByte(' ')
	}
}

// isBlank reports whether s has no visible characters. Non-breaking spaces
// count as blank.
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// normalizeText treats s as markup once more: residual tags are dropped and
// a second layer of HTML entities is decoded. Control characters are
// removed, the result is NFC normalized and whitespace collapsed.
//
// A literal "<" followed by a letter reads as the start of a tag, so the
// text after it is lost. Double-encoded markup is far more common in
// pull quotes than a bare less-than sign.
func normalizeText(s string) string {
	var sb strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	skipDepth := 0

loop:
	for {
		switch z.Next() {
		case html.ErrorToken:
			break loop
		case html.TextToken:
			if skipDepth == 0 {
				sb.Write(z.Text())
			}
		case html.StartTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if skipElements[tag] {
				skipDepth++
			} else if blockElements[tag] {
				sb.WriteByte(' ')
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if skipElements[tag] && skipDepth > 0 {
				skipDepth--
			} else if blockElements[tag] {
				sb.WriteByte(' ')
			}
		case html.SelfClosingTagToken:
			name, _ := z.TagName()
			if blockElements[string(name)] {
				sb.WriteByte(' ')
			}
		}
	}

	text := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, sb.String())

	return collapseWhitespace(norm.NFC.String(text))
}

// collapseWhitespace replaces runs of ASCII whitespace with a single space
// and trims both ends. Non-breaking spaces are kept.
func collapseWhitespace(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	pendingSpace := false
	for _, r := range s {
		if isCollapsible(r) {
			pendingSpace = sb.Len() > 0
			continue
		}
		if pendingSpace {
			sb.WriteByte(' ')
			pendingSpace = false
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func isCollapsible(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}
