package sunreader

import "strings"

// FormatBlocks formats blocks as plain text for terminal display.
// Blocks are separated by blank lines.
func FormatBlocks(blocks []Block) string {
	if len(blocks) == 0 {
		return ""
	}

	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		switch b.Kind {
		case KindHeading:
			parts = append(parts, "## "+b.Text)
		case KindParagraph:
			parts = append(parts, b.Rich.String())
		case KindCaption:
			parts = append(parts, "  "+b.Text)
		case KindImageCredit:
			parts = append(parts, "  ("+b.Text+")")
		case KindImage:
			parts = append(parts, "[image] "+b.URL)
		case KindBlockQuote:
			parts = append(parts, "> "+b.Text)
		}
	}

	return strings.Join(parts, "\n\n")
}

// FormatPost formats a post header followed by its blocks.
// Uses the title if available, falls back to the link.
func FormatPost(post *Post, blocks []Block) string {
	header := post.Title
	if header == "" {
		header = post.Link
	}
	var sb strings.Builder
	sb.WriteString("# " + header + "\n")
	sb.WriteString("By " + post.Author.Name)
	if !post.Date.IsZero() {
		sb.WriteString(", " + post.Date.Format("January 2, 2006"))
	}
	sb.WriteString("\n")
	if body := FormatBlocks(blocks); body != "" {
		sb.WriteString("\n" + body + "\n")
	}
	return sb.String()
}
