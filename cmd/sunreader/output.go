package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cornellsun/sunreader"
)

// article is the JSON shape of a parsed post.
type article struct {
	Post   *sunreader.Post   `json:"post,omitempty"`
	Title  string            `json:"title,omitempty"`
	URL    string            `json:"url,omitempty"`
	Blocks []sunreader.Block `json:"blocks"`
}

// writeBlocks prints blocks in the requested format.
func writeBlocks(w io.Writer, format string, md sunreader.Renderer, blocks []sunreader.Block) error {
	if blocks == nil {
		blocks = []sunreader.Block{}
	}
	switch format {
	case FormatJSON:
		return writeJSON(w, blocks)
	case FormatMarkdown:
		out, err := md.Render(blocks)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, out)
		return err
	default:
		_, err := fmt.Fprintln(w, sunreader.FormatBlocks(blocks))
		return err
	}
}

// writeArticles prints parsed posts in the requested format. Posts are
// separated by a horizontal rule in text and markdown output.
func writeArticles(w io.Writer, format string, md sunreader.Renderer, articles []article) error {
	if format == FormatJSON {
		if len(articles) == 1 {
			return writeJSON(w, articles[0])
		}
		return writeJSON(w, articles)
	}

	for i, a := range articles {
		if i > 0 {
			fmt.Fprintln(w, "\n---")
		}
		if format == FormatMarkdown {
			out, err := md.Render(a.Blocks)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "# %s\n\n%s\n", a.title(), out)
			continue
		}
		if a.Post != nil {
			fmt.Fprint(w, sunreader.FormatPost(a.Post, a.Blocks))
			continue
		}
		fmt.Fprintf(w, "# %s\n", a.title())
		if body := sunreader.FormatBlocks(a.Blocks); body != "" {
			fmt.Fprintf(w, "\n%s\n", body)
		}
	}
	return nil
}

func (a article) title() string {
	switch {
	case a.Post != nil && a.Post.Title != "":
		return a.Post.Title
	case a.Post != nil:
		return a.Post.Link
	case a.Title != "":
		return a.Title
	}
	return a.URL
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
