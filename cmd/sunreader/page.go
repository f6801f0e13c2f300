package main

import (
	"fmt"

	"github.com/cornellsun/sunreader"
)

// Run executes the page command.
func (c *PageCmd) Run(deps *Dependencies) error {
	if !sunreader.IsValidURL(c.URL) || !isRemote(c.URL) {
		err := sunreader.Errorf(sunreader.EINVALID, "invalid page URL %q", c.URL)
		fmt.Fprintf(deps.Stderr, "error: %s\n", sunreader.ErrorMessage(err))
		return err
	}

	cfg, err := c.config(c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sunreader.ErrorMessage(err))
		return err
	}

	html, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sunreader.ErrorMessage(err))
		return err
	}

	var title string
	if c.Extractor != "none" {
		extractor, err := deps.NewExtractor(c.Extractor, c.URL)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", sunreader.ErrorMessage(err))
			return err
		}
		result, err := extractor.Extract(html)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", sunreader.ErrorMessage(err))
			return err
		}
		title, html = result.Title, result.ContentHTML
	}

	blocks := deps.NewParser(cfg, prefetcherFor(c.Prefetch, deps)).Parse(html)

	return writeArticles(deps.Stdout, c.Format, deps.Markdown, []article{{Title: title, URL: c.URL, Blocks: blocks}})
}
