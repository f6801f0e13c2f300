package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/cornellsun/sunreader"
)

// Run executes the post command.
func (c *PostCmd) Run(deps *Dependencies) error {
	post, err := c.load(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sunreader.ErrorMessage(err))
		return err
	}

	cfg, err := c.config(post.Link)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sunreader.ErrorMessage(err))
		return err
	}

	prefetcher := prefetcherFor(c.Prefetch, deps)
	if prefetcher != nil {
		if post.Media.MediumLarge != "" {
			prefetcher.Prefetch(post.Media.MediumLarge)
		}
		for _, img := range post.Gallery {
			prefetcher.Prefetch(img.URL)
		}
	}

	blocks := deps.NewParser(cfg, prefetcher).Parse(post.Content)

	return writeArticles(deps.Stdout, c.Format, deps.Markdown, []article{{Post: post, Blocks: blocks}})
}

// load fetches the post when Source is a URL and reads it from disk otherwise.
func (c *PostCmd) load(deps *Dependencies) (*sunreader.Post, error) {
	if isRemote(c.Source) {
		return deps.Posts.FetchPost(deps.Ctx, c.Source)
	}

	data, err := os.ReadFile(c.Source)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, sunreader.Errorf(sunreader.ENOTFOUND, "file not found: %s", c.Source)
		}
		return nil, err
	}
	return sunreader.DecodePost(data)
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
