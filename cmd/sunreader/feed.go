package main

import (
	"fmt"

	"github.com/cornellsun/sunreader"
	"golang.org/x/sync/errgroup"
)

// Run executes the feed command.
func (c *FeedCmd) Run(deps *Dependencies) error {
	cfg, err := c.config("")
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sunreader.ErrorMessage(err))
		return err
	}

	posts, err := deps.Feeds.FetchFeed(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sunreader.ErrorMessage(err))
		return err
	}

	if len(posts) == 0 {
		fmt.Fprintln(deps.Stdout, "No posts found in feed.")
		return nil
	}

	prefetcher := prefetcherFor(c.Prefetch, deps)

	// Each worker writes only its own slot, so output keeps feed order.
	articles := make([]article, len(posts))
	g := new(errgroup.Group)
	g.SetLimit(max(c.Concurrency, 1))
	for i, post := range posts {
		g.Go(func() error {
			if prefetcher != nil && post.Media.MediumLarge != "" {
				prefetcher.Prefetch(post.Media.MediumLarge)
			}
			// Relative images resolve against the post link unless a base was given.
			postCfg := cfg
			if postCfg.BaseURL == "" {
				postCfg.BaseURL = post.Link
			}
			parser := deps.NewParser(postCfg, prefetcher)
			articles[i] = article{Post: post, Blocks: parser.Parse(post.Content)}
			return nil
		})
	}
	_ = g.Wait()

	if c.Out != "" {
		return c.write(deps, articles)
	}

	return writeArticles(deps.Stdout, c.Format, deps.Markdown, articles)
}

// write renders each article as Markdown and stores it under c.Out.
func (c *FeedCmd) write(deps *Dependencies, articles []article) error {
	w := deps.NewWriter(c.Out)
	written := 0
	for _, a := range articles {
		body, err := deps.Markdown.Render(a.Blocks)
		if err == nil {
			err = w.WritePost(deps.Ctx, a.Post, body)
		}
		if err != nil {
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", a.Post.Link, sunreader.ErrorMessage(err))
			continue
		}
		written++
	}

	fmt.Fprintf(deps.Stdout, "Wrote %d of %d posts to %s\n", written, len(articles), c.Out)
	if written == 0 {
		return sunreader.Errorf(sunreader.EINTERNAL, "no posts written")
	}
	return nil
}
