package main

import (
	"fmt"
	"io"
	"os"

	"github.com/cornellsun/sunreader"
)

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	cfg, err := c.config("")
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sunreader.ErrorMessage(err))
		return err
	}

	html, err := c.read(deps.Stdin)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sunreader.ErrorMessage(err))
		return err
	}

	parser := deps.NewParser(cfg, prefetcherFor(c.Prefetch, deps))
	blocks := parser.Parse(html)

	return writeBlocks(deps.Stdout, c.Format, deps.Markdown, blocks)
}

// read returns the HTML fragment from the file at c.Path, or from stdin.
func (c *ParseCmd) read(stdin io.Reader) (string, error) {
	if c.Path == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(c.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", sunreader.Errorf(sunreader.ENOTFOUND, "file not found: %s", c.Path)
		}
		return "", err
	}
	return string(data), nil
}

// prefetcherFor returns the prefetcher to hand to a parser, or nil when
// prefetching is off.
func prefetcherFor(enabled bool, deps *Dependencies) sunreader.ImagePrefetcher {
	if !enabled {
		return nil
	}
	return deps.Prefetcher
}
