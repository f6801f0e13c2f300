package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/cornellsun/sunreader"
	"github.com/cornellsun/sunreader/yaml"
)

// ParserFactory builds a Parser for a vocabulary. prefetcher may be nil.
type ParserFactory func(cfg sunreader.ParseConfig, prefetcher sunreader.ImagePrefetcher) sunreader.Parser

// ExtractorFactory builds the named main-content extractor for a page URL.
type ExtractorFactory func(name, pageURL string) (sunreader.Extractor, error)

// WriterFactory builds a PostWriter rooted at dir.
type WriterFactory func(dir string) sunreader.PostWriter

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	NewParser    ParserFactory
	NewExtractor ExtractorFactory
	NewWriter    WriterFactory
	Prefetcher   sunreader.ImagePrefetcher
	Markdown     sunreader.Renderer
	Fetcher      sunreader.Fetcher
	Posts        sunreader.PostService
	Feeds        sunreader.FeedService
	Images       sunreader.ImageStore
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log progress to stderr"`

	Parse  ParseCmd  `cmd:"" help:"Parse an article HTML fragment into content blocks"`
	Post   PostCmd   `cmd:"" help:"Parse a WordPress post from its JSON"`
	Feed   FeedCmd   `cmd:"" help:"Parse every post of an RSS feed"`
	Page   PageCmd   `cmd:"" help:"Parse the article on a public web page"`
	Images ImagesCmd `cmd:"" help:"List or delete cached images"`
}

// Output formats.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// ParseFlags are the flags shared by every command that parses articles.
type ParseFlags struct {
	Format     string `short:"f" enum:"text,json,markdown" default:"text" help:"Output format (text, json, markdown)"`
	Vocabulary string `short:"V" type:"path" help:"YAML vocabulary file overriding the WordPress rules"`
	BaseURL    string `name:"base-url" help:"Base URL for resolving relative image URLs"`
	Prefetch   bool   `short:"p" help:"Download images into the local cache"`
}

// config returns the vocabulary selected by the flags. fallbackBase is used
// when no --base-url is given.
func (f *ParseFlags) config(fallbackBase string) (sunreader.ParseConfig, error) {
	cfg := sunreader.DefaultConfig()
	if f.Vocabulary != "" {
		var err error
		if cfg, err = yaml.LoadConfigFile(f.Vocabulary); err != nil {
			return sunreader.ParseConfig{}, err
		}
	}

	switch {
	case f.BaseURL != "":
		cfg.BaseURL = f.BaseURL
	case cfg.BaseURL == "":
		cfg.BaseURL = fallbackBase
	}

	if err := cfg.Validate(); err != nil {
		return sunreader.ParseConfig{}, err
	}
	return cfg, nil
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	ParseFlags
	Path string `arg:"" optional:"" type:"path" help:"HTML file (reads stdin when omitted)"`
}

// PostCmd is the "post" subcommand.
type PostCmd struct {
	ParseFlags
	Source string `arg:"" help:"Post JSON URL or file"`
}

// FeedCmd is the "feed" subcommand.
type FeedCmd struct {
	ParseFlags
	URL         string `arg:"" help:"RSS feed URL"`
	Concurrency int    `short:"c" default:"4" help:"Concurrent parse limit"`
	Out         string `short:"o" type:"path" help:"Write each post as a Markdown file under this directory"`
}

// PageCmd is the "page" subcommand.
type PageCmd struct {
	ParseFlags
	URL       string `arg:"" help:"Page URL"`
	Browser   bool   `short:"b" help:"Render the page in a headless browser"`
	Extractor string `short:"x" enum:"readability,trafilatura,none" default:"readability" help:"Main-content extractor (readability, trafilatura, none)"`
}

// ImagesCmd is the "images" subcommand.
type ImagesCmd struct {
	Limit  int    `short:"n" default:"20" help:"Maximum number of images to list"`
	Delete string `help:"Delete the cached image for this URL"`
}
