// Package slog provides logging decorators for the sunreader interfaces.
package slog

import (
	"log/slog"
	"time"

	"github.com/cornellsun/sunreader"
)

// Ensure the decorators implement their interfaces.
var (
	_ sunreader.Parser          = (*LoggingParser)(nil)
	_ sunreader.ImagePrefetcher = (*LoggingPrefetcher)(nil)
)

// LoggingParser wraps a Parser with debug logging.
type LoggingParser struct {
	next   sunreader.Parser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next sunreader.Parser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

// Parse delegates to the wrapped parser and logs the block counts.
func (p *LoggingParser) Parse(html string) (blocks []sunreader.Block) {
	defer func(begin time.Time) {
		p.logger.Info("parse",
			"bytes", len(html),
			"blocks", len(blocks),
			"images", len(sunreader.ImageURLs(blocks)),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return p.next.Parse(html)
}

// LoggingPrefetcher wraps an ImagePrefetcher with debug logging.
type LoggingPrefetcher struct {
	next   sunreader.ImagePrefetcher
	logger *slog.Logger
}

// NewLoggingPrefetcher creates a new LoggingPrefetcher.
func NewLoggingPrefetcher(next sunreader.ImagePrefetcher, logger *slog.Logger) *LoggingPrefetcher {
	return &LoggingPrefetcher{next: next, logger: logger}
}

// Prefetch logs the requested URL and delegates to the wrapped prefetcher.
func (p *LoggingPrefetcher) Prefetch(url string) {
	p.logger.Debug("prefetch", "url", url)
	p.next.Prefetch(url)
}
