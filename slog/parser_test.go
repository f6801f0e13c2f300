package slog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/cornellsun/sunreader"
	"github.com/cornellsun/sunreader/mock"
	srslog "github.com/cornellsun/sunreader/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingParser_Parse(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.Parser{
		ParseFn: func(html string) []sunreader.Block {
			return []sunreader.Block{
				sunreader.NewHeading("Title"),
				sunreader.NewImage("https://example.com/a.jpg"),
			}
		},
	}

	parser := srslog.NewLoggingParser(inner, logger)
	blocks := parser.Parse("<h2>Title</h2>")

	require.Len(t, blocks, 2)
	output := buf.String()
	assert.Contains(t, output, "parse")
	assert.Contains(t, output, "bytes=14")
	assert.Contains(t, output, "blocks=2")
	assert.Contains(t, output, "images=1")
	assert.Contains(t, output, "duration=")
}

func TestLoggingPrefetcher_Prefetch(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	var got string
	inner := &mock.ImagePrefetcher{
		PrefetchFn: func(url string) { got = url },
	}

	srslog.NewLoggingPrefetcher(inner, logger).Prefetch("https://example.com/a.jpg")

	assert.Equal(t, "https://example.com/a.jpg", got)
	assert.Contains(t, buf.String(), "url=https://example.com/a.jpg")
}
