package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/cornellsun/sunreader"
	"github.com/cornellsun/sunreader/fs"
	"github.com/cornellsun/sunreader/goquery"
	"github.com/cornellsun/sunreader/htmltomarkdown"
	srhttp "github.com/cornellsun/sunreader/http"
	"github.com/cornellsun/sunreader/prefetch"
	"github.com/cornellsun/sunreader/readability"
	"github.com/cornellsun/sunreader/rod"
	srslog "github.com/cornellsun/sunreader/slog"
	"github.com/cornellsun/sunreader/sqlite"
	"github.com/cornellsun/sunreader/trafilatura"
)

// imageRPS limits image downloads per host.
const imageRPS = 4.0

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path of the image cache. Set before calling Run().
	DBPath string

	// SQLite database backing the image cache. Opened only by commands
	// that need it.
	DB *sqlite.DB

	// Input for commands reading from stdin.
	Stdin io.Reader
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Stdin:  os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sunreader"),
		kong.Description("Turn Cornell Daily Sun article HTML into structured content blocks."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'sunreader --help' to see available commands")
	}

	if first := args[0]; first == "help" || first == "--help" || first == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	logger := slog.New(slog.DiscardHandler)
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	deps.Logger = logger

	deps.Markdown = htmltomarkdown.NewRenderer()
	deps.NewExtractor = newExtractor
	deps.NewWriter = func(dir string) sunreader.PostWriter { return fs.NewWriter(dir) }
	deps.NewParser = func(cfg sunreader.ParseConfig, p sunreader.ImagePrefetcher) sunreader.Parser {
		var opts []goquery.Option
		if p != nil {
			opts = append(opts, goquery.WithPrefetcher(srslog.NewLoggingPrefetcher(p, logger)))
		}
		return srslog.NewLoggingParser(goquery.NewParser(cfg, opts...), logger)
	}
	deps.Posts = srslog.NewLoggingPostService(srhttp.NewPostService(nil), logger)
	deps.Feeds = srslog.NewLoggingFeedService(srhttp.NewFeedService(nil), logger)

	if cmd == "page" {
		var fetcher sunreader.Fetcher = srhttp.NewFetcher()
		if cli.Page.Browser {
			browser, err := rod.NewFetcher()
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			fetcher = browser
		}
		deps.Fetcher = srslog.NewLoggingFetcher(fetcher, logger)
		defer deps.Fetcher.Close()
	}

	wantPrefetch := prefetchRequested(cli, cmd)
	if cmd == "images" || wantPrefetch {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set SUNREADER_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		deps.Images = srslog.NewLoggingImageStore(sqlite.NewImageStore(m.DB), logger)
	}

	if !wantPrefetch {
		return kongCtx.Run(deps)
	}

	p := prefetch.NewPrefetcher(
		srslog.NewLoggingImageFetcher(srhttp.NewImageFetcher(nil), logger),
		deps.Images,
		prefetch.WithRateLimiter(prefetch.NewDomainLimiter(imageRPS)),
		prefetch.WithLogger(logger),
	)
	p.Start(ctx)
	deps.Prefetcher = p

	runErr := kongCtx.Run(deps)

	// Wait for downloads before the database is closed.
	_ = p.Close()
	stats := p.Stats()
	fmt.Fprintf(stderr, "Cached %d images (%d skipped, %d dropped, %d failed)\n",
		stats.Cached, stats.Skipped, stats.Dropped, stats.Failed)

	return runErr
}

// prefetchRequested reports whether the selected command asked for image
// prefetching.
func prefetchRequested(cli *CLI, cmd string) bool {
	switch cmd {
	case "parse":
		return cli.Parse.Prefetch
	case "post":
		return cli.Post.Prefetch
	case "feed":
		return cli.Feed.Prefetch
	case "page":
		return cli.Page.Prefetch
	}
	return false
}

// newExtractor builds the named extractor, resolving relative links in the
// extracted body against pageURL.
func newExtractor(name, pageURL string) (sunreader.Extractor, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, sunreader.Errorf(sunreader.EINVALID, "invalid page URL %q", pageURL)
	}

	switch name {
	case "readability":
		return readability.NewExtractor(readability.WithPageURL(u)), nil
	case "trafilatura":
		return trafilatura.NewExtractor(trafilatura.WithPageURL(u)), nil
	}
	return nil, sunreader.Errorf(sunreader.EINVALID, "unknown extractor %q", name)
}

func defaultDBPath() string {
	if path := os.Getenv("SUNREADER_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "images.db"
	}
	dir := filepath.Join(home, ".sunreader")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "images.db")
}
