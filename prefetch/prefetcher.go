// Package prefetch warms the image cache in the background while articles
// are parsed. Parsing hands every image URL to a Prefetcher, which queues it
// without blocking and downloads it later on a bounded worker pool.
package prefetch

import (
	"context"
	"log/slog"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cornellsun/sunreader"
	"github.com/cornellsun/sunreader/bloom"
	"golang.org/x/sync/errgroup"
)

// Defaults for a Prefetcher.
const (
	DefaultConcurrency = 4
	DefaultQueueSize   = 256

	// Expected distinct image URLs per process, used to size the dedupe filter.
	defaultFilterSize = 100_000
)

// Ensure Prefetcher implements sunreader.ImagePrefetcher at compile time.
var _ sunreader.ImagePrefetcher = (*Prefetcher)(nil)

// EventType indicates what happened to a prefetch request.
type EventType int

const (
	// EventQueued means the URL was accepted into the queue.
	EventQueued EventType = iota
	// EventDropped means the queue was full or the prefetcher closed.
	EventDropped
	// EventCached means the image was downloaded and stored.
	EventCached
	// EventSkipped means the URL was already seen or already stored.
	EventSkipped
	// EventFailed means every download attempt failed.
	EventFailed
)

// String returns the event name.
func (t EventType) String() string {
	switch t {
	case EventQueued:
		return "queued"
	case EventDropped:
		return "dropped"
	case EventCached:
		return "cached"
	case EventSkipped:
		return "skipped"
	case EventFailed:
		return "failed"
	}
	return "unknown"
}

// Event reports progress for a single URL.
type Event struct {
	Type  EventType
	URL   string
	Error error
}

// ProgressFunc is a callback for reporting prefetch progress.
// It is called from worker goroutines and must be safe for concurrent use.
type ProgressFunc func(event Event)

// Stats counts prefetch outcomes.
type Stats struct {
	Queued  int64
	Dropped int64
	Cached  int64
	Skipped int64
	Failed  int64
}

// Prefetcher downloads images into an ImageStore in the background.
//
// Prefetch never blocks: requests go into a bounded queue that is drained
// by up to Concurrency workers once Start is called. Each URL is downloaded
// at most once per Prefetcher, and never when the store already has it.
type Prefetcher struct {
	fetcher  sunreader.ImageFetcher
	store    sunreader.ImageStore
	limiter  sunreader.DomainLimiter
	seen     *bloom.Filter
	logger   *slog.Logger
	progress ProgressFunc

	concurrency int
	retryDelays []time.Duration

	mu      sync.RWMutex
	closed  bool
	started bool
	queue   chan string
	done    chan struct{}

	queued, dropped, cached, skipped, failed atomic.Int64
}

// Option configures a Prefetcher.
type Option func(*Prefetcher)

// WithConcurrency sets the number of concurrent downloads.
// Defaults to DefaultConcurrency if not specified.
func WithConcurrency(n int) Option {
	return func(p *Prefetcher) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithQueueSize sets the capacity of the request queue.
// Defaults to DefaultQueueSize if not specified.
func WithQueueSize(n int) Option {
	return func(p *Prefetcher) {
		if n > 0 {
			p.queue = make(chan string, n)
		}
	}
}

// WithRateLimiter sets the per-host rate limiter applied before downloads.
func WithRateLimiter(l sunreader.DomainLimiter) Option {
	return func(p *Prefetcher) {
		p.limiter = l
	}
}

// WithRetryDelays sets the backoff delays between download attempts.
// Defaults to DefaultRetryDelays if not specified.
func WithRetryDelays(delays []time.Duration) Option {
	return func(p *Prefetcher) {
		p.retryDelays = delays
	}
}

// WithProgress sets the progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(p *Prefetcher) {
		p.progress = fn
	}
}

// WithLogger sets the logger used for retry and failure messages.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Prefetcher) {
		p.logger = logger
	}
}

// WithFilter replaces the URL dedupe filter.
func WithFilter(f *bloom.Filter) Option {
	return func(p *Prefetcher) {
		p.seen = f
	}
}

// NewPrefetcher creates a Prefetcher that downloads with fetcher and saves
// into store. store may be nil, in which case images are only downloaded.
func NewPrefetcher(fetcher sunreader.ImageFetcher, store sunreader.ImageStore, opts ...Option) *Prefetcher {
	p := &Prefetcher{
		fetcher:     fetcher,
		store:       store,
		concurrency: DefaultConcurrency,
		retryDelays: DefaultRetryDelays(),
		queue:       make(chan string, DefaultQueueSize),
		done:        make(chan struct{}),
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.seen == nil {
		p.seen = bloom.NewFilter(defaultFilterSize, 0.001)
	}
	return p
}

// Prefetch queues url for download and returns immediately. URLs already
// seen are skipped; when the queue is full or the prefetcher is closed the
// request is dropped.
func (p *Prefetcher) Prefetch(url string) {
	if p.seen.Test(url) {
		p.emit(Event{Type: EventSkipped, URL: url})
		return
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		p.emit(Event{Type: EventDropped, URL: url})
		return
	}

	select {
	case p.queue <- url:
		p.emit(Event{Type: EventQueued, URL: url})
	default:
		p.emit(Event{Type: EventDropped, URL: url})
	}
}

// Start launches the workers. Work is cancelled when ctx is done.
// Calling Start more than once has no effect.
func (p *Prefetcher) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return
	}
	p.started = true

	go func() {
		defer close(p.done)

		g := new(errgroup.Group)
		g.SetLimit(p.concurrency)
		for u := range p.queue {
			g.Go(func() error {
				p.process(ctx, u)
				return nil
			})
		}
		_ = g.Wait()
	}()
}

// Close stops accepting requests and waits for queued downloads to finish.
// If Start was never called, queued requests are discarded.
func (p *Prefetcher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		<-p.done
		return nil
	}
	p.closed = true
	close(p.queue)
	if !p.started {
		p.started = true
		for u := range p.queue {
			p.emit(Event{Type: EventDropped, URL: u})
		}
		close(p.done)
	}
	p.mu.Unlock()

	<-p.done
	return nil
}

// Stats returns a snapshot of the outcome counters.
func (p *Prefetcher) Stats() Stats {
	return Stats{
		Queued:  p.queued.Load(),
		Dropped: p.dropped.Load(),
		Cached:  p.cached.Load(),
		Skipped: p.skipped.Load(),
		Failed:  p.failed.Load(),
	}
}

// process downloads and stores a single image.
func (p *Prefetcher) process(ctx context.Context, rawURL string) {
	if p.seen.TestAndAdd(rawURL) {
		p.emit(Event{Type: EventSkipped, URL: rawURL})
		return
	}

	if p.store != nil {
		ok, err := p.store.HasImage(ctx, rawURL)
		if err != nil {
			p.fail(rawURL, err)
			return
		}
		if ok {
			p.emit(Event{Type: EventSkipped, URL: rawURL})
			return
		}
	}

	if p.limiter != nil {
		if err := p.limiter.Wait(ctx, host(rawURL)); err != nil {
			p.fail(rawURL, err)
			return
		}
	}

	img, err := FetchWithRetry(ctx, rawURL, p.fetcher.FetchImage, p.retryDelays, func(attempt int, err error) {
		p.logger.Debug("retry image", "url", rawURL, "attempt", attempt, "err", err)
	})
	if err != nil {
		p.fail(rawURL, err)
		return
	}

	if p.store != nil {
		if err := p.store.SaveImage(ctx, img); err != nil {
			p.fail(rawURL, err)
			return
		}
	}

	p.emit(Event{Type: EventCached, URL: rawURL})
}

func (p *Prefetcher) fail(rawURL string, err error) {
	p.logger.Warn("prefetch failed", "url", rawURL, "err", err)
	p.emit(Event{Type: EventFailed, URL: rawURL, Error: err})
}

func (p *Prefetcher) emit(e Event) {
	switch e.Type {
	case EventQueued:
		p.queued.Add(1)
	case EventDropped:
		p.dropped.Add(1)
	case EventCached:
		p.cached.Add(1)
	case EventSkipped:
		p.skipped.Add(1)
	case EventFailed:
		p.failed.Add(1)
	}
	if p.progress != nil {
		p.progress(e)
	}
}

// host returns the host of rawURL, or rawURL itself if it has none.
func host(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}
