// Package search implements the incremental search client: it turns a
// stream of query-text changes into a single authoritative result list,
// suppressing redundant network calls and discarding answers to superseded
// queries.
package search

import (
	"context"
	"strings"
	"sync"
	"time"

	"resourcehub/internal/client/api"
	"resourcehub/internal/client/models"
	"resourcehub/internal/logging"
)

// DefaultDebounce is the quiet period after the last keystroke before a
// request is issued.
const DefaultDebounce = 300 * time.Millisecond

// DefaultLimit caps the number of typeahead results requested.
const DefaultLimit = 10

// Backend is the slice of the API surface the search client needs.
type Backend interface {
	SearchResources(ctx context.Context, query string, limit int) ([]models.SearchResult, error)
}

// Sink receives state updates from the client. Methods are invoked while
// the client holds its internal lock, from its own goroutines as well as
// from QueryChanged; implementations must be quick and must not call back
// into the Client.
type Sink interface {
	// ResultsChanged publishes the authoritative result list. A nil list
	// means the results were cleared.
	ResultsChanged(results []models.SearchResult)

	// LoadingChanged reports whether a request is pending or in flight.
	LoadingChanged(loading bool)

	// SearchFailed reports a non-abort failure. Previous results are left
	// untouched.
	SearchFailed(err error)
}

// Option customizes a Client.
type Option func(*Client)

// WithDebounce overrides the debounce delay.
func WithDebounce(d time.Duration) Option {
	return func(c *Client) { c.debounce = d }
}

// WithLimit overrides the result-count cap.
func WithLimit(n int) Option {
	return func(c *Client) { c.limit = n }
}

// WithSelectionHandler installs the callback invoked when a result is
// selected via Enter or SelectResult.
func WithSelectionHandler(fn func(models.SearchResult)) Option {
	return func(c *Client) { c.onSelect = fn }
}

// Client is a single-owner search widget controller. Each instance owns at
// most one debounce timer and one in-flight request; a newer query always
// cancels both. Stale responses, successful or not, never touch state.
type Client struct {
	backend  Backend
	sink     Sink
	log      logging.Logger
	debounce time.Duration
	limit    int
	onSelect func(models.SearchResult)

	mu      sync.Mutex
	seq     uint64
	timer   *time.Timer
	cancel  context.CancelFunc
	pending string
	results []models.SearchResult
	active  int
	open    bool
	closed  bool
}

// NewClient builds a search client publishing into sink.
func NewClient(backend Backend, sink Sink, log logging.Logger, opts ...Option) *Client {
	c := &Client{
		backend:  backend,
		sink:     sink,
		log:      log,
		debounce: DefaultDebounce,
		limit:    DefaultLimit,
		active:   -1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// QueryChanged is called on every keystroke or programmatic value change.
//
// An empty or whitespace-only query synchronously clears the results,
// cancels any pending timer and any in-flight request, and issues no
// network call. Otherwise the debounce timer restarts; only the most
// recent text survives the debounce window.
func (c *Client) QueryChanged(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	if strings.TrimSpace(text) == "" {
		c.stopTimerLocked()
		c.abortInFlightLocked()
		c.seq++ // anything still in flight is now stale
		c.pending = ""
		c.results = nil
		c.active = -1
		c.open = false
		c.sink.ResultsChanged(nil)
		c.sink.LoadingChanged(false)
		return
	}

	c.pending = text
	c.stopTimerLocked()
	c.timer = time.AfterFunc(c.debounce, c.fire)
}

// fire runs when the debounce timer expires: it supersedes any in-flight
// request and issues a new one for the pending text.
func (c *Client) fire() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.abortInFlightLocked()
	c.seq++
	seq := c.seq
	query := c.pending

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.sink.LoadingChanged(true)
	c.mu.Unlock()

	go c.run(ctx, seq, query)
}

func (c *Client) run(ctx context.Context, seq uint64, query string) {
	results, err := c.backend.SearchResources(ctx, query, c.limit)

	c.mu.Lock()
	defer c.mu.Unlock()

	// A superseded request performs no state update at all, whether it
	// resolved or failed.
	if seq != c.seq || c.closed {
		return
	}
	c.cancel = nil

	if err != nil {
		if api.IsAbort(err) {
			return
		}
		c.log.Warn(ctx, "search failed", "query", query, "error", err)
		c.sink.SearchFailed(err)
		c.sink.LoadingChanged(false)
		return
	}

	c.results = results
	c.active = -1
	c.open = true
	c.sink.ResultsChanged(results)
	c.sink.LoadingChanged(false)
}

func (c *Client) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Client) abortInFlightLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// SelectResult maps index into the last published list and hands the
// canonical record to the selection callback. Out-of-range is a no-op.
func (c *Client) SelectResult(index int) {
	c.mu.Lock()
	if index < 0 || index >= len(c.results) || c.onSelect == nil {
		c.mu.Unlock()
		return
	}
	selected := c.results[index]
	c.open = false
	c.mu.Unlock()

	c.onSelect(selected)
}

// Results returns the last published result list.
func (c *Client) Results() []models.SearchResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.results
}

// PanelOpen reports whether the result panel is showing.
func (c *Client) PanelOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// Close cancels the timer and any in-flight request. Further calls on the
// client are no-ops.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopTimerLocked()
	c.abortInFlightLocked()
	c.closed = true
}
