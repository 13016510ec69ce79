package compose

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// Searcher queries the remote directory. filterRooms asks for rooms to be
// included alongside users.
type Searcher interface {
	Search(ctx context.Context, text string, filterRooms bool) ([]Entry, error)
}

// SearchOptions configures a SearchController.
type SearchOptions struct {
	Quiet time.Duration
	Clock clockwork.Clock

	// Dispatch runs f on the UI goroutine. Nil runs f inline.
	Dispatch func(f func())

	// OnChange is called from Dispatch after the results changed.
	OnChange func()

	// OnError is called from Dispatch when the latest search failed. The
	// previous results stay in place.
	OnError func(err error)

	Logger *zap.Logger
}

// SearchController turns keystrokes into directory searches. Calls are
// debounced, only the response to the latest issued request is applied and
// nothing is applied after Close.
type SearchController struct {
	searcher Searcher
	debounce *Debouncer
	dispatch func(func())
	onChange func()
	onError  func(error)
	logger   *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	issued  uint64
	closed  bool
	loading bool
	query   string
	results []Entry
}

// NewSearchController creates a controller backed by searcher.
func NewSearchController(searcher Searcher, opts SearchOptions) *SearchController {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	dispatch := opts.Dispatch
	if dispatch == nil {
		dispatch = func(f func()) { f() }
	}
	onChange := opts.OnChange
	if onChange == nil {
		onChange = func() {}
	}
	onError := opts.OnError
	if onError == nil {
		onError = func(error) {}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &SearchController{
		searcher: searcher,
		debounce: NewDebouncer(opts.Quiet, opts.Clock),
		dispatch: dispatch,
		onChange: onChange,
		onError:  onError,
		logger:   logger.Named("search"),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// QueryChanged records new query text. Blank text clears the results at
// once so the roster shows again.
func (c *SearchController) QueryChanged(text string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.query = text
	if strings.TrimSpace(text) == "" {
		c.debounce.Stop()
		// Anything still in flight is now stale.
		c.issued++
		hadResults := len(c.results) > 0
		c.results = nil
		c.loading = false
		c.mu.Unlock()
		if hadResults {
			c.onChange()
		}
		return
	}
	c.mu.Unlock()

	c.debounce.Trigger(func() { c.issue(text) })
}

func (c *SearchController) issue(text string) {
	c.mu.Lock()
	// The query may have moved on while the timer was firing.
	if c.closed || c.query != text {
		c.mu.Unlock()
		return
	}
	c.issued++
	seq := c.issued
	c.loading = true
	ctx := c.ctx
	c.mu.Unlock()

	c.logger.Debug("search issued", zap.Uint64("seq", seq), zap.String("text", text))

	go func() {
		results, err := c.searcher.Search(ctx, text, false)
		if c.isClosed() {
			return
		}
		c.dispatch(func() { c.apply(seq, text, results, err) })
	}()
}

func (c *SearchController) apply(seq uint64, text string, results []Entry, err error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if seq != c.issued {
		c.mu.Unlock()
		c.logger.Debug("stale search response dropped", zap.Uint64("seq", seq), zap.String("text", text))
		return
	}
	c.loading = false
	if err != nil {
		c.mu.Unlock()
		c.logger.Warn("search failed", zap.String("text", text), zap.Error(err))
		c.onError(err)
		c.onChange()
		return
	}
	for i := range results {
		results[i].Search = true
	}
	c.results = results
	c.mu.Unlock()
	c.onChange()
}

func (c *SearchController) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Results returns a copy of the latest applied results.
func (c *SearchController) Results() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.results) == 0 {
		return nil
	}
	out := make([]Entry, len(c.results))
	copy(out, c.results)
	return out
}

// Query returns the text last passed to QueryChanged.
func (c *SearchController) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Loading reports whether the latest issued search has not completed yet.
func (c *SearchController) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Close stops the pending timer and cancels the in-flight request. Responses
// arriving afterwards are dropped.
func (c *SearchController) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.results = nil
	c.mu.Unlock()

	c.debounce.Stop()
	c.cancel()
}
