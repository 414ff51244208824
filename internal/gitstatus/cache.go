package gitstatus

import (
	"context"
	"sync"
	"time"

	"github.com/ideatui/idea-tui/internal/logging/events"
)

// FetchFunc computes the status of one directory. Swapped out in tests.
type FetchFunc func(ctx context.Context, dir string) Status

// Result pairs a completed computation with the path it belongs to.
type Result struct {
	Path   string
	Status Status
}

// Cache decouples git status computation from the render loop. Each
// distinct path gets at most one outstanding computation; completions
// land on a buffered channel the UI drains once per frame via Poll.
type Cache struct {
	fetch   FetchFunc
	timeout time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	sem    chan struct{}
	result chan Result
	wg     sync.WaitGroup

	mu       sync.Mutex
	inflight map[string]struct{}
	done     map[string]Status
}

// NewCache creates a cache running at most workers concurrent git
// subprocesses, each bounded by timeout before resolving to Unavailable.
func NewCache(workers int, timeout time.Duration, fetch FetchFunc) *Cache {
	if workers < 1 {
		workers = 1
	}
	if fetch == nil {
		fetch = Fetch
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Cache{
		fetch:    fetch,
		timeout:  timeout,
		ctx:      ctx,
		cancel:   cancel,
		sem:      make(chan struct{}, workers),
		result:   make(chan Result, 64),
		inflight: make(map[string]struct{}),
		done:     make(map[string]Status),
	}
}

// Request enqueues a status computation for path. It is a no-op while a
// computation for the same path is in flight, and between completion and
// the next Invalidate.
func (c *Cache) Request(path string) {
	c.mu.Lock()
	if _, ok := c.inflight[path]; ok {
		c.mu.Unlock()
		return
	}
	if _, ok := c.done[path]; ok {
		c.mu.Unlock()
		return
	}
	c.inflight[path] = struct{}{}
	c.mu.Unlock()

	events.Status.Requested(path)
	c.wg.Add(1)
	go c.run(path)
}

// Poll drains and returns all completed results since the last call.
// It never blocks.
func (c *Cache) Poll() []Result {
	var out []Result
	for {
		select {
		case r := <-c.result:
			out = append(out, r)
		default:
			return out
		}
	}
}

// Events exposes the completion channel so the UI can wait for the next
// result without polling on a timer.
func (c *Cache) Events() <-chan Result {
	return c.result
}

// Invalidate drops the cached status for path so the next Request
// recomputes it. An in-flight computation is left alone; its result
// simply lands as usual.
func (c *Cache) Invalidate(path string) {
	c.mu.Lock()
	delete(c.done, path)
	c.mu.Unlock()
	events.Status.Invalidated(path)
}

// Get returns the last completed status for path, if any.
func (c *Cache) Get(path string) (Status, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, ok := c.done[path]
	return st, ok
}

// Stop cancels outstanding work. Workers exit once their current fetch
// returns; use Wait in tests for a clean drain.
func (c *Cache) Stop() {
	c.cancel()
}

// Wait blocks until all worker goroutines have exited.
func (c *Cache) Wait() {
	c.wg.Wait()
}

func (c *Cache) run(path string) {
	defer c.wg.Done()

	select {
	case c.sem <- struct{}{}:
	case <-c.ctx.Done():
		c.mu.Lock()
		delete(c.inflight, path)
		c.mu.Unlock()
		return
	}
	defer func() { <-c.sem }()

	ctx := c.ctx
	cancel := context.CancelFunc(func() {})
	if c.timeout > 0 {
		ctx, cancel = context.WithTimeout(c.ctx, c.timeout)
	}
	status := c.fetch(ctx, path)
	cancel()
	status.FetchedAt = time.Now()

	c.mu.Lock()
	delete(c.inflight, path)
	c.done[path] = status
	c.mu.Unlock()

	events.Status.Resolved(path, status.Branch, status.Dirty, status.Available)

	select {
	case c.result <- Result{Path: path, Status: status}:
	case <-c.ctx.Done():
	}
}
