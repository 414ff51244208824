package gitstatus

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func waitForResults(t *testing.T, c *Cache, want int) []Result {
	t.Helper()
	deadline := time.After(2 * time.Second)
	var out []Result
	for len(out) < want {
		select {
		case r := <-c.Events():
			out = append(out, r)
		case <-deadline:
			t.Fatalf("timed out waiting for %d results, got %d", want, len(out))
		}
	}
	return out
}

func TestRequestDeduplicatesInflight(t *testing.T) {
	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})
	c := NewCache(2, 0, func(ctx context.Context, dir string) Status {
		atomic.AddInt32(&calls, 1)
		close(started)
		<-release
		return Status{Branch: "main", Available: true}
	})
	defer c.Stop()

	c.Request("/p")
	<-started
	c.Request("/p")
	c.Request("/p")
	close(release)
	c.Wait()

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected exactly one computation, got %d", got)
	}
}

func TestRequestIdempotentUntilInvalidate(t *testing.T) {
	var calls int32
	c := NewCache(1, 0, func(ctx context.Context, dir string) Status {
		atomic.AddInt32(&calls, 1)
		return Status{Available: true, Branch: "main"}
	})
	defer c.Stop()

	c.Request("/p")
	c.Wait()
	c.Request("/p")
	c.Wait()
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected cached result to suppress recompute, got %d calls", got)
	}

	c.Invalidate("/p")
	c.Request("/p")
	c.Wait()
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("expected invalidate to force recompute, got %d calls", got)
	}
}

func TestPollDrainsWithoutBlocking(t *testing.T) {
	c := NewCache(4, 0, func(ctx context.Context, dir string) Status {
		return Status{Available: true, Branch: dir}
	})
	defer c.Stop()

	if got := c.Poll(); len(got) != 0 {
		t.Fatalf("expected empty poll before any request, got %d", len(got))
	}

	paths := []string{"/a", "/b", "/c"}
	for _, p := range paths {
		c.Request(p)
	}
	c.Wait()

	results := c.Poll()
	if len(results) != len(paths) {
		t.Fatalf("expected %d results, got %d", len(paths), len(results))
	}
	seen := map[string]bool{}
	for _, r := range results {
		seen[r.Path] = true
		if !r.Status.Available {
			t.Fatalf("expected available status for %s", r.Path)
		}
		if r.Status.FetchedAt.IsZero() {
			t.Fatalf("expected FetchedAt to be stamped for %s", r.Path)
		}
	}
	for _, p := range paths {
		if !seen[p] {
			t.Fatalf("missing result for %s", p)
		}
	}

	if got := c.Poll(); len(got) != 0 {
		t.Fatalf("expected second poll to be empty, got %d", len(got))
	}
}

func TestConcurrencyBounded(t *testing.T) {
	const workers = 2
	var active, peak int32
	var mu sync.Mutex
	c := NewCache(workers, 0, func(ctx context.Context, dir string) Status {
		cur := atomic.AddInt32(&active, 1)
		mu.Lock()
		if cur > peak {
			peak = cur
		}
		mu.Unlock()
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt32(&active, -1)
		return Status{Available: true}
	})
	defer c.Stop()

	for _, p := range []string{"/1", "/2", "/3", "/4", "/5", "/6"} {
		c.Request(p)
	}
	c.Wait()

	mu.Lock()
	defer mu.Unlock()
	if peak > workers {
		t.Fatalf("expected at most %d concurrent computations, saw %d", workers, peak)
	}
}

func TestTimeoutResolvesUnavailable(t *testing.T) {
	c := NewCache(1, 10*time.Millisecond, func(ctx context.Context, dir string) Status {
		select {
		case <-ctx.Done():
			return Unavailable
		case <-time.After(time.Second):
			return Status{Available: true}
		}
	})
	defer c.Stop()

	c.Request("/hung")
	results := waitForResults(t, c, 1)
	if results[0].Status.Available {
		t.Fatalf("expected hung computation to resolve unavailable")
	}
}

func TestFetchNonRepositoryIsUnavailable(t *testing.T) {
	status := Fetch(context.Background(), t.TempDir())
	if status.Available {
		t.Fatalf("expected non-repository to be unavailable, got %+v", status)
	}
}
