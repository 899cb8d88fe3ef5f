package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/edc-app/edc/pkg/tasks"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string        { return t.path }
func (t testConfig) APIURL() string          { return DefaultAPIURL }
func (t testConfig) APIToken() string        { return "" }
func (t testConfig) CacheTTL() time.Duration { return DefaultCacheTTL }
func (t testConfig) Timeout() time.Duration  { return DefaultTimeout }
func (t testConfig) WeekStart() time.Weekday { return time.Sunday }

func waitFor(t *testing.T, ch <-chan Event, want EventType) Event {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == want {
				return evt
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s event", want)
			return Event{}
		}
	}
}

func TestWatchEmitsSearchChanges(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	if _, err := p.SaveSearch(ctx, "Today", tasks.Filter{Query: "x"}); err != nil {
		t.Fatalf("save search: %v", err)
	}
	waitFor(t, ch, EventSearchesChanged)
}

func TestWatchEmitsCacheKey(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	if err := p.Put("/tasks?status=pending", []byte(`[]`), time.Now()); err != nil {
		t.Fatalf("put: %v", err)
	}
	evt := waitFor(t, ch, EventCacheChanged)
	if evt.Key != "/tasks?status=pending" {
		t.Fatalf("expected cache key, got %q", evt.Key)
	}
}

func TestWatchEmitsCacheErasures(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	if err := p.Put("/tasks", []byte(`[]`), time.Now()); err != nil {
		t.Fatalf("put: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	if _, err := p.Invalidate(ctx, "/tasks"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	evt := waitFor(t, ch, EventCacheErased)
	if evt.Key != "/tasks" {
		t.Fatalf("expected erased key, got %q", evt.Key)
	}
}

func TestThrottleStopDropsPending(t *testing.T) {
	var mu sync.Mutex
	sent := 0
	send := func(Event) {
		mu.Lock()
		sent++
		mu.Unlock()
	}

	th := newEventThrottle(10 * time.Millisecond)
	th.Enqueue(Event{Type: EventSearchesChanged}, send)
	th.Stop()
	// A timer that already fired must not send after Stop either.
	th.flush(send)
	th.Enqueue(Event{Type: EventInvalidated}, send)
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if sent != 0 {
		t.Fatalf("sent %d events after Stop", sent)
	}
}

func TestThrottleCoalesces(t *testing.T) {
	got := make(chan Event, 8)
	send := func(ev Event) { got <- ev }

	th := newEventThrottle(10 * time.Millisecond)
	defer th.Stop()
	for i := 0; i < 3; i++ {
		th.Enqueue(Event{Type: EventCacheChanged, Key: "/tasks"}, send)
	}
	select {
	case ev := <-got:
		if ev.Key != "/tasks" {
			t.Fatalf("got %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("no flush")
	}
	select {
	case ev := <-got:
		t.Fatalf("burst not coalesced, extra %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}
