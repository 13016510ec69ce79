package compose

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func waitFired(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case s := <-ch:
		return s
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for debounced call")
		return ""
	}
}

func expectQuiet(t *testing.T, ch <-chan string) {
	t.Helper()
	select {
	case s := <-ch:
		t.Fatalf("unexpected call %q", s)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDebouncerRunsLastAfterQuiet(t *testing.T) {
	clock := clockwork.NewFakeClock()
	d := NewDebouncer(time.Second, clock)

	fired := make(chan string, 4)
	for _, s := range []string{"a", "b", "c"} {
		d.Trigger(func() { fired <- s })
		clock.Advance(500 * time.Millisecond)
	}
	expectQuiet(t, fired)
	if !d.Pending() {
		t.Error("Pending() = false, want true")
	}

	clock.Advance(500 * time.Millisecond)
	if got := waitFired(t, fired); got != "c" {
		t.Errorf("fired %q, want c", got)
	}
	expectQuiet(t, fired)
	if d.Pending() {
		t.Error("Pending() = true after firing")
	}
}

func TestDebouncerStop(t *testing.T) {
	clock := clockwork.NewFakeClock()
	d := NewDebouncer(time.Second, clock)

	fired := make(chan string, 1)
	d.Trigger(func() { fired <- "x" })
	d.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := clock.BlockUntilContext(ctx, 0); err != nil {
		t.Fatalf("timer still armed after Stop: %v", err)
	}
	clock.Advance(2 * time.Second)
	expectQuiet(t, fired)
}

func TestDebouncerStopRacingFire(t *testing.T) {
	clock := clockwork.NewFakeClock()
	d := NewDebouncer(time.Second, clock)

	fired := make(chan string, 1)
	d.Trigger(func() { fired <- "x" })
	// The callback goroutine is started by Advance; Stop right after must
	// still win because the generation moved on.
	d.mu.Lock()
	clock.Advance(time.Second)
	d.gen++
	d.mu.Unlock()
	expectQuiet(t, fired)
}

func TestDebouncerZeroQuietRunsImmediately(t *testing.T) {
	d := NewDebouncer(0, clockwork.NewFakeClock())

	n := 0
	d.Trigger(func() { n++ })
	d.Trigger(func() { n++ })
	if n != 2 {
		t.Errorf("ran %d times, want 2", n)
	}
}

func TestDebouncerRealClock(t *testing.T) {
	d := NewDebouncer(10*time.Millisecond, nil)

	done := make(chan struct{})
	d.Trigger(func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for debounced call")
	}
}
