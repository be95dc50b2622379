package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type counter struct{ n int }

func TestCreateAndDo(t *testing.T) {
	r := NewRegistry[*counter]()
	id := r.Create(&counter{})

	for i := 0; i < 3; i++ {
		if err := r.Do(id, func(c *counter) error { c.n++; return nil }); err != nil {
			t.Fatalf("do: %v", err)
		}
	}
	var got int
	r.Do(id, func(c *counter) error { got = c.n; return nil })
	if got != 3 {
		t.Errorf("n = %d, want 3", got)
	}

	boom := errors.New("boom")
	if err := r.Do(id, func(*counter) error { return boom }); !errors.Is(err, boom) {
		t.Errorf("fn error not returned: %v", err)
	}

	if err := r.Do("missing", func(*counter) error { return nil }); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}

	r.Delete(id)
	if r.Len() != 0 {
		t.Errorf("len = %d after delete", r.Len())
	}
}

func TestConcurrentDo(t *testing.T) {
	r := NewRegistry[*counter]()
	id := r.Create(&counter{})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Do(id, func(c *counter) error { c.n++; return nil })
		}()
	}
	wg.Wait()

	var got int
	r.Do(id, func(c *counter) error { got = c.n; return nil })
	if got != 50 {
		t.Errorf("n = %d, want 50", got)
	}
}

func TestSweep(t *testing.T) {
	now := time.Date(2026, 6, 11, 12, 0, 0, 0, time.UTC)
	r := NewRegistry[*counter]().WithClock(func() time.Time { return now })

	old := r.Create(&counter{})
	now = now.Add(90 * time.Minute)
	fresh := r.Create(&counter{})
	now = now.Add(45 * time.Minute)

	if n := r.Sweep(2 * time.Hour); n != 1 {
		t.Fatalf("swept %d, want 1", n)
	}
	if err := r.Do(old, func(*counter) error { return nil }); !errors.Is(err, ErrNotFound) {
		t.Error("old session should be gone")
	}
	if err := r.Do(fresh, func(*counter) error { return nil }); err != nil {
		t.Errorf("fresh session: %v", err)
	}

	// The Do above touched fresh, so it survives another sweep.
	now = now.Add(time.Hour)
	if n := r.Sweep(2 * time.Hour); n != 0 {
		t.Errorf("swept %d, want 0", n)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	r := NewRegistry[*counter]()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx, time.Millisecond, time.Hour)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
