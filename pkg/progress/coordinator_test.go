package progress

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func newTestCoordinator() (*Coordinator, *fakeClock) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	c := New()
	c.now = clock.Now
	return c, clock
}

func TestBarLifecycle(t *testing.T) {
	c, clock := newTestCoordinator()
	b := c.AddBar(3, "Extracting assets")

	b.Inc(1)
	b.Inc(1)
	b.SetMessage("game")
	clock.Advance(2 * time.Second)

	s := b.Snapshot()
	assert.Equal(t, KindBar, s.Kind)
	assert.Equal(t, int64(2), s.Pos)
	assert.Equal(t, int64(3), s.Total)
	assert.Equal(t, "game", s.Message)
	assert.Equal(t, 2*time.Second, s.Elapsed)
	assert.False(t, s.Finished)

	b.Inc(1)
	b.Finish()
	clock.Advance(time.Minute)
	b.Inc(10)

	s = b.Snapshot()
	assert.Equal(t, int64(3), s.Pos)
	assert.True(t, s.Finished)
	assert.False(t, s.Cleared)
	assert.Equal(t, 2*time.Second, s.Elapsed)
	assert.Equal(t, 1.0, s.Fraction())
}

func TestDone(t *testing.T) {
	c, _ := newTestCoordinator()
	assert.True(t, c.Done())

	spin := c.AddSpinner("running")
	bar := c.AddBar(1, "")
	assert.False(t, c.Done())

	bar.Finish()
	assert.False(t, c.Done())

	spin.FinishAndClear()
	assert.True(t, c.Done())

	snaps := c.Snapshot()
	require.Len(t, snaps, 1)
	assert.Equal(t, KindBar, snaps[0].Kind)
	assert.Equal(t, 1, snaps[0].ID)
	assert.True(t, spin.Snapshot().Cleared)
}

func TestClearedIndicatorsArePruned(t *testing.T) {
	c, _ := newTestCoordinator()
	top := c.AddSpinner("running")
	for i := 0; i < 3; i++ {
		b := c.AddBar(1, "Extracting assets")
		b.Inc(1)
		b.FinishAndClear()
		b.FinishAndClear()
	}
	next := c.AddBar(1, "Extracting assets")

	snaps := c.Snapshot()
	require.Len(t, snaps, 2)
	assert.Equal(t, "running", snaps[0].Prefix)
	assert.Equal(t, 4, snaps[1].ID)
	assert.Equal(t, 4, next.Snapshot().ID)

	top.FinishAndClear()
	next.FinishAndClear()
	assert.Empty(t, c.Snapshot())
	assert.True(t, c.Done())
}

func TestFraction(t *testing.T) {
	assert.Equal(t, 0.0, Snapshot{}.Fraction())
	assert.Equal(t, 1.0, Snapshot{Finished: true}.Fraction())
	assert.Equal(t, 0.5, Snapshot{Pos: 1, Total: 2}.Fraction())
	assert.Equal(t, 1.0, Snapshot{Pos: 5, Total: 2}.Fraction())
}

func TestChangedCoalesces(t *testing.T) {
	c, _ := newTestCoordinator()
	b := c.AddBar(10, "")
	for i := 0; i < 5; i++ {
		b.Inc(1)
	}

	select {
	case <-c.Changed():
	default:
		t.Fatal("expected a pending change notification")
	}
	select {
	case <-c.Changed():
		t.Fatal("notifications should coalesce")
	default:
	}
}

func TestConcurrentUpdates(t *testing.T) {
	c := New()
	b := c.AddBar(1000, "")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				b.Inc(1)
				c.Snapshot()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(1000), b.Snapshot().Pos)
}
