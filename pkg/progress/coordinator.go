package progress

import (
	"slices"
	"sync"
	"time"
)

type Kind int

const (
	KindSpinner Kind = iota
	KindBar
)

// Snapshot is a point-in-time copy of one indicator.
type Snapshot struct {
	ID       int
	Kind     Kind
	Prefix   string
	Message  string
	Pos      int64
	Total    int64
	Elapsed  time.Duration
	Finished bool
	Cleared  bool
}

// Fraction is Pos/Total clamped to [0, 1]. An empty bar counts as
// complete once finished.
func (s Snapshot) Fraction() float64 {
	if s.Total <= 0 {
		if s.Finished {
			return 1
		}
		return 0
	}
	f := float64(s.Pos) / float64(s.Total)
	if f > 1 {
		return 1
	}
	return f
}

type Coordinator struct {
	mu      sync.Mutex
	bars    []*Bar
	nextID  int
	changed chan struct{}
	now     func() time.Time
}

func New() *Coordinator {
	return &Coordinator{
		changed: make(chan struct{}, 1),
		now:     time.Now,
	}
}

func (c *Coordinator) AddSpinner(prefix string) *Bar {
	return c.add(KindSpinner, 0, prefix)
}

func (c *Coordinator) AddBar(total int64, prefix string) *Bar {
	return c.add(KindBar, total, prefix)
}

func (c *Coordinator) add(kind Kind, total int64, prefix string) *Bar {
	c.mu.Lock()
	b := &Bar{
		c:       c,
		id:      c.nextID,
		kind:    kind,
		prefix:  prefix,
		total:   total,
		started: c.now(),
	}
	c.nextID++
	c.bars = append(c.bars, b)
	c.mu.Unlock()
	c.notify()
	return b
}

// Changed delivers a coalesced wake-up after any mutation. Intended
// for a single renderer.
func (c *Coordinator) Changed() <-chan struct{} {
	return c.changed
}

func (c *Coordinator) notify() {
	select {
	case c.changed <- struct{}{}:
	default:
	}
}

func (c *Coordinator) Snapshot() []Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	out := make([]Snapshot, len(c.bars))
	for i, b := range c.bars {
		out[i] = b.snapshotLocked(now)
	}
	return out
}

// removeLocked drops b from the registry. Callers hold c.mu.
func (c *Coordinator) removeLocked(b *Bar) {
	if i := slices.Index(c.bars, b); i >= 0 {
		c.bars = slices.Delete(c.bars, i, i+1)
	}
}

// Done reports whether every registered indicator has been finished
// or cleared. It is true when nothing is registered.
func (c *Coordinator) Done() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, b := range c.bars {
		if !b.finished {
			return false
		}
	}
	return true
}

func allFinished(snaps []Snapshot) bool {
	for _, s := range snaps {
		if !s.Finished {
			return false
		}
	}
	return true
}

// Bar is a handle to one registered indicator. Updates after Finish
// or FinishAndClear are ignored.
type Bar struct {
	c       *Coordinator
	id      int
	kind    Kind
	prefix  string
	started time.Time

	pos      int64
	total    int64
	msg      string
	elapsed  time.Duration
	finished bool
	cleared  bool
}

func (b *Bar) update(fn func()) {
	b.c.mu.Lock()
	if b.finished {
		b.c.mu.Unlock()
		return
	}
	fn()
	b.c.mu.Unlock()
	b.c.notify()
}

func (b *Bar) Inc(n int64) {
	b.update(func() { b.pos += n })
}

func (b *Bar) SetMessage(msg string) {
	b.update(func() { b.msg = msg })
}

// Finish stops the indicator and leaves it on screen.
func (b *Bar) Finish() {
	b.update(func() {
		b.finished = true
		b.elapsed = b.c.now().Sub(b.started)
	})
}

// FinishAndClear stops the indicator and unregisters it, so it no
// longer appears in Coordinator snapshots. The handle keeps its final
// state.
func (b *Bar) FinishAndClear() {
	b.update(func() {
		b.finished = true
		b.cleared = true
		b.elapsed = b.c.now().Sub(b.started)
		b.c.removeLocked(b)
	})
}

func (b *Bar) Snapshot() Snapshot {
	b.c.mu.Lock()
	defer b.c.mu.Unlock()
	return b.snapshotLocked(b.c.now())
}

func (b *Bar) snapshotLocked(now time.Time) Snapshot {
	elapsed := b.elapsed
	if !b.finished {
		elapsed = now.Sub(b.started)
	}
	return Snapshot{
		ID:       b.id,
		Kind:     b.kind,
		Prefix:   b.prefix,
		Message:  b.msg,
		Pos:      b.pos,
		Total:    b.total,
		Elapsed:  elapsed,
		Finished: b.finished,
		Cleared:  b.cleared,
	}
}
