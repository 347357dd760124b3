package progress

import (
	"context"
	"fmt"
	"runtime/debug"
)

// Renderer draws a Coordinator until Done reports true or ctx is
// cancelled.
type Renderer interface {
	Render(ctx context.Context, c *Coordinator) error
}

type RendererFunc func(ctx context.Context, c *Coordinator) error

func (f RendererFunc) Render(ctx context.Context, c *Coordinator) error {
	return f(ctx, c)
}

// PanicError is returned by Task.Join when the renderer panicked
// rather than returning.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("progress renderer panicked: %v", e.Value)
}

func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

type Task struct {
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

// Start runs r on its own goroutine.
func Start(c *Coordinator, r Renderer) *Task {
	ctx, cancel := context.WithCancel(context.Background())
	t := &Task{
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go t.run(ctx, c, r)
	return t
}

func (t *Task) run(ctx context.Context, c *Coordinator, r Renderer) {
	defer close(t.done)
	defer func() {
		if v := recover(); v != nil {
			t.err = &PanicError{Value: v, Stack: debug.Stack()}
		}
	}()
	t.err = r.Render(ctx, c)
}

// Abort asks the renderer to stop without waiting for the indicators.
func (t *Task) Abort() {
	t.cancel()
}

// Join waits for the renderer to return. A renderer that panicked
// yields a *PanicError.
func (t *Task) Join() error {
	<-t.done
	t.cancel()
	return t.err
}
