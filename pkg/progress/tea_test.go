package progress

import (
	"bytes"
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelRendersIndicators(t *testing.T) {
	c, clock := newTestCoordinator()
	c.AddSpinner("Running")
	bar := c.AddBar(4, "Extracting assets")
	bar.Inc(1)
	bar.SetMessage("game")
	clock.Advance(65 * time.Second)

	m := newModel(c, time.Millisecond)
	next, cmd := m.Update(frameMsg{})
	require.NotNil(t, cmd)

	view := next.View()
	assert.Contains(t, view, "Running")
	assert.Contains(t, view, "Extracting assets")
	assert.Contains(t, view, "[00:01:05]")
	assert.Contains(t, view, "1/4")
	assert.Contains(t, view, "game")
}

func TestModelHidesClearedIndicators(t *testing.T) {
	c, _ := newTestCoordinator()
	c.AddSpinner("gone").FinishAndClear()
	c.AddBar(1, "still here")

	m := newModel(c, time.Millisecond)
	next, _ := m.Update(frameMsg{})
	view := next.View()
	assert.NotContains(t, view, "gone")
	assert.Contains(t, view, "still here")
}

func TestModelQuitsWhenDone(t *testing.T) {
	c, _ := newTestCoordinator()
	bar := c.AddBar(1, "Indexes")
	bar.Inc(1)
	bar.Finish()

	m := newModel(c, time.Millisecond)
	next, cmd := m.Update(frameMsg{})
	require.NotNil(t, cmd)
	_, isQuit := cmd().(tea.QuitMsg)
	assert.True(t, isQuit)
	assert.Empty(t, next.View())
}

func TestModelAdvancesSpinner(t *testing.T) {
	c, _ := newTestCoordinator()
	c.AddSpinner("Extracting")

	m := newModel(c, time.Millisecond)
	require.NotNil(t, m.Init())
	before := m.View()

	next, cmd := m.Update(m.spin.Tick())
	require.NotNil(t, cmd)
	assert.Contains(t, next.View(), "Extracting")
	assert.NotEqual(t, before, next.View())
}

func TestModelStopsSpinnerWhenDone(t *testing.T) {
	c, _ := newTestCoordinator()
	c.AddSpinner("Extracting").Finish()

	m := newModel(c, time.Millisecond)
	next, _ := m.Update(frameMsg{})
	require.True(t, next.(model).done)

	_, cmd := next.Update(next.(model).spin.Tick())
	assert.Nil(t, cmd)
}

func TestModelResizesBar(t *testing.T) {
	m := newModel(New(), 0)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 70, Height: 20})
	assert.Equal(t, 20, next.(model).bar.Width)

	next, _ = m.Update(tea.WindowSizeMsg{Width: 10, Height: 20})
	assert.Equal(t, minBarWidth, next.(model).bar.Width)
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "00:00:00", formatElapsed(0))
	assert.Equal(t, "00:01:05", formatElapsed(65*time.Second))
	assert.Equal(t, "02:00:01", formatElapsed(2*time.Hour+time.Second))
}

func TestTeaRendererStopsWhenFinished(t *testing.T) {
	c := New()
	bar := c.AddBar(1, "Indexes")

	var out bytes.Buffer
	task := Start(c, TeaRenderer{
		Output:        &out,
		FrameInterval: 5 * time.Millisecond,
	})
	bar.Inc(1)
	bar.Finish()

	done := make(chan error, 1)
	go func() { done <- task.Join() }()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("tea renderer did not quit")
	}
}

func TestTeaRendererAbort(t *testing.T) {
	c := New()
	c.AddSpinner("stuck")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	err := TeaRenderer{Output: &out}.Render(ctx, c)
	assert.NoError(t, err)
}
