package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	bprogress "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultFrameInterval = 100 * time.Millisecond
	defaultBarWidth      = 40
	minBarWidth          = 10
	// room for prefix, elapsed and counters beside the bar
	barReserve = 50
)

// TeaRenderer draws indicators with a bubbletea program: one spinner
// line per spinner, one progress bar per bounded indicator. The
// display is cleared when every indicator is finished.
type TeaRenderer struct {
	Output        io.Writer
	FrameInterval time.Duration
}

func (r TeaRenderer) Render(ctx context.Context, c *Coordinator) error {
	out := r.Output
	if out == nil {
		out = os.Stderr
	}
	p := tea.NewProgram(
		newModel(c, r.FrameInterval),
		tea.WithContext(ctx),
		tea.WithOutput(out),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run progress display: %w", err)
	}
	return nil
}

type frameMsg struct{}

func nextFrame(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return frameMsg{}
	})
}

type styles struct {
	spinner lipgloss.Style
	prefix  lipgloss.Style
	dim     lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		spinner: lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		prefix:  lipgloss.NewStyle().Bold(true),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

type model struct {
	c        *Coordinator
	interval time.Duration
	spin     spinner.Model
	snaps    []Snapshot
	bar      bprogress.Model
	styles   styles
	done     bool
}

func newModel(c *Coordinator, interval time.Duration) model {
	if interval <= 0 {
		interval = defaultFrameInterval
	}
	st := defaultStyles()
	return model{
		c:        c,
		interval: interval,
		snaps:    c.Snapshot(),
		spin:     spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(st.spinner)),
		bar: bprogress.New(
			bprogress.WithDefaultGradient(),
			bprogress.WithWidth(defaultBarWidth),
			bprogress.WithoutPercentage(),
		),
		styles: st,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(nextFrame(m.interval), m.spin.Tick)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case frameMsg:
		m.snaps = m.c.Snapshot()
		if allFinished(m.snaps) {
			m.done = true
			return m, tea.Quit
		}
		return m, nextFrame(m.interval)
	case tea.WindowSizeMsg:
		m.bar.Width = max(minBarWidth, min(defaultBarWidth, msg.Width-barReserve))
	}
	return m, nil
}

func (m model) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	for _, s := range m.snaps {
		if s.Cleared {
			continue
		}
		if s.Kind == KindSpinner {
			b.WriteString(m.spinnerLine(s))
		} else {
			b.WriteString(m.barLine(s))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m model) spinnerLine(s Snapshot) string {
	glyph := m.styles.spinner.Render("✓")
	if !s.Finished {
		glyph = m.spin.View()
	}
	line := glyph + " " + m.styles.prefix.Render(s.Prefix)
	if s.Message != "" {
		line += " " + s.Message
	}
	return line
}

// prefix [elapsed] bar pos/len msg
func (m model) barLine(s Snapshot) string {
	var b strings.Builder
	if s.Prefix != "" {
		b.WriteString(m.styles.prefix.Render(s.Prefix))
		b.WriteString(" ")
	}
	b.WriteString(m.styles.dim.Render("[" + formatElapsed(s.Elapsed) + "]"))
	b.WriteString(" ")
	b.WriteString(m.bar.ViewAs(s.Fraction()))
	fmt.Fprintf(&b, " %d/%d", s.Pos, s.Total)
	if s.Message != "" {
		b.WriteString(" ")
		b.WriteString(s.Message)
	}
	return b.String()
}

func formatElapsed(d time.Duration) string {
	secs := int64(d / time.Second)
	return fmt.Sprintf(
		"%02d:%02d:%02d",
		secs/3600, secs/60%60, secs%60,
	)
}
