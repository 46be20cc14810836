package tui

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/blackwell-systems/winefonts/internal/util"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrCancelled is returned by ShowProgress when the user presses ctrl+c.
var ErrCancelled = errors.New("cancelled by user")

// progressInterval is the minimum number of bytes between reports.
const progressInterval = 256 * 1024

// ProgressReader wraps an io.Reader and reports bytes read on a channel.
// Reports are dropped rather than blocking the reader when the channel is
// full.
type ProgressReader struct {
	reader     io.Reader
	total      int64
	read       int64
	ch         chan<- int64
	lastReport int64
}

func NewProgressReader(r io.Reader, total int64, ch chan<- int64) *ProgressReader {
	return &ProgressReader{reader: r, total: total, ch: ch}
}

func (pr *ProgressReader) Read(p []byte) (int, error) {
	n, err := pr.reader.Read(p)
	pr.read += int64(n)

	if pr.ch != nil && n > 0 {
		complete := err == io.EOF || (pr.total > 0 && pr.read >= pr.total)
		if pr.read-pr.lastReport >= progressInterval || complete {
			select {
			case pr.ch <- pr.read:
				pr.lastReport = pr.read
			default:
			}
		}
	}
	return n, err
}

type progressMsg int64

type tickMsg time.Time

type progressModel struct {
	bar       progress.Model
	total     int64
	current   int64
	label     string
	done      bool
	cancelled bool
	ch        <-chan int64
}

func (m progressModel) Init() tea.Cmd {
	return tea.Batch(tickCmd(), waitForProgress(m.ch))
}

func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForProgress blocks on the channel; a closed channel means the
// operation finished.
func waitForProgress(ch <-chan int64) tea.Cmd {
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return progressMsg(-1)
		}
		return progressMsg(n)
	}
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.done = true
			m.cancelled = true
			return m, tea.Quit
		}

	case tickMsg:
		if m.done {
			return m, tea.Quit
		}
		return m, tickCmd()

	case progressMsg:
		if msg < 0 {
			m.done = true
			return m, tea.Quit
		}
		m.current = int64(msg)
		return m, waitForProgress(m.ch)

	case tea.WindowSizeMsg:
		m.bar.Width = min(msg.Width-20, 80)
		return m, nil
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.done {
		return ""
	}
	if m.total <= 0 {
		return fmt.Sprintf("%s\n%s\n", m.label, util.HumanBytes(float64(m.current)))
	}
	pct := min(float64(m.current)/float64(m.total), 1)
	return fmt.Sprintf("%s\n%s\n%s / %s (%.0f%%)\n",
		m.label,
		m.bar.ViewAs(pct),
		util.HumanBytes(float64(m.current)),
		util.HumanBytes(float64(m.total)),
		pct*100,
	)
}

// ShowProgress displays a progress bar until ch is closed. The operation
// runs elsewhere, reading through a ProgressReader that feeds ch.
func ShowProgress(label string, total int64, ch <-chan int64) error {
	m := progressModel{
		bar:   progress.New(progress.WithDefaultGradient()),
		total: total,
		label: label,
		ch:    ch,
	}

	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(progressModel); ok && fm.cancelled {
		return ErrCancelled
	}
	return nil
}
