// Package tui is the terminal viewer: it shows frames as coloured half
// blocks and turns key presses into view commands.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/mandel/internal/compute"
	"github.com/san-kum/mandel/internal/frame"
	"github.com/san-kum/mandel/internal/logging"
	"github.com/san-kum/mandel/internal/view"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// hudRows is the number of terminal rows below the image.
const hudRows = 3

type frameMsg struct {
	frame *frame.Frame
	err   error
}

type model struct {
	backend compute.Backend
	ctx     context.Context

	image   string
	seq     uint64
	elapsed time.Duration
	err     error

	width  int
	height int
}

func newModel(ctx context.Context, b compute.Backend) model {
	w, h := b.Size()
	return model{backend: b, ctx: ctx, width: w, height: h/2 + hudRows}
}

func (m model) Init() tea.Cmd { return m.redraw() }

// redraw asks the backend for a frame off the update loop. It yields no
// message when nothing is owed or a pass is already running; the running
// pass schedules the next one when it lands.
func (m model) redraw() tea.Cmd {
	b, ctx := m.backend, m.ctx
	return func() tea.Msg {
		f, ok, err := b.Redraw(ctx)
		if err != nil {
			return frameMsg{err: err}
		}
		if !ok {
			return nil
		}
		return frameMsg{frame: f}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd, ok := view.ParseCommand(msg.String())
		if !ok {
			return m, nil
		}
		if cmd == view.Quit {
			return m, tea.Quit
		}
		m.err = m.backend.Apply(cmd)
		return m, m.redraw()

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		rows := max(msg.Height-hudRows, 1)
		if err := m.backend.Resize(max(msg.Width, 1), 2*rows); err != nil {
			m.err = err
			return m, nil
		}
		return m, m.redraw()

	case frameMsg:
		if msg.err != nil {
			logging.Logger().Warn("render failed", "err", msg.err)
			m.err = msg.err
			return m, nil
		}
		m.image = HalfBlocks(msg.frame)
		m.seq = msg.frame.Seq
		m.elapsed = msg.frame.Elapsed
		msg.frame.Release()
		if m.backend.Dirty() {
			return m, m.redraw()
		}
		return m, nil
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(m.image)

	snap := m.backend.View()
	b.WriteString(fmt.Sprintf("%s %s  %s %s  %s %s\n",
		dim.Render("re"), white.Render(snap.CenterRe),
		dim.Render("im"), white.Render(snap.CenterIm),
		dim.Render("zoom"), yellow.Render(snap.Zoom)))

	status := fmt.Sprintf("%s  #%d  %s", m.backend.Name(), m.seq, m.elapsed.Round(time.Millisecond))
	if m.backend.Dirty() {
		status += "  rendering"
	}
	if m.err != nil {
		status += "  " + red.Render(m.err.Error())
	}
	b.WriteString(cyan.Render(status) + "\n")
	b.WriteString(dim.Render(view.KeyHelp))
	return b.String()
}

// Run shows b in the terminal until the user quits.
func Run(ctx context.Context, b compute.Backend) error {
	logging.Logger().Info("terminal viewer started", "backend", b.Name())
	p := tea.NewProgram(newModel(ctx, b), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
