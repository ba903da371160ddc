// Package tui provides the interactive countdown used by timed sessions.
// The model counts wall-clock time down from a fixed duration; pausing
// stops the clock and a reset restarts it from the top. Completion fires
// exactly once, and quitting early reports how long actually elapsed.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(1, 2).
			Align(lipgloss.Center)

	clockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true).
			Padding(1, 0).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Width(24).
			Align(lipgloss.Center)

	pausedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)
)

// KeyMap defines the countdown key bindings
type KeyMap struct {
	Pause key.Binding
	Reset key.Binding
	Quit  key.Binding
}

// DefaultKeyMap returns the default countdown key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Pause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "pause/resume"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Reset, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Pause, k.Reset, k.Quit}}
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model is the countdown session model
type Model struct {
	title    string
	total    time.Duration
	elapsed  time.Duration
	lastTick time.Time
	paused   bool
	done     bool
	quitting bool
	keys     KeyMap
	help     help.Model
	bar      progress.Model
	width    int
	height   int
}

// NewModel creates a countdown for the given title and duration
func NewModel(title string, d time.Duration) Model {
	return Model{
		title:    title,
		total:    d,
		lastTick: time.Now(),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		bar:      progress.New(progress.WithDefaultGradient()),
	}
}

// Completed reports whether the countdown ran to zero
func (m Model) Completed() bool {
	return m.done
}

// Elapsed returns how much timer time actually passed, capped at the total.
// Paused stretches do not count.
func (m Model) Elapsed() time.Duration {
	if m.elapsed > m.total {
		return m.total
	}
	return m.elapsed
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = msg.Width - 8
		if m.bar.Width > 60 {
			m.bar.Width = 60
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			if m.done {
				return m, nil
			}
			m.paused = !m.paused
			if !m.paused {
				m.lastTick = time.Now()
			}
			return m, nil
		case key.Matches(msg, m.keys.Reset):
			if m.done {
				return m, nil
			}
			m.elapsed = 0
			m.lastTick = time.Now()
			return m, nil
		}

	case tickMsg:
		if m.done || m.quitting {
			return m, nil
		}
		now := time.Time(msg)
		if !m.paused {
			m.elapsed += now.Sub(m.lastTick)
		}
		m.lastTick = now
		if m.elapsed >= m.total {
			m.done = true
			return m, tea.Quit
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting && !m.done {
		return ""
	}

	remaining := m.total - m.elapsed
	if remaining < 0 {
		remaining = 0
	}

	var status string
	switch {
	case m.done:
		status = doneStyle.Render("Done!")
	case m.paused:
		status = pausedStyle.Render("Paused")
	default:
		status = " "
	}

	ratio := 0.0
	if m.total > 0 {
		ratio = float64(m.elapsed) / float64(m.total)
	}
	if ratio > 1 {
		ratio = 1
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(m.title),
		clockStyle.Render(formatRemaining(remaining)),
		m.bar.ViewAs(ratio),
		status,
		m.help.View(m.keys),
	)

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

func formatRemaining(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	mi := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, mi, s)
	}
	return fmt.Sprintf("%02d:%02d", mi, s)
}

// Run executes a countdown and reports completion plus elapsed timer time.
func Run(title string, d time.Duration) (completed bool, elapsed time.Duration, err error) {
	p := tea.NewProgram(NewModel(title, d), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, 0, err
	}
	m, ok := final.(Model)
	if !ok {
		return false, 0, fmt.Errorf("unexpected model type")
	}
	return m.Completed(), m.Elapsed(), nil
}
