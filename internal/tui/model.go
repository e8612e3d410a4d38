// Package tui renders the earnings ticker in the terminal.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/paytick/internal/ticker"
)

type KeyMap struct {
	Cancel key.Binding
	Help   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Cancel: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "stop ticker"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
	}
}

// viewMsg carries a new frame from the controller
type viewMsg ticker.LiveView

// clearMsg ends the live display
type clearMsg struct{}

// Model is the live earnings display
type Model struct {
	view     *ticker.LiveView
	keys     KeyMap
	help     help.Model
	progress progress.Model
	onCancel func()
	quitting bool
	width    int
	height   int
}

// NewModel creates a display showing initial, if any. onCancel runs when the
// user asks to stop the ticker.
func NewModel(initial *ticker.LiveView, onCancel func()) Model {
	return Model{
		view:     initial,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		onCancel: onCancel,
	}
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Cancel, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{{m.keys.Cancel, m.keys.Help}}
}

func (m Model) Init() tea.Cmd {
	return nil
}
