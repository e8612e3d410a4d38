package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/paytick/internal/ticker"
)

const maxProgressWidth = 60

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = min(msg.Width-docStyle.GetHorizontalFrameSize(), maxProgressWidth)
		return m, nil

	case viewMsg:
		v := ticker.LiveView(msg)
		m.view = &v
		return m, nil

	case clearMsg:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Cancel):
			m.quitting = true
			if m.onCancel == nil {
				return m, tea.Quit
			}
			cancel := m.onCancel
			return m, tea.Sequence(func() tea.Msg {
				cancel()
				return nil
			}, tea.Quit)
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}
	return m, nil
}
