package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/julianstephens/paytick/internal/models"
	"github.com/julianstephens/paytick/internal/ticker"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	if m.view == nil {
		content = titleStyle.Render("Waiting for the first tick...")
	} else {
		content = m.viewTicker(*m.view)
	}

	ui := lipgloss.JoinVertical(lipgloss.Center,
		content,
		m.help.View(m),
	)

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, ui)
	}
	return docStyle.Render(ui)
}

func (m Model) viewTicker(v ticker.LiveView) string {
	window := timeStyle.Render(fmt.Sprintf("%s - %s",
		models.TimeOfDayOf(v.Start), models.TimeOfDayOf(v.End)))

	switch {
	case v.Phase == models.PhasePreShift:
		return lipgloss.JoinVertical(lipgloss.Center,
			titleStyle.Render("Off the clock"),
			window,
			infoStyle.Render(StartsIn(v)),
		)

	case v.Phase.Ended():
		return lipgloss.JoinVertical(lipgloss.Center,
			titleStyle.Render("Shift complete"),
			amountStyle.Render(v.Text),
			window,
			infoStyle.Render(fmt.Sprintf("Closing in %s", v.Cooldown.Round(time.Second))),
		)

	default:
		return lipgloss.JoinVertical(lipgloss.Center,
			titleStyle.Render(fmt.Sprintf("Earned today (%s)", v.Currency)),
			amountStyle.Render(v.Text),
			m.progress.ViewAs(v.Progress),
			window,
		)
	}
}

// StartsIn describes how far away the shift start is, e.g. "Shift starts 2 hours from now"
func StartsIn(v ticker.LiveView) string {
	return "Shift starts " + humanize.RelTime(v.Start, v.Now, "ago", "from now")
}
