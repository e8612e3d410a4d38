package tui

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/paytick/internal/errors"
	"github.com/julianstephens/paytick/internal/models"
	"github.com/julianstephens/paytick/internal/ticker"
)

var (
	day   = time.Date(2026, time.March, 2, 0, 0, 0, 0, time.Local)
	start = day.Add(9 * time.Hour)
	end   = day.Add(17 * time.Hour)
)

func activeView() ticker.LiveView {
	return ticker.LiveView{
		Phase:    models.PhaseActive,
		Visible:  true,
		Text:     "$100.00",
		Earned:   decimal.NewFromInt(100),
		Currency: "USD",
		Start:    start,
		End:      end,
		Now:      start.Add(4 * time.Hour),
		Progress: 0.5,
	}
}

func TestModelShowsLatestView(t *testing.T) {
	m := NewModel(nil, nil)
	assert.Contains(t, m.View(), "Waiting for the first tick")

	next, cmd := m.Update(viewMsg(activeView()))
	assert.Nil(t, cmd)

	out := next.View()
	assert.Contains(t, out, "$100.00")
	assert.Contains(t, out, "9:00 AM - 5:00 PM")
	assert.Contains(t, out, "Earned today (USD)")
}

func TestModelPreShiftAndCooldown(t *testing.T) {
	pre := activeView()
	pre.Phase = models.PhasePreShift
	pre.Visible = false
	pre.Now = start.Add(-2 * time.Hour)

	m := NewModel(&pre, nil)
	out := m.View()
	assert.Contains(t, out, "Off the clock")
	assert.Contains(t, out, "2 hours from now")
	assert.NotContains(t, out, "$100.00")

	done := activeView()
	done.Phase = models.PhaseCooldown
	done.Text = "Congrats! You earned $200.00"
	done.Cooldown = 9*time.Minute + 30*time.Second

	m = NewModel(&done, nil)
	out = m.View()
	assert.Contains(t, out, "Shift complete")
	assert.Contains(t, out, "Congrats! You earned $200.00")
	assert.Contains(t, out, "Closing in 9m30s")
}

func TestModelClearQuits(t *testing.T) {
	v := activeView()
	m := NewModel(&v, nil)

	next, cmd := m.Update(clearMsg{})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, next.View())
}

func TestModelCancelKey(t *testing.T) {
	m := NewModel(nil, func() {})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.True(t, next.(Model).quitting)
	assert.Empty(t, next.View())
}

func TestModelCancelWithoutCallbackQuits(t *testing.T) {
	m := NewModel(nil, nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModelHelpToggle(t *testing.T) {
	m := NewModel(nil, nil)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	assert.True(t, next.(Model).help.ShowAll)
}

func TestStartsIn(t *testing.T) {
	v := activeView()
	v.Now = start.Add(-90 * time.Minute)
	assert.Equal(t, "Shift starts 1 hour from now", StartsIn(v))
}

func TestPlainPrompt(t *testing.T) {
	var out bytes.Buffer
	p := NewPlain(strings.NewReader("USD\n52000\n"), &out)

	got, err := p.PromptText(context.Background(), "Currency:", "USD")
	require.NoError(t, err)
	assert.Equal(t, "USD", got)

	got, err = p.PromptText(context.Background(), "Salary:", "52000")
	require.NoError(t, err)
	assert.Equal(t, "52000", got)

	assert.Contains(t, out.String(), "Currency: [USD]")
}

func TestPlainPromptEOFAbandons(t *testing.T) {
	p := NewPlain(strings.NewReader(""), &bytes.Buffer{})
	_, err := p.PromptText(context.Background(), "Currency:", "USD")
	assert.ErrorIs(t, err, errors.ErrAbandoned)
}

func TestPlainPromptContextAbandons(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	p := NewPlain(r, &bytes.Buffer{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.PromptText(ctx, "Currency:", "USD")
	assert.ErrorIs(t, err, errors.ErrAbandoned)
}

func TestPlainChoice(t *testing.T) {
	var out bytes.Buffer
	p := NewPlain(strings.NewReader("7\nx\n2\n"), &out)

	got, err := p.ShowChoice(context.Background(), "Reuse?", []string{"Reuse", "Reset"})
	require.NoError(t, err)
	assert.Equal(t, "Reset", got)
	assert.Contains(t, out.String(), "1) Reuse")
	assert.Contains(t, out.String(), "2) Reset")
}

func TestPlainDisplay(t *testing.T) {
	var out bytes.Buffer
	p := NewPlain(strings.NewReader(""), &out)

	p.DisplayLiveValue(activeView())
	p.ShowInfo("Earnings ticker cancelled.")

	pre := activeView()
	pre.Phase = models.PhasePreShift
	pre.Now = start.Add(-3 * time.Hour)
	p.DisplayLiveValue(pre)
	p.ClearDisplay()

	got := out.String()
	assert.Contains(t, got, "$100.00\nEarnings ticker cancelled.\n")
	assert.Contains(t, got, "Shift starts 3 hours from now")
	assert.True(t, strings.HasSuffix(got, "\r\033[K"))
}

func TestPlainDropsFramesAfterClear(t *testing.T) {
	var out bytes.Buffer
	p := NewPlain(strings.NewReader("usd\n"), &out)

	p.DisplayLiveValue(activeView())
	p.ClearDisplay()
	p.ShowInfo("Earnings ticker cancelled.")
	p.DisplayLiveValue(activeView())

	assert.True(t, strings.HasSuffix(out.String(), "Earnings ticker cancelled.\n"), "late frame was drawn: %q", out.String())

	// The next start attempt shows frames again
	_, err := p.PromptText(context.Background(), "Currency:", "USD")
	require.NoError(t, err)
	out.Reset()
	p.DisplayLiveValue(activeView())
	assert.Equal(t, "\r\033[K$100.00", out.String())
}
