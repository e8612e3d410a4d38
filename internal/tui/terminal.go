package tui

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/paytick/internal/errors"
	"github.com/julianstephens/paytick/internal/logger"
	"github.com/julianstephens/paytick/internal/ticker"
)

// Terminal is the interactive ticker.UI: huh forms for input and a bubbletea
// program for the live display.
type Terminal struct {
	in  io.Reader
	out io.Writer

	mu       sync.Mutex
	program  *tea.Program
	closing  bool
	pending  []string
	latest   *ticker.LiveView
	onCancel func()
}

var _ ticker.UI = (*Terminal)(nil)

func NewTerminal() *Terminal {
	return &Terminal{in: os.Stdin, out: os.Stdout}
}

// OnCancel sets what runs when the user stops the ticker from the display
func (t *Terminal) OnCancel(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onCancel = fn
}

func (t *Terminal) PromptText(ctx context.Context, label, placeholder string) (string, error) {
	var value string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(label).
				Placeholder(placeholder).
				Value(&value),
		),
	).WithInput(t.in).WithOutput(t.out)

	if err := form.RunWithContext(ctx); err != nil {
		return "", abandoned(err)
	}
	return value, nil
}

func (t *Terminal) ShowChoice(ctx context.Context, message string, options []string) (string, error) {
	var choice string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(message).
				Options(huh.NewOptions(options...)...).
				Value(&choice),
		),
	).WithInput(t.in).WithOutput(t.out)

	if err := form.RunWithContext(ctx); err != nil {
		return "", abandoned(err)
	}
	return choice, nil
}

func abandoned(err error) error {
	if stderrors.Is(err, huh.ErrUserAborted) ||
		stderrors.Is(err, context.Canceled) ||
		stderrors.Is(err, context.DeadlineExceeded) {
		return errors.ErrAbandoned
	}
	return fmt.Errorf("%w: %v", errors.ErrAbandoned, err)
}

func (t *Terminal) ShowError(msg string) {
	t.print(dangerStyle.Render("Error: " + msg))
}

func (t *Terminal) ShowInfo(msg string) {
	t.print(infoStyle.Render(msg))
}

func (t *Terminal) print(line string) {
	t.mu.Lock()
	switch {
	case t.closing:
		t.pending = append(t.pending, line)
		t.mu.Unlock()
	case t.program != nil:
		p := t.program
		t.mu.Unlock()
		p.Println(line)
	default:
		t.mu.Unlock()
		fmt.Fprintln(t.out, line)
	}
}

func (t *Terminal) DisplayLiveValue(view ticker.LiveView) {
	t.mu.Lock()
	t.latest = &view
	p := t.program
	closing := t.closing
	t.mu.Unlock()

	if p != nil && !closing {
		p.Send(viewMsg(view))
	}
}

func (t *Terminal) ClearDisplay() {
	t.mu.Lock()
	t.latest = nil
	p := t.program
	if p != nil {
		t.closing = true
	}
	t.mu.Unlock()

	if p != nil {
		p.Send(clearMsg{})
	}
}

// Run shows the live display until done is closed, the user cancels, or ctx ends.
// Messages raised while the display shuts down are printed after it exits.
func (t *Terminal) Run(ctx context.Context, done <-chan struct{}) error {
	select {
	case <-done:
		return nil
	default:
	}

	t.mu.Lock()
	p := tea.NewProgram(
		NewModel(t.latest, t.onCancel),
		tea.WithContext(ctx),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
		tea.WithAltScreen(),
	)
	t.program = p
	t.closing = false
	t.mu.Unlock()

	finished := make(chan struct{})
	go func() {
		select {
		case <-done:
			t.ClearDisplay()
		case <-finished:
		}
	}()

	_, err := p.Run()
	close(finished)

	t.mu.Lock()
	t.program = nil
	t.closing = false
	pending := t.pending
	t.pending = nil
	t.mu.Unlock()

	for _, line := range pending {
		fmt.Fprintln(t.out, line)
	}

	if err != nil && !stderrors.Is(err, tea.ErrProgramKilled) {
		logger.Error("Live display failed", "error", err)
		return err
	}
	return nil
}
