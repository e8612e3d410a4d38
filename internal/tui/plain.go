package tui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/julianstephens/paytick/internal/errors"
	"github.com/julianstephens/paytick/internal/models"
	"github.com/julianstephens/paytick/internal/ticker"
)

// Plain is a line-oriented ticker.UI for pipes and dumb terminals. Each frame
// rewrites the current line.
type Plain struct {
	out io.Writer

	lines chan string
	once  sync.Once
	in    *bufio.Scanner

	mu     sync.Mutex
	shown  bool
	closed bool
}

var _ ticker.UI = (*Plain)(nil)

func NewPlain(in io.Reader, out io.Writer) *Plain {
	return &Plain{
		in:    bufio.NewScanner(in),
		out:   out,
		lines: make(chan string),
	}
}

// readLines feeds lines to prompts. It runs once, for the life of the process,
// so a prompt abandoned mid-read does not lose the next answer.
func (p *Plain) readLines() {
	go func() {
		for p.in.Scan() {
			p.lines <- p.in.Text()
		}
		close(p.lines)
	}()
}

func (p *Plain) readLine(ctx context.Context) (string, error) {
	p.once.Do(p.readLines)
	select {
	case <-ctx.Done():
		return "", errors.ErrAbandoned
	case line, ok := <-p.lines:
		if !ok {
			return "", errors.ErrAbandoned
		}
		return line, nil
	}
}

func (p *Plain) PromptText(ctx context.Context, label, placeholder string) (string, error) {
	p.mu.Lock()
	p.closed = false
	fmt.Fprintf(p.out, "%s [%s] ", label, placeholder)
	p.mu.Unlock()
	return p.readLine(ctx)
}

func (p *Plain) ShowChoice(ctx context.Context, message string, options []string) (string, error) {
	p.mu.Lock()
	p.closed = false
	fmt.Fprintln(p.out, message)
	for i, opt := range options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, opt)
	}
	p.mu.Unlock()

	for {
		p.mu.Lock()
		fmt.Fprintf(p.out, "Choose 1-%d: ", len(options))
		p.mu.Unlock()

		line, err := p.readLine(ctx)
		if err != nil {
			return "", err
		}
		if n, err := strconv.Atoi(strings.TrimSpace(line)); err == nil && n >= 1 && n <= len(options) {
			return options[n-1], nil
		}
	}
}

func (p *Plain) ShowError(msg string) {
	p.println("Error: " + msg)
}

func (p *Plain) ShowInfo(msg string) {
	p.println(msg)
}

func (p *Plain) println(line string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.shown {
		fmt.Fprintln(p.out)
		p.shown = false
	}
	fmt.Fprintln(p.out, line)
}

func (p *Plain) DisplayLiveValue(view ticker.LiveView) {
	text := view.Text
	if view.Phase == models.PhasePreShift {
		text = StartsIn(view)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	// Frames computed before a cancel can arrive after it
	if p.closed {
		return
	}
	fmt.Fprintf(p.out, "\r\033[K%s", text)
	p.shown = true
}

// ClearDisplay erases the frame and drops further frames until the next prompt
func (p *Plain) ClearDisplay() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	if p.shown {
		fmt.Fprint(p.out, "\r\033[K")
		p.shown = false
	}
}
