package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/jonboulle/clockwork"

	"github.com/julianstephens/paytick/internal/config"
	"github.com/julianstephens/paytick/internal/constants"
	"github.com/julianstephens/paytick/internal/storage"
)

// Context is passed to every command's Run method
type Context struct {
	Store    storage.Provider
	Settings *config.Manager
	Clock    clockwork.Clock
	Out      io.Writer
}

// NewContext wires the real clock and stdout
func NewContext(store storage.Provider, settings *config.Manager) *Context {
	return &Context{
		Store:    store,
		Settings: settings,
		Clock:    clockwork.NewRealClock(),
		Out:      os.Stdout,
	}
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Printf writes to the command output
func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

// Println writes a line to the command output
func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.out(), args...)
}

// Describe names the store for humans without exposing credentials
func (c *Context) Describe() string {
	switch c.Store.(type) {
	case *storage.MemoryStore:
		return "in-memory store"
	case *storage.JSONStore:
		return "JSON file " + c.Store.GetConfigPath()
	}
	if c.Store.GetConfigPath() == "postgresql" {
		return "PostgreSQL database (schema " + constants.AppName + ")"
	}
	return "SQLite database " + c.Store.GetConfigPath()
}

// reportedError marks an error the user has already been shown
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// Reported wraps err so that the entry point exits non-zero without printing it again
func Reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

// IsReported reports whether err was wrapped by Reported
func IsReported(err error) bool {
	var re *reportedError
	return stderrors.As(err, &re)
}
