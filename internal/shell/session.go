package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pixil98/go-esge/internal"
	"github.com/pixil98/go-esge/internal/commands"
	"github.com/pixil98/go-esge/internal/engine"
)

const DefaultPrompt = "> "

// Executor runs one command line.
type Executor interface {
	Exec(ctx context.Context, term *internal.Terminal, line string) (*engine.Output, error)
}

// Session is a read-eval-print loop for one connection.
type Session struct {
	exec Executor
	term *internal.Terminal

	prompt   string
	greeting string
	start    []string
}

func NewSession(exec Executor, rw io.ReadWriter, opts ...SessionOpt) *Session {
	s := &Session{
		exec:   exec,
		term:   internal.NewTerminal(rw),
		prompt: DefaultPrompt,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run reads commands until the game reports done, the input ends or ctx is
// canceled.
func (s *Session) Run(ctx context.Context) error {
	if s.greeting != "" {
		if err := s.write(s.greeting); err != nil {
			return err
		}
	}

	for _, line := range s.start {
		done, err := s.handle(ctx, line)
		if err != nil || done {
			return err
		}
	}

	for {
		if ctx.Err() != nil {
			return nil
		}

		if _, err := io.WriteString(s.term, s.prompt); err != nil {
			return err
		}

		line, err := s.term.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading command: %w", err)
		}

		done, err := s.handle(ctx, line)
		if err != nil || done {
			return err
		}
	}
}

// handle runs one line and reports whether the session is over.
func (s *Session) handle(ctx context.Context, line string) (bool, error) {
	out, err := s.exec.Exec(ctx, s.term, line)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return true, nil
		}
		msg := err.Error()
		if !commands.IsUserError(err) {
			slog.WarnContext(ctx, "command failed", "line", line, "error", err)
			msg = "Error: " + msg
		}
		return false, s.write(msg)
	}

	if err := s.write(out.Out); err != nil {
		return false, err
	}
	if out.Err != "" {
		if err := s.write("Error: " + out.Err); err != nil {
			return false, err
		}
	}
	return out.Done, nil
}

func (s *Session) write(msg string) error {
	if msg == "" {
		return nil
	}
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	_, err := io.WriteString(s.term, msg)
	return err
}
