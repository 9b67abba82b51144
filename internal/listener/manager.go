package listener

import (
	"context"
	"io"
	"log/slog"

	"github.com/pixil98/go-esge/internal/shell"
)

// ConnectionManager runs a shell session for every accepted connection.
type ConnectionManager struct {
	exec shell.Executor
	opts []shell.SessionOpt
}

func NewConnectionManager(exec shell.Executor, opts ...shell.SessionOpt) *ConnectionManager {
	return &ConnectionManager{
		exec: exec,
		opts: opts,
	}
}

func (m *ConnectionManager) AcceptConnection(ctx context.Context, remote string, conn io.ReadWriter) {
	slog.InfoContext(ctx, "session started", "remote", remote)
	if err := shell.NewSession(m.exec, conn, m.opts...).Run(ctx); err != nil {
		slog.WarnContext(ctx, "session", "remote", remote, "error", err)
		return
	}
	slog.InfoContext(ctx, "session ended", "remote", remote)
}
