package listener

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"syscall"

	"github.com/iammegalith/telnet"
)

type TelnetListener struct {
	port uint16
	cm   *ConnectionManager
}

func NewTelnetListener(port uint16, cm *ConnectionManager) *TelnetListener {
	return &TelnetListener{
		port: port,
		cm:   cm,
	}
}

func (l *TelnetListener) Start(ctx context.Context) error {
	h := &telnetHandler{cm: l.cm, conns: newSessions()}
	svr := telnet.NewServer(fmt.Sprintf(":%d", l.port), h)
	slog.InfoContext(ctx, "listening for telnet", "port", l.port)

	stop := context.AfterFunc(ctx, func() {
		svr.Stop()
		h.conns.closeAndWait()
	})
	defer stop()

	err := svr.ListenAndServe()
	switch {
	case errors.Is(err, syscall.EADDRINUSE):
		return fmt.Errorf("port %d is already in use (another server running?)", l.port)
	case err != nil && ctx.Err() == nil:
		return fmt.Errorf("serving telnet on port %d: %w", l.port, err)
	}
	return nil
}

type telnetHandler struct {
	cm    *ConnectionManager
	conns *sessions
}

// HandleTelnet is called by the telnet server on a goroutine per connection.
func (h *telnetHandler) HandleTelnet(conn *telnet.Connection) {
	defer func() {
		if err := conn.Close(); err != nil {
			slog.Warn("closing telnet connection", "error", err)
		}
	}()
	h.conns.track(func(ctx context.Context) {
		h.cm.AcceptConnection(ctx, remoteAddr(conn), newLineEndings(conn))
	})
}

// remoteAddr names the peer of conn when the connection exposes it.
func remoteAddr(conn any) string {
	if ra, ok := conn.(interface{ RemoteAddr() net.Addr }); ok && ra.RemoteAddr() != nil {
		return ra.RemoteAddr().String()
	}
	return "telnet"
}
