package listener

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"golang.org/x/crypto/ssh"
)

const sshServerVersion = "SSH-2.0-esge"

// SshListener serves shell sessions over ssh. Clients are not authenticated
// because the game has a single shared player.
type SshListener struct {
	port   uint16
	cm     *ConnectionManager
	config *ssh.ServerConfig
}

func NewSshListener(port uint16, cm *ConnectionManager, hostKey ssh.Signer) *SshListener {
	config := &ssh.ServerConfig{
		NoClientAuth:  true,
		ServerVersion: sshServerVersion,
	}
	config.AddHostKey(hostKey)

	return &SshListener{
		port:   port,
		cm:     cm,
		config: config,
	}
}

func (l *SshListener) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", l.port))
	if err != nil {
		return fmt.Errorf("listening on port %d: %w", l.port, err)
	}
	slog.InfoContext(ctx, "listening for ssh", "port", l.port)

	conns := newSessions()
	defer conns.closeAndWait()

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return fmt.Errorf("ssh listener on port %d closed", l.port)
			}
			slog.WarnContext(ctx, "accepting ssh connection", "error", err)
			continue
		}

		if !conns.run(func(ctx context.Context) { l.serveConn(ctx, conn) }) {
			conn.Close()
		}
	}
}

func (l *SshListener) serveConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	remote := conn.RemoteAddr().String()
	sshConn, chans, reqs, err := ssh.NewServerConn(conn, l.config)
	if err != nil {
		slog.WarnContext(ctx, "ssh handshake", "remote", remote, "error", err)
		return
	}
	defer sshConn.Close()
	slog.InfoContext(ctx, "ssh connection established", "remote", remote, "user", sshConn.User())

	// Closing the connection ends the channel loop below on shutdown.
	stop := context.AfterFunc(ctx, func() { sshConn.Close() })
	defer stop()

	go ssh.DiscardRequests(reqs)

	for newChan := range chans {
		if newChan.ChannelType() != "session" {
			newChan.Reject(ssh.UnknownChannelType, "only session channels are supported")
			continue
		}
		l.serveChannel(ctx, remote, newChan)
	}
}

// serveChannel runs one shell session on a session channel.
func (l *SshListener) serveChannel(ctx context.Context, remote string, newChan ssh.NewChannel) {
	ch, requests, err := newChan.Accept()
	if err != nil {
		slog.WarnContext(ctx, "accepting ssh channel", "remote", remote, "error", err)
		return
	}
	defer ch.Close()

	select {
	case <-awaitShell(requests):
	case <-ctx.Done():
		return
	}

	l.cm.AcceptConnection(ctx, remote, newLineEndings(ch))
	ch.SendRequest("exit-status", false, ssh.Marshal(struct{ Status uint32 }{0}))
}

// awaitShell answers channel requests and closes the returned channel once
// the client asks for a shell. Clients hold back input until then. PTYs are
// refused so the client keeps local echo and line editing.
func awaitShell(reqs <-chan *ssh.Request) <-chan struct{} {
	ready := make(chan struct{})
	go func() {
		started := false
		for req := range reqs {
			ok := req.Type == "shell" && !started
			req.Reply(ok, nil)
			if ok {
				started = true
				close(ready)
			}
		}
	}()
	return ready
}
