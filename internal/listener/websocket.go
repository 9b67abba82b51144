package listener

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// WebsocketListener serves shell sessions over websocket. Each text message
// from the client is one line of input; each write is sent as one message.
type WebsocketListener struct {
	port     uint16
	path     string
	cm       *ConnectionManager
	upgrader websocket.Upgrader
}

func NewWebsocketListener(port uint16, path string, cm *ConnectionManager) *WebsocketListener {
	if path == "" {
		path = "/"
	}
	return &WebsocketListener{
		port: port,
		path: path,
		cm:   cm,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 4 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (l *WebsocketListener) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", l.port))
	if err != nil {
		return fmt.Errorf("listening on port %d: %w", l.port, err)
	}

	conns := newSessions()
	mux := http.NewServeMux()
	mux.Handle(l.path, l.handler(conns))

	svr := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	slog.InfoContext(ctx, "listening for websocket", "port", l.port, "path", l.path)

	stop := context.AfterFunc(ctx, func() { svr.Close() })
	defer stop()

	err = svr.Serve(ln)
	conns.closeAndWait()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving websocket on port %d: %w", l.port, err)
	}
	return nil
}

// handler upgrades requests and runs a session on each socket until conns
// is closed.
func (l *WebsocketListener) handler(conns *sessions) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := l.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			slog.WarnContext(r.Context(), "upgrading websocket", "remote", r.RemoteAddr, "error", err)
			return
		}

		ws := newWebsocketReadWriter(conn)
		defer ws.Close()

		conns.track(func(ctx context.Context) {
			// Close the socket on shutdown to unblock the session's reads.
			stop := context.AfterFunc(ctx, func() { ws.Close() })
			defer stop()

			l.cm.AcceptConnection(ctx, r.RemoteAddr, ws)
		})
	}
}

// websocketReadWriter presents a websocket as a byte stream.
type websocketReadWriter struct {
	conn *websocket.Conn
	buf  bytes.Buffer

	writeMu sync.Mutex
	once    sync.Once
}

func newWebsocketReadWriter(conn *websocket.Conn) *websocketReadWriter {
	return &websocketReadWriter{conn: conn}
}

func (w *websocketReadWriter) Read(p []byte) (int, error) {
	for w.buf.Len() == 0 {
		msgType, msg, err := w.conn.ReadMessage()
		if err != nil {
			return 0, err
		}
		if msgType != websocket.TextMessage {
			continue
		}
		w.buf.Write(bytes.TrimRight(msg, "\r\n"))
		w.buf.WriteByte('\n')
	}
	return w.buf.Read(p)
}

func (w *websocketReadWriter) Write(p []byte) (int, error) {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	_ = w.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if err := w.conn.WriteMessage(websocket.TextMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (w *websocketReadWriter) Close() error {
	var err error
	w.once.Do(func() {
		w.writeMu.Lock()
		_ = w.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		w.writeMu.Unlock()
		err = w.conn.Close()
	})
	return err
}
