package messaging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
)

var ErrNotStarted = errors.New("nats server not started")

const DefaultStartTimeout = 10 * time.Second

// NatsServer is an embedded NATS server. Game output is published through an
// in-process client that exists only while Start is running.
type NatsServer struct {
	ns     *server.Server
	client atomic.Pointer[nats.Conn]

	opts         server.Options
	startTimeout time.Duration
}

func NewNatsServer(opts ...NatsServerOpt) (*NatsServer, error) {
	n := &NatsServer{
		opts: server.Options{
			Host:   "127.0.0.1",
			Port:   server.RANDOM_PORT,
			NoSigs: true,
			NoLog:  true,
		},
		startTimeout: DefaultStartTimeout,
	}
	for _, opt := range opts {
		opt(n)
	}

	ns, err := server.NewServer(&n.opts)
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}
	n.ns = ns
	return n, nil
}

// Start runs the server until ctx is canceled.
func (n *NatsServer) Start(ctx context.Context) error {
	n.ns.Start()
	defer n.ns.WaitForShutdown()

	if !n.ns.ReadyForConnections(n.startTimeout) {
		n.ns.Shutdown()
		return fmt.Errorf("nats server not ready after %s", n.startTimeout)
	}

	conn, err := nats.Connect(n.ns.ClientURL(), nats.Name("esge"), nats.InProcessServer(n.ns))
	if err != nil {
		n.ns.Shutdown()
		return fmt.Errorf("connecting to nats server: %w", err)
	}
	n.client.Store(conn)
	slog.InfoContext(ctx, "nats server listening", "url", n.ns.ClientURL())

	<-ctx.Done()

	n.client.Store(nil)
	conn.Close()
	n.ns.Shutdown()
	return nil
}

// ClientURL returns the URL remote clients connect to.
func (n *NatsServer) ClientURL() string {
	return n.ns.ClientURL()
}

func (n *NatsServer) conn() (*nats.Conn, error) {
	conn := n.client.Load()
	if conn == nil {
		return nil, ErrNotStarted
	}
	return conn, nil
}

// Subscribe calls handler with each message on subject. The returned func
// removes the subscription.
func (n *NatsServer) Subscribe(subject string, handler func(data []byte)) (func(), error) {
	conn, err := n.conn()
	if err != nil {
		return nil, err
	}
	sub, err := conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Data)
	})
	if err != nil {
		return nil, fmt.Errorf("subscribing to %s: %w", subject, err)
	}
	return func() { sub.Unsubscribe() }, nil
}

func (n *NatsServer) Publish(subject string, data []byte) error {
	conn, err := n.conn()
	if err != nil {
		return err
	}
	return conn.Publish(subject, data)
}

// Flush waits until the server has processed everything published so far.
func (n *NatsServer) Flush() error {
	conn, err := n.conn()
	if err != nil {
		return err
	}
	return conn.Flush()
}
