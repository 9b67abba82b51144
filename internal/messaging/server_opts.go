package messaging

import "time"

type NatsServerOpt func(*NatsServer)

// WithStartTimeout bounds how long Start waits for the server to accept
// connections.
func WithStartTimeout(d time.Duration) NatsServerOpt {
	return func(n *NatsServer) { n.startTimeout = d }
}

// WithHost sets the interface remote clients connect on. Defaults to
// loopback.
func WithHost(host string) NatsServerOpt {
	return func(n *NatsServer) { n.opts.Host = host }
}

// WithPort fixes the client port. A random free port is used otherwise.
func WithPort(port int) NatsServerOpt {
	return func(n *NatsServer) { n.opts.Port = port }
}
