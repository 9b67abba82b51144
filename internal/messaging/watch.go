package messaging

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"
)

// Message is one published game response.
type Message struct {
	Subject string
	Data    []byte
}

// Watch connects to the NATS server at url and calls fn for every message on
// subject until ctx is canceled. Subjects may use NATS wildcards such as
// "esge.>".
func Watch(ctx context.Context, url string, subject string, fn func(Message)) error {
	conn, err := nats.Connect(url, nats.Name("esgectl"))
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", url, err)
	}
	defer conn.Close()

	msgs := make(chan *nats.Msg, 64)
	sub, err := conn.ChanSubscribe(subject, msgs)
	if err != nil {
		return fmt.Errorf("subscribing to %s: %w", subject, err)
	}
	defer sub.Unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-msgs:
			fn(Message{Subject: msg.Subject, Data: msg.Data})
		}
	}
}
