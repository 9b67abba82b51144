package listener

import (
	"context"
	"sync"
)

// sessions tracks the connections a listener has handed off so shutdown can
// cancel them together and wait for them to finish. Connections get a context
// detached from the listener's so closing the listener does not cut off a
// command that is mid-flight. Once closeAndWait has begun no new connection
// is started.
type sessions struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

func newSessions() *sessions {
	ctx, cancel := context.WithCancel(context.Background())
	return &sessions{ctx: ctx, cancel: cancel}
}

// add registers one connection, failing once shutdown has started.
func (s *sessions) add() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.wg.Add(1)
	return true
}

// run calls fn on its own goroutine with the shared connection context. It
// reports false without calling fn when shutdown has started.
func (s *sessions) run(fn func(ctx context.Context)) bool {
	if !s.add() {
		return false
	}
	go func() {
		defer s.wg.Done()
		fn(s.ctx)
	}()
	return true
}

// track runs fn on the calling goroutine. Use it when the caller already owns
// a goroutine per connection. It reports false without calling fn when
// shutdown has started.
func (s *sessions) track(fn func(ctx context.Context)) bool {
	if !s.add() {
		return false
	}
	defer s.wg.Done()
	fn(s.ctx)
	return true
}

func (s *sessions) closeAndWait() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}
