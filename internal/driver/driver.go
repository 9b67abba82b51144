package driver

import (
	"context"
	"log/slog"
	"time"
)

const (
	DefaultTickLength = time.Second * 2
)

// Manager is anything that advances with the clock.
type Manager interface {
	Tick(context.Context) error
}

// Driver ticks its managers at a fixed interval so persistent actions run
// without waiting for input.
type Driver struct {
	tickLength time.Duration
	managers   []Manager
	stopOnErr  bool
}

func NewDriver(managers []Manager, opts ...DriverOpt) *Driver {
	d := &Driver{
		tickLength: DefaultTickLength,
		managers:   managers,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *Driver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()

	slog.InfoContext(ctx, "driver started", "tick", d.tickLength)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			err := d.Tick(ctx)
			if err == nil {
				continue
			}
			if d.stopOnErr {
				return err
			}
			slog.WarnContext(ctx, "tick failed", "error", err)
		}
	}
}

// Tick advances every manager once, stopping at the first failure.
func (d *Driver) Tick(ctx context.Context) error {
	for _, m := range d.managers {
		if err := m.Tick(ctx); err != nil {
			return err
		}
	}
	return nil
}
