package command

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-esge/internal/commands"
	"github.com/pixil98/go-esge/internal/driver"
	"github.com/pixil98/go-esge/internal/engine"
	"github.com/pixil98/go-esge/internal/listener"
	"github.com/pixil98/go-esge/internal/shell"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}
	slog.SetLogLoggerLevel(cfg.logLevel())

	workers := service.WorkerList{}

	// Open the archive first so the archive commands can be registered
	var archive commands.Archive
	if cfg.Archive.enabled() {
		a, err := cfg.Archive.buildArchive()
		if err != nil {
			return nil, fmt.Errorf("opening archive: %w", err)
		}
		archive = a
		workers["archive"] = onShutdown(func(context.Context) error {
			return a.Close()
		})
	}

	handler, err := cfg.Commands.BuildHandler(archive, commands.WithSaveDir(cfg.World.saveDir()))
	if err != nil {
		return nil, err
	}

	g, err := cfg.World.BuildIngame()
	if err != nil {
		return nil, err
	}

	var engineOpts []engine.EngineOpt
	if cfg.World.Autosave {
		engineOpts = append(engineOpts, engine.WithAutosave(cfg.World.Path))
	}
	if cfg.Nats.Enabled {
		ns, err := cfg.Nats.buildNatsServer()
		if err != nil {
			return nil, fmt.Errorf("creating nats server: %w", err)
		}
		workers["nats"] = ns
		engineOpts = append(engineOpts, engine.WithPublisher(ns))
	}
	eng := engine.New(g, handler, engineOpts...)

	if cfg.World.Path != "" {
		workers["save"] = onShutdown(func(context.Context) error {
			slog.Info("saving world", "path", cfg.World.Path)
			return eng.Save(cfg.World.Path)
		})
	}

	// Create Listeners
	cm := listener.NewConnectionManager(eng, shell.WithStartCommands("look"))
	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		worker, err := l.BuildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("%s-%d", l.Protocol, i)] = worker
	}
	workers["listeners"] = &listeners

	// Tick the game so persistent actions run between commands
	workers["driver"] = driver.NewDriver([]driver.Manager{eng}, driver.WithTickLength(cfg.tickInterval()))

	return workers, nil
}

// onShutdown is a worker that runs fn once the service is stopping.
type onShutdown func(ctx context.Context) error

func (fn onShutdown) Start(ctx context.Context) error {
	<-ctx.Done()
	return fn(context.WithoutCancel(ctx))
}
