package command

import (
	"fmt"
	"io"
	"maps"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pixil98/go-esge/internal/commands"
	"github.com/pixil98/go-esge/internal/driver"
	"github.com/pixil98/go-esge/internal/engine"
	"github.com/pixil98/go-esge/internal/shell"
	"github.com/pixil98/go-esge/internal/storage"
	"github.com/pixil98/go-esge/internal/world"
)

type playOptions struct {
	player   string
	commands string
	save     bool
	tick     time.Duration
}

type stdio struct {
	io.Reader
	io.Writer
}

func NewPlayCommand() *cobra.Command {
	opts := &playOptions{}

	cmd := &cobra.Command{
		Use:   "play [world-file]",
		Short: "Play a world on this terminal",
		Long: `Play a world on this terminal.

Without a world file a new genesis world is started. With --save the world is
written back to the file when the session ends.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runPlay(cmd, opts, path)
		},
	}

	cmd.Flags().StringVar(&opts.player, "player", "Player", "player name for a new world")
	cmd.Flags().StringVar(&opts.commands, "commands", "", "YAML file of extra command definitions")
	cmd.Flags().BoolVar(&opts.save, "save", false, "save the world on exit")
	cmd.Flags().DurationVar(&opts.tick, "tick", 0, "advance the world on this interval between commands")
	return cmd
}

func runPlay(cmd *cobra.Command, opts *playOptions, path string) error {
	if opts.save && path == "" {
		return fmt.Errorf("--save needs a world file")
	}

	s, err := loadOrGenesis(path, opts.player)
	if err != nil {
		return err
	}
	g, err := world.InitPackages(s, world.BasePackage())
	if err != nil {
		return err
	}

	defs := commands.DefaultDefinitions()
	if opts.commands != "" {
		extra, err := commands.LoadDefinitions(opts.commands)
		if err != nil {
			return err
		}
		maps.Copy(defs, extra)
	}
	saveDir := "."
	if path != "" {
		saveDir = filepath.Dir(path)
	}
	h := commands.NewHandler(commands.WithSaveDir(saveDir))
	if err := h.RegisterAll(defs); err != nil {
		return err
	}

	eng := engine.New(g, h)

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	if opts.tick > 0 {
		d := driver.NewDriver([]driver.Manager{eng}, driver.WithTickLength(opts.tick))
		go d.Start(ctx)
	}

	session := shell.NewSession(eng, stdio{cmd.InOrStdin(), cmd.OutOrStdout()}, shell.WithStartCommands("look"))
	if err := session.Run(ctx); err != nil {
		return err
	}

	if opts.save {
		if err := eng.Save(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", path)
	}
	return nil
}

func loadOrGenesis(path string, player string) (*storage.Store, error) {
	if path == "" {
		return world.InitialGenesis(player), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return world.InitialGenesis(player), nil
	}
	return storage.LoadFile(path)
}
