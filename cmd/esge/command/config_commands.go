package command

import (
	"fmt"
	"maps"

	"github.com/pixil98/go-esge/internal/commands"
)

type CommandsConfig struct {
	// Path names an optional YAML file of extra command definitions. Its
	// keywords replace built-in commands of the same name.
	Path string `json:"path,omitempty"`
}

func (c *CommandsConfig) validate() error {
	if c.Path == "" {
		return nil
	}
	if _, err := commands.LoadDefinitions(c.Path); err != nil {
		return fmt.Errorf("commands: %w", err)
	}
	return nil
}

// BuildHandler registers the built-in commands, the archive commands when
// archive is set, then the configured overrides.
func (c *CommandsConfig) BuildHandler(archive commands.Archive, opts ...commands.HandlerOpt) (*commands.Handler, error) {
	defs := commands.DefaultDefinitions()
	if archive != nil {
		opts = append(opts, commands.WithArchive(archive))
		maps.Copy(defs, commands.ArchiveDefinitions())
	}

	if c.Path != "" {
		extra, err := commands.LoadDefinitions(c.Path)
		if err != nil {
			return nil, err
		}
		maps.Copy(defs, extra)
	}

	h := commands.NewHandler(opts...)
	if err := h.RegisterAll(defs); err != nil {
		return nil, fmt.Errorf("registering commands: %w", err)
	}
	return h, nil
}
