package commands

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/pixil98/go-esge/internal/game"
)

// HelpHandlerFactory creates handlers that display command help.
// Config:
//   - command (optional): show details of one command instead of the list
type HelpHandlerFactory struct {
	handler *Handler
}

func (f *HelpHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *HelpHandlerFactory) Create(config map[string]any) (BuildFunc, error) {
	return func(ctx context.Context, req *Request) (game.Action, error) {
		command, err := req.Expand("command")
		if err != nil {
			return nil, err
		}

		var text string
		if command != "" {
			text, err = f.showCommand(command)
			if err != nil {
				return nil, err
			}
		} else {
			text = f.listCommands()
		}

		return helpText(text), nil
	}, nil
}

// helpText writes fixed text to out.
type helpText string

func (h helpText) Run(_ context.Context, m *game.Mutator, _ game.Handle) error {
	say(m, game.ChannelOut, string(h))
	return nil
}

// listCommands displays all commands grouped by category.
func (f *HelpHandlerFactory) listCommands() string {
	groups := make(map[string][]string)
	for _, keyword := range f.handler.Keywords() {
		def, _ := f.handler.Definition(keyword)
		category := def.Category
		if category == "" {
			category = "other"
		}
		groups[category] = append(groups[category], keyword)
	}

	categories := make([]string, 0, len(groups))
	for cat := range groups {
		categories = append(categories, cat)
	}
	slices.Sort(categories)

	lines := []string{"Available commands:"}
	for _, cat := range categories {
		label := strings.ToUpper(cat[:1]) + cat[1:]
		lines = append(lines, fmt.Sprintf("  %s: %s", label, strings.Join(groups[cat], ", ")))
	}
	return strings.Join(lines, "\n")
}

// showCommand displays detailed help for a specific command.
func (f *HelpHandlerFactory) showCommand(name string) (string, error) {
	def, ok := f.handler.Definition(name)
	if !ok {
		return "", userErrorf("Command %q is unknown.", name)
	}

	keyword := strings.ToLower(name)
	lines := []string{fmt.Sprintf("%s: %s", keyword, def.Description)}

	// Build usage line from the inputs typed on the command line
	parts := []string{keyword}
	for _, input := range def.Inputs {
		if input.interactive() {
			continue
		}
		switch {
		case input.Required:
			parts = append(parts, fmt.Sprintf("<%s>", input.Name))
		default:
			parts = append(parts, fmt.Sprintf("[%s]", input.Name))
		}
	}
	if len(parts) > 1 {
		lines = append(lines, fmt.Sprintf("Usage: %s", strings.Join(parts, " ")))
	}

	return strings.Join(lines, "\n"), nil
}
