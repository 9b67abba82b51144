package commands

import (
	"fmt"
)

// InputType represents the type of a command input parameter.
type InputType string

const (
	InputTypeString  InputType = "string"  // Text input (single word if rest=false, multi-word if rest=true)
	InputTypeNumber  InputType = "number"  // Integer
	InputTypeLines   InputType = "lines"   // Multi-line text read from the terminal until END
	InputTypeConfirm InputType = "confirm" // Yes/no question asked on the terminal
)

// LinesTerminator ends a multi-line input.
const LinesTerminator = "END"

// InputSpec defines an input parameter that a command accepts from user input.
type InputSpec struct {
	Name     string    `yaml:"name"`
	Type     InputType `yaml:"type"`
	Required bool      `yaml:"required"`
	Rest     bool      `yaml:"rest"`   // If true, captures all remaining input
	Prompt   string    `yaml:"prompt"` // Asked on the terminal when the input is not on the command line
}

// interactive reports whether the input is always read from the terminal.
func (s *InputSpec) interactive() bool {
	return s.Type == InputTypeLines || s.Type == InputTypeConfirm
}

// Definition describes a command loaded from YAML.
type Definition struct {
	Handler     string         `yaml:"handler"`
	Description string         `yaml:"description"`
	Category    string         `yaml:"category"`
	Config      map[string]any `yaml:"config"` // Config passed to handler, may contain templates
	Inputs      []InputSpec    `yaml:"inputs"` // User input parameters
}

func (d *Definition) Validate() error {
	if d.Handler == "" {
		return fmt.Errorf("command handler not set")
	}

	seen := make(map[string]bool)
	for i, input := range d.Inputs {
		if input.Name == "" {
			return fmt.Errorf("input %d: name is required", i)
		}
		if seen[input.Name] {
			return fmt.Errorf("input %q: defined twice", input.Name)
		}
		seen[input.Name] = true

		if input.Type == "" {
			return fmt.Errorf("input %q: type is required", input.Name)
		}
		switch input.Type {
		case InputTypeString, InputTypeNumber:
		case InputTypeLines, InputTypeConfirm:
			if input.Rest {
				return fmt.Errorf("input %q: %s inputs cannot use rest", input.Name, input.Type)
			}
		default:
			return fmt.Errorf("input %q: unknown type %q", input.Name, input.Type)
		}
		// Only the last input can have rest=true
		if input.Rest && i != len(d.Inputs)-1 {
			return fmt.Errorf("input %q: only the last input can have rest=true", input.Name)
		}
	}

	return nil
}
