package internal

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

type promptValidator func(string) (bool, string)

type promptConfig struct {
	tries     int
	validator promptValidator
}

type promptOption func(*promptConfig)

func WithValidator(v promptValidator) promptOption {
	return func(cfg *promptConfig) {
		cfg.validator = v
	}
}

func WithMaxTries(i int) promptOption {
	return func(cfg *promptConfig) {
		cfg.tries = i
	}
}

// Terminal is a line oriented connection to a user. All reads go through one
// buffer so prompts and the command loop can share the connection.
type Terminal struct {
	w  io.Writer
	br *bufio.Reader
}

func NewTerminal(rw io.ReadWriter) *Terminal {
	return &Terminal{w: rw, br: bufio.NewReader(rw)}
}

func (t *Terminal) Write(p []byte) (int, error) {
	return t.w.Write(p)
}

// ReadLine returns the next line without its line ending. A final line
// without a newline is returned before io.EOF.
func (t *Terminal) ReadLine() (string, error) {
	line, err := t.br.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (t *Terminal) Prompt(prompt string, opts ...promptOption) (string, error) {
	config := &promptConfig{}
	for _, opt := range opts {
		opt(config)
	}

	tries := 0
	for {
		if _, err := io.WriteString(t.w, prompt); err != nil {
			return "", err
		}

		input, err := t.ReadLine()
		if err != nil {
			return "", err
		}

		if config.validator != nil {
			ok, msg := config.validator(input)
			if !ok {
				io.WriteString(t.w, msg)

				tries++
				if config.tries > 0 && config.tries == tries {
					io.WriteString(t.w, "too many tries\n")
					return "", fmt.Errorf("too many tries")
				}

				continue
			}
		}

		return input, nil
	}
}

func (t *Terminal) PromptYN(prompt string) (bool, error) {
	str, err := t.Prompt(prompt, WithValidator(
		func(str string) (bool, string) {
			switch strings.ToLower(str) {
			case "y", "yes", "n", "no":
				return true, ""
			default:
				return false, "enter 'yes' or 'no'\n"
			}
		},
	))
	if err != nil {
		return false, err
	}

	switch strings.ToLower(str) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// InputWord prompts until the user enters exactly one word.
func (t *Terminal) InputWord(prompt string) (string, error) {
	word, err := t.Prompt(prompt, WithMaxTries(3), WithValidator(
		func(str string) (bool, string) {
			if len(strings.Fields(str)) != 1 {
				return false, "enter a single word\n"
			}
			return true, ""
		},
	))
	return strings.TrimSpace(word), err
}

// MultilineInput reads lines until one equals terminator and returns them
// joined with newlines. The terminator line is not included.
func (t *Terminal) MultilineInput(prompt string, terminator string) (string, error) {
	if _, err := io.WriteString(t.w, prompt); err != nil {
		return "", err
	}

	var lines []string
	for {
		line, err := t.ReadLine()
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(line) == terminator {
			return strings.Join(lines, "\n"), nil
		}
		lines = append(lines, line)
	}
}
