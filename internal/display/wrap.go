package display

import (
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

const DefaultWidth = 80

// Wrap word-wraps text to DefaultWidth, preserving ANSI escape sequences.
func Wrap(text string) string {
	return wordwrap.String(text, DefaultWidth)
}

// Labelled renders "Label: a b c" on one line, wrapping overlong lists with
// continuation lines indented under the first value.
func Labelled(label string, values []string) string {
	prefix := label + ": "
	body := wordwrap.String(strings.Join(values, " "), DefaultWidth-len(prefix))

	first, rest, found := strings.Cut(body, "\n")
	if !found {
		return prefix + first
	}
	return prefix + first + "\n" + indent.String(rest, uint(len(prefix)))
}
