package main

import (
	"fmt"
	"os"

	"github.com/pixil98/go-esge/cmd/esgectl/command"
)

func main() {
	if err := command.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
