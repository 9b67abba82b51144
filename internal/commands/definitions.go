package commands

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	//go:embed defaults.yaml
	defaultsYAML []byte
	//go:embed archive.yaml
	archiveYAML []byte
)

// ParseDefinitions decodes a YAML document mapping keywords to definitions.
func ParseDefinitions(data []byte) (map[string]*Definition, error) {
	defs := map[string]*Definition{}
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("parsing command definitions: %w", err)
	}
	for keyword, def := range defs {
		if def == nil {
			return nil, fmt.Errorf("command %q: empty definition", keyword)
		}
	}
	return defs, nil
}

// LoadDefinitions reads command definitions from a YAML file.
func LoadDefinitions(path string) (map[string]*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading command definitions: %w", err)
	}
	return ParseDefinitions(data)
}

// DefaultDefinitions returns the built-in commands.
func DefaultDefinitions() map[string]*Definition {
	return mustParse(defaultsYAML)
}

// ArchiveDefinitions returns the commands that need an archive.
func ArchiveDefinitions() map[string]*Definition {
	return mustParse(archiveYAML)
}

func mustParse(data []byte) map[string]*Definition {
	defs, err := ParseDefinitions(data)
	if err != nil {
		panic(err)
	}
	return defs
}
