package command

import (
	"github.com/pixil98/go-esge/internal/archive"
)

type ArchiveConfig struct {
	// Path to the SQLite database holding archived worlds. Archiving is off
	// when empty.
	Path string `json:"path,omitempty"`
}

func (c *ArchiveConfig) enabled() bool {
	return c.Path != ""
}

func (c *ArchiveConfig) buildArchive() (*archive.SQLiteArchive, error) {
	return archive.OpenSQLite(c.Path)
}
