package commands

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/pixil98/go-esge/internal/game"
)

// SaveHandlerFactory creates handlers that write the world to a file.
// Config:
//   - path (required): file to write; a ".zst" suffix compresses it
type SaveHandlerFactory struct {
	// Dir, when set, confines relative paths to this directory.
	Dir string
}

func (f *SaveHandlerFactory) ValidateConfig(config map[string]any) error {
	return requireConfig(config, "path")
}

func (f *SaveHandlerFactory) Create(config map[string]any) (BuildFunc, error) {
	return func(ctx context.Context, req *Request) (game.Action, error) {
		path, err := worldPath(req, f.Dir)
		if err != nil {
			return nil, err
		}
		return SaveWorld{Path: path}, nil
	}, nil
}

// LoadHandlerFactory creates handlers that replace the world with a file.
// Config:
//   - path (required): file to read
//   - confirm (optional): "false" cancels the load
type LoadHandlerFactory struct {
	Dir string
}

func (f *LoadHandlerFactory) ValidateConfig(config map[string]any) error {
	return requireConfig(config, "path")
}

func (f *LoadHandlerFactory) Create(config map[string]any) (BuildFunc, error) {
	return func(ctx context.Context, req *Request) (game.Action, error) {
		confirm, err := req.Expand("confirm")
		if err != nil {
			return nil, err
		}
		if confirm == "false" {
			return nil, NewUserError("Load cancelled.")
		}

		path, err := worldPath(req, f.Dir)
		if err != nil {
			return nil, err
		}
		return LoadWorld{Path: path}, nil
	}, nil
}

func worldPath(req *Request, dir string) (string, error) {
	path, err := expandRequired(req, "path", "Which file?")
	if err != nil {
		return "", err
	}
	if dir == "" {
		return path, nil
	}

	clean := filepath.Clean(path)
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", userErrorf("%s is outside the save directory", path)
	}
	return filepath.Join(dir, clean), nil
}

// ArchiveHandlerFactory creates handlers that store a named snapshot.
// Config:
//   - name (required): snapshot name
type ArchiveHandlerFactory struct {
	archive Archive
}

func NewArchiveHandlerFactory(a Archive) *ArchiveHandlerFactory {
	return &ArchiveHandlerFactory{archive: a}
}

func (f *ArchiveHandlerFactory) ValidateConfig(config map[string]any) error {
	return requireConfig(config, "name")
}

func (f *ArchiveHandlerFactory) Create(config map[string]any) (BuildFunc, error) {
	return func(ctx context.Context, req *Request) (game.Action, error) {
		name, err := expandRequired(req, "name", "Archive it as what?")
		if err != nil {
			return nil, err
		}
		return ArchiveWorld{Archive: f.archive, Name: name}, nil
	}, nil
}

// RestoreHandlerFactory creates handlers that replace the world with a named
// snapshot, or list the snapshots when no name is given.
// Config:
//   - name (optional): snapshot name
type RestoreHandlerFactory struct {
	archive Archive
}

func NewRestoreHandlerFactory(a Archive) *RestoreHandlerFactory {
	return &RestoreHandlerFactory{archive: a}
}

func (f *RestoreHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *RestoreHandlerFactory) Create(config map[string]any) (BuildFunc, error) {
	return func(ctx context.Context, req *Request) (game.Action, error) {
		name, err := req.Expand("name")
		if err != nil {
			return nil, err
		}
		if name != "" {
			return RestoreWorld{Archive: f.archive, Name: name}, nil
		}

		names, err := f.archive.List(ctx)
		if err != nil {
			return nil, err
		}
		if len(names) == 0 {
			return nil, NewUserError("There are no archived worlds.")
		}
		return helpText("Archived worlds: " + strings.Join(names, ", ")), nil
	}, nil
}
