package commands

import (
	"context"

	"github.com/pixil98/go-esge/internal/game"
)

// QuitHandlerFactory creates handlers that end the session.
// Config:
//   - message (optional): farewell written to out
type QuitHandlerFactory struct{}

func (f *QuitHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *QuitHandlerFactory) Create(config map[string]any) (BuildFunc, error) {
	message, _ := config["message"].(string)
	return func(ctx context.Context, req *Request) (game.Action, error) {
		return Quit{Message: message}, nil
	}, nil
}
