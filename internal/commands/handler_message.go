package commands

import (
	"context"
	"fmt"

	"github.com/pixil98/go-esge/internal/game"
)

// MessageHandlerFactory creates handlers that write a templated message.
// Config:
//   - message (required): template expanded with .Inputs, .Player and .Room
//   - channel (optional): response channel, "out" by default
type MessageHandlerFactory struct{}

func (f *MessageHandlerFactory) ValidateConfig(config map[string]any) error {
	if err := requireConfig(config, "message"); err != nil {
		return err
	}
	message, ok := config["message"].(string)
	if !ok {
		return fmt.Errorf("message must be a string")
	}
	return checkTemplate(message)
}

func (f *MessageHandlerFactory) Create(config map[string]any) (BuildFunc, error) {
	message, _ := config["message"].(string)
	channel, _ := config["channel"].(string)
	if channel == "" {
		channel = game.ChannelOut
	}

	return func(ctx context.Context, req *Request) (game.Action, error) {
		return Message{
			Channel:  channel,
			Template: message,
			Inputs:   req.Inputs,
		}, nil
	}, nil
}
