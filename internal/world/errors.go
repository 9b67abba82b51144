package world

import "errors"

var (
	ErrBaseGameNotFound = errors.New("could not find base_game")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrRoomNotFound     = errors.New("room not found")
	ErrExitNotFound     = errors.New("could not find exit")
	ErrNoDestination    = errors.New("could not get the destination room")
)
