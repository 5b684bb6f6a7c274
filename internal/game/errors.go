package game

import "errors"

var (
	ErrEmptyName      = errors.New("player name is empty")
	ErrDuplicateName  = errors.New("player name already taken")
	ErrTooManyPlayers = errors.New("too many players for one deck")
	ErrPlayerNotFound = errors.New("player not found")
	ErrInvalidID      = errors.New("invalid game id")
)
