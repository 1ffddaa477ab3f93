package game

import "errors"

var (
	ErrAlreadyActive      = errors.New("a game is already active in this room")
	ErrNoActiveGame       = errors.New("no active game in this room")
	ErrNotAuthorized      = errors.New("not authorized")
	ErrPlayerNotInMatch   = errors.New("player is not in this match")
	ErrInvalidMaxPlayers  = errors.New("max players out of range")
	ErrLobbyAlreadyClosed = errors.New("lobby is already closed")
)
