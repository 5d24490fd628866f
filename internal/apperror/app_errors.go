package apperror

import "errors"

var (
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrOutOfRange   = errors.New("cell is out of range")
	ErrTimeExpired  = errors.New("turn time has expired")
	ErrGameFinished = errors.New("game is already finished")
	ErrNoActiveGame = errors.New("no active game in this chat")
	ErrUnknownTheme = errors.New("unknown theme")
)
