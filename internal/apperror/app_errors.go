package apperror

import "errors"

var (
	ErrMoveRejected = errors.New("move rejected")
	ErrOutOfRange   = errors.New("move index out of range")

	ErrGameFinished = errors.New("game is already finished")
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrInvalidCell  = errors.New("invalid cell index")

	ErrSessionNotFound = errors.New("session not found")
	ErrCorruptSession  = errors.New("stored session is corrupt")
)
