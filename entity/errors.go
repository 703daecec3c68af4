package entity

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrInvalidTransition = errors.New("invalid booking status transition")
	ErrRoomUnavailable   = errors.New("room is not available")
)
