package game

import "github.com/pkg/errors"

var (
	ErrInvalidMove       = errors.New("invalid move")
	ErrInvalidNotation   = errors.New("invalid board notation")
	ErrInconsistentRoles = errors.New("piece roles do not match the board")
	ErrTooManyPieces     = errors.New("too many pieces of one type")
)
