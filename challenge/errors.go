package challenge

import "github.com/pkg/errors"

var (
	ErrChallengeNotActive = errors.New("challenge is not active")
	ErrUndoAlreadyUsed    = errors.New("undo was already used for this challenge")
	ErrNothingToUndo      = errors.New("nothing to undo")
	ErrNoSolution         = errors.New("challenge has no known solution")
	ErrSolutionExhausted  = errors.New("every solution move was already played")
	ErrStateMismatch      = errors.New("game state does not belong to this challenge")
	ErrInvalidDefinition  = errors.New("invalid challenge definition")
)
