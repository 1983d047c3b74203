package game

import (
	"math/rand"

	"github.com/pkg/errors"
)

// MoveLister is a Rules that can also enumerate the legal moves of a board.
type MoveLister interface {
	LegalMoves(board Notation) ([]Move, error)
}

// Ply is one move of a random game, as seen by the visitor of RandomGame.
type Ply struct {
	Number  int
	Before  Notation
	Outcome MoveOutcome
	Roles   RoleBySquare
}

// RandomGame plays uniformly random legal moves from start until the game
// ends or maxPlies moves were played, keeping the roles in sync along the
// way. visit is called after every move; returning an error stops the game.
func RandomGame(e *Engine, start Notation, r *rand.Rand, maxPlies int, visit func(Ply) error) (Notation, error) {
	lister, ok := e.Rules().(MoveLister)
	if !ok {
		return "", errors.Errorf("%T cannot list legal moves", e.Rules())
	}
	roles, err := AssignRoles(start)
	if err != nil {
		return "", err
	}

	board := start
	for ply := 0; ply < maxPlies; ply++ {
		moves, err := lister.LegalMoves(board)
		if err != nil {
			return "", err
		}
		if len(moves) == 0 {
			break
		}
		turn, err := board.Turn()
		if err != nil {
			return "", err
		}

		m := moves[r.Intn(len(moves))]
		outcome, err := e.ApplyMove(board, m.From, m.To)
		if err != nil {
			return "", errors.WithMessagef(err, "ply %d", ply)
		}
		if roles, _, err = UpdateRoles(roles, outcome, turn); err != nil {
			return "", errors.WithMessagef(err, "ply %d: %s on %q", ply, m, board)
		}
		if visit != nil {
			if err := visit(Ply{Number: ply, Before: board, Outcome: outcome, Roles: roles}); err != nil {
				return "", err
			}
		}
		board = outcome.Board
		if outcome.GameOver != nil {
			break
		}
	}
	return board, nil
}
