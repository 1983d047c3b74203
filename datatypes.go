package gambit

import (
	"context"
	"fmt"
	"time"

	"github.com/dailygambit/challenge"
	"github.com/dailygambit/game"
)

// Config of a Service.
type Config struct {
	Name          string           `json:"name"`
	Challenge     challenge.Config `json:"challenge"`
	MoveCacheSize int              `json:"move_cache_size"` // 0 uses game.DefaultCacheSize
	ClaimDraws    bool             `json:"claim_draws"`     // claimable draws end the game
}

func DefaultConfig() Config {
	return Config{
		Name:          "daily",
		Challenge:     challenge.DefaultConfig(),
		MoveCacheSize: game.DefaultCacheSize,
	}
}

func (c Config) IsValid() bool {
	return c.Challenge.IsValid() && c.MoveCacheSize >= 0
}

// ActionKind is what a player asks for.
type ActionKind byte

const (
	View ActionKind = iota
	MovePiece
	Restart
	SeeSolution
	Undo
	SolutionMove
)

func (k ActionKind) String() string {
	switch k {
	case View:
		return "view"
	case MovePiece:
		return "move"
	case Restart:
		return "restart"
	case SeeSolution:
		return "see_solution"
	case Undo:
		return "undo"
	case SolutionMove:
		return "solution_move"
	}
	return fmt.Sprintf("ActionKind(%d)", byte(k))
}

// Action is one request of a player. Player, From and To are only used by
// MovePiece.
type Action struct {
	Kind   ActionKind
	Player challenge.Player
	From   game.Square
	To     game.Square
}

// Move is the action of p moving the piece on from to to.
func Move(p challenge.Player, from, to game.Square) Action {
	return Action{Kind: MovePiece, Player: p, From: from, To: to}
}

// ChallengeProvider is anything that can tell the challenge of a day.
type ChallengeProvider interface {
	Current(ctx context.Context, day time.Time) (*challenge.Definition, error)
}

// Result of a handled action.
type Result struct {
	Blob        string // to be stored by the caller and handed back next time
	ChallengeID string
	State       challenge.State
	Turns       challenge.TurnsState
	Stats       challenge.Stats

	Transition *challenge.Transition // set when a move was played
	Created    bool                  // the player just met this challenge

	// ForcedMove is the opponent move the caller must play next, at the
	// start of every attempt.
	ForcedMove *game.Move
}
