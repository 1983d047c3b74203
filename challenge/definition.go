package challenge

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"

	"github.com/dailygambit/game"
)

// Speech is a line said by a piece when the challenge starts. It is only
// carried along for presentation.
type Speech struct {
	Square game.Square `json:"square"`
	Text   string      `json:"text"`
}

// Definition is the immutable puzzle of one day.
type Definition struct {
	ID string `json:"id"`

	// position after the opponent's first move, where the player takes over
	Board game.Notation     `json:"fen"`
	Roles game.RoleBySquare `json:"piece_role_by_square"`

	// position before it
	BoardBeforeFirstMove game.Notation     `json:"fen_before_bot_first_move"`
	RolesBeforeFirstMove game.RoleBySquare `json:"piece_role_by_square_before_bot_first_move"`
	FirstMove            string            `json:"bot_first_move"`

	MaxTurns      int       `json:"max_turns_count,omitempty"` // 0 uses the configured budget
	Solution      []string  `json:"solution,omitempty"`        // UCI moves, starting with the player's
	SolutionTurns int       `json:"solution_turns_count,omitempty"`
	HomeSide      game.Side `json:"my_side,omitempty"` // White when unset

	IntroSpeech *Speech `json:"intro_speech,omitempty"`
}

func (def *Definition) homeSide() game.Side {
	if def.HomeSide == game.NoSide {
		return game.White
	}
	return def.HomeSide
}

// SideOf returns the colour played by p.
func (def *Definition) SideOf(p Player) game.Side {
	if p == Home {
		return def.homeSide()
	}
	return def.homeSide().Other()
}

// PlayerOf returns who plays the side s.
func (def *Definition) PlayerOf(s game.Side) Player {
	if s == def.homeSide() {
		return Home
	}
	return Away
}

// Budget returns the number of turns granted for this challenge.
func (def *Definition) Budget(conf Config) int {
	if def.MaxTurns > 0 {
		return def.MaxTurns
	}
	return conf.TurnBudget
}

// ParsedFirstMove returns the opponent's first move.
func (def *Definition) ParsedFirstMove() (game.Move, error) { return game.ParseUCI(def.FirstMove) }

// SolutionMoves parses the solution.
func (def *Definition) SolutionMoves() ([]game.Move, error) {
	retVal := make([]game.Move, 0, len(def.Solution))
	for i, s := range def.Solution {
		m, err := game.ParseUCI(s)
		if err != nil {
			return nil, errors.WithMessagef(err, "solution move %d", i)
		}
		retVal = append(retVal, m)
	}
	return retVal, nil
}

// Validate checks that the definition is self-consistent: roles match
// boards, the first move leads from one position to the other, and the
// solution can be played. Every problem found is reported.
func (def *Definition) Validate(e *game.Engine) error {
	var errs error
	if def.ID == "" {
		errs = multierror.Append(errs, errors.New("missing id"))
	}
	if def.MaxTurns < 0 {
		errs = multierror.Append(errs, errors.Errorf("negative max turns %d", def.MaxTurns))
	}
	if s := def.homeSide(); s != game.White && s != game.Black {
		errs = multierror.Append(errs, errors.Errorf("bad home side %q", s))
	}
	if err := game.CheckRoles(def.Roles, def.Board); err != nil {
		errs = multierror.Append(errs, errors.WithMessage(err, "start position"))
	}
	if err := game.CheckRoles(def.RolesBeforeFirstMove, def.BoardBeforeFirstMove); err != nil {
		errs = multierror.Append(errs, errors.WithMessage(err, "position before first move"))
	}
	if err := def.validateFirstMove(e); err != nil {
		errs = multierror.Append(errs, err)
	}
	if err := def.validateSolution(e); err != nil {
		errs = multierror.Append(errs, err)
	}

	if errs != nil {
		return errors.Wrapf(ErrInvalidDefinition, "%q: %v", def.ID, errs)
	}
	return nil
}

func (def *Definition) validateFirstMove(e *game.Engine) error {
	turn, err := def.BoardBeforeFirstMove.Turn()
	if err != nil {
		return err
	}
	away := def.SideOf(Away)
	if turn != away {
		return errors.Errorf("%s must move first, not %s", away, turn)
	}
	m, err := def.ParsedFirstMove()
	if err != nil {
		return err
	}
	outcome, err := e.ApplyMove(def.BoardBeforeFirstMove, m.From, m.To)
	if err != nil {
		return errors.WithMessage(err, "first move")
	}
	if !outcome.Board.SamePosition(def.Board) {
		return errors.Errorf("first move leads to %q, not %q", outcome.Board, def.Board)
	}
	roles, _, err := game.UpdateRoles(def.RolesBeforeFirstMove, outcome, away)
	if err != nil {
		return errors.WithMessage(err, "first move")
	}
	if !maps.Equal(roles, def.Roles) {
		return errors.Errorf("first move leads to roles %v, not %v", roles, def.Roles)
	}
	return nil
}

func (def *Definition) validateSolution(e *game.Engine) error {
	if len(def.Solution) == 0 {
		if def.SolutionTurns != 0 {
			return errors.Errorf("solution turns count %d without a solution", def.SolutionTurns)
		}
		return nil
	}
	if want := (len(def.Solution) + 1) / 2; def.SolutionTurns != want {
		return errors.Errorf("solution of %d moves takes %d turns, not %d", len(def.Solution), want, def.SolutionTurns)
	}
	moves, err := def.SolutionMoves()
	if err != nil {
		return err
	}
	board := def.Board
	for i, m := range moves {
		outcome, err := e.ApplyMove(board, m.From, m.To)
		if err != nil {
			return errors.WithMessagef(err, "solution move %d", i)
		}
		board = outcome.Board
		if outcome.GameOver != nil && i != len(moves)-1 {
			return errors.Errorf("solution game ends at move %d of %d", i+1, len(moves))
		}
	}
	return nil
}

// Prepare builds a definition from the position before the opponent's first
// move. The player is the side that moves after it.
func Prepare(e *game.Engine, id string, before game.Notation, firstMove string) (*Definition, error) {
	away, err := before.Turn()
	if err != nil {
		return nil, err
	}
	m, err := game.ParseUCI(firstMove)
	if err != nil {
		return nil, err
	}
	rolesBefore, err := game.AssignRoles(before)
	if err != nil {
		return nil, err
	}
	outcome, err := e.ApplyMove(before, m.From, m.To)
	if err != nil {
		return nil, err
	}
	roles, _, err := game.UpdateRoles(rolesBefore, outcome, away)
	if err != nil {
		return nil, err
	}

	def := &Definition{
		ID:                   id,
		Board:                outcome.Board,
		Roles:                roles,
		BoardBeforeFirstMove: before,
		RolesBeforeFirstMove: rolesBefore,
		FirstMove:            m.Squares(),
		HomeSide:             away.Other(),
	}
	if err := def.Validate(e); err != nil {
		return nil, err
	}
	return def, nil
}

// PrepareFromStart builds a definition from the position the player starts
// from, rewinding the opponent's first move to find the position before it.
// The first move cannot be a capture nor a promotion. Castlings are rewound
// with their rook.
func PrepareFromStart(e *game.Engine, id string, start game.Notation, firstMove string) (*Definition, error) {
	home, err := start.Turn()
	if err != nil {
		return nil, err
	}
	m, err := game.ParseUCI(firstMove)
	if err != nil {
		return nil, err
	}
	if m.Promotion != game.NoPieceType {
		return nil, errors.Wrapf(game.ErrInvalidMove, "first move %s cannot be rewound", m)
	}
	before, err := game.RewindMove(e.Rules(), start, m, home.Other())
	if err != nil {
		return nil, err
	}
	roles, err := game.AssignRoles(start)
	if err != nil {
		return nil, err
	}
	rolesBefore := game.RewindRoles(roles, m)

	def := &Definition{
		ID:                   id,
		Board:                start,
		Roles:                roles,
		BoardBeforeFirstMove: before,
		RolesBeforeFirstMove: rolesBefore,
		FirstMove:            m.Squares(),
		HomeSide:             home,
	}
	if err := def.Validate(e); err != nil {
		return nil, err
	}
	return def, nil
}
