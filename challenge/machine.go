package challenge

import (
	"github.com/pkg/errors"

	"github.com/dailygambit/game"
)

// Transition describes one move played on a State.
type Transition struct {
	Player   Player
	Move     game.Move
	Outcome  game.MoveOutcome
	Captured game.Role // empty unless a piece was taken
	TimeIsUp bool      // the move used the last turn without winning
}

// Machine runs the turn and attempt rules of one challenge. States are
// values: every operation returns a new State and leaves its input alone.
type Machine struct {
	def    *Definition
	conf   Config
	engine *game.Engine

	firstMove game.Move
	solution  []game.Move
}

func NewMachine(def *Definition, conf Config, engine *game.Engine) (*Machine, error) {
	if def == nil || engine == nil {
		return nil, errors.New("nil definition or engine")
	}
	if !conf.IsValid() {
		return nil, errors.Errorf("invalid challenge config %+v", conf)
	}
	firstMove, err := def.ParsedFirstMove()
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidDefinition, "%q: %v", def.ID, err)
	}
	solution, err := def.SolutionMoves()
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidDefinition, "%q: %v", def.ID, err)
	}
	return &Machine{
		def:       def,
		conf:      conf,
		engine:    engine,
		firstMove: firstMove,
		solution:  solution,
	}, nil
}

func (m *Machine) Definition() *Definition { return m.def }

// FirstMove is the scripted move the opponent plays at the start of every attempt.
func (m *Machine) FirstMove() game.Move { return m.firstMove }

func (m *Machine) Budget() int { return m.def.Budget(m.conf) }

func (m *Machine) Turns(st State) TurnsState { return Turns(st, m.Budget()) }

// NewState is the state of a player who has not played yet: the board is
// the one before the opponent's first move, which the caller replays.
func (m *Machine) NewState() State {
	return State{
		Board: m.def.BoardBeforeFirstMove,
		Roles: m.def.RolesBeforeFirstMove.Clone(),
		Phase: Playing,
	}
}

// AwaitsFirstMove tells whether st is at the start of an attempt, before the
// opponent's scripted first move.
func (m *Machine) AwaitsFirstMove(st State) bool {
	return st.Moves.Len() == 0 && st.Phase == Playing && st.Board.SamePosition(m.def.BoardBeforeFirstMove)
}

// Move plays from→to for p. Moves of the player count against the turn
// budget; the opponent's do not. Every attempt starts with the opponent's
// scripted first move. Once the solution was revealed the player cannot move
// anymore, and the opponent can only play the next move of the solution.
func (m *Machine) Move(st State, p Player, from, to game.Square) (State, *Transition, error) {
	if st.Phase != Playing {
		return st, nil, errors.Wrapf(ErrChallengeNotActive, "game is %s", st.Phase)
	}
	if m.AwaitsFirstMove(st) {
		if p != Away || from != m.firstMove.From || to != m.firstMove.To {
			return st, nil, errors.Wrapf(game.ErrInvalidMove, "attempt must start with %s by %s", m.firstMove, Away)
		}
		return m.play(st, Away, from, to, false)
	}
	if !st.InSolutionMode() {
		return m.play(st, p, from, to, p == Home)
	}

	if p == Home {
		return st, nil, errors.Wrap(ErrChallengeNotActive, "solution is being shown")
	}
	idx := *st.SolutionIndex
	if idx >= len(m.solution) || m.solution[idx].From != from || m.solution[idx].To != to {
		return st, nil, errors.Wrapf(ErrChallengeNotActive, "%s%s is not the next solution move", from, to)
	}
	next, tr, err := m.play(st, p, from, to, false)
	if err != nil {
		return st, nil, err
	}
	idx++
	next.SolutionIndex = &idx
	return next, tr, nil
}

func (m *Machine) play(st State, p Player, from, to game.Square, counted bool) (State, *Transition, error) {
	side := m.def.SideOf(p)
	turn, err := st.Board.Turn()
	if err != nil {
		return st, nil, err
	}
	if turn != side {
		return st, nil, errors.Wrapf(game.ErrInvalidMove, "%s (%s) cannot move, %s is to play", p, side, turn)
	}

	outcome, err := m.engine.ApplyMove(st.Board, from, to)
	if err != nil {
		return st, nil, err
	}
	roles, captured, err := game.UpdateRoles(st.Roles, outcome, side)
	if err != nil {
		return st, nil, err
	}

	tr := &Transition{
		Player:   p,
		Move:     game.Move{From: from, To: to, Promotion: outcome.Promotion},
		Outcome:  outcome,
		Captured: captured,
	}
	next := st.Clone()
	next.Board = outcome.Board
	next.Roles = roles
	next.Moves = next.Moves.Append(tr.Move)
	if counted {
		next.TurnsCounter++
		next.CurrentAttemptTurnsCounter++
	}

	switch {
	case outcome.GameOver != nil && outcome.GameOver.Winner == m.def.SideOf(Home):
		next.Phase = Won
	case outcome.GameOver != nil:
		// draws count as defeats
		next.Phase = Lost
	case counted && m.Turns(next).TimeIsUp:
		next.Phase = Lost
		tr.TimeIsUp = true
	}
	return next, tr, nil
}

// Restart starts a new attempt from the position before the opponent's first
// move. Restarting costs turns; a restart that exhausts the budget loses.
func (m *Machine) Restart(st State) State {
	next := st.Clone()
	next.AttemptsCounter++
	next.CurrentAttemptTurnsCounter = 0
	next.TurnsCounter += m.conf.RestartTurnCost
	next.Board = m.def.BoardBeforeFirstMove
	next.Roles = m.def.RolesBeforeFirstMove.Clone()
	next.Moves = ""
	next.Phase = Playing
	if next.InSolutionMode() {
		idx := 0
		next.SolutionIndex = &idx
	}
	if m.Turns(next).TimeIsUp && !next.InSolutionMode() {
		next.Phase = Lost
	}
	return next
}

// SeeSolution switches st to solution mode, back at the start position.
// There is no way back.
func (m *Machine) SeeSolution(st State) (State, error) {
	if len(m.solution) == 0 {
		return st, errors.Wrapf(ErrNoSolution, "challenge %q", m.def.ID)
	}
	next := st.Clone()
	idx := 0
	next.SolutionIndex = &idx
	next.CurrentAttemptTurnsCounter = 0
	next.Board = m.def.Board
	next.Roles = m.def.Roles.Clone()
	next.Moves = ""
	next.Phase = Playing
	return next, nil
}

// PlaySolutionMove plays the next move of the solution, whichever side it
// belongs to. It does not count as a turn.
func (m *Machine) PlaySolutionMove(st State) (State, *Transition, error) {
	if !st.InSolutionMode() {
		return st, nil, errors.Wrap(ErrChallengeNotActive, "solution was not requested")
	}
	if st.Phase != Playing {
		return st, nil, errors.Wrapf(ErrChallengeNotActive, "game is %s", st.Phase)
	}
	idx := *st.SolutionIndex
	if idx >= len(m.solution) {
		return st, nil, ErrSolutionExhausted
	}
	turn, err := st.Board.Turn()
	if err != nil {
		return st, nil, err
	}

	mv := m.solution[idx]
	next, tr, err := m.play(st, m.def.PlayerOf(turn), mv.From, mv.To, false)
	if err != nil {
		return st, nil, errors.WithMessagef(err, "solution move %d", idx)
	}
	idx++
	next.SolutionIndex = &idx
	return next, tr, nil
}

// Replay rebuilds an attempt from scratch: the opponent's first move, then
// moves alternately played by the player and the opponent. The player's
// moves are counted in the current attempt only; the caller owns the other
// counters.
func (m *Machine) Replay(moves []string) (State, error) {
	st := m.NewState()
	var err error
	if st, _, err = m.play(st, Away, m.firstMove.From, m.firstMove.To, false); err != nil {
		return st, errors.WithMessage(err, "first move")
	}
	p := Home
	for i, s := range moves {
		mv, err := game.ParseUCI(s)
		if err != nil {
			return st, err
		}
		if st, _, err = m.play(st, p, mv.From, mv.To, false); err != nil {
			return st, errors.WithMessagef(err, "replayed move %d", i)
		}
		if p == Home {
			st.CurrentAttemptTurnsCounter++
		}
		p = p.Other()
	}
	return st, nil
}

// Undo takes back the last round (the opponent's reply and the player's
// move before it) by replaying the attempt without them. It can be used
// once per challenge.
func (m *Machine) Undo(st State) (State, error) {
	if st.UndoUsed {
		return st, ErrUndoAlreadyUsed
	}
	if st.InSolutionMode() || st.Phase == Won || m.Turns(st).TimeIsUp {
		return st, errors.Wrap(ErrChallengeNotActive, "undo")
	}
	logged := st.Moves.List()
	if n := len(logged); n < 3 || n%2 == 0 {
		return st, errors.Wrapf(ErrNothingToUndo, "%d moves played", n)
	}
	if logged[0] != m.firstMove.Squares() {
		return st, errors.Wrapf(ErrStateMismatch, "attempt starts with %s, not %s", logged[0], m.firstMove.Squares())
	}

	replayed, err := m.Replay(logged[1 : len(logged)-2])
	if err != nil {
		return st, err
	}
	next := st.Clone()
	next.Board = replayed.Board
	next.Roles = replayed.Roles
	next.Moves = replayed.Moves
	next.CurrentAttemptTurnsCounter = replayed.CurrentAttemptTurnsCounter
	next.Phase = replayed.Phase
	next.UndoUsed = true
	return next, nil
}
