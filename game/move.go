package game

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
)

// MovePair is one piece displacement. A castling produces two of them.
type MovePair struct {
	From Square
	To   Square
}

func (p MovePair) String() string { return p.From.String() + p.To.String() }

// MoveOutcome fully describes the transition produced by one move.
type MoveOutcome struct {
	Board      Notation
	Moves      []MovePair
	IsCapture  bool
	Captured   Square // NoSquare unless IsCapture. Differs from the destination for en passant.
	IsCastling bool
	Promotion  PieceType
	GameOver   *GameOver
}

func (o MoveOutcome) clone() MoveOutcome {
	retVal := o
	retVal.Moves = append([]MovePair(nil), o.Moves...)
	if o.GameOver != nil {
		gameOver := *o.GameOver
		retVal.GameOver = &gameOver
	}
	return retVal
}

// castlingRookMoves maps a castling king move to its rook move.
var castlingRookMoves = map[MovePair]MovePair{
	{From: NewSquare(4, 0), To: NewSquare(6, 0)}: {From: NewSquare(7, 0), To: NewSquare(5, 0)}, // e1g1: h1f1
	{From: NewSquare(4, 0), To: NewSquare(2, 0)}: {From: NewSquare(0, 0), To: NewSquare(3, 0)}, // e1c1: a1d1
	{From: NewSquare(4, 7), To: NewSquare(6, 7)}: {From: NewSquare(7, 7), To: NewSquare(5, 7)}, // e8g8: h8f8
	{From: NewSquare(4, 7), To: NewSquare(2, 7)}: {From: NewSquare(0, 7), To: NewSquare(3, 7)}, // e8c8: a8d8
}

type moveKey struct {
	board    Notation
	from, to Square
}

// DefaultCacheSize is the number of move outcomes an Engine remembers.
const DefaultCacheSize = 1024

// Engine applies moves on a board and classifies them. It is safe for
// concurrent use.
type Engine struct {
	rules Rules
	cache *lru.Cache[moveKey, MoveOutcome]
}

// NewEngine creates an engine backed by rules. Outcomes are memoized by
// (board, from, to), up to cacheSize entries.
func NewEngine(rules Rules, cacheSize int) (*Engine, error) {
	if rules == nil {
		return nil, errors.New("nil rules")
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[moveKey, MoveOutcome](cacheSize)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &Engine{rules: rules, cache: cache}, nil
}

func (e *Engine) Rules() Rules { return e.rules }

// ApplyMove plays from→to on board. Pawns reaching the last rank are always
// promoted to queens. Any rejected move wraps ErrInvalidMove.
func (e *Engine) ApplyMove(board Notation, from, to Square) (MoveOutcome, error) {
	key := moveKey{board: board, from: from, to: to}
	if cached, ok := e.cache.Get(key); ok {
		return cached.clone(), nil
	}

	outcome, err := e.applyMove(board, from, to)
	if err != nil {
		return MoveOutcome{}, err
	}
	e.cache.Add(key, outcome.clone())
	return outcome, nil
}

func (e *Engine) applyMove(board Notation, from, to Square) (MoveOutcome, error) {
	if !from.Valid() || !to.Valid() || from == to {
		return MoveOutcome{}, errors.Wrapf(ErrInvalidMove, "bad squares %d -> %d", from, to)
	}
	turn, err := board.Turn()
	if err != nil {
		return MoveOutcome{}, err
	}
	pieces, err := board.Pieces()
	if err != nil {
		return MoveOutcome{}, err
	}
	piece, ok := pieces[from]
	if !ok {
		return MoveOutcome{}, errors.Wrapf(ErrInvalidMove, "no piece on %s", from)
	}
	if piece.Side != turn {
		return MoveOutcome{}, errors.Wrapf(ErrInvalidMove, "piece on %s does not belong to %s", from, turn)
	}

	m := Move{From: from, To: to}
	if piece.Type == Pawn && (to.Rank() == 0 || to.Rank() == RowNum-1) {
		m.Promotion = Queen
	}
	legal, err := e.rules.IsLegal(board, m)
	if err != nil {
		return MoveOutcome{}, err
	}
	if !legal {
		return MoveOutcome{}, errors.Wrapf(ErrInvalidMove, "%s is not legal", m)
	}

	outcome := MoveOutcome{
		Moves:     []MovePair{{From: from, To: to}},
		Captured:  NoSquare,
		Promotion: m.Promotion,
	}
	if _, occupied := pieces[to]; occupied {
		outcome.IsCapture = true
		outcome.Captured = to
	} else if piece.Type == Pawn {
		ep, err := e.rules.IsEnPassant(board, m)
		if err != nil {
			return MoveOutcome{}, err
		}
		if ep {
			outcome.IsCapture = true
			outcome.Captured = EnPassantCapturedSquare(to)
		}
	}

	castlingBefore, err := board.Castling()
	if err != nil {
		return MoveOutcome{}, err
	}
	if outcome.Board, err = e.rules.Apply(board, m); err != nil {
		return MoveOutcome{}, err
	}
	castlingAfter, err := outcome.Board.Castling()
	if err != nil {
		return MoveOutcome{}, err
	}
	if piece.Type == King && castlingBefore != castlingAfter {
		if rook, ok := castlingRookMoves[MovePair{From: from, To: to}]; ok {
			outcome.IsCastling = true
			outcome.Moves = append(outcome.Moves, rook)
		}
	}

	if outcome.GameOver, err = e.rules.TerminalStatus(outcome.Board); err != nil {
		return MoveOutcome{}, err
	}
	return outcome, nil
}
