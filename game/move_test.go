package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, rules Rules) *Engine {
	t.Helper()
	if rules == nil {
		rules = NewChess()
	}
	e, err := NewEngine(rules, 64)
	require.NoError(t, err)
	return e
}

func pair(t *testing.T, from, to string) MovePair {
	return MovePair{From: sq(t, from), To: sq(t, to)}
}

func TestApplyMoveSimple(t *testing.T) {
	e := newTestEngine(t, nil)
	outcome, err := e.ApplyMove(startFEN, sq(t, "e2"), sq(t, "e4"))
	require.NoError(t, err)

	assert.Equal(t, Notation("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"), outcome.Board)
	assert.Equal(t, []MovePair{pair(t, "e2", "e4")}, outcome.Moves)
	assert.False(t, outcome.IsCapture)
	assert.Equal(t, NoSquare, outcome.Captured)
	assert.False(t, outcome.IsCastling)
	assert.Equal(t, NoPieceType, outcome.Promotion)
	assert.Nil(t, outcome.GameOver)
}

func TestApplyMoveEnPassant(t *testing.T) {
	tests := []struct {
		name     string
		board    Notation
		from, to string
		captured string
		want     Notation
	}{
		{"white", "7k/8/8/pP6/8/8/8/7K w - a6 0 1", "b5", "a6", "a5", "7k/8/P7/8/8/8/8/7K b - - 0 1"},
		{"black", "7k/8/8/8/Pp6/8/8/7K b - a3 0 1", "b4", "a3", "a4", "7k/8/8/8/8/p7/8/7K w - - 0 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, nil)
			outcome, err := e.ApplyMove(tt.board, sq(t, tt.from), sq(t, tt.to))
			require.NoError(t, err)
			assert.True(t, outcome.IsCapture)
			assert.Equal(t, sq(t, tt.captured), outcome.Captured)
			assert.Equal(t, tt.want, outcome.Board)
			assert.Equal(t, []MovePair{pair(t, tt.from, tt.to)}, outcome.Moves)
		})
	}
}

func TestApplyMoveCapture(t *testing.T) {
	e := newTestEngine(t, nil)
	board := Notation("rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2")
	outcome, err := e.ApplyMove(board, sq(t, "e4"), sq(t, "d5"))
	require.NoError(t, err)
	assert.True(t, outcome.IsCapture)
	assert.Equal(t, sq(t, "d5"), outcome.Captured)
}

func TestApplyMoveCastling(t *testing.T) {
	tests := []struct {
		name  string
		board Notation
		king  MovePair
		rook  MovePair
	}{
		{"white kingside", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", pair(t, "e1", "g1"), pair(t, "h1", "f1")},
		{"white queenside", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", pair(t, "e1", "c1"), pair(t, "a1", "d1")},
		{"black kingside", "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", pair(t, "e8", "g8"), pair(t, "h8", "f8")},
		{"black queenside", "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", pair(t, "e8", "c8"), pair(t, "a8", "d8")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, nil)
			outcome, err := e.ApplyMove(tt.board, tt.king.From, tt.king.To)
			require.NoError(t, err)
			assert.True(t, outcome.IsCastling)
			assert.False(t, outcome.IsCapture)
			assert.Equal(t, []MovePair{tt.king, tt.rook}, outcome.Moves)

			pieces, err := outcome.Board.Pieces()
			require.NoError(t, err)
			assert.Equal(t, Rook, pieces[tt.rook.To].Type)
			assert.Equal(t, King, pieces[tt.king.To].Type)
		})
	}
}

func TestApplyMoveKingStepIsNotCastling(t *testing.T) {
	e := newTestEngine(t, nil)
	outcome, err := e.ApplyMove("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", sq(t, "e1"), sq(t, "f1"))
	require.NoError(t, err)
	assert.False(t, outcome.IsCastling)
	assert.Len(t, outcome.Moves, 1)
}

func TestApplyMovePromotion(t *testing.T) {
	e := newTestEngine(t, nil)
	outcome, err := e.ApplyMove("7k/P7/8/8/8/8/8/K7 w - - 0 1", sq(t, "a7"), sq(t, "a8"))
	require.NoError(t, err)
	assert.Equal(t, Queen, outcome.Promotion)
	assert.Equal(t, Notation("Q6k/8/8/8/8/8/8/K7 b - - 0 1"), outcome.Board)
	assert.Nil(t, outcome.GameOver)
}

func TestApplyMoveGameOver(t *testing.T) {
	tests := []struct {
		name     string
		board    Notation
		from, to string
		want     GameOver
	}{
		{"checkmate", "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", "a1", "a8", GameOver{Winner: White, Reason: Checkmate}},
		{"stalemate", "7k/8/8/6Q1/8/8/8/K7 w - - 0 1", "g5", "g6", GameOver{Reason: Stalemate}},
		{"insufficient material", "7k/8/8/8/8/8/1n6/K7 w - - 0 1", "a1", "b2", GameOver{Reason: InsufficientMaterial}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, nil)
			outcome, err := e.ApplyMove(tt.board, sq(t, tt.from), sq(t, tt.to))
			require.NoError(t, err)
			require.NotNil(t, outcome.GameOver)
			assert.Equal(t, tt.want, *outcome.GameOver)
			assert.Equal(t, tt.want.Winner == NoSide, outcome.GameOver.IsDraw())
		})
	}
}

func TestApplyMoveInvalid(t *testing.T) {
	tests := []struct {
		name     string
		from, to Square
	}{
		{"illegal pawn jump", NewSquare(4, 1), NewSquare(4, 4)},
		{"opponent piece", NewSquare(4, 6), NewSquare(4, 4)},
		{"empty square", NewSquare(4, 3), NewSquare(4, 4)},
		{"same square", NewSquare(4, 1), NewSquare(4, 1)},
		{"out of range", NoSquare, NewSquare(4, 3)},
		{"out of range destination", NewSquare(4, 1), Square(64)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, nil)
			_, err := e.ApplyMove(startFEN, tt.from, tt.to)
			assert.ErrorIs(t, err, ErrInvalidMove)
		})
	}
}

type countingRules struct {
	Rules
	legalCalls int
}

func (r *countingRules) IsLegal(board Notation, m Move) (bool, error) {
	r.legalCalls++
	return r.Rules.IsLegal(board, m)
}

func TestApplyMoveMemoized(t *testing.T) {
	rules := &countingRules{Rules: NewChess()}
	e := newTestEngine(t, rules)
	board := Notation("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")

	first, err := e.ApplyMove(board, sq(t, "e1"), sq(t, "g1"))
	require.NoError(t, err)
	first.Moves[1] = MovePair{}

	second, err := e.ApplyMove(board, sq(t, "e1"), sq(t, "g1"))
	require.NoError(t, err)
	assert.Equal(t, 1, rules.legalCalls)
	assert.Equal(t, []MovePair{pair(t, "e1", "g1"), pair(t, "h1", "f1")}, second.Moves)
}

func TestNewEngineNilRules(t *testing.T) {
	_, err := NewEngine(nil, 10)
	assert.Error(t, err)
}

func TestClaimDraws(t *testing.T) {
	board := Notation("7k/8/8/8/8/8/8/R6K w - - 99 80")
	from, to := NewSquare(0, 0), NewSquare(0, 1)

	outcome, err := newTestEngine(t, NewChess()).ApplyMove(board, from, to)
	require.NoError(t, err)
	assert.Nil(t, outcome.GameOver)

	outcome, err = newTestEngine(t, NewChess(WithClaimDraws())).ApplyMove(board, from, to)
	require.NoError(t, err)
	require.NotNil(t, outcome.GameOver)
	assert.Equal(t, FiftyMoves, outcome.GameOver.Reason)
}

func TestLegalMovesQueenPromotionOnly(t *testing.T) {
	moves, err := NewChess().LegalMoves("7k/P7/8/8/8/8/8/K7 w - - 0 1")
	require.NoError(t, err)
	var promotions []Move
	for _, m := range moves {
		if m.From == NewSquare(0, 6) {
			promotions = append(promotions, m)
		}
	}
	require.Len(t, promotions, 1)
	assert.Equal(t, Queen, promotions[0].Promotion)
}
