package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const startFEN Notation = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func sq(t *testing.T, s string) Square {
	t.Helper()
	retVal, err := ParseSquare(s)
	require.NoError(t, err)
	return retVal
}

func TestParseSquare(t *testing.T) {
	tests := []struct {
		in         string
		file, rank int
	}{
		{"a1", 0, 0},
		{"h1", 7, 0},
		{"e4", 4, 3},
		{"a8", 0, 7},
		{"h8", 7, 7},
	}
	for _, tt := range tests {
		s, err := ParseSquare(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.file, s.File(), tt.in)
		assert.Equal(t, tt.rank, s.Rank(), tt.in)
		assert.Equal(t, tt.in, s.String())
	}

	for _, bad := range []string{"", "e", "i1", "a9", "a0", "e44"} {
		_, err := ParseSquare(bad)
		assert.Error(t, err, bad)
	}
}

func TestSquareText(t *testing.T) {
	var s Square
	require.NoError(t, s.UnmarshalText([]byte("g7")))
	assert.Equal(t, NewSquare(6, 6), s)

	b, err := s.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "g7", string(b))

	_, err = NoSquare.MarshalText()
	assert.Error(t, err)
}

func TestEnPassantCapturedSquare(t *testing.T) {
	tests := []struct{ to, want string }{
		{"a6", "a5"},
		{"h6", "h5"},
		{"a3", "a4"},
		{"d3", "d4"},
	}
	for _, tt := range tests {
		assert.Equal(t, sq(t, tt.want), EnPassantCapturedSquare(sq(t, tt.to)), tt.to)
	}
	assert.Equal(t, NoSquare, EnPassantCapturedSquare(sq(t, "e4")))
}

func TestParseUCI(t *testing.T) {
	m, err := ParseUCI("e2e4")
	require.NoError(t, err)
	assert.Equal(t, Move{From: sq(t, "e2"), To: sq(t, "e4")}, m)
	assert.Equal(t, "e2e4", m.UCI())

	m, err = ParseUCI("a7a8q")
	require.NoError(t, err)
	assert.Equal(t, Queen, m.Promotion)
	assert.Equal(t, "a7a8", m.Squares())
	assert.Equal(t, "a7a8q", m.UCI())

	for _, bad := range []string{"", "e2", "e2e", "e2e4k", "z2e4", "e2e4qq"} {
		_, err := ParseUCI(bad)
		assert.ErrorIs(t, err, ErrInvalidMove, bad)
	}
}

func TestNotationFields(t *testing.T) {
	n := Notation("rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2")

	turn, err := n.Turn()
	require.NoError(t, err)
	assert.Equal(t, White, turn)

	castling, err := n.Castling()
	require.NoError(t, err)
	assert.Equal(t, "KQkq", castling)

	ep, err := n.EnPassant()
	require.NoError(t, err)
	assert.Equal(t, sq(t, "e6"), ep)

	half, full, err := n.Clocks()
	require.NoError(t, err)
	assert.Equal(t, 0, half)
	assert.Equal(t, 2, full)

	_, err = Notation("8/8/8 w").Turn()
	assert.ErrorIs(t, err, ErrInvalidNotation)
	_, err = Notation("8/8/8/8/8/8/8/8 x - - 0 1").Turn()
	assert.ErrorIs(t, err, ErrInvalidNotation)
}

func TestNotationPieces(t *testing.T) {
	n := Notation("7k/8/8/pP6/8/8/8/7K w - a6 0 1")
	pieces, err := n.Pieces()
	require.NoError(t, err)
	assert.Equal(t, map[Square]Piece{
		sq(t, "h8"): {Side: Black, Type: King},
		sq(t, "a5"): {Side: Black, Type: Pawn},
		sq(t, "b5"): {Side: White, Type: Pawn},
		sq(t, "h1"): {Side: White, Type: King},
	}, pieces)

	occupied, err := n.Occupied()
	require.NoError(t, err)
	assert.Equal(t, []Square{sq(t, "h1"), sq(t, "a5"), sq(t, "b5"), sq(t, "h8")}, occupied)

	occupied, err = startFEN.Occupied()
	require.NoError(t, err)
	assert.Len(t, occupied, 32)
}

func TestSamePosition(t *testing.T) {
	a := Notation("7k/8/8/pP6/8/8/8/7K w - a6 0 1")
	assert.True(t, a.SamePosition("7k/8/8/pP6/8/8/8/7K w - - 3 40"))
	assert.False(t, a.SamePosition("7k/8/8/pP6/8/8/8/7K b - - 0 1"))
	assert.False(t, a.SamePosition("6k1/8/8/pP6/8/8/8/7K w - - 0 1"))
	assert.False(t, a.SamePosition("garbage"))
}
