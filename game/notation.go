package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/notnil/chess"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	RowNum = 8
	ColNum = 8
)

// Square is one of the 64 board coordinates. a1 is 0, h8 is 63, same layout as chess.Square.
type Square int8

// NoSquare marks the absence of a square (e.g. no capture).
const NoSquare Square = -1

// NewSquare builds a square from 0-based file and rank indices.
func NewSquare(file, rank int) Square {
	if file < 0 || file >= ColNum || rank < 0 || rank >= RowNum {
		return NoSquare
	}
	return Square(rank*ColNum + file)
}

// ParseSquare parses a square such as "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, errors.Errorf("invalid square %q", s)
	}
	file, rank := int(s[0]-'a'), int(s[1]-'1')
	sq := NewSquare(file, rank)
	if sq == NoSquare {
		return NoSquare, errors.Errorf("invalid square %q", s)
	}
	return sq, nil
}

func (sq Square) Valid() bool { return sq >= 0 && sq < RowNum*ColNum }

// File returns the 0-based file index (0 is the a-file).
func (sq Square) File() int { return int(sq) % ColNum }

// Rank returns the 0-based rank index (0 is the first rank).
func (sq Square) Rank() int { return int(sq) / ColNum }

func (sq Square) String() string {
	if !sq.Valid() {
		return "-"
	}
	return string([]byte{byte('a' + sq.File()), byte('1' + sq.Rank())})
}

func (sq Square) MarshalText() ([]byte, error) {
	if !sq.Valid() {
		return nil, errors.Errorf("cannot marshal square %d", sq)
	}
	return []byte(sq.String()), nil
}

func (sq *Square) UnmarshalText(b []byte) error {
	parsed, err := ParseSquare(string(b))
	if err != nil {
		return err
	}
	*sq = parsed
	return nil
}

// EnPassantCapturedSquare returns the square of the pawn taken by an en passant
// capture landing on `to`. The captured pawn sits one rank behind the destination.
func EnPassantCapturedSquare(to Square) Square {
	switch to.Rank() {
	case 5: // 6th rank -> 5th
		return NewSquare(to.File(), 4)
	case 2: // 3rd rank -> 4th
		return NewSquare(to.File(), 3)
	}
	return NoSquare
}

// Side is a chess colour, using the FEN letters.
type Side byte

const (
	NoSide Side = 0
	White  Side = 'w'
	Black  Side = 'b'
)

func (s Side) Other() Side {
	switch s {
	case White:
		return Black
	case Black:
		return White
	}
	return NoSide
}

func (s Side) String() string {
	if s == NoSide {
		return "-"
	}
	return string(rune(s))
}

func (s Side) MarshalText() ([]byte, error) {
	if s != White && s != Black {
		return nil, errors.Errorf("cannot marshal side %d", s)
	}
	return []byte{byte(s)}, nil
}

func (s *Side) UnmarshalText(b []byte) error {
	parsed, err := parseSide(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func parseSide(s string) (Side, error) {
	switch s {
	case "w":
		return White, nil
	case "b":
		return Black, nil
	}
	return NoSide, errors.Errorf("invalid side %q", s)
}

func sideFromColor(c chess.Color) Side {
	switch c {
	case chess.White:
		return White
	case chess.Black:
		return Black
	}
	return NoSide
}

func (s Side) color() chess.Color {
	switch s {
	case White:
		return chess.White
	case Black:
		return chess.Black
	}
	return chess.NoColor
}

// PieceType uses the lowercase FEN letters.
type PieceType byte

const (
	NoPieceType PieceType = 0
	Pawn        PieceType = 'p'
	Knight      PieceType = 'n'
	Bishop      PieceType = 'b'
	Rook        PieceType = 'r'
	Queen       PieceType = 'q'
	King        PieceType = 'k'
)

func (t PieceType) String() string {
	if t == NoPieceType {
		return ""
	}
	return string(rune(t))
}

func pieceTypeFromChess(t chess.PieceType) PieceType {
	switch t {
	case chess.Pawn:
		return Pawn
	case chess.Knight:
		return Knight
	case chess.Bishop:
		return Bishop
	case chess.Rook:
		return Rook
	case chess.Queen:
		return Queen
	case chess.King:
		return King
	}
	return NoPieceType
}

func (t PieceType) chessType() chess.PieceType {
	switch t {
	case Pawn:
		return chess.Pawn
	case Knight:
		return chess.Knight
	case Bishop:
		return chess.Bishop
	case Rook:
		return chess.Rook
	case Queen:
		return chess.Queen
	case King:
		return chess.King
	}
	return chess.NoPieceType
}

// Piece is a typed piece owned by one side.
type Piece struct {
	Side Side
	Type PieceType
}

// Symbol returns the FEN symbol: uppercase for White.
func (p Piece) Symbol() string {
	if p.Side == White {
		return strings.ToUpper(p.Type.String())
	}
	return p.Type.String()
}

func (p Piece) chessPiece() chess.Piece {
	return chess.NewPiece(p.Type.chessType(), p.Side.color())
}

// Move is a from/to square pair, with the promotion piece if any.
type Move struct {
	From      Square
	To        Square
	Promotion PieceType
}

// ParseUCI parses a UCI move such as "e2e4" or "a7a8q".
func ParseUCI(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return Move{}, errors.Wrapf(ErrInvalidMove, "malformed UCI move %q", s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return Move{}, errors.Wrapf(ErrInvalidMove, "%q: %v", s, err)
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return Move{}, errors.Wrapf(ErrInvalidMove, "%q: %v", s, err)
	}
	m := Move{From: from, To: to}
	if len(s) == 5 {
		switch t := PieceType(s[4]); t {
		case Knight, Bishop, Rook, Queen:
			m.Promotion = t
		default:
			return Move{}, errors.Wrapf(ErrInvalidMove, "bad promotion in %q", s)
		}
	}
	return m, nil
}

// Squares returns the move as its two squares ("e2e4"), without promotion.
func (m Move) Squares() string { return m.From.String() + m.To.String() }

// UCI returns the UCI notation, promotion included.
func (m Move) UCI() string { return m.Squares() + m.Promotion.String() }

func (m Move) String() string { return m.UCI() }

// Notation is a FEN string: occupancy, side to move, castling rights,
// en passant target and move counters.
type Notation string

const fenFields = 6

func (n Notation) fields() ([]string, error) {
	f := strings.Fields(string(n))
	if len(f) != fenFields {
		return nil, errors.Wrapf(ErrInvalidNotation, "%q has %d fields", n, len(f))
	}
	return f, nil
}

// Placement returns the piece placement field.
func (n Notation) Placement() (string, error) {
	f, err := n.fields()
	if err != nil {
		return "", err
	}
	return f[0], nil
}

// Turn returns the side to move.
func (n Notation) Turn() (Side, error) {
	f, err := n.fields()
	if err != nil {
		return NoSide, err
	}
	s, err := parseSide(f[1])
	if err != nil {
		return NoSide, errors.Wrapf(ErrInvalidNotation, "%q: %v", n, err)
	}
	return s, nil
}

// Castling returns the castling rights field ("-" when none).
func (n Notation) Castling() (string, error) {
	f, err := n.fields()
	if err != nil {
		return "", err
	}
	return f[2], nil
}

// EnPassant returns the en passant target square, NoSquare when there is none.
func (n Notation) EnPassant() (Square, error) {
	f, err := n.fields()
	if err != nil {
		return NoSquare, err
	}
	if f[3] == "-" {
		return NoSquare, nil
	}
	sq, err := ParseSquare(f[3])
	if err != nil {
		return NoSquare, errors.Wrapf(ErrInvalidNotation, "%q: %v", n, err)
	}
	return sq, nil
}

// Clocks returns the halfmove clock and the fullmove number.
func (n Notation) Clocks() (halfmove, fullmove int, err error) {
	f, err := n.fields()
	if err != nil {
		return 0, 0, err
	}
	if halfmove, err = strconv.Atoi(f[4]); err != nil {
		return 0, 0, errors.Wrapf(ErrInvalidNotation, "%q: halfmove clock", n)
	}
	if fullmove, err = strconv.Atoi(f[5]); err != nil {
		return 0, 0, errors.Wrapf(ErrInvalidNotation, "%q: fullmove number", n)
	}
	return halfmove, fullmove, nil
}

// Pieces decodes the occupancy of the board.
func (n Notation) Pieces() (map[Square]Piece, error) {
	g, err := newChessGame(n)
	if err != nil {
		return nil, err
	}
	sm := g.Position().Board().SquareMap()
	retVal := make(map[Square]Piece, len(sm))
	for sq, p := range sm {
		if p == chess.NoPiece {
			continue
		}
		retVal[Square(sq)] = Piece{Side: sideFromColor(p.Color()), Type: pieceTypeFromChess(p.Type())}
	}
	return retVal, nil
}

// Occupied returns the occupied squares, sorted.
func (n Notation) Occupied() ([]Square, error) {
	pieces, err := n.Pieces()
	if err != nil {
		return nil, err
	}
	squares := maps.Keys(pieces)
	slices.Sort(squares)
	return squares, nil
}

// SamePosition compares placement and side to move only, ignoring the
// castling, en passant and clock fields.
func (n Notation) SamePosition(other Notation) bool {
	a, errA := n.fields()
	b, errB := other.fields()
	if errA != nil || errB != nil {
		return false
	}
	return a[0] == b[0] && a[1] == b[1]
}

func newChessGame(n Notation) (*chess.Game, error) {
	fen, err := chess.FEN(string(n))
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidNotation, "%q: %v", n, err)
	}
	return chess.NewGame(fen), nil
}

func formatNotation(placement string, turn Side, castling string, ep Square, halfmove, fullmove int) Notation {
	epField := "-"
	if ep.Valid() {
		epField = ep.String()
	}
	return Notation(fmt.Sprintf("%s %s %s %s %d %d", placement, turn, castling, epField, halfmove, fullmove))
}
