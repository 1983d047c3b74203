package game

import (
	"strings"

	"github.com/notnil/chess"
	"github.com/pkg/errors"
)

// RewindMove computes the board as it was before side played m, given the
// board after it. Only non-capturing moves can be rewound: a captured piece
// cannot be brought back. Castling rights are kept, plus the one a castling
// used. The en passant target is dropped and the clocks are stepped back.
func RewindMove(rules Rules, after Notation, m Move, side Side) (Notation, error) {
	turn, err := after.Turn()
	if err != nil {
		return "", err
	}
	if turn != side.Other() {
		return "", errors.Wrapf(ErrInvalidMove, "%s cannot have just played in %q", side, after)
	}
	pieces, err := after.Pieces()
	if err != nil {
		return "", err
	}
	piece, ok := pieces[m.To]
	if !ok {
		return "", errors.Wrapf(ErrInvalidMove, "no piece on %s", m.To)
	}
	if piece.Side != side {
		return "", errors.Wrapf(ErrInvalidMove, "piece on %s is not from side %s", m.To, side)
	}
	if _, occupied := pieces[m.From]; occupied {
		return "", errors.Wrapf(ErrInvalidMove, "%s is occupied", m.From)
	}

	castling, err := after.Castling()
	if err != nil {
		return "", err
	}
	rook, castled := castlingRookMoves[MovePair{From: m.From, To: m.To}]
	if castled && piece.Type == King && (m.From.Rank() == 0) == (side == White) {
		if p, ok := pieces[rook.To]; !ok || p != (Piece{Side: side, Type: Rook}) {
			return "", errors.Wrapf(ErrInvalidMove, "castling %s without a rook on %s", m, rook.To)
		}
		if _, occupied := pieces[rook.From]; occupied {
			return "", errors.Wrapf(ErrInvalidMove, "castling %s: %s is occupied", m, rook.From)
		}
		delete(pieces, rook.To)
		pieces[rook.From] = Piece{Side: side, Type: Rook}
		castling = withCastlingRight(castling, side, m.To.File() > m.From.File())
	}

	delete(pieces, m.To)
	if m.Promotion != NoPieceType {
		piece.Type = Pawn
	}
	pieces[m.From] = piece

	sm := make(map[chess.Square]chess.Piece, len(pieces))
	for sq, p := range pieces {
		sm[chess.Square(sq)] = p.chessPiece()
	}
	placement := chess.NewBoard(sm).String()

	halfmove, fullmove, err := after.Clocks()
	if err != nil {
		return "", err
	}
	if piece.Type == Pawn {
		halfmove = 0
	} else if halfmove > 0 {
		halfmove--
	}
	if side == Black && fullmove > 1 {
		fullmove--
	}
	before := formatNotation(placement, side, castling, NoSquare, halfmove, fullmove)

	legal, err := rules.IsLegal(before, m)
	if err != nil {
		return "", err
	}
	if !legal {
		return "", errors.Wrapf(ErrInvalidMove, "%s is not legal in %q", m, before)
	}
	replayed, err := rules.Apply(before, m)
	if err != nil {
		return "", err
	}
	if !replayed.SamePosition(after) {
		return "", errors.Wrapf(ErrInvalidMove, "%s from %q gives %q, not %q", m, before, replayed, after)
	}
	return before, nil
}

// withCastlingRight adds the kingside or queenside right of side to castling.
func withCastlingRight(castling string, side Side, kingside bool) string {
	right := "q"
	if kingside {
		right = "k"
	}
	if side == White {
		right = strings.ToUpper(right)
	}
	var sb strings.Builder
	for _, r := range "KQkq" {
		if strings.ContainsRune(castling, r) || string(r) == right {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// RewindRoles moves the roles back along m, a move that captured nothing.
// The rook of a castling goes back too. roles is left untouched.
func RewindRoles(roles RoleBySquare, m Move) RoleBySquare {
	retVal := roles.Clone()
	pairs := []MovePair{{From: m.From, To: m.To}}
	if retVal[m.To].Type() == King {
		if rook, ok := castlingRookMoves[pairs[0]]; ok {
			pairs = append(pairs, rook)
		}
	}
	for _, p := range pairs {
		if r, ok := retVal[p.To]; ok {
			delete(retVal, p.To)
			retVal[p.From] = r
		}
	}
	return retVal
}
