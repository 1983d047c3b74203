package game

import (
	"github.com/notnil/chess"
	"github.com/pkg/errors"
)

// Chess implements Rules on top of github.com/notnil/chess.
// Every call rebuilds a chess.Game from the notation, so a Chess value holds
// no position state and can be shared.
type Chess struct {
	claimDraws bool
}

// ChessOption configures a Chess.
type ChessOption func(*Chess)

// WithClaimDraws makes TerminalStatus also report draws that can only be
// claimed (fifty-move rule, threefold repetition).
func WithClaimDraws() ChessOption {
	return func(c *Chess) { c.claimDraws = true }
}

// NewChess returns the notnil/chess backed rules.
func NewChess(opts ...ChessOption) *Chess {
	c := &Chess{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var automaticEndings = map[chess.Method]Reason{
	chess.Checkmate:            Checkmate,
	chess.Stalemate:            Stalemate,
	chess.InsufficientMaterial: InsufficientMaterial,
	chess.SeventyFiveMoveRule:  SeventyFiveMoves,
	chess.FivefoldRepetition:   FivefoldRepetition,
}

var claimableEndings = map[chess.Method]Reason{
	chess.FiftyMoveRule:       FiftyMoves,
	chess.ThreefoldRepetition: ThreefoldRepetition,
}

func (c *Chess) IsLegal(board Notation, m Move) (bool, error) {
	g, err := newChessGame(board)
	if err != nil {
		return false, err
	}
	return findMove(g, m) != nil, nil
}

func (c *Chess) Apply(board Notation, m Move) (Notation, error) {
	g, err := newChessGame(board)
	if err != nil {
		return "", err
	}
	vm := findMove(g, m)
	if vm == nil {
		return "", errors.Wrapf(ErrInvalidMove, "%s is not legal for %q", m, board)
	}
	if err := g.Move(vm); err != nil {
		return "", errors.Wrapf(ErrInvalidMove, "%s: %v", m, err)
	}
	return Notation(g.Position().String()), nil
}

func (c *Chess) TerminalStatus(board Notation) (*GameOver, error) {
	g, err := newChessGame(board)
	if err != nil {
		return nil, err
	}
	pos := g.Position()
	switch pos.Status() {
	case chess.Checkmate:
		// the side to move is the one mated
		return &GameOver{Winner: sideFromColor(pos.Turn()).Other(), Reason: Checkmate}, nil
	case chess.Stalemate:
		return &GameOver{Reason: Stalemate}, nil
	}

	if g.Outcome() != chess.NoOutcome {
		if reason, ok := automaticEndings[g.Method()]; ok {
			return &GameOver{Winner: winner(g.Outcome()), Reason: reason}, nil
		}
	}

	if c.claimDraws {
		for _, method := range g.EligibleDraws() {
			if reason, ok := claimableEndings[method]; ok {
				return &GameOver{Reason: reason}, nil
			}
		}
	}
	return nil, nil
}

func (c *Chess) IsEnPassant(board Notation, m Move) (bool, error) {
	g, err := newChessGame(board)
	if err != nil {
		return false, err
	}
	vm := findMove(g, m)
	return vm != nil && vm.HasTag(chess.EnPassant), nil
}

// LegalMoves lists the legal moves of board. Under-promotions are left out:
// pawns reaching the last rank always become queens here.
func (c *Chess) LegalMoves(board Notation) ([]Move, error) {
	g, err := newChessGame(board)
	if err != nil {
		return nil, err
	}
	valid := g.ValidMoves()
	retVal := make([]Move, 0, len(valid))
	for _, vm := range valid {
		promo := pieceTypeFromChess(vm.Promo())
		if promo != NoPieceType && promo != Queen {
			continue
		}
		retVal = append(retVal, Move{From: Square(vm.S1()), To: Square(vm.S2()), Promotion: promo})
	}
	return retVal, nil
}

// findMove scans the valid moves of g for m.
func findMove(g *chess.Game, m Move) *chess.Move {
	for _, vm := range g.ValidMoves() {
		if vm.S1() == chess.Square(m.From) && vm.S2() == chess.Square(m.To) && vm.Promo() == m.Promotion.chessType() {
			return vm
		}
	}
	return nil
}

func winner(o chess.Outcome) Side {
	switch o {
	case chess.WhiteWon:
		return White
	case chess.BlackWon:
		return Black
	}
	return NoSide
}
