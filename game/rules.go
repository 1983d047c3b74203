package game

// Rules is the chess legality oracle. The core never decides legality itself,
// it only asks.
type Rules interface {
	IsLegal(board Notation, m Move) (bool, error)     // is m a legal move in board?
	Apply(board Notation, m Move) (Notation, error)   // plays m, returns the new position
	TerminalStatus(board Notation) (*GameOver, error) // nil while the game goes on
	IsEnPassant(board Notation, m Move) (bool, error) // is m an en passant capture?
}

// Reason tells why a game ended.
type Reason string

const (
	Checkmate            Reason = "checkmate"
	Stalemate            Reason = "stalemate"
	InsufficientMaterial Reason = "insufficient_material"
	SeventyFiveMoves     Reason = "seventyfive_moves"
	ThreefoldRepetition  Reason = "threefold_repetition"
	FivefoldRepetition   Reason = "fivefold_repetition"
	FiftyMoves           Reason = "fifty_moves"
)

// GameOver describes a finished game. Winner is NoSide for draws.
type GameOver struct {
	Winner Side
	Reason Reason
}

func (g GameOver) IsDraw() bool { return g.Winner == NoSide }
