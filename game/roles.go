package game

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Role is the stable identity of one piece: its type letter, an index when
// the type can have several pieces, and the promoted type once a pawn
// promotes. Uppercase is White, lowercase is Black. e.g. "P3", "n1", "Q",
// "P3Q".
type Role string

// Side returns the owner of the role, from the letter case.
func (r Role) Side() Side {
	if r == "" {
		return NoSide
	}
	if r[0] >= 'A' && r[0] <= 'Z' {
		return White
	}
	return Black
}

// Type returns the original piece type of the role, ignoring promotions.
func (r Role) Type() PieceType {
	if r == "" {
		return NoPieceType
	}
	return PieceType(strings.ToLower(string(r[0]))[0])
}

// Promotion returns the type the pawn was promoted to, NoPieceType if none.
func (r Role) Promotion() PieceType {
	if len(r) != 3 {
		return NoPieceType
	}
	return PieceType(strings.ToLower(string(r[2]))[0])
}

// TeamMemberRole is the side-independent (lowercase) form of the role.
func (r Role) TeamMemberRole() string { return strings.ToLower(string(r)) }

// Promoted returns the role once promoted to t, using the case of side.
func (r Role) Promoted(t PieceType, side Side) Role {
	suffix := t.String()
	if side == White {
		suffix = strings.ToUpper(suffix)
	}
	return r + Role(suffix)
}

// RoleBySquare maps every occupied square to the role standing on it.
type RoleBySquare map[Square]Role

func (rbs RoleBySquare) Clone() RoleBySquare {
	if rbs == nil {
		return nil
	}
	return maps.Clone(rbs)
}

// Squares returns the keys, sorted.
func (rbs RoleBySquare) Squares() []Square {
	retVal := maps.Keys(rbs)
	slices.Sort(retVal)
	return retVal
}

// Find returns the square holding role.
func (rbs RoleBySquare) Find(role Role) (Square, bool) {
	for sq, r := range rbs {
		if r == role {
			return sq, true
		}
	}
	return NoSquare, false
}

// CheckRoles verifies that roles covers exactly the occupied squares of
// board, with no role used twice.
func CheckRoles(roles RoleBySquare, board Notation) error {
	occupied, err := board.Occupied()
	if err != nil {
		return err
	}
	if !slices.Equal(occupied, roles.Squares()) {
		return errors.Wrapf(ErrInconsistentRoles, "roles on %v, pieces on %v", roles.Squares(), occupied)
	}
	seen := make(map[Role]Square, len(roles))
	for sq, r := range roles {
		if prev, ok := seen[r]; ok {
			return errors.Wrapf(ErrInconsistentRoles, "role %s on both %s and %s", r, prev, sq)
		}
		seen[r] = sq
	}
	return nil
}

// UpdateRoles moves the roles along with the pieces of outcome, played by
// side. It returns the new mapping and the role that was captured, if any.
// roles is left untouched.
func UpdateRoles(roles RoleBySquare, outcome MoveOutcome, side Side) (RoleBySquare, Role, error) {
	retVal := roles.Clone()
	if retVal == nil {
		retVal = make(RoleBySquare)
	}

	var captured Role
	if outcome.IsCapture && outcome.Captured.Valid() {
		var ok bool
		if captured, ok = retVal[outcome.Captured]; !ok {
			return nil, "", errors.Wrapf(ErrInconsistentRoles, "no role on captured square %s", outcome.Captured)
		}
		delete(retVal, outcome.Captured)
	}

	for _, m := range outcome.Moves {
		r, ok := retVal[m.From]
		if !ok {
			return nil, "", errors.Wrapf(ErrInconsistentRoles, "no role on %s", m.From)
		}
		delete(retVal, m.From)
		retVal[m.To] = r
	}

	if outcome.Promotion != NoPieceType && len(outcome.Moves) > 0 {
		to := outcome.Moves[0].To
		retVal[to] = retVal[to].Promoted(outcome.Promotion, side)
	}

	if err := CheckRoles(retVal, outcome.Board); err != nil {
		return nil, "", err
	}
	return retVal, captured, nil
}

// roleLimits holds, per type, the first index handed out and the highest
// index allowed. A first index of 0 means the first piece gets the bare
// type letter.
var roleLimits = map[PieceType][2]int{
	Pawn:   {1, 8},
	Knight: {1, 9},
	Bishop: {1, 9},
	Rook:   {1, 9},
	Queen:  {0, 9},
	King:   {0, 0},
}

// AssignRoles gives a fresh role to every piece of board, scanning from a1
// to h8.
func AssignRoles(board Notation) (RoleBySquare, error) {
	pieces, err := board.Pieces()
	if err != nil {
		return nil, err
	}

	counters := map[Side]map[PieceType]int{White: {}, Black: {}}
	for side := range counters {
		for t, limits := range roleLimits {
			counters[side][t] = limits[0]
		}
	}

	retVal := make(RoleBySquare, len(pieces))
	for sq := Square(0); sq < RowNum*ColNum; sq++ {
		p, ok := pieces[sq]
		if !ok {
			continue
		}
		idx := counters[p.Side][p.Type]
		if idx > roleLimits[p.Type][1] {
			return nil, errors.Wrapf(ErrTooManyPieces, "%s on %s", p.Symbol(), sq)
		}
		counters[p.Side][p.Type]++

		role := p.Symbol()
		if idx > 0 {
			role += strconv.Itoa(idx)
		}
		retVal[sq] = Role(role)
	}
	return retVal, nil
}
