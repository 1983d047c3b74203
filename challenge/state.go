package challenge

import (
	"fmt"

	"github.com/dailygambit/game"
)

// Player is one of the two participants of a challenge.
type Player int8

const (
	Home Player = iota // the human
	Away               // the scripted opponent
)

func (p Player) Other() Player {
	if p == Home {
		return Away
	}
	return Home
}

func (p Player) String() string {
	switch p {
	case Home:
		return "home"
	case Away:
		return "away"
	}
	return fmt.Sprintf("Player(%d)", int8(p))
}

// Phase of the current attempt.
type Phase int8

const (
	Playing Phase = iota
	Won
	Lost
)

func (p Phase) String() string {
	switch p {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	}
	return fmt.Sprintf("Phase(%d)", int8(p))
}

const moveLen = 4

// MoveLog is the concatenation of the moves of the current attempt, each
// written as its two squares ("e2e4").
type MoveLog string

func (l MoveLog) Len() int { return len(l) / moveLen }

func (l MoveLog) List() []string {
	retVal := make([]string, 0, l.Len())
	for i := 0; i+moveLen <= len(l); i += moveLen {
		retVal = append(retVal, string(l[i:i+moveLen]))
	}
	return retVal
}

func (l MoveLog) Append(m game.Move) MoveLog { return l + MoveLog(m.Squares()) }

// State is the session-scoped state of one player for one challenge.
type State struct {
	AttemptsCounter            int               `json:"ac"`
	TurnsCounter               int               `json:"tc"`
	CurrentAttemptTurnsCounter int               `json:"catc"`
	Board                      game.Notation     `json:"f"`
	Roles                      game.RoleBySquare `json:"prbs"`
	Moves                      MoveLog           `json:"m"`
	Phase                      Phase             `json:"go"`
	SolutionIndex              *int              `json:"si,omitempty"` // set once the player asked for the solution
	UndoUsed                   bool              `json:"uu,omitempty"`
}

// Clone returns a deep copy of st.
func (st State) Clone() State {
	retVal := st
	retVal.Roles = st.Roles.Clone()
	if st.SolutionIndex != nil {
		idx := *st.SolutionIndex
		retVal.SolutionIndex = &idx
	}
	return retVal
}

func (st State) InSolutionMode() bool { return st.SolutionIndex != nil }
