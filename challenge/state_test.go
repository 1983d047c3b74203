package challenge

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailygambit/game"
)

func TestMoveLog(t *testing.T) {
	var l MoveLog
	assert.Zero(t, l.Len())
	assert.Empty(t, l.List())

	l = l.Append(game.Move{From: game.NewSquare(4, 1), To: game.NewSquare(4, 3)})
	l = l.Append(game.Move{From: game.NewSquare(0, 6), To: game.NewSquare(0, 7), Promotion: game.Queen})
	assert.Equal(t, MoveLog("e2e4a7a8"), l)
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, []string{"e2e4", "a7a8"}, l.List())
}

func TestStateClone(t *testing.T) {
	idx := 2
	st := State{
		Roles:         game.RoleBySquare{game.NewSquare(0, 0): "K"},
		SolutionIndex: &idx,
	}
	c := st.Clone()
	c.Roles[game.NewSquare(0, 0)] = "Q"
	*c.SolutionIndex = 3

	assert.Equal(t, game.Role("K"), st.Roles[game.NewSquare(0, 0)])
	assert.Equal(t, 2, *st.SolutionIndex)
}

func TestStateJSONKeys(t *testing.T) {
	idx := 1
	st := State{
		AttemptsCounter:            1,
		TurnsCounter:               5,
		CurrentAttemptTurnsCounter: 2,
		Board:                      startFEN,
		Roles:                      game.RoleBySquare{game.NewSquare(0, 7): "k"},
		Moves:                      "b8a8",
		Phase:                      Won,
		SolutionIndex:              &idx,
		UndoUsed:                   true,
	}
	b, err := json.Marshal(st)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"ac": 1, "tc": 5, "catc": 2,
		"f": "k7/pp3Q2/7p/8/8/8/7B/K7 w - - 1 2",
		"prbs": {"a8": "k"},
		"m": "b8a8", "go": 1, "si": 1, "uu": true
	}`, string(b))

	var decoded State
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, st, decoded)
}

func TestConfig(t *testing.T) {
	assert.True(t, DefaultConfig().IsValid())
	assert.False(t, Config{}.IsValid())
	conf := DefaultConfig()
	conf.RestartTurnCost = -1
	assert.False(t, conf.IsValid())
}
