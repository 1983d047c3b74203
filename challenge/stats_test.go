package challenge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(dayLayout, s)
	require.NoError(t, err)
	return d
}

func TestWinTier(t *testing.T) {
	tests := []struct{ turns, want int }{
		{40, 5},
		{5, 1},
		{8, 1},
		{9, 2},
		{16, 2},
		{17, 3},
		{24, 3},
		{25, 4},
		{32, 4},
		{33, 5},
		{0, 1},
		{55, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WinTier(tt.turns, 40, 5), "%d turns", tt.turns)
	}
}

func TestRecordWinDistribution(t *testing.T) {
	var s Stats
	today := day(t, "2024-01-21")
	s.RecordWin(State{TurnsCounter: 9}, 40, 5, today)
	s.RecordWin(State{TurnsCounter: 40}, 40, 5, today)
	s.RecordWin(State{TurnsCounter: 12}, 40, 5, today)

	assert.Equal(t, []int{0, 2, 0, 0, 1}, s.WinsDistribution)
	assert.Equal(t, 3, s.WinCount)
	assert.InDelta(t, 3.0, s.AverageWinTier(), 1e-9)
}

func TestStreaks(t *testing.T) {
	tests := []struct {
		name                      string
		current, max              int
		lastWon, today            string
		wantCurrent, wantMaxValue int
	}{
		{"first win ever", 0, 0, "", "2024-01-21", 1, 1},
		{"won yesterday, no streak yet", 0, 0, "2024-01-20", "2024-01-21", 1, 1},
		{"won two days ago, no streak", 0, 0, "2024-01-19", "2024-01-21", 1, 1},
		{"streak and record grow", 4, 4, "2024-01-20", "2024-01-21", 5, 5},
		{"streak grows below record", 2, 4, "2024-01-20", "2024-01-21", 3, 4},
		{"streak broken", 4, 4, "2024-01-19", "2024-01-21", 1, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Stats{CurrentStreak: tt.current, MaxStreak: tt.max, LastWon: tt.lastWon}
			today := day(t, tt.today)
			s.StartChallenge(today)
			s.RecordWin(State{TurnsCounter: 1}, 40, 5, today)

			assert.Equal(t, tt.wantCurrent, s.CurrentStreak)
			assert.Equal(t, tt.wantMaxValue, s.MaxStreak)
			assert.Equal(t, tt.today, s.LastWon)
			assert.True(t, s.WonToday(today))
			assert.False(t, s.WonToday(today.AddDate(0, 0, 1)))
		})
	}
}

func TestRecordTurn(t *testing.T) {
	var s Stats
	today := day(t, "2024-01-21")

	s.RecordTurn(State{CurrentAttemptTurnsCounter: 1}, today)
	assert.Equal(t, 1, s.GamesCount)
	assert.Equal(t, "2024-01-21", s.LastPlayed)

	s.RecordTurn(State{CurrentAttemptTurnsCounter: 2}, today)
	s.RecordTurn(State{AttemptsCounter: 1, CurrentAttemptTurnsCounter: 1}, today)
	assert.Equal(t, 1, s.GamesCount)
}

func TestAverageWinTierWithoutWins(t *testing.T) {
	var s Stats
	assert.Zero(t, s.AverageWinTier())
	s.WinsDistribution = []int{0, 0, 0}
	assert.Zero(t, s.AverageWinTier())
}
