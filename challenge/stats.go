package challenge

import (
	"math"
	"time"

	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/stat"
)

const dayLayout = "2006-01-02"

// Day formats t as a calendar day.
func Day(t time.Time) string { return t.Format(dayLayout) }

// Stats are the long-lived statistics of a player, across challenges.
type Stats struct {
	GamesCount    int    `json:"gc"`
	WinCount      int    `json:"wc"`
	CurrentStreak int    `json:"cs"`
	MaxStreak     int    `json:"ms"`
	LastPlayed    string `json:"lp,omitempty"` // day, see Day
	LastWon       string `json:"lw,omitempty"`

	// WinsDistribution[i] counts the wins of tier i+1. Tier 1 is the fastest.
	WinsDistribution []int `json:"wd,omitempty"`
}

// StartChallenge is called when the player meets a new challenge. The streak
// is broken unless the previous challenge was won.
func (s *Stats) StartChallenge(today time.Time) {
	if s.LastWon != Day(today.AddDate(0, 0, -1)) {
		s.CurrentStreak = 0
	}
}

// RecordTurn counts the challenge as played on the first turn of its first
// attempt.
func (s *Stats) RecordTurn(st State, today time.Time) {
	if st.AttemptsCounter == 0 && st.CurrentAttemptTurnsCounter == 1 {
		s.GamesCount++
		s.LastPlayed = Day(today)
	}
}

// RecordWin updates the stats of a player who just won with st.
func (s *Stats) RecordWin(st State, budget, tiers int, today time.Time) {
	s.WinCount++
	s.CurrentStreak++
	if s.CurrentStreak > s.MaxStreak {
		s.MaxStreak = s.CurrentStreak
	}
	s.LastWon = Day(today)

	if tiers < 1 {
		return
	}
	for len(s.WinsDistribution) < tiers {
		s.WinsDistribution = append(s.WinsDistribution, 0)
	}
	s.WinsDistribution[WinTier(st.TurnsCounter, budget, tiers)-1]++
}

// WinTier returns in which of the tiers a win after turns falls, 1 being
// the fastest.
func WinTier(turns, budget, tiers int) int {
	if budget <= 0 {
		return tiers
	}
	tier := int(math32.Ceil(float32(turns*tiers) / float32(budget)))
	switch {
	case tier < 1:
		return 1
	case tier > tiers:
		return tiers
	}
	return tier
}

func (s *Stats) WonToday(today time.Time) bool { return s.LastWon != "" && s.LastWon == Day(today) }

// AverageWinTier is the mean tier of all wins, 0 without any.
func (s *Stats) AverageWinTier() float64 {
	if len(s.WinsDistribution) == 0 {
		return 0
	}
	tiers := make([]float64, len(s.WinsDistribution))
	weights := make([]float64, len(s.WinsDistribution))
	for i, n := range s.WinsDistribution {
		tiers[i] = float64(i + 1)
		weights[i] = float64(n)
	}
	mean := stat.Mean(tiers, weights)
	if math.IsNaN(mean) {
		return 0
	}
	return mean
}
