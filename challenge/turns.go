package challenge

import "math"

// TurnsState is derived from a State and the turn budget, never stored.
type TurnsState struct {
	AttemptsCounter     int  `json:"attempts_counter"`
	CurrentAttemptTurns int  `json:"current_attempt_turns"`
	TurnsTotal          int  `json:"turns_total"`
	TurnsLeft           int  `json:"turns_left"`
	PercentageLeft      int  `json:"percentage_left"`
	TimeIsUp            bool `json:"time_is_up"`
}

// Turns computes the turns state of st for the given budget.
func Turns(st State, budget int) TurnsState {
	left := budget - st.TurnsCounter
	var pct int
	if budget > 0 {
		pct = int(math.RoundToEven(float64(left*100) / float64(budget)))
	}
	return TurnsState{
		AttemptsCounter:     st.AttemptsCounter,
		CurrentAttemptTurns: st.CurrentAttemptTurnsCounter,
		TurnsTotal:          budget,
		TurnsLeft:           left,
		PercentageLeft:      pct,
		TimeIsUp:            left <= 0,
	}
}
