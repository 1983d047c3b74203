package challenge

// Config holds the product rules of a challenge.
type Config struct {
	TurnBudget            int `json:"turn_budget"`             // turns a player gets per challenge, across attempts
	RestartTurnCost       int `json:"restart_turn_cost"`       // turns charged by a restart
	WinsDistributionTiers int `json:"wins_distribution_tiers"` // number of buckets of the wins histogram
}

func DefaultConfig() Config {
	return Config{
		TurnBudget:            40,
		RestartTurnCost:       1,
		WinsDistributionTiers: 5,
	}
}

func (conf Config) IsValid() bool {
	return conf.TurnBudget >= 1 &&
		conf.RestartTurnCost >= 0 &&
		conf.WinsDistributionTiers >= 1
}
