package stats

import (
	"balancedstats/internal/costtable"
)

// Defaults for a 5e point-buy character rolled with 4d6 drop lowest.
const (
	DefaultDiceSides     = 6
	DefaultDiceCount     = 4
	DefaultMinimumStat   = 3
	DefaultMaximumStat   = 18
	DefaultBudget        = 27
	DefaultBaseStat      = 8
	DefaultMaxIterations = 1_000_000

	// MinDiceCount keeps three dice in every sum.
	MinDiceCount = 3
)

// Config describes how a Balancer rolls and prices stats. Start from
// DefaultConfig; nil slices and a nil Table fall back to their defaults.
type Config struct {
	DiceSides   int
	DiceCount   int
	DropLowest  int
	MinimumStat int
	MaximumStat int

	// Budget is the points available when every stat sits at its base value.
	Budget      int
	ExtraPoints int

	// BaseStats is the reference set the counter is measured from.
	BaseStats []int
	// Stats are the starting values; nil means BaseStats.
	Stats []int
	Order []Ability
	Table *costtable.Table

	// MaxIterations caps the moves CreateBalancedStats tries before giving up.
	MaxIterations int
}

// DefaultConfig returns 4d6 drop lowest, stats in [3, 18] and 27 points over
// a base of six 8s.
func DefaultConfig() Config {
	return Config{
		DiceSides:     DefaultDiceSides,
		DiceCount:     DefaultDiceCount,
		DropLowest:    DefaultDiceCount - MinDiceCount,
		MinimumStat:   DefaultMinimumStat,
		MaximumStat:   DefaultMaximumStat,
		Budget:        DefaultBudget,
		MaxIterations: DefaultMaxIterations,
	}
}

func filled(n, v int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = v
	}
	return out
}
