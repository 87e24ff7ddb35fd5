// Package stats rolls ability scores and balances them against a point-buy
// budget.
//
// A Balancer keeps a points counter in lockstep with its stats: the counter
// always equals the budget plus the cost of moving every base stat to its
// current value. Raising a stat spends points, lowering one refunds them, and
// the price of each step comes from an interval cost table, so moving 12 to 14
// costs 1+2 rather than twice a flat rate.
package stats

import (
	"errors"
	"fmt"
	"sort"

	"balancedstats/internal/costtable"
	"balancedstats/internal/dice"
)

// ErrConfiguration is wrapped by every construction error.
var ErrConfiguration = errors.New("stats configuration")

// ErrOutOfRange indicates a point cost asked about a value outside the table.
var ErrOutOfRange = fmt.Errorf("stat %w", costtable.ErrRange)

// ErrUnknownAbility indicates an ability that is not part of the stat order.
var ErrUnknownAbility = errors.New("unknown ability")

// ErrLengthMismatch indicates a stat list that does not match the order.
var ErrLengthMismatch = errors.New("stat list length does not match order")

// ErrNotConverged indicates balancing gave up before reaching zero points.
var ErrNotConverged = errors.New("stats did not balance")

// Balancer owns six stats, their points counter, a cost table and a roller.
// It is not safe for concurrent use.
type Balancer struct {
	roller        *dice.Roller
	table         *costtable.Table
	order         []Ability
	index         map[Ability]int
	base          []int
	stats         []int
	rolls         []dice.Result
	minimum       int
	maximum       int
	budget        int
	points        int
	maxIterations int
	state         State
}

// New validates cfg and returns a balancer drawing randomness from src.
func New(cfg Config, src dice.Source) (*Balancer, error) {
	if cfg.DiceCount < MinDiceCount {
		return nil, fmt.Errorf("%w: dice count %d is below %d", ErrConfiguration, cfg.DiceCount, MinDiceCount)
	}
	roller, err := dice.NewRoller(cfg.DiceSides, cfg.DiceCount, cfg.DropLowest, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	table := cfg.Table
	if table == nil {
		table = costtable.Default()
	}
	lo, hi, ok := table.Bounds()
	if !ok {
		return nil, fmt.Errorf("%w: cost table is empty", ErrConfiguration)
	}
	if cfg.MaximumStat < cfg.MinimumStat || cfg.MinimumStat < lo || cfg.MaximumStat > hi {
		return nil, fmt.Errorf("%w: stat bounds [%d, %d] must be ordered and within [%d, %d]",
			ErrConfiguration, cfg.MinimumStat, cfg.MaximumStat, lo, hi)
	}
	if !table.Covers(cfg.MinimumStat, cfg.MaximumStat) {
		return nil, fmt.Errorf("%w: cost table has gaps in [%d, %d]", ErrConfiguration, cfg.MinimumStat, cfg.MaximumStat)
	}
	kept := cfg.DiceCount - cfg.DropLowest
	if cfg.MaximumStat < kept || cfg.MinimumStat > kept*cfg.DiceSides {
		return nil, fmt.Errorf("%w: %dd%d keeping %d cannot roll into [%d, %d]",
			ErrConfiguration, cfg.DiceCount, cfg.DiceSides, kept, cfg.MinimumStat, cfg.MaximumStat)
	}
	if cfg.MaxIterations < 1 {
		return nil, fmt.Errorf("%w: max iterations must be positive", ErrConfiguration)
	}

	order := cfg.Order
	if order == nil {
		order = DefaultOrder()
	}
	if len(order) != NumAbilities {
		return nil, fmt.Errorf("%w: order has %d abilities, want %d", ErrConfiguration, len(order), NumAbilities)
	}
	index := make(map[Ability]int, len(order))
	for i, a := range order {
		if a == "" {
			return nil, fmt.Errorf("%w: ability %d has no name", ErrConfiguration, i)
		}
		if _, dup := index[a]; dup {
			return nil, fmt.Errorf("%w: ability %s listed twice", ErrConfiguration, a)
		}
		index[a] = i
	}

	base := cfg.BaseStats
	if base == nil {
		base = filled(len(order), DefaultBaseStat)
	}
	current := cfg.Stats
	if current == nil {
		current = base
	}
	for _, list := range []struct {
		name   string
		values []int
	}{{"base stats", base}, {"stats", current}} {
		if len(list.values) != len(order) {
			return nil, fmt.Errorf("%w: %s has %d values, want %d", ErrConfiguration, list.name, len(list.values), len(order))
		}
		for i, v := range list.values {
			if v < cfg.MinimumStat || v > cfg.MaximumStat {
				return nil, fmt.Errorf("%w: %s %s = %d outside [%d, %d]",
					ErrConfiguration, list.name, order[i], v, cfg.MinimumStat, cfg.MaximumStat)
			}
		}
	}

	b := &Balancer{
		roller:        roller,
		table:         table,
		order:         append([]Ability(nil), order...),
		index:         index,
		base:          append([]int(nil), base...),
		stats:         append([]int(nil), current...),
		minimum:       cfg.MinimumStat,
		maximum:       cfg.MaximumStat,
		budget:        cfg.Budget + cfg.ExtraPoints,
		maxIterations: cfg.MaxIterations,
		state:         StateUninitialized,
	}
	points, err := b.pointsFor(b.stats)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	b.points = points
	return b, nil
}

// PointCost returns the signed points gained by moving a stat from start to
// end: negative when raising it, positive when lowering it. Each step is
// priced by the value it arrives at.
func (b *Balancer) PointCost(start, end int) (int, error) {
	lo, hi, _ := b.table.Bounds()
	if min(start, end) < lo || max(start, end) > hi {
		return 0, fmt.Errorf("%w: [%d, %d] not within [%d, %d]", ErrOutOfRange, start, end, lo, hi)
	}

	cost := 0
	for v := min(start, end) + 1; v <= max(start, end); v++ {
		c, err := b.table.CostAt(v)
		if err != nil {
			return 0, err
		}
		cost += c
	}
	if start < end {
		cost = -cost
	}
	return cost, nil
}

// pointsFor returns the counter value the given stats would carry.
func (b *Balancer) pointsFor(values []int) (int, error) {
	points := b.budget
	for i, v := range values {
		c, err := b.PointCost(b.base[i], v)
		if err != nil {
			return 0, err
		}
		points += c
	}
	return points, nil
}

// CreateUnbalancedStats replaces every stat with a fresh culled roll and
// recomputes the points counter against the base stats.
func (b *Balancer) CreateUnbalancedStats() error {
	rolls := make([]dice.Result, len(b.order))
	values := make([]int, len(b.order))
	for i := range b.order {
		res, err := b.roller.Roll(b.minimum, b.maximum, b.roller.Drop())
		if err != nil {
			return err
		}
		rolls[i] = res
		values[i] = res.Total
	}

	points, err := b.pointsFor(values)
	if err != nil {
		return err
	}
	b.stats = values
	b.rolls = rolls
	b.points = points
	b.state = StateUnbalanced
	return nil
}

// CreateBalancedStats rolls a new set, then nudges random stats one step at
// a time until no points remain. Termination is probabilistic; after
// MaxIterations picks it returns ErrNotConverged and leaves the stats
// unbalanced with a consistent counter.
func (b *Balancer) CreateBalancedStats() error {
	if err := b.CreateUnbalancedStats(); err != nil {
		return err
	}

	for moves := 0; b.points != 0; moves++ {
		if moves >= b.maxIterations {
			return fmt.Errorf("%w: %d points left after %d moves", ErrNotConverged, b.points, moves)
		}

		i := b.roller.Intn(len(b.stats))
		v := b.stats[i]
		if b.points > 0 {
			if v >= b.maximum {
				continue
			}
			cost, err := b.table.CostAt(v + 1)
			if err != nil {
				return err
			}
			b.stats[i] = v + 1
			b.points -= cost
		} else {
			if v <= b.minimum {
				continue
			}
			refund, err := b.table.CostAt(v)
			if err != nil {
				return err
			}
			b.stats[i] = v - 1
			b.points += refund
		}
	}

	b.state = StateBalanced
	return nil
}

// SetStat moves a to value and settles the points difference. It returns
// false without touching anything when value is outside the stat bounds.
func (b *Balancer) SetStat(a Ability, value int) (bool, error) {
	i, ok := b.index[a]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownAbility, a)
	}
	if value < b.minimum || value > b.maximum {
		return false, nil
	}

	cost, err := b.PointCost(b.stats[i], value)
	if err != nil {
		return false, err
	}
	b.points += cost
	b.stats[i] = value
	b.settle()
	return true, nil
}

// RevertStatsList sets each stat to the value at the same position,
// skipping out-of-bounds values. It returns how many stats were set.
func (b *Balancer) RevertStatsList(values []int) (int, error) {
	if len(values) != len(b.order) {
		return 0, fmt.Errorf("%w: got %d values, want %d", ErrLengthMismatch, len(values), len(b.order))
	}

	applied := 0
	for i, a := range b.order {
		ok, err := b.SetStat(a, values[i])
		if err != nil {
			return applied, err
		}
		if ok {
			applied++
		}
	}
	return applied, nil
}

// RevertStats sets every stat to value.
func (b *Balancer) RevertStats(value int) (int, error) {
	return b.RevertStatsList(filled(len(b.order), value))
}

func (b *Balancer) settle() {
	if b.points == 0 {
		b.state = StateBalanced
		return
	}
	b.state = StateUnbalanced
}

// Value returns the current value of a.
func (b *Balancer) Value(a Ability) (int, error) {
	i, ok := b.index[a]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownAbility, a)
	}
	return b.stats[i], nil
}

// Bonus returns the ability modifier, floor((value - 10) / 2).
func (b *Balancer) Bonus(a Ability) (int, error) {
	v, err := b.Value(a)
	if err != nil {
		return 0, err
	}
	return Modifier(v), nil
}

// Modifier returns floor((value - 10) / 2).
func Modifier(value int) int {
	d := value - 10
	q := d / 2
	if d < 0 && d%2 != 0 {
		q--
	}
	return q
}

// Lowest returns the ability with the smallest value, first in order on ties.
func (b *Balancer) Lowest() Ability {
	lowest := 0
	for i, v := range b.stats {
		if v < b.stats[lowest] {
			lowest = i
		}
	}
	return b.order[lowest]
}

// Stats returns a copy of the current values in order.
func (b *Balancer) Stats() []int {
	return append([]int(nil), b.stats...)
}

// Sorted returns a sorted copy of the current values.
func (b *Balancer) Sorted(descending bool) []int {
	out := b.Stats()
	if descending {
		sort.Sort(sort.Reverse(sort.IntSlice(out)))
	} else {
		sort.Ints(out)
	}
	return out
}

// Order returns a copy of the ability order.
func (b *Balancer) Order() []Ability {
	return append([]Ability(nil), b.order...)
}

// Rolls returns a copy of the dice behind the last unbalanced set, nil
// before the first roll.
func (b *Balancer) Rolls() []dice.Result {
	if b.rolls == nil {
		return nil
	}
	out := make([]dice.Result, len(b.rolls))
	for i, r := range b.rolls {
		out[i] = r
		out[i].Dice = append([]int(nil), r.Dice...)
		out[i].Kept = out[i].Dice[len(r.Dropped):]
		out[i].Dropped = out[i].Dice[:len(r.Dropped):len(r.Dropped)]
	}
	return out
}

// CostRanges returns a copy of the cost table's ranges.
func (b *Balancer) CostRanges() []costtable.Range {
	return b.table.Ranges()
}

// PointsLeft returns the points counter.
func (b *Balancer) PointsLeft() int { return b.points }

// State returns the lifecycle state.
func (b *Balancer) State() State { return b.state }

// Bounds returns the legal stat range.
func (b *Balancer) Bounds() (minimum, maximum int) { return b.minimum, b.maximum }
