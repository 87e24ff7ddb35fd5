// Package costtable maps stat values to the point cost of the step that
// arrives at them.
package costtable

import (
	"errors"
	"fmt"
	"sort"
)

// ErrConfiguration is wrapped by every table construction error.
var ErrConfiguration = errors.New("cost table configuration")

// ErrRange is wrapped by lookups outside the table.
var ErrRange = errors.New("value out of range")

// ErrInvalidRange indicates a range whose low end exceeds its high end.
var ErrInvalidRange = fmt.Errorf("%w: range low must not exceed high", ErrConfiguration)

// ErrOverlap indicates a range that overlaps or duplicates an existing one.
var ErrOverlap = fmt.Errorf("%w: ranges overlap", ErrConfiguration)

// ErrOutOfTable indicates a value no range contains.
var ErrOutOfTable = fmt.Errorf("%w: not in cost table", ErrRange)

// Range prices every value in [Lo, Hi].
type Range struct {
	Lo   int `yaml:"lo"`
	Hi   int `yaml:"hi"`
	Cost int `yaml:"cost"`
}

func (r Range) contains(v int) bool {
	return v >= r.Lo && v <= r.Hi
}

// Table is an ordered set of disjoint closed ranges.
type Table struct {
	ranges []Range
}

// New builds a table from ranges given in any order.
func New(ranges ...Range) (*Table, error) {
	t := &Table{}
	for _, r := range ranges {
		if err := t.AddRange(r.Lo, r.Hi, r.Cost); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Default returns the point-buy table: 5e prices up to 15, 4e prices for
// 16 to 18, and 1 point per step below 8.
func Default() *Table {
	return &Table{ranges: []Range{
		{Lo: 3, Hi: 13, Cost: 1},
		{Lo: 14, Hi: 15, Cost: 2},
		{Lo: 16, Hi: 17, Cost: 3},
		{Lo: 18, Hi: 18, Cost: 4},
	}}
}

// AddRange inserts [lo, hi] -> cost, keeping ranges sorted by Lo.
func (t *Table) AddRange(lo, hi, cost int) error {
	if lo > hi {
		return fmt.Errorf("%w: [%d, %d]", ErrInvalidRange, lo, hi)
	}
	i := sort.Search(len(t.ranges), func(i int) bool { return t.ranges[i].Lo > lo })
	if i > 0 && t.ranges[i-1].Hi >= lo {
		return fmt.Errorf("%w: [%d, %d] and [%d, %d]", ErrOverlap, lo, hi, t.ranges[i-1].Lo, t.ranges[i-1].Hi)
	}
	if i < len(t.ranges) && t.ranges[i].Lo <= hi {
		return fmt.Errorf("%w: [%d, %d] and [%d, %d]", ErrOverlap, lo, hi, t.ranges[i].Lo, t.ranges[i].Hi)
	}

	t.ranges = append(t.ranges, Range{})
	copy(t.ranges[i+1:], t.ranges[i:])
	t.ranges[i] = Range{Lo: lo, Hi: hi, Cost: cost}
	return nil
}

// CostAt returns the cost of the range containing v.
func (t *Table) CostAt(v int) (int, error) {
	i := sort.Search(len(t.ranges), func(i int) bool { return t.ranges[i].Hi >= v })
	if i == len(t.ranges) || !t.ranges[i].contains(v) {
		return 0, fmt.Errorf("%w: %d", ErrOutOfTable, v)
	}
	return t.ranges[i].Cost, nil
}

// Bounds returns the lowest and highest value any range covers. ok is false
// for an empty table.
func (t *Table) Bounds() (lo, hi int, ok bool) {
	if len(t.ranges) == 0 {
		return 0, 0, false
	}
	return t.ranges[0].Lo, t.ranges[len(t.ranges)-1].Hi, true
}

// Covers reports whether every integer in [lo, hi] is inside some range.
func (t *Table) Covers(lo, hi int) bool {
	if lo > hi {
		return false
	}
	next := lo
	for _, r := range t.ranges {
		if r.Hi < next {
			continue
		}
		if r.Lo > next {
			return false
		}
		next = r.Hi + 1
		if next > hi {
			return true
		}
	}
	return false
}

// Ranges returns a copy of the ranges in ascending order.
func (t *Table) Ranges() []Range {
	out := make([]Range, len(t.ranges))
	copy(out, t.ranges)
	return out
}
