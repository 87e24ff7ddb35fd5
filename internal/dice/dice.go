// Package dice implements the culled drop-lowest roll used to generate
// ability scores.
package dice

import (
	"errors"
	"fmt"
	"sort"
)

// ErrConfiguration is wrapped by every construction-time error.
var ErrConfiguration = errors.New("dice configuration")

// ErrInvalidSides indicates a die with fewer than one side.
var ErrInvalidSides = fmt.Errorf("%w: dice must have at least one side", ErrConfiguration)

// ErrInvalidCount indicates the drop count leaves no dice to sum.
var ErrInvalidCount = fmt.Errorf("%w: dice count must exceed the dropped count", ErrConfiguration)

// ErrMissingSource indicates a roller was built without a random source.
var ErrMissingSource = fmt.Errorf("%w: random source is required", ErrConfiguration)

// ErrUnreachableRange indicates no combination of kept dice can produce a
// sum inside the acceptance range.
var ErrUnreachableRange = errors.New("acceptance range cannot be rolled")

// Source is the random source a Roller draws from. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// Result captures one accepted roll.
type Result struct {
	// Dice holds every die of the accepted roll, ascending.
	Dice    []int
	Dropped []int
	Kept    []int
	Total   int
	// Rerolls counts the rolls culled before this one was accepted.
	Rerolls int
}

// Roller rolls a fixed number of equal-sided dice from its own source.
type Roller struct {
	sides int
	count int
	drop  int
	src   Source
}

// NewRoller returns a roller for count dice of the given sides that drops
// the drop lowest by default.
func NewRoller(sides, count, drop int, src Source) (*Roller, error) {
	if sides < 1 {
		return nil, ErrInvalidSides
	}
	if drop < 0 || count < drop+1 {
		return nil, ErrInvalidCount
	}
	if src == nil {
		return nil, ErrMissingSource
	}
	return &Roller{sides: sides, count: count, drop: drop, src: src}, nil
}

func (r *Roller) Sides() int { return r.sides }
func (r *Roller) Count() int { return r.count }
func (r *Roller) Drop() int  { return r.drop }

// Intn draws from the roller's source.
func (r *Roller) Intn(n int) int {
	return r.src.Intn(n)
}

// RollSumWithCulling rolls the dice, discards the drop lowest and sums the
// rest, rerolling the whole set until the sum lands in [minAccept, maxAccept].
func (r *Roller) RollSumWithCulling(minAccept, maxAccept, drop int) (int, error) {
	res, err := r.Roll(minAccept, maxAccept, drop)
	if err != nil {
		return 0, err
	}
	return res.Total, nil
}

// Roll is RollSumWithCulling with the accepted dice attached.
func (r *Roller) Roll(minAccept, maxAccept, drop int) (Result, error) {
	if drop < 0 || r.count < drop+1 {
		return Result{}, ErrInvalidCount
	}
	kept := r.count - drop
	if minAccept > maxAccept || maxAccept < kept || minAccept > kept*r.sides {
		return Result{}, fmt.Errorf("%w: [%d, %d] with %d kept d%d", ErrUnreachableRange, minAccept, maxAccept, kept, r.sides)
	}

	rerolls := 0
	for {
		values := make([]int, r.count)
		for i := range values {
			values[i] = rollDie(r.src, r.sides)
		}
		sort.Ints(values)

		total := 0
		for _, v := range values[drop:] {
			total += v
		}
		if total >= minAccept && total <= maxAccept {
			return Result{
				Dice:    values,
				Dropped: values[:drop],
				Kept:    values[drop:],
				Total:   total,
				Rerolls: rerolls,
			}, nil
		}
		rerolls++
	}
}

// rollDie rolls a single die with the provided number of sides.
func rollDie(src Source, sides int) int {
	return src.Intn(sides) + 1
}
