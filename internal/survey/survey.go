// Package survey measures what random rolls are worth in point-buy terms by
// rolling many independent unbalanced stat sets.
package survey

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"balancedstats/internal/random"
	"balancedstats/internal/stats"

	"golang.org/x/sync/errgroup"
)

// ErrNoRuns indicates a survey with nothing to roll.
var ErrNoRuns = errors.New("survey needs at least one run")

// Options controls a survey.
type Options struct {
	Runs int
	// Workers bounds concurrent runs; zero means one per CPU.
	Workers int
	// Seed seeds run i with Seed+i, so results do not depend on scheduling.
	Seed int64
}

// Result summarises the points left after each unbalanced roll. Negative
// points mean the rolled set would cost more than the budget.
type Result struct {
	Points []int
	Mean   float64
	Min    int
	Max    int
}

// ExtraPoints is the budget top-up that matches the average roll, the
// absolute value of the floored mean.
func (r Result) ExtraPoints() int {
	return int(math.Abs(math.Floor(r.Mean)))
}

// Run rolls opts.Runs unbalanced stat sets, each on its own balancer and
// source, and summarises their points.
func Run(ctx context.Context, cfg stats.Config, opts Options) (Result, error) {
	if opts.Runs < 1 {
		return Result{}, ErrNoRuns
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	points := make([]int, opts.Runs)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < opts.Runs; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			b, err := stats.New(cfg, random.New(opts.Seed+int64(i)))
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			if err := b.CreateUnbalancedStats(); err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			points[i] = b.PointsLeft()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	return summarise(points), nil
}

func summarise(points []int) Result {
	res := Result{Points: points, Min: points[0], Max: points[0]}
	total := 0
	for _, p := range points {
		total += p
		res.Min = min(res.Min, p)
		res.Max = max(res.Max, p)
	}
	res.Mean = float64(total) / float64(len(points))
	return res
}
