// Package demo runs the balanced-stats demonstration: a default balanced
// set, a set balanced against supplied base stats, the average worth of
// random rolls, and a set balanced with that average as extra points.
package demo

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"slices"

	"balancedstats/internal/platform/config"
	"balancedstats/internal/random"
	"balancedstats/internal/sheet"
	"balancedstats/internal/stats"
	"balancedstats/internal/survey"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Config holds demo command configuration.
type Config struct {
	Seed       int64  `env:"BALANCEDSTATS_SEED"`
	ConfigPath string `env:"BALANCEDSTATS_CONFIG"`
	Runs       int    `env:"BALANCEDSTATS_RUNS"    envDefault:"1000"`
	Workers    int    `env:"BALANCEDSTATS_WORKERS"`
	SheetPath  string `env:"BALANCEDSTATS_SHEET"`
	Lang       string `env:"BALANCEDSTATS_LANG"    envDefault:"en"`
}

// monsterStats are balanced with no budget of their own, the way a creature
// with a fixed stat line would be.
var monsterStats = []int{12, 11, 10, 9, 8, 7}

// ParseConfig loads env defaults and then parses flags over them.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 picks one)")
	fs.StringVar(&cfg.ConfigPath, "config", cfg.ConfigPath, "path to a YAML balancer config")
	fs.IntVar(&cfg.Runs, "runs", cfg.Runs, "unbalanced rolls to average")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "concurrent survey workers (0 = one per CPU)")
	fs.StringVar(&cfg.SheetPath, "sheet", cfg.SheetPath, "write a PDF sheet of the final set to this path")
	fs.StringVar(&cfg.Lang, "lang", cfg.Lang, "language tag used to format numbers")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes the demonstration, writing the report to out and progress to
// errOut.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	logger := log.New(errOut, "", 0)

	tag, err := language.Parse(cfg.Lang)
	if err != nil {
		return fmt.Errorf("parse language %q: %w", cfg.Lang, err)
	}
	p := message.NewPrinter(tag)

	base := stats.DefaultConfig()
	if cfg.ConfigPath != "" {
		base, err = stats.LoadConfig(cfg.ConfigPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}

	seed, err := random.ResolveSeed(cfg.Seed, nil)
	if err != nil {
		return err
	}
	logger.Printf("seed %d", seed)

	simple, err := balanced(base, seed)
	if err != nil {
		return fmt.Errorf("balanced stats: %w", err)
	}
	p.Fprintf(out, "Balanced stats\n")
	writeBalancer(p, out, simple)

	monster := base
	monster.BaseStats = clamped(monsterStats, base.MinimumStat, base.MaximumStat)
	monster.Stats = nil
	monster.Budget = 0
	monster.ExtraPoints = 0
	if !slices.Equal(monster.BaseStats, monsterStats) {
		logger.Printf("base stats %v clamped to [%d, %d]", monsterStats, base.MinimumStat, base.MaximumStat)
	}
	fromBase, err := balanced(monster, seed+1)
	if err != nil {
		return fmt.Errorf("balanced from base stats: %w", err)
	}
	p.Fprintf(out, "\nBalanced from base stats %v\n", monster.BaseStats)
	writeBalancer(p, out, fromBase)

	logger.Printf("rolling %d unbalanced sets", cfg.Runs)
	res, err := survey.Run(ctx, base, survey.Options{Runs: cfg.Runs, Workers: cfg.Workers, Seed: seed + 2})
	if err != nil {
		return fmt.Errorf("survey: %w", err)
	}
	p.Fprintf(out, "\nAverage points left over %d rolls: %.2f (min %d, max %d)\n", len(res.Points), res.Mean, res.Min, res.Max)

	average := base
	average.ExtraPoints += res.ExtraPoints()
	avg, err := balanced(average, seed+3)
	if err != nil {
		return fmt.Errorf("balanced with average points: %w", err)
	}
	p.Fprintf(out, "\nBalanced with %d extra points\n", res.ExtraPoints())
	writeBalancer(p, out, avg)

	if cfg.SheetPath != "" {
		pdf, err := sheet.Generate(sheet.FromBalancer(avg, "Balanced Stats"))
		if err != nil {
			return fmt.Errorf("render sheet: %w", err)
		}
		if err := os.WriteFile(filepath.Clean(cfg.SheetPath), pdf, 0o600); err != nil {
			return fmt.Errorf("write sheet: %w", err)
		}
		logger.Printf("wrote %s", cfg.SheetPath)
	}
	return nil
}

// clamped returns a copy of values pulled into [lo, hi].
func clamped(values []int, lo, hi int) []int {
	out := make([]int, len(values))
	for i, v := range values {
		out[i] = min(max(v, lo), hi)
	}
	return out
}

func balanced(cfg stats.Config, seed int64) (*stats.Balancer, error) {
	b, err := stats.New(cfg, random.New(seed))
	if err != nil {
		return nil, err
	}
	if err := b.CreateBalancedStats(); err != nil {
		return nil, err
	}
	return b, nil
}

func writeBalancer(p *message.Printer, out io.Writer, b *stats.Balancer) {
	p.Fprintf(out, "%s\n", b.String())
	p.Fprintf(out, "sorted %v, lowest %s\n", b.Sorted(true), b.Lowest().Abbrev())
	for _, a := range b.Order() {
		if detail, err := b.Detail(a); err == nil {
			p.Fprintf(out, "  %s\n", detail)
		}
	}
}
