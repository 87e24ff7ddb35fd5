package stats

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"balancedstats/internal/costtable"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config with optional fields so absent keys keep their
// defaults.
type fileConfig struct {
	DiceSides     *int              `yaml:"diceSides"`
	DiceCount     *int              `yaml:"diceCount"`
	DropLowest    *int              `yaml:"dropLowest"`
	MinimumStat   *int              `yaml:"minimumStat"`
	MaximumStat   *int              `yaml:"maximumStat"`
	Budget        *int              `yaml:"budget"`
	ExtraPoints   *int              `yaml:"extraPoints"`
	BaseStats     []int             `yaml:"baseStats"`
	Stats         []int             `yaml:"stats"`
	Order         []Ability         `yaml:"order"`
	CostTable     []costtable.Range `yaml:"costTable"`
	MaxIterations *int              `yaml:"maxIterations"`
}

// LoadConfig reads a YAML balancer config from path.
func LoadConfig(path string) (Config, error) {
	cleanPath := filepath.Clean(path)
	b, err := os.ReadFile(cleanPath) //nolint:gosec // path is cleaned and validated
	if err != nil {
		return Config{}, err
	}
	return ParseConfig(b)
}

// ParseConfig decodes YAML over DefaultConfig. Unknown keys are rejected.
// When diceCount is set without dropLowest, the drop follows the count.
func ParseConfig(b []byte) (Config, error) {
	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: parse yaml: %w", ErrConfiguration, err)
	}

	cfg := DefaultConfig()
	setInt(&cfg.DiceSides, fc.DiceSides)
	if fc.DiceCount != nil {
		cfg.DiceCount = *fc.DiceCount
		cfg.DropLowest = cfg.DiceCount - MinDiceCount
	}
	setInt(&cfg.DropLowest, fc.DropLowest)
	setInt(&cfg.MinimumStat, fc.MinimumStat)
	setInt(&cfg.MaximumStat, fc.MaximumStat)
	setInt(&cfg.Budget, fc.Budget)
	setInt(&cfg.ExtraPoints, fc.ExtraPoints)
	setInt(&cfg.MaxIterations, fc.MaxIterations)
	cfg.BaseStats = fc.BaseStats
	cfg.Stats = fc.Stats
	cfg.Order = fc.Order

	if fc.CostTable != nil {
		table, err := costtable.New(fc.CostTable...)
		if err != nil {
			return Config{}, fmt.Errorf("%w: cost table: %w", ErrConfiguration, err)
		}
		cfg.Table = table
	}
	return cfg, nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
