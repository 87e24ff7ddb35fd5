package demo

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("balancedstats", flag.ContinueOnError)

	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Runs != 1000 {
		t.Fatalf("expected 1000 runs, got %d", cfg.Runs)
	}
	if cfg.Seed != 0 || cfg.ConfigPath != "" || cfg.SheetPath != "" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Lang != "en" {
		t.Fatalf("expected lang en, got %q", cfg.Lang)
	}
}

func TestParseConfigFlagsOverrideEnv(t *testing.T) {
	t.Setenv("BALANCEDSTATS_SEED", "9")
	t.Setenv("BALANCEDSTATS_RUNS", "20")
	fs := flag.NewFlagSet("balancedstats", flag.ContinueOnError)

	cfg, err := ParseConfig(fs, []string{"-runs", "30", "-sheet", "out.pdf"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Seed != 9 {
		t.Fatalf("expected seed 9 from env, got %d", cfg.Seed)
	}
	if cfg.Runs != 30 {
		t.Fatalf("expected runs 30 from flag, got %d", cfg.Runs)
	}
	if cfg.SheetPath != "out.pdf" {
		t.Fatalf("expected sheet path from flag, got %q", cfg.SheetPath)
	}
}

func TestParseConfigBadEnv(t *testing.T) {
	t.Setenv("BALANCEDSTATS_RUNS", "lots")
	fs := flag.NewFlagSet("balancedstats", flag.ContinueOnError)

	if _, err := ParseConfig(fs, nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestRunWritesReportAndSheet(t *testing.T) {
	tmpDir := t.TempDir()
	sheetPath := filepath.Join(tmpDir, "sheet.pdf")

	var out, errOut bytes.Buffer
	err := Run(context.Background(), Config{
		Seed:      7,
		Runs:      1000,
		Workers:   2,
		SheetPath: sheetPath,
		Lang:      "en",
	}, &out, &errOut)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	report := out.String()
	for _, want := range []string{
		"Balanced stats\n",
		"Balanced from base stats [12 11 10 9 8 7]",
		"Average points left over 1,000 rolls",
		"extra points",
		"STR ",
		"lowest ",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
	if !strings.Contains(errOut.String(), "seed 7") {
		t.Errorf("expected seed in progress output, got %q", errOut.String())
	}

	b, err := os.ReadFile(sheetPath)
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("%PDF")) {
		t.Error("sheet is not a PDF (missing %PDF header)")
	}
}

func TestRunIsReproducible(t *testing.T) {
	cfg := Config{Seed: 3, Runs: 50, Workers: 4, Lang: "en"}

	var a, b bytes.Buffer
	if err := Run(context.Background(), cfg, &a, nil); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if err := Run(context.Background(), cfg, &b, nil); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if a.String() != b.String() {
		t.Fatalf("same seed produced different reports:\n%s\n---\n%s", a.String(), b.String())
	}
}

func TestRunUsesConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "stats.yaml")
	doc := "order: [MIGHT, AGILITY, VIGOR, WITS, INSIGHT, PRESENCE]\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil { //nolint:gosec // test file permissions are acceptable
		t.Fatalf("write config: %v", err)
	}

	var out bytes.Buffer
	if err := Run(context.Background(), Config{Seed: 1, Runs: 10, ConfigPath: path, Lang: "en"}, &out, nil); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !strings.Contains(out.String(), "MIG ") {
		t.Fatalf("expected custom abilities in report:\n%s", out.String())
	}
}

func TestRunClampsBaseStatsIntoConfiguredBounds(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "stats.yaml")
	if err := os.WriteFile(path, []byte("minimumStat: 8\n"), 0o600); err != nil { //nolint:gosec // test file permissions are acceptable
		t.Fatalf("write config: %v", err)
	}

	var out, errOut bytes.Buffer
	if err := Run(context.Background(), Config{Seed: 1, Runs: 10, ConfigPath: path, Lang: "en"}, &out, &errOut); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !strings.Contains(out.String(), "Balanced from base stats [12 11 10 9 8 8]") {
		t.Fatalf("expected clamped base stats in report:\n%s", out.String())
	}
	if !strings.Contains(errOut.String(), "clamped to [8, 18]") {
		t.Errorf("expected clamp note in progress output, got %q", errOut.String())
	}
}

func TestClamped(t *testing.T) {
	got := clamped([]int{12, 11, 10, 9, 8, 7}, 8, 10)
	want := []int{10, 10, 10, 9, 8, 8}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("clamped = %v, want %v", got, want)
		}
	}
	if monsterStats[0] != 12 || monsterStats[5] != 7 {
		t.Fatalf("clamped modified its input: %v", monsterStats)
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	tcs := []struct {
		name string
		cfg  Config
	}{
		{name: "missing config file", cfg: Config{Seed: 1, Runs: 10, ConfigPath: "non_existent_file.yaml", Lang: "en"}},
		{name: "bad language", cfg: Config{Seed: 1, Runs: 10, Lang: "not a language!"}},
		{name: "no runs", cfg: Config{Seed: 1, Runs: 0, Lang: "en"}},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			if err := Run(context.Background(), tc.cfg, nil, nil); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
