package sheet

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"balancedstats/internal/stats"
)

func TestGenerateEmpty(t *testing.T) {
	b, err := Generate(Character{Title: "Nobody"})
	if !errors.Is(err, ErrNoRows) {
		t.Fatalf("expected ErrNoRows, got %v", err)
	}
	if b != nil {
		t.Error("expected no PDF for a sheet with no rows")
	}
}

func TestGenerateBalancedSheet(t *testing.T) {
	bal, err := stats.New(stats.DefaultConfig(), rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("stats.New: %v", err)
	}
	if err := bal.CreateBalancedStats(); err != nil {
		t.Fatalf("CreateBalancedStats: %v", err)
	}

	ch := FromBalancer(bal, "Test Hero")
	if len(ch.Rows) != stats.NumAbilities {
		t.Fatalf("expected %d rows, got %d", stats.NumAbilities, len(ch.Rows))
	}
	if len(ch.Costs) != 4 {
		t.Fatalf("expected 4 cost ranges, got %d", len(ch.Costs))
	}
	if ch.State != stats.StateBalanced || ch.PointsLeft != 0 {
		t.Fatalf("unexpected state %s with %d points", ch.State, ch.PointsLeft)
	}

	b, err := Generate(ch)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(b) < 100 {
		t.Errorf("PDF too short: %d bytes", len(b))
	}
	if !bytes.HasPrefix(b, []byte("%PDF")) {
		t.Error("output is not a PDF (missing %PDF header)")
	}
}

func TestFromBalancerAttachesDiceOnlyForRolledScores(t *testing.T) {
	bal, err := stats.New(stats.DefaultConfig(), rand.New(rand.NewSource(8)))
	if err != nil {
		t.Fatalf("stats.New: %v", err)
	}

	ch := FromBalancer(bal, "")
	for _, r := range ch.Rows {
		if len(r.Kept) != 0 {
			t.Fatalf("expected no dice before rolling, got %v for %s", r.Kept, r.Ability)
		}
	}

	if err := bal.CreateUnbalancedStats(); err != nil {
		t.Fatalf("CreateUnbalancedStats: %v", err)
	}
	ch = FromBalancer(bal, "")
	for _, r := range ch.Rows {
		if len(r.Kept) != 3 || len(r.Dropped) != 1 {
			t.Fatalf("expected 3 kept and 1 dropped for %s, got %v / %v", r.Ability, r.Kept, r.Dropped)
		}
		sum := 0
		for _, d := range r.Kept {
			sum += d
		}
		if sum != r.Score {
			t.Fatalf("kept dice %v do not sum to %d", r.Kept, r.Score)
		}
	}

	rolled := bal.Rolls()[0].Total
	if ok, err := bal.SetStat(stats.Strength, 3); err != nil || !ok {
		t.Fatalf("SetStat = %v, %v", ok, err)
	}
	ch = FromBalancer(bal, "")
	if ch.Rows[0].Score != 3 {
		t.Fatalf("expected Strength 3, got %d", ch.Rows[0].Score)
	}
	if rolled != 3 && len(ch.Rows[0].Kept) != 0 {
		t.Fatalf("dice attached to a score they did not produce: %v", ch.Rows[0].Kept)
	}
}

func TestDiceLabel(t *testing.T) {
	got := diceLabel([]int{3, 5, 6}, []int{1})
	if got != "rolled (1) 3 5 6" {
		t.Fatalf("diceLabel = %q", got)
	}
}
