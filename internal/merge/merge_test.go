package merge

import (
	"testing"

	"instinct/internal/instinct"
)

func ids(records []instinct.Instinct) []string {
	out := make([]string, 0, len(records))
	for _, inst := range records {
		out = append(out, inst.ID)
	}
	return out
}

func equalIDs(t *testing.T, label string, got []instinct.Instinct, want ...string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("%s = %v, want %v", label, gotIDs, want)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("%s = %v, want %v", label, gotIDs, want)
		}
	}
}

func TestPlanScenarios(t *testing.T) {
	existing := []instinct.Instinct{instinct.New("a", 0.5)}

	t.Run("higher confidence updates", func(t *testing.T) {
		res := Plan([]instinct.Instinct{instinct.New("a", 0.8)}, existing, 0)
		equalIDs(t, "to_update", res.ToUpdate, "a")
		equalIDs(t, "to_add", res.ToAdd)
		equalIDs(t, "duplicates", res.Duplicates)
	})

	t.Run("tie is duplicate", func(t *testing.T) {
		res := Plan([]instinct.Instinct{instinct.New("a", 0.5)}, existing, 0)
		equalIDs(t, "duplicates", res.Duplicates, "a")
		equalIDs(t, "to_update", res.ToUpdate)
	})

	t.Run("lower confidence is duplicate", func(t *testing.T) {
		res := Plan([]instinct.Instinct{instinct.New("a", 0.1)}, existing, 0)
		equalIDs(t, "duplicates", res.Duplicates, "a")
	})

	t.Run("unknown id adds", func(t *testing.T) {
		res := Plan([]instinct.Instinct{instinct.New("b", 0.3)}, existing, 0)
		equalIDs(t, "to_add", res.ToAdd, "b")
	})

	t.Run("default confidence compares as 0.5", func(t *testing.T) {
		res := Plan([]instinct.Instinct{{ID: "a"}}, existing, 0)
		equalIDs(t, "duplicates", res.Duplicates, "a")
		res = Plan([]instinct.Instinct{instinct.New("a", 0.6)}, []instinct.Instinct{{ID: "a"}}, 0)
		equalIDs(t, "to_update", res.ToUpdate, "a")
		res = Plan([]instinct.Instinct{instinct.New("a", 0.3)}, []instinct.Instinct{{ID: "a"}}, 0)
		equalIDs(t, "duplicates", res.Duplicates, "a")
		equalIDs(t, "to_update", res.ToUpdate)
	})
}

func TestPlanThresholdDrops(t *testing.T) {
	existing := []instinct.Instinct{instinct.New("a", 0.2), instinct.New("dup", 0.9)}
	candidates := []instinct.Instinct{
		instinct.New("a", 0.3),   // update below floor
		instinct.New("new", 0.4), // add below floor
		instinct.New("keep", 0.7),
		instinct.New("dup", 0.1), // duplicate below floor stays duplicate
	}

	res := Plan(candidates, existing, 0.5)
	equalIDs(t, "to_add", res.ToAdd, "keep")
	equalIDs(t, "to_update", res.ToUpdate)
	equalIDs(t, "duplicates", res.Duplicates, "dup")
	if res.Empty() {
		t.Fatal("expected non-empty result")
	}
}

func TestPlanNegativeConfidenceBelowDefaultFloor(t *testing.T) {
	res := Plan([]instinct.Instinct{instinct.New("neg", -0.1)}, nil, 0)
	if !res.Empty() {
		t.Fatalf("expected negative confidence to be dropped, got %+v", res)
	}
}

func TestPartitionFirstExistingMatchWins(t *testing.T) {
	existing := []instinct.Instinct{instinct.New("a", 0.3), instinct.New("a", 0.9)}
	res := Partition([]instinct.Instinct{instinct.New("a", 0.5)}, existing)
	equalIDs(t, "to_update", res.ToUpdate, "a")
}

func TestPartitionCompleteAndDisjoint(t *testing.T) {
	existing := []instinct.Instinct{
		instinct.New("a", 0.5),
		instinct.New("b", 0.7),
		{ID: "c"},
	}
	candidates := []instinct.Instinct{
		instinct.New("a", 0.6),
		instinct.New("a", 0.5),
		instinct.New("b", 0.2),
		{ID: "c"},
		instinct.New("d", 0.1),
		instinct.New("e", 1.5),
		instinct.New("d", 0.9),
	}

	res := Partition(candidates, existing)
	total := len(res.ToAdd) + len(res.ToUpdate) + len(res.Duplicates)
	if total != len(candidates) {
		t.Fatalf("partition lost candidates: %d of %d", total, len(candidates))
	}

	// Every candidate index lands in exactly one group; candidates are
	// distinguished by (id, confidence) here.
	type key struct {
		id   string
		conf float64
	}
	seen := make(map[key]int)
	for _, group := range [][]instinct.Instinct{res.ToAdd, res.ToUpdate, res.Duplicates} {
		for _, inst := range group {
			seen[key{inst.ID, inst.EffectiveConfidence()}]++
		}
	}
	for _, cand := range candidates {
		k := key{cand.ID, cand.EffectiveConfidence()}
		if seen[k] != 1 {
			t.Fatalf("candidate %+v appears %d times", k, seen[k])
		}
	}

	equalIDs(t, "to_add", res.ToAdd, "d", "e", "d")
	equalIDs(t, "to_update", res.ToUpdate, "a")
	equalIDs(t, "duplicates", res.Duplicates, "a", "b", "c")
}
