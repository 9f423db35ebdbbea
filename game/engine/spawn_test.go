package engine

import (
	"math/rand"
	"testing"
)

// scriptedRandom replays fixed draws and returns zero once exhausted
type scriptedRandom struct {
	ints   []int
	floats []float64
}

func (r *scriptedRandom) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *scriptedRandom) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func TestChooseOutcome(t *testing.T) {
	tests := []struct {
		name  string
		draws []float64
		want  ItemKind
	}{
		{"regular", []float64{0.1}, RegularApple},
		{"regular edge", []float64{0.6999}, RegularApple},
		{"bonus", []float64{0.7, 0.2}, BonusItem},
		{"penalty", []float64{0.95, 0.5}, PenaltyItem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := &scriptedRandom{floats: tt.draws}
			p := NewSpawnPolicy(DefaultConfig(), rng)
			if got := p.ChooseOutcome(); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
			if len(rng.floats) != 0 {
				t.Errorf("Expected all draws consumed, %d left", len(rng.floats))
			}
		})
	}
}

func TestChooseOutcomeDistribution(t *testing.T) {
	p := NewSpawnPolicy(DefaultConfig(), rand.New(rand.NewSource(3)))
	counts := map[ItemKind]int{}
	const n = 20000
	for i := 0; i < n; i++ {
		counts[p.ChooseOutcome()]++
	}

	check := func(kind ItemKind, want float64) {
		got := float64(counts[kind]) / n
		if got < want-0.02 || got > want+0.02 {
			t.Errorf("Expected %q share near %.2f, got %.3f", kind, want, got)
		}
	}
	check(RegularApple, 0.70)
	check(BonusItem, 0.15)
	check(PenaltyItem, 0.15)
}

func TestRollEffect(t *testing.T) {
	p := NewSpawnPolicy(DefaultConfig(), &scriptedRandom{floats: []float64{0.29, 0.3}})
	if !p.RollEffect() {
		t.Error("Expected draw below effect chance to apply")
	}
	if p.RollEffect() {
		t.Error("Expected draw at effect chance not to apply")
	}
}
