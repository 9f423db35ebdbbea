package engine

import "sort"

// Effect is a timed modifier owned by the session
type Effect string

const (
	EffectBoost Effect = "boost"
	EffectSlow  Effect = "slow"
)

// class groups effects that replace each other
func (e Effect) class() string {
	switch e {
	case EffectBoost, EffectSlow:
		return "speed"
	}
	return string(e)
}

// TimedEffect is one pending effect and the moment it ends
type TimedEffect struct {
	Effect Effect `json:"effect"`
	Expiry int64  `json:"expiry"`
}

// effectTimeline keeps pending effects ordered by expiry
type effectTimeline struct {
	entries []TimedEffect
}

// Schedule adds an effect, replacing any pending effect of the same class
func (t *effectTimeline) Schedule(effect Effect, expiry int64) {
	kept := t.entries[:0]
	for _, e := range t.entries {
		if e.Effect.class() != effect.class() {
			kept = append(kept, e)
		}
	}
	t.entries = append(kept, TimedEffect{Effect: effect, Expiry: expiry})
	sort.SliceStable(t.entries, func(i, j int) bool {
		return t.entries[i].Expiry < t.entries[j].Expiry
	})
}

// Due pops every effect whose expiry is at or before now
func (t *effectTimeline) Due(now int64) []Effect {
	n := 0
	for n < len(t.entries) && t.entries[n].Expiry <= now {
		n++
	}
	if n == 0 {
		return nil
	}
	due := make([]Effect, n)
	for i := 0; i < n; i++ {
		due[i] = t.entries[i].Effect
	}
	t.entries = append(t.entries[:0], t.entries[n:]...)
	return due
}

// Shift moves every expiry by delta, used when resuming from pause
func (t *effectTimeline) Shift(delta int64) {
	for i := range t.entries {
		t.entries[i].Expiry += delta
	}
}

func (t *effectTimeline) Clear() {
	t.entries = t.entries[:0]
}

func (t *effectTimeline) Pending() []TimedEffect {
	out := make([]TimedEffect, len(t.entries))
	copy(out, t.entries)
	return out
}
