package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/wricardo/snakeysnake/game/engine"
)

const sampleRate = beep.SampleRate(44100)

// soundPlayer turns game events into sound
type soundPlayer interface {
	Play(ev engine.Event)
	Close()
}

type nopPlayer struct{}

func (nopPlayer) Play(engine.Event) {}
func (nopPlayer) Close()            {}

// tone is a short sine beep
type tone struct {
	freq     float64
	duration time.Duration
}

// toneFor picks the beep for an event. Events without a sound return false.
func toneFor(ev engine.Event) (tone, bool) {
	switch ev.Type {
	case engine.EventAte:
		switch ev.Item {
		case engine.BonusItem:
			return tone{1320, 80 * time.Millisecond}, true
		case engine.PenaltyItem:
			return tone{330, 80 * time.Millisecond}, true
		}
		return tone{880, 50 * time.Millisecond}, true
	case engine.EventBoost:
		return tone{1760, 120 * time.Millisecond}, true
	case engine.EventSlow:
		return tone{220, 150 * time.Millisecond}, true
	case engine.EventDeath:
		return tone{110, 300 * time.Millisecond}, true
	case engine.EventNewRecord:
		return tone{1046, 250 * time.Millisecond}, true
	}
	return tone{}, false
}

// beepPlayer plays tones through the system speaker
type beepPlayer struct{}

func newBeepPlayer() (*beepPlayer, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &beepPlayer{}, nil
}

func (p *beepPlayer) Play(ev engine.Event) {
	t, ok := toneFor(ev)
	if !ok {
		return
	}
	sine, err := generators.SineTone(sampleRate, t.freq)
	if err != nil {
		return
	}
	quiet := &effects.Volume{Streamer: beep.Take(sampleRate.N(t.duration), sine), Base: 2, Volume: -2}
	speaker.Play(quiet)
}

func (p *beepPlayer) Close() {
	speaker.Clear()
	speaker.Close()
}
