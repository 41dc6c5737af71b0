package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/tui-asteroids/internal/core"
)

// Effect timings.
const (
	fireDuration    = 70 * time.Millisecond
	blastDuration   = 220 * time.Millisecond
	crashDuration   = 600 * time.Millisecond
	chimeNote       = 140 * time.Millisecond
	lossDuration    = 900 * time.Millisecond
	shortAttack     = 3 * time.Millisecond
	defaultRelease  = 40 * time.Millisecond
	longRelease     = 300 * time.Millisecond
	defaultRate     = 44100
	speakerBufferMS = 100
)

// cueGain balances the effects against each other.
var cueGain = map[core.Cue]float64{
	core.CueFire:              0.35,
	core.CueAsteroidDestroyed: 0.6,
	core.CueShipDestroyed:     0.8,
	core.CueVictory:           0.6,
	core.CueLoss:              0.7,
}

// Effect returns a fresh streamer for a cue at the given master volume, or
// nil for cues without a sound.
func Effect(c core.Cue, volume float64, rate beep.SampleRate) beep.Streamer {
	var s beep.Streamer
	switch c {
	case core.CueFire:
		// Short high blip
		osc := NewSweep(1200, 700, fireDuration, WaveSquare, rate)
		s = NewEnvelope(osc, fireDuration, shortAttack, defaultRelease, rate)

	case core.CueAsteroidDestroyed:
		// Noise burst over a low thump
		noise := NewEnvelope(NewOscillator(0, blastDuration, WaveNoise, rate), blastDuration, shortAttack, blastDuration-shortAttack, rate)
		thump := NewEnvelope(NewSweep(140, 50, blastDuration, WaveSine, rate), blastDuration, shortAttack, blastDuration/2, rate)
		s = beep.Mix(newVolume(noise, 0.6), newVolume(thump, 0.5))

	case core.CueShipDestroyed:
		// Descending saw
		osc := NewSweep(600, 60, crashDuration, WaveSaw, rate)
		s = NewEnvelope(osc, crashDuration, shortAttack, longRelease, rate)

	case core.CueVictory:
		// Two-note rising chime (E6 then A6)
		n1 := NewEnvelope(NewOscillator(1318.51, chimeNote, WaveSine, rate), chimeNote, shortAttack, defaultRelease, rate)
		n2 := NewEnvelope(NewOscillator(1760.0, chimeNote*2, WaveSine, rate), chimeNote*2, shortAttack, longRelease, rate)
		s = beep.Seq(n1, n2)

	case core.CueLoss:
		// Low falling drone
		osc := NewSweep(180, 90, lossDuration, WaveSaw, rate)
		s = NewEnvelope(osc, lossDuration, 20*time.Millisecond, longRelease, rate)

	default:
		return nil
	}
	return newVolume(s, volume*cueGain[c])
}
