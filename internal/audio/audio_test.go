package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/tui-asteroids/internal/config"
	"github.com/vovakirdan/tui-asteroids/internal/core"
)

const testRate = beep.SampleRate(44100)

// drain streams s to completion and returns every sample.
func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
	t.Fatal("streamer never finished")
	return nil
}

func TestOscillatorLength(t *testing.T) {
	tests := []struct {
		name string
		wave Wave
	}{
		{"sine", WaveSine},
		{"square", WaveSquare},
		{"saw", WaveSaw},
		{"noise", WaveNoise},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			osc := NewOscillator(440, 100*time.Millisecond, tt.wave, testRate)
			samples := drain(t, osc)
			if want := testRate.N(100 * time.Millisecond); len(samples) != want {
				t.Errorf("got %d samples, expected %d", len(samples), want)
			}
			for i, s := range samples {
				if s[0] < -1 || s[0] > 1 || s[0] != s[1] {
					t.Fatalf("sample %d out of range or not mono: %v", i, s)
				}
			}
			if osc.Err() != nil {
				t.Errorf("unexpected error: %v", osc.Err())
			}
		})
	}
}

func TestSquareWaveValues(t *testing.T) {
	samples := drain(t, NewOscillator(220, 20*time.Millisecond, WaveSquare, testRate))
	for i, s := range samples {
		if s[0] != 1 && s[0] != -1 {
			t.Fatalf("square sample %d = %v, expected ±1", i, s[0])
		}
	}
}

func TestEnvelopeRamps(t *testing.T) {
	d := 50 * time.Millisecond
	osc := NewOscillator(0, d, WaveSquare, testRate) // phase stays 0: constant +1
	samples := drain(t, NewEnvelope(osc, d, 10*time.Millisecond, 10*time.Millisecond, testRate))

	if samples[0][0] != 0 {
		t.Errorf("first sample = %v, expected 0 at start of attack", samples[0][0])
	}
	mid := samples[len(samples)/2][0]
	if mid != 1 {
		t.Errorf("sustain sample = %v, expected 1", mid)
	}
	last := samples[len(samples)-1][0]
	if last <= 0 || last > 0.01 {
		t.Errorf("last sample = %v, expected near zero", last)
	}
}

func TestEffectPerCue(t *testing.T) {
	cues := []core.Cue{
		core.CueFire,
		core.CueAsteroidDestroyed,
		core.CueShipDestroyed,
		core.CueVictory,
		core.CueLoss,
	}
	for _, c := range cues {
		t.Run(c.String(), func(t *testing.T) {
			s := Effect(c, 1, testRate)
			if s == nil {
				t.Fatal("expected a streamer")
			}
			samples := drain(t, s)
			if len(samples) == 0 {
				t.Fatal("effect produced no samples")
			}
			if len(samples) > testRate.N(2*time.Second) {
				t.Errorf("effect is %d samples long, expected a short cue", len(samples))
			}
			peak := 0.0
			for _, v := range samples {
				peak = math.Max(peak, math.Abs(v[0]))
			}
			if peak == 0 {
				t.Error("effect is silent at full volume")
			}
		})
	}

	if Effect(core.CueNone, 1, testRate) != nil {
		t.Error("CueNone should have no effect")
	}
}

func TestEffectZeroVolumeIsSilent(t *testing.T) {
	for _, v := range drain(t, Effect(core.CueShipDestroyed, 0, testRate)) {
		if v[0] != 0 || v[1] != 0 {
			t.Fatal("zero volume should be silent")
		}
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("ASTEROIDS_AUDIO", "false")
	t.Setenv("ASTEROIDS_VOLUME", "80")

	cfg := config.DefaultAsteroidsConfig().Audio
	ApplyEnv(&cfg)
	if cfg.Enabled {
		t.Error("ASTEROIDS_AUDIO=false should disable audio")
	}
	if cfg.Volume != 0.8 {
		t.Errorf("volume = %v, expected 0.8", cfg.Volume)
	}

	t.Setenv("ASTEROIDS_VOLUME", "250")
	ApplyEnv(&cfg)
	if cfg.Volume != 0.8 {
		t.Errorf("out of range volume should be ignored, got %v", cfg.Volume)
	}
}

func TestNewPlayerDisabled(t *testing.T) {
	t.Setenv("ASTEROIDS_AUDIO", "")
	cfg := config.AudioConfig{Enabled: false}
	p := NewPlayer(cfg)
	if _, ok := p.(NopPlayer); !ok {
		t.Errorf("disabled audio should give NopPlayer, got %T", p)
	}
	p.Play(core.CueFire)
	p.Close()
}
