package audio

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-asteroids/internal/config"
	"github.com/vovakirdan/tui-asteroids/internal/core"
)

// Player receives cues from the platform.
type Player interface {
	Play(c core.Cue)
	Close()
}

// NopPlayer discards every cue. Used for tests, SSH sessions and when the
// audio device is unavailable.
type NopPlayer struct{}

func (NopPlayer) Play(core.Cue) {}
func (NopPlayer) Close()        {}

// SpeakerPlayer mixes cue effects into the local audio device.
type SpeakerPlayer struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	rate   beep.SampleRate
	volume float64
	closed bool
}

// speakerOnce guards speaker.Init, which may only run once per process.
var (
	speakerOnce sync.Once
	speakerErr  error
)

// NewSpeakerPlayer opens the audio device and starts the mixer.
func NewSpeakerPlayer(cfg config.AudioConfig) (*SpeakerPlayer, error) {
	rate := beep.SampleRate(cfg.SampleRate)
	if rate <= 0 {
		rate = defaultRate
	}

	speakerOnce.Do(func() {
		speakerErr = speaker.Init(rate, rate.N(speakerBufferMS*time.Millisecond))
	})
	if speakerErr != nil {
		return nil, fmt.Errorf("audio: init speaker: %w", speakerErr)
	}

	p := &SpeakerPlayer{
		mixer:  &beep.Mixer{},
		rate:   rate,
		volume: cfg.Volume,
	}
	speaker.Play(p.mixer)
	return p, nil
}

// Play queues the effect for c. Unknown cues are ignored.
func (p *SpeakerPlayer) Play(c core.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}

	s := Effect(c, p.volume, p.rate)
	if s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close silences the mixer. The device itself stays open for the process.
func (p *SpeakerPlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
}

// NewPlayer returns a speaker player when audio is enabled and the device
// opens, otherwise a NopPlayer. Device failures are logged, not returned.
func NewPlayer(cfg config.AudioConfig) Player {
	ApplyEnv(&cfg)
	if !cfg.Enabled {
		return NopPlayer{}
	}
	p, err := NewSpeakerPlayer(cfg)
	if err != nil {
		log.Warn("audio disabled", "err", err)
		return NopPlayer{}
	}
	return p
}

// ApplyEnv overrides audio settings from the environment:
// ASTEROIDS_AUDIO (bool) and ASTEROIDS_VOLUME (0-100).
func ApplyEnv(cfg *config.AudioConfig) {
	if v := os.Getenv("ASTEROIDS_AUDIO"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Enabled = enabled
		}
	}
	if v := os.Getenv("ASTEROIDS_VOLUME"); v != "" {
		if vol, err := strconv.Atoi(v); err == nil && vol >= 0 && vol <= 100 {
			cfg.Volume = float64(vol) / 100.0
		}
	}
}
