package audio

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/opd-ai/go-gridwars/pkg/config"
	"github.com/opd-ai/go-gridwars/pkg/event"
	"github.com/opd-ai/go-gridwars/pkg/logging"
)

// Player mixes sound effects triggered by simulation events with the
// background music and feeds them to the speaker.
type Player struct {
	mu          sync.Mutex
	cfg         config.AudioConfig
	rate        beep.SampleRate
	mixer       *beep.Mixer
	music       *beep.Ctrl
	rng         *rand.Rand
	subs        []*event.Subscription
	initialized bool
	logger      *logging.Logger
}

// NewPlayer creates a player. Nothing is audible until Init.
func NewPlayer(cfg config.AudioConfig, logger *logging.Logger) *Player {
	if logger == nil {
		logger = logging.Discard()
	}
	p := &Player{
		cfg:    cfg,
		rate:   beep.SampleRate(cfg.SampleRate),
		mixer:  &beep.Mixer{},
		rng:    rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		logger: logger,
	}
	p.music = &beep.Ctrl{
		Streamer: newVolume(NewMusic(p.rate), cfg.MusicVolume*cfg.MasterVolume),
		Paused:   !cfg.Music,
	}
	p.mixer.Add(p.music)
	return p
}

// Init opens the speaker and starts playback
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.cfg.Enabled || p.initialized {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	p.logger.Debug(context.Background(), "audio initialized", "sample_rate", p.cfg.SampleRate)
	return nil
}

// Attach plays the matching sound for missile, kill and death events
func (p *Player) Attach(bus *event.Bus) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for t, s := range map[event.Type]Sound{
		event.MissileFired:   SoundShoot,
		event.EnemyDestroyed: SoundExplode,
		event.PlayerDied:     SoundDie,
	} {
		p.subs = append(p.subs, bus.Subscribe(t, func(event.Event) { p.Play(s) }))
	}
}

// Detach cancels every subscription made by Attach
func (p *Player) Detach() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, sub := range p.subs {
		sub.Cancel()
	}
	p.subs = nil
}

// Play starts one instance of s
func (p *Player) Play(s Sound) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.cfg.Enabled {
		return
	}
	streamer := CreateSound(s, p.rate, p.cfg.MasterVolume, p.rng)
	if streamer == nil {
		return
	}
	p.withSpeaker(func() { p.mixer.Add(streamer) })
}

// ToggleMusic pauses or resumes the music and reports whether it now plays
func (p *Player) ToggleMusic() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	var playing bool
	p.withSpeaker(func() {
		p.music.Paused = !p.music.Paused
		playing = !p.music.Paused
	})
	return playing
}

// MusicPlaying reports whether the music is unpaused
func (p *Player) MusicPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	var playing bool
	p.withSpeaker(func() { playing = !p.music.Paused })
	return playing
}

// Voices returns the number of streams in the mixer, music included
func (p *Player) Voices() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	var n int
	p.withSpeaker(func() { n = p.mixer.Len() })
	return n
}

// Close detaches from events and silences the mixer
func (p *Player) Close() {
	p.Detach()

	p.mu.Lock()
	defer p.mu.Unlock()

	p.withSpeaker(func() {
		p.music.Paused = true
		p.mixer.Clear()
	})
	if p.initialized {
		speaker.Close()
		p.initialized = false
	}
}

// withSpeaker runs fn under the speaker lock once the speaker streams
// the mixer. p.mu must be held.
func (p *Player) withSpeaker(fn func()) {
	if p.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	fn()
}
