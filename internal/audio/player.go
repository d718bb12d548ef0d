// Package audio plays the optional selection feedback sound.
package audio

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// Player plays a short feedback sound when an action is chosen.
// The sound overlaps the command delay window, so playback is
// fire-and-forget; Wait gives the caller a bound on it.
type Player struct {
	mu     sync.Mutex
	logger *slog.Logger

	volume      float64 // 0.0 to 1.0
	initialized bool
	sampleRate  beep.SampleRate
	playing     chan struct{}
}

// NewPlayer creates a new feedback sound player.
func NewPlayer(logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	return &Player{
		logger:     logger,
		volume:     1.0,
		sampleRate: beep.SampleRate(44100),
	}
}

// SetVolume sets the playback volume (0.0 to 1.0).
func (p *Player) SetVolume(volume float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = math.Min(math.Max(volume, 0), 1)
}

// Play decodes and plays a sound file. Supports WAV, OGG and MP3.
func (p *Player) Play(path string) error {
	if path == "" {
		return nil
	}

	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[1:])
		}
	}

	buffer, err := p.loadSound(path)
	if err != nil {
		p.logger.Warn("failed to load sound", "path", path, "error", err)
		return err
	}

	return p.playBuffer(buffer)
}

// Wait blocks until the current sound finishes, or the timeout elapses.
func (p *Player) Wait(timeout time.Duration) {
	p.mu.Lock()
	playing := p.playing
	p.mu.Unlock()

	if playing == nil {
		return
	}
	select {
	case <-playing:
	case <-time.After(timeout):
	}
}

// loadSound decodes a sound file into a buffer.
func (p *Player) loadSound(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sound file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var streamer beep.StreamSeekCloser
	var format beep.Format

	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	default:
		return nil, fmt.Errorf("unsupported audio format: %s", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode sound: %w", err)
	}
	defer func() { _ = streamer.Close() }()

	if err := p.ensureInitialized(format.SampleRate); err != nil {
		return nil, err
	}

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	return buffer, nil
}

// ensureInitialized initializes the speaker once.
func (p *Player) ensureInitialized(sampleRate beep.SampleRate) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	bufferSize := sampleRate.N(time.Millisecond * 100)
	if err := speaker.Init(sampleRate, bufferSize); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}

	p.sampleRate = sampleRate
	p.initialized = true
	p.logger.Debug("speaker initialized", "sample_rate", sampleRate)
	return nil
}

// playBuffer plays a buffered sound.
func (p *Player) playBuffer(buffer *beep.Buffer) error {
	if buffer == nil {
		return nil
	}

	p.mu.Lock()
	volume := p.volume
	sampleRate := p.sampleRate
	done := make(chan struct{})
	p.playing = done
	p.mu.Unlock()

	var streamer beep.Streamer = buffer.Streamer(0, buffer.Len())

	if buffer.Format().SampleRate != sampleRate {
		streamer = beep.Resample(4, buffer.Format().SampleRate, sampleRate, streamer)
	}

	if volume < 1.0 {
		streamer = &effects.Volume{
			Streamer: streamer,
			Base:     2,
			Volume:   volumeToDecibels(volume),
			Silent:   volume == 0,
		}
	}

	speaker.Play(beep.Seq(streamer, beep.Callback(func() { close(done) })))
	return nil
}

// volumeToDecibels converts a 0.0-1.0 volume to the logarithmic scale
// the effects.Volume streamer expects.
func volumeToDecibels(volume float64) float64 {
	if volume <= 0 {
		return -10
	}
	return math.Log2(volume)
}
