// Package audio is the output backend: it adapts a per-buffer sample source
// to the shared ebiten audio context, which supplies the sample clock.
package audio

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	ebitaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// SampleSource fills dst with interleaved stereo float32 frames. It is
// called from the audio thread whenever the device needs more samples.
type SampleSource interface {
	Process(dst []float32)
}

// streamReader adapts a SampleSource to the io.Reader the audio context
// consumes: 32-bit little-endian floats, two channels.
type streamReader struct {
	mu     sync.Mutex
	source SampleSource
	buf    []float32
}

func (r *streamReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	frames := len(p) / 8
	if frames == 0 {
		return 0, nil
	}
	need := frames * 2
	if cap(r.buf) < need {
		r.buf = make([]float32, need)
	}
	r.buf = r.buf[:need]
	r.source.Process(r.buf)
	for i := 0; i < need; i++ {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(r.buf[i]))
	}
	return frames * 8, nil
}

var (
	audioCtxOnce sync.Once
	audioCtx     *ebitaudio.Context
	audioCtxRate int
)

// sharedContext returns the process-wide audio context. The context can only
// ever run at one rate; a second rate is an error.
func sharedContext(sampleRate int) (*ebitaudio.Context, error) {
	audioCtxOnce.Do(func() {
		audioCtxRate = sampleRate
		audioCtx = ebitaudio.NewContext(sampleRate)
	})
	if audioCtxRate != sampleRate {
		return nil, fmt.Errorf("audio context already running at %d Hz (requested %d Hz)", audioCtxRate, sampleRate)
	}
	return audioCtx, nil
}

// Output drives a SampleSource through the audio device.
type Output struct {
	player *ebitaudio.Player
}

// NewOutput opens a player for the source on the shared context. The source
// is not pulled until Play.
func NewOutput(sampleRate int, source SampleSource) (*Output, error) {
	ctx, err := sharedContext(sampleRate)
	if err != nil {
		return nil, err
	}
	player, err := ctx.NewPlayerF32(&streamReader{source: source})
	if err != nil {
		return nil, fmt.Errorf("audio player: %w", err)
	}
	return &Output{player: player}, nil
}

// Play starts (or resumes) pulling samples from the source.
func (o *Output) Play() { o.player.Play() }

// Pause stops pulling samples. The source keeps its state; Play resumes.
func (o *Output) Pause() { o.player.Pause() }

// IsPlaying reports whether the device is currently pulling samples.
func (o *Output) IsPlaying() bool { return o.player.IsPlaying() }

// Close pauses and releases the player.
func (o *Output) Close() error {
	o.player.Pause()
	return o.player.Close()
}
