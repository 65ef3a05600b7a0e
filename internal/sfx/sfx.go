// Package sfx plays procedural sound cues for the walk cycle.
package sfx

import (
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/hajimehoshi/oto/v2"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
)

// Player plays footsteps. A nil *Player is valid and silent.
type Player struct {
	ctx    *oto.Context
	ready  chan struct{}
	volume float64
	seq    uint64
}

// New opens the audio device. Callers should continue without sound on error.
func New(volume float64) (*Player, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, oto.FormatFloat32LE)
	if err != nil {
		return nil, err
	}
	return &Player{ctx: ctx, ready: ready, volume: clamp01(volume)}, nil
}

// Footstep plays one step. It never blocks the caller.
func (p *Player) Footstep() {
	if p == nil {
		return
	}
	select {
	case <-p.ready:
	default:
		return
	}
	p.seq++
	samples := Footstep(p.seq)
	go func() {
		pl := p.ctx.NewPlayer(&soundReader{data: samples})
		pl.SetVolume(p.volume)
		pl.Play()
		for pl.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		if err := pl.Close(); err != nil {
			slog.Debug("close footstep player", "err", err)
		}
	}()
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// FootstepDuration is the length of one footstep sample.
const FootstepDuration = 0.12

// Footstep synthesizes a short heel thud with a gritty scuff on top, as
// stereo float32 LE frames. variant alternates the pitch between feet.
func Footstep(variant uint64) []byte {
	n := int(FootstepDuration * SampleRate)
	buf := make([]byte, n*8)
	seed := variant*0x9E3779B97F4A7C15 + 1
	pitch := 70.0
	if variant%2 == 1 {
		pitch = 62.0
	}
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		thud := math.Sin(2*math.Pi*pitch*t*(1-0.4*p)) * envelope(p, 0.02, 0.25)
		scuff := noise(&seed) * envelope(p, 0.01, 0.15) * 0.25
		putStereoF32(buf, i, softClip((thud+scuff)*0.8))
	}
	return buf
}

// envelope rises linearly over attack then decays exponentially with the
// given time constant, both as fractions of the sample length.
func envelope(p, attack, decay float64) float64 {
	if p < attack {
		return p / attack
	}
	return math.Exp(-(p - attack) / decay)
}

func noise(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

func softClip(x float64) float64 {
	return math.Tanh(x)
}

func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	for ch := 0; ch < ChannelCount; ch++ {
		o := i*8 + ch*4
		buf[o] = byte(v)
		buf[o+1] = byte(v >> 8)
		buf[o+2] = byte(v >> 16)
		buf[o+3] = byte(v >> 24)
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
