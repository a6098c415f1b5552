package audio

import (
	"math"
	"sync/atomic"

	"github.com/ggwoodsman/w0rd/parameter"
)

// bufferVoice streams a precomputed mono buffer as stereo and terminates
// itself at the end: the mixer drops it once Stream reports done. A voice
// is never reused after it stops
type bufferVoice struct {
	buf  floatBuffer
	pos  int
	gain float64
}

func newBufferVoice(buf floatBuffer, gain float64) *bufferVoice {
	return &bufferVoice{buf: buf, gain: gain}
}

// Stream recovers per-voice panics so one failing voice can never take
// down the mixer or its siblings
func (v *bufferVoice) Stream(samples [][2]float64) (n int, ok bool) {
	defer func() {
		if recover() != nil {
			n, ok = 0, false
		}
	}()

	if v.pos >= len(v.buf) {
		return 0, false
	}
	for i := range samples {
		if v.pos >= len(v.buf) {
			return i, true
		}
		s := v.buf[v.pos] * v.gain
		samples[i][0] = s
		samples[i][1] = s
		v.pos++
	}
	return len(samples), true
}

func (v *bufferVoice) Err() error {
	return nil
}

// gainStreamer applies a ramped master gain to the whole mix. Target
// changes ramp linearly over VolumeRampDuration so volume and mute
// transitions never click. Safe for concurrent target updates
type gainStreamer struct {
	src  streamerFunc
	gain atomic.Uint64 // float64 bits, current
	tgt  atomic.Uint64 // float64 bits, target
	step float64       // per-sample ramp increment
}

type streamerFunc interface {
	Stream(samples [][2]float64) (int, bool)
	Err() error
}

func newGainStreamer(src streamerFunc, initial float64) *gainStreamer {
	g := &gainStreamer{
		src:  src,
		step: 1.0 / (parameter.VolumeRampDuration.Seconds() * float64(parameter.AudioSampleRate)),
	}
	g.gain.Store(math.Float64bits(initial))
	g.tgt.Store(math.Float64bits(initial))
	return g
}

// RampTo moves the gain toward v over the ramp duration
func (g *gainStreamer) RampTo(v float64) {
	g.tgt.Store(math.Float64bits(v))
}

// Current returns the instantaneous gain
func (g *gainStreamer) Current() float64 {
	return math.Float64frombits(g.gain.Load())
}

// Target returns the ramp destination
func (g *gainStreamer) Target() float64 {
	return math.Float64frombits(g.tgt.Load())
}

func (g *gainStreamer) Stream(samples [][2]float64) (int, bool) {
	n, ok := g.src.Stream(samples)

	cur := math.Float64frombits(g.gain.Load())
	tgt := math.Float64frombits(g.tgt.Load())
	for i := 0; i < n; i++ {
		if cur < tgt {
			cur += g.step
			if cur > tgt {
				cur = tgt
			}
		} else if cur > tgt {
			cur -= g.step
			if cur < tgt {
				cur = tgt
			}
		}
		samples[i][0] *= cur
		samples[i][1] *= cur
	}
	g.gain.Store(math.Float64bits(cur))
	return n, ok
}

func (g *gainStreamer) Err() error {
	return g.src.Err()
}

// compressor soft-limits the mix so stacked voices cannot hard clip.
// Linear below 0.8, compressed above, hard ceiling at 1
type compressor struct {
	src streamerFunc
}

func (c *compressor) Stream(samples [][2]float64) (int, bool) {
	n, ok := c.src.Stream(samples)
	for i := 0; i < n; i++ {
		samples[i][0] = softLimit(samples[i][0])
		samples[i][1] = softLimit(samples[i][1])
	}
	return n, ok
}

func (c *compressor) Err() error {
	return c.src.Err()
}

func softLimit(v float64) float64 {
	if v > 0.8 {
		v = 0.8 + 0.2*(1.0-1.0/(1.0+(v-0.8)*5.0))
	} else if v < -0.8 {
		v = -0.8 - 0.2*(1.0-1.0/(1.0+(-v-0.8)*5.0))
	}
	if v > 1.0 {
		return 1.0
	}
	if v < -1.0 {
		return -1.0
	}
	return v
}

// reverb is a parallel send built from a feedback delay line: the dry
// signal passes through untouched and a decaying echo is mixed on top
type reverb struct {
	src      streamerFunc
	delay    [][2]float64
	pos      int
	feedback float64
	wet      float64
}

func newReverb(src streamerFunc, delaySec, feedback, wet float64) *reverb {
	n := int(delaySec * float64(parameter.AudioSampleRate))
	if n < 1 {
		n = 1
	}
	return &reverb{
		src:      src,
		delay:    make([][2]float64, n),
		feedback: feedback,
		wet:      wet,
	}
}

func (r *reverb) Stream(samples [][2]float64) (int, bool) {
	n, ok := r.src.Stream(samples)
	for i := 0; i < n; i++ {
		echoL := r.delay[r.pos][0]
		echoR := r.delay[r.pos][1]

		outL := samples[i][0] + echoL*r.wet
		outR := samples[i][1] + echoR*r.wet

		r.delay[r.pos][0] = samples[i][0] + echoL*r.feedback
		r.delay[r.pos][1] = samples[i][1] + echoR*r.feedback
		r.pos = (r.pos + 1) % len(r.delay)

		samples[i][0] = outL
		samples[i][1] = outR
	}
	return n, ok
}

func (r *reverb) Err() error {
	return r.src.Err()
}
