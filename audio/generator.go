package audio

import (
	"math"
	"math/rand"

	"github.com/ggwoodsman/w0rd/parameter"
)

// Waveform types
const (
	waveSine = iota
	waveSquare
	waveSaw
	waveNoise
)

// oscillator generates raw waveform samples at a fixed frequency
func oscillator(waveType int, freq float64, samples int) floatBuffer {
	buf := make(floatBuffer, samples)
	phase := 0.0
	phaseInc := freq / float64(parameter.AudioSampleRate)

	for i := 0; i < samples; i++ {
		switch waveType {
		case waveSine:
			buf[i] = math.Sin(2 * math.Pi * phase)
		case waveSquare:
			if phase < 0.5 {
				buf[i] = 1.0
			} else {
				buf[i] = -1.0
			}
		case waveSaw:
			buf[i] = 2.0 * (phase - 0.5)
		case waveNoise:
			buf[i] = rand.Float64()*2 - 1
		}

		phase += phaseInc
		if phase >= 1.0 {
			phase -= 1.0
		}
	}
	return buf
}

// sweepOscillator generates a sine whose frequency moves exponentially
// from startFreq to endFreq over the buffer
func sweepOscillator(startFreq, endFreq float64, samples int) floatBuffer {
	buf := make(floatBuffer, samples)
	phase := 0.0
	ratio := endFreq / startFreq

	for i := 0; i < samples; i++ {
		t := float64(i) / float64(samples)
		freq := startFreq * math.Pow(ratio, t)
		buf[i] = math.Sin(2 * math.Pi * phase)
		phase += freq / float64(parameter.AudioSampleRate)
		if phase >= 1.0 {
			phase -= 1.0
		}
	}
	return buf
}

// applyEnvelope applies attack/release envelope in place
func applyEnvelope(buf floatBuffer, attackSec, releaseSec float64) {
	total := len(buf)
	attackSamples := int(attackSec * float64(parameter.AudioSampleRate))
	releaseSamples := int(releaseSec * float64(parameter.AudioSampleRate))

	releaseStart := total - releaseSamples
	if releaseStart < attackSamples {
		releaseStart = attackSamples
	}

	for i := 0; i < total; i++ {
		vol := 1.0
		if i < attackSamples && attackSamples > 0 {
			vol = float64(i) / float64(attackSamples)
		} else if i >= releaseStart && releaseSamples > 0 {
			vol = float64(total-i) / float64(releaseSamples)
		}
		buf[i] *= vol
	}
}

// lowpass applies a one-pole low-pass filter in place
func lowpass(buf floatBuffer, cutoffHz float64) {
	rc := 1.0 / (2 * math.Pi * cutoffHz)
	dt := 1.0 / float64(parameter.AudioSampleRate)
	alpha := dt / (rc + dt)

	state := 0.0
	for i := range buf {
		state += alpha * (buf[i] - state)
		buf[i] = state
	}
}

// mixFloatBuffers adds b into a (in place), extending a if needed
func mixFloatBuffers(a, b floatBuffer, bScale float64) floatBuffer {
	if len(b) > len(a) {
		extended := make(floatBuffer, len(b))
		copy(extended, a)
		a = extended
	}
	for i := range b {
		a[i] += b[i] * bScale
	}
	return a
}

// delayBuffer prepends silence, offsetting a voice inside a recipe
func delayBuffer(b floatBuffer, delaySec float64) floatBuffer {
	pad := int(delaySec * float64(parameter.AudioSampleRate))
	out := make(floatBuffer, pad+len(b))
	copy(out[pad:], b)
	return out
}

// scaleBuffer multiplies in place
func scaleBuffer(buf floatBuffer, gain float64) floatBuffer {
	for i := range buf {
		buf[i] *= gain
	}
	return buf
}

// normalize rescales so the peak sits at 0.95, leaving headroom for
// the mix bus. Quiet buffers are left alone
func normalize(buf floatBuffer) floatBuffer {
	peak := 0.0
	for _, s := range buf {
		if s > peak {
			peak = s
		} else if -s > peak {
			peak = -s
		}
	}
	if peak > 0.95 {
		scaleBuffer(buf, 0.95/peak)
	}
	return buf
}

// durationToSamples converts seconds to sample count
func durationToSamples(d float64) int {
	return int(d * float64(parameter.AudioSampleRate))
}
