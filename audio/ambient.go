package audio

import (
	"math"
	"sync/atomic"

	"github.com/ggwoodsman/w0rd/parameter"
)

// Base drone frequencies per season. Unknown seasons fall back to spring
var ambientRoots = map[string]float64{
	"spring": 110.0,
	"summer": 123.47, // B2
	"autumn": 98.0,   // G2
	"winter": 87.31,  // F2
}

// ambientVoice is one oscillator of the drone bank with a slow random
// walk around its detuned center frequency
type ambientVoice struct {
	phase  float64
	center float64
	freq   float64
	drift  float64
	level  float64
}

// ambientDrone is a live streamer: voices are synthesized per callback
// rather than precomputed, so the drone can run indefinitely. It fades
// in on start and, once fadeOut is set, fades down and terminates so
// the mixer detaches it
type ambientDrone struct {
	voices  []ambientVoice
	gain    float64
	fadeIn  float64 // per-sample increment toward AmbientLevel
	fadeOut float64 // per-sample decrement once stopping
	stop    atomic.Bool
	done    atomic.Bool
	rngSeed uint64
}

func newAmbientDrone(season string) *ambientDrone {
	root, ok := ambientRoots[season]
	if !ok {
		root = ambientRoots["spring"]
	}

	// Root, fifth, octave, ninth, each slightly detuned
	ratios := []float64{1.0, 1.4983, 2.0, 2.2449}
	levels := []float64{1.0, 0.55, 0.4, 0.25}

	d := &ambientDrone{
		fadeIn:  parameter.AmbientLevel / (parameter.AmbientFadeIn.Seconds() * float64(parameter.AudioSampleRate)),
		fadeOut: parameter.AmbientLevel / (parameter.AmbientFadeOut.Seconds() * float64(parameter.AudioSampleRate)),
		rngSeed: 0x9e3779b97f4a7c15,
	}
	for i := 0; i < parameter.AmbientVoices; i++ {
		detune := 1.0 + float64(i-1)*0.0015
		f := root * ratios[i%len(ratios)] * detune
		d.voices = append(d.voices, ambientVoice{
			center: f,
			freq:   f,
			level:  levels[i%len(levels)],
			phase:  float64(i) * 1.7,
		})
	}
	return d
}

// beginFadeOut starts the release ramp; the drone detaches itself once
// silent
func (d *ambientDrone) beginFadeOut() {
	d.stop.Store(true)
}

// running reports whether the drone is still attached to the mixer
func (d *ambientDrone) running() bool {
	return !d.done.Load()
}

func (d *ambientDrone) nextRand() float64 {
	// xorshift, only used for drift so quality hardly matters
	d.rngSeed ^= d.rngSeed << 13
	d.rngSeed ^= d.rngSeed >> 7
	d.rngSeed ^= d.rngSeed << 17
	return float64(d.rngSeed%2000)/1000.0 - 1.0
}

func (d *ambientDrone) Stream(samples [][2]float64) (int, bool) {
	if d.done.Load() {
		return 0, false
	}

	dt := 1.0 / float64(parameter.AudioSampleRate)
	driftStep := parameter.AmbientDriftRate * dt
	stopping := d.stop.Load()

	for i := range samples {
		if stopping {
			d.gain -= d.fadeOut
			if d.gain <= 0 {
				d.done.Store(true)
				return i, i > 0
			}
		} else if d.gain < parameter.AmbientLevel {
			d.gain += d.fadeIn
			if d.gain > parameter.AmbientLevel {
				d.gain = parameter.AmbientLevel
			}
		}

		var mix float64
		for v := range d.voices {
			vc := &d.voices[v]
			vc.drift += d.nextRand() * driftStep
			if vc.drift > 1.5 {
				vc.drift = 1.5
			} else if vc.drift < -1.5 {
				vc.drift = -1.5
			}
			vc.freq = vc.center + vc.drift
			vc.phase += 2 * math.Pi * vc.freq * dt
			mix += math.Sin(vc.phase) * vc.level
		}
		s := mix * d.gain / float64(len(d.voices))
		samples[i][0] = s
		samples[i][1] = s
	}
	return len(samples), true
}

func (d *ambientDrone) Err() error {
	return nil
}
