package audio

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/ggwoodsman/w0rd/parameter"
)

// Device abstracts the platform speaker so the engine can be driven by
// a fake output in tests
type Device interface {
	Init(sr beep.SampleRate, bufSize int) error
	Play(s beep.Streamer)
	Lock()
	Unlock()
	Close()
}

// speakerDevice is the production device backed by the beep speaker
type speakerDevice struct{}

func (speakerDevice) Init(sr beep.SampleRate, bufSize int) error { return speaker.Init(sr, bufSize) }
func (speakerDevice) Play(s beep.Streamer)                       { speaker.Play(s) }
func (speakerDevice) Lock()                                      { speaker.Lock() }
func (speakerDevice) Unlock()                                    { speaker.Unlock() }
func (speakerDevice) Close()                                     { speaker.Close() }

// Engine owns the output graph: voices feed a mixer, the mixer runs
// through a reverb send and a soft limiter, and a ramped master gain
// sits last before the device.
//
// The engine starts locked: every trigger before Unlock is a silent
// no-op. If the device fails to initialize the engine degrades to
// permanent silent mode and all operations keep returning without
// error, so a missing sound card never takes the visualization down
type Engine struct {
	log *zap.Logger
	dev Device

	unlocked atomic.Bool
	silent   atomic.Bool
	muted    atomic.Bool

	mixer    *beep.Mixer
	master   *gainStreamer
	volume   atomic.Uint64 // float64 bits, user volume independent of mute
	throttle *throttleMap

	mu      sync.Mutex
	cache   map[Effect]floatBuffer
	ambient *ambientDrone
}

// Option configures an Engine at construction
type Option func(*Engine)

// WithDevice overrides the output device
func WithDevice(dev Device) Option {
	return func(e *Engine) { e.dev = dev }
}

// WithClock overrides the throttle clock
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.throttle = newThrottleMap(now) }
}

func NewEngine(log *zap.Logger, opts ...Option) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Engine{
		log:      log,
		dev:      speakerDevice{},
		throttle: newThrottleMap(nil),
	}
	e.volume.Store(floatBits(parameter.MasterVolumeDefault))
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Unlock initializes the device and builds the output graph. It is
// idempotent: repeat calls after a successful unlock return
// immediately, and a failed unlock leaves the engine in silent mode
// for the rest of its life
func (e *Engine) Unlock() {
	if e.unlocked.Load() || e.silent.Load() {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.unlocked.Load() || e.silent.Load() {
		return
	}

	sr := beep.SampleRate(parameter.AudioSampleRate)
	if err := e.dev.Init(sr, sr.N(parameter.AudioBufferDuration)); err != nil {
		e.log.Warn("audio device unavailable, running silent", zap.Error(err))
		e.silent.Store(true)
		return
	}

	e.mixer = &beep.Mixer{}
	chain := newReverb(e.mixer, 0.11, 0.32, 0.18)
	e.master = newGainStreamer(&compressor{src: chain}, e.currentGainTarget())

	e.cache = make(map[Effect]floatBuffer, len(Effects))
	for _, eff := range Effects {
		e.cache[eff] = generateEffect(eff)
	}

	e.dev.Play(e.master)
	e.unlocked.Store(true)
	e.log.Info("audio engine unlocked", zap.Int("effects", len(e.cache)))
}

// Teardown stops playback and releases the device. The engine cannot
// be restarted afterwards
func (e *Engine) Teardown() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.unlocked.Load() {
		e.dev.Lock()
		e.mixer.Clear()
		e.dev.Unlock()
		e.dev.Close()
		e.unlocked.Store(false)
	}
	e.silent.Store(true)
	e.ambient = nil
}

// Trigger schedules a one-shot effect. Unknown effects and triggers
// before Unlock are ignored
func (e *Engine) Trigger(eff Effect) {
	if !e.unlocked.Load() || e.silent.Load() {
		return
	}

	e.mu.Lock()
	buf, ok := e.cache[eff]
	e.mu.Unlock()
	if !ok || len(buf) == 0 {
		e.log.Debug("unknown effect ignored", zap.String("effect", string(eff)))
		return
	}

	e.dev.Lock()
	e.mixer.Add(newBufferVoice(buf, 1.0))
	e.dev.Unlock()
}

// TriggerThrottled schedules the effect unless the key fired within
// the cooldown. Throttle state is tracked even while muted so unmuting
// does not release a burst
func (e *Engine) TriggerThrottled(eff Effect, key string, cooldown time.Duration) {
	if !e.throttle.allow(string(eff)+":"+key, cooldown) {
		return
	}
	e.Trigger(eff)
}

// SetVolume clamps to [0,1] and ramps the master gain. The value is
// retained while muted and restored on unmute
func (e *Engine) SetVolume(v float64) {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	e.volume.Store(floatBits(v))

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.master != nil {
		e.master.RampTo(e.currentGainTarget())
	}
}

// Volume returns the user volume, independent of mute state
func (e *Engine) Volume() float64 {
	return floatFromBits(e.volume.Load())
}

// SetMuted ramps the master gain to zero or back to the stored volume.
// Muting also fades out the ambient drone
func (e *Engine) SetMuted(muted bool) {
	e.muted.Store(muted)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.master != nil {
		e.master.RampTo(e.currentGainTarget())
	}
	if muted && e.ambient != nil {
		e.ambient.beginFadeOut()
		e.ambient = nil
	}
}

// IsMuted reports the mute flag
func (e *Engine) IsMuted() bool {
	return e.muted.Load()
}

// StartAmbient attaches the seasonal drone, fading out any previous
// one first. No-op before unlock or while muted
func (e *Engine) StartAmbient(season string) {
	if !e.unlocked.Load() || e.silent.Load() || e.muted.Load() {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ambient != nil {
		e.ambient.beginFadeOut()
	}
	d := newAmbientDrone(season)
	e.ambient = d

	e.dev.Lock()
	e.mixer.Add(d)
	e.dev.Unlock()
}

// StopAmbient fades the drone down; it detaches itself once silent
func (e *Engine) StopAmbient() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ambient != nil {
		e.ambient.beginFadeOut()
		e.ambient = nil
	}
}

// AmbientActive reports whether a drone is attached and not fading out
func (e *Engine) AmbientActive() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ambient != nil && e.ambient.running()
}

func (e *Engine) currentGainTarget() float64 {
	if e.muted.Load() {
		return 0
	}
	return floatFromBits(e.volume.Load())
}
