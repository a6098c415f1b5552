package audio

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/ggwoodsman/w0rd/parameter"
)

// fakeDevice stands in for the platform speaker so engine behavior can
// be tested without hardware
type fakeDevice struct {
	mu      sync.Mutex
	initErr error
	initN   int
	playing beep.Streamer
	closed  bool
	sr      beep.SampleRate
	bufSize int
}

func (d *fakeDevice) Init(sr beep.SampleRate, bufSize int) error {
	d.initN++
	d.sr = sr
	d.bufSize = bufSize
	return d.initErr
}

func (d *fakeDevice) Play(s beep.Streamer) { d.playing = s }
func (d *fakeDevice) Lock()                { d.mu.Lock() }
func (d *fakeDevice) Unlock()              { d.mu.Unlock() }
func (d *fakeDevice) Close()               { d.closed = true }

// pump drains n samples from the streamer the engine handed to the
// device, the way the real output callback would
func (d *fakeDevice) pump(n int) {
	buf := make([][2]float64, 64)
	for n > 0 {
		chunk := len(buf)
		if chunk > n {
			chunk = n
		}
		d.mu.Lock()
		d.playing.Stream(buf[:chunk])
		d.mu.Unlock()
		n -= chunk
	}
}

func newTestEngine(t *testing.T, opts ...Option) (*Engine, *fakeDevice) {
	t.Helper()
	dev := &fakeDevice{}
	e := NewEngine(nil, append([]Option{WithDevice(dev)}, opts...)...)
	return e, dev
}

// Triggers before Unlock must be silent no-ops and must not touch the device
func TestTriggerBeforeUnlockIsNoOp(t *testing.T) {
	e, dev := newTestEngine(t)

	e.Trigger(EffectPlant)
	e.TriggerThrottled(EffectPulse, "cortex", parameter.PulseCooldown)
	e.StartAmbient("spring")

	if dev.initN != 0 {
		t.Fatalf("device initialized %d times before unlock", dev.initN)
	}
	if dev.playing != nil {
		t.Fatal("streamer attached before unlock")
	}
}

// Unlock initializes the device once; repeat calls are idempotent
func TestUnlockIsIdempotent(t *testing.T) {
	e, dev := newTestEngine(t)

	e.Unlock()
	e.Unlock()
	e.Unlock()

	if dev.initN != 1 {
		t.Fatalf("device initialized %d times, want 1", dev.initN)
	}
	if dev.playing == nil {
		t.Fatal("no streamer attached after unlock")
	}
	if dev.sr != beep.SampleRate(parameter.AudioSampleRate) {
		t.Fatalf("device sample rate = %d", dev.sr)
	}
}

// A failing device puts the engine into permanent silent mode: every
// later call returns without error and without retrying the device
func TestDeviceFailureDegradesToSilent(t *testing.T) {
	dev := &fakeDevice{initErr: errors.New("no sound card")}
	e := NewEngine(nil, WithDevice(dev))

	e.Unlock()
	e.Unlock()
	e.Trigger(EffectHarvest)
	e.StartAmbient("winter")
	e.SetVolume(0.5)
	e.SetMuted(true)
	e.Teardown()

	if dev.initN != 1 {
		t.Fatalf("device init retried, initN = %d", dev.initN)
	}
	if dev.playing != nil {
		t.Fatal("streamer attached despite init failure")
	}
}

// Trigger adds one self-terminating voice to the mix
func TestTriggerAddsVoice(t *testing.T) {
	e, dev := newTestEngine(t)
	e.Unlock()

	if n := e.mixer.Len(); n != 0 {
		t.Fatalf("mixer starts with %d streamers", n)
	}
	e.Trigger(EffectClick)
	if n := e.mixer.Len(); n != 1 {
		t.Fatalf("mixer has %d streamers after trigger, want 1", n)
	}

	// Drain well past the click's length; the voice must detach itself
	dev.pump(parameter.AudioSampleRate)
	if n := e.mixer.Len(); n != 0 {
		t.Fatalf("mixer has %d streamers after voice ended, want 0", n)
	}
}

// Unknown effects are ignored without touching the mixer
func TestUnknownEffectIgnored(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Unlock()

	e.Trigger(Effect("kazoo"))
	if n := e.mixer.Len(); n != 0 {
		t.Fatalf("mixer has %d streamers after unknown effect", n)
	}
}

// Two triggers 100ms apart under a 3s cooldown produce one voice; a
// third after the cooldown produces a second
func TestThrottleWindow(t *testing.T) {
	now := time.Unix(1000, 0)
	clock := func() time.Time { return now }
	e, _ := newTestEngine(t, WithClock(clock))
	e.Unlock()

	e.TriggerThrottled(EffectPulse, "cortex", parameter.PulseCooldown)
	now = now.Add(100 * time.Millisecond)
	e.TriggerThrottled(EffectPulse, "cortex", parameter.PulseCooldown)
	if n := e.mixer.Len(); n != 1 {
		t.Fatalf("mixer has %d voices inside cooldown, want 1", n)
	}

	now = now.Add(3 * time.Second)
	e.TriggerThrottled(EffectPulse, "cortex", parameter.PulseCooldown)
	if n := e.mixer.Len(); n != 2 {
		t.Fatalf("mixer has %d voices after cooldown, want 2", n)
	}
}

// Throttle keys are independent: different organs do not share cooldowns
func TestThrottleKeysIndependent(t *testing.T) {
	now := time.Unix(1000, 0)
	e, _ := newTestEngine(t, WithClock(func() time.Time { return now }))
	e.Unlock()

	e.TriggerThrottled(EffectPulse, "cortex", parameter.PulseCooldown)
	e.TriggerThrottled(EffectPulse, "memory", parameter.PulseCooldown)
	if n := e.mixer.Len(); n != 2 {
		t.Fatalf("mixer has %d voices for distinct keys, want 2", n)
	}
}

// SetVolume clamps to [0,1] and the master gain ramps to the target
func TestSetVolumeClamps(t *testing.T) {
	e, dev := newTestEngine(t)
	e.Unlock()

	e.SetVolume(1.7)
	if v := e.Volume(); v != 1.0 {
		t.Fatalf("volume = %v after over-range set, want 1", v)
	}
	e.SetVolume(-0.3)
	if v := e.Volume(); v != 0.0 {
		t.Fatalf("volume = %v after under-range set, want 0", v)
	}

	e.SetVolume(0.4)
	dev.pump(parameter.AudioSampleRate / 2)
	if g := e.master.Current(); g != 0.4 {
		t.Fatalf("master gain = %v after ramp, want 0.4", g)
	}
}

// Mute ramps the gain to zero and unmute restores the stored volume
func TestMuteRestoresVolume(t *testing.T) {
	e, dev := newTestEngine(t)
	e.Unlock()
	e.SetVolume(0.6)

	e.SetMuted(true)
	if !e.IsMuted() {
		t.Fatal("IsMuted false after mute")
	}
	dev.pump(parameter.AudioSampleRate / 2)
	if g := e.master.Current(); g != 0 {
		t.Fatalf("master gain = %v while muted, want 0", g)
	}

	e.SetMuted(false)
	dev.pump(parameter.AudioSampleRate / 2)
	if g := e.master.Current(); g != 0.6 {
		t.Fatalf("master gain = %v after unmute, want 0.6", g)
	}
}

// The master gain never jumps: each sample moves by at most the ramp step
func TestVolumeRampIsGradual(t *testing.T) {
	e, dev := newTestEngine(t)
	e.Unlock()

	e.SetMuted(true)
	before := e.master.Current()
	dev.pump(16)
	after := e.master.Current()

	maxStep := 16.0 / (parameter.VolumeRampDuration.Seconds() * float64(parameter.AudioSampleRate))
	if before-after > maxStep+1e-9 {
		t.Fatalf("gain fell %v over 16 samples, max %v", before-after, maxStep)
	}
}

// StartAmbient attaches the drone; StopAmbient fades it out until it
// detaches itself from the mix
func TestAmbientLifecycle(t *testing.T) {
	e, dev := newTestEngine(t)
	e.Unlock()

	e.StartAmbient("autumn")
	if !e.AmbientActive() {
		t.Fatal("ambient not active after start")
	}
	if n := e.mixer.Len(); n != 1 {
		t.Fatalf("mixer has %d streamers with drone, want 1", n)
	}

	drone := e.ambient
	e.StopAmbient()
	if e.AmbientActive() {
		t.Fatal("ambient still reported active after stop")
	}

	// Drain past the fade-out; the drone terminates and the mixer drops it
	dev.pump(2 * parameter.AudioSampleRate)
	if drone.running() {
		t.Fatal("drone still running after fade-out drained")
	}
	if n := e.mixer.Len(); n != 0 {
		t.Fatalf("mixer has %d streamers after drone ended, want 0", n)
	}
}

// Muting fades out the ambient drone and StartAmbient refuses while muted
func TestMuteStopsAmbient(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Unlock()
	e.StartAmbient("summer")

	e.SetMuted(true)
	if e.AmbientActive() {
		t.Fatal("ambient active after mute")
	}
	e.StartAmbient("summer")
	if e.AmbientActive() {
		t.Fatal("ambient started while muted")
	}
}

// The drone's fade-in never exceeds the steady ambient level
func TestAmbientFadeInBounded(t *testing.T) {
	d := newAmbientDrone("spring")
	buf := make([][2]float64, 256)
	for i := 0; i < 400; i++ {
		d.Stream(buf)
	}
	if d.gain > parameter.AmbientLevel {
		t.Fatalf("drone gain %v exceeds level %v", d.gain, parameter.AmbientLevel)
	}
}

// Every recipe renders a non-empty buffer with samples in [-1,1]
func TestRecipesRenderBounded(t *testing.T) {
	for _, eff := range Effects {
		buf := generateEffect(eff)
		if len(buf) == 0 {
			t.Fatalf("effect %q rendered empty", eff)
		}
		for i, s := range buf {
			if s < -1.0 || s > 1.0 {
				t.Fatalf("effect %q sample %d = %v out of range", eff, i, s)
			}
		}
	}
}

// Envelopes start and end at silence so one-shots never click
func TestRecipesStartAndEndSilent(t *testing.T) {
	const eps = 0.02
	for _, eff := range Effects {
		buf := generateEffect(eff)
		if s := buf[0]; s > eps || s < -eps {
			t.Fatalf("effect %q starts at %v", eff, s)
		}
		if s := buf[len(buf)-1]; s > eps || s < -eps {
			t.Fatalf("effect %q ends at %v", eff, s)
		}
	}
}

// A voice that panics mid-stream detaches without poisoning the mix
func TestVoicePanicIsContained(t *testing.T) {
	v := newBufferVoice(nil, 1.0)
	v.buf = floatBuffer{0.1, 0.2}
	v.pos = -10 // force an out-of-range read inside Stream

	buf := make([][2]float64, 8)
	n, ok := v.Stream(buf)
	if ok || n != 0 {
		t.Fatalf("panicked voice reported n=%d ok=%v, want 0,false", n, ok)
	}
}

// Teardown clears the mix and closes the device
func TestTeardown(t *testing.T) {
	e, dev := newTestEngine(t)
	e.Unlock()
	e.Trigger(EffectDream)

	e.Teardown()
	if !dev.closed {
		t.Fatal("device not closed")
	}
	if n := e.mixer.Len(); n != 0 {
		t.Fatalf("mixer has %d streamers after teardown", n)
	}

	// Operations after teardown stay silent no-ops
	e.Trigger(EffectPlant)
	if n := e.mixer.Len(); n != 0 {
		t.Fatal("trigger scheduled after teardown")
	}
}
