package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 50 * time.Millisecond
)

// Mix bus
const (
	// MasterVolumeDefault applied to every voice at enqueue
	MasterVolumeDefault = 0.8

	// VolumeRampDuration for SetVolume / mute transitions
	VolumeRampDuration = 120 * time.Millisecond
)

// Plant Sound (seed planted: rising two-note chime)
const (
	PlantNoteDuration = 160 * time.Millisecond
	PlantAttack       = 8 * time.Millisecond
	PlantRelease      = 90 * time.Millisecond
)

// Harvest Sound (descending warm triad)
const (
	HarvestNoteDuration = 220 * time.Millisecond
	HarvestAttack       = 10 * time.Millisecond
	HarvestRelease      = 160 * time.Millisecond
)

// Compost Sound (low crumble: filtered noise over a falling tone)
const (
	CompostDuration = 420 * time.Millisecond
	CompostAttack   = 20 * time.Millisecond
	CompostRelease  = 260 * time.Millisecond
)

// Dream Sound (slow detuned shimmer)
const (
	DreamDuration = 900 * time.Millisecond
	DreamAttack   = 220 * time.Millisecond
	DreamRelease  = 500 * time.Millisecond
)

// Pulse Sound (short organ heartbeat thump)
const (
	PulseDuration = 140 * time.Millisecond
	PulseAttack   = 4 * time.Millisecond
	PulseRelease  = 100 * time.Millisecond
)

// Agent Spawn Sound (quick upward sweep)
const (
	AgentSpawnDuration = 180 * time.Millisecond
	AgentSpawnAttack   = 6 * time.Millisecond
	AgentSpawnRelease  = 110 * time.Millisecond
)

// Agent Complete Sound (two-note resolve)
const (
	AgentCompleteNoteDuration = 140 * time.Millisecond
	AgentCompleteAttack       = 6 * time.Millisecond
	AgentCompleteRelease      = 100 * time.Millisecond
)

// Season Change Sound (broad swell)
const (
	SeasonChangeDuration = 1100 * time.Millisecond
	SeasonChangeAttack   = 300 * time.Millisecond
	SeasonChangeRelease  = 600 * time.Millisecond
)

// Click Sound (selection tick)
const (
	ClickDuration = 45 * time.Millisecond
	ClickAttack   = 2 * time.Millisecond
	ClickRelease  = 30 * time.Millisecond
)

// Shockwave Sound (noise whoosh with downward sweep)
const (
	ShockwaveSoundDuration = 360 * time.Millisecond
	ShockwaveSoundAttack   = 30 * time.Millisecond
	ShockwaveSoundRelease  = 240 * time.Millisecond
)

// Ambient drone
const (
	// AmbientFadeIn is the ramp to full drone level after StartAmbient
	AmbientFadeIn = 4 * time.Second

	// AmbientFadeOut runs before the drone is detached; StopAmbient must
	// never click
	AmbientFadeOut = 1 * time.Second

	// AmbientLevel is the drone's steady gain
	AmbientLevel = 0.10

	// AmbientVoices is the number of detuned oscillators in the bank
	AmbientVoices = 4

	// AmbientDriftRate is the slow per-voice frequency drift in Hz/s
	AmbientDriftRate = 0.35
)

// Throttle
const (
	// PulseCooldown is the default per-organ cooldown for pulse triggers
	PulseCooldown = 3000 * time.Millisecond
)
