package parameter

// Organ activity dynamics
const (
	// ActivityBoost added per activity event, clamped to 1.0
	ActivityBoost = 0.5

	// ActivityDecayFactor multiplies organ activity once per tick
	ActivityDecayFactor = 0.99

	// ActivityFloor below which decay snaps to zero
	ActivityFloor = 0.001

	// LowActivityThreshold gates orbiter spawn and the throttled pulse:
	// both fire only when the organ was below this before the boost
	LowActivityThreshold = 0.3
)

// Breathe oscillation
const (
	// BreatheSpeed is radians per tick added to each node's breathe phase
	BreatheSpeed = 0.045

	// BreatheAmplitude scales the idle radius oscillation (fraction of size)
	BreatheAmplitude = 0.12
)

// Orbiters
const (
	// MaxOrbiters per node
	MaxOrbiters = 5

	// OrbiterBaseSpeed is radians per tick at activity 1.0
	OrbiterBaseSpeed = 0.08

	// OrbiterMinSpeed keeps orbiters moving at idle
	OrbiterMinSpeed = 0.012

	// OrbiterRadiusMin/Max bound the orbit distance in virtual px
	OrbiterRadiusMin = 14.0
	OrbiterRadiusMax = 26.0

	// OrbiterCullActivity removes an orbiter when the owning node's
	// activity has decayed below this for a full tick
	OrbiterCullActivity = 0.02
)

// Shockwaves
const (
	// ShockwaveInitialRadius in virtual px
	ShockwaveInitialRadius = 4.0

	// ShockwaveTargetMin/Max bound the randomized expansion target
	ShockwaveTargetMin = 40.0
	ShockwaveTargetMax = 85.0

	// ShockwaveLifeDecay multiplies remaining life once per tick
	ShockwaveLifeDecay = 0.94

	// ShockwaveRadiusEase is the per-tick fraction moved toward target
	ShockwaveRadiusEase = 0.12

	// ShockwaveCullLife removes the wave once life drops below this
	ShockwaveCullLife = 0.02
)

// Agents
const (
	// AgentRingRadius is the ring-layout distance from the cortex, virtual px
	AgentRingRadius = 170.0

	// AgentSpawnRampStep advances spawn progress per tick (0 -> 1)
	AgentSpawnRampStep = 0.04

	// AgentActivityEase is the per-tick fraction eased toward the
	// status-derived target
	AgentActivityEase = 0.06
)

// Ambient motes
const (
	MoteCount = 60

	// MoteBound is the half-extent of the cubic wrap boundary, scene units
	MoteBound = 210.0

	// MoteSpeedMin/Max bound per-axis drift velocity, units per tick
	MoteSpeedMin = 0.05
	MoteSpeedMax = 0.45

	// MoteTrailLen is the number of retained past positions
	MoteTrailLen = 4
)

// Flow particles
const (
	FlowParticleCount = 18

	// FlowSpeedMin/Max bound the parametric advance per tick
	FlowSpeedMin = 0.004
	FlowSpeedMax = 0.012
)

// Camera
const (
	// AutoRotateSpeed is radians per tick while the user is not dragging
	AutoRotateSpeed = 0.0022

	// TiltMin/Max clamp the user tilt angle, radians
	TiltMin = -1.2
	TiltMax = 1.2
)
