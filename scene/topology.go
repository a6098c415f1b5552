package scene

import "github.com/ggwoodsman/w0rd/vmath"

// Organ keys emitted by the organism backend
const (
	OrganCortex        = "cortex"
	OrganMemory        = "memory"
	OrganDreaming      = "dreaming"
	OrganIntent        = "intent"
	OrganConsciousness = "consciousness"
	OrganAutonomy      = "autonomy"
	OrganSelfModel     = "self_model"
	OrganInnerVoice    = "inner_voice"
	OrganFractal       = "fractal"
)

// OrganKeys is the fixed iteration order for the nine organs. The cortex
// sits at the scene origin; the rest surround it
var OrganKeys = []string{
	OrganCortex,
	OrganMemory,
	OrganDreaming,
	OrganIntent,
	OrganConsciousness,
	OrganAutonomy,
	OrganSelfModel,
	OrganInnerVoice,
	OrganFractal,
}

// organPositions are the stable 3D base positions, scene units
var organPositions = map[string]vmath.Vec3{
	OrganCortex:        {X: 0, Y: 0, Z: 0},
	OrganMemory:        {X: -120, Y: -45, Z: 60},
	OrganDreaming:      {X: 115, Y: -70, Z: 40},
	OrganIntent:        {X: 130, Y: 35, Z: -55},
	OrganConsciousness: {X: 0, Y: -115, Z: -70},
	OrganAutonomy:      {X: -130, Y: 50, Z: -45},
	OrganSelfModel:     {X: 65, Y: 105, Z: 70},
	OrganInnerVoice:    {X: -60, Y: 110, Z: 55},
	OrganFractal:       {X: 10, Y: 20, Z: 135},
}

// OrganPosition returns the stable base position for an organ key
func OrganPosition(key string) vmath.Vec3 {
	return organPositions[key]
}

// Connection is an undirected organ pair in the visualization graph
type Connection struct {
	A, B string
}

// Connections is the static edge topology: the cortex fans out to every
// organ, plus a few lateral associations that mirror the backend's hormone
// routing
var Connections = []Connection{
	{OrganCortex, OrganMemory},
	{OrganCortex, OrganDreaming},
	{OrganCortex, OrganIntent},
	{OrganCortex, OrganConsciousness},
	{OrganCortex, OrganAutonomy},
	{OrganCortex, OrganSelfModel},
	{OrganCortex, OrganInnerVoice},
	{OrganCortex, OrganFractal},
	{OrganMemory, OrganDreaming},
	{OrganDreaming, OrganInnerVoice},
	{OrganIntent, OrganAutonomy},
	{OrganConsciousness, OrganSelfModel},
	{OrganFractal, OrganSelfModel},
}
