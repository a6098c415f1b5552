package audio

import "math"

// Effect names the fixed one-shot recipes. Keys match the event phases
// the organism backend emits
type Effect string

const (
	EffectPlant         Effect = "plant"
	EffectHarvest       Effect = "harvest"
	EffectCompost       Effect = "compost"
	EffectDream         Effect = "dream"
	EffectPulse         Effect = "pulse"
	EffectAgentSpawn    Effect = "agentSpawn"
	EffectAgentComplete Effect = "agentComplete"
	EffectSeasonChange  Effect = "seasonChange"
	EffectClick         Effect = "click"
	EffectShockwave     Effect = "shockwave"
)

// Effects lists every recipe, in trigger-surface order
var Effects = []Effect{
	EffectPlant,
	EffectHarvest,
	EffectCompost,
	EffectDream,
	EffectPulse,
	EffectAgentSpawn,
	EffectAgentComplete,
	EffectSeasonChange,
	EffectClick,
	EffectShockwave,
}

// floatBuffer is mono float64 samples at unity gain
type floatBuffer []float64

func floatBits(v float64) uint64     { return math.Float64bits(v) }
func floatFromBits(b uint64) float64 { return math.Float64frombits(b) }
