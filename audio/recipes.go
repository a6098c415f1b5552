package audio

import (
	"github.com/ggwoodsman/w0rd/parameter"
)

// --- Effect recipes (unity gain, self-terminating buffers) ---

// generatePlant is a rising two-note chime: E5 then A5 with a slight
// overlap
func generatePlant() floatBuffer {
	n := durationToSamples(parameter.PlantNoteDuration.Seconds())

	low := oscillator(waveSine, 659.26, n)
	applyEnvelope(low, parameter.PlantAttack.Seconds(), parameter.PlantRelease.Seconds())

	high := oscillator(waveSine, 880.0, n)
	applyEnvelope(high, parameter.PlantAttack.Seconds(), parameter.PlantRelease.Seconds())

	return mixFloatBuffers(low, delayBuffer(high, 0.09), 0.8)
}

// generateHarvest is a descending warm triad: A4, E4, C4
func generateHarvest() floatBuffer {
	n := durationToSamples(parameter.HarvestNoteDuration.Seconds())
	freqs := []float64{440.0, 329.63, 261.63}

	var out floatBuffer
	for i, f := range freqs {
		note := oscillator(waveSine, f, n)
		applyEnvelope(note, parameter.HarvestAttack.Seconds(), parameter.HarvestRelease.Seconds())
		out = mixFloatBuffers(out, delayBuffer(note, 0.12*float64(i)), 0.7)
	}
	return out
}

// generateCompost is a low crumble: filtered noise over a falling tone
func generateCompost() floatBuffer {
	n := durationToSamples(parameter.CompostDuration.Seconds())

	noise := oscillator(waveNoise, 0, n)
	lowpass(noise, 800)
	applyEnvelope(noise, parameter.CompostAttack.Seconds(), parameter.CompostRelease.Seconds())

	fall := sweepOscillator(140, 55, n)
	applyEnvelope(fall, parameter.CompostAttack.Seconds(), parameter.CompostRelease.Seconds())

	return mixFloatBuffers(noise, fall, 0.9)
}

// generateDream is a slow detuned shimmer around A4
func generateDream() floatBuffer {
	n := durationToSamples(parameter.DreamDuration.Seconds())

	base := oscillator(waveSine, 440.0, n)
	up := oscillator(waveSine, 440.0*1.007, n)
	down := oscillator(waveSine, 440.0*0.993, n)
	fifth := oscillator(waveSine, 659.26, n)

	out := mixFloatBuffers(base, up, 1.0)
	out = mixFloatBuffers(out, down, 1.0)
	out = mixFloatBuffers(out, fifth, 0.4)
	scaleBuffer(out, 1.0/3.4)

	applyEnvelope(out, parameter.DreamAttack.Seconds(), parameter.DreamRelease.Seconds())
	return out
}

// generatePulse is a short heartbeat thump: a falling low sine
func generatePulse() floatBuffer {
	n := durationToSamples(parameter.PulseDuration.Seconds())
	buf := sweepOscillator(160, 55, n)
	applyEnvelope(buf, parameter.PulseAttack.Seconds(), parameter.PulseRelease.Seconds())
	return buf
}

// generateAgentSpawn is a quick upward sweep
func generateAgentSpawn() floatBuffer {
	n := durationToSamples(parameter.AgentSpawnDuration.Seconds())
	buf := sweepOscillator(320, 960, n)
	applyEnvelope(buf, parameter.AgentSpawnAttack.Seconds(), parameter.AgentSpawnRelease.Seconds())
	return buf
}

// generateAgentComplete is a two-note resolve: E5 then a held A5
func generateAgentComplete() floatBuffer {
	n := durationToSamples(parameter.AgentCompleteNoteDuration.Seconds())

	first := oscillator(waveSine, 659.26, n)
	applyEnvelope(first, parameter.AgentCompleteAttack.Seconds(), parameter.AgentCompleteRelease.Seconds())

	second := oscillator(waveSine, 880.0, n*2)
	applyEnvelope(second, parameter.AgentCompleteAttack.Seconds(), parameter.AgentCompleteRelease.Seconds()*2)

	return mixFloatBuffers(first, delayBuffer(second, parameter.AgentCompleteNoteDuration.Seconds()*0.8), 0.9)
}

// generateSeasonChange is a broad swell: detuned fifth stack with a long
// attack
func generateSeasonChange() floatBuffer {
	n := durationToSamples(parameter.SeasonChangeDuration.Seconds())

	root := oscillator(waveSine, 220.0, n)
	fifth := oscillator(waveSine, 330.0, n)
	octave := oscillator(waveSine, 440.0*1.004, n)

	out := mixFloatBuffers(root, fifth, 0.8)
	out = mixFloatBuffers(out, octave, 0.5)
	scaleBuffer(out, 1.0/2.3)

	applyEnvelope(out, parameter.SeasonChangeAttack.Seconds(), parameter.SeasonChangeRelease.Seconds())
	return out
}

// generateClick is a tiny selection tick
func generateClick() floatBuffer {
	n := durationToSamples(parameter.ClickDuration.Seconds())
	buf := oscillator(waveSquare, 1320.0, n)
	scaleBuffer(buf, 0.5)
	applyEnvelope(buf, parameter.ClickAttack.Seconds(), parameter.ClickRelease.Seconds())
	return buf
}

// generateShockwave is a noise whoosh with a downward body sweep
func generateShockwave() floatBuffer {
	n := durationToSamples(parameter.ShockwaveSoundDuration.Seconds())

	noise := oscillator(waveNoise, 0, n)
	lowpass(noise, 2400)
	applyEnvelope(noise, parameter.ShockwaveSoundAttack.Seconds(), parameter.ShockwaveSoundRelease.Seconds())

	body := sweepOscillator(200, 70, n)
	applyEnvelope(body, parameter.ShockwaveSoundAttack.Seconds(), parameter.ShockwaveSoundRelease.Seconds())

	return mixFloatBuffers(scaleBuffer(noise, 0.6), body, 0.5)
}

// generateEffect dispatches to the recipe for an effect name
func generateEffect(e Effect) floatBuffer {
	return normalize(rawEffect(e))
}

func rawEffect(e Effect) floatBuffer {
	switch e {
	case EffectPlant:
		return generatePlant()
	case EffectHarvest:
		return generateHarvest()
	case EffectCompost:
		return generateCompost()
	case EffectDream:
		return generateDream()
	case EffectPulse:
		return generatePulse()
	case EffectAgentSpawn:
		return generateAgentSpawn()
	case EffectAgentComplete:
		return generateAgentComplete()
	case EffectSeasonChange:
		return generateSeasonChange()
	case EffectClick:
		return generateClick()
	case EffectShockwave:
		return generateShockwave()
	default:
		return nil
	}
}
