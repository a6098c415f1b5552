package scene

import (
	"sort"

	"github.com/ggwoodsman/w0rd/parameter"
	"github.com/ggwoodsman/w0rd/vmath"
)

// Tick advances every animated quantity by one frame and rebuilds the
// projection cache. Order is fixed: camera, nodes (decay, orbiters,
// shockwaves), dressing particles, then projection and depth sort.
// External mutations applied between ticks become visible here, never
// mid-tick
func (s *Scene) Tick() {
	s.ticks++

	if !s.Dragging {
		s.AutoYaw += parameter.AutoRotateSpeed
	}

	for _, key := range OrganKeys {
		node := s.organs[key]
		s.advanceNode(&node.Node)

		// Exponential decay toward rest, floored at zero
		node.Activity *= parameter.ActivityDecayFactor
		if node.Activity < parameter.ActivityFloor {
			node.Activity = 0
		}
	}

	for _, agent := range s.agents {
		s.advanceNode(&agent.Node)

		// Ease toward the status-derived target instead of decaying
		agent.Activity += (agent.Target - agent.Activity) * parameter.AgentActivityEase
		if agent.Activity < 0 {
			agent.Activity = 0
		} else if agent.Activity > 1 {
			agent.Activity = 1
		}

		if agent.Spawn < 1 {
			agent.Spawn += parameter.AgentSpawnRampStep
			if agent.Spawn > 1 {
				agent.Spawn = 1
			}
		}
	}

	s.advanceMotes()
	s.advanceFlows()
	s.project()
}

// advanceNode updates the shared animation fields of one node
func (s *Scene) advanceNode(n *Node) {
	n.BreathePhase += parameter.BreatheSpeed

	speed := parameter.OrbiterMinSpeed + n.Activity*parameter.OrbiterBaseSpeed
	for i := range n.Orbiters {
		n.Orbiters[i].Angle += speed
	}

	for i := range n.Shockwaves {
		w := &n.Shockwaves[i]
		w.Life *= parameter.ShockwaveLifeDecay
		w.Radius += (w.Target - w.Radius) * parameter.ShockwaveRadiusEase
	}

	// Removal happens after the full advance so a wave crossing the
	// threshold still renders its final frame
	alive := n.Shockwaves[:0]
	for _, w := range n.Shockwaves {
		if w.Life >= parameter.ShockwaveCullLife {
			alive = append(alive, w)
		}
	}
	n.Shockwaves = alive

	if n.Activity < parameter.OrbiterCullActivity && len(n.Orbiters) > 0 {
		n.Orbiters = n.Orbiters[:len(n.Orbiters)-1]
	}
}

func (s *Scene) advanceMotes() {
	for i := range s.motes {
		m := &s.motes[i]

		if parameter.MoteTrailLen > 0 {
			m.Trail = append(m.Trail, m.Pos)
			if len(m.Trail) > parameter.MoteTrailLen {
				m.Trail = m.Trail[1:]
			}
		}

		m.Pos = vmath.V3Add(m.Pos, m.Vel)
		m.Pos.X = wrap(m.Pos.X, parameter.MoteBound)
		m.Pos.Y = wrap(m.Pos.Y, parameter.MoteBound)
		m.Pos.Z = wrap(m.Pos.Z, parameter.MoteBound)
	}
}

// wrap folds a coordinate back into the cubic boundary [-bound, bound]
func wrap(v, bound float64) float64 {
	if v > bound {
		return -bound
	}
	if v < -bound {
		return bound
	}
	return v
}

func (s *Scene) advanceFlows() {
	for i := range s.flows {
		f := &s.flows[i]
		f.T += f.Speed
		if f.T >= 1 {
			f.T = 0
			f.Edge = s.rng.Intn(len(Connections))
		}
	}
}

// FlowPosition returns the scene-space position of a flow particle on its
// current edge
func (s *Scene) FlowPosition(f FlowParticle) vmath.Vec3 {
	c := Connections[f.Edge]
	return vmath.V3Lerp(organPositions[c.A], organPositions[c.B], f.T)
}

// ProjectPoint maps a scene point through the current camera
func (s *Scene) ProjectPoint(v vmath.Vec3) vmath.Projected {
	return vmath.Project(v, s.Yaw+s.AutoYaw, s.Tilt, s.CanvasW, s.CanvasH)
}

// project rebuilds the merged organ+agent projection cache, farthest
// first, so the draw pass composites back-to-front and the hit tester
// scans in the same deterministic order
func (s *Scene) project() {
	merged := s.projected[:0]

	for _, key := range OrganKeys {
		node := s.organs[key]
		p := s.ProjectPoint(node.Pos)
		merged = append(merged, ProjectedNode{
			Key: node.Key, Kind: KindOrgan,
			X: p.X, Y: p.Y, Scale: p.Scale, Depth: p.Depth,
		})
	}

	// Map iteration order is not deterministic; sort stabilizes on depth
	// with key as tiebreak below
	for _, agent := range s.agents {
		p := s.ProjectPoint(agent.Pos)
		merged = append(merged, ProjectedNode{
			Key: agent.Key, Kind: KindAgent,
			X: p.X, Y: p.Y, Scale: p.Scale, Depth: p.Depth,
		})
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].Depth != merged[j].Depth {
			return merged[i].Depth > merged[j].Depth // farthest first
		}
		return merged[i].Key < merged[j].Key
	})

	s.projected = merged
}

// Ticks returns the elapsed tick count
func (s *Scene) Ticks() uint64 {
	return s.ticks
}
