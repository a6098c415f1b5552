package scene

import (
	"math"
	"math/rand"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ggwoodsman/w0rd/parameter"
	"github.com/ggwoodsman/w0rd/vmath"
)

// AgentSummary is the externally supplied record for one worker agent
type AgentSummary struct {
	ID        string
	Name      string
	AgentType string
	Status    string
	SeedID    string
}

// Scene owns every renderable entity and its mutable animation state.
// All mutation goes through Initialize, SyncAgents, ApplyActivityEvent and
// Tick; the scene is single-owner and is only touched from the frame loop
type Scene struct {
	Season  string
	palette *Palette

	organs   map[string]*OrganNode
	agents   map[string]*AgentNode
	motes    []Mote
	flows    []FlowParticle
	ticks    uint64 // elapsed ticks, drives the deterministic wash cycle
	rng      *rand.Rand

	// Camera state, mutated by the interaction controller via the
	// exported methods below
	Yaw      float64 // user rotation about the vertical axis
	AutoYaw  float64 // accumulating auto-rotation
	Tilt     float64
	Dragging bool

	// Canvas dimensions in virtual px, updated on resize
	CanvasW, CanvasH float64

	// projected is last tick's merged, depth-sorted node list
	projected []ProjectedNode

	// onPulse, when set, requests a throttled audio pulse for an organ
	// whose activity was boosted from a low level
	onPulse func(organKey string)
}

// New creates an empty scene for the given season; Initialize is called
// as part of construction
func New(season string, canvasW, canvasH float64) *Scene {
	s := &Scene{
		organs:  make(map[string]*OrganNode, len(OrganKeys)),
		agents:  make(map[string]*AgentNode),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		CanvasW: canvasW,
		CanvasH: canvasH,
	}
	s.Initialize(season)
	return s
}

// SetPulseHandler registers the throttled-pulse request callback
func (s *Scene) SetPulseHandler(fn func(organKey string)) {
	s.onPulse = fn
}

// SetSeed makes the scene's randomized jitter reproducible
func (s *Scene) SetSeed(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
}

// Resize updates the virtual canvas dimensions. A zero-size canvas is
// tolerated; projection keeps running and recovers when size returns
func (s *Scene) Resize(w, h float64) {
	s.CanvasW, s.CanvasH = w, h
}

// Initialize builds or rebuilds the organ nodes for a season palette,
// preserving breathe phase, orbiters and shockwaves for organs that
// already exist so visual momentum survives the palette swap. Motes and
// flow particles are reseeded
func (s *Scene) Initialize(season string) {
	s.Season = season
	s.palette = PaletteFor(season)

	prev := s.organs
	s.organs = make(map[string]*OrganNode, len(OrganKeys))
	for _, key := range OrganKeys {
		node := &OrganNode{Node: Node{
			Key:   key,
			Kind:  KindOrgan,
			Pos:   organPositions[key],
			Color: s.palette.Organs[key],
			Label: "idle",
		}}
		if old, ok := prev[key]; ok {
			node.Activity = old.Activity
			node.Label = old.Label
			node.BreathePhase = old.BreathePhase
			node.Orbiters = old.Orbiters
			node.Shockwaves = old.Shockwaves
		}
		s.organs[key] = node
	}

	// Agent colors are type-keyed, not seasonal; only recolor dressing
	s.seedMotes()
	s.seedFlows()
}

func (s *Scene) seedMotes() {
	s.motes = s.motes[:0]
	for i := 0; i < parameter.MoteCount; i++ {
		s.motes = append(s.motes, Mote{
			Pos: vmath.Vec3{
				X: s.randRange(-parameter.MoteBound, parameter.MoteBound),
				Y: s.randRange(-parameter.MoteBound, parameter.MoteBound),
				Z: s.randRange(-parameter.MoteBound, parameter.MoteBound),
			},
			Vel: vmath.Vec3{
				X: s.randVel(),
				Y: s.randVel(),
				Z: s.randVel(),
			},
			Size:  s.randRange(0.6, 1.8),
			Color: s.palette.Mote,
			Phase: s.randRange(0, 2*math.Pi),
		})
	}
}

func (s *Scene) seedFlows() {
	s.flows = s.flows[:0]
	for i := 0; i < parameter.FlowParticleCount; i++ {
		s.flows = append(s.flows, FlowParticle{
			Edge:  s.rng.Intn(len(Connections)),
			T:     s.rng.Float64(),
			Speed: s.randRange(parameter.FlowSpeedMin, parameter.FlowSpeedMax),
		})
	}
}

func (s *Scene) randRange(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

func (s *Scene) randVel() float64 {
	v := s.randRange(parameter.MoteSpeedMin, parameter.MoteSpeedMax)
	if s.rng.Intn(2) == 0 {
		return -v
	}
	return v
}

// SyncAgents diffs the supplied list (retired agents excluded) against the
// current agent nodes: new ids get a node with activity seeded from status
// and a fresh spawn ramp; ids absent from the list are removed immediately
// with no despawn animation. Ring indices are recomputed contiguously
func (s *Scene) SyncAgents(list []AgentSummary) {
	seen := make(map[string]bool, len(list))
	active := make([]AgentSummary, 0, len(list))
	for _, a := range list {
		if a.ID == "" || a.Status == "retired" || seen[a.ID] {
			continue
		}
		seen[a.ID] = true
		active = append(active, a)
	}

	for id := range s.agents {
		if !seen[id] {
			delete(s.agents, id)
		}
	}

	n := len(active)
	for i, a := range active {
		node, ok := s.agents[a.ID]
		if !ok {
			target := statusActivityTarget(a.Status)
			node = &AgentNode{
				Node: Node{
					Key:      a.ID,
					Kind:     KindAgent,
					Color:    AgentColor(a.AgentType),
					Activity: target,
					Label:    a.Status,
				},
				AgentType: a.AgentType,
				Target:    target,
			}
			s.agents[a.ID] = node
		}
		node.Status = a.Status
		node.Label = a.Status
		node.Target = statusActivityTarget(a.Status)
		node.Index = i
		node.Angle = 2 * math.Pi * float64(i) / float64(n)
		node.Pos = agentRingPosition(node.Angle)
	}
}

// agentRingPosition lays an agent on the ring around the cortex
func agentRingPosition(angle float64) vmath.Vec3 {
	sin, cos := math.Sincos(angle)
	return vmath.Vec3{
		X: cos * parameter.AgentRingRadius,
		Y: sin * parameter.AgentRingRadius * 0.35,
		Z: sin * parameter.AgentRingRadius * 0.6,
	}
}

// ApplyActivityEvent boosts an organ's activity toward 1, replaces its
// phase label and spawns a shockwave. If the organ was quiet before the
// boost it also gains an orbiter (bounded) and a throttled pulse request
// is raised. Unknown organ keys are ignored
func (s *Scene) ApplyActivityEvent(organKey, phase string) {
	node, ok := s.organs[organKey]
	if !ok {
		return
	}

	wasLow := node.Activity < parameter.LowActivityThreshold

	node.Activity += parameter.ActivityBoost
	if node.Activity > 1 {
		node.Activity = 1
	}
	if phase != "" {
		node.Label = phase
	}

	node.Shockwaves = append(node.Shockwaves, Shockwave{
		Radius: parameter.ShockwaveInitialRadius,
		Target: s.randRange(parameter.ShockwaveTargetMin, parameter.ShockwaveTargetMax),
		Life:   1.0,
	})

	if wasLow {
		if len(node.Orbiters) < parameter.MaxOrbiters {
			node.Orbiters = append(node.Orbiters, Orbiter{
				Angle:  s.randRange(0, 2*math.Pi),
				Radius: s.randRange(parameter.OrbiterRadiusMin, parameter.OrbiterRadiusMax),
				Speed:  parameter.OrbiterBaseSpeed,
				Phase:  s.randRange(0, 2*math.Pi),
			})
		}
		if s.onPulse != nil {
			s.onPulse(organKey)
		}
	}
}

// AddDrag applies a pointer drag delta to the camera: horizontal travel
// rotates about the vertical axis, vertical travel tilts, clamped
func (s *Scene) AddDrag(dxPx, dyPx float64) {
	s.Yaw += dxPx * parameter.DragYawPerPx
	s.Tilt += dyPx * parameter.DragTiltPerPx
	if s.Tilt < parameter.TiltMin {
		s.Tilt = parameter.TiltMin
	}
	if s.Tilt > parameter.TiltMax {
		s.Tilt = parameter.TiltMax
	}
}

// Organ returns the organ node for a key, nil if unknown
func (s *Scene) Organ(key string) *OrganNode {
	return s.organs[key]
}

// Agent returns the agent node for an id, nil if absent
func (s *Scene) Agent(id string) *AgentNode {
	return s.agents[id]
}

// AgentCount returns the number of active agent nodes
func (s *Scene) AgentCount() int {
	return len(s.agents)
}

// Projected returns last tick's depth-sorted projection cache. The slice
// is only valid until the next Tick
func (s *Scene) Projected() []ProjectedNode {
	return s.projected
}

// SnapshotOf returns the selection snapshot for a node key, and whether
// the key names a live node
func (s *Scene) SnapshotOf(key string) (Snapshot, bool) {
	if o, ok := s.organs[key]; ok {
		return o.snapshot(), true
	}
	if a, ok := s.agents[key]; ok {
		return a.snapshotAgent(), true
	}
	return Snapshot{}, false
}

// WashColor returns this tick's deterministic background wash tint:
// elapsed ticks modulo the organ count indexes the palette cycle
func (s *Scene) WashColor() colorful.Color {
	return s.palette.Wash[int(s.ticks)%len(s.palette.Wash)]
}

// Motes exposes the ambient particle pool to the renderer
func (s *Scene) Motes() []Mote {
	return s.motes
}

// Flows exposes the edge particles to the renderer
func (s *Scene) Flows() []FlowParticle {
	return s.flows
}

// Palette returns the active season palette
func (s *Scene) Palette() *Palette {
	return s.palette
}
