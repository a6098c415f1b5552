package scene

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ggwoodsman/w0rd/vmath"
)

// NodeKind tags the two node variants sharing the base animation fields
type NodeKind int

const (
	KindOrgan NodeKind = iota
	KindAgent
)

func (k NodeKind) String() string {
	if k == KindAgent {
		return "agent"
	}
	return "organ"
}

// Orbiter is a small satellite decoration circling a node
type Orbiter struct {
	Angle  float64 // radians, advanced each tick scaled by activity
	Radius float64 // virtual px at scale 1
	Speed  float64 // base radians per tick before activity scaling
	Phase  float64 // vertical bob offset
}

// Shockwave is an expanding ring spawned by an activity event
type Shockwave struct {
	Radius float64 // current radius, virtual px at scale 1
	Target float64 // randomized expansion target
	Life   float64 // 1.0 at spawn, exponential decay, culled near zero
}

// Node carries the animation fields shared by both variants
type Node struct {
	Key      string
	Kind     NodeKind
	Pos      vmath.Vec3
	Color    colorful.Color
	Activity float64 // always within [0,1]
	Label    string  // organ phase label or agent status

	BreathePhase float64
	Orbiters     []Orbiter
	Shockwaves   []Shockwave
}

// OrganNode is one of the nine fixed subsystems
type OrganNode struct {
	Node
}

// AgentNode represents one non-retired worker agent, ring-laid-out around
// the cortex
type AgentNode struct {
	Node

	AgentType string
	Status    string
	Index     int     // contiguous position among active agents
	Angle     float64 // ring angle, 2π·Index/count
	Target    float64 // status-derived activity target, eased toward
	Spawn     float64 // spawn-in ramp, 0 -> 1 after creation
}

// Mote is an ambient background particle wrapping at a cubic boundary
type Mote struct {
	Pos   vmath.Vec3
	Vel   vmath.Vec3
	Size  float64
	Color colorful.Color
	Phase float64
	Trail []vmath.Vec3
}

// FlowParticle travels along one edge of the connection topology
type FlowParticle struct {
	Edge  int     // index into Connections
	T     float64 // parametric position in [0,1]
	Speed float64
}

// Snapshot is the immutable node state carried by a selection event
type Snapshot struct {
	Key      string
	Kind     NodeKind
	Activity float64
	Label    string
	Color    colorful.Color

	// Agent-only fields, zero-valued for organs
	AgentType string
	Status    string
}

// ProjectedNode is one frame's screen-space record of a node, cached for
// hit testing. Recomputed every tick
type ProjectedNode struct {
	Key   string
	Kind  NodeKind
	X, Y  float64 // virtual px
	Scale float64
	Depth float64
}

func (n *Node) snapshot() Snapshot {
	return Snapshot{
		Key:      n.Key,
		Kind:     n.Kind,
		Activity: n.Activity,
		Label:    n.Label,
		Color:    n.Color,
	}
}

func (a *AgentNode) snapshotAgent() Snapshot {
	s := a.snapshot()
	s.AgentType = a.AgentType
	s.Status = a.Status
	return s
}

// statusActivityTarget maps an agent status to the activity level its
// smoothed value eases toward. Statuses come from the backend agent
// registry; unknown statuses idle
func statusActivityTarget(status string) float64 {
	switch status {
	case "working":
		return 0.85
	case "awaiting_approval":
		return 0.55
	case "spawning":
		return 0.35
	case "completed":
		return 0.15
	default: // idle and anything unrecognized
		return 0.3
	}
}
