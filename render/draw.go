package render

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ggwoodsman/w0rd/scene"
)

// Node draw tuning, virtual px
const (
	organBaseRadius = 14.0
	agentBaseRadius = 8.0
	glowExtent      = 10.0
	labelOffsetY    = 22.0
)

// Renderer draws one frame of the scene onto a canvas. It never mutates
// scene state; all animation lives in scene.Tick
type Renderer struct {
	canvas *Canvas
}

// NewRenderer wraps a canvas
func NewRenderer(canvas *Canvas) *Renderer {
	return &Renderer{canvas: canvas}
}

// Canvas returns the underlying canvas (for flush and resize)
func (r *Renderer) Canvas() *Canvas {
	return r.canvas
}

// Draw composites the full frame: wash, connection edges, flow particles,
// motes, then nodes back-to-front from the scene's depth-sorted cache.
// Higher activity always draws larger and brighter
func (r *Renderer) Draw(s *scene.Scene) {
	r.canvas.Clear(s.WashColor())

	r.drawConnections(s)
	r.drawFlows(s)
	r.drawMotes(s)

	for _, p := range s.Projected() {
		snap, ok := s.SnapshotOf(p.Key)
		if !ok {
			continue
		}
		switch p.Kind {
		case scene.KindOrgan:
			r.drawOrgan(s, s.Organ(p.Key), p, snap)
		case scene.KindAgent:
			r.drawAgent(s, s.Agent(p.Key), p)
		}
	}
}

func (r *Renderer) drawConnections(s *scene.Scene) {
	col := s.Palette().Connection
	for _, c := range scene.Connections {
		a := s.ProjectPoint(scene.OrganPosition(c.A))
		b := s.ProjectPoint(scene.OrganPosition(c.B))
		r.canvas.Line(a.X, a.Y, b.X, b.Y, '·', col)
	}
}

func (r *Renderer) drawFlows(s *scene.Scene) {
	col := s.Palette().Flow
	for _, f := range s.Flows() {
		p := s.ProjectPoint(s.FlowPosition(f))
		r.canvas.PlotPx(p.X, p.Y, '∙', col)
	}
}

func (r *Renderer) drawMotes(s *scene.Scene) {
	for _, m := range s.Motes() {
		// Trail first so the head overwrites it
		for _, t := range m.Trail {
			tp := s.ProjectPoint(t)
			r.canvas.PlotPx(tp.X, tp.Y, '·', dim(m.Color, 0.5))
		}
		p := s.ProjectPoint(m.Pos)
		r.canvas.Dot(p.X, p.Y, m.Size*p.Scale*4, m.Color)
	}
}

func (r *Renderer) drawOrgan(s *scene.Scene, node *scene.OrganNode, p scene.ProjectedNode, snap scene.Snapshot) {
	if node == nil {
		return
	}
	radius := nodeRadius(organBaseRadius, node.Activity, node.BreathePhase, p.Scale)

	r.drawShockwaves(s, &node.Node, p)
	r.drawGlow(p, radius, node.Activity, node.Color)
	r.canvas.Dot(p.X, p.Y, radius, brighten(node.Color, node.Activity))
	r.drawOrbiters(&node.Node, p, radius)

	r.canvas.Label(p.X-float64(len(node.Key))*3, p.Y+labelOffsetY*p.Scale, node.Key, node.Color)
	if node.Label != "" && node.Activity > 0.15 {
		r.canvas.Label(p.X-float64(len(node.Label))*3, p.Y+labelOffsetY*p.Scale+16,
			node.Label, dim(node.Color, 0.7))
	}
}

func (r *Renderer) drawAgent(s *scene.Scene, node *scene.AgentNode, p scene.ProjectedNode) {
	if node == nil {
		return
	}
	// Spawn ramp scales the whole treatment in from nothing
	radius := nodeRadius(agentBaseRadius, node.Activity, node.BreathePhase, p.Scale) * node.Spawn
	if radius <= 0 {
		return
	}

	r.drawShockwaves(s, &node.Node, p)
	r.drawGlow(p, radius, node.Activity, node.Color)
	r.canvas.Dot(p.X, p.Y, radius, brighten(node.Color, node.Activity))
	r.drawOrbiters(&node.Node, p, radius)

	if node.Spawn >= 1 {
		r.canvas.Label(p.X-float64(len(node.Status))*3, p.Y+labelOffsetY*p.Scale,
			node.Status, dim(node.Color, 0.8))
	}
}

// nodeRadius derives the drawn radius: activity grows it monotonically,
// the breathe phase adds idle oscillation, perspective scales it
func nodeRadius(base, activity, breathe, scale float64) float64 {
	breatheMod := 1 + 0.12*math.Sin(breathe)
	return base * (0.7 + 0.6*activity) * breatheMod * scale
}

func (r *Renderer) drawGlow(p scene.ProjectedNode, radius, activity float64, col colorful.Color) {
	if activity < 0.05 {
		return
	}
	r.canvas.Ring(p.X, p.Y, radius+glowExtent*activity*p.Scale, '░', dim(col, 0.4+0.4*activity))
}

func (r *Renderer) drawShockwaves(s *scene.Scene, node *scene.Node, p scene.ProjectedNode) {
	for _, w := range node.Shockwaves {
		r.canvas.Ring(p.X, p.Y, w.Radius*p.Scale, '○', dim(node.Color, w.Life))
	}
}

func (r *Renderer) drawOrbiters(node *scene.Node, p scene.ProjectedNode, radius float64) {
	for _, o := range node.Orbiters {
		ox := p.X + (radius+o.Radius*p.Scale)*math.Cos(o.Angle)
		oy := p.Y + (radius+o.Radius*p.Scale)*math.Sin(o.Angle)*0.6 +
			3*math.Sin(o.Phase+o.Angle)
		r.canvas.PlotPx(ox, oy, '•', node.Color)
	}
}

// brighten lightens a color with activity; monotone in activity
func brighten(c colorful.Color, activity float64) colorful.Color {
	l, a, b := c.Lab()
	return colorful.Lab(l+(1-l)*0.5*activity, a, b).Clamped()
}

// dim scales a color toward black
func dim(c colorful.Color, f float64) colorful.Color {
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return colorful.Color{R: c.R * f, G: c.G * f, B: c.B * f}
}
