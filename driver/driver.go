package driver

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/ggwoodsman/w0rd/bridge"
	"github.com/ggwoodsman/w0rd/input"
	"github.com/ggwoodsman/w0rd/parameter"
	"github.com/ggwoodsman/w0rd/render"
	"github.com/ggwoodsman/w0rd/scene"
)

// Driver owns the frame loop. It is the single goroutine that mutates
// scene state: per tick it drains the bridge queue, advances the scene
// and redraws. Terminal events are funneled into the same loop so
// pointer handling never races a tick
type Driver struct {
	log      *zap.Logger
	screen   tcell.Screen
	scn      *scene.Scene
	br       *bridge.Bridge
	renderer *render.Renderer
	ctrl     *input.Controller
	sup      *Supervisor

	// onKey runs for every key event; returning false stops the loop
	onKey func(*tcell.EventKey) bool

	// onFirstInput fires once, on the first key or mouse event. The
	// audio unlock gesture hangs off this
	onFirstInput func()
	sawInput     bool

	mouseDown bool

	interval time.Duration
	ticks    atomic.Uint64

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func New(log *zap.Logger, screen tcell.Screen, scn *scene.Scene, br *bridge.Bridge, renderer *render.Renderer, ctrl *input.Controller) *Driver {
	if log == nil {
		log = zap.NewNop()
	}
	d := &Driver{
		log:      log,
		screen:   screen,
		scn:      scn,
		br:       br,
		renderer: renderer,
		ctrl:     ctrl,
		interval: parameter.FrameInterval,
	}
	d.sup = NewSupervisor(log, d.tick, d.resetScene)
	return d
}

// SetInterval overrides the tick interval. Call before Start
func (d *Driver) SetInterval(interval time.Duration) {
	if interval > 0 {
		d.interval = interval
	}
}

// SetKeyHandler installs the key callback; return false to stop the loop
func (d *Driver) SetKeyHandler(fn func(*tcell.EventKey) bool) {
	d.onKey = fn
}

// SetUnlockHandler installs the one-shot first-input callback
func (d *Driver) SetUnlockHandler(fn func()) {
	d.onFirstInput = fn
}

// Supervisor exposes the error boundary for host Reset wiring
func (d *Driver) Supervisor() *Supervisor {
	return d.sup
}

// Ticks returns the number of completed frame steps
func (d *Driver) Ticks() uint64 {
	return d.ticks.Load()
}

// Start launches the loop. Idempotent: a running driver is left alone
func (d *Driver) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return
	}
	d.running = true
	d.stopCh = make(chan struct{})
	d.doneCh = make(chan struct{})
	go d.loop(d.stopCh, d.doneCh)
}

// Stop halts the loop and waits for it to finish. Idempotent
func (d *Driver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.running {
		return
	}
	d.running = false
	close(d.stopCh)
	<-d.doneCh
}

// Done is closed when the loop exits, including self-initiated exits
// from the key handler
func (d *Driver) Done() <-chan struct{} {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.doneCh
}

func (d *Driver) loop(stopCh chan struct{}, doneCh chan struct{}) {
	defer close(doneCh)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	// ChannelEvents exits on quit, so the poller cannot leak
	evCh := make(chan tcell.Event, 16)
	go d.screen.ChannelEvents(evCh, stopCh)

	// Prime the sizes before the first frame
	w, h := d.screen.Size()
	d.applyResize(w, h)

	for {
		select {
		case <-stopCh:
			return
		case ev := <-evCh:
			if ev == nil {
				return
			}
			if !d.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			if d.sup.Run() {
				d.ticks.Add(1)
			}
		}
	}
}

func (d *Driver) tick() {
	d.br.Drain()
	d.scn.Tick()

	// A zero-size viewport skips drawing but keeps the loop alive; the
	// next resize restores rendering
	if w, h := d.renderer.Canvas().Size(); w <= 0 || h <= 0 {
		return
	}
	d.renderer.Draw(d.scn)
	d.renderer.Canvas().Flush(d.screen)
}

func (d *Driver) resetScene() {
	d.scn.Initialize(d.scn.Season)
	d.log.Info("scene rebuilt after recovery")
}

func (d *Driver) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		d.applyResize(w, h)
		d.screen.Sync()

	case *tcell.EventKey:
		d.noteInput()
		if d.onKey != nil && !d.onKey(ev) {
			return false
		}

	case *tcell.EventMouse:
		d.noteInput()
		d.handleMouse(ev)
	}
	return true
}

func (d *Driver) handleMouse(ev *tcell.EventMouse) {
	cx, cy := ev.Position()
	px, py := input.CellToPx(cx, cy)
	pressed := ev.Buttons()&tcell.Button1 != 0

	switch {
	case pressed && !d.mouseDown:
		d.mouseDown = true
		d.ctrl.Down(px, py, input.PointerMouse)
	case pressed && d.mouseDown:
		d.ctrl.Move(px, py)
	case !pressed && d.mouseDown:
		d.mouseDown = false
		d.ctrl.Up(px, py)
	}
}

func (d *Driver) applyResize(cols, rows int) {
	d.renderer.Canvas().Resize(cols, rows)
	d.scn.Resize(float64(cols*parameter.CellWidthPx), float64(rows*parameter.CellHeightPx))
	d.log.Debug("viewport resized", zap.Int("cols", cols), zap.Int("rows", rows))
}

func (d *Driver) noteInput() {
	if d.sawInput {
		return
	}
	d.sawInput = true
	if d.onFirstInput != nil {
		d.onFirstInput()
	}
}
