package driver

import (
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/goleak"

	"github.com/ggwoodsman/w0rd/audio"
	"github.com/ggwoodsman/w0rd/bridge"
	"github.com/ggwoodsman/w0rd/input"
	"github.com/ggwoodsman/w0rd/parameter"
	"github.com/ggwoodsman/w0rd/render"
	"github.com/ggwoodsman/w0rd/scene"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// nopSounder satisfies bridge.Sounder without an audio device
type nopSounder struct{}

func (nopSounder) Trigger(audio.Effect)                                 {}
func (nopSounder) TriggerThrottled(audio.Effect, string, time.Duration) {}
func (nopSounder) StartAmbient(string)                                  {}
func (nopSounder) AmbientActive() bool                                  { return false }

func newTestDriver(t *testing.T, cols, rows int) (*Driver, tcell.SimulationScreen, *scene.Scene) {
	t.Helper()

	sim := tcell.NewSimulationScreen("")
	if err := sim.Init(); err != nil {
		t.Fatalf("simulation screen init: %v", err)
	}
	sim.SetSize(cols, rows)
	t.Cleanup(sim.Fini)

	scn := scene.New("spring", float64(cols*parameter.CellWidthPx), float64(rows*parameter.CellHeightPx))
	scn.SetSeed(7)
	br := bridge.New(nil, scn, nopSounder{})
	renderer := render.NewRenderer(render.NewCanvas(cols, rows))
	ctrl := input.NewController(scn, nil)

	return New(nil, sim, scn, br, renderer, ctrl), sim, scn
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached before deadline")
}

// Start and Stop are idempotent and leak no goroutines (TestMain
// verifies the leak half)
func TestStartStopIdempotent(t *testing.T) {
	d, _, _ := newTestDriver(t, 80, 24)

	d.Start()
	d.Start()
	waitFor(t, func() bool { return d.Ticks() > 0 })
	d.Stop()
	d.Stop()
}

// The loop keeps ticking and the scene advances between frames
func TestLoopAdvancesScene(t *testing.T) {
	d, _, scn := newTestDriver(t, 80, 24)

	before := scn.AutoYaw
	d.Start()
	waitFor(t, func() bool { return d.Ticks() >= 3 })
	d.Stop()

	if scn.AutoYaw == before {
		t.Error("auto-rotation did not advance across ticks")
	}
}

// A restart after Stop works
func TestRestart(t *testing.T) {
	d, _, _ := newTestDriver(t, 80, 24)

	d.Start()
	waitFor(t, func() bool { return d.Ticks() > 0 })
	d.Stop()

	n := d.Ticks()
	d.Start()
	waitFor(t, func() bool { return d.Ticks() > n })
	d.Stop()
}

// A key handler returning false exits the loop on its own
func TestKeyHandlerStopsLoop(t *testing.T) {
	d, sim, _ := newTestDriver(t, 80, 24)
	d.SetKeyHandler(func(ev *tcell.EventKey) bool {
		return ev.Rune() != 'q'
	})

	d.Start()
	done := d.Done()
	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("loop did not exit on quit key")
	}
	d.Stop()
}

// The first-input callback fires exactly once, whatever the event mix
func TestUnlockFiresOnce(t *testing.T) {
	d, _, _ := newTestDriver(t, 80, 24)
	fired := 0
	d.SetUnlockHandler(func() { fired++ })

	d.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone))
	d.handleEvent(tcell.NewEventMouse(5, 5, tcell.Button1, tcell.ModNone))
	d.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'b', tcell.ModNone))

	if fired != 1 {
		t.Errorf("unlock fired %d times, want 1", fired)
	}
}

// A zero-size viewport skips drawing but the tick still advances state
func TestZeroSizeViewportKeepsTicking(t *testing.T) {
	d, _, scn := newTestDriver(t, 0, 0)

	before := scn.AutoYaw
	d.tick()
	d.tick()

	if scn.AutoYaw == before {
		t.Error("scene frozen on zero-size viewport")
	}
}

// A resize reaches both the canvas and the scene's virtual px bounds
func TestResizePropagates(t *testing.T) {
	d, _, scn := newTestDriver(t, 80, 24)

	d.handleEvent(tcell.NewEventResize(100, 40))

	w, h := d.renderer.Canvas().Size()
	if w != float64(100*parameter.CellWidthPx) || h != float64(40*parameter.CellHeightPx) {
		t.Errorf("canvas size = %vx%v after resize", w, h)
	}
	if scn.CanvasW != w || scn.CanvasH != h {
		t.Errorf("scene canvas = %vx%v, want %vx%v", scn.CanvasW, scn.CanvasH, w, h)
	}
}

// Press, motion past the threshold, release: the drag rotates the
// camera and never emits a selection
func TestMouseDragRotates(t *testing.T) {
	d, _, scn := newTestDriver(t, 80, 24)

	yaw := scn.Yaw
	d.handleMouse(tcell.NewEventMouse(40, 12, tcell.Button1, tcell.ModNone))
	d.handleMouse(tcell.NewEventMouse(44, 12, tcell.Button1, tcell.ModNone))
	d.handleMouse(tcell.NewEventMouse(48, 12, tcell.Button1, tcell.ModNone))
	d.handleMouse(tcell.NewEventMouse(48, 12, tcell.ButtonNone, tcell.ModNone))

	if scn.Yaw == yaw {
		t.Error("drag did not rotate the camera")
	}
	if scn.Dragging {
		t.Error("dragging flag still set after release")
	}
}

// A panicking step flips the supervisor to recoverable and later steps
// are skipped until Reset
func TestSupervisorRecovery(t *testing.T) {
	steps := 0
	resets := 0
	boom := true
	sup := NewSupervisor(nil, func() {
		steps++
		if boom {
			panic(errors.New("bad frame"))
		}
	}, func() { resets++ })

	if sup.Run() {
		t.Error("panicked run reported ok")
	}
	if !sup.Recoverable() {
		t.Error("supervisor not recoverable after panic")
	}
	if sup.Run() {
		t.Error("broken supervisor still stepping")
	}
	if steps != 1 {
		t.Errorf("steps = %d while broken, want 1", steps)
	}

	boom = false
	sup.Reset()
	if resets != 1 {
		t.Errorf("resets = %d, want 1", resets)
	}
	if !sup.Run() {
		t.Error("run failed after reset")
	}
}

// A panic inside the driver's own tick leaves the loop running and the
// supervisor recoverable; Reset rebuilds the scene
func TestDriverSurvivesTickPanic(t *testing.T) {
	d, _, scn := newTestDriver(t, 80, 24)

	// Corrupt the canvas reference so the draw path panics
	d.renderer = nil
	if d.sup.Run() {
		t.Error("tick with nil renderer reported ok")
	}
	if !d.sup.Recoverable() {
		t.Error("supervisor not recoverable")
	}

	d.renderer = render.NewRenderer(render.NewCanvas(80, 24))
	d.sup.Reset()
	if !d.sup.Run() {
		t.Error("tick failed after reset")
	}
	if scn.Organ("cortex") == nil {
		t.Error("scene missing organs after reset")
	}
}
