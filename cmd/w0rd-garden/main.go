package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/ggwoodsman/w0rd/audio"
	"github.com/ggwoodsman/w0rd/bridge"
	"github.com/ggwoodsman/w0rd/config"
	"github.com/ggwoodsman/w0rd/driver"
	"github.com/ggwoodsman/w0rd/input"
	"github.com/ggwoodsman/w0rd/parameter"
	"github.com/ggwoodsman/w0rd/render"
	"github.com/ggwoodsman/w0rd/scene"
)

var (
	configFlag = flag.String("config", "w0rd.toml", "Path to the settings file")
	seasonFlag = flag.String("season", "", "Season override: spring, summer, autumn, winter")
	debugFlag  = flag.String("debug", "", "Write debug logs to this file")
	demoFlag   = flag.Bool("demo", true, "Feed the scene with synthetic organism events")
)

func main() {
	var screen tcell.Screen

	// Panic recovery: restore the terminal before printing anything
	defer func() {
		if r := recover(); r != nil {
			if screen != nil {
				screen.Fini()
			}
			fmt.Fprintf(os.Stderr, "\nw0rd-garden crashed: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	cfg, cfgErr := config.Load(*configFlag)
	if *seasonFlag != "" && scene.KnownSeason(*seasonFlag) {
		cfg.Season = *seasonFlag
	}
	if *debugFlag != "" {
		cfg.LogFile = *debugFlag
	}

	log := newLogger(cfg.LogFile)
	defer func() { _ = log.Sync() }()
	if cfgErr != nil {
		log.Warn("config not loaded, using defaults", zap.Error(cfgErr))
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.Clear()

	cols, rows := screen.Size()
	scn := scene.New(cfg.Season,
		float64(cols*parameter.CellWidthPx),
		float64(rows*parameter.CellHeightPx))

	engine := audio.NewEngine(log)
	defer engine.Teardown()

	br := bridge.New(log, scn, engine)
	renderer := render.NewRenderer(render.NewCanvas(cols, rows))

	ctrl := input.NewController(scn, func(sel *input.Selection) {
		if sel == nil {
			log.Debug("deselected")
			return
		}
		engine.Trigger(audio.EffectClick)
		log.Debug("selected",
			zap.String("key", sel.Key),
			zap.Float64("x", sel.ScreenX),
			zap.Float64("y", sel.ScreenY))
	})

	d := driver.New(log, screen, scn, br, renderer, ctrl)
	d.SetInterval(cfg.FrameInterval())

	// First input is the unlock gesture: bring up audio, apply settings,
	// start the drone
	d.SetUnlockHandler(func() {
		engine.Unlock()
		engine.SetVolume(cfg.Volume)
		engine.SetMuted(cfg.Muted)
		if cfg.Ambient && !cfg.Muted {
			engine.StartAmbient(scn.Season)
		}
	})

	d.SetKeyHandler(func(ev *tcell.EventKey) bool {
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Rune() == 'q':
			return false
		case ev.Rune() == 'm':
			engine.SetMuted(!engine.IsMuted())
		case ev.Rune() == '+', ev.Rune() == '=':
			engine.SetVolume(engine.Volume() + 0.1)
		case ev.Rune() == '-':
			engine.SetVolume(engine.Volume() - 0.1)
		case ev.Rune() == 'r':
			if d.Supervisor().Recoverable() {
				d.Supervisor().Reset()
			}
		case ev.Rune() >= '1' && ev.Rune() <= '4':
			seasons := []string{"spring", "summer", "autumn", "winter"}
			br.PushSeason(seasons[ev.Rune()-'1'])
		}
		return true
	})

	d.Start()
	defer d.Stop()

	if *demoFlag {
		stopDemo := startDemoFeed(br)
		defer close(stopDemo)
	}

	<-d.Done()
}

// newLogger writes structured logs to a file, since the terminal itself
// is owned by tcell. Empty path disables logging entirely
func newLogger(path string) *zap.Logger {
	if path == "" {
		return zap.NewNop()
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}
