package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ggwoodsman/w0rd/audio"
)

// Audition tool for the effect recipes and the seasonal drone. Runs
// without a terminal UI so recipes can be tuned in isolation

var (
	effectFlag  = flag.String("effect", "", "Play one effect by name and exit")
	allFlag     = flag.Bool("all", false, "Play every effect in sequence")
	ambientFlag = flag.String("ambient", "", "Hold the seasonal drone for a few seconds")
	volumeFlag  = flag.Float64("volume", 0.8, "Master volume in [0,1]")
	gapFlag     = flag.Duration("gap", 900*time.Millisecond, "Pause between effects with -all")
)

func main() {
	flag.Parse()

	engine := audio.NewEngine(nil)
	defer engine.Teardown()

	engine.Unlock()
	engine.SetVolume(*volumeFlag)

	switch {
	case *effectFlag != "":
		eff := audio.Effect(*effectFlag)
		if !knownEffect(eff) {
			fmt.Fprintf(os.Stderr, "unknown effect %q; choose one of:\n", *effectFlag)
			for _, e := range audio.Effects {
				fmt.Fprintf(os.Stderr, "  %s\n", e)
			}
			os.Exit(1)
		}
		fmt.Printf("playing %s\n", eff)
		engine.Trigger(eff)
		time.Sleep(2 * time.Second)

	case *allFlag:
		for _, eff := range audio.Effects {
			fmt.Printf("playing %s\n", eff)
			engine.Trigger(eff)
			time.Sleep(*gapFlag)
		}
		time.Sleep(2 * time.Second)

	case *ambientFlag != "":
		fmt.Printf("holding %s drone\n", *ambientFlag)
		engine.StartAmbient(*ambientFlag)
		time.Sleep(8 * time.Second)
		engine.StopAmbient()
		time.Sleep(2 * time.Second)

	default:
		flag.Usage()
		os.Exit(2)
	}
}

func knownEffect(eff audio.Effect) bool {
	for _, e := range audio.Effects {
		if e == eff {
			return true
		}
	}
	return false
}
