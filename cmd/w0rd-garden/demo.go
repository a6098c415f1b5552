package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/ggwoodsman/w0rd/bridge"
	"github.com/ggwoodsman/w0rd/scene"
)

// Synthetic organism feed: random organ phases with occasional agent
// roster churn, so the garden is alive without a backend attached

var demoPhases = []string{
	"planting", "harvest_eval", "compost_eval", "dreaming",
	"deciding", "reflecting", "listening", "wandering",
}

var demoAgentTypes = []string{
	"analyze", "code_gen", "code_exec", "web_search",
	"file_read", "file_write", "summarize", "decompose",
}

func startDemoFeed(br *bridge.Bridge) chan struct{} {
	stop := make(chan struct{})

	go func() {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		ticker := time.NewTicker(900 * time.Millisecond)
		defer ticker.Stop()

		var roster []scene.AgentSummary
		nextID := 0

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				organ := scene.OrganKeys[rng.Intn(len(scene.OrganKeys))]
				phase := demoPhases[rng.Intn(len(demoPhases))]
				br.PushActivity(organ, phase, "", "")

				switch rng.Intn(10) {
				case 0:
					if len(roster) < 6 {
						nextID++
						roster = append(roster, scene.AgentSummary{
							ID:        fmt.Sprintf("agent-%d", nextID),
							Name:      fmt.Sprintf("worker %d", nextID),
							AgentType: demoAgentTypes[rng.Intn(len(demoAgentTypes))],
							Status:    "spawning",
						})
						br.PushAgents(cloneRoster(roster))
					}
				case 1:
					if len(roster) > 0 {
						i := rng.Intn(len(roster))
						roster[i].Status = nextStatus(roster[i].Status)
						if roster[i].Status == "retired" {
							roster = append(roster[:i], roster[i+1:]...)
						}
						br.PushAgents(cloneRoster(roster))
					}
				}
			}
		}
	}()

	return stop
}

// cloneRoster snapshots the roster; the queue consumer reads it on
// another goroutine while the feed keeps mutating its own copy
func cloneRoster(roster []scene.AgentSummary) []scene.AgentSummary {
	return append([]scene.AgentSummary(nil), roster...)
}

func nextStatus(s string) string {
	switch s {
	case "spawning":
		return "working"
	case "working":
		return "completed"
	default:
		return "retired"
	}
}
