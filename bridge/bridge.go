package bridge

import (
	"time"

	"go.uber.org/zap"

	"github.com/ggwoodsman/w0rd/audio"
	"github.com/ggwoodsman/w0rd/parameter"
	"github.com/ggwoodsman/w0rd/scene"
)

// Sounder is the audio surface the bridge drives. The engine satisfies
// it; tests substitute a recorder
type Sounder interface {
	Trigger(audio.Effect)
	TriggerThrottled(eff audio.Effect, key string, cooldown time.Duration)
	StartAmbient(season string)
	AmbientActive() bool
}

// Organ phases that carry a dedicated one-shot on top of the activity
// boost. Every other phase only animates
var phaseEffects = map[string]audio.Effect{
	"planting":     audio.EffectPlant,
	"harvest_eval": audio.EffectHarvest,
	"compost_eval": audio.EffectCompost,
	"dreaming":     audio.EffectDream,
}

// Bridge drains the inbound queue once per tick and translates domain
// events into scene mutations and audio triggers. Producers push from
// any goroutine; Drain runs only on the frame loop
type Bridge struct {
	log   *zap.Logger
	queue *Queue
	scene *scene.Scene
	snd   Sounder

	// last seen agent statuses, for spawn/complete one-shots
	agentStatus map[string]string
}

func New(log *zap.Logger, s *scene.Scene, snd Sounder) *Bridge {
	if log == nil {
		log = zap.NewNop()
	}
	b := &Bridge{
		log:         log,
		queue:       NewQueue(),
		scene:       s,
		snd:         snd,
		agentStatus: make(map[string]string),
	}
	s.SetPulseHandler(func(organKey string) {
		snd.TriggerThrottled(audio.EffectPulse, organKey, parameter.PulseCooldown)
	})
	return b
}

// PushActivity enqueues an organ activity record. Any goroutine
func (b *Bridge) PushActivity(organ, phase, content, token string) {
	b.queue.Push(Event{
		Type:     EventActivity,
		Activity: ActivityPayload{Organ: organ, Phase: phase, Content: content, Token: token},
	})
}

// PushSeason enqueues a season update. Any goroutine
func (b *Bridge) PushSeason(season string) {
	b.queue.Push(Event{Type: EventSeason, Season: SeasonPayload{Season: season}})
}

// PushAgents enqueues a full agent roster. Any goroutine
func (b *Bridge) PushAgents(agents []scene.AgentSummary) {
	b.queue.Push(Event{Type: EventAgents, Agents: AgentsPayload{Agents: agents}})
}

// Drain applies all pending events in arrival order. Frame loop only
func (b *Bridge) Drain() {
	for _, ev := range b.queue.Consume() {
		switch ev.Type {
		case EventActivity:
			b.applyActivity(ev.Activity)
		case EventSeason:
			b.applySeason(ev.Season)
		case EventAgents:
			b.applyAgents(ev.Agents)
		}
	}
}

func (b *Bridge) applyActivity(p ActivityPayload) {
	if p.Organ == "" || b.scene.Organ(p.Organ) == nil {
		b.log.Debug("activity for unknown organ ignored", zap.String("organ", p.Organ))
		return
	}
	b.scene.ApplyActivityEvent(p.Organ, p.Phase)
	if eff, ok := phaseEffects[p.Phase]; ok {
		b.snd.Trigger(eff)
	}
}

func (b *Bridge) applySeason(p SeasonPayload) {
	if !scene.KnownSeason(p.Season) {
		b.log.Debug("unknown season ignored", zap.String("season", p.Season))
		return
	}
	if p.Season == b.scene.Season {
		return
	}
	b.scene.Initialize(p.Season)
	b.snd.Trigger(audio.EffectSeasonChange)
	if b.snd.AmbientActive() {
		b.snd.StartAmbient(p.Season)
	}
}

func (b *Bridge) applyAgents(p AgentsPayload) {
	seen := make(map[string]string, len(p.Agents))
	for _, a := range p.Agents {
		if a.ID == "" || a.Status == "retired" {
			continue
		}
		if _, dup := seen[a.ID]; dup {
			continue
		}
		seen[a.ID] = a.Status

		prev, known := b.agentStatus[a.ID]
		if !known {
			b.snd.Trigger(audio.EffectAgentSpawn)
		} else if prev != "completed" && a.Status == "completed" {
			b.snd.Trigger(audio.EffectAgentComplete)
		}
	}

	b.scene.SyncAgents(p.Agents)
	b.agentStatus = seen
}
