package scene

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Season keys delivered by the organism backend
const (
	SeasonSpring = "spring"
	SeasonSummer = "summer"
	SeasonAutumn = "autumn"
	SeasonWinter = "winter"
)

// Palette holds season-dependent colors for every organ plus scene dressing
type Palette struct {
	Organs     map[string]colorful.Color
	Mote       colorful.Color
	Flow       colorful.Color
	Connection colorful.Color
	Wash       []colorful.Color // background wash cycle, one entry per organ
}

func hex(s string) colorful.Color {
	c, _ := colorful.Hex(s)
	return c
}

// palettes is keyed by season. Unknown seasons fall back to spring
var palettes = map[string]*Palette{
	SeasonSpring: buildPalette(map[string]string{
		OrganCortex:        "#7ec987",
		OrganMemory:        "#5aa9d6",
		OrganDreaming:      "#b48ce0",
		OrganIntent:        "#e0b35a",
		OrganConsciousness: "#8ed6c8",
		OrganAutonomy:      "#d98a8a",
		OrganSelfModel:     "#a3c76d",
		OrganInnerVoice:    "#d6a3c9",
		OrganFractal:       "#7d9fd1",
	}, "#3c5a46", "#9fd3a8"),
	SeasonSummer: buildPalette(map[string]string{
		OrganCortex:        "#4caf6d",
		OrganMemory:        "#2f8fd4",
		OrganDreaming:      "#9a5fe0",
		OrganIntent:        "#f0a32f",
		OrganConsciousness: "#3fc4ad",
		OrganAutonomy:      "#e06a5a",
		OrganSelfModel:     "#8bc24a",
		OrganInnerVoice:    "#e07ab8",
		OrganFractal:       "#4a7de0",
	}, "#2e5238", "#7fe09a"),
	SeasonAutumn: buildPalette(map[string]string{
		OrganCortex:        "#c98a4b",
		OrganMemory:        "#a06b9a",
		OrganDreaming:      "#8a6bc9",
		OrganIntent:        "#d6763c",
		OrganConsciousness: "#b59a5a",
		OrganAutonomy:      "#c75b4a",
		OrganSelfModel:     "#ad8f3c",
		OrganInnerVoice:    "#c98a9f",
		OrganFractal:       "#8a7db5",
	}, "#4a3c2e", "#d6ad7a"),
	SeasonWinter: buildPalette(map[string]string{
		OrganCortex:        "#9ab8c9",
		OrganMemory:        "#7a9fd1",
		OrganDreaming:      "#a89fd6",
		OrganIntent:        "#c9c3a3",
		OrganConsciousness: "#8fc9c9",
		OrganAutonomy:      "#b58fa3",
		OrganSelfModel:     "#a3b5ad",
		OrganInnerVoice:    "#c3a8c9",
		OrganFractal:       "#8fa3c9",
	}, "#2e3c4a", "#b8d6e0"),
}

func buildPalette(organs map[string]string, base, accent string) *Palette {
	p := &Palette{
		Organs:     make(map[string]colorful.Color, len(organs)),
		Mote:       hex(base).BlendLab(hex(accent), 0.55),
		Flow:       hex(accent),
		Connection: hex(base),
	}
	for key, h := range organs {
		p.Organs[key] = hex(h)
	}
	// Wash cycle follows the fixed organ order so the "random" background
	// tint is a deterministic function of elapsed ticks
	for _, key := range OrganKeys {
		p.Wash = append(p.Wash, p.Organs[key].BlendLab(hex(base), 0.8))
	}
	return p
}

// PaletteFor returns the palette for a season, falling back to spring
func PaletteFor(season string) *Palette {
	if p, ok := palettes[season]; ok {
		return p
	}
	return palettes[SeasonSpring]
}

// KnownSeason reports whether the season key has its own palette
func KnownSeason(season string) bool {
	_, ok := palettes[season]
	return ok
}

// agentTypeColors keys agent node color by agent_type. Types come from the
// backend's capability tiers; unknown types share a neutral tone
var agentTypeColors = map[string]colorful.Color{
	"analyze":    hex("#5aa9d6"),
	"code_gen":   hex("#7ec987"),
	"code_exec":  hex("#e0b35a"),
	"web_search": hex("#b48ce0"),
	"file_read":  hex("#8ed6c8"),
	"file_write": hex("#d98a8a"),
	"summarize":  hex("#a3c76d"),
	"decompose":  hex("#d6a3c9"),
}

var agentDefaultColor = hex("#9aa3ad")

// AgentColor returns the display color for an agent type
func AgentColor(agentType string) colorful.Color {
	if c, ok := agentTypeColors[agentType]; ok {
		return c
	}
	return agentDefaultColor
}
