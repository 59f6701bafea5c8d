package scene

import (
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// RelationCategory is the closed set of relationship kinds the graph
// view styles distinctly. Unknown strings map to RelationOther so a new
// category coming from the data layer degrades to a neutral style
// instead of failing a lookup.
type RelationCategory int

const (
	RelationOther RelationCategory = iota
	RelationAlly
	RelationRival
	RelationFamily
	RelationRomance
	RelationMentor
)

// ParseRelationCategory maps a data-layer category string onto the
// closed enum, case-insensitively.
func ParseRelationCategory(s string) RelationCategory {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ally", "alliance", "friend":
		return RelationAlly
	case "rival", "enemy", "conflict":
		return RelationRival
	case "family":
		return RelationFamily
	case "romance", "love":
		return RelationRomance
	case "mentor", "mentorship":
		return RelationMentor
	default:
		return RelationOther
	}
}

// Color returns the line color for the category.
func (c RelationCategory) Color() drawing.Color {
	switch c {
	case RelationAlly:
		return drawing.ColorFromHex("2e86de")
	case RelationRival:
		return drawing.ColorFromHex("e74c3c")
	case RelationFamily:
		return drawing.ColorFromHex("27ae60")
	case RelationRomance:
		return drawing.ColorFromHex("e84393")
	case RelationMentor:
		return drawing.ColorFromHex("8e44ad")
	default:
		return drawing.ColorFromHex("95a5a6")
	}
}

// TimelineLayer is the closed set of timeline lanes.
type TimelineLayer int

const (
	LayerOther TimelineLayer = iota
	LayerPlot
	LayerCharacter
	LayerWorld
	LayerCustom
)

// ParseTimelineLayer maps a data-layer lane string onto the closed enum.
func ParseTimelineLayer(s string) TimelineLayer {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "plot":
		return LayerPlot
	case "character", "characters":
		return LayerCharacter
	case "world", "worldbuilding":
		return LayerWorld
	case "custom", "user":
		return LayerCustom
	default:
		return LayerOther
	}
}

// Color returns the event fill color for the lane.
func (l TimelineLayer) Color() drawing.Color {
	switch l {
	case LayerPlot:
		return drawing.ColorFromHex("2980b9")
	case LayerCharacter:
		return drawing.ColorFromHex("d35400")
	case LayerWorld:
		return drawing.ColorFromHex("16a085")
	case LayerCustom:
		return drawing.ColorFromHex("f39c12")
	default:
		return drawing.ColorFromHex("7f8c8d")
	}
}

// EntityColor resolves an optional per-entity hex override against a
// category fallback. Malformed or empty overrides fall back silently.
func EntityColor(override string, fallback drawing.Color) drawing.Color {
	hex := strings.TrimPrefix(strings.TrimSpace(override), "#")
	if len(hex) != 6 {
		return fallback
	}
	for _, r := range hex {
		ok := (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
		if !ok {
			return fallback
		}
	}
	return drawing.ColorFromHex(hex)
}

// Radius tiers. Major entities get the larger marker.
const (
	RadiusMajor = 14.0
	RadiusMinor = 8.0
)

// EntityRadius returns the marker radius for the tier flag.
func EntityRadius(major bool) float64 {
	if major {
		return RadiusMajor
	}
	return RadiusMinor
}
