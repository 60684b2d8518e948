package mtlximport

import (
	"slices"
	"strings"
)

// Channel is a physical material property a texture map can drive.
type Channel string

const (
	// ChannelBaseColor is the albedo/diffuse map.
	ChannelBaseColor Channel = "base_color"
	// ChannelRoughness is the specular roughness map.
	ChannelRoughness Channel = "roughness"
	// ChannelNormal is the tangent space normal map.
	ChannelNormal Channel = "normal"
	// ChannelAO is the ambient occlusion map.
	ChannelAO Channel = "ao"
	// ChannelDisplacement is the height map.
	ChannelDisplacement Channel = "displacement"
	// ChannelTranslucency is the subsurface weight map.
	ChannelTranslucency Channel = "translucency"
	// ChannelOpacity is the cutout/alpha map.
	ChannelOpacity Channel = "opacity"
	// ChannelMetalness is the metallic map.
	ChannelMetalness Channel = "metalness"
)

// Channels lists every channel in resolution order.
var Channels = []Channel{
	ChannelBaseColor,
	ChannelRoughness,
	ChannelNormal,
	ChannelMetalness,
	ChannelAO,
	ChannelTranslucency,
	ChannelOpacity,
	ChannelDisplacement,
}

// channelTitles are the human labels used in selection prompts.
var channelTitles = map[Channel]string{
	ChannelBaseColor:    "Base Color",
	ChannelRoughness:    "Roughness",
	ChannelNormal:       "Normal",
	ChannelAO:           "Ambient Occlusion",
	ChannelDisplacement: "Displacement",
	ChannelTranslucency: "Translucency",
	ChannelOpacity:      "Opacity",
	ChannelMetalness:    "Metalness",
}

// String returns the channel key.
func (c Channel) String() string { return string(c) }

// Title returns the human label of the channel.
func (c Channel) Title() string {
	if t, ok := channelTitles[c]; ok {
		return t
	}
	return string(c)
}

// Valid reports whether c is a known channel.
func (c Channel) Valid() bool {
	_, ok := channelTitles[c]
	return ok
}

// ParseChannel parses a channel key case-insensitively.
func ParseChannel(s string) (Channel, bool) {
	c := Channel(strings.ToLower(strings.TrimSpace(s)))
	return c, c.Valid()
}

// PatternTable maps channels to the lowercase filename substrings that identify them.
type PatternTable map[Channel][]string

// DefaultPatterns returns a fresh copy of the built-in substring table.
func DefaultPatterns() PatternTable {
	return PatternTable{
		ChannelBaseColor:    {"diffuse", "diff", "base-color", "basecolor", "base_color", "albedo", "color"},
		ChannelRoughness:    {"roughness", "gloss", "glossiness"},
		ChannelNormal:       {"normal", "bumb"},
		ChannelAO:           {"ao", "ambient_occlusion", "ambient-occlusion", "ambientocclusion"},
		ChannelDisplacement: {"displacement", "height"},
		ChannelTranslucency: {"translucency", "transparency", "transmission", "reflaction"},
		ChannelOpacity:      {"opacity", "alpha"},
		ChannelMetalness:    {"metallic", "metalness", "metallicity", "metal"},
	}
}

// Clone returns a deep copy of the table with patterns lowercased.
func (t PatternTable) Clone() PatternTable {
	out := make(PatternTable, len(t))
	for ch, subs := range t {
		cp := make([]string, 0, len(subs))
		for _, s := range subs {
			s = strings.ToLower(strings.TrimSpace(s))
			if s != "" {
				cp = append(cp, s)
			}
		}
		out[ch] = slices.Clip(cp)
	}

	return out
}

// TextureSet maps channels to the resolved texture path; absent channels have no map.
type TextureSet map[Channel]string

// Get returns the path for ch or "" when none was resolved.
func (s TextureSet) Get(ch Channel) string {
	if s == nil {
		return ""
	}
	return s[ch]
}

// Has reports whether a path was resolved for ch.
func (s TextureSet) Has(ch Channel) bool { return s.Get(ch) != "" }

// Toggles are the optional feature switches of a material build.
// The same structure is persisted as a settings preset.
type Toggles struct {
	ColorVariation bool `json:"color_variation" yaml:"color_variation"` // Mix in per-instance color variation
	AO             bool `json:"ao" yaml:"ao"`                           // Multiply ambient occlusion into base color
	Translucency   bool `json:"translucency" yaml:"translucency"`       // Build subsurface branch
	Opacity        bool `json:"opacity" yaml:"opacity"`                 // Wire opacity map
	Metalness      bool `json:"metalness" yaml:"metalness"`             // Wire metalness map
	Displacement   bool `json:"displacement" yaml:"displacement"`       // Build displacement output
}

// Wants reports whether ch should be resolved under these toggles.
// Base color, roughness and normal are always looked up.
func (t Toggles) Wants(ch Channel) bool {
	switch ch {
	case ChannelMetalness:
		return t.Metalness
	case ChannelAO:
		return t.AO
	case ChannelTranslucency:
		return t.Translucency
	case ChannelOpacity:
		return t.Opacity
	case ChannelDisplacement:
		return t.Displacement
	default:
		return true
	}
}
