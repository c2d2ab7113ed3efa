package scene

import "strings"

// Theme is the resolved colour pair used by every export stage.
type Theme struct {
	Name       string `json:"name" yaml:"name" toml:"name"`
	Background string `json:"background" yaml:"background" toml:"background"`
	Text       string `json:"text" yaml:"text" toml:"text"`
	// Marker strokes node marker circles that arrive without a stroke.
	Marker string `json:"marker" yaml:"marker" toml:"marker"`
}

var (
	Dark  = Theme{Name: "dark", Background: "#1E1E1E", Text: "#FFFFFF", Marker: "#888888"}
	Light = Theme{Name: "light", Background: "#FFFFFF", Text: "#000000", Marker: "#666666"}
)

// ResolveTheme maps a theme name to one of the two canonical themes.
// "dark" and the editor's "vs-dark" select Dark; anything else is Light.
func ResolveTheme(name string) Theme {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "dark", "vs-dark":
		return Dark
	default:
		return Light
	}
}

// depthPalette colours edges by the depth of the node they lead to.
var depthPalette = [...]string{"#4FC3F7", "#81C784", "#FFB74D", "#F06292", "#BA68C8", "#4DD0E1"}

// DepthColor returns the palette colour for a tree depth.
func DepthColor(depth int) string {
	n := len(depthPalette)
	return depthPalette[(depth%n+n)%n]
}
