// Package fonts serves the font files the drawing surfaces load: the Go font
// family in three weights.
package fonts

import (
	"fmt"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
)

// Weight names accepted by Load.
const (
	Regular = "regular"
	Medium  = "medium"
	Bold    = "bold"
)

var builtin = map[string][]byte{
	Regular: goregular.TTF,
	Medium:  gomedium.TTF,
	Bold:    gobold.TTF,
}

// Names lists the built-in weights in loading order.
func Names() []string { return []string{Regular, Medium, Bold} }

// Load 返回内置字体的字节数据，name 可写为 "embed:bold" 或直接 "bold"。
func Load(name string) ([]byte, error) {
	key := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "embed:"))
	data, ok := builtin[key]
	if !ok {
		return nil, fmt.Errorf("fonts: unknown built-in font %q", name)
	}
	return data, nil
}

// ForWeight maps a CSS font weight to the closest built-in weight name.
func ForWeight(weight int) string {
	switch {
	case weight >= 600:
		return Bold
	case weight >= 500:
		return Medium
	default:
		return Regular
	}
}
