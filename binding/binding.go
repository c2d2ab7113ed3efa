// Package binding expands ${path} placeholders in scene text from a tree of
// variables, so one .scene file can be exported for different data.
package binding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var placeholder = regexp.MustCompile(`\$\{([^}]+)\}`)

// Vars is a decoded variable tree: nested maps and slices as produced by
// encoding/json, yaml.v3 or toml.
type Vars map[string]any

// Expand replaces every ${path} in text. A path is a dotted key chain with
// optional indexes, e.g. ${team.members[0].name}. ${path:-fallback} uses the
// fallback when the path does not resolve; otherwise an unresolved
// placeholder is left as written.
func (v Vars) Expand(text string) string {
	if !strings.Contains(text, "${") {
		return text
	}
	return placeholder.ReplaceAllStringFunc(text, func(match string) string {
		expr := match[2 : len(match)-1]
		path, fallback, hasFallback := strings.Cut(expr, ":-")
		if val, ok := v.Lookup(strings.TrimSpace(path)); ok {
			return format(val)
		}
		if hasFallback {
			return fallback
		}
		return match
	})
}

// Lookup resolves a path against the tree.
func (v Vars) Lookup(path string) (any, bool) {
	if v == nil || path == "" {
		return nil, false
	}
	var cur any = map[string]any(v)
	for _, seg := range strings.Split(path, ".") {
		key, indexes, ok := splitSegment(seg)
		if !ok {
			return nil, false
		}
		if key != "" {
			if cur, ok = field(cur, key); !ok {
				return nil, false
			}
		}
		for _, i := range indexes {
			if cur, ok = element(cur, i); !ok {
				return nil, false
			}
		}
	}
	return cur, true
}

// splitSegment splits "members[0][1]" into "members" and [0 1].
func splitSegment(seg string) (string, []int, bool) {
	key, rest, found := strings.Cut(seg, "[")
	if !found {
		return seg, nil, seg != ""
	}
	var indexes []int
	rest = "[" + rest
	for rest != "" {
		end := strings.IndexByte(rest, ']')
		if rest[0] != '[' || end < 0 {
			return "", nil, false
		}
		i, err := strconv.Atoi(rest[1:end])
		if err != nil {
			return "", nil, false
		}
		indexes = append(indexes, i)
		rest = rest[end+1:]
	}
	return key, indexes, true
}

func field(cur any, key string) (any, bool) {
	switch c := cur.(type) {
	case map[string]any:
		val, ok := c[key]
		return val, ok
	case Vars:
		val, ok := c[key]
		return val, ok
	case map[string]string:
		val, ok := c[key]
		return val, ok
	}
	return nil, false
}

func element(cur any, i int) (any, bool) {
	switch c := cur.(type) {
	case []any:
		if i < 0 || i >= len(c) {
			return nil, false
		}
		return c[i], true
	case []map[string]any:
		if i < 0 || i >= len(c) {
			return nil, false
		}
		return c[i], true
	case []string:
		if i < 0 || i >= len(c) {
			return nil, false
		}
		return c[i], true
	}
	return nil, false
}

func format(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
