package layout

import "github.com/ByLCY/mindexport/scene"

// Aggregate returns the tight bounding box over every node's native bounds.
// Nodes without bounds, with a non-finite coordinate, or with a zero-extent
// box and no content are ignored. When nothing usable remains the result is
// scene.DefaultBounds; Aggregate never fails.
func Aggregate(s *scene.Scene) scene.BoundingBox {
	b, _ := AggregateBounds(s)
	return b
}

// AggregateBounds is Aggregate that also reports whether the box was measured
// from the scene (true) or is the default fallback (false).
func AggregateBounds(s *scene.Scene) (scene.BoundingBox, bool) {
	if s == nil {
		return scene.DefaultBounds, false
	}
	var (
		acc   scene.BoundingBox
		found bool
	)
	for i := range s.Nodes {
		n := &s.Nodes[i]
		if !usableBounds(n) {
			continue
		}
		if !found {
			acc, found = *n.NativeBounds, true
			continue
		}
		acc = acc.Union(*n.NativeBounds)
	}
	if !found || !acc.IsFinite() {
		return scene.DefaultBounds, false
	}
	return acc, true
}

func usableBounds(n *scene.Node) bool {
	b := n.NativeBounds
	if b == nil || !b.IsFinite() {
		return false
	}
	if b.IsZero() && scene.IsEmpty(n.Content) {
		return false
	}
	return true
}
