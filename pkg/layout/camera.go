package layout

import (
	"math"

	"graphcast/pkg/graph"
)

// Camera scale bounds. Double-click never zooms; activation owns that
// gesture, so the only zoom paths are explicit ZoomAt and FrameNodes.
const (
	MinScale = 0.1
	MaxScale = 4.0
)

// Camera is the affine view transform (translate then scale) applied to the
// rendered scene. It is fully decoupled from simulation coordinates: panning
// and zooming never move a node.
type Camera struct {
	TX, TY float64
	Scale  float64
}

// NewCamera returns the identity view.
func NewCamera() *Camera {
	return &Camera{Scale: 1}
}

// Apply maps a world coordinate to screen space.
func (c *Camera) Apply(x, y float64) (float64, float64) {
	return x*c.Scale + c.TX, y*c.Scale + c.TY
}

// Invert maps a screen coordinate back to world space (drop ghosts and
// pointer hit-testing go through here).
func (c *Camera) Invert(sx, sy float64) (float64, float64) {
	return (sx - c.TX) / c.Scale, (sy - c.TY) / c.Scale
}

// Pan shifts the view by a screen-space delta.
func (c *Camera) Pan(dx, dy float64) {
	c.TX += dx
	c.TY += dy
}

// ZoomAt scales the view by factor around a screen-space anchor, keeping the
// world point under the anchor stationary. Scale is clamped to the bounds.
func (c *Camera) ZoomAt(factor, sx, sy float64) {
	newScale := clampScale(c.Scale * factor)
	factor = newScale / c.Scale

	c.TX = sx - (sx-c.TX)*factor
	c.TY = sy - (sy-c.TY)*factor
	c.Scale = newScale
}

// FrameNodes computes the transform that frames the given nodes in a view of
// the given size with uniform padding, zooming at most maxZoom. It returns
// the identity-centered view when the node list is empty.
func (c *Camera) FrameNodes(nodes []*graph.Node, viewW, viewH, padding, maxZoom float64) {
	if len(nodes) == 0 {
		return
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, n := range nodes {
		minX = math.Min(minX, n.X)
		minY = math.Min(minY, n.Y)
		maxX = math.Max(maxX, n.X)
		maxY = math.Max(maxY, n.Y)
	}

	w := maxX - minX + 2*padding
	h := maxY - minY + 2*padding

	scale := math.Min(viewW/w, viewH/h)
	if maxZoom > 0 && scale > maxZoom {
		scale = maxZoom
	}
	scale = clampScale(scale)

	cx := (minX + maxX) / 2
	cy := (minY + maxY) / 2

	c.Scale = scale
	c.TX = viewW/2 - cx*scale
	c.TY = viewH/2 - cy*scale
}

func clampScale(s float64) float64 {
	if s < MinScale {
		return MinScale
	}
	if s > MaxScale {
		return MaxScale
	}
	return s
}
