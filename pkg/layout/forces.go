package layout

import (
	"math"

	"graphcast/pkg/graph"
)

// jiggle breaks exact coincidence between nodes deterministically.
func jiggle(i int) float64 {
	return (math.Mod(float64(i)*0.254, 1) - 0.5) * 1e-6
}

// applyCharge accumulates pairwise repulsion into node velocities. Each
// node's charge is its kind charge times the global multiplier; category
// nodes repel hardest so hubs claim space.
func (e *Engine) applyCharge(nodes []*graph.Node) {
	for i, a := range nodes {
		for j := i + 1; j < len(nodes); j++ {
			b := nodes[j]

			dx := b.X - a.X
			dy := b.Y - a.Y
			dist2 := dx*dx + dy*dy
			if dist2 == 0 {
				dx = jiggle(i)
				dy = jiggle(j + 1)
				dist2 = dx*dx + dy*dy
			}
			// Clamp close approaches so the force stays bounded.
			if dist2 < 1 {
				dist2 = 1
			}

			wa := kindCharge(a.Kind) * e.params.ChargeStrength * e.alpha / dist2
			wb := kindCharge(b.Kind) * e.params.ChargeStrength * e.alpha / dist2

			// b's charge acts on a and vice versa; negative charge repels,
			// so a moves against dx (away from b) and b moves along it.
			a.VX += dx * wb
			a.VY += dy * wb
			b.VX -= dx * wa
			b.VY -= dy * wa
		}
	}
}

// applyLinks pulls linked nodes toward their kind-pair target separation.
// Link weight is deliberately ignored: separation depends on what the
// endpoints are, not how strong the association scored.
func (e *Engine) applyLinks(nodes []*graph.Node) {
	for i, l := range e.model.Links() {
		src, okS := e.model.Node(l.Source)
		dst, okT := e.model.Node(l.Target)
		if !okS || !okT {
			continue
		}

		dx := dst.X + dst.VX - src.X - src.VX
		dy := dst.Y + dst.VY - src.Y - src.VY
		if dx == 0 && dy == 0 {
			dx = jiggle(i)
			dy = jiggle(i + 1)
		}
		dist := math.Sqrt(dx*dx + dy*dy)

		target := pairDistance(src.Kind, dst.Kind) * e.params.LinkDistance
		k := (dist - target) / dist * e.alpha * 0.5

		dst.VX -= dx * k
		dst.VY -= dy * k
		src.VX += dx * k
		src.VY += dy * k
	}
}

// applyCenter pulls every node weakly toward the canvas center.
func (e *Engine) applyCenter(nodes []*graph.Node) {
	cx, cy := e.width/2, e.height/2
	k := e.params.CenterStrength * e.alpha
	for _, n := range nodes {
		n.VX += (cx - n.X) * k
		n.VY += (cy - n.Y) * k
	}
}

// applyCollision separates overlapping node circles after integration.
// Radii scale per kind and by the global node-size multiplier.
func (e *Engine) applyCollision(nodes []*graph.Node) {
	for i, a := range nodes {
		ra := kindRadius(a.Kind) * e.params.NodeSize
		for j := i + 1; j < len(nodes); j++ {
			b := nodes[j]
			rb := kindRadius(b.Kind) * e.params.NodeSize

			dx := b.X - a.X
			dy := b.Y - a.Y
			dist2 := dx*dx + dy*dy
			minDist := ra + rb
			if dist2 >= minDist*minDist {
				continue
			}

			dist := math.Sqrt(dist2)
			if dist == 0 {
				dx, dy, dist = jiggle(i), jiggle(j+1), 1e-6
			}
			overlap := (minDist - dist) / dist

			// Heavier (larger) circles yield less ground.
			share := rb * rb / (ra*ra + rb*rb)
			if !a.Pinned() {
				a.X -= dx * overlap * share
				a.Y -= dy * overlap * share
			}
			if !b.Pinned() {
				b.X += dx * overlap * (1 - share)
				b.Y += dy * overlap * (1 - share)
			}
		}
	}
}
