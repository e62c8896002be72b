// Package layout runs the continuous force simulation that positions the
// knowledge graph: charge repulsion, kind-aware link attraction, a weak
// centering pull and circle collision, ticked every frame with an annealing
// energy (alpha) that cools toward rest and is reheated by interaction.
//
// The algorithm generalizes a fixed-iteration force-directed pass into a
// live simulation: nodes keep velocities between ticks, parameters retune
// without restarting, and hot-inserted nodes settle in from their drop
// position instead of re-randomizing the whole layout.
package layout

import (
	"math"

	"graphcast/pkg/graph"
	"graphcast/pkg/metrics"
)

// Annealing constants, chosen so an undisturbed simulation cools out in
// roughly 300 ticks.
const (
	alphaMin      = 0.001
	alphaInitial  = 1.0
	velocityDecay = 0.6

	// Reheat levels: full restart on model replace, moderate for hot
	// insertion, small bump for live retuning, drag holds 0.3.
	insertReheat = 0.5
	retuneReheat = 0.1
	dragTarget   = 0.3
)

var alphaDecay = 1 - math.Pow(alphaMin, 1.0/300)

// TickFunc runs after every simulation step, once node coordinates are
// current. The renderer re-reads positions here; it is the single place
// drag motion and simulation motion converge.
type TickFunc func()

// Engine owns the running simulation over a model's node set.
// It is driven from the UI goroutine and is not safe for concurrent use.
type Engine struct {
	model  *graph.Model
	params Params

	width  float64
	height float64

	alpha       float64
	alphaTarget float64

	onTick  TickFunc
	stopped bool
}

// NewEngine creates a simulation over the model, seeding initial positions
// for nodes that have none.
func NewEngine(model *graph.Model, params Params, width, height float64) *Engine {
	e := &Engine{
		model:  model,
		params: params,
		width:  width,
		height: height,
		alpha:  alphaInitial,
	}
	e.seedPositions()
	return e
}

// OnTick registers the per-tick callback.
func (e *Engine) OnTick(fn TickFunc) {
	e.onTick = fn
}

// Alpha returns the current simulation energy.
func (e *Engine) Alpha() float64 {
	return e.alpha
}

// Model returns the model the simulation runs on.
func (e *Engine) Model() *graph.Model {
	return e.model
}

// seedPositions places unpositioned nodes on a phyllotaxis spiral around the
// canvas center, so a fresh layout starts untangled and deterministic.
func (e *Engine) seedPositions() {
	const initialRadius = 18.0
	initialAngle := math.Pi * (3 - math.Sqrt(5))

	cx, cy := e.width/2, e.height/2
	for i, n := range e.model.Nodes() {
		if n.X != 0 || n.Y != 0 {
			continue
		}
		radius := initialRadius * math.Sqrt(0.5+float64(i))
		angle := float64(i) * initialAngle
		n.X = cx + radius*math.Cos(angle)
		n.Y = cy + radius*math.Sin(angle)
	}
}

// Tick advances the simulation one step and reports whether it is still
// active. A cooled simulation (alpha below minimum with no target holding
// it up) becomes a no-op until the next reheat.
func (e *Engine) Tick() bool {
	if e.stopped {
		return false
	}
	if e.alpha < alphaMin && e.alphaTarget < alphaMin {
		return false
	}

	e.alpha += (e.alphaTarget - e.alpha) * alphaDecay

	nodes := e.model.Nodes()
	e.applyCharge(nodes)
	e.applyLinks(nodes)
	e.applyCenter(nodes)

	// Integrate velocities; pinned nodes snap to their fixed position.
	for _, n := range nodes {
		if n.Pinned() {
			n.X, n.Y = *n.FX, *n.FY
			n.VX, n.VY = 0, 0
			continue
		}
		n.VX *= velocityDecay
		n.VY *= velocityDecay
		n.X += n.VX
		n.Y += n.VY
	}

	e.applyCollision(nodes)

	metrics.DefaultRegistry().RecordLayoutTick(e.alpha, len(nodes))
	if e.onTick != nil {
		e.onTick()
	}
	return true
}

// Step runs up to n ticks, stopping early once the simulation cools.
func (e *Engine) Step(n int) {
	for i := 0; i < n; i++ {
		if !e.Tick() {
			return
		}
	}
}

// Retune applies new force parameters to the running simulation. Existing
// positions and velocities are kept; only a small reheat is applied so the
// layout glides to its new equilibrium instead of re-exploding.
func (e *Engine) Retune(p Params) {
	e.params = p
	if e.alpha < retuneReheat {
		e.alpha = retuneReheat
	}
	metrics.DefaultRegistry().RecordLayoutReheat("retune")
}

// InsertNode registers a new node with the running simulation at the given
// position and reheats moderately so it visibly settles in. Existing node
// positions are untouched.
func (e *Engine) InsertNode(n *graph.Node, x, y float64) error {
	n.X, n.Y = x, y
	if err := e.model.AddNode(n); err != nil {
		return err
	}
	e.reheat(insertReheat, "insert")
	metrics.DefaultRegistry().UpdateGraphSize(e.model.NodeCount(), e.model.LinkCount())
	return nil
}

// InsertLink adds a link between existing nodes mid-simulation. Duplicate
// pairs are a no-op and cause no reheat.
func (e *Engine) InsertLink(source, target string, weight float64) (bool, error) {
	added, err := e.model.AddLink(source, target, weight)
	if err != nil || !added {
		return added, err
	}
	e.reheat(insertReheat, "insert")
	metrics.DefaultRegistry().UpdateGraphSize(e.model.NodeCount(), e.model.LinkCount())
	return true, nil
}

// Replace swaps in a wholly new model (full refetch), discarding all
// simulation state and restarting hot.
func (e *Engine) Replace(model *graph.Model) {
	e.model = model
	e.alpha = alphaInitial
	e.alphaTarget = 0
	e.seedPositions()
	metrics.DefaultRegistry().RecordGraphRebuild()
	metrics.DefaultRegistry().UpdateGraphSize(model.NodeCount(), model.LinkCount())
}

// DragStart pins the node at its current position and raises the energy
// target so neighbors react while the user drags.
func (e *Engine) DragStart(id string) {
	n, ok := e.model.Node(id)
	if !ok {
		return
	}
	n.Pin(n.X, n.Y)
	e.alphaTarget = dragTarget
	if e.alpha < dragTarget {
		e.alpha = dragTarget
	}
	metrics.DefaultRegistry().RecordLayoutReheat("drag")
}

// DragMove updates the pin target while the drag is in progress.
func (e *Engine) DragMove(id string, x, y float64) {
	n, ok := e.model.Node(id)
	if !ok {
		return
	}
	n.Pin(x, y)
}

// DragEnd releases the pin. The energy target drops to zero and the current
// energy is halved toward the drag level, so motion damps out smoothly
// rather than stopping dead or churning on.
func (e *Engine) DragEnd(id string) {
	n, ok := e.model.Node(id)
	if !ok {
		return
	}
	n.Unpin()
	e.alphaTarget = 0
	if e.alpha > dragTarget/2 {
		e.alpha = dragTarget / 2
	}
}

// Stop halts the simulation permanently; the per-tick callback is released
// so teardown cannot touch a dismounted view.
func (e *Engine) Stop() {
	e.stopped = true
	e.onTick = nil
}

// Stopped reports whether Stop has been called.
func (e *Engine) Stopped() bool {
	return e.stopped
}

func (e *Engine) reheat(level float64, cause string) {
	if e.alpha < level {
		e.alpha = level
	}
	metrics.DefaultRegistry().RecordLayoutReheat(cause)
}
