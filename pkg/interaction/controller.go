// Package interaction translates pointer gestures on the rendered graph into
// model mutations and selection-state transitions: click toggles multi-select,
// double-click requests detail, right-click runs the two-phase connect
// gesture, and file drops create provisional nodes at the pointer.
package interaction

import (
	"fmt"
	"time"

	"graphcast/pkg/bus"
	"graphcast/pkg/graph"
	"graphcast/pkg/layout"
	"graphcast/pkg/logging"
)

// Weight for links created by the right-click connect gesture.
const connectWeight = 1.0

// Ghost is the drop preview tracking the pointer, in world coordinates.
type Ghost struct {
	Name string
	X, Y float64
}

// Controller owns selection and gesture state for one graph view.
// It runs on the UI goroutine and is not safe for concurrent use.
type Controller struct {
	engine *layout.Engine
	events *bus.Bus
	logger logging.Logger

	selected map[string]struct{}
	armed    string
	ghost    *Ghost
}

// NewController creates a controller over the engine's model.
func NewController(engine *layout.Engine, events *bus.Bus, logger logging.Logger) *Controller {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Controller{
		engine:   engine,
		events:   events,
		logger:   logger.With(logging.Component("interaction")),
		selected: make(map[string]struct{}),
	}
}

func (c *Controller) model() *graph.Model {
	return c.engine.Model()
}

// Click toggles the node in the multi-select set.
func (c *Controller) Click(id string) {
	if _, ok := c.model().Node(id); !ok {
		return
	}
	if _, on := c.selected[id]; on {
		delete(c.selected, id)
	} else {
		c.selected[id] = struct{}{}
	}
}

// DoubleClick dispatches a node-activation event for detail lookup. It is
// independent of single-click selection.
func (c *Controller) DoubleClick(id string) {
	n, ok := c.model().Node(id)
	if !ok {
		return
	}
	if c.events != nil {
		c.events.Publish(bus.TopicNodeActivated, bus.NodeActivated{
			NodeID: n.ID,
			Kind:   int(n.Kind),
		})
	}
}

// RightClick advances the connect gesture: arm the clicked node, disarm it
// on a second right-click, or — armed on a different node — create the link
// and clear the armed state. It reports whether a link was created.
func (c *Controller) RightClick(id string) (linked bool, err error) {
	if _, ok := c.model().Node(id); !ok {
		return false, &graph.ModelError{Op: "RightClick", ID: id, Cause: graph.ErrNodeNotFound}
	}

	switch c.armed {
	case "":
		c.armed = id
		return false, nil
	case id:
		c.armed = ""
		return false, nil
	default:
		from := c.armed
		c.armed = ""
		added, err := c.engine.InsertLink(from, id, connectWeight)
		if err != nil {
			return false, err
		}
		if added {
			c.logger.Info("nodes connected",
				logging.NodeID(from),
				logging.String("target", id))
		}
		return added, nil
	}
}

// Armed returns the connect-armed node id, empty when the gesture is idle.
func (c *Controller) Armed() string {
	return c.armed
}

// IsSelected reports whether the node is in the multi-select set.
func (c *Controller) IsSelected(id string) bool {
	_, ok := c.selected[id]
	return ok
}

// SelectionCount returns the size of the multi-select set.
func (c *Controller) SelectionCount() int {
	return len(c.selected)
}

// ClearSelection empties the multi-select set.
func (c *Controller) ClearSelection() {
	c.selected = make(map[string]struct{})
}

// FocusSet returns the selected nodes plus all their direct neighbors.
// Everything outside it renders dimmed while a selection is active.
func (c *Controller) FocusSet() map[string]struct{} {
	if len(c.selected) == 0 {
		return nil
	}
	focus := make(map[string]struct{}, len(c.selected)*3)
	for id := range c.selected {
		focus[id] = struct{}{}
		for _, nb := range c.model().Neighbors(id) {
			focus[nb] = struct{}{}
		}
	}
	return focus
}

// LinkDimmed reports whether a link renders dimmed: while a selection is
// active, only links touching a selected node keep full opacity.
func (c *Controller) LinkDimmed(l *graph.Link) bool {
	if len(c.selected) == 0 {
		return false
	}
	return !c.IsSelected(l.Source) && !c.IsSelected(l.Target)
}

// Reset clears all gesture state after the backing model is replaced.
func (c *Controller) Reset() {
	c.selected = make(map[string]struct{})
	c.armed = ""
	c.ghost = nil
}

// DragOver tracks the drop preview under the pointer, converting the screen
// position through the current camera.
func (c *Controller) DragOver(name string, sx, sy float64, cam *layout.Camera) {
	x, y := cam.Invert(sx, sy)
	c.ghost = &Ghost{Name: name, X: x, Y: y}
}

// DragLeave discards the drop preview.
func (c *Controller) DragLeave() {
	c.ghost = nil
}

// Ghost returns the current drop preview, nil when none.
func (c *Controller) Ghost() *Ghost {
	return c.ghost
}

// Drop creates a provisional file node at the drop point and returns it.
// The id is client-generated (filename plus timestamp) until ingestion
// replaces the snapshot with backend-assigned ids; the caller forwards the
// dropped file to the ingestion flow in parallel.
func (c *Controller) Drop(name string, sx, sy float64, cam *layout.Camera) (*graph.Node, error) {
	c.ghost = nil
	x, y := cam.Invert(sx, sy)

	n := &graph.Node{
		ID:   fmt.Sprintf("%s-%d", name, time.Now().UnixMilli()),
		Name: name,
		Kind: graph.KindFile,
	}
	if err := c.engine.InsertNode(n, x, y); err != nil {
		return nil, err
	}
	c.logger.Info("provisional node dropped", logging.NodeID(n.ID))
	return n, nil
}
