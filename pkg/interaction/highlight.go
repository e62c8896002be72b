package interaction

import (
	"graphcast/pkg/graph"
	"graphcast/pkg/layout"
)

// VisualState is the render treatment resolved for a node. When a node sits
// in several sets at once the strongest state wins: solid selection outline,
// then the connect-armed accent, then the dashed citation ring, then the
// focus/dim split driven by the active selection.
type VisualState int

const (
	StateNormal VisualState = iota
	StateDimmed
	StateRelated
	StateCitationPinned
	StateConnectArmed
	StateSelected
)

func (s VisualState) String() string {
	switch s {
	case StateDimmed:
		return "dimmed"
	case StateRelated:
		return "related"
	case StateCitationPinned:
		return "citation"
	case StateConnectArmed:
		return "armed"
	case StateSelected:
		return "selected"
	default:
		return "normal"
	}
}

// Framing parameters when the camera jumps to pinned citation nodes.
const (
	citationPadding = 60.0
	citationMaxZoom = 1.5
)

// Highlighter resolves per-node visual state from the controller's gesture
// state plus the citation pins set by chat reference clicks.
type Highlighter struct {
	ctrl   *Controller
	pinned map[string]struct{}
}

// NewHighlighter creates a highlighter bound to the controller.
func NewHighlighter(ctrl *Controller) *Highlighter {
	return &Highlighter{
		ctrl:   ctrl,
		pinned: make(map[string]struct{}),
	}
}

// PinCitations replaces the citation-pinned set. Ids missing from the model
// are kept in the set; they simply resolve nothing until the graph catches up.
func (h *Highlighter) PinCitations(ids []string) {
	h.pinned = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		h.pinned[id] = struct{}{}
	}
}

// ClearPins drops all citation pins.
func (h *Highlighter) ClearPins() {
	h.pinned = make(map[string]struct{})
}

// IsPinned reports whether the node carries a citation pin.
func (h *Highlighter) IsPinned(id string) bool {
	_, ok := h.pinned[id]
	return ok
}

// StateOf resolves the node's visual state under the precedence order.
func (h *Highlighter) StateOf(id string) VisualState {
	if h.ctrl.IsSelected(id) {
		return StateSelected
	}
	if id == h.ctrl.Armed() && h.ctrl.Armed() != "" {
		return StateConnectArmed
	}
	if h.IsPinned(id) {
		return StateCitationPinned
	}
	focus := h.ctrl.FocusSet()
	if focus == nil {
		return StateNormal
	}
	if _, ok := focus[id]; ok {
		return StateRelated
	}
	return StateDimmed
}

// FrameCitations moves the camera to fit the pinned nodes that exist in the
// model. A no-op when no pins resolve.
func (h *Highlighter) FrameCitations(cam *layout.Camera, m *graph.Model, viewW, viewH float64) {
	var nodes []*graph.Node
	for id := range h.pinned {
		if n, ok := m.Node(id); ok {
			nodes = append(nodes, n)
		}
	}
	cam.FrameNodes(nodes, viewW, viewH, citationPadding, citationMaxZoom)
}
