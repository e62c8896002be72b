package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphcast/pkg/graph"
	"graphcast/pkg/layout"
)

func TestStateOfPrecedence(t *testing.T) {
	c, _ := testController(t)
	h := NewHighlighter(c)

	// Pinned, armed and selected all at once: selection wins.
	h.PinCitations([]string{"top-1"})
	_, err := c.RightClick("top-1")
	require.NoError(t, err)
	c.Click("top-1")
	assert.Equal(t, StateSelected, h.StateOf("top-1"))

	// Drop selection: the armed accent outranks the citation ring.
	c.Click("top-1")
	assert.Equal(t, StateConnectArmed, h.StateOf("top-1"))

	// Disarm: citation ring shows.
	_, err = c.RightClick("top-1")
	require.NoError(t, err)
	assert.Equal(t, StateCitationPinned, h.StateOf("top-1"))

	h.ClearPins()
	assert.Equal(t, StateNormal, h.StateOf("top-1"))
}

func TestSelectionDimsUnrelatedNodes(t *testing.T) {
	c, _ := testController(t)
	h := NewHighlighter(c)
	_, err := c.engine.Model().AddLink("cat-1", "doc-1", 1.0)
	require.NoError(t, err)

	c.Click("cat-1")
	assert.Equal(t, StateSelected, h.StateOf("cat-1"))
	assert.Equal(t, StateRelated, h.StateOf("top-1"))
	assert.Equal(t, StateRelated, h.StateOf("doc-1"))

	// A node with no path into the focus set dims.
	loose := &graph.Node{ID: "doc-2", Name: "loose.txt", Kind: graph.KindFile}
	require.NoError(t, c.engine.InsertNode(loose, 10, 10))
	assert.Equal(t, StateDimmed, h.StateOf("doc-2"))
}

func TestCitationPinSurvivesUnknownIDs(t *testing.T) {
	c, _ := testController(t)
	h := NewHighlighter(c)

	h.PinCitations([]string{"doc-1", "not-yet-loaded"})
	assert.True(t, h.IsPinned("doc-1"))
	assert.True(t, h.IsPinned("not-yet-loaded"))
	assert.Equal(t, StateCitationPinned, h.StateOf("doc-1"))
}

func TestFrameCitationsMovesCamera(t *testing.T) {
	c, _ := testController(t)
	h := NewHighlighter(c)
	m := c.engine.Model()

	n, ok := m.Node("doc-1")
	require.True(t, ok)
	n.X, n.Y = 300, 200

	cam := layout.NewCamera()
	h.PinCitations([]string{"doc-1"})
	h.FrameCitations(cam, m, 800, 600)

	sx, sy := cam.Apply(n.X, n.Y)
	assert.InDelta(t, 400, sx, 1.0, "pinned node centers horizontally")
	assert.InDelta(t, 300, sy, 1.0, "pinned node centers vertically")
}

func TestFrameCitationsNoResolvedPinsIsNoOp(t *testing.T) {
	c, _ := testController(t)
	h := NewHighlighter(c)

	cam := layout.NewCamera()
	cam.Pan(13, 37)
	before := *cam

	h.PinCitations([]string{"ghost-id"})
	h.FrameCitations(cam, c.engine.Model(), 800, 600)
	assert.Equal(t, before, *cam)
}
