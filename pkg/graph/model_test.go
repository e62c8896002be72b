package graph

import (
	"errors"
	"testing"
)

func newTriangle(t *testing.T) *Model {
	t.Helper()
	m := NewModel()
	for _, n := range []*Node{
		{ID: "a", Name: "Alpha", Kind: KindCategory},
		{ID: "b", Name: "Beta", Kind: KindTopic},
		{ID: "c", Name: "Gamma", Kind: KindFile},
	} {
		if err := m.AddNode(n); err != nil {
			t.Fatalf("AddNode(%s): %v", n.ID, err)
		}
	}
	m.AddLink("a", "b", 1.0)
	m.AddLink("b", "c", 0.8)
	return m
}

func TestAddNodeRejectsDuplicateID(t *testing.T) {
	m := NewModel()
	if err := m.AddNode(&Node{ID: "x", Name: "one"}); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	err := m.AddNode(&Node{ID: "x", Name: "two"})
	if !errors.Is(err, ErrDuplicateNode) {
		t.Errorf("expected ErrDuplicateNode, got %v", err)
	}
	if m.NodeCount() != 1 {
		t.Errorf("duplicate add must not grow the model, count=%d", m.NodeCount())
	}
}

func TestAddLinkRequiresBothNodes(t *testing.T) {
	m := NewModel()
	m.AddNode(&Node{ID: "a"})

	if _, err := m.AddLink("a", "ghost", 1.0); !errors.Is(err, ErrDanglingLink) {
		t.Errorf("expected ErrDanglingLink, got %v", err)
	}
	if _, err := m.AddLink("ghost", "a", 1.0); !errors.Is(err, ErrDanglingLink) {
		t.Errorf("expected ErrDanglingLink, got %v", err)
	}
}

func TestAddLinkDedupEitherDirection(t *testing.T) {
	m := newTriangle(t)
	before := m.LinkCount()

	added, err := m.AddLink("a", "b", 0.5)
	if err != nil || added {
		t.Errorf("same-direction re-add should be a no-op, added=%v err=%v", added, err)
	}
	added, err = m.AddLink("b", "a", 0.5)
	if err != nil || added {
		t.Errorf("reversed re-add should be a no-op, added=%v err=%v", added, err)
	}
	if m.LinkCount() != before {
		t.Errorf("link count changed: %d -> %d", before, m.LinkCount())
	}
}

func TestAddLinkRejectsSelfLink(t *testing.T) {
	m := newTriangle(t)
	if _, err := m.AddLink("a", "a", 1.0); !errors.Is(err, ErrSelfLink) {
		t.Errorf("expected ErrSelfLink, got %v", err)
	}
}

func TestConnectionCount(t *testing.T) {
	m := newTriangle(t)

	if got := m.ConnectionCount("b"); got != 2 {
		t.Errorf("ConnectionCount(b) = %d, want 2", got)
	}
	if got := m.ConnectionCount("a"); got != 1 {
		t.Errorf("ConnectionCount(a) = %d, want 1", got)
	}
	if got := m.ConnectionCount("missing"); got != 0 {
		t.Errorf("ConnectionCount(missing) = %d, want 0", got)
	}
}

func TestNeighbors(t *testing.T) {
	m := newTriangle(t)

	got := m.Neighbors("b")
	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Errorf("Neighbors(b) = %v, want [a c]", got)
	}
	if got := m.Neighbors("isolated"); len(got) != 0 {
		t.Errorf("Neighbors of unknown id should be empty, got %v", got)
	}
}

func TestPinUnpin(t *testing.T) {
	n := &Node{ID: "a", X: 3, Y: 4}
	if n.Pinned() {
		t.Error("fresh node must not be pinned")
	}
	n.Pin(10, 20)
	if !n.Pinned() || *n.FX != 10 || *n.FY != 20 {
		t.Errorf("pin not applied: %+v", n)
	}
	n.Unpin()
	if n.Pinned() {
		t.Error("unpin did not release the node")
	}
}
