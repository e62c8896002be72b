// Package graph holds the in-memory node/link model the visualization runs
// on: built from a backend cluster snapshot, extended incrementally by drops
// and connect gestures, and read every tick by the layout engine.
package graph

import (
	"sort"

	"golang.org/x/exp/maps"
)

// Kind classifies a node into one of the four fixed visual/physical classes.
type Kind int

const (
	KindCategory Kind = 1
	KindTopic    Kind = 2
	KindFile     Kind = 3
	KindURL      Kind = 4
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindCategory:
		return "category"
	case KindTopic:
		return "topic"
	case KindFile:
		return "file"
	case KindURL:
		return "url"
	default:
		return "unknown"
	}
}

// KindFromSourceType maps a backend item source_type onto a Kind.
func KindFromSourceType(sourceType string) Kind {
	switch sourceType {
	case "url", "URL", "link":
		return KindURL
	default:
		return KindFile
	}
}

// Node is one vertex of the knowledge graph.
//
// X/Y (and the velocity pair) are owned by the layout engine, which mutates
// them on every tick. FX/FY, when non-nil, pin the node at a fixed position
// and override the simulation; drags set them, drag-end clears them.
type Node struct {
	ID   string
	Name string
	Kind Kind

	X, Y   float64
	VX, VY float64
	FX, FY *float64
}

// Pinned reports whether the node position is currently fixed.
func (n *Node) Pinned() bool {
	return n.FX != nil && n.FY != nil
}

// Pin fixes the node at the given position.
func (n *Node) Pin(x, y float64) {
	n.FX, n.FY = &x, &y
}

// Unpin releases the node back to free simulation.
func (n *Node) Unpin() {
	n.FX, n.FY = nil, nil
}

// Link is an undirected connection between two nodes, stored by id.
// Weight affects only rendered stroke thickness, never layout distance.
type Link struct {
	Source string
	Target string
	Weight float64
}

type linkKey struct {
	a, b string
}

// key normalizes the unordered endpoint pair.
func (l Link) key() linkKey {
	if l.Source < l.Target {
		return linkKey{l.Source, l.Target}
	}
	return linkKey{l.Target, l.Source}
}

// Model is the mutable graph snapshot. It is owned by the UI goroutine and
// not safe for concurrent use.
type Model struct {
	nodes   []*Node
	byID    map[string]*Node
	links   []*Link
	linkSet map[linkKey]struct{}
	degree  map[string]int
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{
		byID:    make(map[string]*Node),
		linkSet: make(map[linkKey]struct{}),
		degree:  make(map[string]int),
	}
}

// AddNode appends a node. A node whose id is already present is rejected
// with ErrDuplicateNode; ids are the identity, display names may collide.
func (m *Model) AddNode(n *Node) error {
	if _, exists := m.byID[n.ID]; exists {
		return &ModelError{Op: "AddNode", ID: n.ID, Cause: ErrDuplicateNode}
	}
	m.nodes = append(m.nodes, n)
	m.byID[n.ID] = n
	return nil
}

// AddLink appends a link between two existing nodes. Re-adding an existing
// pair, in either direction, is a no-op and reports added=false.
func (m *Model) AddLink(source, target string, weight float64) (added bool, err error) {
	if source == target {
		return false, &ModelError{Op: "AddLink", ID: source, Cause: ErrSelfLink}
	}
	if _, ok := m.byID[source]; !ok {
		return false, &ModelError{Op: "AddLink", ID: source, Cause: ErrDanglingLink}
	}
	if _, ok := m.byID[target]; !ok {
		return false, &ModelError{Op: "AddLink", ID: target, Cause: ErrDanglingLink}
	}

	l := &Link{Source: source, Target: target, Weight: weight}
	if _, dup := m.linkSet[l.key()]; dup {
		return false, nil
	}

	m.links = append(m.links, l)
	m.linkSet[l.key()] = struct{}{}
	m.degree[source]++
	m.degree[target]++
	return true, nil
}

// Node returns the node with the given id.
func (m *Model) Node(id string) (*Node, bool) {
	n, ok := m.byID[id]
	return n, ok
}

// Nodes returns the node slice in insertion order. Callers must not reorder it.
func (m *Model) Nodes() []*Node {
	return m.nodes
}

// Links returns the link slice in insertion order.
func (m *Model) Links() []*Link {
	return m.links
}

// NodeCount returns the number of nodes.
func (m *Model) NodeCount() int {
	return len(m.nodes)
}

// LinkCount returns the number of links.
func (m *Model) LinkCount() int {
	return len(m.links)
}

// ConnectionCount returns the number of links touching a node.
func (m *Model) ConnectionCount(id string) int {
	return m.degree[id]
}

// Neighbors returns the ids directly linked to the given node, sorted.
func (m *Model) Neighbors(id string) []string {
	set := make(map[string]struct{})
	for _, l := range m.links {
		switch id {
		case l.Source:
			set[l.Target] = struct{}{}
		case l.Target:
			set[l.Source] = struct{}{}
		}
	}
	out := maps.Keys(set)
	sort.Strings(out)
	return out
}

// HasLink reports whether the unordered pair is connected.
func (m *Model) HasLink(a, b string) bool {
	_, ok := m.linkSet[Link{Source: a, Target: b}.key()]
	return ok
}
