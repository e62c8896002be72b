package graph

import (
	"testing"

	"graphcast/pkg/config"
)

func filterFixture(t *testing.T) *Model {
	t.Helper()
	m := NewModel()
	m.AddNode(&Node{ID: "cat", Name: "Databases", Kind: KindCategory})
	m.AddNode(&Node{ID: "top", Name: "Postgres", Kind: KindTopic})
	m.AddNode(&Node{ID: "file", Name: "pg-notes.pdf", Kind: KindFile})
	m.AddNode(&Node{ID: "url", Name: "pg docs", Kind: KindURL})
	m.AddNode(&Node{ID: "lone", Name: "Orphan", Kind: KindTopic})
	m.AddLink("cat", "top", 1.0)
	m.AddLink("top", "file", 0.8)
	m.AddLink("top", "url", 0.8)
	return m
}

func TestApplyFilterDefaultShowsEverything(t *testing.T) {
	m := filterFixture(t)
	v := m.ApplyFilter(config.DefaultToolbarConfig())

	if len(v.Nodes) != 5 || len(v.Links) != 3 {
		t.Errorf("default filter hid content: %d nodes, %d links", len(v.Nodes), len(v.Links))
	}
}

func TestApplyFilterByName(t *testing.T) {
	m := filterFixture(t)
	cfg := config.DefaultToolbarConfig()
	cfg.NameFilter = "PG"

	v := m.ApplyFilter(cfg)
	if len(v.Nodes) != 2 {
		t.Fatalf("case-insensitive name filter: got %d nodes, want 2", len(v.Nodes))
	}
}

func TestApplyFilterByType(t *testing.T) {
	m := filterFixture(t)
	cfg := config.DefaultToolbarConfig()
	cfg.TypeFilter = []int{int(KindCategory), int(KindTopic)}

	v := m.ApplyFilter(cfg)
	for _, n := range v.Nodes {
		if n.Kind == KindFile || n.Kind == KindURL {
			t.Errorf("item node %q leaked through type filter", n.ID)
		}
	}
	// file/url endpoints are hidden, so their links must go too.
	if len(v.Links) != 1 {
		t.Errorf("expected only cat→top link, got %d", len(v.Links))
	}
}

func TestApplyFilterLevelFileCoversURLs(t *testing.T) {
	m := filterFixture(t)
	cfg := config.DefaultToolbarConfig()
	cfg.LevelFilter = config.LevelFile

	v := m.ApplyFilter(cfg)
	if len(v.Nodes) != 2 {
		t.Fatalf("file level should show file+url items, got %d nodes", len(v.Nodes))
	}
	if len(v.Links) != 0 {
		t.Errorf("links to hidden topics must disappear, got %d", len(v.Links))
	}
}

func TestApplyFilterMinConnections(t *testing.T) {
	m := filterFixture(t)
	cfg := config.DefaultToolbarConfig()
	cfg.MinConnections = 1

	v := m.ApplyFilter(cfg)
	for _, n := range v.Nodes {
		if n.ID == "lone" {
			t.Error("zero-degree node passed a min-connections filter of 1")
		}
	}
	if len(v.Nodes) != 4 {
		t.Errorf("expected 4 connected nodes, got %d", len(v.Nodes))
	}
}
