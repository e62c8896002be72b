package graph

import (
	"strings"

	"graphcast/pkg/config"
)

// View is the filtered subset of a model the renderer draws.
type View struct {
	Nodes []*Node
	Links []*Link
}

// levelShowsKind maps the coarse level filter onto node kinds; the file level
// covers both file and url items.
func levelShowsKind(level string, kind Kind) bool {
	switch level {
	case config.LevelCategory:
		return kind == KindCategory
	case config.LevelTopic:
		return kind == KindTopic
	case config.LevelFile:
		return kind == KindFile || kind == KindURL
	default:
		return true
	}
}

// ApplyFilter computes the visible subset under the toolbar configuration:
// name substring (case-insensitive), kind checkboxes, level filter and the
// minimum-connections threshold. Links survive only when both endpoints do.
func (m *Model) ApplyFilter(cfg config.ToolbarConfig) View {
	needle := strings.ToLower(strings.TrimSpace(cfg.NameFilter))

	visible := make(map[string]bool, len(m.nodes))
	var nodes []*Node
	for _, n := range m.nodes {
		if !cfg.ShowsType(int(n.Kind)) {
			continue
		}
		if !levelShowsKind(cfg.LevelFilter, n.Kind) {
			continue
		}
		if m.ConnectionCount(n.ID) < cfg.MinConnections {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(n.Name), needle) {
			continue
		}
		visible[n.ID] = true
		nodes = append(nodes, n)
	}

	var links []*Link
	for _, l := range m.links {
		if visible[l.Source] && visible[l.Target] {
			links = append(links, l)
		}
	}

	return View{Nodes: nodes, Links: links}
}
