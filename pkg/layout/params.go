package layout

import (
	"graphcast/pkg/config"
	"graphcast/pkg/graph"
)

// Params are the runtime-tunable scalar force parameters. All four are safe
// to change mid-simulation via Engine.Retune.
type Params struct {
	// ChargeStrength multiplies every node's repulsion, default 1.
	ChargeStrength float64
	// LinkDistance multiplies every kind-pair target separation, default 1.
	LinkDistance float64
	// CenterStrength pulls all nodes toward the canvas center, default 0.05.
	CenterStrength float64
	// NodeSize multiplies every node's collision radius, default 1.
	NodeSize float64
}

// DefaultParams returns the product defaults.
func DefaultParams() Params {
	return Params{
		ChargeStrength: 1,
		LinkDistance:   1,
		CenterStrength: 0.05,
		NodeSize:       1,
	}
}

// ParamsFromToolbar extracts the physics slice of the toolbar configuration.
func ParamsFromToolbar(cfg config.ToolbarConfig) Params {
	return Params{
		ChargeStrength: cfg.ChargeStrength,
		LinkDistance:   cfg.LinkDistance,
		CenterStrength: cfg.CenterForce,
		NodeSize:       cfg.NodeSize,
	}
}

// Base repulsion per kind. Categories push harder to anchor the hub layout.
const (
	categoryCharge = -240.0
	defaultCharge  = -80.0
)

func kindCharge(k graph.Kind) float64 {
	if k == graph.KindCategory {
		return categoryCharge
	}
	return defaultCharge
}

// Collision radius per kind, before the node-size multiplier.
func kindRadius(k graph.Kind) float64 {
	switch k {
	case graph.KindCategory:
		return 22
	case graph.KindTopic:
		return 14
	default:
		return 10
	}
}

// Target link separation by endpoint kind pairing: tight for topic↔item,
// medium for category↔topic and topic↔topic, loose otherwise.
const (
	topicItemDistance   = 45.0
	hubPairDistance     = 85.0
	defaultPairDistance = 130.0
)

func pairDistance(a, b graph.Kind) float64 {
	if a > b {
		a, b = b, a
	}
	switch {
	case a == graph.KindTopic && (b == graph.KindFile || b == graph.KindURL):
		return topicItemDistance
	case a == graph.KindCategory && b == graph.KindTopic:
		return hubPairDistance
	case a == graph.KindTopic && b == graph.KindTopic:
		return hubPairDistance
	default:
		return defaultPairDistance
	}
}
