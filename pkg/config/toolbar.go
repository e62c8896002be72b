// Package config defines the graph toolbar configuration: display filters,
// visual multipliers and physics parameters. The value is passed explicitly
// into the layout engine and renderer; persistence is a plain YAML file
// behind Load/Save, never ambient global state.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Level filter values.
const (
	LevelAll      = "all"
	LevelCategory = "category"
	LevelTopic    = "topic"
	LevelFile     = "file"
)

// ToolbarConfig is the full set of user-tunable graph controls.
type ToolbarConfig struct {
	// Filters
	NameFilter     string `yaml:"name_filter"`
	TypeFilter     []int  `yaml:"type_filter" validate:"dive,min=1,max=4"`
	LevelFilter    string `yaml:"level_filter" validate:"oneof=all category topic file"`
	MinConnections int    `yaml:"min_connections" validate:"min=0"`

	// Visual adjustments
	NodeSize         float64 `yaml:"node_size" validate:"gte=0.5,lte=2"`
	TextSize         float64 `yaml:"text_size" validate:"gte=0.5,lte=2"`
	NodeOpacity      float64 `yaml:"node_opacity" validate:"gte=0.2,lte=1"`
	TextLevelDisplay []int   `yaml:"text_level_display" validate:"dive,min=1,max=4"`
	LinkWidth        float64 `yaml:"link_width" validate:"gte=0.5,lte=5"`

	// Physics parameters
	CenterForce    float64 `yaml:"center_force" validate:"gte=0,lte=0.2"`
	LinkDistance   float64 `yaml:"link_distance" validate:"gte=0.5,lte=2"`
	ChargeStrength float64 `yaml:"charge_strength" validate:"gte=0.5,lte=2"`
}

// DefaultToolbarConfig returns the product defaults.
func DefaultToolbarConfig() ToolbarConfig {
	return ToolbarConfig{
		NameFilter:       "",
		TypeFilter:       []int{1, 2, 3, 4},
		LevelFilter:      LevelAll,
		MinConnections:   0,
		NodeSize:         1,
		TextSize:         1,
		NodeOpacity:      1,
		TextLevelDisplay: []int{1, 2, 3, 4},
		LinkWidth:        1.5,
		CenterForce:      0.05,
		LinkDistance:     1,
		ChargeStrength:   1,
	}
}

// ShowsType reports whether nodes of the given kind value pass the type filter.
func (c ToolbarConfig) ShowsType(kind int) bool {
	for _, t := range c.TypeFilter {
		if t == kind {
			return true
		}
	}
	return false
}

// ShowsTextFor reports whether labels render for the given kind value.
func (c ToolbarConfig) ShowsTextFor(kind int) bool {
	for _, t := range c.TextLevelDisplay {
		if t == kind {
			return true
		}
	}
	return false
}

var validate = validator.New()

// Validate checks every field against its allowed range.
func (c ToolbarConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid toolbar config: %w", err)
	}
	return nil
}

// Load reads a saved config, overlaying it on the defaults so partial files
// from older versions keep working. A missing file yields the defaults.
func Load(path string) (ToolbarConfig, error) {
	cfg := DefaultToolbarConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read toolbar config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultToolbarConfig(), fmt.Errorf("parse toolbar config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return DefaultToolbarConfig(), err
	}
	return cfg, nil
}

// Save writes the config to disk.
func Save(path string, cfg ToolbarConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal toolbar config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write toolbar config: %w", err)
	}
	return nil
}
