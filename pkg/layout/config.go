package layout

import (
	"reflect"

	"github.com/matzehuels/bpmnlayout/pkg/bpmn/di"
	errs "github.com/matzehuels/bpmnlayout/pkg/errors"
)

// Config holds the presentation constants used by the layout. None of them
// change the algorithm; they only set density and page geometry.
type Config struct {
	// Strategy selects the placement strategy by name ("levels" or "grid").
	Strategy string `json:"strategy" toml:"strategy" yaml:"strategy"`

	// ProcessBounds is the band reserved for a single process.
	ProcessBounds di.Bounds `json:"process_bounds" toml:"process_bounds" yaml:"process_bounds"`

	// Pools.
	PoolX         float64 `json:"pool_x" toml:"pool_x" yaml:"pool_x"`
	PoolY         float64 `json:"pool_y" toml:"pool_y" yaml:"pool_y"`
	PoolWidth     float64 `json:"pool_width" toml:"pool_width" yaml:"pool_width"`
	PoolMargin    float64 `json:"pool_margin" toml:"pool_margin" yaml:"pool_margin"`
	MinPoolHeight float64 `json:"min_pool_height" toml:"min_pool_height" yaml:"min_pool_height"`
	LaneHeight    float64 `json:"lane_height" toml:"lane_height" yaml:"lane_height"`

	// Level placement.
	LeftMargin        float64 `json:"left_margin" toml:"left_margin" yaml:"left_margin"`
	LaneInset         float64 `json:"lane_inset" toml:"lane_inset" yaml:"lane_inset"`
	HorizontalSpacing float64 `json:"horizontal_spacing" toml:"horizontal_spacing" yaml:"horizontal_spacing"`
	VerticalSpacing   float64 `json:"vertical_spacing" toml:"vertical_spacing" yaml:"vertical_spacing"`

	// Grid placement.
	CellWidth  float64 `json:"cell_width" toml:"cell_width" yaml:"cell_width"`
	CellHeight float64 `json:"cell_height" toml:"cell_height" yaml:"cell_height"`

	// Connector routing.
	DetourOffset    float64 `json:"detour_offset" toml:"detour_offset" yaml:"detour_offset"`
	DetourClearance float64 `json:"detour_clearance" toml:"detour_clearance" yaml:"detour_clearance"`

	// Sizes overrides the default size of individual element types,
	// keyed by local XML name (e.g. "userTask").
	Sizes map[string]di.Size `json:"sizes,omitempty" toml:"sizes" yaml:"sizes"`
}

// Default strategy names.
const (
	StrategyLevels = "levels"
	StrategyGrid   = "grid"
)

// DefaultConfig returns the stock layout constants.
func DefaultConfig() Config {
	return Config{
		Strategy:          StrategyLevels,
		ProcessBounds:     di.Bounds{X: 50, Y: 50, Width: 2000, Height: 800},
		PoolX:             50,
		PoolY:             50,
		PoolWidth:         2000,
		PoolMargin:        100,
		MinPoolHeight:     600,
		LaneHeight:        200,
		LeftMargin:        100,
		LaneInset:         50,
		HorizontalSpacing: 200,
		VerticalSpacing:   20,
		CellWidth:         150,
		CellHeight:        140,
		DetourOffset:      30,
		DetourClearance:   50,
	}
}

// SizeOf returns the configured size for an element type, falling back to
// [di.DefaultSize].
func (c Config) SizeOf(elementType string) di.Size {
	if s, ok := c.Sizes[elementType]; ok {
		return s
	}
	return di.DefaultSize(elementType)
}

// IsZero reports whether every field of c is unset. A partially filled
// Config is not zero; start from [DefaultConfig] to change single fields.
func (c Config) IsZero() bool {
	if len(c.Sizes) > 0 {
		return false
	}
	c.Sizes = nil
	return reflect.ValueOf(c).IsZero()
}

// Validate rejects configurations that cannot produce a layout.
func (c Config) Validate() error {
	positive := map[string]float64{
		"process_bounds.width":  c.ProcessBounds.Width,
		"process_bounds.height": c.ProcessBounds.Height,
		"pool_width":            c.PoolWidth,
		"min_pool_height":       c.MinPoolHeight,
		"lane_height":           c.LaneHeight,
		"cell_width":            c.CellWidth,
		"cell_height":           c.CellHeight,
	}
	for _, name := range []string{
		"process_bounds.width", "process_bounds.height", "pool_width",
		"min_pool_height", "lane_height", "cell_width", "cell_height",
	} {
		if positive[name] <= 0 {
			return errs.New(errs.ErrCodeInvalidConfig, "%s must be positive", name)
		}
	}
	nonNegative := []struct {
		name string
		v    float64
	}{
		{"pool_margin", c.PoolMargin},
		{"left_margin", c.LeftMargin},
		{"lane_inset", c.LaneInset},
		{"horizontal_spacing", c.HorizontalSpacing},
		{"vertical_spacing", c.VerticalSpacing},
		{"detour_offset", c.DetourOffset},
		{"detour_clearance", c.DetourClearance},
	}
	for _, f := range nonNegative {
		if f.v < 0 {
			return errs.New(errs.ErrCodeInvalidConfig, "%s must not be negative", f.name)
		}
	}
	for typ, s := range c.Sizes {
		if s.Width <= 0 || s.Height <= 0 {
			return errs.New(errs.ErrCodeInvalidConfig, "size of %s must be positive", typ)
		}
	}
	if _, err := StrategyByName(c.Strategy, c); err != nil {
		return err
	}
	return nil
}
