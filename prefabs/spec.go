// Package prefabs loads controller tuning from YAML files and watches them
// for live edits.
package prefabs

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/britzl/platypus"
)

// BodySpec mirrors platypus.Config for YAML tuning files. Group masks are
// written as direction name lists, e.g. `ground: [all]` or `platform: [down]`.
type BodySpec struct {
	Left   float64 `yaml:"left"`
	Right  float64 `yaml:"right"`
	Top    float64 `yaml:"top"`
	Bottom float64 `yaml:"bottom"`

	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`

	Gravity          float64 `yaml:"gravity"`
	WallSlideGravity float64 `yaml:"wall_slide_gravity"`
	MaxVelocity      float64 `yaml:"max_velocity"`

	AllowDoubleJump bool `yaml:"allow_double_jump"`
	AllowWallJump   bool `yaml:"allow_wall_jump"`
	AllowWallSlide  bool `yaml:"allow_wall_slide"`
	ConstWallJump   bool `yaml:"const_wall_jump"`

	WallJumpPowerRatioX float64 `yaml:"wall_jump_power_ratio_x"`
	WallJumpPowerRatioY float64 `yaml:"wall_jump_power_ratio_y"`

	Groups map[string][]string `yaml:"groups"`

	Separation string `yaml:"separation"`
	Debug      bool   `yaml:"debug"`
}

var directions = map[string]platypus.DirMask{
	"up":    platypus.DirUp,
	"left":  platypus.DirLeft,
	"right": platypus.DirRight,
	"down":  platypus.DirDown,
	"all":   platypus.DirAll,
}

// ParseBodySpec decodes a tuning spec. Unknown keys are a hard error so a
// typo in a tuning file fails loudly instead of silently using a default.
func ParseBodySpec(data []byte) (*BodySpec, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var spec BodySpec
	if err := dec.Decode(&spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal body spec: %w", err)
	}
	return &spec, nil
}

// LoadBodySpec reads and decodes a tuning spec file.
func LoadBodySpec(path string) (*BodySpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", path, err)
	}
	spec, err := ParseBodySpec(data)
	if err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", path, err)
	}
	return spec, nil
}

// Config converts the spec into a controller config. Validation beyond the
// direction names is left to the controller.
func (s *BodySpec) Config() (platypus.Config, error) {
	groups := make(map[string]platypus.DirMask, len(s.Groups))
	for name, dirs := range s.Groups {
		var mask platypus.DirMask
		for _, d := range dirs {
			bit, ok := directions[d]
			if !ok {
				return platypus.Config{}, fmt.Errorf("prefabs: group %q: unknown direction %q", name, d)
			}
			mask |= bit
		}
		groups[name] = mask
	}

	return platypus.Config{
		Left:                s.Left,
		Right:               s.Right,
		Top:                 s.Top,
		Bottom:              s.Bottom,
		OffsetX:             s.OffsetX,
		OffsetY:             s.OffsetY,
		Gravity:             s.Gravity,
		WallSlideGravity:    s.WallSlideGravity,
		MaxVelocity:         s.MaxVelocity,
		AllowDoubleJump:     s.AllowDoubleJump,
		AllowWallJump:       s.AllowWallJump,
		AllowWallSlide:      s.AllowWallSlide,
		ConstWallJump:       s.ConstWallJump,
		WallJumpPowerRatioX: s.WallJumpPowerRatioX,
		WallJumpPowerRatioY: s.WallJumpPowerRatioY,
		Groups:              groups,
		Separation:          s.Separation,
		Debug:               s.Debug,
	}, nil
}
