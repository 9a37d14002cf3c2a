// seehuhn.de/go/armdraw - line drawings with a robot arm
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package config reads the settings of a drawing set-up from YAML files.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/armdraw/motion"
	"seehuhn.de/go/armdraw/workspace"
)

// Config holds the full configuration of a set-up.
type Config struct {
	Arm         ArmConfig         `yaml:"arm"`
	Tools       ToolsConfig       `yaml:"tools"`
	Calibration CalibrationConfig `yaml:"calibration"`
	Extract     ExtractConfig     `yaml:"extract"`
	Erase       EraseConfig       `yaml:"erase"`
	Image       ImageConfig       `yaml:"image"`
	Journal     string            `yaml:"journal"` // SQLite file, empty for none
}

// ArmConfig describes the workspace and the motion parameters.
type ArmConfig struct {
	MinX    float64 `yaml:"min_x"`
	MaxX    float64 `yaml:"max_x"`
	MinY    float64 `yaml:"min_y"`
	MaxY    float64 `yaml:"max_y"`
	HomeX   float64 `yaml:"home_x"`
	HomeY   float64 `yaml:"home_y"`
	Roll    float64 `yaml:"roll"`
	Pitch   float64 `yaml:"pitch"`
	Yaw     float64 `yaml:"yaw"`
	Speed   float64 `yaml:"speed"`
	MaxStep float64 `yaml:"max_step"`
}

// ToolConfig gives the heights of a tool and the width of its mark.
type ToolConfig struct {
	Lowered float64 `yaml:"lowered"`
	Raised  float64 `yaml:"raised"`
	Width   float64 `yaml:"width"`
}

// ToolsConfig lists the tool profiles.
type ToolsConfig struct {
	Marker  ToolConfig `yaml:"marker"`
	Eraser  ToolConfig `yaml:"eraser"`
	Neutral ToolConfig `yaml:"neutral"`
}

// CalibrationConfig holds the pen height correction table, see
// workspace.NewGrid.
type CalibrationConfig struct {
	Offsets [][]float64 `yaml:"offsets"`
}

// ExtractConfig controls stroke extraction.
type ExtractConfig struct {
	GapThreshold float64 `yaml:"gap_threshold"` // squared pixel distance
	Epsilon      float64 `yaml:"epsilon"`
	MinPoints    int     `yaml:"min_points"`
}

// EraseConfig controls erase planning. Sizes are in image pixels.
type EraseConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	Strategy  string  `yaml:"strategy"` // greedy | zigzag
	StepRatio float64 `yaml:"step_ratio"`
}

// ImageConfig controls binarisation of input images.
type ImageConfig struct {
	Threshold int  `yaml:"threshold"`
	Invert    bool `yaml:"invert"`
	MaxSize   int  `yaml:"max_size"`
}

// Default returns the configuration of the reference set-up.
func Default() *Config {
	return &Config{
		Arm: ArmConfig{
			MinX:    160,
			MaxX:    375,
			MinY:    -190,
			MaxY:    190,
			HomeX:   215,
			HomeY:   0,
			Roll:    180,
			Speed:   200,
			MaxStep: motion.DefaultMaxStep,
		},
		Tools: ToolsConfig{
			Marker:  ToolConfig{Lowered: 126, Raised: 131, Width: 1},
			Eraser:  ToolConfig{Lowered: 68, Raised: 80, Width: 30},
			Neutral: ToolConfig{Lowered: 158, Raised: 170, Width: 1},
		},
		Calibration: CalibrationConfig{
			Offsets: workspace.DefaultOffsets(),
		},
		Extract: ExtractConfig{
			GapThreshold: 5,
			Epsilon:      2,
			MinPoints:    2,
		},
		Erase: EraseConfig{
			Width:     50,
			Height:    30,
			Strategy:  "greedy",
			StepRatio: 0.5,
		},
		Image: ImageConfig{
			Threshold: 128,
			MaxSize:   500,
		},
	}
}

// Load reads the YAML file at path. Fields missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates a YAML document.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks all values and reports every problem found.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	a := &c.Arm
	check(a.MaxX > a.MinX, "arm: max_x (%g) must exceed min_x (%g)", a.MaxX, a.MinX)
	check(a.MaxY > a.MinY, "arm: max_y (%g) must exceed min_y (%g)", a.MaxY, a.MinY)
	check(workspace.Contains(c.Bounds(), c.Home()), "arm: home (%g, %g) outside the workspace", a.HomeX, a.HomeY)
	check(a.Speed > 0, "arm: speed must be > 0")
	check(a.MaxStep > 0, "arm: max_step must be > 0")

	tools := []struct {
		name string
		tool ToolConfig
	}{
		{"marker", c.Tools.Marker},
		{"eraser", c.Tools.Eraser},
		{"neutral", c.Tools.Neutral},
	}
	for _, nt := range tools {
		name, t := nt.name, nt.tool
		check(t.Raised > t.Lowered, "tools.%s: raised (%g) must exceed lowered (%g)", name, t.Raised, t.Lowered)
		check(t.Width > 0, "tools.%s: width must be > 0", name)
	}

	if len(c.Calibration.Offsets) > 0 {
		if _, err := workspace.NewGrid(c.Bounds(), c.Calibration.Offsets); err != nil {
			errs = append(errs, fmt.Errorf("calibration: %w", err))
		}
	}

	e := &c.Extract
	check(e.GapThreshold >= 1 && !math.IsInf(e.GapThreshold, 0), "extract: gap_threshold must be finite and >= 1")
	check(e.Epsilon >= 0 && !math.IsInf(e.Epsilon, 0), "extract: epsilon must be >= 0")
	check(e.MinPoints >= 2, "extract: min_points must be >= 2")

	r := &c.Erase
	check(r.Width > 0 && r.Height > 0, "erase: tool size %dx%d must be positive", r.Width, r.Height)
	check(r.Strategy == "greedy" || r.Strategy == "zigzag",
		"erase: unsupported strategy %q (use greedy or zigzag)", r.Strategy)
	check(r.StepRatio > 0 && r.StepRatio <= 1, "erase: step_ratio must be in (0, 1]")

	check(c.Image.Threshold >= 0 && c.Image.Threshold <= 255, "image: threshold must be in [0, 255]")
	check(c.Image.MaxSize >= 0, "image: max_size must be >= 0")

	return errors.Join(errs...)
}

// Bounds returns the workspace rectangle.
func (c *Config) Bounds() rect.Rect {
	return workspace.NewBounds(c.Arm.MinX, c.Arm.MaxX, c.Arm.MinY, c.Arm.MaxY)
}

// Home returns the rest position of the arm.
func (c *Config) Home() vec.Vec2 {
	return vec.Vec2{X: c.Arm.HomeX, Y: c.Arm.HomeY}
}

// Grid returns the height correction grid, or nil if no table is
// configured.
func (c *Config) Grid() (*workspace.Grid, error) {
	if len(c.Calibration.Offsets) == 0 {
		return nil, nil
	}
	return workspace.NewGrid(c.Bounds(), c.Calibration.Offsets)
}

// Tool returns the profile with the given name.
func (c *Config) Tool(name string) (ToolConfig, error) {
	switch name {
	case "marker":
		return c.Tools.Marker, nil
	case "eraser":
		return c.Tools.Eraser, nil
	case "neutral":
		return c.Tools.Neutral, nil
	default:
		return ToolConfig{}, fmt.Errorf("unknown tool %q", name)
	}
}

// Settings returns the motion settings for the named tool, with pen-down
// moves height corrected by the calibration grid.
func (c *Config) Settings(tool string) (motion.Settings, error) {
	t, err := c.Tool(tool)
	if err != nil {
		return motion.Settings{}, err
	}
	s := motion.Settings{
		Tool:    motion.Tool{Name: tool, Lowered: t.Lowered, Raised: t.Raised},
		Roll:    c.Arm.Roll,
		Pitch:   c.Arm.Pitch,
		Yaw:     c.Arm.Yaw,
		Speed:   c.Arm.Speed,
		MaxStep: c.Arm.MaxStep,
	}
	grid, err := c.Grid()
	if err != nil {
		return motion.Settings{}, err
	}
	if grid != nil {
		s.Corrector = grid
	}
	return s, nil
}
