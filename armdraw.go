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

// Package armdraw reproduces line drawings with a robot arm.
//
// A Plotter turns a binary edge image into pen strokes, maps them into the
// workspace of the arm and sends the resulting moves to a
// motion.Controller. It can also plan and execute the removal of ink with
// an eraser. The work of each step is done by the subpackages; this
// package wires them together using a config.Config.
package armdraw

import (
	"fmt"
	"io"
	"log/slog"

	"seehuhn.de/go/armdraw/bitmap"
	"seehuhn.de/go/armdraw/config"
	"seehuhn.de/go/armdraw/coverage"
	"seehuhn.de/go/armdraw/journal"
	"seehuhn.de/go/armdraw/motion"
	"seehuhn.de/go/armdraw/stroke"
)

var nopLogger = slog.New(slog.DiscardHandler)

// Plotter runs drawing and erasing jobs on one arm. It must not be used
// concurrently: only one job may send moves to the arm at a time.
type Plotter struct {
	cfg *config.Config
	ctl motion.Controller
	log *slog.Logger

	journal    *journal.Journal
	toolChange func(plan *Plan)

	extractor *stroke.Extractor
	eraser    coverage.Planner
}

// Option configures a Plotter.
type Option func(*Plotter)

// WithLogger sets the logger for the plotter and its jobs.
func WithLogger(l *slog.Logger) Option {
	return func(p *Plotter) {
		p.log = l
	}
}

// WithJournal records all jobs and moves in j.
func WithJournal(j *journal.Journal) Option {
	return func(p *Plotter) {
		p.journal = j
	}
}

// WithToolChange registers a function which is called before a plan is
// executed, so that the right tool can be mounted.
func WithToolChange(fn func(plan *Plan)) Option {
	return func(p *Plotter) {
		p.toolChange = fn
	}
}

// New returns a plotter for the arm ctl. A nil cfg selects
// config.Default().
func New(cfg *config.Config, ctl motion.Controller, opts ...Option) (*Plotter, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	p := &Plotter{
		cfg: cfg,
		ctl: ctl,
		log: nopLogger,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.log == nil {
		p.log = nopLogger
	}

	p.extractor = stroke.NewExtractor()
	p.extractor.GapThreshold = cfg.Extract.GapThreshold
	p.extractor.MinPoints = cfg.Extract.MinPoints
	p.eraser.ToolWidth = cfg.Erase.Width
	p.eraser.ToolHeight = cfg.Erase.Height
	return p, nil
}

// Config returns the configuration of the plotter.
func (p *Plotter) Config() *config.Config {
	return p.cfg
}

// Decode reads an image and binarises it using the image settings of the
// configuration.
func (p *Plotter) Decode(r io.Reader) (*bitmap.Bitmap, error) {
	ic := p.cfg.Image
	return bitmap.Decode(r, &bitmap.LoadOptions{
		Threshold: uint8(ic.Threshold),
		Invert:    ic.Invert,
		MaxSize:   ic.MaxSize,
	})
}
