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

package armdraw

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"seehuhn.de/go/armdraw/bitmap"
	"seehuhn.de/go/armdraw/motion"
	"seehuhn.de/go/armdraw/preview"
)

// Report summarises an executed plan.
type Report struct {
	Job      string
	Kind     Kind
	Paths    int
	Points   int
	Stats    motion.Stats
	Duration time.Duration
}

// Execute sends the moves of plan to the arm. The arm first moves to the
// home position with the tool raised; the pen-down paths follow in order.
//
// If a move cannot be completed, Execute stops and returns the partial
// report together with a *motion.FatalError.
func (p *Plotter) Execute(plan *Plan) (*Report, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	job := id.String()
	log := p.log.With("job", job)

	settings, err := p.cfg.Settings(plan.Tool)
	if err != nil {
		return nil, err
	}
	if p.toolChange != nil {
		p.toolChange(plan)
	}

	if p.journal != nil {
		err := p.journal.StartJob(job, string(plan.Kind), plan.Tool)
		if err != nil {
			return nil, err
		}
	}

	opts := []motion.Option{
		motion.WithJob(job),
		motion.WithLogger(p.log),
	}
	if p.journal != nil {
		opts = append(opts, motion.WithRecorder(p.journal))
	}
	e := motion.NewExecutor(p.ctl, settings, opts...)

	start := time.Now()
	runErr := p.run(e, plan)
	report := &Report{
		Job:      job,
		Kind:     plan.Kind,
		Paths:    len(plan.Paths),
		Points:   plan.Points(),
		Stats:    e.Stats(),
		Duration: time.Since(start),
	}

	if runErr != nil {
		log.Error("job failed", "error", runErr)
	} else {
		log.Info("job done",
			"kind", plan.Kind,
			"moves", report.Stats.Moves,
			"duration", report.Duration)
	}

	if p.journal != nil {
		err := p.journal.FinishJob(job, runErr)
		if err != nil {
			runErr = errors.Join(runErr, err)
		}
	}
	return report, runErr
}

func (p *Plotter) run(e *motion.Executor, plan *Plan) error {
	if err := e.MoveHome(p.cfg.Home()); err != nil {
		return err
	}
	switch plan.Kind {
	case KindErase:
		for _, path := range plan.Paths {
			if err := e.Sweep(path); err != nil {
				return err
			}
		}
		return nil
	case KindCalibrate:
		b := p.cfg.Bounds()
		if err := e.CalibrateCorners(b.LLx, b.URx, b.LLy, b.URy); err != nil {
			return err
		}
		return e.MoveHome(p.cfg.Home())
	default:
		return e.Run(plan.Paths)
	}
}

// Draw plans and executes a drawing of the edge image.
func (p *Plotter) Draw(edges *bitmap.Bitmap) (*Report, error) {
	plan, err := p.PlanDrawing(edges)
	if err != nil {
		return nil, err
	}
	return p.Execute(plan)
}

// Erase plans and executes the removal of the ink in mask.
func (p *Plotter) Erase(mask *bitmap.Bitmap) (*Report, error) {
	plan, err := p.PlanErase(mask)
	if err != nil {
		return nil, err
	}
	return p.Execute(plan)
}

// Calibrate touches the surface at the four corners of the workspace with
// the named tool, see motion.Executor.CalibrateCorners.
func (p *Plotter) Calibrate(tool string) (*Report, error) {
	return p.Execute(&Plan{Kind: KindCalibrate, Tool: tool})
}

// Preview writes a PDF file showing the moves of plan.
func (p *Plotter) Preview(plan *Plan, fname string) error {
	doc := &preview.Document{
		Bounds:   p.cfg.Bounds(),
		PenWidth: p.cfg.Tools.Marker.Width,
	}
	switch plan.Kind {
	case KindErase:
		for _, path := range plan.Paths {
			doc.Sweep = append(doc.Sweep, path...)
		}
		doc.EraserWidth = plan.Footprint.X
		doc.EraserHeight = plan.Footprint.Y
	default:
		doc.Strokes = plan.Paths
	}
	return preview.Write(fname, doc)
}
