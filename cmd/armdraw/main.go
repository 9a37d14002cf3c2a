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

// Command armdraw draws and erases line images with a simulated robot arm.
//
// Usage:
//
//	armdraw [flags] draw image
//	armdraw [flags] erase image
//	armdraw [flags] preview image
//	armdraw [flags] calibrate
//
// The image is read as a binary edge image. Jobs are run on a simulated
// arm; the ink left on the simulated surface can be saved with -ink.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"time"

	"seehuhn.de/go/armdraw"
	"seehuhn.de/go/armdraw/bitmap"
	"seehuhn.de/go/armdraw/config"
	"seehuhn.de/go/armdraw/journal"
	"seehuhn.de/go/armdraw/motion"
	"seehuhn.de/go/armdraw/sim"
)

func main() {
	configFile := flag.String("config", "", "YAML configuration file")
	journalFile := flag.String("journal", "", "SQLite database to record jobs in (overrides the configuration)")
	inkFile := flag.String("ink", "", "write the simulated ink as a PNG image")
	pdfFile := flag.String("o", "plan.pdf", "output file for the preview command")
	erase := flag.Bool("erase", false, "preview an erase plan instead of a drawing")
	tool := flag.String("tool", "marker", "tool used by the calibrate command")
	verbose := flag.Bool("v", false, "log every move")
	flag.Usage = usage
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			failf("%v", err)
		}
	}

	home := cfg.Home()
	arm := sim.New(cfg.Bounds(), motion.Pose{
		X: home.X, Y: home.Y, Z: cfg.Tools.Neutral.Raised,
		Roll: cfg.Arm.Roll, Pitch: cfg.Arm.Pitch, Yaw: cfg.Arm.Yaw,
	})
	arm.Logger = logger

	opts := []armdraw.Option{
		armdraw.WithLogger(logger),
		armdraw.WithToolChange(func(plan *armdraw.Plan) {
			logger.Info("mount tool", "tool", plan.Tool)
			switch plan.Kind {
			case armdraw.KindErase:
				arm.Tip = sim.Tip{Width: plan.EraserReach(), Erase: true}
			default:
				t, _ := cfg.Tool(plan.Tool)
				arm.Tip = sim.Tip{Width: t.Width}
			}
		}),
	}
	if *journalFile == "" {
		*journalFile = cfg.Journal
	}
	if *journalFile != "" {
		j, err := journal.Open(*journalFile)
		if err != nil {
			failf("cannot open journal: %v", err)
		}
		defer j.Close()
		opts = append(opts, armdraw.WithJournal(j))
	}

	p, err := armdraw.New(cfg, arm, opts...)
	if err != nil {
		failf("%v", err)
	}

	var plan *armdraw.Plan
	switch cmd := flag.Arg(0); cmd {
	case "draw", "erase", "preview":
		if flag.NArg() != 2 {
			usage()
			os.Exit(2)
		}
		img, err := load(p, flag.Arg(1))
		if err != nil {
			failf("%v", err)
		}
		if cmd == "erase" || (cmd == "preview" && *erase) {
			plan, err = p.PlanErase(img)
		} else {
			plan, err = p.PlanDrawing(img)
		}
		if err != nil {
			failf("%v", err)
		}

		if cmd == "preview" {
			if err := p.Preview(plan, *pdfFile); err != nil {
				failf("%v", err)
			}
			fmt.Printf("%s: %d paths, %d points\n", *pdfFile, len(plan.Paths), plan.Points())
			return
		}
		report, err := p.Execute(plan)
		printReport(report)
		if err != nil {
			failf("%v", err)
		}
	case "calibrate":
		report, err := p.Calibrate(*tool)
		printReport(report)
		if err != nil {
			failf("%v", err)
		}
	default:
		usage()
		os.Exit(2)
	}

	if *inkFile != "" && plan != nil {
		ink := arm.Ink(plan.Width, plan.Height, plan.ToPixel())
		if err := writePNG(*inkFile, ink); err != nil {
			failf("%v", err)
		}
	}
}

func load(p *armdraw.Plotter, fname string) (*bitmap.Bitmap, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := p.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return img, nil
}

func writePNG(fname string, b *bitmap.Bitmap) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	err = png.Encode(f, b.Gray())
	return errors.Join(err, f.Close())
}

func printReport(r *armdraw.Report) {
	if r == nil {
		return
	}
	fmt.Printf("job %s (%s): %d moves, %d subdivided, %d in joint space, %v\n",
		r.Job, r.Kind, r.Stats.Moves, r.Stats.Subdivided, r.Stats.JointSpace,
		r.Duration.Round(time.Millisecond))
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintln(out, "usage: armdraw [flags] draw|erase|preview image")
	fmt.Fprintln(out, "       armdraw [flags] calibrate")
	flag.PrintDefaults()
}

func failf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "armdraw: "+format+"\n", args...)
	os.Exit(1)
}
