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
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"seehuhn.de/go/armdraw/bitmap"
	"seehuhn.de/go/armdraw/config"
	"seehuhn.de/go/armdraw/journal"
	"seehuhn.de/go/armdraw/motion"
	"seehuhn.de/go/armdraw/sim"
	"seehuhn.de/go/armdraw/stroke/testcases"
)

func findCase(t *testing.T, name string) testcases.TestCase {
	t.Helper()
	for _, cases := range testcases.All {
		for _, tc := range cases {
			if tc.Name == name {
				return tc
			}
		}
	}
	t.Fatalf("test case %q not found", name)
	return testcases.TestCase{}
}

// newTestPlotter returns a plotter driving a simulated arm. The tip of the
// arm follows the tool of the plan being executed.
func newTestPlotter(t *testing.T, opts ...Option) (*Plotter, *sim.Arm) {
	t.Helper()
	cfg := config.Default()
	home := cfg.Home()
	arm := sim.New(cfg.Bounds(), motion.Pose{X: home.X, Y: home.Y, Z: cfg.Tools.Marker.Raised, Roll: cfg.Arm.Roll})
	opts = append(opts, WithToolChange(func(plan *Plan) {
		switch plan.Kind {
		case KindErase:
			arm.Tip = sim.Tip{Width: plan.EraserReach(), Erase: true}
		default:
			arm.Tip = sim.Tip{Width: cfg.Tools.Marker.Width}
		}
	}))
	p, err := New(cfg, arm, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return p, arm
}

func TestNewInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Arm.MaxX = cfg.Arm.MinX
	if _, err := New(cfg, nil); err == nil {
		t.Error("invalid configuration accepted")
	}
}

func TestPlanDrawing(t *testing.T) {
	p, _ := newTestPlotter(t)
	house := findCase(t, "house")

	plan, err := p.PlanDrawing(house.Bitmap())
	if err != nil {
		t.Fatal(err)
	}
	if plan.Kind != KindDraw || plan.Tool != "marker" {
		t.Errorf("plan is %s with %s", plan.Kind, plan.Tool)
	}
	if plan.Empty() || len(plan.Paths) != len(plan.Strokes) {
		t.Fatalf("%d paths for %d strokes", len(plan.Paths), len(plan.Strokes))
	}
	b := p.Config().Bounds()
	for _, path := range plan.Paths {
		for _, v := range path {
			if v.X < b.LLx || v.X > b.URx || v.Y < b.LLy || v.Y > b.URy {
				t.Errorf("point %v outside the workspace", v)
			}
		}
	}
}

func TestPlanEmpty(t *testing.T) {
	p, arm := newTestPlotter(t)

	for _, b := range []*bitmap.Bitmap{bitmap.New(0, 0), bitmap.New(20, 10)} {
		plan, err := p.PlanDrawing(b)
		if err != nil {
			t.Fatal(err)
		}
		if !plan.Empty() {
			t.Errorf("%dx%d: plan has %d paths", b.Width, b.Height, len(plan.Paths))
		}
		plan, err = p.PlanErase(b)
		if err != nil {
			t.Fatal(err)
		}
		if !plan.Empty() {
			t.Errorf("%dx%d: erase plan has %d paths", b.Width, b.Height, len(plan.Paths))
		}
	}

	report, err := p.Draw(bitmap.New(20, 10))
	if err != nil {
		t.Fatal(err)
	}
	// only the move to the home position
	if report.Stats.Moves != 1 || len(arm.Marks()) != 0 {
		t.Errorf("empty drawing made %d moves and %d marks",
			report.Stats.Moves, len(arm.Marks()))
	}
}

// TestDrawAndErase draws a picture on the simulated surface, then erases
// the ink left behind and checks that the surface is clean.
func TestDrawAndErase(t *testing.T) {
	for _, strategy := range []string{"greedy", "zigzag"} {
		t.Run(strategy, func(t *testing.T) {
			p, arm := newTestPlotter(t)
			p.Config().Erase.Strategy = strategy
			house := findCase(t, "house")

			plan, err := p.PlanDrawing(house.Bitmap())
			if err != nil {
				t.Fatal(err)
			}
			report, err := p.Execute(plan)
			if err != nil {
				t.Fatal(err)
			}
			if report.Paths != len(plan.Paths) || report.Points != plan.Points() {
				t.Errorf("report %+v does not match the plan", report)
			}
			wantMoves := 1 + 2*len(plan.Paths) + plan.Points()
			if report.Stats.Moves != wantMoves {
				t.Errorf("%d moves, want %d", report.Stats.Moves, wantMoves)
			}

			toPixel := plan.ToPixel()
			ink := arm.Ink(house.Width, house.Height, toPixel)
			if ink.Empty() {
				t.Fatal("drawing left no ink")
			}

			erase, err := p.PlanErase(ink)
			if err != nil {
				t.Fatal(err)
			}
			if erase.Empty() {
				t.Fatal("no erase moves planned")
			}
			if _, err := p.Execute(erase); err != nil {
				t.Fatal(err)
			}
			if left := arm.Ink(house.Width, house.Height, toPixel).Count(); left != 0 {
				t.Errorf("%d ink pixels left after erasing", left)
			}

			// all pen-down moves of the eraser use the eraser height
			eraser := p.Config().Tools.Eraser
			for _, cmd := range arm.History()[report.Stats.Moves:] {
				if cmd.Pen == motion.Down && (cmd.Pose.Z < eraser.Lowered-1 || cmd.Pose.Z > eraser.Lowered+1) {
					t.Errorf("eraser lowered to z=%g", cmd.Pose.Z)
					break
				}
			}
		})
	}
}

func TestExecuteFatal(t *testing.T) {
	j, err := journal.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer j.Close()

	p, arm := newTestPlotter(t, WithJournal(j))
	arm.FailAt = 5

	report, err := p.Draw(findCase(t, "house").Bitmap())
	var fe *motion.FatalError
	if !errors.As(err, &fe) {
		t.Fatalf("got %v, want fatal error", err)
	}
	var hw *motion.HardwareError
	if !errors.As(err, &hw) || hw.Code != sim.CodeInjected {
		t.Errorf("got %v, want injected hardware error", err)
	}
	if report == nil || report.Stats.Moves != 4 {
		t.Fatalf("report = %+v, want 4 completed moves", report)
	}
	if len(arm.History()) != 5 {
		t.Errorf("arm received %d commands after the failure", len(arm.History()))
	}

	job, err := j.GetJob(report.Job)
	if err != nil {
		t.Fatal(err)
	}
	if job.Error == "" || job.Finished.IsZero() {
		t.Errorf("job not marked as failed: %+v", job)
	}
	sum, err := j.Summary(report.Job)
	if err != nil {
		t.Fatal(err)
	}
	if sum["failed"] != 1 || sum["direct"] != 4 {
		t.Errorf("summary = %v", sum)
	}
}

func TestCalibrate(t *testing.T) {
	p, arm := newTestPlotter(t)
	report, err := p.Calibrate("neutral")
	if err != nil {
		t.Fatal(err)
	}
	if report.Kind != KindCalibrate || report.Stats.Moves != 1+12+1 {
		t.Errorf("report = %+v", report)
	}
	if _, err := p.Calibrate("pencil"); err == nil {
		t.Error("unknown tool accepted")
	}
	home := p.Config().Home()
	if got := arm.Pose().Point(); got != home {
		t.Errorf("arm ends at %v, want %v", got, home)
	}
}

func TestPreview(t *testing.T) {
	p, _ := newTestPlotter(t)
	house := findCase(t, "house")
	dir := t.TempDir()

	draw, err := p.PlanDrawing(house.Bitmap())
	if err != nil {
		t.Fatal(err)
	}
	erase, err := p.PlanErase(house.Bitmap())
	if err != nil {
		t.Fatal(err)
	}
	for _, plan := range []*Plan{draw, erase} {
		fname := filepath.Join(dir, string(plan.Kind)+".pdf")
		if err := p.Preview(plan, fname); err != nil {
			t.Fatal(err)
		}
		if fi, err := os.Stat(fname); err != nil || fi.Size() == 0 {
			t.Errorf("%s: no preview written", plan.Kind)
		}
	}
}

func TestDecode(t *testing.T) {
	p, _ := newTestPlotter(t)
	house := findCase(t, "house").Bitmap()

	buf := &bytes.Buffer{}
	if err := png.Encode(buf, house.Gray()); err != nil {
		t.Fatal(err)
	}
	b, err := p.Decode(buf)
	if err != nil {
		t.Fatal(err)
	}
	if b.Width != house.Width || b.Height != house.Height {
		t.Fatalf("decoded %dx%d, want %dx%d", b.Width, b.Height, house.Width, house.Height)
	}
	if !b.Covers(house) || !house.Covers(b) {
		t.Error("decoded image differs from the original")
	}
}

func TestJournalError(t *testing.T) {
	j, err := journal.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	j.Close()

	p, arm := newTestPlotter(t, WithJournal(j))
	_, err = p.Calibrate("marker")
	if err == nil {
		t.Fatal("closed journal accepted")
	}
	if n := strings.Count(err.Error(), "journal:"); n != 1 {
		t.Errorf("error %q names the journal %d times", err, n)
	}
	if len(arm.History()) != 0 {
		t.Error("arm moved without a journal entry")
	}
}

func TestNilLogger(t *testing.T) {
	p, _ := newTestPlotter(t, WithLogger(nil))
	if p.log == nil {
		t.Fatal("no logger installed")
	}
	if _, err := p.Calibrate("marker"); err != nil {
		t.Fatal(err)
	}
}
