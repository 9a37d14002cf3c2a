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

package motion

import (
	"errors"
	"math"
	"testing"

	"seehuhn.de/go/geom/vec"
)

// fakeArm is a Controller which reports a singularity for configurable
// poses.
type fakeArm struct {
	pose Pose

	singular   func(p Pose) bool // MoveTo reports ErrSingularity
	ikFails    func(p Pose) bool // SolveIK fails
	fatalAfter int               // MoveTo fails with a hardware error on this call, if > 0

	moves      []Command
	jointMoves []Joints
	ikCalls    int
	poseCalls  int
}

func (a *fakeArm) MoveTo(cmd Command) error {
	a.moves = append(a.moves, cmd)
	if a.fatalAfter > 0 && len(a.moves) == a.fatalAfter {
		return &HardwareError{Code: 31}
	}
	if a.singular != nil && a.singular(cmd.Pose) {
		return ErrSingularity
	}
	a.pose = cmd.Pose
	return nil
}

func (a *fakeArm) CurrentPose() (Pose, error) {
	a.poseCalls++
	return a.pose, nil
}

func (a *fakeArm) SolveIK(p Pose) (Joints, error) {
	a.ikCalls++
	if a.ikFails != nil && a.ikFails(p) {
		return nil, &IKError{Code: -1}
	}
	return Joints{p.X, p.Y, p.Z, 0, 0, 0}, nil
}

func (a *fakeArm) MoveJoints(j Joints) error {
	a.jointMoves = append(a.jointMoves, j)
	a.pose = Pose{X: j[0], Y: j[1], Z: j[2], Roll: 180}
	return nil
}

func testSettings() Settings {
	s := DefaultSettings()
	s.MaxStep = 1
	return s
}

func TestMoveDirect(t *testing.T) {
	arm := &fakeArm{}
	e := NewExecutor(arm, testSettings())
	cmd := e.settings.Command(vec.Vec2{X: 200, Y: 10}, Up)
	outcome, err := e.Move(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if outcome != Direct {
		t.Errorf("outcome = %s, want direct", outcome)
	}
	if len(arm.moves) != 1 || arm.moves[0] != cmd {
		t.Errorf("unexpected moves %v", arm.moves)
	}
	if last, ok := e.LastPose(); !ok || last != cmd.Pose {
		t.Errorf("last pose = %v, want %v", last, cmd.Pose)
	}
}

// TestMoveSubdivided checks that a move into a singular target is split
// into several short moves.
func TestMoveSubdivided(t *testing.T) {
	target := Pose{X: 210, Y: 0, Z: 131, Roll: 180}
	first := true
	arm := &fakeArm{
		pose: Pose{X: 200, Y: 0, Z: 131, Roll: 180},
		singular: func(p Pose) bool {
			// only the initial long move fails
			if first && p == target {
				first = false
				return true
			}
			return false
		},
	}
	e := NewExecutor(arm, testSettings())
	outcome, err := e.Move(Command{Pose: target, Pen: Up})
	if err != nil {
		t.Fatal(err)
	}
	if outcome != Subdivided {
		t.Errorf("outcome = %s, want subdivided", outcome)
	}

	waypoints := arm.moves[1:]
	if len(waypoints) < 2 {
		t.Fatalf("got %d waypoints, want at least 2", len(waypoints))
	}
	if len(waypoints) != 10 {
		t.Errorf("got %d waypoints, want 10", len(waypoints))
	}
	prev := Pose{X: 200, Y: 0, Z: 131}
	for i, wp := range waypoints {
		d := math.Hypot(wp.Pose.X-prev.X, wp.Pose.Y-prev.Y)
		if d > 1+1e-9 {
			t.Errorf("waypoint %d: step %g exceeds max step", i, d)
		}
		prev = wp.Pose
	}
	if last := waypoints[len(waypoints)-1].Pose; last != target {
		t.Errorf("last waypoint %v, want %v", last, target)
	}
	if arm.ikCalls != 0 {
		t.Errorf("unexpected IK calls: %d", arm.ikCalls)
	}
	if st := e.Stats(); st.Subdivided != 1 || st.Waypoints != 10 {
		t.Errorf("stats = %+v", st)
	}
}

// TestMoveShortSubdivided checks that even a very short failed move is
// retried in at least two steps.
func TestMoveShortSubdivided(t *testing.T) {
	target := Pose{X: 200.01, Z: 131}
	arm := &fakeArm{pose: Pose{X: 200, Z: 131}}
	arm.singular = func(p Pose) bool { return len(arm.moves) == 1 }
	e := NewExecutor(arm, testSettings())
	if _, err := e.Move(Command{Pose: target}); err != nil {
		t.Fatal(err)
	}
	if n := len(arm.moves) - 1; n < 2 {
		t.Errorf("got %d waypoints, want at least 2", n)
	}
}

func TestMoveJointSpace(t *testing.T) {
	// the region x > 205 cannot be reached by Cartesian moves
	arm := &fakeArm{
		pose:     Pose{X: 200, Z: 131, Roll: 180},
		singular: func(p Pose) bool { return p.X > 205 },
	}
	e := NewExecutor(arm, testSettings())
	target := Pose{X: 210, Z: 131, Roll: 180}
	outcome, err := e.Move(Command{Pose: target})
	if err != nil {
		t.Fatal(err)
	}
	if outcome != JointSpace {
		t.Errorf("outcome = %s, want joint-space", outcome)
	}
	// waypoints at 201..210: 206..210 need IK
	if arm.ikCalls != 5 || len(arm.jointMoves) != 5 {
		t.Errorf("IK calls = %d, joint moves = %d, want 5 each",
			arm.ikCalls, len(arm.jointMoves))
	}
	if last, _ := e.LastPose(); last != target {
		t.Errorf("last pose = %v, want %v", last, target)
	}
}

func TestIKFailureIsFatal(t *testing.T) {
	arm := &fakeArm{
		pose:     Pose{X: 200, Z: 131},
		singular: func(p Pose) bool { return p.X > 202.5 },
		ikFails:  func(p Pose) bool { return true },
	}
	e := NewExecutor(arm, testSettings())
	cmd := Command{Pose: Pose{X: 205, Z: 131}, Pen: Down}
	outcome, err := e.Move(cmd)
	if outcome != JointSpace {
		t.Errorf("outcome = %s, want joint-space", outcome)
	}

	var fe *FatalError
	if !errors.As(err, &fe) {
		t.Fatalf("got %v, want *FatalError", err)
	}
	var ik *IKError
	if !errors.As(err, &ik) {
		t.Errorf("error %v does not wrap *IKError", err)
	}
	if fe.Command != cmd {
		t.Errorf("command = %v, want %v", fe.Command, cmd)
	}
	if math.Abs(fe.Waypoint.Pose.X-203) > 1e-9 {
		t.Errorf("failed waypoint = %v, want x=203", fe.Waypoint.Pose)
	}
	if math.Abs(fe.LastPose.X-202) > 1e-9 {
		t.Errorf("last pose = %v, want x=202", fe.LastPose)
	}
	if len(arm.jointMoves) != 0 {
		t.Error("joint move issued after IK failure")
	}
}

func TestHardwareErrorIsFatal(t *testing.T) {
	arm := &fakeArm{fatalAfter: 3}
	e := NewExecutor(arm, testSettings())
	stroke := []vec.Vec2{{X: 200, Y: 0}, {X: 210, Y: 0}, {X: 220, Y: 0}}
	err := e.DrawStroke(stroke)

	var hw *HardwareError
	if !errors.As(err, &hw) || hw.Code != 31 {
		t.Fatalf("got %v, want hardware error 31", err)
	}
	var fe *FatalError
	if !errors.As(err, &fe) {
		t.Fatal("not a *FatalError")
	}
	if fe.Command.Pose.X != 210 || fe.Command.Pen != Down {
		t.Errorf("offending command = %v", fe.Command)
	}
	if fe.LastPose.X != 200 || fe.LastPose.Z != 126 {
		t.Errorf("last pose = %v", fe.LastPose)
	}
	if len(arm.moves) != 3 {
		t.Errorf("%d moves issued, want 3", len(arm.moves))
	}
	if arm.ikCalls != 0 {
		t.Error("hardware error was retried")
	}
}

func TestDrawStrokeSequence(t *testing.T) {
	arm := &fakeArm{}
	s := testSettings()
	s.Corrector = constCorrector(-0.5)
	e := NewExecutor(arm, s)

	stroke := []vec.Vec2{{X: 200, Y: 0}, {X: 201, Y: 1}, {X: 202, Y: 1}}
	if err := e.DrawStroke(stroke); err != nil {
		t.Fatal(err)
	}

	if len(arm.moves) != len(stroke)+2 {
		t.Fatalf("got %d moves, want %d", len(arm.moves), len(stroke)+2)
	}
	first, last := arm.moves[0], arm.moves[len(arm.moves)-1]
	if first.Pen != Up || first.Pose.Point() != stroke[0] || first.Pose.Z != 131 {
		t.Errorf("travel move = %v", first)
	}
	if last.Pen != Up || last.Pose.Point() != stroke[2] || last.Pose.Z != 131 {
		t.Errorf("lift move = %v", last)
	}
	for i, m := range arm.moves[1 : len(arm.moves)-1] {
		if m.Pen != Down || m.Pose.Point() != stroke[i] {
			t.Errorf("draw move %d = %v", i, m)
		}
		if m.Pose.Z != 125.5 {
			t.Errorf("draw move %d: z = %g, want 125.5", i, m.Pose.Z)
		}
		if m.Pose.Roll != 180 || m.Speed != 200 {
			t.Errorf("draw move %d: orientation/speed %v", i, m)
		}
	}
}

func TestRun(t *testing.T) {
	arm := &fakeArm{}
	e := NewExecutor(arm, testSettings(), WithJob("job-1"))
	strokes := [][]vec.Vec2{
		{{X: 200, Y: 0}, {X: 210, Y: 0}},
		{},
		{{X: 220, Y: 5}, {X: 230, Y: 5}, {X: 230, Y: 15}},
	}
	if err := e.Run(strokes); err != nil {
		t.Fatal(err)
	}
	if len(arm.moves) != 4+5 {
		t.Errorf("got %d moves, want 9", len(arm.moves))
	}
	if e.Job() != "job-1" {
		t.Errorf("job = %q", e.Job())
	}
	if st := e.Stats(); st.Moves != 9 || st.Direct != 9 {
		t.Errorf("stats = %+v", st)
	}
}

func TestCalibrateCorners(t *testing.T) {
	arm := &fakeArm{}
	e := NewExecutor(arm, testSettings())
	if err := e.CalibrateCorners(160, 375, -190, 190); err != nil {
		t.Fatal(err)
	}
	if len(arm.moves) != 12 {
		t.Fatalf("got %d moves, want 12", len(arm.moves))
	}
	for i, m := range arm.moves {
		wantPen := Up
		if i%3 == 1 {
			wantPen = Down
		}
		if m.Pen != wantPen {
			t.Errorf("move %d: pen %s, want %s", i, m.Pen, wantPen)
		}
	}
	if p := arm.moves[6].Pose; p.X != 375 || p.Y != -190 {
		t.Errorf("third corner = %v", p)
	}
}

type recorder []*Event

func (r *recorder) Record(ev *Event) error {
	*r = append(*r, ev)
	return nil
}

func TestRecorder(t *testing.T) {
	arm := &fakeArm{fatalAfter: 2}
	var rec recorder
	e := NewExecutor(arm, testSettings(), WithRecorder(&rec), WithLogger(nil))
	err := e.DrawStroke([]vec.Vec2{{X: 200, Y: 0}, {X: 201, Y: 0}})
	if err == nil {
		t.Fatal("expected an error")
	}
	if len(rec) != 2 {
		t.Fatalf("recorded %d events, want 2", len(rec))
	}
	if rec[0].Err != nil || rec[0].Seq != 1 {
		t.Errorf("first event = %+v", rec[0])
	}
	if rec[1].Err == nil || rec[1].Seq != 2 || rec[1].Job != e.Job() {
		t.Errorf("second event = %+v", rec[1])
	}
}

func TestSubdivide(t *testing.T) {
	a := Pose{X: 0, Y: 0, Z: 0}
	b := Pose{X: 3, Y: 4, Z: 0, Roll: 180}
	for _, step := range []float64{0.05, 0.7, 1, 5, 100} {
		wps := subdivide(a, b, step)
		if len(wps) < 2 {
			t.Errorf("step %g: %d waypoints", step, len(wps))
		}
		if wps[len(wps)-1] != b {
			t.Errorf("step %g: ends at %v", step, wps[len(wps)-1])
		}
		prev := a
		for _, p := range wps {
			d := math.Hypot(p.X-prev.X, p.Y-prev.Y)
			if d > step+1e-9 {
				t.Errorf("step %g: segment of length %g", step, d)
			}
			if p.Roll != 180 {
				t.Errorf("step %g: orientation not taken from target", step)
			}
			prev = p
		}
	}
}

type constCorrector float64

func (c constCorrector) Offset(vec.Vec2) float64 { return float64(c) }
