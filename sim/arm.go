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

// Package sim provides a simulated robot arm.
//
// The simulated arm implements motion.Controller. It refuses moves which
// leave its workspace or pass close to configured singular points, and it
// remembers the paths drawn with the tool lowered, so that the resulting
// ink can be rendered.
package sim

import (
	"fmt"
	"log/slog"
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/armdraw/motion"
)

// Error codes reported by the simulated arm.
const (
	CodeOutOfReach = 23
	CodeInjected   = 99
	CodeNoIK       = -2
)

// Singularity is a point of the workspace near which the arm cannot
// perform straight-line moves.
type Singularity struct {
	Center vec.Vec2
	Radius float64
}

// Tip describes the tool currently mounted.
type Tip struct {
	// Width is the width of the mark left on the surface, in workspace
	// units.
	Width float64

	// Erase is set for tools which remove ink.
	Erase bool
}

// Mark is a connected path followed with the tool lowered.
type Mark struct {
	Tip    Tip
	Points []vec.Vec2
}

// Arm is a simulated arm. The zero value is not usable; use New.
type Arm struct {
	// Bounds is the reachable part of the workspace.
	Bounds rect.Rect

	// Singularities lists the singular points. Straight moves passing
	// within Radius of a Center fail with motion.ErrSingularity, and
	// inverse kinematics fails for poses inside the radius of a point in
	// NoIK.
	Singularities []Singularity
	NoIK          []Singularity

	// FailAt, if positive, makes the FailAt-th call to MoveTo fail with a
	// hardware error.
	FailAt int

	// Tip is the tool used for new marks.
	Tip Tip

	// Logger receives a debug record for every move. Nil disables logging.
	Logger *slog.Logger

	pose    motion.Pose
	pen     motion.Pen // pen state of the last commanded move
	calls   int
	history []motion.Command
	marks   []Mark
	drawing bool
}

// New returns an arm resting at home with the tool raised.
func New(bounds rect.Rect, home motion.Pose) *Arm {
	return &Arm{
		Bounds: bounds,
		Tip:    Tip{Width: 1},
		pose:   home,
	}
}

// MoveTo implements motion.Controller.
func (a *Arm) MoveTo(cmd motion.Command) error {
	a.calls++
	a.history = append(a.history, cmd)
	a.pen = cmd.Pen
	if a.FailAt > 0 && a.calls == a.FailAt {
		return &motion.HardwareError{Code: CodeInjected}
	}
	p := cmd.Pose
	if !a.reachable(p) {
		return &motion.HardwareError{Code: CodeOutOfReach}
	}
	for _, s := range a.Singularities {
		if segmentDistance(s.Center, a.pose.Point(), p.Point()) < s.Radius {
			a.debug("singular move", "from", a.pose, "to", p)
			return fmt.Errorf("move to %s: %w", p, motion.ErrSingularity)
		}
	}
	a.arrive(p, cmd.Pen)
	return nil
}

// CurrentPose implements motion.Controller.
func (a *Arm) CurrentPose() (motion.Pose, error) {
	return a.pose, nil
}

// SolveIK implements motion.Controller. The joint vector of the simulated
// arm is the pose itself.
func (a *Arm) SolveIK(p motion.Pose) (motion.Joints, error) {
	if !a.reachable(p) {
		return nil, &motion.IKError{Code: CodeOutOfReach}
	}
	for _, s := range a.NoIK {
		if p.Point().Sub(s.Center).Length() < s.Radius {
			return nil, &motion.IKError{Code: CodeNoIK}
		}
	}
	return motion.Joints{p.X, p.Y, p.Z, p.Roll, p.Pitch, p.Yaw}, nil
}

// MoveJoints implements motion.Controller. The pen state is that of the
// last call to MoveTo, including failed calls.
func (a *Arm) MoveJoints(j motion.Joints) error {
	if len(j) != 6 {
		return &motion.HardwareError{Code: CodeOutOfReach}
	}
	p := motion.Pose{X: j[0], Y: j[1], Z: j[2], Roll: j[3], Pitch: j[4], Yaw: j[5]}
	if !a.reachable(p) {
		return &motion.HardwareError{Code: CodeOutOfReach}
	}
	a.arrive(p, a.pen)
	return nil
}

func (a *Arm) reachable(p motion.Pose) bool {
	const eps = 1e-9
	return p.X >= a.Bounds.LLx-eps && p.X <= a.Bounds.URx+eps &&
		p.Y >= a.Bounds.LLy-eps && p.Y <= a.Bounds.URy+eps
}

func (a *Arm) arrive(p motion.Pose, pen motion.Pen) {
	a.debug("arrived", "pose", p, "pen", pen)
	if pen == motion.Down {
		if !a.drawing {
			a.marks = append(a.marks, Mark{Tip: a.Tip, Points: []vec.Vec2{a.pose.Point()}})
			a.drawing = true
		}
		m := &a.marks[len(a.marks)-1]
		m.Points = append(m.Points, p.Point())
	} else {
		a.drawing = false
	}
	a.pose = p
	a.pen = pen
}

func (a *Arm) debug(msg string, args ...any) {
	if a.Logger != nil {
		a.Logger.Debug(msg, args...)
	}
}

// Pose returns the current pose.
func (a *Arm) Pose() motion.Pose {
	return a.pose
}

// History returns all commands received by MoveTo, including failed ones.
func (a *Arm) History() []motion.Command {
	return a.history
}

// Marks returns the paths followed with the tool lowered.
func (a *Arm) Marks() []Mark {
	return a.marks
}

// ResetMarks forgets all marks, as if the drawing surface was replaced.
func (a *Arm) ResetMarks() {
	a.marks = nil
	a.drawing = false
}

// segmentDistance returns the distance of p from the segment a–b.
func segmentDistance(p, a, b vec.Vec2) float64 {
	d := b.Sub(a)
	l2 := d.Dot(d)
	if l2 == 0 {
		return p.Sub(a).Length()
	}
	t := math.Max(0, math.Min(1, p.Sub(a).Dot(d)/l2))
	return p.Sub(a.Add(d.Mul(t))).Length()
}
