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

// Package motion issues pen moves to a robot arm.
//
// The Executor turns workspace strokes into a sequence of pose commands,
// sends them one at a time to a Controller and recovers from kinematic
// singularities by subdividing the failed move and, where necessary, by
// falling back to joint-space moves.
package motion

import (
	"fmt"

	"seehuhn.de/go/geom/vec"
)

// Pose is a Cartesian tool pose. Positions are in millimetres, angles in
// degrees.
type Pose struct {
	X, Y, Z          float64
	Roll, Pitch, Yaw float64
}

// Point returns the horizontal position of the pose.
func (p Pose) Point() vec.Vec2 {
	return vec.Vec2{X: p.X, Y: p.Y}
}

func (p Pose) String() string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f | %g, %g, %g)",
		p.X, p.Y, p.Z, p.Roll, p.Pitch, p.Yaw)
}

// Pen is the state of the tool relative to the drawing surface.
type Pen uint8

// These are the supported pen states.
const (
	Up Pen = iota
	Down
)

func (p Pen) String() string {
	switch p {
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return fmt.Sprintf("Pen(%d)", uint8(p))
	}
}

// Command is a single move of the arm.
type Command struct {
	Pose  Pose
	Pen   Pen
	Speed float64
}

// Joints holds one angle per joint, in degrees.
type Joints []float64

// Controller is the control interface of an arm.
//
// MoveTo blocks until the move has finished. It returns nil on success,
// an error wrapping ErrSingularity if the target cannot be reached along a
// straight line, and any other error if the arm has stopped.
type Controller interface {
	MoveTo(cmd Command) error
	CurrentPose() (Pose, error)
	SolveIK(p Pose) (Joints, error)
	MoveJoints(j Joints) error
}

// Tool gives the heights at which a tool touches and clears the drawing
// surface.
type Tool struct {
	Name    string
	Lowered float64
	Raised  float64
}

// Tool profiles of the reference set-up.
var (
	Marker  = Tool{Name: "marker", Lowered: 126, Raised: 131}
	Eraser  = Tool{Name: "eraser", Lowered: 68, Raised: 80}
	Neutral = Tool{Name: "neutral", Lowered: 158, Raised: 170}
)

// Corrector gives the height correction for a lowered tool.
// *workspace.Grid implements this interface.
type Corrector interface {
	Offset(p vec.Vec2) float64
}

// DefaultMaxStep is the default length of subdivided moves, in
// millimetres.
const DefaultMaxStep = 0.05

// Settings describe how strokes are turned into commands.
type Settings struct {
	Tool Tool

	// Roll, Pitch and Yaw give the tool orientation used for all moves.
	Roll, Pitch, Yaw float64

	// Speed is passed through to the controller.
	Speed float64

	// MaxStep is the maximal length of a waypoint move after a
	// singularity. Values <= 0 select DefaultMaxStep.
	MaxStep float64

	// Corrector, if non-nil, adjusts the height of all pen-down moves.
	Corrector Corrector
}

// DefaultSettings returns the settings of the reference set-up, drawing
// with the marker.
func DefaultSettings() Settings {
	return Settings{
		Tool:    Marker,
		Roll:    180,
		Speed:   200,
		MaxStep: DefaultMaxStep,
	}
}

// Pose returns the pose for the tool at p with the given pen state.
// Only pen-down poses are height corrected.
func (s *Settings) Pose(p vec.Vec2, pen Pen) Pose {
	z := s.Tool.Raised
	if pen == Down {
		z = s.Tool.Lowered
		if s.Corrector != nil {
			z += s.Corrector.Offset(p)
		}
	}
	return Pose{X: p.X, Y: p.Y, Z: z, Roll: s.Roll, Pitch: s.Pitch, Yaw: s.Yaw}
}

// Command returns the command which moves the tool to p.
func (s *Settings) Command(p vec.Vec2, pen Pen) Command {
	return Command{Pose: s.Pose(p, pen), Pen: pen, Speed: s.Speed}
}
