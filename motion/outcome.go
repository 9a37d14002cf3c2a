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

import "fmt"

// Outcome describes how a move reached its target.
type Outcome uint8

const (
	// Direct means the controller accepted the move as issued.
	Direct Outcome = iota

	// Subdivided means the move hit a singularity and was completed by a
	// sequence of shorter Cartesian moves.
	Subdivided

	// JointSpace means at least one of the shorter moves had to be issued
	// in joint space.
	JointSpace
)

func (o Outcome) String() string {
	switch o {
	case Direct:
		return "direct"
	case Subdivided:
		return "subdivided"
	case JointSpace:
		return "joint-space"
	default:
		return fmt.Sprintf("Outcome(%d)", uint8(o))
	}
}

// Stats counts the moves made by an Executor.
type Stats struct {
	// Moves is the number of requested moves, split by outcome into
	// Direct, Subdivided and JointSpace.
	Moves      int
	Direct     int
	Subdivided int
	JointSpace int

	// Waypoints is the number of moves issued during singularity recovery.
	Waypoints int
}

func (s *Stats) add(o Outcome) {
	s.Moves++
	switch o {
	case Direct:
		s.Direct++
	case Subdivided:
		s.Subdivided++
	case JointSpace:
		s.JointSpace++
	}
}
