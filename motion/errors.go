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
	"fmt"
)

// ErrSingularity is reported by a Controller for a target pose which
// cannot be reached by a straight-line move.
var ErrSingularity = errors.New("kinematic singularity")

// HardwareError is an error code reported by the arm.
type HardwareError struct {
	Code int
}

func (e *HardwareError) Error() string {
	return fmt.Sprintf("arm error %d", e.Code)
}

// IKError is reported when inverse kinematics finds no joint solution.
type IKError struct {
	Code int
}

func (e *IKError) Error() string {
	return fmt.Sprintf("inverse kinematics failed with code %d", e.Code)
}

// FatalError stops a job. It records where the arm was left, so that the
// caller can decide how to continue.
type FatalError struct {
	// Command is the move which was requested.
	Command Command

	// Waypoint is the move which failed. For a failure during singularity
	// recovery this is one of the subdivided moves, otherwise it equals
	// Command.
	Waypoint Command

	// LastPose is the last pose the arm is known to have reached.
	LastPose Pose

	// Outcome is the recovery stage in which the move failed.
	Outcome Outcome

	Err error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("move to %s (pen %s) failed during %s move at %s: %v",
		e.Command.Pose, e.Command.Pen, e.Outcome, e.LastPose, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}
