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
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"seehuhn.de/go/geom/vec"
)

var nopLogger = slog.New(slog.DiscardHandler)

// Event describes one requested move and its result.
type Event struct {
	Job      string
	Seq      int
	Time     time.Time
	Command  Command
	Outcome  Outcome
	Achieved Pose
	Err      error // nil on success
}

// Recorder receives an Event for every requested move.
type Recorder interface {
	Record(ev *Event) error
}

// Option configures an Executor.
type Option func(*Executor)

// WithLogger sets the logger. A nil logger discards all output.
func WithLogger(l *slog.Logger) Option {
	return func(e *Executor) {
		if l == nil {
			l = nopLogger
		}
		e.log = l
	}
}

// WithRecorder registers a recorder for all moves.
func WithRecorder(r Recorder) Option {
	return func(e *Executor) {
		e.rec = r
	}
}

// WithJob sets the job identifier used in logs and events.
func WithJob(id string) Option {
	return func(e *Executor) {
		e.job = id
	}
}

// Executor sends moves to an arm. It is the only writer of commands to
// its Controller for the duration of a job and must not be used
// concurrently.
type Executor struct {
	ctl      Controller
	settings Settings
	log      *slog.Logger
	rec      Recorder
	job      string

	seq      int
	last     Pose
	haveLast bool
	stats    Stats
}

// NewExecutor returns an executor for ctl. Unless WithJob is given, a new
// job identifier is generated.
func NewExecutor(ctl Controller, s Settings, opts ...Option) *Executor {
	if s.MaxStep <= 0 {
		s.MaxStep = DefaultMaxStep
	}
	e := &Executor{
		ctl:      ctl,
		settings: s,
		log:      nopLogger,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.job == "" {
		e.job = uuid.Must(uuid.NewV7()).String()
	}
	e.log = e.log.With("job", e.job)
	return e
}

// Job returns the job identifier.
func (e *Executor) Job() string {
	return e.job
}

// Settings returns the settings used by the executor.
func (e *Executor) Settings() Settings {
	return e.settings
}

// Stats returns the move counts so far.
func (e *Executor) Stats() Stats {
	return e.stats
}

// LastPose returns the last pose the arm is known to have reached.
// The second return value is false before the first move.
func (e *Executor) LastPose() (Pose, bool) {
	return e.last, e.haveLast
}

// Move sends a single command to the arm. Singularities are recovered
// from. Any other failure is returned as a *FatalError.
func (e *Executor) Move(cmd Command) (Outcome, error) {
	e.seq++
	e.log.Debug("move", "seq", e.seq, "target", cmd.Pose, "pen", cmd.Pen)

	outcome, err := e.move(cmd)
	if err == nil {
		e.stats.add(outcome)
		e.log.Debug("reached", "seq", e.seq, "pose", e.last, "outcome", outcome)
	} else {
		e.log.Error("move failed", "seq", e.seq, "target", cmd.Pose,
			"last", e.last, "outcome", outcome, "err", err)
	}

	if e.rec != nil {
		ev := &Event{
			Job:      e.job,
			Seq:      e.seq,
			Time:     time.Now(),
			Command:  cmd,
			Outcome:  outcome,
			Achieved: e.last,
			Err:      err,
		}
		if rerr := e.rec.Record(ev); rerr != nil {
			e.log.Warn("cannot record move", "seq", e.seq, "err", rerr)
		}
	}
	return outcome, err
}

func (e *Executor) move(cmd Command) (Outcome, error) {
	if !e.haveLast {
		p, err := e.ctl.CurrentPose()
		if err != nil {
			return Direct, e.fatal(cmd, cmd, Direct, err)
		}
		e.reached(p)
	}

	err := e.ctl.MoveTo(cmd)
	if err == nil {
		e.reached(cmd.Pose)
		return Direct, nil
	}
	if !errors.Is(err, ErrSingularity) {
		return Direct, e.fatal(cmd, cmd, Direct, err)
	}
	return e.recoverSingularity(cmd)
}

// recoverSingularity completes a move which failed with a singularity.
// The straight line from the current pose to the target is split into
// short moves, and waypoints which still cannot be reached are solved in
// joint space.
func (e *Executor) recoverSingularity(cmd Command) (Outcome, error) {
	start, err := e.ctl.CurrentPose()
	if err != nil {
		return Subdivided, e.fatal(cmd, cmd, Subdivided, err)
	}
	e.reached(start)

	waypoints := subdivide(start, cmd.Pose, e.settings.MaxStep)
	e.log.Warn("singularity, subdividing move",
		"from", start, "to", cmd.Pose, "waypoints", len(waypoints))

	outcome := Subdivided
	for _, p := range waypoints {
		wp := Command{Pose: p, Pen: cmd.Pen, Speed: cmd.Speed}
		e.stats.Waypoints++

		err := e.ctl.MoveTo(wp)
		if err == nil {
			e.reached(p)
			continue
		}
		if !errors.Is(err, ErrSingularity) {
			return outcome, e.fatal(cmd, wp, outcome, err)
		}

		outcome = JointSpace
		joints, err := e.ctl.SolveIK(p)
		if err != nil {
			return outcome, e.fatal(cmd, wp, outcome, err)
		}
		e.log.Warn("joint-space move", "pose", p, "joints", joints)
		if err := e.ctl.MoveJoints(joints); err != nil {
			return outcome, e.fatal(cmd, wp, outcome, err)
		}
		e.reached(p)
	}
	return outcome, nil
}

func (e *Executor) reached(p Pose) {
	e.last = p
	e.haveLast = true
}

func (e *Executor) fatal(cmd, wp Command, o Outcome, err error) error {
	return &FatalError{
		Command:  cmd,
		Waypoint: wp,
		LastPose: e.last,
		Outcome:  o,
		Err:      err,
	}
}

// subdivide splits the straight line from a to b into n >= 2 moves of
// length at most step. The orientation of b is used for all waypoints and
// the last waypoint equals b.
func subdivide(a, b Pose, step float64) []Pose {
	dx, dy, dz := b.X-a.X, b.Y-a.Y, b.Z-a.Z
	dist := math.Sqrt(dx*dx + dy*dy + dz*dz)
	n := max(2, int(math.Ceil(dist/step)))

	res := make([]Pose, n)
	for i := 1; i < n; i++ {
		t := float64(i) / float64(n)
		p := b
		p.X = a.X + t*dx
		p.Y = a.Y + t*dy
		p.Z = a.Z + t*dz
		res[i-1] = p
	}
	res[n-1] = b
	return res
}

// DrawStroke draws the polyline pts: a pen-up move to the first point, a
// pen-down move to every point and a pen-up move at the last point.
// Empty strokes are ignored.
func (e *Executor) DrawStroke(pts []vec.Vec2) error {
	if len(pts) == 0 {
		return nil
	}
	if _, err := e.Move(e.settings.Command(pts[0], Up)); err != nil {
		return err
	}
	for _, p := range pts {
		if _, err := e.Move(e.settings.Command(p, Down)); err != nil {
			return err
		}
	}
	_, err := e.Move(e.settings.Command(pts[len(pts)-1], Up))
	return err
}

// Run draws all strokes in order. It stops at the first fatal error.
func (e *Executor) Run(strokes [][]vec.Vec2) error {
	e.log.Info("job started", "strokes", len(strokes), "tool", e.settings.Tool.Name)
	for i, s := range strokes {
		e.log.Info("stroke", "index", i, "points", len(s))
		if err := e.DrawStroke(s); err != nil {
			return err
		}
	}
	e.log.Info("job finished",
		"moves", e.stats.Moves,
		"subdivided", e.stats.Subdivided,
		"jointSpace", e.stats.JointSpace)
	return nil
}

// Sweep moves the tool along pts without lifting it between points, as
// is done by the eraser. The tool is lowered at the first point and
// raised at the last one.
func (e *Executor) Sweep(pts []vec.Vec2) error {
	e.log.Info("sweep", "points", len(pts), "tool", e.settings.Tool.Name)
	return e.DrawStroke(pts)
}

// MoveHome moves the raised tool to p.
func (e *Executor) MoveHome(p vec.Vec2) error {
	_, err := e.Move(e.settings.Command(p, Up))
	return err
}

// CalibrateCorners touches the surface once at each corner of the given
// rectangle, in the order (minX, maxY), (minX, minY), (maxX, minY),
// (maxX, maxY). This is used to check the tool heights by hand.
func (e *Executor) CalibrateCorners(minX, maxX, minY, maxY float64) error {
	corners := []vec.Vec2{
		{X: minX, Y: maxY},
		{X: minX, Y: minY},
		{X: maxX, Y: minY},
		{X: maxX, Y: maxY},
	}
	for _, c := range corners {
		for _, pen := range []Pen{Up, Down, Up} {
			if _, err := e.Move(e.settings.Command(c, pen)); err != nil {
				return err
			}
		}
	}
	return nil
}
