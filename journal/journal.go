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

// Package journal stores a log of all moves sent to an arm in an SQLite
// database.
package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"seehuhn.de/go/armdraw/motion"
)

// Schema creates the journal tables. It is applied by Init.
const Schema = `
CREATE TABLE IF NOT EXISTS jobs (
	id TEXT PRIMARY KEY,
	kind TEXT NOT NULL,
	tool TEXT NOT NULL,
	started INTEGER NOT NULL,
	finished INTEGER,
	error TEXT
);
CREATE TABLE IF NOT EXISTS moves (
	job_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	timestamp INTEGER NOT NULL,
	pen TEXT NOT NULL,
	x REAL NOT NULL, y REAL NOT NULL, z REAL NOT NULL,
	roll REAL NOT NULL, pitch REAL NOT NULL, yaw REAL NOT NULL,
	outcome TEXT NOT NULL,
	ax REAL NOT NULL, ay REAL NOT NULL, az REAL NOT NULL,
	error TEXT,
	PRIMARY KEY (job_id, seq)
);
CREATE INDEX IF NOT EXISTS idx_moves_failed ON moves(job_id) WHERE error IS NOT NULL;
`

// Journal records jobs and moves. It implements motion.Recorder.
type Journal struct {
	db *sql.DB
}

// New returns a journal backed by db. Call Init before first use on a
// fresh database.
func New(db *sql.DB) *Journal {
	return &Journal{db: db}
}

// Open opens or creates the SQLite database at dsn and applies the
// schema. Use ":memory:" for a temporary journal.
func Open(dsn string) (*Journal, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// an in-memory database exists once per connection
	db.SetMaxOpenConns(1)
	j := New(db)
	if err := j.Init(); err != nil {
		db.Close()
		return nil, err
	}
	return j, nil
}

// Init creates the tables if they don't exist.
func (j *Journal) Init() error {
	_, err := j.db.Exec(Schema)
	return err
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Job describes one run of the arm.
type Job struct {
	ID       string
	Kind     string // "draw" or "erase"
	Tool     string
	Started  time.Time
	Finished time.Time // zero while running
	Error    string
}

// StartJob records the start of a job.
func (j *Journal) StartJob(id, kind, tool string) error {
	_, err := j.db.Exec(`INSERT INTO jobs (id, kind, tool, started) VALUES (?, ?, ?, ?)`,
		id, kind, tool, time.Now().UnixMicro())
	if err != nil {
		return fmt.Errorf("journal: start job %s: %w", id, err)
	}
	return nil
}

// FinishJob records the end of a job. jobErr is the error which stopped
// the job, or nil.
func (j *Journal) FinishJob(id string, jobErr error) error {
	var msg sql.NullString
	if jobErr != nil {
		msg = sql.NullString{String: jobErr.Error(), Valid: true}
	}
	res, err := j.db.Exec(`UPDATE jobs SET finished = ?, error = ? WHERE id = ?`,
		time.Now().UnixMicro(), msg, id)
	if err != nil {
		return fmt.Errorf("journal: finish job %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("journal: unknown job %s", id)
	}
	return nil
}

// GetJob returns the job with the given id.
func (j *Journal) GetJob(id string) (*Job, error) {
	var (
		job      = &Job{ID: id}
		started  int64
		finished sql.NullInt64
		msg      sql.NullString
	)
	err := j.db.QueryRow(`SELECT kind, tool, started, finished, error FROM jobs WHERE id = ?`, id).
		Scan(&job.Kind, &job.Tool, &started, &finished, &msg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("journal: unknown job %s", id)
	} else if err != nil {
		return nil, err
	}
	job.Started = time.UnixMicro(started)
	if finished.Valid {
		job.Finished = time.UnixMicro(finished.Int64)
	}
	job.Error = msg.String
	return job, nil
}

// Record stores a move event.
func (j *Journal) Record(ev *motion.Event) error {
	var msg sql.NullString
	if ev.Err != nil {
		msg = sql.NullString{String: ev.Err.Error(), Valid: true}
	}
	p, a := ev.Command.Pose, ev.Achieved
	_, err := j.db.Exec(`INSERT INTO moves
		(job_id, seq, timestamp, pen, x, y, z, roll, pitch, yaw, outcome, ax, ay, az, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.Job, ev.Seq, ev.Time.UnixMicro(), ev.Command.Pen.String(),
		p.X, p.Y, p.Z, p.Roll, p.Pitch, p.Yaw,
		ev.Outcome.String(), a.X, a.Y, a.Z, msg)
	return err
}

// Move is a stored move event.
type Move struct {
	Seq      int
	Time     time.Time
	Pen      string
	Target   motion.Pose
	Outcome  string
	Achieved [3]float64 // x, y, z
	Error    string
}

// Moves returns the moves of a job, in order.
func (j *Journal) Moves(jobID string) ([]Move, error) {
	rows, err := j.db.Query(`SELECT seq, timestamp, pen, x, y, z, roll, pitch, yaw,
		outcome, ax, ay, az, error FROM moves WHERE job_id = ? ORDER BY seq`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Move
	for rows.Next() {
		var (
			m   Move
			ts  int64
			msg sql.NullString
		)
		t := &m.Target
		err := rows.Scan(&m.Seq, &ts, &m.Pen, &t.X, &t.Y, &t.Z, &t.Roll, &t.Pitch, &t.Yaw,
			&m.Outcome, &m.Achieved[0], &m.Achieved[1], &m.Achieved[2], &msg)
		if err != nil {
			return nil, err
		}
		m.Time = time.UnixMicro(ts)
		m.Error = msg.String
		res = append(res, m)
	}
	return res, rows.Err()
}

// Summary counts the moves of a job by outcome. Failed moves are counted
// under "failed".
func (j *Journal) Summary(jobID string) (map[string]int, error) {
	rows, err := j.db.Query(`SELECT CASE WHEN error IS NULL THEN outcome ELSE 'failed' END AS o,
		COUNT(*) FROM moves WHERE job_id = ? GROUP BY o`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make(map[string]int)
	for rows.Next() {
		var (
			o string
			n int
		)
		if err := rows.Scan(&o, &n); err != nil {
			return nil, err
		}
		res[o] = n
	}
	return res, rows.Err()
}
