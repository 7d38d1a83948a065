// Package record persists completed simulation actions. Store writes a
// sqlite action log with batched inserts; Memory keeps actions in a
// slice for tests and in-process summaries.
package record

import (
	"database/sql"
	"fmt"
	"os"

	// sqlite driver, used through database/sql.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"

	sim "github.com/windlass-sim/windlass-sim/sim"
)

const createActionsTable = `CREATE TABLE actions (
	agent TEXT,
	action TEXT,
	kind TEXT,
	location TEXT,
	start_hours REAL,
	duration_hours REAL,
	delay_hours REAL
);`

const insertAction = `INSERT INTO actions VALUES (?, ?, ?, ?, ?, ?, ?)`

// batchSize is how many actions buffer before an automatic flush.
const batchSize = 1024

// Store is a sqlite-backed action log. Rows buffer in memory and flush
// when the batch fills, on Close, and at process exit. The first write
// error sticks and surfaces from Flush or Close.
type Store struct {
	db    *sql.DB
	path  string
	buf   []sim.Action
	batch int
	err   error
}

var _ sim.ActionRecorder = (*Store)(nil)

// NewStore opens a fresh action log at path. An empty path picks a
// windlass_actions_<id>.sqlite3 name that will not collide across runs.
// An existing file is refused rather than overwritten.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = "windlass_actions_" + xid.New().String() + ".sqlite3"
	}
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("action log %s already exists", path)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open action log %s: %w", path, err)
	}
	if _, err := db.Exec(createActionsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create actions table: %w", err)
	}
	s := &Store{db: db, path: path, batch: batchSize}
	atexit.Register(func() { _ = s.Flush() })
	return s, nil
}

// Path returns the database file backing the store.
func (s *Store) Path() string { return s.path }

// Record buffers one action, flushing when the batch fills.
func (s *Store) Record(a sim.Action) {
	s.buf = append(s.buf, a)
	if len(s.buf) >= s.batch {
		s.flush()
	}
}

// Flush writes buffered actions through to sqlite.
func (s *Store) Flush() error {
	s.flush()
	return s.err
}

// Close flushes and closes the database.
func (s *Store) Close() error {
	s.flush()
	cerr := s.db.Close()
	if s.err != nil {
		return s.err
	}
	return cerr
}

func (s *Store) flush() {
	if s.err != nil || len(s.buf) == 0 {
		return
	}
	tx, err := s.db.Begin()
	if err != nil {
		s.err = fmt.Errorf("begin action log batch: %w", err)
		return
	}
	stmt, err := tx.Prepare(insertAction)
	if err != nil {
		tx.Rollback()
		s.err = fmt.Errorf("prepare action insert: %w", err)
		return
	}
	for _, a := range s.buf {
		if _, err := stmt.Exec(a.Agent, a.Name, string(a.Kind), a.Location, a.Start, a.Duration, a.Delay); err != nil {
			stmt.Close()
			tx.Rollback()
			s.err = fmt.Errorf("insert action: %w", err)
			return
		}
	}
	stmt.Close()
	if err := tx.Commit(); err != nil {
		s.err = fmt.Errorf("commit action log batch: %w", err)
		return
	}
	s.buf = s.buf[:0]
}

// ReadActions loads every action from a log written by Store, in
// insertion order.
func ReadActions(path string) ([]sim.Action, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open action log %s: %w", path, err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT agent, action, kind, location, start_hours, duration_hours, delay_hours
		FROM actions ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query actions: %w", err)
	}
	defer rows.Close()

	var actions []sim.Action
	for rows.Next() {
		var a sim.Action
		var kind string
		if err := rows.Scan(&a.Agent, &a.Name, &kind, &a.Location, &a.Start, &a.Duration, &a.Delay); err != nil {
			return nil, fmt.Errorf("scan action: %w", err)
		}
		a.Kind = sim.OperationKind(kind)
		actions = append(actions, a)
	}
	return actions, rows.Err()
}
