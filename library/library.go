// SPDX-License-Identifier: MIT

package library

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/katalvlaran/jdec/automaton"
	"github.com/katalvlaran/jdec/jsoncodec"
)

var (
	// ErrNotFound is returned when no entry matches a name or ID.
	ErrNotFound = errors.New("library: entry not found")

	// ErrInvalidName is returned for empty or padded entry names.
	ErrInvalidName = errors.New("library: invalid entry name")
)

const schema = `
CREATE TABLE IF NOT EXISTS automata (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL UNIQUE,
	type          INTEGER NOT NULL,
	n_states      INTEGER NOT NULL,
	n_events      INTEGER NOT NULL,
	n_controllers INTEGER NOT NULL,
	document      TEXT NOT NULL,
	created_at    TEXT NOT NULL,
	updated_at    TEXT NOT NULL
);
`

// Entry summarizes one stored automaton.
type Entry struct {
	ID           uuid.UUID
	Name         string
	Type         automaton.Type
	NStates      int64
	NEvents      int
	NControllers int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store logger. nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Store is a SQLite-backed automaton catalog.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

// Open opens (creating if needed) the catalog database at path.
func Open(path string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("library: create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("library: open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("library: pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("library: migrate: %w", err)
	}

	s := &Store{db: db, logger: slog.Default(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

func validName(name string) error {
	if name == "" || strings.TrimSpace(name) != name {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	return nil
}

// Put stores m under name, replacing any previous entry with that name. A
// replaced entry keeps its ID and creation time.
func (s *Store) Put(ctx context.Context, name string, m automaton.Model) (Entry, error) {
	if err := validName(name); err != nil {
		return Entry{}, err
	}
	if m == nil {
		return Entry{}, fmt.Errorf("library: put %q: nil model", name)
	}
	var buf bytes.Buffer
	if err := jsoncodec.Encode(&buf, m); err != nil {
		return Entry{}, fmt.Errorf("library: put %q: %w", name, err)
	}

	a := m.Base()
	now := s.now().UTC()
	e := Entry{
		ID:           uuid.New(),
		Name:         name,
		Type:         m.Type(),
		NStates:      a.NumberOfStates(),
		NEvents:      a.NumberOfEvents(),
		NControllers: a.NumberOfControllers(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var id, created string
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO automata (id, name, type, n_states, n_events, n_controllers, document, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			type = excluded.type,
			n_states = excluded.n_states,
			n_events = excluded.n_events,
			n_controllers = excluded.n_controllers,
			document = excluded.document,
			updated_at = excluded.updated_at
		 RETURNING id, created_at`,
		e.ID.String(), name, int(e.Type), e.NStates, e.NEvents, e.NControllers,
		buf.String(), now.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano),
	).Scan(&id, &created)
	if err != nil {
		return Entry{}, fmt.Errorf("library: put %q: %w", name, err)
	}
	if e.ID, err = uuid.Parse(id); err != nil {
		return Entry{}, fmt.Errorf("library: put %q: stored id: %w", name, err)
	}
	if e.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return Entry{}, fmt.Errorf("library: put %q: stored time: %w", name, err)
	}
	s.logger.Debug("library entry stored", "name", name, "id", e.ID, "type", e.Type.String())

	return e, nil
}

const entryColumns = `id, name, type, n_states, n_events, n_controllers, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner, extra ...any) (Entry, error) {
	var (
		e                Entry
		id, created, upd string
		typ              int
	)
	dest := append([]any{&id, &e.Name, &typ, &e.NStates, &e.NEvents, &e.NControllers, &created, &upd}, extra...)
	if err := row.Scan(dest...); err != nil {
		return Entry{}, err
	}
	var err error
	if e.ID, err = uuid.Parse(id); err != nil {
		return Entry{}, fmt.Errorf("library: stored id %q: %w", id, err)
	}
	e.Type = automaton.Type(typ)
	if e.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return Entry{}, fmt.Errorf("library: stored time %q: %w", created, err)
	}
	if e.UpdatedAt, err = time.Parse(time.RFC3339Nano, upd); err != nil {
		return Entry{}, fmt.Errorf("library: stored time %q: %w", upd, err)
	}

	return e, nil
}

// Get loads the automaton stored under name.
func (s *Store) Get(ctx context.Context, name string, opts ...automaton.Option) (automaton.Model, Entry, error) {
	return s.get(ctx, "name = ?", name, opts)
}

// GetByID loads the automaton with the given entry ID.
func (s *Store) GetByID(ctx context.Context, id uuid.UUID, opts ...automaton.Option) (automaton.Model, Entry, error) {
	return s.get(ctx, "id = ?", id.String(), opts)
}

func (s *Store) get(ctx context.Context, where, key string, opts []automaton.Option) (automaton.Model, Entry, error) {
	var doc string
	row := s.db.QueryRowContext(ctx, `SELECT `+entryColumns+`, document FROM automata WHERE `+where, key)
	e, err := scanEntry(row, &doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, Entry{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, Entry{}, fmt.Errorf("library: get %s: %w", key, err)
	}
	m, err := jsoncodec.Decode(strings.NewReader(doc), opts...)
	if err != nil {
		return nil, Entry{}, fmt.Errorf("library: get %s: %w", key, err)
	}

	return m, e, nil
}

// List returns every entry ordered by name.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+entryColumns+` FROM automata ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("library: list: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("library: list: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("library: list: %w", err)
	}

	return out, nil
}

// Delete removes the entry stored under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM automata WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("library: delete %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("library: delete %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	s.logger.Debug("library entry deleted", "name", name)

	return nil
}
