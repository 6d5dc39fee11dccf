package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tempo/internal/modules/session/domain"
	sessionout "tempo/internal/modules/session/port/out"
	apperrors "tempo/internal/platform/errors"

	_ "modernc.org/sqlite"
)

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// SQLiteStore keeps the three collections in one database: a sessions
// table, a single-row active slot, and a single-row counter.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (sessionout.Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  id TEXT PRIMARY KEY,
  number INTEGER NOT NULL,
  started_at TEXT NOT NULL,
  ended_at TEXT,
  experience TEXT NOT NULL DEFAULT '',
  tag TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS active_slot (
  slot INTEGER PRIMARY KEY CHECK (slot = 1),
  session_id TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS meta (
  slot INTEGER PRIMARY KEY CHECK (slot = 1),
  last_number INTEGER NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d;", domain.SchemaVersion)); err != nil {
		return fmt.Errorf("stamp schema version: %w", err)
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]domain.Session, error) {
	const query = `
SELECT id, number, started_at, ended_at, experience, tag
FROM sessions
ORDER BY started_at DESC, number DESC;
`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (domain.Session, error) {
	const query = `
SELECT id, number, started_at, ended_at, experience, tag
FROM sessions
WHERE id = ?;
`
	row := s.db.QueryRowContext(ctx, query, id)
	session, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Session{}, apperrors.ErrNotFound
	}
	return session, err
}

func (s *SQLiteStore) Put(ctx context.Context, session domain.Session) error {
	const stmt = `
INSERT INTO sessions (id, number, started_at, ended_at, experience, tag)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  number=excluded.number,
  started_at=excluded.started_at,
  ended_at=excluded.ended_at,
  experience=excluded.experience,
  tag=excluded.tag;
`
	var endedAt any
	if !session.EndedAt.IsZero() {
		endedAt = session.EndedAt.Format(timeLayout)
	}
	_, err := s.db.ExecContext(ctx, stmt,
		session.ID,
		session.Number,
		session.StartedAt.Format(timeLayout),
		endedAt,
		session.Experience,
		session.Tag,
	)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete session: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete session: %w", err)
	}
	return affected > 0, nil
}

func (s *SQLiteStore) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("reset sessions: %w", err)
	}
	return nil
}

func (s *SQLiteStore) SaveActive(ctx context.Context, session domain.Session) error {
	const stmt = `
INSERT INTO active_slot (slot, session_id) VALUES (1, ?)
ON CONFLICT(slot) DO UPDATE SET session_id=excluded.session_id;
`
	if _, err := s.db.ExecContext(ctx, stmt, session.ID); err != nil {
		return fmt.Errorf("save active slot: %w", err)
	}
	return nil
}

func (s *SQLiteStore) LoadActive(ctx context.Context) (domain.Session, error) {
	var sessionID string
	err := s.db.QueryRowContext(ctx, `SELECT session_id FROM active_slot WHERE slot = 1`).Scan(&sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Session{}, apperrors.ErrNoActiveSession
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("load active slot: %w", err)
	}
	session, err := s.Get(ctx, sessionID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return domain.Session{ID: sessionID}, nil
	}
	return session, err
}

func (s *SQLiteStore) ClearActive(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM active_slot`); err != nil {
		return fmt.Errorf("clear active slot: %w", err)
	}
	return nil
}

func (s *SQLiteStore) LoadMeta(ctx context.Context) (domain.Meta, error) {
	var meta domain.Meta
	err := s.db.QueryRowContext(ctx, `SELECT last_number FROM meta WHERE slot = 1`).Scan(&meta.LastNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Meta{}, nil
	}
	if err != nil {
		return domain.Meta{}, fmt.Errorf("load meta: %w", err)
	}
	return meta, nil
}

func (s *SQLiteStore) SaveMeta(ctx context.Context, meta domain.Meta) error {
	const stmt = `
INSERT INTO meta (slot, last_number) VALUES (1, ?)
ON CONFLICT(slot) DO UPDATE SET last_number=excluded.last_number;
`
	if _, err := s.db.ExecContext(ctx, stmt, meta.LastNumber); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ResetMeta(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM meta`); err != nil {
		return fmt.Errorf("reset meta: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (domain.Session, error) {
	var (
		session domain.Session
		started string
		ended   sql.NullString
	)
	if err := row.Scan(&session.ID, &session.Number, &started, &ended, &session.Experience, &session.Tag); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Session{}, err
		}
		return domain.Session{}, fmt.Errorf("scan session: %w", err)
	}
	startedAt, err := time.Parse(timeLayout, started)
	if err != nil {
		return domain.Session{}, fmt.Errorf("parse started_at: %w", err)
	}
	session.StartedAt = startedAt
	if ended.Valid {
		endedAt, err := time.Parse(timeLayout, ended.String)
		if err != nil {
			return domain.Session{}, fmt.Errorf("parse ended_at: %w", err)
		}
		session.EndedAt = endedAt
	}
	return session, nil
}
