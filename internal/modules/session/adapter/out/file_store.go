package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"tempo/internal/modules/session/domain"
	sessionout "tempo/internal/modules/session/port/out"
	apperrors "tempo/internal/platform/errors"
)

// FileStore keeps the three collections as JSON documents in the data dir:
// sessions.json, active-session.json, and meta.json. Every write goes
// through a temp file and rename so a failed write never leaves a
// half-updated collection behind.
type FileStore struct {
	sessionsPath string
	activePath   string
	metaPath     string
}

func NewFileStore(dataDir string) sessionout.Store {
	return &FileStore{
		sessionsPath: filepath.Join(dataDir, "sessions.json"),
		activePath:   filepath.Join(dataDir, "active-session.json"),
		metaPath:     filepath.Join(dataDir, "meta.json"),
	}
}

func (s *FileStore) List(_ context.Context) ([]domain.Session, error) {
	sessions, err := s.readSessions()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].StartedAt.After(sessions[j].StartedAt)
	})
	return sessions, nil
}

func (s *FileStore) Get(_ context.Context, id string) (domain.Session, error) {
	sessions, err := s.readSessions()
	if err != nil {
		return domain.Session{}, err
	}
	for _, session := range sessions {
		if session.ID == id {
			return session, nil
		}
	}
	return domain.Session{}, apperrors.ErrNotFound
}

func (s *FileStore) Put(_ context.Context, session domain.Session) error {
	sessions, err := s.readSessions()
	if err != nil {
		return err
	}
	replaced := false
	for i := range sessions {
		if sessions[i].ID == session.ID {
			sessions[i] = session
			replaced = true
			break
		}
	}
	if !replaced {
		sessions = append(sessions, session)
	}
	return s.writeJSON(s.sessionsPath, sessions)
}

func (s *FileStore) Delete(_ context.Context, id string) (bool, error) {
	sessions, err := s.readSessions()
	if err != nil {
		return false, err
	}
	kept := sessions[:0]
	removed := false
	for _, session := range sessions {
		if session.ID == id {
			removed = true
			continue
		}
		kept = append(kept, session)
	}
	if !removed {
		return false, nil
	}
	return true, s.writeJSON(s.sessionsPath, kept)
}

func (s *FileStore) Reset(_ context.Context) error {
	return s.writeJSON(s.sessionsPath, []domain.Session{})
}

func (s *FileStore) SaveActive(_ context.Context, session domain.Session) error {
	return s.writeJSON(s.activePath, session)
}

func (s *FileStore) LoadActive(_ context.Context) (domain.Session, error) {
	payload, err := os.ReadFile(s.activePath)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Session{}, apperrors.ErrNoActiveSession
		}
		return domain.Session{}, fmt.Errorf("read active session: %w", err)
	}
	active := domain.Session{}
	if err := json.Unmarshal(payload, &active); err != nil {
		return domain.Session{}, fmt.Errorf("decode active session: %w", err)
	}
	if active.ID == "" {
		return domain.Session{}, apperrors.ErrNoActiveSession
	}
	return active, nil
}

func (s *FileStore) ClearActive(_ context.Context) error {
	if err := os.Remove(s.activePath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("clear active session: %w", err)
	}
	return nil
}

// metaDocument stamps the schema version next to the counter so a future
// layout change can migrate on load.
type metaDocument struct {
	Version    int   `json:"version"`
	LastNumber int64 `json:"last_number"`
}

func (s *FileStore) LoadMeta(_ context.Context) (domain.Meta, error) {
	payload, err := os.ReadFile(s.metaPath)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Meta{}, nil
		}
		return domain.Meta{}, fmt.Errorf("read meta: %w", err)
	}
	doc := metaDocument{}
	if err := json.Unmarshal(payload, &doc); err != nil {
		return domain.Meta{}, fmt.Errorf("decode meta: %w", err)
	}
	return domain.Meta{LastNumber: doc.LastNumber}, nil
}

func (s *FileStore) SaveMeta(_ context.Context, meta domain.Meta) error {
	return s.writeJSON(s.metaPath, metaDocument{Version: domain.SchemaVersion, LastNumber: meta.LastNumber})
}

func (s *FileStore) ResetMeta(_ context.Context) error {
	return s.writeJSON(s.metaPath, metaDocument{Version: domain.SchemaVersion})
}

func (s *FileStore) readSessions() ([]domain.Session, error) {
	payload, err := os.ReadFile(s.sessionsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read sessions: %w", err)
	}
	var sessions []domain.Session
	if err := json.Unmarshal(payload, &sessions); err != nil {
		return nil, fmt.Errorf("decode sessions: %w", err)
	}
	return sessions, nil
}

func (s *FileStore) writeJSON(path string, value any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
