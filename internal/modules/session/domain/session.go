package domain

import (
	"strings"
	"time"
)

const SchemaVersion = 1

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Session is a single tracked focus interval. A zero EndedAt means the
// session is still running; everything else about the status is derived
// from that one field.
type Session struct {
	ID         string    `json:"id"`
	Number     int64     `json:"number"`
	StartedAt  time.Time `json:"started_at"`
	EndedAt    time.Time `json:"ended_at,omitzero"`
	Experience string    `json:"experience"`
	Tag        string    `json:"tag,omitempty"`
}

func (s Session) Status() Status {
	if s.EndedAt.IsZero() {
		return StatusActive
	}
	return StatusCompleted
}

// Duration is derived from the two timestamps, clamped at zero to defend
// against clock skew. Active sessions report zero.
func (s Session) Duration() time.Duration {
	return CalcDuration(s.StartedAt, s.EndedAt)
}

func CalcDuration(start, end time.Time) time.Duration {
	if end.IsZero() {
		return 0
	}
	d := end.Sub(start)
	if d < 0 {
		return 0
	}
	return d
}

// New builds a session; it never fails. The tag is normalized and the
// experience defaults to the empty string.
func New(id string, number int64, startedAt time.Time, tag string) Session {
	return Session{
		ID:        id,
		Number:    number,
		StartedAt: startedAt,
		Tag:       NormalizeTag(tag),
	}
}

// Complete returns a completed copy of the session with the end time
// stamped and the experience replaced. The tag is replaced only when the
// patch carries one; KeepTag leaves the existing tag alone.
func Complete(s Session, endedAt time.Time, experience string, tag TagPatch) Session {
	s.EndedAt = endedAt
	s.Experience = strings.TrimSpace(experience)
	s.Tag = tag.Apply(s.Tag)
	return s
}

// NormalizeTag trims surrounding whitespace; a blank tag collapses to the
// empty string, which means "untagged". Idempotent.
func NormalizeTag(tag string) string {
	return strings.TrimSpace(tag)
}

// TagPatch is a tri-state tag update: keep the current tag, clear it, or
// set a new value. It replaces the easy-to-misread "omitted vs null vs
// value" optional-argument convention.
type TagPatch struct {
	set   bool
	value string
}

func KeepTag() TagPatch {
	return TagPatch{}
}

func ClearTag() TagPatch {
	return TagPatch{set: true}
}

// SetTag normalizes the value; a blank value degrades to ClearTag.
func SetTag(value string) TagPatch {
	return TagPatch{set: true, value: NormalizeTag(value)}
}

func (p TagPatch) Apply(current string) string {
	if !p.set {
		return current
	}
	return p.value
}

// Meta is the sequence metadata collection: the highest session number ever
// issued. It only increases, even across deletions.
type Meta struct {
	LastNumber int64 `json:"last_number"`
}
