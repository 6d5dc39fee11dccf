package dto

import "time"

// TagUpdate carries the tri-state tag argument across the in-port: leave
// the tag alone, clear it, or set a value.
type TagUpdate struct {
	Set   bool
	Value string
}

func KeepTag() TagUpdate            { return TagUpdate{} }
func ClearTag() TagUpdate           { return TagUpdate{Set: true} }
func SetTag(value string) TagUpdate { return TagUpdate{Set: true, Value: value} }

type SessionOutput struct {
	ID         string
	Number     int64
	StartedAt  time.Time
	EndedAt    time.Time
	DurationMS int64
	Experience string
	Tag        string
	Status     string
}

type StartInput struct {
	Tag TagUpdate
}

type StopInput struct {
	SessionID  string
	Experience string
	Tag        TagUpdate
}

type UpdateInput struct {
	SessionID  string
	Experience string
	Tag        TagUpdate
}
