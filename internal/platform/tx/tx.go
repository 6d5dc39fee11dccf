package tx

import (
	"context"
	"sync"
)

// Manager brackets a read-modify-write cycle over the persisted collections.
// Mutations that check state before writing (start, stop, delete) must run
// inside Within so that two callers cannot interleave between the check and
// the write.
type Manager interface {
	Within(ctx context.Context, fn func(context.Context) error) error
}

// SerialManager serializes critical sections with a process-wide mutex.
type SerialManager struct {
	mu sync.Mutex
}

func NewSerialManager() *SerialManager {
	return &SerialManager{}
}

func (m *SerialManager) Within(ctx context.Context, fn func(context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

// NoopManager runs the function without locking, for callers that already
// guarantee exclusive access.
type NoopManager struct{}

func (NoopManager) Within(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}
