package journal

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// ─── Mock Dependencies ───────────────────────────────────────────────────────

// MockRepository records entries in memory.
type MockRepository struct {
	mu        sync.Mutex
	entries   []Entry
	recordErr error
}

func (m *MockRepository) Record(_ context.Context, entry *Entry) error {
	if m.recordErr != nil {
		return m.recordErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *MockRepository) List(_ context.Context, _ Filter) (*ListResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := append([]Entry(nil), m.entries...)
	return &ListResult{Entries: entries, Total: len(entries)}, nil
}

func (m *MockRepository) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Entry(nil), m.entries...)
}

// ─── Tests ───────────────────────────────────────────────────────────────────

func TestRecorderNotify(t *testing.T) {
	repo := &MockRepository{}
	rec := NewRecorder(repo, time.Second)

	rec.Notify("turn_on", map[string]any{"id": 1})

	entries := repo.Entries()
	if len(entries) != 1 {
		t.Fatalf("repository saw %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.Event != "turn_on" {
		t.Errorf("Event = %q, want %q", e.Event, "turn_on")
	}
	if e.DeviceID == nil || *e.DeviceID != 1 {
		t.Errorf("DeviceID = %v, want 1", e.DeviceID)
	}
	if e.Payload["id"] != 1 {
		t.Errorf("Payload id = %v, want 1", e.Payload["id"])
	}
}

func TestRecorderNotifyNoDeviceID(t *testing.T) {
	repo := &MockRepository{}
	rec := NewRecorder(repo, time.Second)

	// Payloads without an int id leave device_id null.
	rec.Notify("custom", map[string]any{"note": "manual"})

	entries := repo.Entries()
	if len(entries) != 1 {
		t.Fatalf("repository saw %d entries, want 1", len(entries))
	}
	if entries[0].DeviceID != nil {
		t.Errorf("DeviceID = %v, want nil", entries[0].DeviceID)
	}
}

func TestRecorderNotifySwallowsWriteFailure(t *testing.T) {
	repo := &MockRepository{recordErr: errors.New("disk full")}
	rec := NewRecorder(repo, time.Second)

	// Must not panic; failure is logged, not propagated.
	rec.Notify("unlock", map[string]any{"id": 3})

	if got := len(repo.Entries()); got != 0 {
		t.Errorf("repository saw %d entries after failed write, want 0", got)
	}
}

func TestNewRecorderDefaultTimeout(t *testing.T) {
	rec := NewRecorder(&MockRepository{}, 0)
	if rec.timeout != defaultWriteTimeout {
		t.Errorf("timeout = %v, want %v", rec.timeout, defaultWriteTimeout)
	}
}
