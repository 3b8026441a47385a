package storage

import (
	"fmt"
	"sync"
)

// Ensure MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)

// MemoryStore is an in-memory implementation of profile storage for testing
type MemoryStore struct {
	mu  sync.RWMutex
	doc *Document

	// LoadErr, when set, is returned by every read
	LoadErr error
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{doc: NewDocument()}
}

// Path returns a placeholder location
func (m *MemoryStore) Path() string {
	return "memory://" + DocumentFileName
}

// Load returns a copy of the stored document
func (m *MemoryStore) Load() (*Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return copyDocument(m.doc), nil
}

// Save replaces the stored document
func (m *MemoryStore) Save(doc *Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.doc = copyDocument(doc)
	return nil
}

// SetProfile creates or replaces the named profile
func (m *MemoryStore) SetProfile(name, apiKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.LoadErr != nil {
		return m.LoadErr
	}
	m.doc.Profiles.Set(name, Profile{APIKey: apiKey})
	return nil
}

// DeleteProfile removes the named profile
func (m *MemoryStore) DeleteProfile(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.LoadErr != nil {
		return m.LoadErr
	}
	if !m.doc.Profiles.Delete(name) {
		return fmt.Errorf("%w: '%s'", ErrProfileNotFound, name)
	}
	return nil
}

// ListProfileNames returns profile names in insertion order
func (m *MemoryStore) ListProfileNames() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.doc.Profiles.Names(), nil
}

func copyDocument(doc *Document) *Document {
	out := NewDocument()
	if doc == nil {
		return out
	}
	for _, name := range doc.Profiles.Names() {
		prof, _ := doc.Profiles.Get(name)
		out.Profiles.Set(name, prof)
	}
	return out
}
