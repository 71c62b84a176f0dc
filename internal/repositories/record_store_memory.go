package repositories

import (
	"sync"
)

// MemoryRecordStore is an in-memory implementation of RecordStore. It backs
// the store services in tests, where no database is wanted.
type MemoryRecordStore struct {
	records map[string][]byte
	mu      sync.RWMutex

	// WriteErr, when set, is returned by every Write without persisting.
	WriteErr error
}

// NewMemoryRecordStore creates a new instance of MemoryRecordStore.
func NewMemoryRecordStore() *MemoryRecordStore {
	return &MemoryRecordStore{
		records: make(map[string][]byte),
	}
}

func recordKey(profile, name string) string {
	return profile + "\x00" + name
}

// Read returns the stored document, or nil when absent.
func (r *MemoryRecordStore) Read(profile, name string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, ok := r.records[recordKey(profile, name)]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Write replaces the stored document for the key.
func (r *MemoryRecordStore) Write(profile, name string, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.WriteErr != nil {
		return r.WriteErr
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	r.records[recordKey(profile, name)] = stored
	return nil
}

// Delete removes the key.
func (r *MemoryRecordStore) Delete(profile, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.records, recordKey(profile, name))
	return nil
}
