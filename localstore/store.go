// Package localstore is a key-value persistence shim mirroring the browser
// localStorage datastore the administrative frontend runs on: one
// JSON-serialized array per entity type under a fixed key, seeded with
// default data on first read. Reads and writes are synchronous
// read-modify-write over the whole array, last write wins.
package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Storage keys, one per entity type
const (
	KeyVehicles     = "fleet_vehicles"
	KeyFuelRecords  = "fleet_carburant"
	KeyMaintenance  = "fleet_entretiens"
	KeyViolations   = "fleet_infractions"
	KeyDocuments    = "fleet_documents"
	KeyVoyages      = "travegab_voyages"
	KeyReservations = "travegab_reservations"
)

// Backend is the key-value port the store persists through
type Backend interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
}

// MemoryBackend keeps values in a mutex-guarded map
type MemoryBackend struct {
	mu     sync.Mutex
	values map[string][]byte
}

// NewMemoryBackend returns an empty in-memory backend
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string][]byte)}
}

// Get returns the stored value for key
func (m *MemoryBackend) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

// Set stores value under key
func (m *MemoryBackend) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// FileBackend persists one JSON file per key under a directory
type FileBackend struct {
	dir string
}

// NewFileBackend returns a backend rooted at dir, creating it if needed
func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &FileBackend{dir: dir}, nil
}

// Get reads the file for key; a missing file means no stored value
func (f *FileBackend) Get(key string) ([]byte, bool) {
	b, err := os.ReadFile(filepath.Join(f.dir, key+".json"))
	if err != nil {
		return nil, false
	}
	return b, true
}

// Set writes the file for key
func (f *FileBackend) Set(key string, value []byte) error {
	return os.WriteFile(filepath.Join(f.dir, key+".json"), value, 0o644)
}

// Store exposes per-entity get/add/update/delete over a Backend
type Store struct {
	backend Backend
}

// New returns a store over the given backend
func New(backend Backend) *Store {
	return &Store{backend: backend}
}

// load decodes the array stored under key into dest; when the key is absent
// it seeds the backend with defaults first. Seeding is per-key: a fresh
// backend reconstructs defaults entity type by entity type.
func (s *Store) load(key string, dest interface{}, defaults interface{}) error {
	raw, ok := s.backend.Get(key)
	if !ok {
		seeded, err := json.Marshal(defaults)
		if err != nil {
			return fmt.Errorf("failed to encode defaults for %s: %w", key, err)
		}
		if err := s.backend.Set(key, seeded); err != nil {
			return fmt.Errorf("failed to seed %s: %w", key, err)
		}
		raw = seeded
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

// save rewrites the whole array stored under key
func (s *Store) save(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return s.backend.Set(key, raw)
}

// Export returns the whole store as one JSON object keyed by storage key
func (s *Store) Export() ([]byte, error) {
	dump := make(map[string]json.RawMessage)
	for _, key := range allKeys() {
		raw, ok := s.backend.Get(key)
		if !ok {
			continue
		}
		dump[key] = json.RawMessage(raw)
	}
	return json.Marshal(dump)
}

// Import replaces the stored arrays with the ones in data, key by key.
// Unknown keys are ignored; keys absent from data keep their current value.
func (s *Store) Import(data []byte) error {
	var dump map[string]json.RawMessage
	if err := json.Unmarshal(data, &dump); err != nil {
		return fmt.Errorf("failed to decode import payload: %w", err)
	}
	for _, key := range allKeys() {
		raw, ok := dump[key]
		if !ok {
			continue
		}
		if err := s.backend.Set(key, raw); err != nil {
			return fmt.Errorf("failed to import %s: %w", key, err)
		}
	}
	return nil
}

func allKeys() []string {
	return []string{
		KeyVehicles,
		KeyFuelRecords,
		KeyMaintenance,
		KeyViolations,
		KeyDocuments,
		KeyVoyages,
		KeyReservations,
	}
}
