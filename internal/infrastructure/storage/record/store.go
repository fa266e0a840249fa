package record

import (
	"context"
	"sort"
	"sync"

	pkgerrors "github.com/turtacn/PolyGraph-Intelligence/pkg/errors"
)

// Store persists records by id.  An id is the record's file name without the
// ".json" extension.
type Store interface {
	List(ctx context.Context) ([]string, error)
	Load(ctx context.Context, id string) (*Record, error)
	Save(ctx context.Context, id string, r *Record) error
	Location(id string) string
}

// MemoryStore keeps rendered records in memory.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string][]byte)}
}

func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *MemoryStore) Load(ctx context.Context, id string) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	data, ok := s.records[id]
	s.mu.RUnlock()
	if !ok {
		return nil, pkgerrors.Newf(pkgerrors.ErrCodeNotFound, "record %q not found", id)
	}
	return Parse(data)
}

func (s *MemoryStore) Save(ctx context.Context, id string, r *Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.records[id] = r.Bytes()
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Location(id string) string { return "mem://" + id }

// Put stores raw bytes without validation, for seeding corrupt fixtures.
func (s *MemoryStore) Put(id string, data []byte) {
	s.mu.Lock()
	s.records[id] = append([]byte(nil), data...)
	s.mu.Unlock()
}

// Raw returns the stored bytes of id.
func (s *MemoryStore) Raw(id string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.records[id]
	return data, ok
}

var _ Store = (*MemoryStore)(nil)

//Personal.AI order the ending
