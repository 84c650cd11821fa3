package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/JonMunkholm/runsheet/internal/timetable"
)

type memoryEntry struct {
	doc     []byte
	summary Summary
}

// MemoryStore keeps encoded projects in a map. Documents are stored in
// their JSON form so callers never share memory with the store, matching
// the behavior of the database backends.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *MemoryStore) Create(ctx context.Context, id string, p timetable.Project) error {
	doc, err := encode(p)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; ok {
		return ErrExists
	}
	now := s.now()
	s.entries[id] = memoryEntry{
		doc: doc,
		summary: Summary{
			ID:        id,
			Title:     p.Meta.Title,
			Days:      len(p.Days),
			Acts:      len(p.Acts),
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (timetable.Project, error) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()

	if !ok {
		return timetable.Project{}, ErrNotFound
	}
	return decode(e.doc)
}

func (s *MemoryStore) Put(ctx context.Context, id string, p timetable.Project) error {
	doc, err := encode(p)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return ErrNotFound
	}
	e.doc = doc
	e.summary.Title = p.Meta.Title
	e.summary.Days = len(p.Days)
	e.summary.Acts = len(p.Acts)
	e.summary.UpdatedAt = s.now()
	s.entries[id] = e
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return ErrNotFound
	}
	delete(s.entries, id)
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]Summary, error) {
	s.mu.RLock()
	out := make([]Summary, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.summary)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
