package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
)

// MemoryStore is a DocumentStore over plain maps, used by the test suites
// in place of a live MongoDB. Documents go through a BSON round-trip on
// insert so reads observe the same loosely typed shapes a real store
// returns.
type MemoryStore struct {
	mu          sync.Mutex
	state       State
	initErr     error
	collections map[string][]bson.M
	nextID      int
}

func NewMemoryStore(state State) *MemoryStore {
	s := &MemoryStore{state: state, collections: map[string][]bson.M{}}
	if state == StateErrored {
		s.initErr = fmt.Errorf("simulated storage failure")
	}
	return s
}

func (m *MemoryStore) State() State { return m.state }

func (m *MemoryStore) InitError() error { return m.initErr }

func (m *MemoryStore) DatabaseName() string {
	if m.state == StateConnected {
		return "memory"
	}
	return ""
}

func (m *MemoryStore) ready() error {
	switch m.state {
	case StateConnected:
		return nil
	case StateErrored:
		return fmt.Errorf("document store unusable: %w", m.initErr)
	default:
		return ErrUnavailable
	}
}

func (m *MemoryStore) InsertDocument(ctx context.Context, collection string, doc interface{}) (string, error) {
	if err := m.ready(); err != nil {
		return "", err
	}

	data, err := bson.Marshal(doc)
	if err != nil {
		return "", err
	}
	var stored bson.M
	if err := bson.Unmarshal(data, &stored); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	id := fmt.Sprintf("mem-%d", m.nextID)
	stored["_id"] = id
	m.collections[collection] = append(m.collections[collection], stored)
	return id, nil
}

func (m *MemoryStore) ListDocuments(ctx context.Context, collection string) ([]bson.M, error) {
	if err := m.ready(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	docs := make([]bson.M, len(m.collections[collection]))
	copy(docs, m.collections[collection])
	return docs, nil
}

func (m *MemoryStore) CountDocuments(ctx context.Context, collection string) (int64, error) {
	if err := m.ready(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.collections[collection])), nil
}

func (m *MemoryStore) ListCollectionNames(ctx context.Context) ([]string, error) {
	if err := m.ready(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.collections))
	for name := range m.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
