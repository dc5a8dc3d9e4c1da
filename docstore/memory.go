package docstore

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps documents in process memory. Listing order follows
// insertion order.
type MemoryStore struct {
	mu          sync.RWMutex
	seq         int64
	collections map[string]map[string]*memoryDoc
}

type memoryDoc struct {
	seq  int64
	data Fields
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]map[string]*memoryDoc)}
}

func (s *MemoryStore) Add(ctx context.Context, collection string, data Fields) (string, error) {
	if err := ValidateCollection(collection); err != nil {
		return "", err
	}
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	docs, ok := s.collections[collection]
	if !ok {
		docs = make(map[string]*memoryDoc)
		s.collections[collection] = docs
	}
	s.seq++
	docs[id] = &memoryDoc{seq: s.seq, data: copyFields(data)}
	return id, nil
}

func (s *MemoryStore) Get(ctx context.Context, collection, id string) (Fields, error) {
	if err := validateDoc(collection, id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.collections[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyFields(doc.data), nil
}

func (s *MemoryStore) List(ctx context.Context, collection string) ([]Document, error) {
	if err := ValidateCollection(collection); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot(collection), nil
}

func (s *MemoryStore) Update(ctx context.Context, collection, id string, fields Fields) error {
	if err := validateDoc(collection, id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.collections[collection][id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range fields {
		doc.data[k] = v
	}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	if err := validateDoc(collection, id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	docs, ok := s.collections[collection]
	if !ok {
		return nil
	}
	delete(docs, id)
	if len(docs) == 0 {
		delete(s.collections, collection)
	}
	return nil
}

func (s *MemoryStore) CollectionGroup(ctx context.Context, name string) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Document
	for collection := range s.collections {
		if GroupName(collection) == name {
			out = append(out, s.snapshot(collection)...)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return s.collections[out[i].Collection][out[i].ID].seq < s.collections[out[j].Collection][out[j].ID].seq
	})
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }

// snapshot must be called with s.mu held.
func (s *MemoryStore) snapshot(collection string) []Document {
	docs := s.collections[collection]
	out := make([]Document, 0, len(docs))
	for id, doc := range docs {
		out = append(out, Document{ID: id, Collection: collection, Data: copyFields(doc.data)})
	}
	sort.Slice(out, func(i, j int) bool {
		return docs[out[i].ID].seq < docs[out[j].ID].seq
	})
	return out
}
