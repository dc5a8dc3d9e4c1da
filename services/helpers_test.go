package services

import (
	"context"
	"sync"
	"testing"

	"deck-tracker/docstore"

	"github.com/stretchr/testify/require"
)

// spyStore counts List calls per collection and can fail chosen ones.
type spyStore struct {
	docstore.Store

	mu       sync.Mutex
	lists    map[string]int
	failList map[string]error
}

func newSpyStore() *spyStore {
	return &spyStore{
		Store:    docstore.NewMemoryStore(),
		lists:    make(map[string]int),
		failList: make(map[string]error),
	}
}

func (s *spyStore) List(ctx context.Context, collection string) ([]docstore.Document, error) {
	s.mu.Lock()
	s.lists[collection]++
	err := s.failList[collection]
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return s.Store.List(ctx, collection)
}

func (s *spyStore) failListing(collection string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failList[collection] = err
}

// listCalls sums List calls on collections whose last segment is group.
func (s *spyStore) listCalls(group string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for collection, count := range s.lists {
		if docstore.GroupName(collection) == group {
			n += count
		}
	}
	return n
}

type testServices struct {
	store    *spyStore
	profiles *ProfileService
	decks    *DeckService
	matches  *MatchService
	stats    *StatsService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	store := newSpyStore()
	t.Cleanup(func() { _ = store.Close() })

	decks := NewDeckService(store)
	matches := NewMatchService(store)
	return &testServices{
		store:    store,
		profiles: NewProfileService(store, decks),
		decks:    decks,
		matches:  matches,
		stats:    NewStatsService(decks, matches, 2),
	}
}

func mustCount(t *testing.T, store docstore.Store, collection string) int {
	t.Helper()
	docs, err := store.List(context.Background(), collection)
	require.NoError(t, err)
	return len(docs)
}

// profile creates a profile and returns its id.
func (s *testServices) profile(t *testing.T) string {
	t.Helper()
	p, err := s.profiles.CreateProfile(context.Background(), "Ash", "")
	require.NoError(t, err)
	return p.ID
}

// deck creates a deck under profileID and returns its id.
func (s *testServices) deck(t *testing.T, profileID string) string {
	t.Helper()
	d, err := s.decks.CreateDeck(context.Background(), profileID, "Deck", "Standard", "")
	require.NoError(t, err)
	return d.ID
}
