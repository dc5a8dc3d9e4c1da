package workers

import (
	"context"
	"testing"
	"time"

	"deck-tracker/docstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seeded struct {
	store     *docstore.MemoryStore
	profileID string
	deckID    string
}

// seed stores one healthy profile/deck/match chain plus orphans: a deck with
// a match under a deleted profile, and a match under a deleted deck.
func seed(t *testing.T) seeded {
	t.Helper()
	ctx := context.Background()
	store := docstore.NewMemoryStore()

	profileID, err := store.Add(ctx, "profiles", docstore.Fields{"name": "Ash"})
	require.NoError(t, err)
	deckID, err := store.Add(ctx, "profiles/"+profileID+"/decks", docstore.Fields{"name": "Pikachu"})
	require.NoError(t, err)
	_, err = store.Add(ctx, "profiles/"+profileID+"/decks/"+deckID+"/matches", docstore.Fields{"result": "win"})
	require.NoError(t, err)

	ghostDeck, err := store.Add(ctx, "profiles/ghost/decks", docstore.Fields{"name": "Gengar"})
	require.NoError(t, err)
	_, err = store.Add(ctx, "profiles/ghost/decks/"+ghostDeck+"/matches", docstore.Fields{"result": "loss"})
	require.NoError(t, err)
	_, err = store.Add(ctx, "profiles/"+profileID+"/decks/gone/matches", docstore.Fields{"result": "draw"})
	require.NoError(t, err)

	return seeded{store: store, profileID: profileID, deckID: deckID}
}

func count(store docstore.Store, group string) int {
	docs, err := store.CollectionGroup(context.Background(), group)
	if err != nil {
		return -1
	}
	return len(docs)
}

func TestSweepRemovesOrphans(t *testing.T) {
	s := seed(t)
	sweeper := NewOrphanSweeper(s.store, time.Hour)

	res, err := sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SweepResult{Decks: 1, Matches: 2}, res)

	decks, err := s.store.CollectionGroup(context.Background(), "decks")
	require.NoError(t, err)
	require.Len(t, decks, 1)
	assert.Equal(t, s.deckID, decks[0].ID)

	matches, err := s.store.CollectionGroup(context.Background(), "matches")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "profiles/"+s.profileID+"/decks/"+s.deckID+"/matches", matches[0].Collection)

	// a second pass has nothing left to do
	res, err = sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SweepResult{}, res)
}

func TestSweepOnEmptyStore(t *testing.T) {
	res, err := NewOrphanSweeper(docstore.NewMemoryStore(), time.Hour).Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SweepResult{}, res)
}

func TestScheduledSweep(t *testing.T) {
	s := seed(t)
	sweeper := NewOrphanSweeper(s.store, 20*time.Millisecond)

	require.NoError(t, sweeper.Start(context.Background()))
	defer func() { assert.NoError(t, sweeper.Stop()) }()

	assert.Eventually(t, func() bool {
		return count(s.store, "decks") == 1 && count(s.store, "matches") == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestStopWithoutStart(t *testing.T) {
	assert.NoError(t, NewOrphanSweeper(docstore.NewMemoryStore(), time.Hour).Stop())
}
