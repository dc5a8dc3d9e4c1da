package services

import (
	"context"
	"testing"
	"time"

	"deck-tracker/docstore"
	"deck-tracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMatch(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t)
	profileID := svc.profile(t)
	deckID := svc.deck(t, profileID)

	before := time.Now().UTC().Add(-time.Second)
	match, err := svc.matches.CreateMatch(ctx, profileID, deckID, "Gardevoir", models.ResultDraw, "")
	require.NoError(t, err)
	assert.NotEmpty(t, match.ID)
	assert.Equal(t, deckID, match.DeckID)
	assert.Equal(t, "", match.Notes)
	assert.True(t, match.Date.After(before))

	matches, err := svc.matches.GetMatches(ctx, profileID, deckID)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, match.ID, matches[0].ID)
	assert.Equal(t, "Gardevoir", matches[0].Opponent)
	assert.Equal(t, models.ResultDraw, matches[0].Result)
	assert.Equal(t, deckID, matches[0].DeckID)
}

func TestCreateMatchRequiresExistingDeck(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t)
	profileID := svc.profile(t)
	deckID := svc.deck(t, profileID)

	_, err := svc.matches.CreateMatch(ctx, profileID, "no-such-deck", "opp", models.ResultWin, "")
	assert.ErrorIs(t, err, docstore.ErrNotFound)

	// the deck exists, but under another profile
	_, err = svc.matches.CreateMatch(ctx, "nobody", deckID, "opp", models.ResultWin, "")
	assert.ErrorIs(t, err, docstore.ErrNotFound)

	assert.Zero(t, mustCount(t, svc.store, "profiles/"+profileID+"/decks/no-such-deck/matches"))
	assert.Zero(t, mustCount(t, svc.store, "profiles/nobody/decks/"+deckID+"/matches"))
}

func TestCreateMatchRejectsInvalidArguments(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t)
	profileID := svc.profile(t)

	cases := []struct {
		name              string
		profileID, deckID string
		result            models.MatchResult
	}{
		{"empty deck id", profileID, "", models.ResultWin},
		{"blank deck id", profileID, "  ", models.ResultLoss},
		{"empty profile id", "", "d1", models.ResultWin},
		{"unknown result", profileID, "d1", "victory"},
		{"empty result", profileID, "d1", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.matches.CreateMatch(ctx, tc.profileID, tc.deckID, "opp", tc.result, "notes")
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
	assert.Zero(t, svc.store.listCalls("matches"))
}

func TestGetMatchesWithBlankIDsIsEmpty(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t)
	profileID := svc.profile(t)

	for _, ids := range [][2]string{{"", "d1"}, {profileID, ""}, {" ", " "}} {
		matches, err := svc.matches.GetMatches(ctx, ids[0], ids[1])
		require.NoError(t, err)
		assert.NotNil(t, matches)
		assert.Empty(t, matches)
	}
	assert.Zero(t, svc.store.listCalls("matches"))
}

func TestGetMatchesTakesDeckIDFromPath(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t)
	profileID := svc.profile(t)

	_, err := svc.store.Add(ctx, "profiles/"+profileID+"/decks/d1/matches", map[string]any{
		"opponent": "Miraidon",
		"result":   "loss",
		"deckId":   "stale",
	})
	require.NoError(t, err)

	matches, err := svc.matches.GetMatches(ctx, profileID, "d1")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "d1", matches[0].DeckID)
}

func TestDeleteMatch(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t)
	profileID := svc.profile(t)
	deckID := svc.deck(t, profileID)

	match, err := svc.matches.CreateMatch(ctx, profileID, deckID, "Lugia", models.ResultWin, "close game")
	require.NoError(t, err)

	require.NoError(t, svc.matches.DeleteMatch(ctx, profileID, deckID, match.ID))
	matches, err := svc.matches.GetMatches(ctx, profileID, deckID)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestDeleteMatchRequiresEveryID(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t)
	profileID := svc.profile(t)

	assert.ErrorIs(t, svc.matches.DeleteMatch(ctx, profileID, "", "m1"), ErrInvalidArgument)
	assert.ErrorIs(t, svc.matches.DeleteMatch(ctx, "", "d1", "m1"), ErrInvalidArgument)
	assert.ErrorIs(t, svc.matches.DeleteMatch(ctx, profileID, "d1", ""), ErrInvalidArgument)
}
