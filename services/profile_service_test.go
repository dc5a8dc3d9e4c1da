package services

import (
	"context"
	"testing"

	"deck-tracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndListProfiles(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t)

	ash, err := svc.profiles.CreateProfile(ctx, " Ash ", "")
	require.NoError(t, err)
	assert.Equal(t, "Ash", ash.Name)
	assert.Equal(t, "", ash.Avatar)

	misty, err := svc.profiles.CreateProfile(ctx, "Misty", "https://cdn.example/misty.png")
	require.NoError(t, err)

	profiles, err := svc.profiles.GetProfiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Profile{*ash, *misty}, profiles)
}

func TestCreateProfileRequiresName(t *testing.T) {
	svc := newTestServices(t)
	_, err := svc.profiles.CreateProfile(context.Background(), "   ", "")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDeleteProfileCascades(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t)

	p, err := svc.profiles.CreateProfile(ctx, "Brock", "")
	require.NoError(t, err)
	keep, err := svc.profiles.CreateProfile(ctx, "Gary", "")
	require.NoError(t, err)

	var deckIDs []string
	for _, name := range []string{"Onix", "Geodude", "Empty"} {
		d, err := svc.decks.CreateDeck(ctx, p.ID, name, "Standard", "")
		require.NoError(t, err)
		deckIDs = append(deckIDs, d.ID)
	}
	for i := 0; i < 3; i++ {
		_, err := svc.matches.CreateMatch(ctx, p.ID, deckIDs[0], "x", models.ResultWin, "")
		require.NoError(t, err)
	}
	_, err = svc.matches.CreateMatch(ctx, p.ID, deckIDs[1], "y", models.ResultLoss, "")
	require.NoError(t, err)

	keptDeck, err := svc.decks.CreateDeck(ctx, keep.ID, "Eevee", "Standard", "")
	require.NoError(t, err)
	_, err = svc.matches.CreateMatch(ctx, keep.ID, keptDeck.ID, "z", models.ResultDraw, "")
	require.NoError(t, err)

	require.NoError(t, svc.profiles.DeleteProfile(ctx, p.ID))

	profiles, err := svc.profiles.GetProfiles(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, keep.ID, profiles[0].ID)

	assert.Zero(t, mustCount(t, svc.store, "profiles/"+p.ID+"/decks"))
	for _, id := range deckIDs {
		assert.Zero(t, mustCount(t, svc.store, "profiles/"+p.ID+"/decks/"+id+"/matches"))
	}

	assert.Equal(t, 1, mustCount(t, svc.store, "profiles/"+keep.ID+"/decks"))
	assert.Equal(t, 1, mustCount(t, svc.store, "profiles/"+keep.ID+"/decks/"+keptDeck.ID+"/matches"))
}

func TestDeleteProfileRequiresID(t *testing.T) {
	svc := newTestServices(t)
	assert.ErrorIs(t, svc.profiles.DeleteProfile(context.Background(), ""), ErrInvalidArgument)
}
