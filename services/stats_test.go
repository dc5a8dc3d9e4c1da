package services

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"deck-tracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func match(id, deckID string, result models.MatchResult) models.Match {
	return models.Match{ID: id, DeckID: deckID, Result: result}
}

func TestComputeStats(t *testing.T) {
	matches := []models.Match{
		match("1", "a", models.ResultWin),
		match("2", "a", models.ResultWin),
		match("3", "a", models.ResultLoss),
		match("4", "b", models.ResultDraw),
		match("5", "b", models.ResultWin),
		match("6", "b", models.ResultLoss),
	}

	all := ComputeStats(matches, AllDecks)
	assert.Equal(t, models.Stats{Total: 6, Wins: 3, Draws: 1, Losses: 2, WinratePercent: 50}, all)
	assert.Equal(t, all, ComputeStats(matches, ""))

	a := ComputeStats(matches, "a")
	assert.Equal(t, models.Stats{Total: 3, Wins: 2, Losses: 1, WinratePercent: 66.67}, a)

	b := ComputeStats(matches, "b")
	assert.Equal(t, models.Stats{Total: 3, Wins: 1, Draws: 1, Losses: 1, WinratePercent: 33.33}, b)

	assert.Equal(t, models.Stats{}, ComputeStats(matches, "missing"))
	assert.Equal(t, models.Stats{}, ComputeStats(nil, AllDecks))
}

func TestComputeStatsProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	results := []models.MatchResult{models.ResultWin, models.ResultDraw, models.ResultLoss}
	decks := []string{"a", "b", "c"}

	for round := 0; round < 200; round++ {
		n := rng.Intn(40)
		matches := make([]models.Match, n)
		for i := range matches {
			matches[i] = match(fmt.Sprint(i), decks[rng.Intn(len(decks))], results[rng.Intn(len(results))])
		}

		for _, filter := range append([]string{AllDecks}, decks...) {
			s := ComputeStats(matches, filter)
			assert.Equal(t, s.Total, s.Wins+s.Draws+s.Losses)
			assert.GreaterOrEqual(t, s.WinratePercent, 0.0)
			assert.LessOrEqual(t, s.WinratePercent, 100.0)
			if s.Total == 0 {
				assert.Zero(t, s.WinratePercent)
			}

			want := 0
			for _, m := range matches {
				if filter == AllDecks || m.DeckID == filter {
					want++
				}
			}
			assert.Equal(t, want, s.Total)
		}
		assert.Equal(t, len(matches), ComputeStats(matches, AllDecks).Total)
	}
}

func TestComputeStatsIgnoresUnknownResults(t *testing.T) {
	s := ComputeStats([]models.Match{match("1", "a", "forfeit"), match("2", "a", models.ResultLoss)}, AllDecks)
	assert.Equal(t, models.Stats{Total: 1, Losses: 1}, s)
}

func TestProfileWithoutDecksNeverListsMatches(t *testing.T) {
	svc := newTestServices(t)

	stats, err := svc.stats.ProfileStats(context.Background(), "lonely", AllDecks)
	require.NoError(t, err)
	assert.Equal(t, models.Stats{Total: 0, Wins: 0, Draws: 0, Losses: 0, WinratePercent: 0}, stats)
	assert.Equal(t, 1, svc.store.listCalls("decks"))
	assert.Zero(t, svc.store.listCalls("matches"))
}

func TestProfileMatchesAcrossDecks(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t)
	profileID := svc.profile(t)

	d1, err := svc.decks.CreateDeck(ctx, profileID, "One", "Standard", "")
	require.NoError(t, err)
	d2, err := svc.decks.CreateDeck(ctx, profileID, "Two", "Expanded", "")
	require.NoError(t, err)

	for _, r := range []models.MatchResult{models.ResultWin, models.ResultWin, models.ResultLoss} {
		_, err := svc.matches.CreateMatch(ctx, profileID, d1.ID, "x", r, "")
		require.NoError(t, err)
	}
	_, err = svc.matches.CreateMatch(ctx, profileID, d2.ID, "y", models.ResultDraw, "")
	require.NoError(t, err)

	matches, decks, err := svc.stats.ProfileMatches(ctx, profileID)
	require.NoError(t, err)
	assert.Len(t, matches, 4)
	assert.Len(t, decks, 2)
	assert.Equal(t, 2, svc.store.listCalls("matches"))

	report, err := svc.stats.Report(ctx, profileID, AllDecks)
	require.NoError(t, err)
	assert.Equal(t, models.Stats{Total: 4, Wins: 2, Draws: 1, Losses: 1, WinratePercent: 50}, report.Overall)
	require.Len(t, report.Decks, 2)
	assert.Equal(t, d1.ID, report.Decks[0].DeckID)
	assert.Equal(t, "One", report.Decks[0].DeckName)
	assert.Equal(t, 66.67, report.Decks[0].WinratePercent)
	assert.Equal(t, "Expanded", report.Decks[1].Format)
	assert.Equal(t, 1, report.Decks[1].Draws)

	filtered, err := svc.stats.ProfileStats(ctx, profileID, d2.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Stats{Total: 1, Draws: 1}, filtered)
}

func TestProfileMatchesAbsorbsFailingDeck(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t)
	profileID := svc.profile(t)

	good, err := svc.decks.CreateDeck(ctx, profileID, "Good", "Standard", "")
	require.NoError(t, err)
	bad, err := svc.decks.CreateDeck(ctx, profileID, "Bad", "Standard", "")
	require.NoError(t, err)
	_, err = svc.matches.CreateMatch(ctx, profileID, good.ID, "x", models.ResultWin, "")
	require.NoError(t, err)
	_, err = svc.matches.CreateMatch(ctx, profileID, bad.ID, "x", models.ResultLoss, "")
	require.NoError(t, err)

	svc.store.failListing("profiles/"+profileID+"/decks/"+bad.ID+"/matches", assert.AnError)

	stats, err := svc.stats.ProfileStats(ctx, profileID, AllDecks)
	require.NoError(t, err)
	assert.Equal(t, models.Stats{Total: 1, Wins: 1, WinratePercent: 100}, stats)
}

func TestProfileMatchesFailsWhenDecksCannotBeListed(t *testing.T) {
	svc := newTestServices(t)
	profileID := svc.profile(t)
	svc.store.failListing("profiles/"+profileID+"/decks", assert.AnError)

	_, err := svc.stats.ProfileStats(context.Background(), profileID, AllDecks)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestMatchHistory(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t)
	profileID := svc.profile(t)

	d1, err := svc.decks.CreateDeck(ctx, profileID, "One", "Standard", "")
	require.NoError(t, err)
	d2, err := svc.decks.CreateDeck(ctx, profileID, "Two", "Standard", "")
	require.NoError(t, err)

	// explicit dates so the ordering does not depend on the clock
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, deck := range []string{d1.ID, d2.ID, d1.ID} {
		_, err := svc.store.Add(ctx, "profiles/"+profileID+"/decks/"+deck+"/matches", map[string]any{
			"opponent": fmt.Sprintf("opp-%d", i),
			"result":   "win",
			"date":     base.Add(time.Duration(i) * time.Hour).Format(time.RFC3339),
			"deckId":   deck,
		})
		require.NoError(t, err)
	}

	history, err := svc.stats.MatchHistory(ctx, profileID, AllDecks)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "opp-2", history[0].Opponent)
	assert.Equal(t, "One", history[0].DeckName)
	assert.Equal(t, "opp-1", history[1].Opponent)
	assert.Equal(t, "Two", history[1].DeckName)
	assert.Equal(t, "opp-0", history[2].Opponent)
	for _, entry := range history {
		assert.NotEmpty(t, entry.DeckName)
	}

	onlyTwo, err := svc.stats.MatchHistory(ctx, profileID, d2.ID)
	require.NoError(t, err)
	require.Len(t, onlyTwo, 1)
	assert.Equal(t, d2.ID, onlyTwo[0].DeckID)
}
