// services/stats_service.go
package services

import (
	"context"
	"sort"

	"deck-tracker/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type StatsService struct {
	Decks   *DeckService
	Matches *MatchService
	// Concurrency bounds the per-deck match listings.
	Concurrency int
}

func NewStatsService(decks *DeckService, matches *MatchService, concurrency int) *StatsService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &StatsService{Decks: decks, Matches: matches, Concurrency: concurrency}
}

// ProfileMatches gathers the matches of every deck of a profile, in deck
// order, without duplicate ids. A deck whose matches cannot be listed is
// logged and counted as empty.
func (s *StatsService) ProfileMatches(ctx context.Context, profileID string) ([]models.Match, []models.Deck, error) {
	decks, err := s.Decks.GetDecks(ctx, profileID)
	if err != nil {
		return nil, nil, err
	}
	if len(decks) == 0 {
		return []models.Match{}, decks, nil
	}

	perDeck := make([][]models.Match, len(decks))
	var g errgroup.Group
	g.SetLimit(s.Concurrency)
	for i, deck := range decks {
		g.Go(func() error {
			matches, err := s.Matches.GetMatches(ctx, profileID, deck.ID)
			if err != nil {
				zap.S().Warnf("[STATS] ⚠️ could not list matches of deck %s: %v", deck.ID, err)
				return nil
			}
			perDeck[i] = matches
			return nil
		})
	}
	_ = g.Wait()

	seen := make(map[string]struct{})
	all := make([]models.Match, 0)
	for _, matches := range perDeck {
		for _, m := range matches {
			if _, dup := seen[m.ID]; dup {
				continue
			}
			seen[m.ID] = struct{}{}
			all = append(all, m)
		}
	}
	return all, decks, nil
}

// ProfileStats aggregates the matches of a profile, optionally for one deck.
func (s *StatsService) ProfileStats(ctx context.Context, profileID, deckFilter string) (models.Stats, error) {
	matches, _, err := s.ProfileMatches(ctx, profileID)
	if err != nil {
		return models.Stats{}, err
	}
	return ComputeStats(matches, deckFilter), nil
}

// Report returns the filtered aggregate and one aggregate per deck.
func (s *StatsService) Report(ctx context.Context, profileID, deckFilter string) (*models.StatsReport, error) {
	matches, decks, err := s.ProfileMatches(ctx, profileID)
	if err != nil {
		return nil, err
	}

	report := &models.StatsReport{
		Overall: ComputeStats(matches, deckFilter),
		Decks:   make([]models.DeckStats, 0, len(decks)),
	}
	for _, deck := range decks {
		report.Decks = append(report.Decks, models.DeckStats{
			DeckID:   deck.ID,
			DeckName: deck.Name,
			Format:   deck.Format,
			Stats:    ComputeStats(matches, deck.ID),
		})
	}
	return report, nil
}

// MatchHistory lists the matches of a profile newest first, each labelled
// with its deck name.
func (s *StatsService) MatchHistory(ctx context.Context, profileID, deckFilter string) ([]models.MatchHistoryEntry, error) {
	matches, decks, err := s.ProfileMatches(ctx, profileID)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(decks))
	for _, d := range decks {
		names[d.ID] = d.Name
	}

	history := make([]models.MatchHistoryEntry, 0, len(matches))
	for _, m := range matches {
		if deckFilter != "" && deckFilter != AllDecks && m.DeckID != deckFilter {
			continue
		}
		history = append(history, models.MatchHistoryEntry{Match: m, DeckName: names[m.DeckID]})
	}
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Date.After(history[j].Date)
	})
	return history, nil
}
