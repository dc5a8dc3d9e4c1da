// services/match_service.go
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"deck-tracker/docstore"
	"deck-tracker/models"

	"go.uber.org/zap"
)

type MatchService struct {
	Store docstore.Store
}

func NewMatchService(store docstore.Store) *MatchService {
	return &MatchService{Store: store}
}

// GetMatches lists the matches of a deck. Blank ids yield an empty list.
func (s *MatchService) GetMatches(ctx context.Context, profileID, deckID string) ([]models.Match, error) {
	if blank(profileID) || blank(deckID) {
		return []models.Match{}, nil
	}
	collection, err := matchesPath(profileID, deckID)
	if err != nil {
		return nil, err
	}
	docs, err := s.Store.List(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches of deck %s: %w", deckID, err)
	}

	matches := make([]models.Match, 0, len(docs))
	for _, doc := range docs {
		var m models.Match
		if err := docstore.Decode(doc.Data, &m); err != nil {
			return nil, fmt.Errorf("match %s: %w", doc.ID, err)
		}
		m.ID = doc.ID
		m.DeckID = deckID
		matches = append(matches, m)
	}
	return matches, nil
}

// CreateMatch records a match for the deck, dated now. The deck must exist
// under the profile, otherwise docstore.ErrNotFound is returned.
func (s *MatchService) CreateMatch(ctx context.Context, profileID, deckID, opponent string, result models.MatchResult, notes string) (*models.Match, error) {
	if blank(profileID) || blank(deckID) {
		return nil, invalidArgument("profile id and deck id are required")
	}
	if !result.Valid() {
		return nil, invalidArgument("result must be one of win, draw or loss, got %q", result)
	}
	collection, err := matchesPath(profileID, deckID)
	if err != nil {
		return nil, err
	}
	decks, err := decksPath(profileID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Store.Get(ctx, decks, deckID); err != nil {
		return nil, fmt.Errorf("failed to get deck %s: %w", deckID, err)
	}

	match := models.Match{
		Opponent: strings.TrimSpace(opponent),
		Result:   result,
		Notes:    notes,
		Date:     time.Now().UTC(),
		DeckID:   deckID,
	}
	fields, err := docstore.Encode(match)
	if err != nil {
		return nil, err
	}
	id, err := s.Store.Add(ctx, collection, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	match.ID = id

	zap.S().Infof("[MATCH] recorded %s vs %q for deck %s", result, match.Opponent, deckID)
	return &match, nil
}

func (s *MatchService) DeleteMatch(ctx context.Context, profileID, deckID, matchID string) error {
	if blank(profileID) || blank(deckID) || blank(matchID) {
		return invalidArgument("profile id, deck id and match id are required")
	}
	collection, err := matchesPath(profileID, deckID)
	if err != nil {
		return err
	}
	if err := s.Store.Delete(ctx, collection, matchID); err != nil {
		return fmt.Errorf("failed to delete match %s: %w", matchID, err)
	}
	return nil
}
