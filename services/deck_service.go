// services/deck_service.go
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

type DeckService struct {
	Store docstore.Store
}

func NewDeckService(store docstore.Store) *DeckService {
	return &DeckService{Store: store}
}

// GetDecks lists the decks of a profile. A deck stored without a card list
// comes back with an empty one.
func (s *DeckService) GetDecks(ctx context.Context, profileID string) ([]models.Deck, error) {
	collection, err := decksPath(profileID)
	if err != nil {
		return nil, err
	}
	docs, err := s.Store.List(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}

	decks := make([]models.Deck, 0, len(docs))
	for _, doc := range docs {
		deck, err := decodeDeck(doc.ID, doc.Data)
		if err != nil {
			return nil, err
		}
		decks = append(decks, *deck)
	}
	return decks, nil
}

// GetDeck returns a single deck or docstore.ErrNotFound.
func (s *DeckService) GetDeck(ctx context.Context, profileID, deckID string) (*models.Deck, error) {
	collection, err := decksPath(profileID)
	if err != nil {
		return nil, err
	}
	if blank(deckID) {
		return nil, invalidArgument("deck id is required")
	}
	fields, err := s.Store.Get(ctx, collection, deckID)
	if err != nil {
		return nil, fmt.Errorf("failed to get deck %s: %w", deckID, err)
	}
	return decodeDeck(deckID, fields)
}

// CreateDeck stores a new deck stamped with the current time. Format is
// stored as given. The profile must exist, otherwise docstore.ErrNotFound is
// returned.
func (s *DeckService) CreateDeck(ctx context.Context, profileID, name, format, cardList string) (*models.Deck, error) {
	collection, err := decksPath(profileID)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidArgument("deck name is required")
	}
	if _, err := s.Store.Get(ctx, profilesCollection, profileID); err != nil {
		return nil, fmt.Errorf("failed to get profile %s: %w", profileID, err)
	}

	deck := models.Deck{
		Name:      name,
		Format:    format,
		CardList:  cardList,
		CreatedAt: time.Now().UTC(),
	}
	fields, err := docstore.Encode(deck)
	if err != nil {
		return nil, err
	}
	id, err := s.Store.Add(ctx, collection, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to create deck: %w", err)
	}
	deck.ID = id

	zap.S().Infof("[DECK] created deck %s (%s) for profile %s", id, name, profileID)
	return &deck, nil
}

// UpdateDeck merges the non-nil fields of update into the deck.
func (s *DeckService) UpdateDeck(ctx context.Context, profileID, deckID string, update models.DeckUpdate) error {
	collection, err := decksPath(profileID)
	if err != nil {
		return err
	}
	if blank(deckID) {
		return invalidArgument("deck id is required")
	}
	if update.Empty() {
		return nil
	}

	fields := docstore.Fields{}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return invalidArgument("deck name must not be blank")
		}
		fields["name"] = name
	}
	if update.Format != nil {
		fields["format"] = *update.Format
	}
	if update.CardList != nil {
		fields["cardList"] = *update.CardList
	}

	if err := s.Store.Update(ctx, collection, deckID, fields); err != nil {
		return fmt.Errorf("failed to update deck %s: %w", deckID, err)
	}
	return nil
}

// DeleteDeck deletes every match of the deck and then the deck record.
// Matches go first so none is ever left under a missing deck.
func (s *DeckService) DeleteDeck(ctx context.Context, profileID, deckID string) error {
	if blank(profileID) || blank(deckID) {
		return invalidArgument("profile id and deck id are required")
	}
	decks, err := decksPath(profileID)
	if err != nil {
		return err
	}
	matches, err := matchesPath(profileID, deckID)
	if err != nil {
		return err
	}

	docs, err := s.Store.List(ctx, matches)
	if err != nil {
		return fmt.Errorf("failed to list matches of deck %s: %w", deckID, err)
	}
	for _, doc := range docs {
		if err := s.Store.Delete(ctx, matches, doc.ID); err != nil {
			return fmt.Errorf("failed to delete match %s: %w", doc.ID, err)
		}
	}

	if err := s.Store.Delete(ctx, decks, deckID); err != nil {
		return fmt.Errorf("failed to delete deck %s: %w", deckID, err)
	}

	zap.S().Infof("[DECK] deleted deck %s of profile %s with %d match(es)", deckID, profileID, len(docs))
	return nil
}

func decodeDeck(id string, fields docstore.Fields) (*models.Deck, error) {
	var deck models.Deck
	if err := docstore.Decode(fields, &deck); err != nil {
		return nil, fmt.Errorf("deck %s: %w", id, err)
	}
	deck.ID = id
	return &deck, nil
}
