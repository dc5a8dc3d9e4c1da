// services/profile_service.go
package services

import (
	"context"
	"fmt"
	"strings"

	"deck-tracker/docstore"
	"deck-tracker/models"

	"go.uber.org/zap"
)

type ProfileService struct {
	Store docstore.Store
	Decks *DeckService
}

func NewProfileService(store docstore.Store, decks *DeckService) *ProfileService {
	return &ProfileService{Store: store, Decks: decks}
}

// CreateProfile stores a new profile and returns it with its generated id.
func (s *ProfileService) CreateProfile(ctx context.Context, name, avatar string) (*models.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidArgument("profile name is required")
	}

	profile := models.Profile{Name: name, Avatar: strings.TrimSpace(avatar)}
	fields, err := docstore.Encode(profile)
	if err != nil {
		return nil, err
	}
	id, err := s.Store.Add(ctx, profilesCollection, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	profile.ID = id

	zap.S().Infof("[PROFILE] created profile %s (%s)", id, name)
	return &profile, nil
}

// GetProfiles returns every profile in store order.
func (s *ProfileService) GetProfiles(ctx context.Context) ([]models.Profile, error) {
	docs, err := s.Store.List(ctx, profilesCollection)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	profiles := make([]models.Profile, 0, len(docs))
	for _, doc := range docs {
		var p models.Profile
		if err := docstore.Decode(doc.Data, &p); err != nil {
			return nil, fmt.Errorf("profile %s: %w", doc.ID, err)
		}
		p.ID = doc.ID
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// DeleteProfile removes every deck of the profile (and with them their
// matches) before removing the profile record itself. A failure part way
// leaves the remaining records for the orphan sweeper.
func (s *ProfileService) DeleteProfile(ctx context.Context, id string) error {
	if blank(id) {
		return invalidArgument("profile id is required")
	}

	decks, err := s.Decks.GetDecks(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to list decks of profile %s: %w", id, err)
	}
	for _, deck := range decks {
		if err := s.Decks.DeleteDeck(ctx, id, deck.ID); err != nil {
			return fmt.Errorf("failed to delete deck %s of profile %s: %w", deck.ID, id, err)
		}
	}

	if err := s.Store.Delete(ctx, profilesCollection, id); err != nil {
		return fmt.Errorf("failed to delete profile %s: %w", id, err)
	}

	zap.S().Infof("[PROFILE] deleted profile %s with %d deck(s)", id, len(decks))
	return nil
}
