// services/errors.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"deck-tracker/docstore"
)

// ErrInvalidArgument is returned when a required identifier or value is
// missing or malformed.
var ErrInvalidArgument = errors.New("invalid argument")

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

const (
	profilesCollection = "profiles"
	decksSegment       = "decks"
	matchesSegment     = "matches"
)

// decksPath is profiles/{profileID}/decks.
func decksPath(profileID string) (string, error) {
	return collectionPath(profilesCollection, profileID, decksSegment)
}

// matchesPath is profiles/{profileID}/decks/{deckID}/matches.
func matchesPath(profileID, deckID string) (string, error) {
	return collectionPath(profilesCollection, profileID, decksSegment, deckID, matchesSegment)
}

func collectionPath(segments ...string) (string, error) {
	p, err := docstore.Path(segments...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return p, nil
}
