// models/deck.go
package models

import "time"

const (
	FormatStandard = "Standard"
	FormatExpanded = "Expanded"
)

// Deck is a named card list owned by one profile. CardList is freeform text,
// one "<quantity> <name> <set-code> <number>" entry per line.
type Deck struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Format    string    `json:"format"`
	CardList  string    `json:"cardList"`
	CreatedAt time.Time `json:"createdAt"`
}

// DeckUpdate carries the fields to merge into a deck. Nil fields are left
// untouched.
type DeckUpdate struct {
	Name     *string `json:"name,omitempty"`
	Format   *string `json:"format,omitempty"`
	CardList *string `json:"cardList,omitempty"`
}

// Empty reports whether the update changes nothing.
func (u DeckUpdate) Empty() bool {
	return u.Name == nil && u.Format == nil && u.CardList == nil
}
