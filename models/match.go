// models/match.go
package models

import "time"

type MatchResult string

const (
	ResultWin  MatchResult = "win"
	ResultDraw MatchResult = "draw"
	ResultLoss MatchResult = "loss"
)

// Valid reports whether r is one of win, draw or loss.
func (r MatchResult) Valid() bool {
	switch r {
	case ResultWin, ResultDraw, ResultLoss:
		return true
	}
	return false
}

// Match records the outcome of one game played with a deck. DeckID mirrors
// the deck segment of the match's storage path.
type Match struct {
	ID       string      `json:"id"`
	Opponent string      `json:"opponent"`
	Result   MatchResult `json:"result"`
	Notes    string      `json:"notes"`
	Date     time.Time   `json:"date"`
	DeckID   string      `json:"deckId"`
}
