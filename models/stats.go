// models/stats.go
package models

// Stats is the win/draw/loss aggregate over a set of matches.
type Stats struct {
	Total          int     `json:"total"`
	Wins           int     `json:"wins"`
	Draws          int     `json:"draws"`
	Losses         int     `json:"losses"`
	WinratePercent float64 `json:"winratePercent"`
}

// DeckStats is the aggregate for a single deck.
type DeckStats struct {
	DeckID   string `json:"deckId"`
	DeckName string `json:"deckName"`
	Format   string `json:"format"`
	Stats
}

// MatchHistoryEntry is a match annotated with the name of its deck.
type MatchHistoryEntry struct {
	Match
	DeckName string `json:"deckName"`
}

// StatsReport is the overall aggregate plus a breakdown per deck.
type StatsReport struct {
	Overall Stats       `json:"overall"`
	Decks   []DeckStats `json:"decks"`
}
