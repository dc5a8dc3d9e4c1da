// services/stats.go
package services

import (
	"math"

	"deck-tracker/models"
)

// AllDecks selects every deck in ComputeStats. An empty filter does too.
const AllDecks = "all"

// ComputeStats counts the outcomes of matches, restricted to deckFilter
// unless it is empty or AllDecks. WinratePercent is rounded to two decimals
// and is 0 when there are no matches.
func ComputeStats(matches []models.Match, deckFilter string) models.Stats {
	var stats models.Stats
	for _, m := range matches {
		if deckFilter != "" && deckFilter != AllDecks && m.DeckID != deckFilter {
			continue
		}
		switch m.Result {
		case models.ResultWin:
			stats.Wins++
		case models.ResultDraw:
			stats.Draws++
		case models.ResultLoss:
			stats.Losses++
		default:
			continue
		}
		stats.Total++
	}
	if stats.Total > 0 {
		stats.WinratePercent = round2(float64(stats.Wins) / float64(stats.Total) * 100)
	}
	return stats
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
