// services/cardlist.go
package services

import (
	"strconv"
	"strings"

	"deck-tracker/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ParseCardList reads one card per line in the form
// "<quantity> <name...> <set-code> <number>". Lines with fewer than three
// tokens are skipped. The name keeps every token but the last two, so it
// includes the leading quantity.
func ParseCardList(text string) []models.CardEntry {
	lower := cases.Lower(language.Und)

	var entries []models.CardEntry
	for i, line := range strings.Split(text, "\n") {
		tokens := strings.Fields(line)
		n := len(tokens)
		if n < 3 {
			continue
		}

		quantity := 1
		if q, err := strconv.Atoi(tokens[0]); err == nil && q > 0 {
			quantity = q
		}

		entries = append(entries, models.CardEntry{
			Line:     i,
			Quantity: quantity,
			Name:     strings.Join(tokens[:n-2], " "),
			SetCode:  lower.String(tokens[n-2]),
			Number:   tokens[n-1],
		})
	}
	return entries
}
