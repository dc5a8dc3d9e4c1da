package services

import (
	"testing"

	"deck-tracker/models"

	"github.com/stretchr/testify/assert"
)

func TestParseCardList(t *testing.T) {
	text := "4 Pikachu V SWSH045 045\n" +
		"\n" +
		"Pokémon: 12\n" +
		"  2   Charizard ex   sv3pt5   006  \r\n" +
		"Professor's Research svi 189\n"

	entries := ParseCardList(text)
	assert.Equal(t, []models.CardEntry{
		{Line: 0, Quantity: 4, Name: "4 Pikachu V", SetCode: "swsh045", Number: "045"},
		{Line: 3, Quantity: 2, Name: "2 Charizard ex", SetCode: "sv3pt5", Number: "006"},
		{Line: 4, Quantity: 1, Name: "Professor's Research", SetCode: "svi", Number: "189"},
	}, entries)
}

func TestParseCardListSkipsShortLines(t *testing.T) {
	assert.Empty(t, ParseCardList("Pikachu 045"))
	assert.Empty(t, ParseCardList(""))
	assert.Empty(t, ParseCardList("\n\n  \n"))
}

func TestParseCardListMinimalLine(t *testing.T) {
	entries := ParseCardList("Switch SUM 132")
	assert.Equal(t, []models.CardEntry{
		{Line: 0, Quantity: 1, Name: "Switch", SetCode: "sum", Number: "132"},
	}, entries)
}
