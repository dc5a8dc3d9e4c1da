// models/card.go
package models

// CardEntry is one parsed line of a deck's card list.
type CardEntry struct {
	Line     int    `json:"line"`
	Quantity int    `json:"quantity"`
	Name     string `json:"name"`
	SetCode  string `json:"setCode"`
	Number   string `json:"number"`
}

// CardImage pairs a parsed entry with its resolved image. ImageURL is empty
// when the lookup failed.
type CardImage struct {
	CardEntry
	ImageURL string `json:"imageUrl"`
}

// CardSet is the subset of a catalog set record the tracker uses.
type CardSet struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Series    string `json:"series"`
	PtcgoCode string `json:"ptcgoCode"`
}

type CardImages struct {
	Small string `json:"small"`
	Large string `json:"large"`
}

// Card is the subset of a catalog card record the tracker uses.
type Card struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Supertype string     `json:"supertype"`
	Subtypes  []string   `json:"subtypes,omitempty"`
	Number    string     `json:"number"`
	Rarity    string     `json:"rarity,omitempty"`
	Set       CardSet    `json:"set"`
	Images    CardImages `json:"images"`
}
