// models/profile.go
package models

// Profile is a named local user context. Decks and matches live under it.
type Profile struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}
