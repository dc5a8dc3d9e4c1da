// Package docstore is a small hierarchical document store abstraction.
//
// Collections are addressed by slash-separated paths with an odd number of
// segments, e.g. "profiles" or "profiles/{profileId}/decks". Each backend
// persists schemaless documents (Fields) under those paths.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidPath is returned for malformed collection paths or ids.
	ErrInvalidPath = errors.New("invalid document path")
)

// Fields is the schemaless payload of a document.
type Fields map[string]any

// Document is a stored record together with its location.
type Document struct {
	ID         string
	Collection string
	Data       Fields
}

// Store is implemented by every backend.
type Store interface {
	// Add inserts data into collection under a generated id.
	Add(ctx context.Context, collection string, data Fields) (string, error)
	// Get returns the document or ErrNotFound.
	Get(ctx context.Context, collection, id string) (Fields, error)
	// List returns every document of a collection. An empty or unknown
	// collection yields an empty slice.
	List(ctx context.Context, collection string) ([]Document, error)
	// Update merges fields into an existing document. Keys not present in
	// fields are left untouched.
	Update(ctx context.Context, collection, id string, fields Fields) error
	// Delete removes a document. Deleting a missing document is not an error.
	Delete(ctx context.Context, collection, id string) error
	// CollectionGroup returns the documents of every collection whose last
	// path segment equals name.
	CollectionGroup(ctx context.Context, name string) ([]Document, error)
	Close() error
}

// Path joins segments into a collection or document path.
func Path(segments ...string) (string, error) {
	if len(segments) == 0 {
		return "", fmt.Errorf("%w: no segments", ErrInvalidPath)
	}
	for i, s := range segments {
		if strings.TrimSpace(s) == "" || strings.Contains(s, "/") {
			return "", fmt.Errorf("%w: segment %d is %q", ErrInvalidPath, i, s)
		}
	}
	return strings.Join(segments, "/"), nil
}

// ValidateCollection checks that collection is a well formed collection path.
func ValidateCollection(collection string) error {
	segments := strings.Split(collection, "/")
	if len(segments)%2 == 0 {
		return fmt.Errorf("%w: %q addresses a document, not a collection", ErrInvalidPath, collection)
	}
	_, err := Path(segments...)
	return err
}

// GroupName returns the last segment of a collection path.
func GroupName(collection string) string {
	if i := strings.LastIndex(collection, "/"); i >= 0 {
		return collection[i+1:]
	}
	return collection
}

// ParentDocID returns the id of the document that sits directly under the
// collection segment called name within the collection path. For
// "profiles/p1/decks/d1/matches", ParentDocID(path, "decks") is "d1".
func ParentDocID(collection, name string) (string, bool) {
	segments := strings.Split(collection, "/")
	for i := 0; i+1 < len(segments); i += 2 {
		if segments[i] == name {
			return segments[i+1], true
		}
	}
	return "", false
}

// Encode turns a JSON-tagged struct into Fields. The "id" key is dropped
// because ids live in the document path, not in the payload.
func Encode(v any) (Fields, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var fields Fields
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	delete(fields, "id")
	return fields, nil
}

// Decode fills the JSON-tagged struct pointed to by v from fields.
func Decode(fields Fields, v any) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}

func copyFields(in Fields) Fields {
	out := make(Fields, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func validateDoc(collection, id string) error {
	if err := ValidateCollection(collection); err != nil {
		return err
	}
	if strings.TrimSpace(id) == "" || strings.Contains(id, "/") {
		return fmt.Errorf("%w: document id %q", ErrInvalidPath, id)
	}
	return nil
}
