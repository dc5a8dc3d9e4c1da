package docstore

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore maps collection paths directly onto Firestore's nested
// collections. Deleting a document does not delete its subcollections.
type FirestoreStore struct {
	Client *firestore.Client
}

// OpenFirestore creates a client using application default credentials.
func OpenFirestore(ctx context.Context, projectID string) (*FirestoreStore, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return &FirestoreStore{Client: client}, nil
}

func (s *FirestoreStore) col(collection string) (*firestore.CollectionRef, error) {
	if err := ValidateCollection(collection); err != nil {
		return nil, err
	}
	ref := s.Client.Collection(collection)
	if ref == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, collection)
	}
	return ref, nil
}

func (s *FirestoreStore) Add(ctx context.Context, collection string, data Fields) (string, error) {
	col, err := s.col(collection)
	if err != nil {
		return "", err
	}
	ref, _, err := col.Add(ctx, map[string]any(data))
	if err != nil {
		return "", fmt.Errorf("add to %s: %w", collection, err)
	}
	return ref.ID, nil
}

func (s *FirestoreStore) Get(ctx context.Context, collection, id string) (Fields, error) {
	if err := validateDoc(collection, id); err != nil {
		return nil, err
	}
	col, err := s.col(collection)
	if err != nil {
		return nil, err
	}
	snap, err := col.Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return Fields(snap.Data()), nil
}

func (s *FirestoreStore) List(ctx context.Context, collection string) ([]Document, error) {
	col, err := s.col(collection)
	if err != nil {
		return nil, err
	}
	snaps, err := col.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	return snapshotsToDocuments(snaps), nil
}

func (s *FirestoreStore) Update(ctx context.Context, collection, id string, fields Fields) error {
	if err := validateDoc(collection, id); err != nil {
		return err
	}
	col, err := s.col(collection)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		_, err := s.Get(ctx, collection, id)
		return err
	}
	updates := make([]firestore.Update, 0, len(fields))
	for k, v := range fields {
		updates = append(updates, firestore.Update{FieldPath: firestore.FieldPath{k}, Value: v})
	}
	_, err = col.Doc(id).Update(ctx, updates)
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *FirestoreStore) Delete(ctx context.Context, collection, id string) error {
	if err := validateDoc(collection, id); err != nil {
		return err
	}
	col, err := s.col(collection)
	if err != nil {
		return err
	}
	if _, err := col.Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *FirestoreStore) CollectionGroup(ctx context.Context, name string) ([]Document, error) {
	snaps, err := s.Client.CollectionGroup(name).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("collection group %s: %w", name, err)
	}
	return snapshotsToDocuments(snaps), nil
}

func (s *FirestoreStore) Close() error {
	return s.Client.Close()
}

func snapshotsToDocuments(snaps []*firestore.DocumentSnapshot) []Document {
	out := make([]Document, 0, len(snaps))
	for _, snap := range snaps {
		out = append(out, Document{
			ID:         snap.Ref.ID,
			Collection: relativeCollectionPath(snap.Ref.Parent),
			Data:       Fields(snap.Data()),
		})
	}
	return out
}

// relativeCollectionPath rebuilds "profiles/p1/decks" from a collection
// reference, dropping the projects/.../documents resource prefix.
func relativeCollectionPath(col *firestore.CollectionRef) string {
	var segments []string
	for col != nil {
		segments = append(segments, col.ID)
		if col.Parent == nil {
			break
		}
		segments = append(segments, col.Parent.ID)
		col = col.Parent.Parent
	}
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return strings.Join(segments, "/")
}
