package docstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/models"
)

const surrealTable = "documents"

type surrealDocument struct {
	ID              *models.RecordID `json:"id,omitempty"`
	DocID           string           `json:"doc_id"`
	Collection      string           `json:"collection"`
	CollectionGroup string           `json:"collection_group"`
	Data            map[string]any   `json:"data"`
	CreatedAt       int64            `json:"created_at"`
}

// SurrealStore keeps documents in a single SurrealDB table using
// parameterized SurrealQL.
type SurrealStore struct {
	db *surrealdb.DB
}

// SurrealOptions carries the connection settings for OpenSurreal.
type SurrealOptions struct {
	URL       string
	Namespace string
	Database  string
	Username  string
	Password  string
}

func OpenSurreal(ctx context.Context, opts SurrealOptions) (*SurrealStore, error) {
	db, err := surrealdb.FromEndpointURLString(ctx, opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
	}
	if opts.Username != "" && opts.Password != "" {
		if _, err := db.SignIn(ctx, map[string]any{
			"user": opts.Username,
			"pass": opts.Password,
		}); err != nil {
			_ = db.Close(ctx)
			return nil, fmt.Errorf("failed to authenticate: %w", err)
		}
	}
	if err := db.Use(ctx, opts.Namespace, opts.Database); err != nil {
		_ = db.Close(ctx)
		return nil, fmt.Errorf("failed to use namespace/database: %w", err)
	}
	return &SurrealStore{db: db}, nil
}

func (s *SurrealStore) Add(ctx context.Context, collection string, data Fields) (string, error) {
	if err := ValidateCollection(collection); err != nil {
		return "", err
	}
	id := uuid.NewString()
	content := surrealDocument{
		DocID:           id,
		Collection:      collection,
		CollectionGroup: GroupName(collection),
		Data:            copyFields(data),
		CreatedAt:       time.Now().UnixNano(),
	}
	_, err := s.query(ctx, "CREATE $rid CONTENT $content", map[string]any{
		"rid":     recordID(id),
		"content": content,
	})
	if err != nil {
		return "", fmt.Errorf("insert into %s: %w", collection, err)
	}
	return id, nil
}

func (s *SurrealStore) Get(ctx context.Context, collection, id string) (Fields, error) {
	if err := validateDoc(collection, id); err != nil {
		return nil, err
	}
	docs, err := s.query(ctx, "SELECT * FROM $rid WHERE collection = $collection", map[string]any{
		"rid":        recordID(id),
		"collection": collection,
	})
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	if len(docs) == 0 {
		return nil, ErrNotFound
	}
	return Fields(docs[0].Data), nil
}

func (s *SurrealStore) List(ctx context.Context, collection string) ([]Document, error) {
	if err := ValidateCollection(collection); err != nil {
		return nil, err
	}
	docs, err := s.query(ctx,
		"SELECT * FROM type::table($table) WHERE collection = $collection ORDER BY created_at ASC",
		map[string]any{"table": surrealTable, "collection": collection})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	return surrealToDocuments(docs), nil
}

func (s *SurrealStore) Update(ctx context.Context, collection, id string, fields Fields) error {
	if err := validateDoc(collection, id); err != nil {
		return err
	}
	docs, err := s.query(ctx,
		"UPDATE $rid MERGE $patch WHERE collection = $collection RETURN AFTER",
		map[string]any{
			"rid":        recordID(id),
			"patch":      map[string]any{"data": map[string]any(fields)},
			"collection": collection,
		})
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	if len(docs) == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SurrealStore) Delete(ctx context.Context, collection, id string) error {
	if err := validateDoc(collection, id); err != nil {
		return err
	}
	_, err := s.query(ctx, "DELETE $rid WHERE collection = $collection", map[string]any{
		"rid":        recordID(id),
		"collection": collection,
	})
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *SurrealStore) CollectionGroup(ctx context.Context, name string) ([]Document, error) {
	docs, err := s.query(ctx,
		"SELECT * FROM type::table($table) WHERE collection_group = $group ORDER BY created_at ASC",
		map[string]any{"table": surrealTable, "group": name})
	if err != nil {
		return nil, fmt.Errorf("collection group %s: %w", name, err)
	}
	return surrealToDocuments(docs), nil
}

func (s *SurrealStore) Close() error {
	return s.db.Close(context.Background())
}

func (s *SurrealStore) query(ctx context.Context, sql string, vars map[string]any) ([]surrealDocument, error) {
	results, err := surrealdb.Query[[]surrealDocument](ctx, s.db, sql, vars)
	if err != nil {
		return nil, err
	}
	if results == nil || len(*results) == 0 {
		return nil, nil
	}
	return (*results)[0].Result, nil
}

func recordID(id string) models.RecordID {
	return models.RecordID{Table: surrealTable, ID: id}
}

func surrealToDocuments(docs []surrealDocument) []Document {
	out := make([]Document, 0, len(docs))
	for _, d := range docs {
		out = append(out, Document{ID: d.DocID, Collection: d.Collection, Data: Fields(d.Data)})
	}
	return out
}
