package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoDocument struct {
	ID              string    `bson:"_id"`
	Collection      string    `bson:"collection"`
	CollectionGroup string    `bson:"collection_group"`
	Data            bson.M    `bson:"data"`
	CreatedAt       time.Time `bson:"created_at"`
}

// MongoStore keeps every collection in one "documents" collection, keyed by
// path, mirroring the postgres layout.
type MongoStore struct {
	client *mongo.Client
	docs   *mongo.Collection
}

// OpenMongo connects to uri and ensures the lookup indexes exist.
func OpenMongo(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	docs := client.Database(database).Collection("documents")
	_, err = docs.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "collection", Value: 1}, {Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "collection_group", Value: 1}}},
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to create mongo indexes: %w", err)
	}
	return &MongoStore{client: client, docs: docs}, nil
}

func (s *MongoStore) Add(ctx context.Context, collection string, data Fields) (string, error) {
	if err := ValidateCollection(collection); err != nil {
		return "", err
	}
	doc := mongoDocument{
		ID:              uuid.NewString(),
		Collection:      collection,
		CollectionGroup: GroupName(collection),
		Data:            bson.M(copyFields(data)),
		CreatedAt:       time.Now().UTC(),
	}
	if _, err := s.docs.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("insert into %s: %w", collection, err)
	}
	return doc.ID, nil
}

func (s *MongoStore) Get(ctx context.Context, collection, id string) (Fields, error) {
	if err := validateDoc(collection, id); err != nil {
		return nil, err
	}
	var doc mongoDocument
	err := s.docs.FindOne(ctx, bson.M{"_id": id, "collection": collection}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return Fields(doc.Data), nil
}

func (s *MongoStore) List(ctx context.Context, collection string) ([]Document, error) {
	if err := ValidateCollection(collection); err != nil {
		return nil, err
	}
	return s.find(ctx, bson.M{"collection": collection})
}

func (s *MongoStore) Update(ctx context.Context, collection, id string, fields Fields) error {
	if err := validateDoc(collection, id); err != nil {
		return err
	}
	set := bson.M{}
	for k, v := range fields {
		set["data."+k] = v
	}
	filter := bson.M{"_id": id, "collection": collection}
	if len(set) == 0 {
		_, err := s.Get(ctx, collection, id)
		return err
	}
	res, err := s.docs.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, collection, id string) error {
	if err := validateDoc(collection, id); err != nil {
		return err
	}
	if _, err := s.docs.DeleteOne(ctx, bson.M{"_id": id, "collection": collection}); err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *MongoStore) CollectionGroup(ctx context.Context, name string) ([]Document, error) {
	return s.find(ctx, bson.M{"collection_group": name})
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) find(ctx context.Context, filter bson.M) ([]Document, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := s.docs.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find documents: %w", err)
	}
	var docs []mongoDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("read documents: %w", err)
	}
	out := make([]Document, 0, len(docs))
	for _, d := range docs {
		out = append(out, Document{ID: d.ID, Collection: d.Collection, Data: Fields(d.Data)})
	}
	return out, nil
}
