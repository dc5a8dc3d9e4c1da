package docstore

import (
	"context"
	"fmt"

	"deck-tracker/config"
)

// Open constructs the backend selected by cfg.Driver. The caller owns the
// returned store and must Close it.
func Open(ctx context.Context, cfg config.Docstore) (Store, error) {
	switch cfg.Driver {
	case config.DriverMemory, "":
		return NewMemoryStore(), nil
	case config.DriverPostgres:
		return OpenPostgres(cfg.DatabaseURL)
	case config.DriverFirestore:
		return OpenFirestore(ctx, cfg.FirestoreProjectID)
	case config.DriverMongo:
		return OpenMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case config.DriverSurreal:
		return OpenSurreal(ctx, SurrealOptions{
			URL:       cfg.SurrealURL,
			Namespace: cfg.SurrealNamespace,
			Database:  cfg.SurrealDatabase,
			Username:  cfg.SurrealUser,
			Password:  cfg.SurrealPass,
		})
	default:
		return nil, fmt.Errorf("unknown document store driver %q", cfg.Driver)
	}
}
