package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// documentRow is the single table every collection is stored in.
type documentRow struct {
	Collection      string            `gorm:"primaryKey;type:text"`
	ID              string            `gorm:"primaryKey;type:text"`
	CollectionGroup string            `gorm:"index;not null"`
	Data            datatypes.JSONMap `gorm:"type:jsonb;not null"`
	CreatedAt       time.Time         `gorm:"autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime"`
}

func (documentRow) TableName() string { return "documents" }

// PostgresStore stores documents as jsonb rows through GORM.
type PostgresStore struct {
	DB *gorm.DB
}

// OpenPostgres connects with dsn and migrates the documents table.
func OpenPostgres(dsn string) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return NewPostgresStore(db)
}

// NewPostgresStore wraps an existing connection.
func NewPostgresStore(db *gorm.DB) (*PostgresStore, error) {
	if err := db.AutoMigrate(&documentRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate documents table: %w", err)
	}
	return &PostgresStore{DB: db}, nil
}

func (s *PostgresStore) Add(ctx context.Context, collection string, data Fields) (string, error) {
	if err := ValidateCollection(collection); err != nil {
		return "", err
	}
	row := documentRow{
		Collection:      collection,
		ID:              uuid.NewString(),
		CollectionGroup: GroupName(collection),
		Data:            datatypes.JSONMap(copyFields(data)),
	}
	if err := s.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return "", fmt.Errorf("insert into %s: %w", collection, err)
	}
	return row.ID, nil
}

func (s *PostgresStore) Get(ctx context.Context, collection, id string) (Fields, error) {
	if err := validateDoc(collection, id); err != nil {
		return nil, err
	}
	var row documentRow
	err := s.DB.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return Fields(row.Data), nil
}

func (s *PostgresStore) List(ctx context.Context, collection string) ([]Document, error) {
	if err := ValidateCollection(collection); err != nil {
		return nil, err
	}
	var rows []documentRow
	if err := s.DB.WithContext(ctx).
		Where("collection = ?", collection).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	return rowsToDocuments(rows), nil
}

func (s *PostgresStore) Update(ctx context.Context, collection, id string, fields Fields) error {
	if err := validateDoc(collection, id); err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row documentRow
		err := tx.Where("collection = ? AND id = ?", collection, id).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("update %s/%s: %w", collection, id, err)
		}
		if row.Data == nil {
			row.Data = datatypes.JSONMap{}
		}
		for k, v := range fields {
			row.Data[k] = v
		}
		if err := tx.Model(&documentRow{}).
			Where("collection = ? AND id = ?", collection, id).
			Update("data", row.Data).Error; err != nil {
			return fmt.Errorf("update %s/%s: %w", collection, id, err)
		}
		return nil
	})
}

func (s *PostgresStore) Delete(ctx context.Context, collection, id string) error {
	if err := validateDoc(collection, id); err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		Delete(&documentRow{}).Error; err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *PostgresStore) CollectionGroup(ctx context.Context, name string) ([]Document, error) {
	var rows []documentRow
	if err := s.DB.WithContext(ctx).
		Where("collection_group = ?", name).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("collection group %s: %w", name, err)
	}
	return rowsToDocuments(rows), nil
}

func (s *PostgresStore) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func rowsToDocuments(rows []documentRow) []Document {
	out := make([]Document, 0, len(rows))
	for _, row := range rows {
		out = append(out, Document{ID: row.ID, Collection: row.Collection, Data: Fields(row.Data)})
	}
	return out
}
