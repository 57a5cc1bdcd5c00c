package storage

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"waitlist/internal/constant"
	"waitlist/internal/models"
)

// GormStore keeps documents in the documents table. Compare-and-set relies on
// a conditional UPDATE on the version column, so it is atomic on any SQL
// backend gorm supports.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Get(ctx context.Context, collection, key string) (Document, error) {
	var row models.Document
	err := s.db.WithContext(ctx).
		Where("collection = ? AND doc_key = ?", collection, key).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Document{}, constant.ErrNotFound
	}
	if err != nil {
		return Document{}, constant.NewStoreError("get", err)
	}
	return toDocument(row), nil
}

// Set is an upsert: concurrent writers of a new key both succeed and the last
// one wins.
func (s *GormStore) Set(ctx context.Context, collection, key string, body []byte) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "collection"}, {Name: "doc_key"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"body":       gorm.Expr("excluded.body"),
				"version":    gorm.Expr("documents.version + 1"),
				"updated_at": gorm.Expr("excluded.updated_at"),
			}),
		}).
		Create(&models.Document{
			Collection: collection,
			Key:        key,
			Body:       datatypes.JSON(body),
			Version:    1,
		}).Error
	if err != nil {
		return constant.NewStoreError("set", err)
	}
	return nil
}

func (s *GormStore) CompareAndSet(ctx context.Context, collection, key string, expectedVersion int64, body []byte) error {
	db := s.db.WithContext(ctx)

	if expectedVersion == 0 {
		res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.Document{
			Collection: collection,
			Key:        key,
			Body:       datatypes.JSON(body),
			Version:    1,
		})
		if res.Error != nil {
			return constant.NewStoreError("compare and set", res.Error)
		}
		if res.RowsAffected == 0 {
			return constant.ErrVersionConflict
		}
		return nil
	}

	res := db.Model(&models.Document{}).
		Where("collection = ? AND doc_key = ? AND version = ?", collection, key, expectedVersion).
		Updates(map[string]interface{}{
			"body":    datatypes.JSON(body),
			"version": expectedVersion + 1,
		})
	if res.Error != nil {
		return constant.NewStoreError("compare and set", res.Error)
	}
	if res.RowsAffected == 0 {
		return constant.ErrVersionConflict
	}
	return nil
}

func (s *GormStore) List(ctx context.Context, collection string) ([]Document, error) {
	var rows []models.Document
	if err := s.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("doc_key ASC").
		Find(&rows).Error; err != nil {
		return nil, constant.NewStoreError("list", err)
	}

	out := make([]Document, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDocument(row))
	}
	return out, nil
}

func toDocument(row models.Document) Document {
	return Document{
		Key:     row.Key,
		Body:    []byte(row.Body),
		Version: row.Version,
	}
}
