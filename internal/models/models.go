package models

import (
	"time"

	"gorm.io/datatypes"
)

// Document is one stored JSON document. Collection and Key form the primary key.
type Document struct {
	Collection string         `gorm:"primaryKey;size:64"`
	Key        string         `gorm:"primaryKey;column:doc_key;size:255"`
	Body       datatypes.JSON `gorm:"not null"`
	Version    int64          `gorm:"not null;default:1"` // Bumped on every write, 0 is never stored
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Document) TableName() string {
	return "documents"
}
