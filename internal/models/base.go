package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base is embedded by every entity. IDs are UUID strings serialized as "_id"
// to keep the wire format the frontend already consumes.
type Base struct {
	ID        string    `gorm:"primaryKey;size:36" json:"_id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

func (b Base) EntryID() string { return b.ID }

func (b *Base) RecordID() string { return b.ID }

func (b *Base) SetRecordID(id string) { b.ID = id }
