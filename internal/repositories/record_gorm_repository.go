package repositories

import (
	"fmt"
	"lapak/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMRecordStore is a GORM implementation of RecordStore.
type GORMRecordStore struct {
	db *gorm.DB
}

// NewGORMRecordStore creates a new instance of GORMRecordStore.
func NewGORMRecordStore(db *gorm.DB) *GORMRecordStore {
	return &GORMRecordStore{
		db: db,
	}
}

// Read retrieves the stored document for the key. An absent key returns nil
// with no error, so callers can fall back to their empty default.
func (r *GORMRecordStore) Read(profile, name string) ([]byte, error) {
	var record models.Record
	err := r.db.First(&record, "profile = ? AND name = ?", profile, name).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read record %s/%s: %w", profile, name, err)
	}
	return record.Data, nil
}

// Write upserts the document for the key, replacing any prior value.
func (r *GORMRecordStore) Write(profile, name string, data []byte) error {
	record := models.Record{Profile: profile, Name: name, Data: data}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "profile"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to write record %s/%s: %w", profile, name, err)
	}
	return nil
}

// Delete removes the document for the key.
func (r *GORMRecordStore) Delete(profile, name string) error {
	err := r.db.Delete(&models.Record{}, "profile = ? AND name = ?", profile, name).Error
	if err != nil {
		return fmt.Errorf("failed to delete record %s/%s: %w", profile, name, err)
	}
	return nil
}
