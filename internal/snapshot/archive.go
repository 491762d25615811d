package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type snapshotRecord struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"index"`
	Payload   []byte    `gorm:"not null"`
}

func (snapshotRecord) TableName() string {
	return "snapshots"
}

// ArchiveSink keeps a rolling history of snapshots in a sqlite database,
// retaining the most recent `keep` rows. Load returns the newest one.
type ArchiveSink struct {
	db   *gorm.DB
	keep int
}

func NewArchiveSink(path string, keep int) (*ArchiveSink, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("opening snapshot archive: %w", err)
	}
	if err := db.AutoMigrate(&snapshotRecord{}); err != nil {
		return nil, fmt.Errorf("migrating snapshot archive: %w", err)
	}
	return &ArchiveSink{db: db, keep: keep}, nil
}

func (s *ArchiveSink) Persist(data *Data) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&snapshotRecord{Payload: payload}).Error; err != nil {
			return err
		}
		if s.keep <= 0 {
			return nil
		}

		var cutoff snapshotRecord
		err := tx.Order("id DESC").Offset(s.keep - 1).First(&cutoff).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return tx.Where("id < ?", cutoff.ID).Delete(&snapshotRecord{}).Error
	})
}

func (s *ArchiveSink) Load() (*Data, error) {
	var record snapshotRecord
	err := s.db.Order("id DESC").First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading snapshot archive: %w", err)
	}

	var data Data
	if err := json.Unmarshal(record.Payload, &data); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	return &data, nil
}
