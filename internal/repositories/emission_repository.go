// Package repositories holds the gorm-backed persistence collaborators.
package repositories

import (
	"context"
	"fmt"

	"carbontrack/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EmissionRepository persists per-user running totals.
type EmissionRepository interface {
	// LoadRecords returns the user's records ordered by position.
	LoadRecords(ctx context.Context, userID string) ([]models.EmissionRecord, error)
	// UpsertRecord inserts the record or updates it on (user_id, category).
	UpsertRecord(ctx context.Context, record *models.EmissionRecord) error
	// SeedRecords stores a full ledger for a user that has none yet.
	SeedRecords(ctx context.Context, records []models.EmissionRecord) error
	// ResetAll sets every emissions total of the user to zero.
	ResetAll(ctx context.Context, userID string) error
}

type emissionRepository struct {
	db *gorm.DB
}

// NewEmissionRepository creates a new EmissionRepository.
func NewEmissionRepository(db *gorm.DB) EmissionRepository {
	return &emissionRepository{db: db}
}

func (r *emissionRepository) LoadRecords(ctx context.Context, userID string) ([]models.EmissionRecord, error) {
	var rows []models.EmissionRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("position ASC").
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load emission records: %w", err)
	}
	return rows, nil
}

func (r *emissionRepository) UpsertRecord(ctx context.Context, record *models.EmissionRecord) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "category"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"emissions", "factor", "name", "color", "unit", "position", "updated_at",
		}),
	}).Create(record).Error
	if err != nil {
		return fmt.Errorf("upsert emission record %s: %w", record.Category, err)
	}
	return nil
}

func (r *emissionRepository) SeedRecords(ctx context.Context, records []models.EmissionRecord) error {
	if len(records) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&records).Error
	if err != nil {
		return fmt.Errorf("seed emission records: %w", err)
	}
	return nil
}

func (r *emissionRepository) ResetAll(ctx context.Context, userID string) error {
	err := r.db.WithContext(ctx).
		Model(&models.EmissionRecord{}).
		Where("user_id = ?", userID).
		Update("emissions", 0).Error
	if err != nil {
		return fmt.Errorf("reset emission records: %w", err)
	}
	return nil
}
