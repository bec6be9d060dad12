package rating

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// FailureRecord is a beatmap that failed to load during a backfill run.
type FailureRecord struct {
	ID          uint      `gorm:"column:id;primaryKey"`
	RunID       string    `gorm:"column:run_id;size:36;index"`
	BeatmapHash string    `gorm:"column:beatmap_hash;size:32;index"`
	Path        string    `gorm:"column:path;size:1024"`
	Error       string    `gorm:"column:error;size:1024"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

// TableName implements gorm's tabler interface.
func (FailureRecord) TableName() string {
	return "rating_failures"
}

// Ledger persists rating failures so beatmaps that never load can be found later.
type Ledger struct {
	db *gorm.DB
}

// NewLedger creates a ledger on db.
func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// Migrate creates or updates the rating_failures table.
func (l *Ledger) Migrate() error {
	return l.db.AutoMigrate(&FailureRecord{})
}

// Record stores the failures of one run.
func (l *Ledger) Record(ctx context.Context, runID string, failures []Failure) error {
	if len(failures) == 0 {
		return nil
	}
	now := time.Now()
	records := make([]FailureRecord, len(failures))
	for i, f := range failures {
		records[i] = FailureRecord{
			RunID:       runID,
			BeatmapHash: f.Hash,
			Path:        f.Path,
			Error:       f.Err.Error(),
			CreatedAt:   now,
		}
	}
	return l.db.WithContext(ctx).CreateInBatches(records, 100).Error
}

// Failures returns every recorded failure for a beatmap, newest first.
func (l *Ledger) Failures(ctx context.Context, hash string) ([]FailureRecord, error) {
	var records []FailureRecord
	err := l.db.WithContext(ctx).
		Where("beatmap_hash = ?", hash).
		Order("created_at DESC, id DESC").
		Find(&records).Error
	return records, err
}
