package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// UsageCount aggregates simulate calls per classification. Only counters are
// stored; scenario text never reaches the database.
type UsageCount struct {
	Classification string `gorm:"primaryKey;size:64"`
	Count          int64
	UpdatedAt      time.Time
}

// Database wraps the GORM handle for the usage ledger.
type Database struct {
	gorm *gorm.DB
	mu   sync.Mutex
}

// Open initializes the SQLite-backed ledger at the provided path.
func Open(path string, silent bool) (*Database, error) {
	cfg := &gorm.Config{}
	if silent {
		cfg.Logger = logger.Default.LogMode(logger.Silent)
	}
	db, err := gorm.Open(sqlite.Open(path), cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(&UsageCount{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	if err := db.Exec("PRAGMA journal_mode=WAL").Error; err != nil {
		logrus.WithError(err).Warn("enable WAL mode")
	}
	return &Database{gorm: db}, nil
}

// Close closes the underlying database connection.
func (d *Database) Close() error {
	if d == nil {
		return nil
	}
	sqlDB, err := d.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// RecordCall increments the counter for the given classification.
func (d *Database) RecordCall(classification string) error {
	if classification == "" {
		return errors.New("classification is empty")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gorm.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "classification"}},
		DoUpdates: clause.Assignments(map[string]any{
			"count":      gorm.Expr("count + 1"),
			"updated_at": time.Now(),
		}),
	}).Create(&UsageCount{Classification: classification, Count: 1, UpdatedAt: time.Now()}).Error
}

// Totals returns the per-classification call counts.
func (d *Database) Totals() (map[string]int64, error) {
	var rows []UsageCount
	if err := d.gorm.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load usage counts: %w", err)
	}
	totals := make(map[string]int64, len(rows))
	for _, row := range rows {
		totals[row.Classification] = row.Count
	}
	return totals, nil
}
