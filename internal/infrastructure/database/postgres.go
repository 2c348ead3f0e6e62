package database

import (
	"log"
	"time"

	"github.com/tofrito/till-api/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// KVEntry is the single persistence table. Each row holds one of the
// till's serialized blobs (ledger, ticket counter, kitchen done set).
type KVEntry struct {
	Key       string `gorm:"primaryKey;size:255"`
	Value     []byte `gorm:"type:bytea"`
	UpdatedAt time.Time
}

// TableName returns the table name for the KVEntry model
func (KVEntry) TableName() string {
	return "kv_entries"
}

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	gormLogger := logger.Default.LogMode(logger.Silent)
	if cfg.Debug {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// One till, one writer: a small pool is plenty.
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// AutoMigrate runs database migrations
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")
	return db.AutoMigrate(&KVEntry{})
}
