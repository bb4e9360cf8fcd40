// Package store implements the durable key/value layer backing the whole
// application plus the in-memory cache-aside accessor sitting in front of it.
// Every logical collection (users, crop history, listings) is one JSON blob
// under one key, mirroring the storage layout of the original client.
package store

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// ErrUnavailable marks a durable-store fault (as opposed to a validation
// error). Handlers map it to 503.
var ErrUnavailable = errors.New("storage unavailable")

// KV is the durable half of the persistence layer. Absence is not an error:
// Read reports found=false and callers default to an empty collection.
type KV interface {
	Read(key string) (value []byte, found bool, err error)
	Write(key string, value []byte) error
	Delete(key string) error
}

// Record is one durable key/value row.
type Record struct {
	Key   string `gorm:"primaryKey"`
	Value []byte
}

func (Record) TableName() string { return "records" }

// GormKV is the GORM-backed durable store. The default driver is an embedded
// SQLite file; a Postgres DSN switches it to a real database.
type GormKV struct {
	db *gorm.DB
}

// Connect opens the durable store from the environment and fatals on failure,
// matching how the server treats a missing database at boot.
//
//   - DATABASE_URL set: Postgres
//   - otherwise: SQLite file at HH_STORAGE_PATH (default "harvesthub.db")
func Connect() *GormKV {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		kv, err := OpenPostgres(dsn)
		if err != nil {
			log.Fatal("Failed to connect to database: ", err)
		}
		log.Println("Connected to Postgres store")
		return kv
	}

	path := os.Getenv("HH_STORAGE_PATH")
	if path == "" {
		path = "harvesthub.db"
	}
	kv, err := OpenSQLite(path)
	if err != nil {
		log.Fatal("Failed to open storage file: ", err)
	}
	log.Printf("Opened storage file %s", path)
	return kv
}

// OpenSQLite opens (or creates) the single-file local store.
func OpenSQLite(path string) (*GormKV, error) {
	return open(sqlite.Open(path))
}

// OpenPostgres opens the store against a Postgres database.
func OpenPostgres(dsn string) (*GormKV, error) {
	kv, err := open(postgres.Open(dsn))
	if err != nil {
		return nil, err
	}

	sqlDB, err := kv.db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(20)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return kv, nil
}

func open(dialector gorm.Dialector) (*GormKV, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			logger.Config{
				SlowThreshold:             100 * time.Millisecond,
				LogLevel:                  logger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("migrating records table: %w", err)
	}
	return &GormKV{db: db}, nil
}

func (s *GormKV) Read(key string) ([]byte, bool, error) {
	var rec Record
	err := s.db.First(&rec, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: reading %q: %v", ErrUnavailable, key, err)
	}
	return rec.Value, true, nil
}

func (s *GormKV) Write(key string, value []byte) error {
	rec := Record{Key: key, Value: value}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("%w: writing %q: %v", ErrUnavailable, key, err)
	}
	return nil
}

func (s *GormKV) Delete(key string) error {
	if err := s.db.Delete(&Record{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("%w: deleting %q: %v", ErrUnavailable, key, err)
	}
	return nil
}
