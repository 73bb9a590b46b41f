// internal/infrastructure/database/relational/store.go
package relational

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/your-org/storefront/internal/infrastructure/storage"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record is one persisted JSON document of a session
type Record struct {
	SessionID string    `gorm:"primaryKey;size:64" json:"session_id"`
	Key       string    `gorm:"column:record_key;primaryKey;size:64" json:"key"`
	Value     []byte    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`
}

// TableName specifies the table name for Record
func (Record) TableName() string {
	return "storefront_records"
}

// Store persists session state in a single SQL table
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

var _ storage.Store = (*Store)(nil)

// NewStore creates a gorm-backed store. Call Migrate before first use.
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Migrate creates or updates the records table
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&Record{}); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", Record{}.TableName(), err)
	}
	return nil
}

// Get returns the stored bytes for key, reporting false when absent
func (s *Store) Get(ctx context.Context, namespace, key string) ([]byte, bool, error) {
	var rec Record
	err := s.db.WithContext(ctx).
		Where("session_id = ? AND record_key = ?", namespace, key).
		Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return rec.Value, true, nil
}

// Set upserts key
func (s *Store) Set(ctx context.Context, namespace, key string, value []byte) error {
	return s.upsert(s.db.WithContext(ctx), namespace, key, value)
}

// SetMany upserts all values in one transaction
func (s *Store) SetMany(ctx context.Context, namespace string, values map[string][]byte) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for k, v := range values {
			if err := s.upsert(tx, namespace, k, v); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) upsert(db *gorm.DB, namespace, key string, value []byte) error {
	rec := Record{
		SessionID: namespace,
		Key:       key,
		Value:     value,
		UpdatedAt: s.now(),
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "record_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Health pings the database
func (s *Store) Health(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the connection pool
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
