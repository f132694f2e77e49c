// Package replylog records every outbound reply a plugin attempts, and whether it
// was delivered, in a SQLite table.
package replylog

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Luo9/Plugin-Hello/lib/database/sqlite"
)

// Reply kinds.
const (
	KindGroup   = "group"
	KindPrivate = "private"
)

// Record is one send attempt. Error is empty when the send succeeded.
type Record struct {
	ID     string    `gorm:"column:id;primaryKey;type:text"`
	Kind   string    `gorm:"column:kind;not null;type:text;index"`
	Target string    `gorm:"column:target;not null;type:text;index"`
	Text   string    `gorm:"column:text;not null;type:text"`
	Error  string    `gorm:"column:error;type:text"`
	SentAt time.Time `gorm:"column:sent_at;not null;index"`
}

// TableName returns the table name for GORM.
func (Record) TableName() string {
	return "hello_replies"
}

// Store holds the GORM DB for reply records.
type Store struct {
	db *gorm.DB
}

// Open opens the reply log at dbPath and migrates its table.
func Open(dbPath string) (*Store, error) {
	db, err := sqlite.Open(dbPath)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Record{}); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("replylog migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Add inserts rec.
func (s *Store) Add(ctx context.Context, rec *Record) error {
	return s.db.WithContext(ctx).Create(rec).Error
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	var out []Record
	err := s.db.WithContext(ctx).Order("sent_at DESC").Limit(limit).Find(&out).Error
	return out, err
}

// Failed returns up to limit records whose send failed, newest first.
func (s *Store) Failed(ctx context.Context, limit int) ([]Record, error) {
	var out []Record
	err := s.db.WithContext(ctx).Where("error <> ''").Order("sent_at DESC").Limit(limit).Find(&out).Error
	return out, err
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
