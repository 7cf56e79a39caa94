package stores

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Session holds metadata for one chat conversation.
type Session struct {
	gorm.Model
	SessionKey string `gorm:"uniqueIndex;not null"`
	TurnCount  int    `gorm:"default:0"`
}

// TurnRecord is one persisted conversation turn.
type TurnRecord struct {
	gorm.Model
	SessionKey string `gorm:"index;not null"`
	Sequence   int    `gorm:"not null"`
	Role       string `gorm:"not null"`
	Text       string `gorm:"type:text"`
}

// GormStore implements ConversationStore on a relational database. Sequence
// numbers are assigned inside a transaction, so concurrent appends for the
// same key serialize at the database rather than racing in process.
type GormStore struct {
	db *gorm.DB
}

// NewSQLiteStore opens (or creates) a SQLite-backed conversation store.
func NewSQLiteStore(path string) (*GormStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}
	return newGormStore(db)
}

// NewPostgresStore connects to a PostgreSQL-backed conversation store.
func NewPostgresStore(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}
	return newGormStore(db)
}

func newGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&Session{}, &TurnRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database schema: %w", err)
	}
	return &GormStore{db: db}, nil
}

// Get returns the session's turns in sequence order.
func (s *GormStore) Get(ctx context.Context, sessionKey string) ([]Turn, error) {
	var records []TurnRecord
	err := s.db.WithContext(ctx).
		Where("session_key = ?", sessionKey).
		Order("sequence ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch turns: %w", err)
	}

	turns := make([]Turn, len(records))
	for i, rec := range records {
		turns[i] = Turn{Role: rec.Role, Text: rec.Text, CreatedAt: rec.CreatedAt}
	}
	return turns, nil
}

// Append writes a turn with the next sequence number, creating the session
// record on first use.
func (s *GormStore) Append(ctx context.Context, sessionKey string, turn Turn) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Session{}).Where("session_key = ?", sessionKey).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check for session: %w", err)
		}
		if count == 0 {
			if err := tx.Create(&Session{SessionKey: sessionKey}).Error; err != nil {
				return fmt.Errorf("failed to create session record: %w", err)
			}
		}

		if err := tx.Model(&TurnRecord{}).Where("session_key = ?", sessionKey).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count existing turns: %w", err)
		}
		seq := int(count) + 1

		rec := TurnRecord{
			SessionKey: sessionKey,
			Sequence:   seq,
			Role:       turn.Role,
			Text:       turn.Text,
		}
		if err := tx.Create(&rec).Error; err != nil {
			return fmt.Errorf("failed to create turn record: %w", err)
		}

		if err := tx.Model(&Session{}).Where("session_key = ?", sessionKey).Update("turn_count", seq).Error; err != nil {
			return fmt.Errorf("failed to update session turn count: %w", err)
		}
		return nil
	})
}

// Expire deletes the session and its turns. Deletes are unscoped: a
// soft-deleted row would still hold the unique session_key and block the key
// from ever being used again.
func (s *GormStore) Expire(ctx context.Context, sessionKey string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("session_key = ?", sessionKey).Delete(&TurnRecord{}).Error; err != nil {
			return fmt.Errorf("failed to delete turns: %w", err)
		}
		if err := tx.Unscoped().Where("session_key = ?", sessionKey).Delete(&Session{}).Error; err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
		return nil
	})
}

// ExpireIdle removes sessions whose last update is older than olderThan.
func (s *GormStore) ExpireIdle(ctx context.Context, olderThan time.Duration) (int, error) {
	cutoff := time.Now().Add(-olderThan)

	var stale []Session
	err := s.db.WithContext(ctx).Where("updated_at < ?", cutoff).Find(&stale).Error
	if err != nil {
		return 0, fmt.Errorf("failed to find idle sessions: %w", err)
	}

	for _, sess := range stale {
		if err := s.Expire(ctx, sess.SessionKey); err != nil {
			return 0, err
		}
	}
	return len(stale), nil
}

// Ping checks the underlying database connection.
func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the underlying database connection.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
