package services_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/localnerve/author-clock/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	// An in-memory SQLite database exists per connection; pin the pool to
	// one connection so every session sees the same schema.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying SQL DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Quote{},
		&models.DailyQuote{},
		&models.Like{},
		&models.Bookmark{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// createQuote inserts an approved quote for tests
func createQuote(t *testing.T, db *gorm.DB, text, author, language string) *models.Quote {
	t.Helper()
	quote := models.Quote{
		Text:           text,
		Author:         author,
		Language:       language,
		IsPublicDomain: true,
		IsApproved:     true,
	}
	if err := db.Create(&quote).Error; err != nil {
		t.Fatalf("Failed to create quote: %v", err)
	}
	return &quote
}

// memoryStore is an in-process cache.Store used to observe cache
// interactions without a redis instance.
type memoryStore struct {
	mu      sync.Mutex
	entries map[string][]byte
	getErr  error
	setErr  error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{entries: make(map[string][]byte)}
}

func (m *memoryStore) GetJSON(_ context.Context, key string, dest interface{}) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return false, m.getErr
	}
	data, ok := m.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (m *memoryStore) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = data
	return nil
}

func (m *memoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *memoryStore) Ping(_ context.Context) error { return nil }

func (m *memoryStore) Close() error { return nil }

func (m *memoryStore) clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string][]byte)
}

func (m *memoryStore) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
