package models

import (
	"time"

	"gorm.io/datatypes"
)

// User is the durable identity behind an anonymous session. Rows are
// created implicitly the first time a session token is seen and removed
// when the owning session is purged.
type User struct {
	ID                uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	Username          string         `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email             string         `gorm:"size:255;not null" json:"email"`
	PasswordHash      string         `gorm:"size:255;not null;default:''" json:"-"`
	DisplayName       string         `gorm:"size:128;not null" json:"display_name"`
	PreferredLanguage string         `gorm:"size:8;not null;default:'ko'" json:"preferred_language"`
	Preferences       datatypes.JSON `gorm:"type:json" json:"preferences"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// Session maps an opaque client-generated token to a user id.
// LastSeen is only advanced when more than five minutes have passed
// since the previous update, to bound write amplification.
type Session struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionID string    `gorm:"type:char(36);uniqueIndex;not null" json:"session_id"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	LastSeen  time.Time `gorm:"not null;index" json:"last_seen"`
}

// Like is a unique (user, quote) relation. Its presence implies the
// quote's likes_count was incremented exactly once for this pair.
type Like struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint64    `gorm:"not null;index:idx_user_like,unique" json:"user_id"`
	QuoteID   uint64    `gorm:"not null;index:idx_user_like,unique" json:"quote_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Bookmark is a unique (user, quote) relation with no counter side effect.
type Bookmark struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint64    `gorm:"not null;index:idx_user_bookmark,unique" json:"user_id"`
	QuoteID   uint64    `gorm:"not null;index:idx_user_bookmark,unique" json:"quote_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// TableName overrides the table name for Session
func (Session) TableName() string {
	return "anonymous_sessions"
}

// TableName overrides the table name for Like
func (Like) TableName() string {
	return "user_likes"
}

// TableName overrides the table name for Bookmark
func (Bookmark) TableName() string {
	return "user_bookmarks"
}
