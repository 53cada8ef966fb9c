package models

import (
	"time"
)

// Quote represents a single quotation in the corpus.
// LikesCount and ViewsCount are denormalized; LikesCount is maintained
// transactionally by the like service and must always equal the number
// of Like rows referencing the quote.
type Quote struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Text           string    `gorm:"type:text;not null" json:"text"`
	Author         string    `gorm:"size:255;not null;index" json:"author"`
	Source         *string   `gorm:"size:255" json:"source"`
	SourceURL      *string   `gorm:"size:512" json:"source_url"`
	Language       string    `gorm:"size:8;not null;default:'ko';index" json:"language"`
	Category       *string   `gorm:"size:64" json:"category"`
	IsPublicDomain bool      `gorm:"not null;default:true" json:"is_public_domain"`
	IsApproved     bool      `gorm:"not null;default:false;index" json:"is_approved"`
	SubmittedBy    *uint64   `json:"submitted_by"`
	LikesCount     int64     `gorm:"not null;default:0" json:"likes_count"`
	ViewsCount     int64     `gorm:"not null;default:0" json:"views_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DailyQuote pins one quote to one (date, language) pair. The date is
// stored as an ISO YYYY-MM-DD string so the unique index behaves the
// same across all supported dialects.
type DailyQuote struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	QuoteID   uint64    `gorm:"not null" json:"quote_id"`
	Date      string    `gorm:"type:char(10);not null;index:idx_daily_quote_date_language,unique" json:"date"`
	Language  string    `gorm:"size:8;not null;index:idx_daily_quote_date_language,unique" json:"language"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name for Quote
func (Quote) TableName() string {
	return "quotes"
}

// TableName overrides the table name for DailyQuote
func (DailyQuote) TableName() string {
	return "daily_quotes"
}
