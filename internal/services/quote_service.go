// quote_service.go
//
// A rotating quote-of-the-day API with anonymous sessions, likes, and bookmarks
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of author-clock.
// author-clock is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// author-clock is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with author-clock.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/localnerve/author-clock/internal/cache"
	"github.com/localnerve/author-clock/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/hints"
)

// QuoteFilters narrows list queries. A nil Approved defaults to
// approved-only, which is what every public surface wants.
type QuoteFilters struct {
	Language string
	Category string
	Approved *bool
	Limit    int
	Offset   int
}

// CreateQuoteInput carries the fields accepted when submitting a quote.
type CreateQuoteInput struct {
	Text           string  `json:"text"`
	Author         string  `json:"author"`
	Source         *string `json:"source"`
	SourceURL      *string `json:"source_url"`
	Language       string  `json:"language"`
	Category       *string `json:"category"`
	IsPublicDomain *bool   `json:"is_public_domain"`
}

// SitemapQuote is the minimal quote row exposed for sitemap generation.
type SitemapQuote struct {
	ID        uint64    `json:"id"`
	UpdatedAt time.Time `json:"updated_at"`
}

// QuoteMeta is the SEO metadata derived from a quote.
type QuoteMeta struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	OgURL       string  `json:"ogUrl"`
	Author      string  `json:"author"`
	Source      *string `json:"source"`
	Language    string  `json:"language"`
}

// QuoteService resolves today's quote (cache-aside over a durable daily
// pin), random quotes, and list/detail reads. The cache is a pure
// optimization: any cache failure degrades to a relational read.
type QuoteService struct {
	DB            *gorm.DB
	Cache         cache.Store
	DailyQuoteTTL time.Duration
	SiteBaseURL   string
}

// NewQuoteService constructs a QuoteService with explicit store handles.
func NewQuoteService(db *gorm.DB, store cache.Store, dailyQuoteTTL time.Duration, siteBaseURL string) *QuoteService {
	return &QuoteService{
		DB:            db,
		Cache:         store,
		DailyQuoteTTL: dailyQuoteTTL,
		SiteBaseURL:   siteBaseURL,
	}
}

// TodayQuote resolves the quote pinned to (today UTC, language).
//
// Lookup is two-tier: cache, then the durable daily_quotes pin. When no
// pin exists one approved quote is picked uniformly at random and pinned
// (upsert, last writer wins). The resolved quote is cached with the
// configured TTL and has its view count incremented; both are
// independent side effects. A cache hit returns verbatim with no view
// increment, which keeps the hot daily key from amplifying writes.
//
// Returns nil when no approved quote exists for the language at all.
func (s *QuoteService) TodayQuote(ctx context.Context, language string) (*models.Quote, error) {
	today := time.Now().UTC().Format("2006-01-02")
	key := cache.DailyQuoteKey(language, today)

	var cached models.Quote
	found, err := s.Cache.GetJSON(ctx, key, &cached)
	if err != nil {
		log.Printf("Daily quote cache get failed for %s: %v", key, err)
	}
	if found {
		return &cached, nil
	}

	quote, err := s.findTodayQuote(today, language)
	if err != nil {
		return nil, err
	}

	if quote == nil {
		quote, err = s.findRandom(language)
		if err != nil {
			return nil, err
		}
		if quote == nil {
			return nil, nil
		}
		if err := s.pinDailyQuote(quote.ID, today, language); err != nil {
			return nil, err
		}
	}

	if err := s.Cache.SetJSON(ctx, key, quote, s.DailyQuoteTTL); err != nil {
		log.Printf("Daily quote cache set failed for %s: %v", key, err)
	}
	s.incrementViews(quote.ID)

	return quote, nil
}

// RandomQuote picks one approved quote for the language uniformly at
// random, uncached. Returns nil for an empty corpus.
func (s *QuoteService) RandomQuote(language string) (*models.Quote, error) {
	quote, err := s.findRandom(language)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, nil
	}

	s.incrementViews(quote.ID)
	return quote, nil
}

// QuoteByID looks a quote up by primary key, counting the view.
// Returns nil when absent.
func (s *QuoteService) QuoteByID(id uint64) (*models.Quote, error) {
	var quote models.Quote
	err := s.DB.Where("id = ?", id).First(&quote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	s.incrementViews(quote.ID)
	return &quote, nil
}

// ListQuotes returns a page of quotes ordered most-recently-created
// first, plus the total count matching the filters.
func (s *QuoteService) ListQuotes(f QuoteFilters) ([]models.Quote, int64, error) {
	approved := true
	if f.Approved != nil {
		approved = *f.Approved
	}

	base := s.DB.Model(&models.Quote{}).Where("is_approved = ?", approved)
	if f.Language != "" {
		base = base.Where("language = ?", f.Language)
	}
	if f.Category != "" {
		base = base.Where("category = ?", f.Category)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := base.Session(&gorm.Session{}).
		Order("created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset)
	if s.DB.Dialector.Name() == "mysql" {
		query = query.Clauses(hints.New("MAX_EXECUTION_TIME(5000)"))
	}

	var quotes []models.Quote
	if err := query.Find(&quotes).Error; err != nil {
		return nil, 0, err
	}

	return quotes, total, nil
}

// CreateQuote inserts a new quote. Language defaults to "ko" and the
// public-domain flag to true when unset.
func (s *QuoteService) CreateQuote(input CreateQuoteInput) (*models.Quote, error) {
	quote := models.Quote{
		Text:           input.Text,
		Author:         input.Author,
		Source:         input.Source,
		SourceURL:      input.SourceURL,
		Language:       input.Language,
		Category:       input.Category,
		IsPublicDomain: true,
	}
	if quote.Language == "" {
		quote.Language = "ko"
	}
	if input.IsPublicDomain != nil {
		quote.IsPublicDomain = *input.IsPublicDomain
	}

	if err := s.DB.Create(&quote).Error; err != nil {
		return nil, err
	}

	log.Printf("Quote created: %d", quote.ID)
	return &quote, nil
}

// RefreshTodayCache drops the cache entry for (today, language) and
// repopulates it by re-resolving today's quote.
func (s *QuoteService) RefreshTodayCache(ctx context.Context, language string) error {
	today := time.Now().UTC().Format("2006-01-02")
	key := cache.DailyQuoteKey(language, today)

	if err := s.Cache.Delete(ctx, key); err != nil {
		return err
	}

	_, err := s.TodayQuote(ctx, language)
	return err
}

// SitemapData returns the top approved public-domain quotes by likes and
// the distinct authors of approved quotes, for dynamic sitemap generation.
func (s *QuoteService) SitemapData() ([]SitemapQuote, []string, error) {
	var quotes []SitemapQuote
	err := s.DB.Model(&models.Quote{}).
		Select("id", "updated_at").
		Where("is_approved = ? AND is_public_domain = ?", true, true).
		Order("likes_count DESC").
		Limit(200).
		Find(&quotes).Error
	if err != nil {
		return nil, nil, err
	}

	var authors []string
	err = s.DB.Model(&models.Quote{}).
		Distinct().
		Where("is_approved = ?", true).
		Order("author").
		Pluck("author", &authors).Error
	if err != nil {
		return nil, nil, err
	}

	return quotes, authors, nil
}

// Meta builds SEO metadata for a quote. Returns nil when absent.
func (s *QuoteService) Meta(id uint64) (*QuoteMeta, error) {
	var quote models.Quote
	err := s.DB.Select("id", "text", "author", "source", "language").
		Where("id = ?", id).
		First(&quote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &QuoteMeta{
		Title:       quote.Author + "의 명언 - Author Clock",
		Description: truncateDescription(quote.Text),
		OgURL:       s.SiteBaseURL + "/quotes/" + strconv.FormatUint(quote.ID, 10),
		Author:      quote.Author,
		Source:      quote.Source,
		Language:    quote.Language,
	}, nil
}

// findTodayQuote loads the quote pinned for (date, language), nil if no pin.
func (s *QuoteService) findTodayQuote(date, language string) (*models.Quote, error) {
	var quote models.Quote
	err := s.DB.Model(&models.Quote{}).
		Joins("JOIN daily_quotes dq ON dq.quote_id = quotes.id").
		Where("dq.date = ? AND dq.language = ?", date, language).
		Take(&quote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// findRandom picks one approved quote uniformly at random, nil for an
// empty corpus.
func (s *QuoteService) findRandom(language string) (*models.Quote, error) {
	var quote models.Quote
	err := s.DB.Where("language = ? AND is_approved = ?", language, true).
		Order(s.randomOrder()).
		Take(&quote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// pinDailyQuote upserts the (date, language) pin; the last writer wins,
// which lets a later manual override replace the pinned quote id.
func (s *QuoteService) pinDailyQuote(quoteID uint64, date, language string) error {
	dq := models.DailyQuote{
		QuoteID:  quoteID,
		Date:     date,
		Language: language,
	}
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}, {Name: "language"}},
		DoUpdates: clause.AssignmentColumns([]string{"quote_id"}),
	}).Create(&dq).Error
}

// incrementViews bumps views_count outside any transaction; a lost
// increment is tolerable and only logged.
func (s *QuoteService) incrementViews(id uint64) {
	err := s.DB.Model(&models.Quote{}).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + ?", 1)).Error
	if err != nil {
		log.Printf("Failed to increment views for quote %d: %v", id, err)
	}
}

// randomOrder returns the dialect's random-ordering expression.
func (s *QuoteService) randomOrder() string {
	switch s.DB.Dialector.Name() {
	case "mysql":
		return "RAND()"
	case "sqlserver":
		return "NEWID()"
	default:
		return "RANDOM()"
	}
}

// truncateDescription clips quote text to a 160-character SEO description.
func truncateDescription(text string) string {
	runes := []rune(text)
	if len(runes) <= 160 {
		return text
	}
	return string(runes[:157]) + "..."
}
