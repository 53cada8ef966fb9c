package services

import (
	"errors"
	"time"

	"github.com/localnerve/author-clock/internal/models"
	"gorm.io/gorm"
)

// BookmarkResult reports the post-operation bookmark state of a pair.
type BookmarkResult struct {
	Bookmarked bool `json:"bookmarked"`
}

// BookmarkedQuote is a quote row joined with the time it was bookmarked.
type BookmarkedQuote struct {
	ID           uint64    `json:"id"`
	Text         string    `json:"text"`
	Author       string    `json:"author"`
	Source       *string   `json:"source"`
	Language     string    `json:"language"`
	Category     *string   `json:"category"`
	LikesCount   int64     `json:"likes_count"`
	BookmarkedAt time.Time `json:"bookmarked_at"`
}

// BookmarkService toggles bookmark relations. Unlike likes there is no
// denormalized counter, so a single insert or delete is the whole
// operation and no transactional envelope is needed.
type BookmarkService struct {
	DB *gorm.DB
}

// NewBookmarkService constructs a BookmarkService with an explicit store handle.
func NewBookmarkService(db *gorm.DB) *BookmarkService {
	return &BookmarkService{DB: db}
}

// AddBookmark records a bookmark for the pair. Re-adding an existing
// bookmark is a no-op success.
func (s *BookmarkService) AddBookmark(userID, quoteID uint64) (BookmarkResult, error) {
	var existing models.Bookmark
	err := s.DB.Where("user_id = ? AND quote_id = ?", userID, quoteID).
		First(&existing).Error
	if err == nil {
		return BookmarkResult{Bookmarked: true}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return BookmarkResult{}, err
	}

	err = s.DB.Create(&models.Bookmark{UserID: userID, QuoteID: quoteID}).Error
	if err != nil {
		// A racing duplicate insert means the bookmark already exists.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return BookmarkResult{Bookmarked: true}, nil
		}
		return BookmarkResult{}, err
	}

	return BookmarkResult{Bookmarked: true}, nil
}

// RemoveBookmark deletes the bookmark for the pair. Removing a missing
// bookmark is a no-op success.
func (s *BookmarkService) RemoveBookmark(userID, quoteID uint64) (BookmarkResult, error) {
	err := s.DB.Where("user_id = ? AND quote_id = ?", userID, quoteID).
		Delete(&models.Bookmark{}).Error
	if err != nil {
		return BookmarkResult{}, err
	}
	return BookmarkResult{Bookmarked: false}, nil
}

// IsBookmarked reports whether the pair has a bookmark.
func (s *BookmarkService) IsBookmarked(userID, quoteID uint64) (bool, error) {
	var count int64
	err := s.DB.Model(&models.Bookmark{}).
		Where("user_id = ? AND quote_id = ?", userID, quoteID).
		Count(&count).Error
	return count > 0, err
}

// Count returns the user's total number of bookmarks.
func (s *BookmarkService) Count(userID uint64) (int64, error) {
	var count int64
	err := s.DB.Model(&models.Bookmark{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// BookmarkedQuoteIDs returns which of the given quote ids the user has bookmarked.
func (s *BookmarkService) BookmarkedQuoteIDs(userID uint64, quoteIDs []uint64) (map[uint64]bool, error) {
	bookmarked := make(map[uint64]bool)
	if len(quoteIDs) == 0 {
		return bookmarked, nil
	}

	var ids []uint64
	err := s.DB.Model(&models.Bookmark{}).
		Where("user_id = ? AND quote_id IN ?", userID, quoteIDs).
		Pluck("quote_id", &ids).Error
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		bookmarked[id] = true
	}
	return bookmarked, nil
}

// Bookmarks returns the user's bookmarked quotes newest-first with the total count.
func (s *BookmarkService) Bookmarks(userID uint64, limit, offset int) ([]BookmarkedQuote, int64, error) {
	var quotes []BookmarkedQuote
	err := s.DB.Table("user_bookmarks ub").
		Select("q.id, q.text, q.author, q.source, q.language, q.category, q.likes_count, ub.created_at AS bookmarked_at").
		Joins("JOIN quotes q ON q.id = ub.quote_id").
		Where("ub.user_id = ?", userID).
		Order("ub.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&quotes).Error
	if err != nil {
		return nil, 0, err
	}

	var total int64
	err = s.DB.Model(&models.Bookmark{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	return quotes, total, nil
}
