package services

import (
	"errors"
	"time"

	"github.com/localnerve/author-clock/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeResult reports the post-operation like state of a (user, quote) pair.
type LikeResult struct {
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likes_count"`
}

// LikedQuote is a quote row joined with the time it was liked.
type LikedQuote struct {
	ID         uint64    `json:"id"`
	Text       string    `json:"text"`
	Author     string    `json:"author"`
	Source     *string   `json:"source"`
	Language   string    `json:"language"`
	Category   *string   `json:"category"`
	LikesCount int64     `json:"likes_count"`
	LikedAt    time.Time `json:"liked_at"`
}

// LikeService toggles like relations and maintains the denormalized
// likes_count on quotes. The like row and the counter always move
// inside one transaction; the counter is never touched anywhere else.
type LikeService struct {
	DB *gorm.DB
}

// NewLikeService constructs a LikeService with an explicit store handle.
func NewLikeService(db *gorm.DB) *LikeService {
	return &LikeService{DB: db}
}

// AddLike records a like for the pair and increments the quote's counter.
// Re-liking an already-liked quote is a no-op success that returns the
// current counter, so retried requests never double-count.
func (s *LikeService) AddLike(userID, quoteID uint64) (LikeResult, error) {
	var out LikeResult

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		// Lock the quote row first; concurrent likes on the same quote
		// serialize here so no counter increment is lost.
		var quote models.Quote
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "likes_count").
			Where("id = ?", quoteID).
			First(&quote).Error; err != nil {
			return err
		}

		var existing models.Like
		err := tx.Where("user_id = ? AND quote_id = ?", userID, quoteID).
			First(&existing).Error
		if err == nil {
			out = LikeResult{Liked: true, LikesCount: quote.LikesCount}
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(&models.Like{UserID: userID, QuoteID: quoteID}).Error; err != nil {
			return err
		}

		newCount := quote.LikesCount + 1
		if err := tx.Model(&models.Quote{}).
			Where("id = ?", quoteID).
			UpdateColumn("likes_count", newCount).Error; err != nil {
			return err
		}

		out = LikeResult{Liked: true, LikesCount: newCount}
		return nil
	})

	return out, err
}

// RemoveLike deletes the like for the pair and decrements the quote's
// counter, clamped at zero. Removing a like that does not exist is a
// no-op success that returns the current counter.
func (s *LikeService) RemoveLike(userID, quoteID uint64) (LikeResult, error) {
	var out LikeResult

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var quote models.Quote
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "likes_count").
			Where("id = ?", quoteID).
			First(&quote).Error; err != nil {
			return err
		}

		result := tx.Where("user_id = ? AND quote_id = ?", userID, quoteID).
			Delete(&models.Like{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			out = LikeResult{Liked: false, LikesCount: quote.LikesCount}
			return nil
		}

		// Clamp at zero to defend against drift from prior inconsistency.
		newCount := quote.LikesCount - 1
		if newCount < 0 {
			newCount = 0
		}
		if err := tx.Model(&models.Quote{}).
			Where("id = ?", quoteID).
			UpdateColumn("likes_count", newCount).Error; err != nil {
			return err
		}

		out = LikeResult{Liked: false, LikesCount: newCount}
		return nil
	})

	return out, err
}

// IsLiked reports whether the pair has a like.
func (s *LikeService) IsLiked(userID, quoteID uint64) (bool, error) {
	var count int64
	err := s.DB.Model(&models.Like{}).
		Where("user_id = ? AND quote_id = ?", userID, quoteID).
		Count(&count).Error
	return count > 0, err
}

// LikesCount returns the denormalized counter for a quote.
func (s *LikeService) LikesCount(quoteID uint64) (int64, error) {
	var count int64
	err := s.DB.Model(&models.Quote{}).
		Where("id = ?", quoteID).
		Pluck("likes_count", &count).Error
	return count, err
}

// LikedQuoteIDs returns which of the given quote ids the user has liked.
// Used to avoid N+1 lookups when rendering lists.
func (s *LikeService) LikedQuoteIDs(userID uint64, quoteIDs []uint64) (map[uint64]bool, error) {
	liked := make(map[uint64]bool)
	if len(quoteIDs) == 0 {
		return liked, nil
	}

	var ids []uint64
	err := s.DB.Model(&models.Like{}).
		Where("user_id = ? AND quote_id IN ?", userID, quoteIDs).
		Pluck("quote_id", &ids).Error
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

// LikedQuotes returns the user's liked quotes newest-first with the total count.
func (s *LikeService) LikedQuotes(userID uint64, limit, offset int) ([]LikedQuote, int64, error) {
	var quotes []LikedQuote
	err := s.DB.Table("user_likes ul").
		Select("q.id, q.text, q.author, q.source, q.language, q.category, q.likes_count, ul.created_at AS liked_at").
		Joins("JOIN quotes q ON q.id = ul.quote_id").
		Where("ul.user_id = ?", userID).
		Order("ul.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&quotes).Error
	if err != nil {
		return nil, 0, err
	}

	var total int64
	err = s.DB.Model(&models.Like{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	return quotes, total, nil
}
