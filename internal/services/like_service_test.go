package services_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/localnerve/author-clock/internal/models"
	"github.com/localnerve/author-clock/internal/services"
	"gorm.io/gorm"
)

func createUser(t *testing.T, db *gorm.DB) uint64 {
	t.Helper()
	svc := services.NewSessionService(db, 30)
	userID, err := svc.Resolve(uuid.New().String())
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return userID
}

// assertCounterMatchesRows verifies likes_count equals the number of like rows
func assertCounterMatchesRows(t *testing.T, db *gorm.DB, quoteID uint64) {
	t.Helper()
	var quote models.Quote
	if err := db.First(&quote, quoteID).Error; err != nil {
		t.Fatalf("Failed to load quote: %v", err)
	}
	var rows int64
	db.Model(&models.Like{}).Where("quote_id = ?", quoteID).Count(&rows)
	if quote.LikesCount != rows {
		t.Errorf("likes_count %d does not match %d like rows", quote.LikesCount, rows)
	}
}

// TestAddLike tests liking a quote increments the counter
func TestAddLike(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewLikeService(db)
	userID := createUser(t, db)
	quote := createQuote(t, db, "삶이 있는 한 희망은 있다.", "키케로", "ko")

	result, err := svc.AddLike(userID, quote.ID)
	if err != nil {
		t.Fatalf("AddLike failed: %v", err)
	}
	if !result.Liked {
		t.Error("Expected liked=true")
	}
	if result.LikesCount != 1 {
		t.Errorf("Expected count 1, got %d", result.LikesCount)
	}
	assertCounterMatchesRows(t, db, quote.ID)
}

// TestAddLikeIdempotent tests that re-liking never double-counts
func TestAddLikeIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewLikeService(db)
	userID := createUser(t, db)
	quote := createQuote(t, db, "피할 수 없으면 즐겨라.", "로버트 엘리엇", "ko")

	for i := 0; i < 3; i++ {
		result, err := svc.AddLike(userID, quote.ID)
		if err != nil {
			t.Fatalf("AddLike attempt %d failed: %v", i, err)
		}
		if !result.Liked || result.LikesCount != 1 {
			t.Errorf("Attempt %d: expected liked=true count=1, got %+v", i, result)
		}
	}
	assertCounterMatchesRows(t, db, quote.ID)
}

// TestRemoveLike tests the full like/unlike round trip
func TestRemoveLike(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewLikeService(db)
	userID := createUser(t, db)
	quote := createQuote(t, db, "The journey of a thousand miles begins with one step.", "Lao Tzu", "en")

	if _, err := svc.AddLike(userID, quote.ID); err != nil {
		t.Fatalf("AddLike failed: %v", err)
	}

	result, err := svc.RemoveLike(userID, quote.ID)
	if err != nil {
		t.Fatalf("RemoveLike failed: %v", err)
	}
	if result.Liked {
		t.Error("Expected liked=false")
	}
	if result.LikesCount != 0 {
		t.Errorf("Expected count 0, got %d", result.LikesCount)
	}
	assertCounterMatchesRows(t, db, quote.ID)
}

// TestRemoveLikeMissing tests that removing a missing like is a no-op
func TestRemoveLikeMissing(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewLikeService(db)
	userID := createUser(t, db)
	quote := createQuote(t, db, "In the middle of difficulty lies opportunity.", "Albert Einstein", "en")

	result, err := svc.RemoveLike(userID, quote.ID)
	if err != nil {
		t.Fatalf("RemoveLike on missing like errored: %v", err)
	}
	if result.Liked {
		t.Error("Expected liked=false")
	}
	if result.LikesCount != 0 {
		t.Errorf("Expected count to stay 0, got %d", result.LikesCount)
	}
	assertCounterMatchesRows(t, db, quote.ID)
}

// TestRemoveLikeClampsAtZero tests the counter never goes negative
func TestRemoveLikeClampsAtZero(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewLikeService(db)
	userID := createUser(t, db)
	quote := createQuote(t, db, "산다는 것 그것은 치열한 전투이다.", "로맹 롤랑", "ko")

	// Force drift: a like row with a counter already at zero
	if err := db.Create(&models.Like{UserID: userID, QuoteID: quote.ID}).Error; err != nil {
		t.Fatalf("Failed to force like row: %v", err)
	}
	if err := db.Model(&models.Quote{}).Where("id = ?", quote.ID).
		UpdateColumn("likes_count", 0).Error; err != nil {
		t.Fatalf("Failed to zero counter: %v", err)
	}

	result, err := svc.RemoveLike(userID, quote.ID)
	if err != nil {
		t.Fatalf("RemoveLike failed: %v", err)
	}
	if result.LikesCount != 0 {
		t.Errorf("Expected counter clamped at 0, got %d", result.LikesCount)
	}
}

// TestLikeCounterAcrossUsers tests per-user likes aggregate on one quote
func TestLikeCounterAcrossUsers(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewLikeService(db)
	quote := createQuote(t, db, "That which does not kill us makes us stronger.", "Friedrich Nietzsche", "en")

	users := []uint64{createUser(t, db), createUser(t, db), createUser(t, db)}
	for _, u := range users {
		if _, err := svc.AddLike(u, quote.ID); err != nil {
			t.Fatalf("AddLike for user %d failed: %v", u, err)
		}
	}

	count, err := svc.LikesCount(quote.ID)
	if err != nil {
		t.Fatalf("LikesCount failed: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected 3 likes, got %d", count)
	}
	assertCounterMatchesRows(t, db, quote.ID)

	// One user unlikes; the rest stay
	if _, err := svc.RemoveLike(users[0], quote.ID); err != nil {
		t.Fatalf("RemoveLike failed: %v", err)
	}
	assertCounterMatchesRows(t, db, quote.ID)

	liked, err := svc.IsLiked(users[1], quote.ID)
	if err != nil {
		t.Fatalf("IsLiked failed: %v", err)
	}
	if !liked {
		t.Error("Expected other user's like to survive")
	}
}

// TestAddLikeUnknownQuote tests liking a nonexistent quote fails
func TestAddLikeUnknownQuote(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewLikeService(db)
	userID := createUser(t, db)

	if _, err := svc.AddLike(userID, 999999); err == nil {
		t.Error("Expected error liking a missing quote")
	}
}

// TestLikedQuotes tests the liked list with pagination
func TestLikedQuotes(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewLikeService(db)
	userID := createUser(t, db)

	q1 := createQuote(t, db, "quote one", "Author A", "en")
	q2 := createQuote(t, db, "quote two", "Author B", "en")
	q3 := createQuote(t, db, "quote three", "Author C", "en")
	for _, q := range []*models.Quote{q1, q2, q3} {
		if _, err := svc.AddLike(userID, q.ID); err != nil {
			t.Fatalf("AddLike failed: %v", err)
		}
	}

	quotes, total, err := svc.LikedQuotes(userID, 2, 0)
	if err != nil {
		t.Fatalf("LikedQuotes failed: %v", err)
	}
	if total != 3 {
		t.Errorf("Expected total 3, got %d", total)
	}
	if len(quotes) != 2 {
		t.Errorf("Expected page of 2, got %d", len(quotes))
	}

	ids, err := svc.LikedQuoteIDs(userID, []uint64{q1.ID, q2.ID, 999999})
	if err != nil {
		t.Fatalf("LikedQuoteIDs failed: %v", err)
	}
	if !ids[q1.ID] || !ids[q2.ID] || ids[999999] {
		t.Errorf("Unexpected liked id map: %v", ids)
	}
}
