package services_test

import (
	"testing"

	"github.com/localnerve/author-clock/internal/models"
	"github.com/localnerve/author-clock/internal/services"
)

// TestAddBookmark tests bookmarking a quote
func TestAddBookmark(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewBookmarkService(db)
	userID := createUser(t, db)
	quote := createQuote(t, db, "하루라도 책을 읽지 않으면 입안에 가시가 돋는다.", "안중근", "ko")

	result, err := svc.AddBookmark(userID, quote.ID)
	if err != nil {
		t.Fatalf("AddBookmark failed: %v", err)
	}
	if !result.Bookmarked {
		t.Error("Expected bookmarked=true")
	}

	bookmarked, err := svc.IsBookmarked(userID, quote.ID)
	if err != nil {
		t.Fatalf("IsBookmarked failed: %v", err)
	}
	if !bookmarked {
		t.Error("Expected bookmark to exist")
	}
}

// TestAddBookmarkIdempotent tests re-adding keeps exactly one row
func TestAddBookmarkIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewBookmarkService(db)
	userID := createUser(t, db)
	quote := createQuote(t, db, "quote text", "Author", "en")

	for i := 0; i < 3; i++ {
		result, err := svc.AddBookmark(userID, quote.ID)
		if err != nil {
			t.Fatalf("AddBookmark attempt %d failed: %v", i, err)
		}
		if !result.Bookmarked {
			t.Errorf("Attempt %d: expected bookmarked=true", i)
		}
	}

	var rows int64
	db.Model(&models.Bookmark{}).
		Where("user_id = ? AND quote_id = ?", userID, quote.ID).
		Count(&rows)
	if rows != 1 {
		t.Errorf("Expected exactly 1 bookmark row, got %d", rows)
	}
}

// TestRemoveBookmark tests the add/remove round trip and missing removal
func TestRemoveBookmark(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewBookmarkService(db)
	userID := createUser(t, db)
	quote := createQuote(t, db, "another quote", "Author", "en")

	if _, err := svc.AddBookmark(userID, quote.ID); err != nil {
		t.Fatalf("AddBookmark failed: %v", err)
	}

	result, err := svc.RemoveBookmark(userID, quote.ID)
	if err != nil {
		t.Fatalf("RemoveBookmark failed: %v", err)
	}
	if result.Bookmarked {
		t.Error("Expected bookmarked=false")
	}

	// Removing again is a no-op success
	if _, err := svc.RemoveBookmark(userID, quote.ID); err != nil {
		t.Errorf("RemoveBookmark on missing bookmark errored: %v", err)
	}

	count, err := svc.Count(userID)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 bookmarks, got %d", count)
	}
}

// TestBookmarksAreIndependentOfLikes tests the two relations don't interact
func TestBookmarksAreIndependentOfLikes(t *testing.T) {
	db := setupTestDB(t)
	bookmarks := services.NewBookmarkService(db)
	likes := services.NewLikeService(db)
	userID := createUser(t, db)
	quote := createQuote(t, db, "independent quote", "Author", "en")

	if _, err := bookmarks.AddBookmark(userID, quote.ID); err != nil {
		t.Fatalf("AddBookmark failed: %v", err)
	}
	if _, err := likes.AddLike(userID, quote.ID); err != nil {
		t.Fatalf("AddLike failed: %v", err)
	}

	// Removing the like leaves the bookmark intact
	if _, err := likes.RemoveLike(userID, quote.ID); err != nil {
		t.Fatalf("RemoveLike failed: %v", err)
	}
	bookmarked, err := bookmarks.IsBookmarked(userID, quote.ID)
	if err != nil {
		t.Fatalf("IsBookmarked failed: %v", err)
	}
	if !bookmarked {
		t.Error("Bookmark should survive like removal")
	}
}

// TestBookmarksList tests the bookmark listing with pagination and count
func TestBookmarksList(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewBookmarkService(db)
	userID := createUser(t, db)
	other := createUser(t, db)

	q1 := createQuote(t, db, "first", "Author A", "en")
	q2 := createQuote(t, db, "second", "Author B", "en")
	if _, err := svc.AddBookmark(userID, q1.ID); err != nil {
		t.Fatalf("AddBookmark failed: %v", err)
	}
	if _, err := svc.AddBookmark(userID, q2.ID); err != nil {
		t.Fatalf("AddBookmark failed: %v", err)
	}
	if _, err := svc.AddBookmark(other, q1.ID); err != nil {
		t.Fatalf("AddBookmark failed: %v", err)
	}

	quotes, total, err := svc.Bookmarks(userID, 50, 0)
	if err != nil {
		t.Fatalf("Bookmarks failed: %v", err)
	}
	if total != 2 {
		t.Errorf("Expected total 2, got %d", total)
	}
	if len(quotes) != 2 {
		t.Errorf("Expected 2 rows, got %d", len(quotes))
	}

	// The other user's view is isolated
	count, err := svc.Count(other)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected other user's count 1, got %d", count)
	}
}
