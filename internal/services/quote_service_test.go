package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/localnerve/author-clock/internal/models"
	"github.com/localnerve/author-clock/internal/services"
	"gorm.io/gorm"
)

const testBaseURL = "https://clock.jsnetworkcorp.com"

func newQuoteService(db *gorm.DB, store *memoryStore) *services.QuoteService {
	return services.NewQuoteService(db, store, 24*time.Hour, testBaseURL)
}

// TestTodayQuoteEmptyCorpus tests that an empty corpus yields nil, not an error
func TestTodayQuoteEmptyCorpus(t *testing.T) {
	db := setupTestDB(t)
	svc := newQuoteService(db, newMemoryStore())

	quote, err := svc.TodayQuote(context.Background(), "ko")
	if err != nil {
		t.Fatalf("TodayQuote on empty corpus errored: %v", err)
	}
	if quote != nil {
		t.Errorf("Expected nil quote, got %+v", quote)
	}

	var pins int64
	db.Model(&models.DailyQuote{}).Count(&pins)
	if pins != 0 {
		t.Error("Empty corpus must not create a daily pin")
	}
}

// TestTodayQuoteStable tests that today's quote is pinned once and stays
// the same for the whole day, even when the cache is dropped.
func TestTodayQuoteStable(t *testing.T) {
	db := setupTestDB(t)
	store := newMemoryStore()
	svc := newQuoteService(db, store)

	for i := 0; i < 5; i++ {
		createQuote(t, db, "quote "+strings.Repeat("x", i+1), "Author", "ko")
	}

	first, err := svc.TodayQuote(context.Background(), "ko")
	if err != nil {
		t.Fatalf("TodayQuote failed: %v", err)
	}
	if first == nil {
		t.Fatal("Expected a quote")
	}

	// Repeated resolution is stable
	for i := 0; i < 3; i++ {
		again, err := svc.TodayQuote(context.Background(), "ko")
		if err != nil {
			t.Fatalf("Repeat TodayQuote failed: %v", err)
		}
		if again.ID != first.ID {
			t.Fatalf("Today's quote changed from %d to %d", first.ID, again.ID)
		}
	}

	// Still stable after the cache entry vanishes; the durable pin decides
	store.clear()
	again, err := svc.TodayQuote(context.Background(), "ko")
	if err != nil {
		t.Fatalf("TodayQuote after cache clear failed: %v", err)
	}
	if again.ID != first.ID {
		t.Errorf("Pin not honored after cache clear: %d vs %d", again.ID, first.ID)
	}

	var pins int64
	db.Model(&models.DailyQuote{}).Count(&pins)
	if pins != 1 {
		t.Errorf("Expected exactly 1 daily pin, got %d", pins)
	}
}

// TestTodayQuotePerLanguage tests that pins are independent per language
func TestTodayQuotePerLanguage(t *testing.T) {
	db := setupTestDB(t)
	svc := newQuoteService(db, newMemoryStore())

	ko := createQuote(t, db, "한국어 명언", "작가", "ko")
	en := createQuote(t, db, "English quote", "Writer", "en")

	koToday, err := svc.TodayQuote(context.Background(), "ko")
	if err != nil {
		t.Fatalf("TodayQuote ko failed: %v", err)
	}
	enToday, err := svc.TodayQuote(context.Background(), "en")
	if err != nil {
		t.Fatalf("TodayQuote en failed: %v", err)
	}

	if koToday.ID != ko.ID {
		t.Errorf("Expected ko quote %d, got %d", ko.ID, koToday.ID)
	}
	if enToday.ID != en.ID {
		t.Errorf("Expected en quote %d, got %d", en.ID, enToday.ID)
	}
}

// TestTodayQuoteCacheHitSkipsViews tests that a cache hit does not bump views
func TestTodayQuoteCacheHitSkipsViews(t *testing.T) {
	db := setupTestDB(t)
	store := newMemoryStore()
	svc := newQuoteService(db, store)

	quote := createQuote(t, db, "view counting quote", "Author", "ko")

	// First call misses the cache, increments views
	if _, err := svc.TodayQuote(context.Background(), "ko"); err != nil {
		t.Fatalf("TodayQuote failed: %v", err)
	}
	var after models.Quote
	db.First(&after, quote.ID)
	if after.ViewsCount != 1 {
		t.Fatalf("Expected 1 view after miss, got %d", after.ViewsCount)
	}

	// Subsequent calls hit the cache and leave views alone
	for i := 0; i < 3; i++ {
		if _, err := svc.TodayQuote(context.Background(), "ko"); err != nil {
			t.Fatalf("TodayQuote failed: %v", err)
		}
	}
	db.First(&after, quote.ID)
	if after.ViewsCount != 1 {
		t.Errorf("Cache hits changed views to %d", after.ViewsCount)
	}
}

// TestTodayQuoteCacheFailureDegrades tests that cache errors fall back to the database
func TestTodayQuoteCacheFailureDegrades(t *testing.T) {
	db := setupTestDB(t)
	store := newMemoryStore()
	store.getErr = errors.New("redis down")
	store.setErr = errors.New("redis down")
	svc := newQuoteService(db, store)

	quote := createQuote(t, db, "degraded quote", "Author", "ko")

	resolved, err := svc.TodayQuote(context.Background(), "ko")
	if err != nil {
		t.Fatalf("TodayQuote with broken cache errored: %v", err)
	}
	if resolved == nil || resolved.ID != quote.ID {
		t.Errorf("Expected quote %d despite cache failure", quote.ID)
	}
}

// TestRandomQuote tests random selection honors language and approval
func TestRandomQuote(t *testing.T) {
	db := setupTestDB(t)
	svc := newQuoteService(db, newMemoryStore())

	approved := createQuote(t, db, "approved ko", "Author", "ko")
	// An unapproved quote must never be selected
	unapproved := models.Quote{Text: "pending", Author: "Author", Language: "ko"}
	if err := db.Create(&unapproved).Error; err != nil {
		t.Fatalf("Failed to create unapproved quote: %v", err)
	}

	for i := 0; i < 10; i++ {
		quote, err := svc.RandomQuote("ko")
		if err != nil {
			t.Fatalf("RandomQuote failed: %v", err)
		}
		if quote == nil {
			t.Fatal("Expected a quote")
		}
		if quote.ID != approved.ID {
			t.Fatalf("Selected unapproved quote %d", quote.ID)
		}
	}

	// No quotes in this language
	missing, err := svc.RandomQuote("fr")
	if err != nil {
		t.Fatalf("RandomQuote for empty language errored: %v", err)
	}
	if missing != nil {
		t.Error("Expected nil for language with no quotes")
	}
}

// TestRandomQuoteVaries tests random selection is not stuck on one row
func TestRandomQuoteVaries(t *testing.T) {
	db := setupTestDB(t)
	svc := newQuoteService(db, newMemoryStore())

	for i := 0; i < 10; i++ {
		createQuote(t, db, "variety "+strings.Repeat("y", i+1), "Author", "en")
	}

	seen := make(map[uint64]bool)
	for i := 0; i < 40; i++ {
		quote, err := svc.RandomQuote("en")
		if err != nil {
			t.Fatalf("RandomQuote failed: %v", err)
		}
		seen[quote.ID] = true
	}
	if len(seen) < 2 {
		t.Errorf("40 draws over 10 quotes returned %d distinct rows", len(seen))
	}
}

// TestQuoteByID tests lookup and view counting by primary key
func TestQuoteByID(t *testing.T) {
	db := setupTestDB(t)
	svc := newQuoteService(db, newMemoryStore())

	quote := createQuote(t, db, "lookup quote", "Author", "en")

	found, err := svc.QuoteByID(quote.ID)
	if err != nil {
		t.Fatalf("QuoteByID failed: %v", err)
	}
	if found == nil || found.ID != quote.ID {
		t.Fatal("Expected the created quote")
	}

	var after models.Quote
	db.First(&after, quote.ID)
	if after.ViewsCount != 1 {
		t.Errorf("Expected 1 view, got %d", after.ViewsCount)
	}

	missing, err := svc.QuoteByID(999999)
	if err != nil {
		t.Fatalf("QuoteByID for missing id errored: %v", err)
	}
	if missing != nil {
		t.Error("Expected nil for missing quote")
	}
}

// TestListQuotes tests filtering and pagination
func TestListQuotes(t *testing.T) {
	db := setupTestDB(t)
	svc := newQuoteService(db, newMemoryStore())

	wisdom := "wisdom"
	for i := 0; i < 3; i++ {
		q := createQuote(t, db, "ko quote "+strings.Repeat("z", i+1), "Author", "ko")
		db.Model(q).UpdateColumn("category", wisdom)
	}
	createQuote(t, db, "en quote", "Author", "en")
	// Unapproved rows are filtered by default
	db.Create(&models.Quote{Text: "pending", Author: "Author", Language: "ko"})

	quotes, total, err := svc.ListQuotes(services.QuoteFilters{Language: "ko", Limit: 2, Offset: 0})
	if err != nil {
		t.Fatalf("ListQuotes failed: %v", err)
	}
	if total != 3 {
		t.Errorf("Expected total 3, got %d", total)
	}
	if len(quotes) != 2 {
		t.Errorf("Expected page of 2, got %d", len(quotes))
	}

	quotes, total, err = svc.ListQuotes(services.QuoteFilters{Language: "ko", Category: wisdom, Limit: 10, Offset: 0})
	if err != nil {
		t.Fatalf("ListQuotes with category failed: %v", err)
	}
	if total != 3 || len(quotes) != 3 {
		t.Errorf("Category filter returned total=%d len=%d", total, len(quotes))
	}
}

// TestCreateQuote tests defaults on submission
func TestCreateQuote(t *testing.T) {
	db := setupTestDB(t)
	svc := newQuoteService(db, newMemoryStore())

	quote, err := svc.CreateQuote(services.CreateQuoteInput{
		Text:   "새로운 명언",
		Author: "작가",
	})
	if err != nil {
		t.Fatalf("CreateQuote failed: %v", err)
	}
	if quote.Language != "ko" {
		t.Errorf("Expected default language ko, got %s", quote.Language)
	}
	if !quote.IsPublicDomain {
		t.Error("Expected public domain default true")
	}
	if quote.IsApproved {
		t.Error("Submitted quotes must start unapproved")
	}
}

// TestRefreshTodayCache tests the cache entry is dropped and repopulated
func TestRefreshTodayCache(t *testing.T) {
	db := setupTestDB(t)
	store := newMemoryStore()
	svc := newQuoteService(db, store)

	createQuote(t, db, "refresh quote", "Author", "ko")

	if _, err := svc.TodayQuote(context.Background(), "ko"); err != nil {
		t.Fatalf("TodayQuote failed: %v", err)
	}
	if store.len() != 1 {
		t.Fatalf("Expected 1 cache entry, got %d", store.len())
	}

	if err := svc.RefreshTodayCache(context.Background(), "ko"); err != nil {
		t.Fatalf("RefreshTodayCache failed: %v", err)
	}
	if store.len() != 1 {
		t.Errorf("Expected cache repopulated to 1 entry, got %d", store.len())
	}
}

// TestMeta tests SEO metadata shaping and description truncation
func TestMeta(t *testing.T) {
	db := setupTestDB(t)
	svc := newQuoteService(db, newMemoryStore())

	long := strings.Repeat("가", 200)
	quote := createQuote(t, db, long, "괴테", "ko")

	meta, err := svc.Meta(quote.ID)
	if err != nil {
		t.Fatalf("Meta failed: %v", err)
	}
	if meta == nil {
		t.Fatal("Expected metadata")
	}
	if !strings.HasPrefix(meta.Title, "괴테") {
		t.Errorf("Unexpected title: %s", meta.Title)
	}
	if descLen := len([]rune(meta.Description)); descLen != 160 {
		t.Errorf("Expected 160-rune description, got %d", descLen)
	}
	if !strings.HasSuffix(meta.Description, "...") {
		t.Error("Expected truncated description to end with ellipsis")
	}
	if !strings.HasPrefix(meta.OgURL, testBaseURL+"/quotes/") {
		t.Errorf("Unexpected og url: %s", meta.OgURL)
	}

	missing, err := svc.Meta(999999)
	if err != nil {
		t.Fatalf("Meta for missing quote errored: %v", err)
	}
	if missing != nil {
		t.Error("Expected nil metadata for missing quote")
	}
}

// TestSitemapData tests the sitemap source query
func TestSitemapData(t *testing.T) {
	db := setupTestDB(t)
	svc := newQuoteService(db, newMemoryStore())

	a := createQuote(t, db, "liked quote", "Author A", "ko")
	createQuote(t, db, "quiet quote", "Author B", "ko")
	db.Model(a).UpdateColumn("likes_count", 5)

	// Non-public-domain quotes stay out of the sitemap
	db.Create(&models.Quote{Text: "private", Author: "Author C", Language: "ko", IsApproved: true, IsPublicDomain: false})

	quotes, authors, err := svc.SitemapData()
	if err != nil {
		t.Fatalf("SitemapData failed: %v", err)
	}
	if len(quotes) != 2 {
		t.Errorf("Expected 2 sitemap quotes, got %d", len(quotes))
	}
	if len(quotes) > 0 && quotes[0].ID != a.ID {
		t.Errorf("Expected most liked quote first, got %d", quotes[0].ID)
	}
	if len(authors) != 3 {
		t.Errorf("Expected 3 distinct authors, got %d", len(authors))
	}
}
