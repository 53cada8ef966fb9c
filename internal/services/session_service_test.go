package services_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/localnerve/author-clock/internal/models"
	"github.com/localnerve/author-clock/internal/services"
	"gorm.io/datatypes"
)

// TestResolveCreatesUserOnFirstSight tests first-use session creation
func TestResolveCreatesUserOnFirstSight(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewSessionService(db, 30)

	token := uuid.New().String()
	userID, err := svc.Resolve(token)
	if err != nil {
		t.Fatalf("Failed to resolve new session: %v", err)
	}
	if userID == 0 {
		t.Fatal("Expected non-zero user id")
	}

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		t.Fatalf("Failed to load created user: %v", err)
	}
	if user.Username != "anon_"+token[:8] {
		t.Errorf("Expected derived username, got %s", user.Username)
	}
	if user.PreferredLanguage != "ko" {
		t.Errorf("Expected default language ko, got %s", user.PreferredLanguage)
	}

	var session models.Session
	if err := db.Where("session_id = ?", token).First(&session).Error; err != nil {
		t.Fatalf("Failed to load created session: %v", err)
	}
	if session.UserID != userID {
		t.Errorf("Session maps to user %d, expected %d", session.UserID, userID)
	}
}

// TestResolveIsStable tests that the same token always maps to the same user
func TestResolveIsStable(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewSessionService(db, 30)

	token := uuid.New().String()
	first, err := svc.Resolve(token)
	if err != nil {
		t.Fatalf("First resolve failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		again, err := svc.Resolve(token)
		if err != nil {
			t.Fatalf("Repeat resolve failed: %v", err)
		}
		if again != first {
			t.Fatalf("Resolve returned %d, expected stable %d", again, first)
		}
	}

	var userCount int64
	db.Model(&models.User{}).Count(&userCount)
	if userCount != 1 {
		t.Errorf("Expected exactly 1 user, got %d", userCount)
	}
}

// TestResolveLastSeenWindow tests that last_seen is written at most once
// per five-minute window
func TestResolveLastSeenWindow(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewSessionService(db, 30)

	token := uuid.New().String()
	if _, err := svc.Resolve(token); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	loadLastSeen := func() time.Time {
		t.Helper()
		var sess models.Session
		if err := db.Where("session_id = ?", token).First(&sess).Error; err != nil {
			t.Fatalf("Failed to load session: %v", err)
		}
		return sess.LastSeen
	}

	// Inside the window a resolve leaves last_seen untouched
	inside := time.Now().UTC().Add(-2 * time.Minute)
	if err := db.Model(&models.Session{}).
		Where("session_id = ?", token).
		UpdateColumn("last_seen", inside).Error; err != nil {
		t.Fatalf("Failed to backdate session: %v", err)
	}
	if _, err := svc.Resolve(token); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got := loadLastSeen(); !got.Equal(inside) {
		t.Errorf("last_seen advanced inside the window: %v -> %v", inside, got)
	}

	// Past the window a resolve advances it
	outside := time.Now().UTC().Add(-10 * time.Minute)
	if err := db.Model(&models.Session{}).
		Where("session_id = ?", token).
		UpdateColumn("last_seen", outside).Error; err != nil {
		t.Fatalf("Failed to backdate session: %v", err)
	}
	if _, err := svc.Resolve(token); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got := loadLastSeen(); !got.After(outside) {
		t.Errorf("last_seen not advanced past the window: still %v", got)
	}
}

// TestResolveDistinctTokens tests that different tokens get different users
func TestResolveDistinctTokens(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewSessionService(db, 30)

	a, err := svc.Resolve(uuid.New().String())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	b, err := svc.Resolve(uuid.New().String())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if a == b {
		t.Error("Expected distinct users for distinct tokens")
	}
}

// TestSessionInfo tests the joined session view
func TestSessionInfo(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewSessionService(db, 30)

	token := uuid.New().String()
	userID, err := svc.Resolve(token)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	info, err := svc.Info(token)
	if err != nil {
		t.Fatalf("Info failed: %v", err)
	}
	if info == nil {
		t.Fatal("Expected session info, got nil")
	}
	if info.UserID != userID {
		t.Errorf("Info user %d, expected %d", info.UserID, userID)
	}
	if info.DisplayName != "Anonymous User" {
		t.Errorf("Unexpected display name: %s", info.DisplayName)
	}

	// Unknown token yields nil, not an error
	missing, err := svc.Info(uuid.New().String())
	if err != nil {
		t.Fatalf("Info on unknown token errored: %v", err)
	}
	if missing != nil {
		t.Error("Expected nil info for unknown token")
	}
}

// TestUpdatePreferences tests the preferences blob replacement
func TestUpdatePreferences(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewSessionService(db, 30)

	token := uuid.New().String()
	userID, err := svc.Resolve(token)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	prefs := datatypes.JSON([]byte(`{"theme":"dark","fontScale":1.2}`))
	if err := svc.UpdatePreferences(userID, prefs); err != nil {
		t.Fatalf("UpdatePreferences failed: %v", err)
	}

	info, err := svc.Info(token)
	if err != nil {
		t.Fatalf("Info failed: %v", err)
	}
	if string(info.Preferences) != string(prefs) {
		t.Errorf("Preferences not stored: got %s", string(info.Preferences))
	}

	// Updating a missing user reports not found
	if err := svc.UpdatePreferences(999999, prefs); err == nil {
		t.Error("Expected error updating preferences for missing user")
	}
}

// TestCleanupOldSessions tests idle session purge with its users
func TestCleanupOldSessions(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewSessionService(db, 30)

	staleToken := uuid.New().String()
	freshToken := uuid.New().String()

	staleID, err := svc.Resolve(staleToken)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	freshID, err := svc.Resolve(freshToken)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	// Age the first session beyond the idle cutoff
	old := time.Now().UTC().AddDate(0, 0, -45)
	if err := db.Model(&models.Session{}).
		Where("session_id = ?", staleToken).
		UpdateColumn("last_seen", old).Error; err != nil {
		t.Fatalf("Failed to age session: %v", err)
	}

	removed, err := svc.CleanupOldSessions()
	if err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("Expected 1 session removed, got %d", removed)
	}

	var count int64
	db.Model(&models.Session{}).Where("session_id = ?", staleToken).Count(&count)
	if count != 0 {
		t.Error("Stale session still present")
	}
	db.Model(&models.User{}).Where("id = ?", staleID).Count(&count)
	if count != 0 {
		t.Error("Stale session's user still present")
	}
	db.Model(&models.User{}).Where("id = ?", freshID).Count(&count)
	if count != 1 {
		t.Error("Fresh session's user was removed")
	}

	// A second run with nothing stale removes nothing
	removed, err = svc.CleanupOldSessions()
	if err != nil {
		t.Fatalf("Second cleanup failed: %v", err)
	}
	if removed != 0 {
		t.Errorf("Expected 0 sessions removed, got %d", removed)
	}
}
