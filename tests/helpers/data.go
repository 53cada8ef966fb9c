// data.go
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

package helpers

import (
	"testing"
	"time"

	"github.com/localnerve/author-clock/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CreateTestQuote inserts an approved quote and returns it.
func CreateTestQuote(t *testing.T, db *gorm.DB, text, author, language string) *models.Quote {
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

// CreateTestUser inserts an anonymous user with a session and returns
// the user id.
func CreateTestUser(t *testing.T, db *gorm.DB, sessionID string) uint64 {
	t.Helper()
	user := models.User{
		Username:          "anon_" + sessionID[:8],
		Email:             "anon_" + sessionID[:8] + "@anonymous.local",
		DisplayName:       "Anonymous User",
		PreferredLanguage: "ko",
		Preferences:       datatypes.JSON([]byte(`{}`)),
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	session := models.Session{
		SessionID: sessionID,
		UserID:    user.ID,
		LastSeen:  time.Now().UTC(),
	}
	if err := db.Create(&session).Error; err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	return user.ID
}
