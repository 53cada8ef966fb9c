// session_service.go
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
	"errors"
	"log"
	"time"

	"github.com/localnerve/author-clock/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// lastSeenWindow bounds write amplification on the session row: last_seen
// is advanced at most once per window.
const lastSeenWindow = 5 * time.Minute

// SessionService maps opaque session tokens to durable anonymous users.
type SessionService struct {
	DB          *gorm.DB
	MaxIdleDays int
}

// NewSessionService constructs a SessionService with an explicit store handle.
func NewSessionService(db *gorm.DB, maxIdleDays int) *SessionService {
	return &SessionService{DB: db, MaxIdleDays: maxIdleDays}
}

// SessionInfo is the joined session + user view returned to the client.
type SessionInfo struct {
	SessionID         string         `json:"session_id"`
	UserID            uint64         `json:"user_id"`
	CreatedAt         time.Time      `json:"created_at"`
	LastSeen          time.Time      `json:"last_seen"`
	Username          string         `json:"username"`
	DisplayName       string         `json:"display_name"`
	PreferredLanguage string         `json:"preferred_language"`
	Preferences       datatypes.JSON `json:"preferences"`
}

// Resolve maps a session token to a user id, creating the anonymous user
// and session mapping on first sight. The token's shape is validated at
// the boundary; it is not re-validated here.
func (s *SessionService) Resolve(token string) (uint64, error) {
	var sess models.Session
	err := s.DB.Where("session_id = ?", token).First(&sess).Error
	if err == nil {
		// Best-effort idle tracking; a failed update never blocks the caller.
		if time.Since(sess.LastSeen) > lastSeenWindow {
			if uerr := s.DB.Model(&models.Session{}).
				Where("session_id = ?", token).
				UpdateColumn("last_seen", time.Now().UTC()).Error; uerr != nil {
				log.Printf("Failed to update last_seen for session %s: %v", token, uerr)
			}
		}
		return sess.UserID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	// First sight of this token: create the user and the session mapping
	// together so neither outlives the other.
	username := "anon_" + shortToken(token)
	user := models.User{
		Username:          username,
		Email:             username + "@anonymous.local",
		DisplayName:       "Anonymous User",
		PreferredLanguage: "ko",
		Preferences:       datatypes.JSON([]byte(`{}`)),
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&models.Session{
			SessionID: token,
			UserID:    user.ID,
			LastSeen:  time.Now().UTC(),
		}).Error
	})
	if err != nil {
		// A concurrent request with the same unseen token won the insert.
		// The unique index on session_id (and username, derived from the
		// same token) rejects ours; adopt the winner's mapping instead.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			var winner models.Session
			if rerr := s.DB.Where("session_id = ?", token).First(&winner).Error; rerr == nil {
				return winner.UserID, nil
			}
		}
		return 0, err
	}

	log.Printf("Created new anonymous user: %d (session: %s)", user.ID, token)
	return user.ID, nil
}

// Info returns the joined session and user row for a token, or nil when
// the token has never been seen.
func (s *SessionService) Info(token string) (*SessionInfo, error) {
	var info SessionInfo
	err := s.DB.Table("anonymous_sessions s").
		Select("s.session_id, s.user_id, s.created_at, s.last_seen, u.username, u.display_name, u.preferred_language, u.preferences").
		Joins("JOIN users u ON u.id = s.user_id").
		Where("s.session_id = ?", token).
		Take(&info).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// UpdatePreferences replaces the preferences blob on the user row.
func (s *SessionService) UpdatePreferences(userID uint64, prefs datatypes.JSON) error {
	result := s.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("preferences", prefs)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CleanupOldSessions deletes sessions idle longer than MaxIdleDays along
// with their anonymous users, and returns the number of sessions removed.
func (s *SessionService) CleanupOldSessions() (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -s.MaxIdleDays)

	var count int64
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var userIDs []uint64
		if err := tx.Model(&models.Session{}).
			Where("last_seen < ?", cutoff).
			Pluck("user_id", &userIDs).Error; err != nil {
			return err
		}
		if len(userIDs) == 0 {
			return nil
		}

		result := tx.Where("last_seen < ?", cutoff).Delete(&models.Session{})
		if result.Error != nil {
			return result.Error
		}
		count = result.RowsAffected

		// The session owns its anonymous user; purge cascades to it.
		return tx.Where("id IN ?", userIDs).Delete(&models.User{}).Error
	})
	if err != nil {
		return 0, err
	}

	log.Printf("Cleaned up %d old sessions", count)
	return count, nil
}

// shortToken returns the first 8 characters of the token, used to derive
// a deterministic username.
func shortToken(token string) string {
	if len(token) > 8 {
		return token[:8]
	}
	return token
}
