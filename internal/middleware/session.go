// session.go
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

package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/localnerve/author-clock/internal/services"
	"github.com/localnerve/author-clock/internal/types"
)

// SessionHeader carries the client-generated opaque session token.
const SessionHeader = "X-Session-ID"

// SessionAuth requires a valid session token and resolves it to a user
// id stored in c.Locals("userID"). The raw token lands in
// c.Locals("sessionID").
func SessionAuth(sessions *services.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get(SessionHeader)
		if token == "" {
			return &types.CustomError{
				Status:  fiber.StatusUnauthorized,
				Code:    types.CodeSessionRequired,
				Message: "Session ID is required. Please provide X-Session-ID header.",
			}
		}

		if _, err := uuid.Parse(token); err != nil {
			return &types.CustomError{
				Status:  fiber.StatusBadRequest,
				Code:    types.CodeValidationError,
				Message: "Invalid session ID format. Must be a valid UUID.",
			}
		}

		userID, err := sessions.Resolve(token)
		if err != nil {
			return &types.CustomError{
				Status:  fiber.StatusInternalServerError,
				Code:    types.CodeInternalError,
				Message: "Session authentication failed",
			}
		}

		c.Locals("userID", userID)
		c.Locals("sessionID", token)

		return c.Next()
	}
}

// OptionalSessionAuth resolves the session token when present and
// well-formed, and passes through silently otherwise. Read-only quote
// browsing uses this to enrich responses with per-user state.
func OptionalSessionAuth(sessions *services.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get(SessionHeader)
		if token != "" {
			if _, err := uuid.Parse(token); err == nil {
				userID, err := sessions.Resolve(token)
				if err != nil {
					// Resolution failure never blocks a read.
					log.Printf("Optional session auth failed: %v", err)
				} else {
					c.Locals("userID", userID)
					c.Locals("sessionID", token)
				}
			}
		}

		return c.Next()
	}
}

// UserID extracts the resolved user id from context, with ok=false when
// no session was established.
func UserID(c *fiber.Ctx) (uint64, bool) {
	id, ok := c.Locals("userID").(uint64)
	return id, ok
}
