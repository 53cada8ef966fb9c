// common.go
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

package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/author-clock/internal/middleware"
	"github.com/localnerve/author-clock/internal/types"
)

// allowedLanguages is the set of language tags the corpus carries.
var allowedLanguages = map[string]struct{}{
	"ko": {}, "en": {}, "ja": {}, "zh": {}, "es": {}, "fr": {}, "de": {},
}

// parseLanguage reads the language query parameter, defaulting to "ko".
func parseLanguage(c *fiber.Ctx) (string, error) {
	language := c.Query("language", "ko")
	if _, ok := allowedLanguages[language]; !ok {
		return "", &types.CustomError{
			Status:  fiber.StatusBadRequest,
			Code:    types.CodeValidationError,
			Message: "Unsupported language: " + language,
		}
	}
	return language, nil
}

// parsePagination reads and bounds the limit/offset query parameters.
func parsePagination(c *fiber.Ctx, defaultLimit int) (int, int, error) {
	limit := c.QueryInt("limit", defaultLimit)
	offset := c.QueryInt("offset", 0)

	if limit < 1 || limit > 100 {
		return 0, 0, &types.CustomError{
			Status:  fiber.StatusBadRequest,
			Code:    types.CodeValidationError,
			Message: "Limit must be between 1 and 100",
		}
	}
	if offset < 0 {
		return 0, 0, &types.CustomError{
			Status:  fiber.StatusBadRequest,
			Code:    types.CodeValidationError,
			Message: "Offset must be non-negative",
		}
	}

	return limit, offset, nil
}

// parseQuoteID reads the :id path parameter as a positive integer.
func parseQuoteID(c *fiber.Ctx, param string) (uint64, error) {
	id, err := strconv.ParseUint(c.Params(param), 10, 64)
	if err != nil || id == 0 {
		return 0, &types.CustomError{
			Status:  fiber.StatusBadRequest,
			Code:    types.CodeInvalidID,
			Message: "Invalid quote ID",
		}
	}
	return id, nil
}

// requireUserID extracts the user id placed in context by the session
// middleware.
func requireUserID(c *fiber.Ctx) (uint64, error) {
	userID, ok := middleware.UserID(c)
	if !ok {
		return 0, &types.CustomError{
			Status:  fiber.StatusUnauthorized,
			Code:    types.CodeSessionRequired,
			Message: "Session ID is required. Please provide X-Session-ID header.",
		}
	}
	return userID, nil
}
