// seo.go
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
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/author-clock/internal/services"
	"github.com/localnerve/author-clock/internal/utils"
)

// SEOHandler handles sitemap and per-quote metadata routes
type SEOHandler struct {
	Quotes *services.QuoteService
}

// GetSitemapData handles GET /api/seo/sitemap
// @Summary Get sitemap source data
// @Description Return the most liked public-domain quotes and the distinct authors, for dynamic sitemap generation
// @Tags SEO
// @Produce json
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /seo/sitemap [get]
func (h *SEOHandler) GetSitemapData(c *fiber.Ctx) error {
	quotes, authors, err := h.Quotes.SitemapData()
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, fiber.Map{
		"quotes":  quotes,
		"authors": authors,
	})
}

// GetQuoteMeta handles GET /api/seo/meta/:id
// @Summary Get SEO metadata for a quote
// @Tags SEO
// @Produce json
// @Param id path int true "Quote ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /seo/meta/{id} [get]
func (h *SEOHandler) GetQuoteMeta(c *fiber.Ctx) error {
	id, err := parseQuoteID(c, "id")
	if err != nil {
		return err
	}

	meta, err := h.Quotes.Meta(id)
	if err != nil {
		return err
	}
	if meta == nil {
		return utils.NotFoundResponse(c, "Quote not found")
	}

	return utils.SuccessResponse(c, meta)
}
