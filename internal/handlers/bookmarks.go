package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/author-clock/internal/services"
	"github.com/localnerve/author-clock/internal/utils"
)

// BookmarkHandler handles bookmark toggle and listing routes
type BookmarkHandler struct {
	Bookmarks *services.BookmarkService
}

// AddBookmark handles POST /api/quotes/:id/bookmark
// @Summary Bookmark a quote
// @Description Add a bookmark for the session user; re-adding is a no-op success
// @Tags Bookmarks
// @Produce json
// @Param id path int true "Quote ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security SessionAuth
// @Router /quotes/{id}/bookmark [post]
func (h *BookmarkHandler) AddBookmark(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	quoteID, err := parseQuoteID(c, "id")
	if err != nil {
		return err
	}

	result, err := h.Bookmarks.AddBookmark(userID, quoteID)
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, result)
}

// RemoveBookmark handles DELETE /api/quotes/:id/bookmark
// @Summary Remove a bookmark
// @Description Remove the session user's bookmark; removing a missing one is a no-op success
// @Tags Bookmarks
// @Produce json
// @Param id path int true "Quote ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security SessionAuth
// @Router /quotes/{id}/bookmark [delete]
func (h *BookmarkHandler) RemoveBookmark(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	quoteID, err := parseQuoteID(c, "id")
	if err != nil {
		return err
	}

	result, err := h.Bookmarks.RemoveBookmark(userID, quoteID)
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, result)
}

// BookmarkStatus handles GET /api/quotes/:id/bookmark-status
// @Summary Get bookmark status for a quote
// @Tags Bookmarks
// @Produce json
// @Param id path int true "Quote ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security SessionAuth
// @Router /quotes/{id}/bookmark-status [get]
func (h *BookmarkHandler) BookmarkStatus(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	quoteID, err := parseQuoteID(c, "id")
	if err != nil {
		return err
	}

	bookmarked, err := h.Bookmarks.IsBookmarked(userID, quoteID)
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, services.BookmarkResult{
		Bookmarked: bookmarked,
	})
}

// ListBookmarks handles GET /api/bookmarks
// @Summary List the session user's bookmarks
// @Tags Bookmarks
// @Produce json
// @Param limit query int false "Page size (1-100, default 50)"
// @Param offset query int false "Page offset"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security SessionAuth
// @Router /bookmarks [get]
func (h *BookmarkHandler) ListBookmarks(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	limit, offset, err := parsePagination(c, 50)
	if err != nil {
		return err
	}

	quotes, total, err := h.Bookmarks.Bookmarks(userID, limit, offset)
	if err != nil {
		return err
	}

	return utils.PaginatedResponse(c, quotes, utils.Pagination{
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(quotes)) < total,
	})
}

// BookmarkCount handles GET /api/bookmarks/count
// @Summary Count the session user's bookmarks
// @Tags Bookmarks
// @Produce json
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security SessionAuth
// @Router /bookmarks/count [get]
func (h *BookmarkHandler) BookmarkCount(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	count, err := h.Bookmarks.Count(userID)
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, fiber.Map{
		"count": count,
	})
}
