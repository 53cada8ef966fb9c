package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/author-clock/internal/services"
	"github.com/localnerve/author-clock/internal/utils"
)

// LikeHandler handles like toggle and listing routes
type LikeHandler struct {
	Likes *services.LikeService
}

// AddLike handles POST /api/quotes/:id/like
// @Summary Like a quote
// @Description Add a like for the session user; re-liking is a no-op success
// @Tags Likes
// @Produce json
// @Param id path int true "Quote ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security SessionAuth
// @Router /quotes/{id}/like [post]
func (h *LikeHandler) AddLike(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	quoteID, err := parseQuoteID(c, "id")
	if err != nil {
		return err
	}

	result, err := h.Likes.AddLike(userID, quoteID)
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, result)
}

// RemoveLike handles DELETE /api/quotes/:id/like
// @Summary Unlike a quote
// @Description Remove the session user's like; removing a missing like is a no-op success
// @Tags Likes
// @Produce json
// @Param id path int true "Quote ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security SessionAuth
// @Router /quotes/{id}/like [delete]
func (h *LikeHandler) RemoveLike(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	quoteID, err := parseQuoteID(c, "id")
	if err != nil {
		return err
	}

	result, err := h.Likes.RemoveLike(userID, quoteID)
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, result)
}

// LikeStatus handles GET /api/quotes/:id/like-status
// @Summary Get like status for a quote
// @Tags Likes
// @Produce json
// @Param id path int true "Quote ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security SessionAuth
// @Router /quotes/{id}/like-status [get]
func (h *LikeHandler) LikeStatus(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	quoteID, err := parseQuoteID(c, "id")
	if err != nil {
		return err
	}

	liked, err := h.Likes.IsLiked(userID, quoteID)
	if err != nil {
		return err
	}
	count, err := h.Likes.LikesCount(quoteID)
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, services.LikeResult{
		Liked:      liked,
		LikesCount: count,
	})
}

// LikedQuotes handles GET /api/quotes/liked
// @Summary List the session user's liked quotes
// @Tags Likes
// @Produce json
// @Param limit query int false "Page size (1-100, default 50)"
// @Param offset query int false "Page offset"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security SessionAuth
// @Router /quotes/liked [get]
func (h *LikeHandler) LikedQuotes(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	limit, offset, err := parsePagination(c, 50)
	if err != nil {
		return err
	}

	quotes, total, err := h.Likes.LikedQuotes(userID, limit, offset)
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
