package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/author-clock/internal/middleware"
	"github.com/localnerve/author-clock/internal/models"
	"github.com/localnerve/author-clock/internal/services"
	"github.com/localnerve/author-clock/internal/types"
	"github.com/localnerve/author-clock/internal/utils"
)

// QuoteHandler handles quote resolution and browsing routes
type QuoteHandler struct {
	Quotes    *services.QuoteService
	Likes     *services.LikeService
	Bookmarks *services.BookmarkService
}

// quoteWithState decorates a quote with the caller's engagement state.
type quoteWithState struct {
	models.Quote
	IsLiked      bool `json:"isLiked"`
	IsBookmarked bool `json:"isBookmarked"`
}

// withState looks up the caller's like/bookmark state for a quote when a
// session was established; anonymous reads get false flags.
func (h *QuoteHandler) withState(c *fiber.Ctx, quote *models.Quote) (quoteWithState, error) {
	out := quoteWithState{Quote: *quote}

	userID, ok := middleware.UserID(c)
	if !ok {
		return out, nil
	}

	liked, err := h.Likes.IsLiked(userID, quote.ID)
	if err != nil {
		return out, err
	}
	bookmarked, err := h.Bookmarks.IsBookmarked(userID, quote.ID)
	if err != nil {
		return out, err
	}

	out.IsLiked = liked
	out.IsBookmarked = bookmarked
	return out, nil
}

// GetTodayQuote handles GET /api/quotes/today
// @Summary Get today's quote
// @Description Get the quote pinned to today for a language, selecting and pinning one when absent
// @Tags Quotes
// @Produce json
// @Param language query string false "Language tag (default ko)"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /quotes/today [get]
func (h *QuoteHandler) GetTodayQuote(c *fiber.Ctx) error {
	language, err := parseLanguage(c)
	if err != nil {
		return err
	}

	quote, err := h.Quotes.TodayQuote(c.Context(), language)
	if err != nil {
		return err
	}
	if quote == nil {
		return utils.NotFoundResponse(c, "No quote available for today")
	}

	data, err := h.withState(c, quote)
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, data)
}

// GetRandomQuote handles GET /api/quotes/random
// @Summary Get a random quote
// @Description Pick one approved quote for a language uniformly at random
// @Tags Quotes
// @Produce json
// @Param language query string false "Language tag (default ko)"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /quotes/random [get]
func (h *QuoteHandler) GetRandomQuote(c *fiber.Ctx) error {
	language, err := parseLanguage(c)
	if err != nil {
		return err
	}

	quote, err := h.Quotes.RandomQuote(language)
	if err != nil {
		return err
	}
	if quote == nil {
		return utils.NotFoundResponse(c, "No quote available")
	}

	data, err := h.withState(c, quote)
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, data)
}

// GetQuoteByID handles GET /api/quotes/:id
// @Summary Get a quote by id
// @Tags Quotes
// @Produce json
// @Param id path int true "Quote ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /quotes/{id} [get]
func (h *QuoteHandler) GetQuoteByID(c *fiber.Ctx) error {
	id, err := parseQuoteID(c, "id")
	if err != nil {
		return err
	}

	quote, err := h.Quotes.QuoteByID(id)
	if err != nil {
		return err
	}
	if quote == nil {
		return utils.NotFoundResponse(c, "Quote not found")
	}

	data, err := h.withState(c, quote)
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, data)
}

// ListQuotes handles GET /api/quotes
// @Summary List quotes
// @Description List approved quotes, newest first, filtered by language and category
// @Tags Quotes
// @Produce json
// @Param language query string false "Language tag"
// @Param category query string false "Category"
// @Param limit query int false "Page size (1-100, default 20)"
// @Param offset query int false "Page offset"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /quotes [get]
func (h *QuoteHandler) ListQuotes(c *fiber.Ctx) error {
	limit, offset, err := parsePagination(c, 20)
	if err != nil {
		return err
	}

	filters := services.QuoteFilters{
		Language: c.Query("language"),
		Category: c.Query("category"),
		Limit:    limit,
		Offset:   offset,
	}

	quotes, total, err := h.Quotes.ListQuotes(filters)
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

// CreateQuote handles POST /api/quotes
// @Summary Submit a new quote
// @Tags Quotes
// @Accept json
// @Produce json
// @Param body body services.CreateQuoteInput true "Quote to create"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /quotes [post]
func (h *QuoteHandler) CreateQuote(c *fiber.Ctx) error {
	var input services.CreateQuoteInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, types.CodeValidationError, "Invalid input")
	}

	if strings.TrimSpace(input.Text) == "" || strings.TrimSpace(input.Author) == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, types.CodeValidationError, "Text and author are required")
	}

	quote, err := h.Quotes.CreateQuote(input)
	if err != nil {
		return err
	}

	return utils.CreatedResponse(c, quote)
}

// RefreshTodayCache handles POST /api/quotes/today/refresh
// @Summary Refresh today's quote cache
// @Description Drop and repopulate the cache entry for (today, language)
// @Tags Quotes
// @Produce json
// @Param language query string false "Language tag (default ko)"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /quotes/today/refresh [post]
func (h *QuoteHandler) RefreshTodayCache(c *fiber.Ctx) error {
	language, err := parseLanguage(c)
	if err != nil {
		return err
	}

	if err := h.Quotes.RefreshTodayCache(c.Context(), language); err != nil {
		return err
	}

	return utils.SuccessResponse(c, fiber.Map{
		"message": "Today quote cache refreshed",
	})
}
