package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/author-clock/internal/services"
	"github.com/localnerve/author-clock/internal/types"
	"github.com/localnerve/author-clock/internal/utils"
	"gorm.io/datatypes"
)

// SessionHandler handles session introspection and preferences routes
type SessionHandler struct {
	Sessions *services.SessionService
}

// preferencesInput is the body accepted by UpdatePreferences.
type preferencesInput struct {
	Preferences datatypes.JSON `json:"preferences"`
}

// GetSessionInfo handles GET /api/session
// @Summary Get the current session
// @Description Return the session and its anonymous user profile
// @Tags Session
// @Produce json
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security SessionAuth
// @Router /session [get]
func (h *SessionHandler) GetSessionInfo(c *fiber.Ctx) error {
	token, ok := c.Locals("sessionID").(string)
	if !ok || token == "" {
		return &types.CustomError{
			Status:  fiber.StatusUnauthorized,
			Code:    types.CodeSessionRequired,
			Message: "Session ID is required. Please provide X-Session-ID header.",
		}
	}

	info, err := h.Sessions.Info(token)
	if err != nil {
		return err
	}
	if info == nil {
		// The auth middleware resolved this token moments ago, so a miss
		// here means a concurrent cleanup removed it.
		return utils.NotFoundResponse(c, "Session not found")
	}

	return utils.SuccessResponse(c, info)
}

// UpdatePreferences handles PUT /api/session/preferences
// @Summary Update session preferences
// @Description Replace the preferences blob on the session's user
// @Tags Session
// @Accept json
// @Produce json
// @Param body body preferencesInput true "Preferences to store"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security SessionAuth
// @Router /session/preferences [put]
func (h *SessionHandler) UpdatePreferences(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var input preferencesInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, types.CodeValidationError, "Invalid input")
	}
	if len(input.Preferences) == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, types.CodeValidationError, "Preferences are required")
	}

	if err := h.Sessions.UpdatePreferences(userID, input.Preferences); err != nil {
		return err
	}

	return utils.SuccessResponse(c, fiber.Map{
		"message": "Preferences updated",
	})
}
