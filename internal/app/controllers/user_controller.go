package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/liqa/liqa-backend/internal/app/models"
	"github.com/liqa/liqa-backend/internal/app/models/dto"
	"github.com/liqa/liqa-backend/internal/app/services"
	"github.com/liqa/liqa-backend/internal/middleware"
)

// UserController handles the caller's own profile and account
type UserController struct {
	userService     *services.UserService
	activityService services.ActivityService
	logger          zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(
	userService *services.UserService,
	activityService services.ActivityService,
	logger zerolog.Logger,
) *UserController {
	return &UserController{
		userService:     userService,
		activityService: activityService,
		logger:          logger,
	}
}

// GetProfile returns the authenticated user's profile
// @Summary Get own profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Profile"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /profile [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	user, err := c.userService.GetProfile(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewUserResponse(user), ""))
}

// UpdateProfile updates the authenticated user's name and preferences
// @Summary Update own profile
// @Description Partially updates display name and meeting preferences (interests, preferred days, preferred time of day)
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Updated profile"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	user, err := c.userService.UpdateProfile(ctx.Request.Context(), userID, &req)
	if err != nil {
		c.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to update profile")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.activityService.Record(ctx.Request.Context(),
		auditEntry(ctx, &userID, models.ActionUserUpdate, models.EntityUser, &userID, nil))

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewUserResponse(user), "Profile updated"))
}

// DeleteAccount removes the authenticated user's account
// @Summary Delete own account
// @Description Permanently deletes the account with its registrations and annotations
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Account deleted"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /account [delete]
func (c *UserController) DeleteAccount(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	if err := c.userService.DeleteAccount(ctx.Request.Context(), userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.activityService.Record(ctx.Request.Context(),
		auditEntry(ctx, &userID, models.ActionUserDelete, models.EntityUser, &userID, nil))

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Account deleted"))
}
