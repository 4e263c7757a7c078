package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/liqa/liqa-backend/internal/app/models"
	"github.com/liqa/liqa-backend/internal/app/models/dto"
	"github.com/liqa/liqa-backend/internal/app/repositories"
	"github.com/liqa/liqa-backend/internal/app/services"
	"github.com/liqa/liqa-backend/internal/middleware"
	"github.com/liqa/liqa-backend/internal/pkg/helpers"
)

// AdminController handles the admin dashboard endpoints
type AdminController struct {
	userService         *services.UserService
	registrationService *services.RegistrationService
	activityService     services.ActivityService
	logger              zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(
	userService *services.UserService,
	registrationService *services.RegistrationService,
	activityService services.ActivityService,
	logger zerolog.Logger,
) *AdminController {
	return &AdminController{
		userService:         userService,
		registrationService: registrationService,
		activityService:     activityService,
		logger:              logger,
	}
}

// GetUsers lists users a page at a time
// @Summary List all users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 10, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.UserListResponse} "Users"
// @Failure 403 {object} dto.ErrorResponse "Admin required"
// @Router /admin/users [get]
func (c *AdminController) GetUsers(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	users, err := c.userService.GetAllUsers(ctx.Request.Context(), page, size)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to list users")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(users, ""))
}

// UpdateUserRole grants or revokes admin rights
// @Summary Change a user's role
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.UpdateUserRoleRequest true "New role"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Updated user"
// @Failure 400 {object} dto.ErrorResponse "Invalid request or self-demotion"
// @Failure 403 {object} dto.ErrorResponse "Admin required"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id}/role [patch]
func (c *AdminController) UpdateUserRole(ctx *gin.Context) {
	actorID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	userID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	user, err := c.userService.UpdateUserRole(ctx.Request.Context(), actorID, userID, *req.IsAdmin)
	if err != nil {
		c.logger.Warn().Err(err).
			Int64("actorID", actorID).
			Int64("userID", userID).
			Msg("Failed to update user role")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.activityService.Record(ctx.Request.Context(),
		auditEntry(ctx, &actorID, models.ActionAdmin, models.EntityUser, &userID,
			&models.ActivityMetadata{Details: map[string]interface{}{
				"operation": "role_change",
				"isAdmin":   *req.IsAdmin,
			}}))

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewUserResponse(user), "Role updated"))
}

// DeleteUser removes a user
// @Summary Delete a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse "Deleted"
// @Failure 400 {object} dto.ErrorResponse "Cannot delete own account here"
// @Failure 403 {object} dto.ErrorResponse "Admin required"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id} [delete]
func (c *AdminController) DeleteUser(ctx *gin.Context) {
	actorID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	userID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.userService.DeleteUser(ctx.Request.Context(), actorID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.activityService.Record(ctx.Request.Context(),
		auditEntry(ctx, &actorID, models.ActionUserDelete, models.EntityUser, &userID, nil))

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "User deleted"))
}

// GetRegistrations lists all registrations with user and meeting detail
// @Summary List all registrations
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.RegistrationDetailResponse} "Registrations"
// @Failure 403 {object} dto.ErrorResponse "Admin required"
// @Router /admin/registrations [get]
func (c *AdminController) GetRegistrations(ctx *gin.Context) {
	registrations, err := c.registrationService.GetAllRegistrations(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to list registrations")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(registrations, ""))
}

// GetActivityLogs queries the audit trail
// @Summary Query activity logs
// @Description Returns audit entries, optionally filtered by user, entity type, action and an inclusive date range, oldest first
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param userId query int false "Filter by actor"
// @Param entityType query string false "Filter by entity type"
// @Param action query string false "Filter by action"
// @Param startDate query string false "Inclusive range start (RFC 3339)"
// @Param endDate query string false "Inclusive range end (RFC 3339)"
// @Success 200 {object} dto.APIResponse{data=[]models.ActivityLog} "Audit entries"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 403 {object} dto.ErrorResponse "Admin required"
// @Router /admin/activity-logs [get]
func (c *AdminController) GetActivityLogs(ctx *gin.Context) {
	var req dto.ActivityLogFilterRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid activity log filter")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	filter := repositories.ActivityLogFilter{
		UserID:    req.UserID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if req.EntityType != nil {
		entityType := models.EntityType(*req.EntityType)
		filter.EntityType = &entityType
	}
	if req.Action != nil {
		action := models.ActionType(*req.Action)
		filter.Action = &action
	}

	entries := c.activityService.Query(ctx.Request.Context(), filter)
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(entries, ""))
}
