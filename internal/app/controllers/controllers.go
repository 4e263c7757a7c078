// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/liqa/liqa-backend/internal/app/models"
	"github.com/liqa/liqa-backend/internal/app/models/dto"
)

// currentUserID reads the authenticated user's ID set by the JWT middleware
func currentUserID(ctx *gin.Context) (int64, bool) {
	value, exists := ctx.Get("userID")
	if !exists {
		return 0, false
	}
	userID, ok := value.(int64)
	return userID, ok
}

// requireUserID aborts with 401 when no authenticated user is present
func requireUserID(ctx *gin.Context) (int64, bool) {
	userID, ok := currentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return userID, true
}

// pathID parses a numeric :id style path parameter, aborting with 400 on
// malformed input
func pathID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// auditEntry builds an audit record for the current request, capturing the
// client IP and user agent
func auditEntry(ctx *gin.Context, userID *int64, action models.ActionType, entityType models.EntityType, entityID *int64, metadata *models.ActivityMetadata) *models.ActivityLog {
	ip := ctx.ClientIP()
	ua := ctx.Request.UserAgent()
	return &models.ActivityLog{
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Metadata:   metadata,
		IPAddress:  &ip,
		UserAgent:  &ua,
	}
}

// meetingSnapshot flattens a meeting into audit metadata state
func meetingSnapshot(m *models.Meeting) map[string]interface{} {
	if m == nil {
		return nil
	}
	return map[string]interface{}{
		"title":          m.Title,
		"description":    m.Description,
		"date":           m.Date,
		"videoUrl":       m.VideoURL,
		"isUpcoming":     m.IsUpcoming,
		"categories":     m.Categories,
		"topics":         m.Topics,
		"targetAudience": m.TargetAudience,
	}
}
