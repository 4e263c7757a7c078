package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/liqa/liqa-backend/internal/app/models/dto"
	"github.com/liqa/liqa-backend/internal/app/services"
	"github.com/liqa/liqa-backend/internal/middleware"
	"github.com/liqa/liqa-backend/internal/pkg/apperrors"
)

// RecommendationController serves personalized meeting recommendations
type RecommendationController struct {
	recommendationService services.RecommendationService
	logger                zerolog.Logger
}

// NewRecommendationController creates a new RecommendationController
func NewRecommendationController(
	recommendationService services.RecommendationService,
	logger zerolog.Logger,
) *RecommendationController {
	return &RecommendationController{
		recommendationService: recommendationService,
		logger:                logger,
	}
}

// GetRecommendations returns the caller's top recommended meetings
// @Summary Get meeting recommendations
// @Description Returns up to five upcoming meetings ranked against the caller's preferences and history
// @Tags recommendations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.MeetingRecommendation} "Recommendations"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Unable to compute recommendations"
// @Router /recommendations [get]
func (c *RecommendationController) GetRecommendations(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	recommendations, err := c.recommendationService.GetRecommendations(ctx.Request.Context(), userID)
	if err != nil {
		c.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to compute recommendations")
		if errors.Is(err, apperrors.ErrUserNotFound) {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Unable to compute recommendations")
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(errorDetail))
			return
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(recommendations, ""))
}
