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

// AnnotationController handles notes on meeting recordings
type AnnotationController struct {
	annotationService *services.AnnotationService
	activityService   services.ActivityService
	logger            zerolog.Logger
}

// NewAnnotationController creates a new AnnotationController
func NewAnnotationController(
	annotationService *services.AnnotationService,
	activityService services.ActivityService,
	logger zerolog.Logger,
) *AnnotationController {
	return &AnnotationController{
		annotationService: annotationService,
		activityService:   activityService,
		logger:            logger,
	}
}

// GetAnnotations lists a meeting's annotations
// @Summary List annotations on a meeting
// @Description Lists the meeting's annotations ordered by their position in the recording
// @Tags annotations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Meeting ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Annotation} "Annotations"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Meeting not found"
// @Router /meetings/{id}/annotations [get]
func (c *AnnotationController) GetAnnotations(ctx *gin.Context) {
	meetingID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	annotations, err := c.annotationService.GetAnnotations(ctx.Request.Context(), meetingID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(annotations, ""))
}

// CreateAnnotation adds an annotation to a meeting recording
// @Summary Annotate a meeting recording
// @Description Attaches a text note to a second offset in the recording
// @Tags annotations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Meeting ID"
// @Param request body dto.CreateAnnotationRequest true "Annotation"
// @Success 201 {object} dto.APIResponse{data=models.Annotation} "Created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Meeting not found"
// @Router /meetings/{id}/annotations [post]
func (c *AnnotationController) CreateAnnotation(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	meetingID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateAnnotationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	annotation, err := c.annotationService.CreateAnnotation(ctx.Request.Context(), userID, meetingID, *req.Timestamp, req.Text)
	if err != nil {
		c.logger.Warn().Err(err).
			Int64("meetingID", meetingID).
			Msg("Failed to create annotation")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.activityService.Record(ctx.Request.Context(),
		auditEntry(ctx, &userID, models.ActionAnnotationCreate, models.EntityAnnotation, &annotation.ID,
			&models.ActivityMetadata{Details: map[string]interface{}{"meetingId": meetingID}}))

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(annotation, "Annotation created"))
}
