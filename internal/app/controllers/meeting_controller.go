package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/liqa/liqa-backend/internal/app/models"
	"github.com/liqa/liqa-backend/internal/app/models/dto"
	"github.com/liqa/liqa-backend/internal/app/services"
	"github.com/liqa/liqa-backend/internal/middleware"
)

// MeetingController handles meeting listing, registration and admin CRUD
type MeetingController struct {
	meetingService      *services.MeetingService
	registrationService *services.RegistrationService
	activityService     services.ActivityService
	logger              zerolog.Logger
}

// NewMeetingController creates a new MeetingController
func NewMeetingController(
	meetingService *services.MeetingService,
	registrationService *services.RegistrationService,
	activityService services.ActivityService,
	logger zerolog.Logger,
) *MeetingController {
	return &MeetingController{
		meetingService:      meetingService,
		registrationService: registrationService,
		activityService:     activityService,
		logger:              logger,
	}
}

// GetMeetings lists meetings
// @Summary List meetings
// @Description Lists all meetings, optionally filtered with ?isUpcoming=true|false
// @Tags meetings
// @Produce json
// @Param isUpcoming query bool false "Filter by upcoming/past"
// @Success 200 {object} dto.APIResponse{data=[]models.Meeting} "Meetings"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /meetings [get]
func (c *MeetingController) GetMeetings(ctx *gin.Context) {
	var isUpcoming *bool
	if raw := ctx.Query("isUpcoming"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid isUpcoming parameter")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		isUpcoming = &parsed
	}

	meetings, err := c.meetingService.GetAllMeetings(ctx.Request.Context(), isUpcoming)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to list meetings")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(meetings, ""))
}

// GetMeeting returns a single meeting
// @Summary Get a meeting
// @Tags meetings
// @Produce json
// @Param id path int true "Meeting ID"
// @Success 200 {object} dto.APIResponse{data=models.Meeting} "Meeting"
// @Failure 400 {object} dto.ErrorResponse "Invalid meeting ID"
// @Failure 404 {object} dto.ErrorResponse "Meeting not found"
// @Router /meetings/{id} [get]
func (c *MeetingController) GetMeeting(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	meeting, err := c.meetingService.GetMeetingByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(meeting, ""))
}

// RegisterForMeeting registers the caller for a meeting
// @Summary Register for a meeting
// @Description Registers the authenticated user once per meeting and sends a confirmation email
// @Tags meetings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Meeting ID"
// @Success 201 {object} dto.APIResponse{data=models.Registration} "Registered"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Meeting not found"
// @Failure 409 {object} dto.ErrorResponse "Already registered"
// @Router /meetings/{id}/register [post]
func (c *MeetingController) RegisterForMeeting(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	meetingID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	registration, err := c.registrationService.RegisterForMeeting(ctx.Request.Context(), userID, meetingID)
	if err != nil {
		c.logger.Warn().Err(err).
			Int64("userID", userID).
			Int64("meetingID", meetingID).
			Msg("Meeting registration failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.activityService.Record(ctx.Request.Context(),
		auditEntry(ctx, &userID, models.ActionRegistrationCreate, models.EntityRegistration, &registration.ID,
			&models.ActivityMetadata{Details: map[string]interface{}{"meetingId": meetingID}}))

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(registration, "Registered for meeting"))
}

// CreateMeeting creates a meeting (admin)
// @Summary Create a meeting
// @Description Creates a meeting and announces it to all users. Past meetings require a video URL.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateMeetingRequest true "Meeting"
// @Success 201 {object} dto.APIResponse{data=models.Meeting} "Created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 403 {object} dto.ErrorResponse "Admin required"
// @Router /meetings [post]
func (c *MeetingController) CreateMeeting(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateMeetingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	meeting, err := c.meetingService.CreateMeeting(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to create meeting")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.activityService.Record(ctx.Request.Context(),
		auditEntry(ctx, &userID, models.ActionMeetingCreate, models.EntityMeeting, &meeting.ID,
			&models.ActivityMetadata{NewState: meetingSnapshot(meeting)}))

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(meeting, "Meeting created"))
}

// UpdateMeeting partially updates a meeting (admin)
// @Summary Update a meeting
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Meeting ID"
// @Param request body dto.UpdateMeetingRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Meeting} "Updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 403 {object} dto.ErrorResponse "Admin required"
// @Failure 404 {object} dto.ErrorResponse "Meeting not found"
// @Router /meetings/{id} [put]
func (c *MeetingController) UpdateMeeting(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateMeetingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	previous, updated, err := c.meetingService.UpdateMeeting(ctx.Request.Context(), id, &req)
	if err != nil {
		c.logger.Error().Err(err).Int64("meetingID", id).Msg("Failed to update meeting")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.activityService.Record(ctx.Request.Context(),
		auditEntry(ctx, &userID, models.ActionMeetingUpdate, models.EntityMeeting, &id,
			&models.ActivityMetadata{
				PreviousState: meetingSnapshot(previous),
				NewState:      meetingSnapshot(updated),
			}))

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(updated, "Meeting updated"))
}

// DeleteMeeting removes a meeting (admin)
// @Summary Delete a meeting
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Meeting ID"
// @Success 200 {object} dto.APIResponse "Deleted"
// @Failure 403 {object} dto.ErrorResponse "Admin required"
// @Failure 404 {object} dto.ErrorResponse "Meeting not found"
// @Router /meetings/{id} [delete]
func (c *MeetingController) DeleteMeeting(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	meeting, err := c.meetingService.DeleteMeeting(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.activityService.Record(ctx.Request.Context(),
		auditEntry(ctx, &userID, models.ActionMeetingDelete, models.EntityMeeting, &id,
			&models.ActivityMetadata{PreviousState: meetingSnapshot(meeting)}))

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Meeting deleted"))
}
