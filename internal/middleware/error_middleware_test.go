package middleware

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liqa/liqa-backend/internal/app/models/dto"
	"github.com/liqa/liqa-backend/internal/pkg/apperrors"
)

func recordAPIError(t *testing.T, err error) (int, dto.APIResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(recorder)

	HandleAPIError(ctx, err)

	var body dto.APIResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return recorder.Code, body
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{"user not found", apperrors.ErrUserNotFound, 404, dto.ErrorCodeResourceNotFound},
		{"meeting not found", apperrors.ErrMeetingNotFound, 404, dto.ErrorCodeResourceNotFound},
		{"already registered", apperrors.ErrAlreadyRegistered, 409, dto.ErrorCodeResourceAlreadyExists},
		{"email exists", apperrors.ErrEmailAlreadyExists, 409, dto.ErrorCodeResourceAlreadyExists},
		{"permission denied", apperrors.ErrPermissionDenied, 403, dto.ErrorCodeForbidden},
		{"invalid credentials", apperrors.ErrInvalidCredentials, 401, dto.ErrorCodeInvalidCredentials},
		{"expired token", apperrors.ErrTokenExpired, 401, dto.ErrorCodeExpiredToken},
		{"invalid reset token", apperrors.ErrInvalidResetToken, 400, dto.ErrorCodeInvalidToken},
		{"video url required", apperrors.ErrVideoURLRequired, 400, dto.ErrorCodeValidationFailed},
		{"unknown error", errors.New("disk on fire"), 500, dto.ErrorCodeInternalServer},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := recordAPIError(t, tc.err)
			assert.Equal(t, tc.wantStatus, status)
			require.NotNil(t, body.Error)
			assert.Equal(t, tc.wantCode, body.Error.Code)
		})
	}
}

func TestHandleAPIErrorWrappedSentinel(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), apperrors.ErrMeetingNotFound)

	status, body := recordAPIError(t, wrapped)
	assert.Equal(t, 404, status)
	require.NotNil(t, body.Error)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, body.Error.Code)
}

func TestHandleAPIErrorBadRequestKeepsMessage(t *testing.T) {
	status, body := recordAPIError(t, apperrors.NewBadRequestError("admins cannot demote themselves"))

	assert.Equal(t, 400, status)
	require.NotNil(t, body.Error)
	assert.Equal(t, "admins cannot demote themselves", body.Error.Message)
}
