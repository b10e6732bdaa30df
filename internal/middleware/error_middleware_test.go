package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demir/classhub/internal/app/models/dto"
	"github.com/demir/classhub/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func doHandleAPIError(t *testing.T, err error) (int, *dto.ErrorResponse) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	HandleAPIError(c, err)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, &body
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{"class not found", apperrors.ErrClassNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"unknown join code", apperrors.ErrInvalidJoinCode, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"unpublished lesson reads as missing", apperrors.ErrLessonNotPublished, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"unpublished assignment reads as missing", apperrors.ErrAssignmentNotPublished, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"no submission yet", apperrors.ErrSubmissionNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{"expired token", apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
		{"disabled account", apperrors.ErrAccountDisabled, http.StatusForbidden, dto.ErrorCodeForbidden},
		{"not enrolled", apperrors.ErrNotEnrolled, http.StatusForbidden, dto.ErrorCodeForbidden},
		{"duplicate email", apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"double enrollment", apperrors.ErrAlreadyEnrolled, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"double submission", apperrors.ErrAlreadySubmitted, http.StatusConflict, dto.ErrorCodeConflict},
		{"double answer", apperrors.ErrQuestionAlreadyAnswered, http.StatusConflict, dto.ErrorCodeConflict},
		{"archived class", apperrors.ErrClassArchived, http.StatusConflict, dto.ErrorCodeConflict},
		{"points out of range", apperrors.ErrPointsOutOfRange, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"max points below awarded grade", apperrors.ErrMaxPointsBelowAwarded, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"disallowed file type", apperrors.ErrInvalidFileType, http.StatusBadRequest, dto.ErrorCodeInvalidFile},
		{"oversized file", apperrors.ErrFileTooLarge, http.StatusBadRequest, dto.ErrorCodeInvalidFile},
		{"unknown error", errors.New("backend exploded"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, body := doHandleAPIError(t, tc.err)
			assert.Equal(t, tc.wantStatus, status)
			require.NotNil(t, body.Error)
			assert.Equal(t, tc.wantCode, body.Error.Code)
			assert.False(t, body.Success)
		})
	}
}

func TestHandleAPIErrorUnwrapsWrappedErrors(t *testing.T) {
	err := fmt.Errorf("load class 7: %w", apperrors.ErrClassNotFound)

	status, body := doHandleAPIError(t, err)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, body.Error.Code)
}

func TestHandleAPIErrorKeepsCustomMessages(t *testing.T) {
	status, body := doHandleAPIError(t, apperrors.NewForbiddenError("Only the class teacher can grade submissions"))
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, dto.ErrorCodeForbidden, body.Error.Code)
	assert.Equal(t, "Only the class teacher can grade submissions", body.Error.Message)

	status, body = doHandleAPIError(t, apperrors.NewConflictError("Late submissions are closed for this assignment"))
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Late submissions are closed for this assignment", body.Error.Message)
}

func TestHandleAPIErrorHidesInternalDetails(t *testing.T) {
	_, body := doHandleAPIError(t, errors.New("pq: connection refused"))
	assert.Equal(t, "Internal server error", body.Error.Message)
}
