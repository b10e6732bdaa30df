package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/demir/classhub/internal/app/models/dto"
	"github.com/demir/classhub/internal/pkg/apperrors"
)

// HandleAPIError translates application errors into HTTP responses with
// stable error codes. Controllers call this for every service failure.
func HandleAPIError(c *gin.Context, err error) {
	// Errors built with a custom message keep it in the response. The status
	// comes from the wrapped sentinel.
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) && customErr.Message != "" {
		switch {
		case errors.Is(err, apperrors.ErrResourceNotFound):
			respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, customErr.Message)
		case errors.Is(err, apperrors.ErrConflict):
			respond(c, http.StatusConflict, dto.ErrorCodeConflict, customErr.Message)
		case errors.Is(err, apperrors.ErrPermissionDenied):
			respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, customErr.Message)
		case errors.Is(err, apperrors.ErrBadRequest),
			errors.Is(err, apperrors.ErrValidationFailed):
			respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, customErr.Message)
		default:
			respond(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
		}
		return
	}

	switch {
	// Not found
	case errors.Is(err, apperrors.ErrUserNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "User not found")
	case errors.Is(err, apperrors.ErrClassNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Class not found")
	case errors.Is(err, apperrors.ErrInvalidJoinCode):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Invalid join code")
	case errors.Is(err, apperrors.ErrLessonNotFound),
		errors.Is(err, apperrors.ErrLessonNotPublished):
		// Unpublished lessons read as missing for students
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Lesson not found")
	case errors.Is(err, apperrors.ErrAssignmentNotFound),
		errors.Is(err, apperrors.ErrAssignmentNotPublished):
		// Unpublished assignments read as missing for students
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Assignment not found")
	case errors.Is(err, apperrors.ErrSubmissionNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Submission not found")
	case errors.Is(err, apperrors.ErrQuestionNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Question not found")
	case errors.Is(err, apperrors.ErrAnnouncementNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Announcement not found")
	case errors.Is(err, apperrors.ErrFileNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "File not found")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found")

	// Authentication
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrTokenNotFound):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Token not found")
	case errors.Is(err, apperrors.ErrAccountDisabled):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Account is disabled")

	// Authorization
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied")
	case errors.Is(err, apperrors.ErrNotEnrolled):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Not enrolled in this class")

	// Conflicts
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists")
	case errors.Is(err, apperrors.ErrAlreadyEnrolled):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Already enrolled in this class")
	case errors.Is(err, apperrors.ErrAlreadySubmitted):
		respond(c, http.StatusConflict, dto.ErrorCodeConflict, "Assignment already submitted")
	case errors.Is(err, apperrors.ErrQuestionAlreadyAnswered):
		respond(c, http.StatusConflict, dto.ErrorCodeConflict, "Question already answered")
	case errors.Is(err, apperrors.ErrClassArchived):
		respond(c, http.StatusConflict, dto.ErrorCodeConflict, "Class is archived")
	case errors.Is(err, apperrors.ErrConflict):
		respond(c, http.StatusConflict, dto.ErrorCodeConflict, "Resource conflict")

	// Bad requests
	case errors.Is(err, apperrors.ErrPointsOutOfRange):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Points are outside the allowed range")
	case errors.Is(err, apperrors.ErrMaxPointsBelowAwarded):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Max points cannot drop below points already awarded")
	case errors.Is(err, apperrors.ErrInvalidFileType):
		respond(c, http.StatusBadRequest, dto.ErrorCodeInvalidFile, "File type is not allowed")
	case errors.Is(err, apperrors.ErrFileTooLarge):
		respond(c, http.StatusBadRequest, dto.ErrorCodeInvalidFile, "File exceeds the maximum allowed size")
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrInvalidEmail),
		errors.Is(err, apperrors.ErrInvalidPassword):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed")
	case errors.Is(err, apperrors.ErrBadRequest):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Bad request")

	default:
		respond(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func respond(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}
