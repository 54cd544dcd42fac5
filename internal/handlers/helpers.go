package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "carbontrack/internal/errors"
	"carbontrack/internal/logger"
	"carbontrack/internal/middleware"
	"carbontrack/internal/services"
	"carbontrack/internal/uuid"
)

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	userID, ok := middleware.UserID(c)
	if !ok {
		return "", apperrors.ErrUnauthorized
	}
	return userID, nil
}

// sessionFrom builds the session of the request: the authenticated user,
// or the guest session set by OptionalAuth.
func sessionFrom(c *gin.Context) (services.Session, error) {
	if userID, ok := middleware.UserID(c); ok {
		return services.Session{UserID: userID, IPAddress: c.ClientIP()}, nil
	}
	if guestID, ok := middleware.GuestID(c); ok {
		return services.Session{GuestID: guestID, IPAddress: c.ClientIP()}, nil
	}
	return services.Session{}, apperrors.ErrUnauthorized
}

// parsePathUUID parses a UUID path parameter.
// Returns ErrInvalidInput if the parameter is not a valid UUID.
func parsePathUUID(c *gin.Context, param string) (string, error) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id, nil
}

// bindError maps a request binding failure onto the matching domain error.
// fieldErrors maps JSON field names to the error returned for them.
func bindError(err error, fieldErrors map[string]*apperrors.AppError) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if appErr, ok := fieldErrors[typeErr.Field]; ok {
			return appErr
		}
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, fe := range validationErrs {
			if appErr, ok := fieldErrors[fe.Tag()]; ok {
				return appErr
			}
			if appErr, ok := fieldErrors[fe.Field()]; ok {
				return appErr
			}
		}
	}

	return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// MessageResponse is a plain confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}
