package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"secret-draw-api/internal/response"
)

// handleServiceError maps service-layer errors to HTTP responses
func handleServiceError(c *gin.Context, logger *zap.Logger, err error) {
	var appErr *response.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		switch appErr.Code {
		case response.ErrCodeValidation:
			status = http.StatusBadRequest
		case response.ErrCodeNotFound:
			status = http.StatusNotFound
		}
		if status == http.StatusInternalServerError {
			logger.Error("Service error", zap.String("code", appErr.Code), zap.String("details", appErr.Details))
		}
		response.SendError(c, status, appErr.Code, appErr.Message)
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.SendError(c, http.StatusNotFound, response.ErrCodeNotFound, "Resource not found")
		return
	}

	logger.Error("Unhandled service error", zap.Error(err))
	response.SendError(c, http.StatusInternalServerError, response.ErrCodeInternal, "Internal server error")
}
