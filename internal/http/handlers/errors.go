package handlers

import (
	"net/http"

	"yamu-backend/internal/domain"
	"yamu-backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	resp := ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	}
	reqID := middleware.GetRequestID(c)
	if reqID != "" {
		c.JSON(status, gin.H{
			"error":      resp.Error,
			"code":       resp.Code,
			"details":    resp.Details,
			"request_id": reqID,
			"message":    message,
		})
		return
	}
	c.JSON(status, resp)
}

// RespondDomainError maps domain errors to HTTP responses. Every rejected
// operation surfaces a reason the caller can render.
func RespondDomainError(c *gin.Context, err error) {
	if fieldErr, ok := domain.AsFieldValidation(err); ok {
		respondError(c, http.StatusUnprocessableEntity, "validation_failed", "please correct the highlighted fields", fieldErr.Fields)
		return
	}

	switch {
	case domain.IsMissingSelection(err):
		respondError(c, http.StatusBadRequest, "missing_selection", err.Error(), nil)
	case domain.IsCapacityExceeded(err):
		respondError(c, http.StatusConflict, "capacity_exceeded", err.Error(), nil)
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong", nil)
	}
}
