package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/mwshop/backend/internal/domain/shared"
	"github.com/mwshop/backend/internal/interfaces/http/dto"
	"github.com/mwshop/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides envelope helpers shared by the API handlers
type BaseHandler struct{}

// Success sends a 200 envelope around a payload
func (h *BaseHandler) Success(c *gin.Context, message string, detail any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(message, detail))
}

// SuccessWithMeta sends a 200 envelope with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, message string, detail any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(message, detail, total, page, pageSize))
}

// Created sends a 201 envelope around a payload
func (h *BaseHandler) Created(c *gin.Context, message string, detail any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(message, detail))
}

// BadRequest sends a 400 envelope
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrCodeBadRequest, message, middleware.GetRequestID(c)))
}

// NotFound sends a 404 envelope
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, dto.NewErrorResponse(dto.ErrCodeNotFound, message, middleware.GetRequestID(c)))
}

// InternalError sends a 500 envelope
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(dto.ErrCodeInternal, message, middleware.GetRequestID(c)))
}

// HandleError converts an error to an envelope. Domain errors resolve their
// status from the error-code table; anything else is an internal error.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	requestID := middleware.GetRequestID(c)

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := dto.GetHTTPStatus(domainErr.Code)
		c.JSON(status, dto.NewErrorResponse(domainErr.Code, domainErr.Message, requestID))
		return
	}

	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
		dto.ErrCodeInternal,
		"An unexpected error occurred",
		requestID,
	))
}

// HandleBindingError converts a gin binding failure to a 400 envelope,
// listing per-field messages when the cause is validator tags
func (h *BaseHandler) HandleBindingError(c *gin.Context, err error) {
	requestID := middleware.GetRequestID(c)

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]dto.ValidationField, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, dto.ValidationField{
				Field:   strings.ToLower(fe.Field()),
				Message: validationMessage(fe),
			})
		}
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse("Request validation failed", requestID, fields))
		return
	}

	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrCodeBadRequest, "Malformed request body", requestID))
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "email":
		return "must be a valid email address"
	default:
		return "is invalid"
	}
}
