package handler

import (
	"errors"
	"net/http"

	"reviewhub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// bindingErrorResponse turns gin binding failures into field-keyed
// payloads, matching the shape the services produce for their own
// validation errors.
func bindingErrorResponse(err error) gin.H {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		out := gin.H{}
		for _, fieldErr := range validationErrs {
			out[fieldErr.Field()] = validationMessage(fieldErr)
		}
		return out
	}
	return gin.H{"error": err.Error()}
}

func validationMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fieldErr.Param()
	case "max":
		return "must be at most " + fieldErr.Param()
	case "oneof":
		return "must be one of: " + fieldErr.Param()
	}
	return "invalid value"
}

// handleServiceError maps service errors onto the HTTP taxonomy:
// field validation 400, missing resources 404, policy denials 403.
func handleServiceError(c *gin.Context, err error) {
	if fieldErr, ok := service.AsFieldError(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{fieldErr.Field: fieldErr.Message})
		return
	}

	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrTitleNotFound),
		errors.Is(err, service.ErrReviewNotFound),
		errors.Is(err, service.ErrCommentNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrGenreNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrDuplicateReview),
		errors.Is(err, service.ErrProtected):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidConfirmationCode):
		c.JSON(http.StatusBadRequest, gin.H{"confirmation_code": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
