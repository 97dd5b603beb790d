package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/coursetalk/coursetalk/internal/app/models/dto"
)

var validate = validator.New()

// ValidateStruct runs validator tags against an already-bound request body.
// Returns false after writing the error response when validation fails.
func ValidateStruct(c *gin.Context, obj interface{}) bool {
	if err := validate.Struct(obj); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return false
	}
	return true
}
