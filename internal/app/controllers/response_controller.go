package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coursetalk/coursetalk/internal/app/models/dto"
	"github.com/coursetalk/coursetalk/internal/app/services"
	"github.com/coursetalk/coursetalk/internal/middleware"
	"github.com/coursetalk/coursetalk/internal/pkg/helpers"
)

// ResponseController handles response operations
type ResponseController struct {
	responseService services.ResponseService
}

// NewResponseController creates a new ResponseController
func NewResponseController(responseService services.ResponseService) *ResponseController {
	return &ResponseController{responseService: responseService}
}

// CreateResponse handles POST /responses
func (c *ResponseController) CreateResponse(ctx *gin.Context) {
	studentID, ok := middleware.StudentIDFromContext(ctx)
	if !ok {
		abortUnauthenticated(ctx)
		return
	}

	var req dto.CreateResponseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	if !middleware.ValidateStruct(ctx, &req) {
		return
	}

	response, err := c.responseService.CreateResponse(ctx.Request.Context(), studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(response))
}

// GetResponse handles GET /responses/:id
func (c *ResponseController) GetResponse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	response, err := c.responseService.GetResponse(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(response))
}

// ListForQuestion handles GET /questions/:id/responses
func (c *ResponseController) ListForQuestion(ctx *gin.Context) {
	questionID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	responses, err := c.responseService.ListForQuestion(ctx.Request.Context(), questionID, ctx.Query("sort"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(responses))
}

// UpdateResponse handles PATCH /responses/:id. Strict decoding keeps the
// update surface to content and the helpful flag.
func (c *ResponseController) UpdateResponse(ctx *gin.Context) {
	studentID, ok := middleware.StudentIDFromContext(ctx)
	if !ok {
		abortUnauthenticated(ctx)
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateResponseRequest
	if err := helpers.DecodeStrict(ctx.Request.Body, &req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	if !middleware.ValidateStruct(ctx, &req) {
		return
	}

	response, err := c.responseService.UpdateResponse(ctx.Request.Context(), id, studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(response))
}

// DeleteResponse handles DELETE /responses/:id
func (c *ResponseController) DeleteResponse(ctx *gin.Context) {
	studentID, ok := middleware.StudentIDFromContext(ctx)
	if !ok {
		abortUnauthenticated(ctx)
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	result, err := c.responseService.DeleteResponse(ctx.Request.Context(), id, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result))
}
