package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coursetalk/coursetalk/internal/app/models/dto"
	"github.com/coursetalk/coursetalk/internal/app/services"
	"github.com/coursetalk/coursetalk/internal/middleware"
	"github.com/coursetalk/coursetalk/internal/pkg/helpers"
)

// QuestionController handles question operations
type QuestionController struct {
	questionService services.QuestionService
}

// NewQuestionController creates a new QuestionController
func NewQuestionController(questionService services.QuestionService) *QuestionController {
	return &QuestionController{questionService: questionService}
}

// CreateQuestion handles POST /questions
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	studentID, ok := middleware.StudentIDFromContext(ctx)
	if !ok {
		abortUnauthenticated(ctx)
		return
	}

	var req dto.CreateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	if !middleware.ValidateStruct(ctx, &req) {
		return
	}

	question, err := c.questionService.CreateQuestion(ctx.Request.Context(), studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(question))
}

// GetQuestion handles GET /questions/:id
func (c *QuestionController) GetQuestion(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	question, err := c.questionService.GetQuestion(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(question))
}

// ListForCourse handles GET /courses/:id/questions
func (c *QuestionController) ListForCourse(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var filter dto.QuestionFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid query parameters").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	questions, err := c.questionService.ListForCourse(ctx.Request.Context(), courseID, filter.Sort)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(questions))
}

// UpdateQuestion handles PATCH /questions/:id. Strict decoding rejects
// payloads naming fields outside the update allow-list, posterId and
// courseId included.
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	studentID, ok := middleware.StudentIDFromContext(ctx)
	if !ok {
		abortUnauthenticated(ctx)
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateQuestionRequest
	if err := helpers.DecodeStrict(ctx.Request.Body, &req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	if !middleware.ValidateStruct(ctx, &req) {
		return
	}

	question, err := c.questionService.UpdateQuestion(ctx.Request.Context(), id, studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(question))
}

// DeleteQuestion handles DELETE /questions/:id
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	studentID, ok := middleware.StudentIDFromContext(ctx)
	if !ok {
		abortUnauthenticated(ctx)
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	result, err := c.questionService.DeleteQuestion(ctx.Request.Context(), id, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result))
}
