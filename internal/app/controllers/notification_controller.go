package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/coursetalk/coursetalk/internal/app/models/dto"
	"github.com/coursetalk/coursetalk/internal/app/services"
	"github.com/coursetalk/coursetalk/internal/middleware"
)

// NotificationController handles notification feed operations
type NotificationController struct {
	notificationService services.NotificationService
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notificationService services.NotificationService) *NotificationController {
	return &NotificationController{notificationService: notificationService}
}

// ListNotifications handles GET /notifications
func (c *NotificationController) ListNotifications(ctx *gin.Context) {
	studentID, ok := middleware.StudentIDFromContext(ctx)
	if !ok {
		abortUnauthenticated(ctx)
		return
	}

	unreadOnly := false
	if raw := ctx.Query("unreadOnly"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid query parameters").
				WithField("unreadOnly")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		unreadOnly = parsed
	}

	notifications, err := c.notificationService.ListNotifications(ctx.Request.Context(), studentID, unreadOnly)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(notifications))
}

// UnreadCount handles GET /notifications/unread-count
func (c *NotificationController) UnreadCount(ctx *gin.Context) {
	studentID, ok := middleware.StudentIDFromContext(ctx)
	if !ok {
		abortUnauthenticated(ctx)
		return
	}

	count, err := c.notificationService.UnreadCount(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(count))
}

// MarkRead handles POST /notifications/:id/read
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	studentID, ok := middleware.StudentIDFromContext(ctx)
	if !ok {
		abortUnauthenticated(ctx)
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	notification, err := c.notificationService.MarkRead(ctx.Request.Context(), id, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(notification))
}

// MarkAllRead handles POST /notifications/read-all
func (c *NotificationController) MarkAllRead(ctx *gin.Context) {
	studentID, ok := middleware.StudentIDFromContext(ctx)
	if !ok {
		abortUnauthenticated(ctx)
		return
	}

	result, err := c.notificationService.MarkAllRead(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result))
}
