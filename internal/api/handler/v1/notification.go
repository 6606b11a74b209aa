package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/api/handler/v1/response"
	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/domain"
	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/service"
)

type NotificationService interface {
	ListNotifications(ctx context.Context, userID uint) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id, userID uint) error
}

type NotificationHandler struct {
	svc NotificationService
}

func NewNotificationHandler(svc NotificationService) *NotificationHandler {
	return &NotificationHandler{
		svc: svc,
	}
}

// HandleListNotifications godoc
// @Summary      List the caller's notifications
// @Tags         notifications
// @Produce      json
// @Success      200      {array}    domain.Notification
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /notifications [get]
func (h *NotificationHandler) HandleListNotifications(ctx *gin.Context) {
	user, err := getUserFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err.Error()))

		return
	}

	notifications, err := h.svc.ListNotifications(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListNotifications -> h.svc.ListNotifications -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, notifications)
}

// HandleMarkRead godoc
// @Summary      Mark a notification as read
// @Tags         notifications
// @Produce      json
// @Param        notificationID path int true "notification ID"
// @Success      204      "no content"
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /notifications/{notificationID}/read [post]
func (h *NotificationHandler) HandleMarkRead(ctx *gin.Context) {
	user, err := getUserFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err.Error()))

		return
	}

	notificationID, err := parseIDParam(ctx, "notificationID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.MarkRead(ctx.Request.Context(), notificationID, user.ID); err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(err))

			return
		}

		err = fmt.Errorf("v1.HandleMarkRead -> h.svc.MarkRead -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}
