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

type UserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
	ListApprovers(ctx context.Context, approvalType domain.ApprovalType) ([]domain.User, error)
}

type UserHandler struct {
	svc UserService
}

func NewUserHandler(svc UserService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

// HandleGetUser godoc
// @Summary      Get a user by ID
// @Tags         users
// @Produce      json
// @Param        userID   path       int  true "user ID"
// @Success      200      {object}   domain.User
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /users/{userID} [get]
func (h *UserHandler) HandleGetUser(ctx *gin.Context) {
	userID, err := parseIDParam(ctx, "userID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	user, err := h.svc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(err))

			return
		}

		err = fmt.Errorf("v1.HandleGetUser -> h.svc.GetUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, user)
}

// HandleListApprovers godoc
// @Summary      List eligible approvers for a stage
// @Tags         users
// @Produce      json
// @Param        type     query      string true "approval type" Enums(senior_core, treasurer, counsellor)
// @Success      200      {array}    domain.User
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /approvers [get]
func (h *UserHandler) HandleListApprovers(ctx *gin.Context) {
	approvalType := domain.ApprovalType(ctx.Query("type"))
	switch approvalType {
	case domain.ApprovalSeniorCore, domain.ApprovalTreasurer, domain.ApprovalCounsellor:
	default:
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid approval type")))

		return
	}

	approvers, err := h.svc.ListApprovers(ctx.Request.Context(), approvalType)
	if err != nil {
		err = fmt.Errorf("v1.HandleListApprovers -> h.svc.ListApprovers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, approvers)
}
