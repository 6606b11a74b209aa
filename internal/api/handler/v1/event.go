package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/api/handler/v1/request"
	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/api/handler/v1/response"
	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/domain"
	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/service"
)

type EventService interface {
	ProposeEvent(ctx context.Context, proposer domain.User, event domain.Event) (domain.Event, error)
	SubmitApproval(ctx context.Context, approver domain.User, eventID uint, approvalType domain.ApprovalType, decision domain.ApprovalStatus, comments string) (domain.Event, error)
	RefreshEventStatus(ctx context.Context, eventID uint) (domain.Event, error)
	GetEvent(ctx context.Context, eventID uint) (domain.Event, error)
	ListEvents(ctx context.Context, status domain.EventStatus, chapterID uint) ([]domain.Event, error)
	GetEventApprovals(ctx context.Context, eventID uint) ([]domain.EventApproval, error)
	ListPendingApprovals(ctx context.Context, approverID uint) ([]domain.EventApproval, error)
}

type EventHandler struct {
	svc EventService
}

func NewEventHandler(svc EventService) *EventHandler {
	return &EventHandler{
		svc: svc,
	}
}

// HandleProposeEvent godoc
// @Summary      Propose a new event
// @Tags         events
// @Produce      json
// @Param        request   body      request.ProposeEventRequest true "request body"
// @Success      201      {object}   domain.Event
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /events [post]
func (h *EventHandler) HandleProposeEvent(ctx *gin.Context) {
	proposer, err := getUserFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err.Error()))

		return
	}

	var req request.ProposeEventRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	event, err := h.svc.ProposeEvent(ctx.Request.Context(), proposer, domain.Event{
		Title:        req.Title,
		Description:  req.Description,
		EventType:    domain.EventType(req.EventType),
		ProposedDate: req.ParsedDate(),
		ChapterID:    req.ChapterID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProposerNotAllowed), errors.Is(err, service.ErrOutsideChapter):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrLeadTimeTooShort), errors.Is(err, service.ErrQuorumPoolTooSmall):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrDateFull):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleProposeEvent -> h.svc.ProposeEvent -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, event)
}

// HandleSubmitApproval godoc
// @Summary      Record an approval decision for an event
// @Tags         events
// @Produce      json
// @Param        eventID  path       int  true "event ID"
// @Param        request   body      request.SubmitApprovalRequest true "request body"
// @Success      200      {object}   domain.Event
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /events/{eventID}/approvals [post]
func (h *EventHandler) HandleSubmitApproval(ctx *gin.Context) {
	approver, err := getUserFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err.Error()))

		return
	}

	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.SubmitApprovalRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	event, err := h.svc.SubmitApproval(
		ctx.Request.Context(),
		approver,
		eventID,
		domain.ApprovalType(req.ApprovalType),
		domain.ApprovalStatus(req.Decision),
		req.Comments,
	)
	if err != nil {
		renderApprovalErr(ctx, err, "v1.HandleSubmitApproval")

		return
	}

	ctx.JSON(http.StatusOK, event)
}

func renderApprovalErr(ctx *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		response.RenderErr(ctx, response.ErrNotFound(err))
	case errors.Is(err, service.ErrApprovalNotAssigned):
		response.RenderErr(ctx, response.ErrPermissionDenied(err))
	case errors.Is(err, service.ErrApprovalAlreadyDecided),
		errors.Is(err, service.ErrWrongApprovalStage),
		errors.Is(err, service.ErrEventFinalized),
		errors.Is(err, service.ErrTreasurerMissing),
		errors.Is(err, service.ErrDateFull):
		response.RenderErr(ctx, response.ErrConflict(err))
	default:
		err = fmt.Errorf("%s -> %w", op, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}

// HandleRefreshStatus godoc
// @Summary      Re-derive an event's status from its approval ledger
// @Tags         events
// @Produce      json
// @Param        eventID  path       int  true "event ID"
// @Success      200      {object}   domain.Event
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /events/{eventID}/refresh [post]
func (h *EventHandler) HandleRefreshStatus(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	event, err := h.svc.RefreshEventStatus(ctx.Request.Context(), eventID)
	if err != nil {
		renderApprovalErr(ctx, err, "v1.HandleRefreshStatus")

		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleGetEvent godoc
// @Summary      Get an event by ID
// @Tags         events
// @Produce      json
// @Param        eventID  path       int  true "event ID"
// @Success      200      {object}   domain.Event
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /events/{eventID} [get]
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	event, err := h.svc.GetEvent(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(err))

			return
		}

		err = fmt.Errorf("v1.HandleGetEvent -> h.svc.GetEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleListEvents godoc
// @Summary      List events
// @Tags         events
// @Produce      json
// @Param        status     query    string false "filter by status"
// @Param        chapter_id query    int    false "filter by chapter"
// @Success      200      {array}    domain.Event
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /events [get]
func (h *EventHandler) HandleListEvents(ctx *gin.Context) {
	status := domain.EventStatus(ctx.Query("status"))

	var chapterID uint
	if raw := ctx.Query("chapter_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid chapter_id")))

			return
		}
		chapterID = uint(parsed)
	}

	events, err := h.svc.ListEvents(ctx.Request.Context(), status, chapterID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListEvents -> h.svc.ListEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, events)
}

// HandleGetEventApprovals godoc
// @Summary      List the approval ledger of an event
// @Tags         events
// @Produce      json
// @Param        eventID  path       int  true "event ID"
// @Success      200      {array}    domain.EventApproval
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /events/{eventID}/approvals [get]
func (h *EventHandler) HandleGetEventApprovals(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	approvals, err := h.svc.GetEventApprovals(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(err))

			return
		}

		err = fmt.Errorf("v1.HandleGetEventApprovals -> h.svc.GetEventApprovals -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, approvals)
}

// HandleListPendingApprovals godoc
// @Summary      List the caller's pending approval slots
// @Tags         events
// @Produce      json
// @Success      200      {array}    domain.EventApproval
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /approvals/pending [get]
func (h *EventHandler) HandleListPendingApprovals(ctx *gin.Context) {
	user, err := getUserFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err.Error()))

		return
	}

	approvals, err := h.svc.ListPendingApprovals(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListPendingApprovals -> h.svc.ListPendingApprovals -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, approvals)
}
