package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/api/handler/v1/request"
	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/api/handler/v1/response"
	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/domain"
	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/service"
)

type ProctorService interface {
	AssignProctor(ctx context.Context, assigner domain.User, proctorID, execomID uint) (domain.ProctorMapping, error)
	UnassignProctor(ctx context.Context, assigner domain.User, proctorID, execomID uint) error
	ListMappings(ctx context.Context, viewer domain.User, proctorID uint) ([]domain.ProctorMapping, error)
	RecordUpdate(ctx context.Context, proctor domain.User, execomID uint, text string, periodStart, periodEnd time.Time) (domain.ProctorUpdate, error)
	ListUpdates(ctx context.Context, viewer domain.User, proctorID, execomID uint) ([]domain.ProctorUpdate, error)
}

type ProctorHandler struct {
	svc ProctorService
}

func NewProctorHandler(svc ProctorService) *ProctorHandler {
	return &ProctorHandler{
		svc: svc,
	}
}

// HandleAssignProctor godoc
// @Summary      Map an execom to a proctor
// @Tags         proctors
// @Produce      json
// @Param        request   body      request.AssignProctorRequest true "request body"
// @Success      201      {object}   domain.ProctorMapping
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /proctors/mappings [post]
func (h *ProctorHandler) HandleAssignProctor(ctx *gin.Context) {
	assigner, err := getUserFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err.Error()))

		return
	}

	var req request.AssignProctorRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	mapping, err := h.svc.AssignProctor(ctx.Request.Context(), assigner, req.ProctorID, req.ExecomID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotAssigner), errors.Is(err, service.ErrOutsideChapter):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrUserNotFound):
			response.RenderErr(ctx, response.ErrNotFound(err))
		case errors.Is(err, service.ErrNotExecom):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrExecomAlreadyMapped), errors.Is(err, service.ErrProctorAtCapacity):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleAssignProctor -> h.svc.AssignProctor -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, mapping)
}

// HandleUnassignProctor godoc
// @Summary      Remove a proctor mapping
// @Tags         proctors
// @Produce      json
// @Param        proctorID path      int  true "proctor ID"
// @Param        execomID  path      int  true "execom ID"
// @Success      204      "no content"
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /proctors/mappings/{proctorID}/{execomID} [delete]
func (h *ProctorHandler) HandleUnassignProctor(ctx *gin.Context) {
	assigner, err := getUserFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err.Error()))

		return
	}

	proctorID, err := parseIDParam(ctx, "proctorID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	execomID, err := parseIDParam(ctx, "execomID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.UnassignProctor(ctx.Request.Context(), assigner, proctorID, execomID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotAssigner), errors.Is(err, service.ErrOutsideChapter):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrMappingNotFound), errors.Is(err, service.ErrUserNotFound):
			response.RenderErr(ctx, response.ErrNotFound(err))
		default:
			err = fmt.Errorf("v1.HandleUnassignProctor -> h.svc.UnassignProctor -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleListMappings godoc
// @Summary      List proctor mappings
// @Tags         proctors
// @Produce      json
// @Param        proctor_id query    int  false "filter by proctor"
// @Success      200      {array}    domain.ProctorMapping
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /proctors/mappings [get]
func (h *ProctorHandler) HandleListMappings(ctx *gin.Context) {
	viewer, err := getUserFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err.Error()))

		return
	}

	var proctorID uint
	if raw := ctx.Query("proctor_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid proctor_id")))

			return
		}
		proctorID = uint(parsed)
	}

	mappings, err := h.svc.ListMappings(ctx.Request.Context(), viewer, proctorID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListMappings -> h.svc.ListMappings -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, mappings)
}

// HandleRecordUpdate godoc
// @Summary      Record a periodic update for a mentee
// @Tags         proctors
// @Produce      json
// @Param        request   body      request.ProctorUpdateRequest true "request body"
// @Success      201      {object}   domain.ProctorUpdate
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /proctors/updates [post]
func (h *ProctorHandler) HandleRecordUpdate(ctx *gin.Context) {
	proctor, err := getUserFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err.Error()))

		return
	}

	var req request.ProctorUpdateRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	start, end := req.ParsedPeriod()
	update, err := h.svc.RecordUpdate(ctx.Request.Context(), proctor, req.ExecomID, req.UpdateText, start, end)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUpdatePeriodInvalid):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrMappingNotFound):
			response.RenderErr(ctx, response.ErrNotFound(err))
		case errors.Is(err, service.ErrNotMappedToExecom):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrUpdateExists):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleRecordUpdate -> h.svc.RecordUpdate -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, update)
}

// HandleListUpdates godoc
// @Summary      List periodic updates
// @Tags         proctors
// @Produce      json
// @Param        proctor_id query    int  false "filter by proctor"
// @Param        execom_id  query    int  false "filter by execom"
// @Success      200      {array}    domain.ProctorUpdate
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /proctors/updates [get]
func (h *ProctorHandler) HandleListUpdates(ctx *gin.Context) {
	viewer, err := getUserFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err.Error()))

		return
	}

	var proctorID, execomID uint
	if raw := ctx.Query("proctor_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid proctor_id")))

			return
		}
		proctorID = uint(parsed)
	}
	if raw := ctx.Query("execom_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid execom_id")))

			return
		}
		execomID = uint(parsed)
	}

	updates, err := h.svc.ListUpdates(ctx.Request.Context(), viewer, proctorID, execomID)
	if err != nil {
		if errors.Is(err, service.ErrUpdatesNotVisible) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))

			return
		}

		err = fmt.Errorf("v1.HandleListUpdates -> h.svc.ListUpdates -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, updates)
}
