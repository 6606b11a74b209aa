package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/api/handler/v1/request"
	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/api/handler/v1/response"
	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/domain"
	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/service"
)

type DocumentService interface {
	AssignTeamMember(ctx context.Context, assigner domain.User, eventID uint, team domain.TeamType, execomID uint) (domain.EventAssignment, error)
	ListAssignments(ctx context.Context, eventID uint) ([]domain.EventAssignment, error)
	SubmitDocument(ctx context.Context, uploader domain.User, document domain.EventDocument) (domain.EventDocument, error)
	ReviewDocument(ctx context.Context, reviewer domain.User, documentID uint, verdict domain.ReviewStatus) (domain.EventDocument, error)
	ListDocuments(ctx context.Context, eventID uint) ([]domain.EventDocument, error)
}

type DocumentHandler struct {
	svc DocumentService
}

func NewDocumentHandler(svc DocumentService) *DocumentHandler {
	return &DocumentHandler{
		svc: svc,
	}
}

// HandleAssignTeamMember godoc
// @Summary      Assign an execom to an event team
// @Tags         documents
// @Produce      json
// @Param        eventID  path       int  true "event ID"
// @Param        request   body      request.AssignTeamRequest true "request body"
// @Success      201      {object}   domain.EventAssignment
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /events/{eventID}/assignments [post]
func (h *DocumentHandler) HandleAssignTeamMember(ctx *gin.Context) {
	assigner, err := getUserFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err.Error()))

		return
	}

	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.AssignTeamRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	assignment, err := h.svc.AssignTeamMember(ctx.Request.Context(), assigner, eventID, domain.TeamType(req.TeamType), req.ExecomID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotTeamHead):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound(err))
		case errors.Is(err, service.ErrEventNotApproved), errors.Is(err, service.ErrAssignmentExists):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleAssignTeamMember -> h.svc.AssignTeamMember -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, assignment)
}

// HandleListAssignments godoc
// @Summary      List team assignments for an event
// @Tags         documents
// @Produce      json
// @Param        eventID  path       int  true "event ID"
// @Success      200      {array}    domain.EventAssignment
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /events/{eventID}/assignments [get]
func (h *DocumentHandler) HandleListAssignments(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	assignments, err := h.svc.ListAssignments(ctx.Request.Context(), eventID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListAssignments -> h.svc.ListAssignments -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, assignments)
}

// HandleSubmitDocument godoc
// @Summary      Upload a deliverable for an event
// @Tags         documents
// @Produce      json
// @Param        eventID  path       int  true "event ID"
// @Param        request   body      request.SubmitDocumentRequest true "request body"
// @Success      201      {object}   domain.EventDocument
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /events/{eventID}/documents [post]
func (h *DocumentHandler) HandleSubmitDocument(ctx *gin.Context) {
	uploader, err := getUserFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err.Error()))

		return
	}

	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.SubmitDocumentRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	document, err := h.svc.SubmitDocument(ctx.Request.Context(), uploader, domain.EventDocument{
		EventID:      eventID,
		DocumentType: domain.DocumentType(req.DocumentType),
		Title:        req.Title,
		FileURL:      req.FileURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotAssignedToTeam):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound(err))
		case errors.Is(err, service.ErrEventNotApproved), errors.Is(err, service.ErrEventFinalized):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleSubmitDocument -> h.svc.SubmitDocument -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, document)
}

// HandleReviewDocument godoc
// @Summary      Review an uploaded deliverable
// @Tags         documents
// @Produce      json
// @Param        documentID path     int  true "document ID"
// @Param        request   body      request.ReviewDocumentRequest true "request body"
// @Success      200      {object}   domain.EventDocument
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /documents/{documentID}/review [post]
func (h *DocumentHandler) HandleReviewDocument(ctx *gin.Context) {
	reviewer, err := getUserFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err.Error()))

		return
	}

	documentID, err := parseIDParam(ctx, "documentID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.ReviewDocumentRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	document, err := h.svc.ReviewDocument(ctx.Request.Context(), reviewer, documentID, domain.ReviewStatus(req.Verdict))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotReviewer):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrDocumentNotFound):
			response.RenderErr(ctx, response.ErrNotFound(err))
		case errors.Is(err, service.ErrAlreadyReviewed), errors.Is(err, service.ErrDocumentationPending):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleReviewDocument -> h.svc.ReviewDocument -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, document)
}

// HandleListDocuments godoc
// @Summary      List documents uploaded for an event
// @Tags         documents
// @Produce      json
// @Param        eventID  path       int  true "event ID"
// @Success      200      {array}    domain.EventDocument
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /events/{eventID}/documents [get]
func (h *DocumentHandler) HandleListDocuments(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	documents, err := h.svc.ListDocuments(ctx.Request.Context(), eventID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListDocuments -> h.svc.ListDocuments -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, documents)
}
