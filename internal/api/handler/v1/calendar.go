package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/api/handler/v1/response"
	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/domain"
)

type CalendarAvailabilityService interface {
	CheckAvailability(ctx context.Context, date time.Time) (bool, domain.CalendarBlock, error)
	ListApprovedEvents(ctx context.Context, start, end time.Time) ([]domain.Event, error)
}

type CalendarHandler struct {
	svc CalendarAvailabilityService
}

func NewCalendarHandler(svc CalendarAvailabilityService) *CalendarHandler {
	return &CalendarHandler{
		svc: svc,
	}
}

const dateLayout = "2006-01-02"

// HandleCheckAvailability godoc
// @Summary      Check whether a date can accept another event
// @Tags         calendar
// @Produce      json
// @Param        date     query      string true "date (YYYY-MM-DD)"
// @Success      200      {object}   response.AvailabilityResponse
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /calendar/availability [get]
func (h *CalendarHandler) HandleCheckAvailability(ctx *gin.Context) {
	date, err := time.Parse(dateLayout, ctx.Query("date"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid date, expected YYYY-MM-DD")))

		return
	}

	available, block, err := h.svc.CheckAvailability(ctx.Request.Context(), date)
	if err != nil {
		err = fmt.Errorf("v1.HandleCheckAvailability -> h.svc.CheckAvailability -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.AvailabilityResponse{
		Date:       date.Format(dateLayout),
		Available:  available,
		EventCount: block.EventCount,
		MaxPerDay:  domain.MaxEventsPerDay,
	})
}

// HandleGetCalendar godoc
// @Summary      List approved events within a date range
// @Tags         calendar
// @Produce      json
// @Param        start    query      string true "range start (YYYY-MM-DD)"
// @Param        end      query      string true "range end (YYYY-MM-DD)"
// @Success      200      {object}   response.CalendarResponse
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /calendar [get]
func (h *CalendarHandler) HandleGetCalendar(ctx *gin.Context) {
	start, err := time.Parse(dateLayout, ctx.Query("start"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid start, expected YYYY-MM-DD")))

		return
	}

	end, err := time.Parse(dateLayout, ctx.Query("end"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid end, expected YYYY-MM-DD")))

		return
	}

	if end.Before(start) {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("end must not be before start")))

		return
	}

	events, err := h.svc.ListApprovedEvents(ctx.Request.Context(), start, end)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetCalendar -> h.svc.ListApprovedEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.CalendarResponse{
		Start:  start.Format(dateLayout),
		End:    end.Format(dateLayout),
		Events: events,
	})
}
