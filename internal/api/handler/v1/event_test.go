package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/domain"
	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/service"
)

// stubEventService returns canned answers so the handler's request
// parsing and error mapping can be exercised without a real pipeline.
type stubEventService struct {
	event domain.Event
	err   error
}

func (s *stubEventService) ProposeEvent(ctx context.Context, proposer domain.User, event domain.Event) (domain.Event, error) {
	return s.event, s.err
}

func (s *stubEventService) SubmitApproval(ctx context.Context, approver domain.User, eventID uint, approvalType domain.ApprovalType, decision domain.ApprovalStatus, comments string) (domain.Event, error) {
	return s.event, s.err
}

func (s *stubEventService) RefreshEventStatus(ctx context.Context, eventID uint) (domain.Event, error) {
	return s.event, s.err
}

func (s *stubEventService) GetEvent(ctx context.Context, eventID uint) (domain.Event, error) {
	return s.event, s.err
}

func (s *stubEventService) ListEvents(ctx context.Context, status domain.EventStatus, chapterID uint) ([]domain.Event, error) {
	return []domain.Event{s.event}, s.err
}

func (s *stubEventService) GetEventApprovals(ctx context.Context, eventID uint) ([]domain.EventApproval, error) {
	return nil, s.err
}

func (s *stubEventService) ListPendingApprovals(ctx context.Context, approverID uint) ([]domain.EventApproval, error) {
	return nil, s.err
}

func newEventTestRouter(svc EventService, user *domain.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	if user != nil {
		router.Use(func(ctx *gin.Context) {
			ctx.Set("user", *user)
		})
	}

	h := NewEventHandler(svc)
	router.POST("/events", h.HandleProposeEvent)
	router.POST("/events/:eventID/approvals", h.HandleSubmitApproval)
	router.GET("/events/:eventID", h.HandleGetEvent)

	return router
}

func proposeBody(t *testing.T) *bytes.Buffer {
	t.Helper()

	body, err := json.Marshal(map[string]interface{}{
		"title":         "Intro to Embedded Systems",
		"event_type":    "workshop",
		"proposed_date": "2026-04-15",
		"chapter_id":    1,
	})
	require.NoError(t, err)

	return bytes.NewBuffer(body)
}

func TestEventHandler_HandleProposeEvent(t *testing.T) {
	user := domain.User{ID: 10, Role: domain.Role{Name: domain.RoleChapterChair}}

	t.Run("created", func(t *testing.T) {
		svc := &stubEventService{event: domain.Event{ID: 1, Status: domain.StatusSeniorCorePending}}
		router := newEventTestRouter(svc, &user)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/events", proposeBody(t))
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var got domain.Event
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, uint(1), got.ID)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		router := newEventTestRouter(&stubEventService{}, nil)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/events", proposeBody(t))
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid body", func(t *testing.T) {
		router := newEventTestRouter(&stubEventService{}, &user)

		body := bytes.NewBufferString(`{"title":"x","event_type":"party"}`)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/events", body)
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("service errors map to status codes", func(t *testing.T) {
		tests := []struct {
			name string
			err  error
			want int
		}{
			{"permission denied", service.ErrProposerNotAllowed, http.StatusForbidden},
			{"outside chapter", service.ErrOutsideChapter, http.StatusForbidden},
			{"lead time", service.ErrLeadTimeTooShort, http.StatusBadRequest},
			{"date full", service.ErrDateFull, http.StatusConflict},
			{"unexpected", context.DeadlineExceeded, http.StatusInternalServerError},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				router := newEventTestRouter(&stubEventService{err: tt.err}, &user)

				rec := httptest.NewRecorder()
				req := httptest.NewRequest(http.MethodPost, "/events", proposeBody(t))
				router.ServeHTTP(rec, req)

				assert.Equal(t, tt.want, rec.Code)
			})
		}
	})
}

func TestEventHandler_HandleSubmitApproval(t *testing.T) {
	user := domain.User{ID: 1, Role: domain.Role{Name: domain.RoleSBChair}}
	body := func() *bytes.Buffer {
		return bytes.NewBufferString(`{"approval_type":"senior_core","decision":"approved"}`)
	}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"accepted", nil, http.StatusOK},
		{"unknown event", service.ErrEventNotFound, http.StatusNotFound},
		{"not assigned", service.ErrApprovalNotAssigned, http.StatusForbidden},
		{"already decided", service.ErrApprovalAlreadyDecided, http.StatusConflict},
		{"wrong stage", service.ErrWrongApprovalStage, http.StatusConflict},
		{"finalized", service.ErrEventFinalized, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newEventTestRouter(&stubEventService{err: tt.err}, &user)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/events/1/approvals", body())
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}

	t.Run("invalid event id", func(t *testing.T) {
		router := newEventTestRouter(&stubEventService{}, &user)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/events/abc/approvals", body())
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestEventHandler_HandleGetEvent(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := &stubEventService{event: domain.Event{ID: 5, Status: domain.StatusApproved}}
		router := newEventTestRouter(svc, nil)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/events/5", nil)
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		router := newEventTestRouter(&stubEventService{err: service.ErrEventNotFound}, nil)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/events/5", nil)
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
