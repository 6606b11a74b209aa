package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/domain"
	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/repository"
)

var ErrNotificationNotFound = repository.ErrNotificationNotFound

type NotificationRepository interface {
	Create(ctx context.Context, notification domain.Notification) (domain.Notification, error)
	ListByUser(ctx context.Context, userID uint) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id, userID uint) error
}

type NotificationUserRepository interface {
	FindByRoleNames(ctx context.Context, names []string) ([]domain.User, error)
}

type NotificationService struct {
	repo   NotificationRepository
	users  NotificationUserRepository
	logger *zap.Logger
}

func NewNotificationService(repo NotificationRepository, users NotificationUserRepository, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		repo:   repo,
		users:  users,
		logger: logger,
	}
}

// NotifyEventApproved tells every team head that an event cleared its
// approval pipeline. Delivery is best effort; one failed insert does not
// stop the rest.
func (s *NotificationService) NotifyEventApproved(ctx context.Context, event domain.Event) error {
	heads, err := s.users.FindByRoleNames(ctx, domain.TeamHeadRoles())
	if err != nil {
		return fmt.Errorf("s.users.FindByRoleNames -> %w", err)
	}

	message := fmt.Sprintf("Event %q was approved for %s", event.Title, event.ProposedDate.Format("2006-01-02"))
	eventID := event.ID

	var failed int
	for _, head := range heads {
		_, err = s.repo.Create(ctx, domain.Notification{
			UserID:         head.ID,
			Type:           domain.NotificationEventApproved,
			Message:        message,
			RelatedEventID: &eventID,
		})
		if err != nil {
			failed++
			s.logger.Warn("failed to create notification",
				zap.Uint("user_id", head.ID), zap.Uint("event_id", event.ID), zap.Error(err))
		}
	}

	if failed == len(heads) && len(heads) > 0 {
		return fmt.Errorf("all %d notifications failed", failed)
	}

	return nil
}

// NotifyDocumentSubmitted pings the reviewers that a deliverable awaits
// review.
func (s *NotificationService) NotifyDocumentSubmitted(ctx context.Context, event domain.Event, document domain.EventDocument) error {
	reviewers, err := s.users.FindByRoleNames(ctx, []string{domain.RoleSBSecretary})
	if err != nil {
		return fmt.Errorf("s.users.FindByRoleNames -> %w", err)
	}

	message := fmt.Sprintf("Document %q for event %q awaits review", document.Title, event.Title)
	eventID := event.ID

	for _, reviewer := range reviewers {
		_, err = s.repo.Create(ctx, domain.Notification{
			UserID:         reviewer.ID,
			Type:           domain.NotificationDocumentReview,
			Message:        message,
			RelatedEventID: &eventID,
		})
		if err != nil {
			s.logger.Warn("failed to create notification",
				zap.Uint("user_id", reviewer.ID), zap.Uint("event_id", event.ID), zap.Error(err))
		}
	}

	return nil
}

func (s *NotificationService) ListNotifications(ctx context.Context, userID uint) ([]domain.Notification, error) {
	notifications, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListByUser -> %w", err)
	}

	return notifications, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id, userID uint) error {
	if err := s.repo.MarkRead(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return ErrNotificationNotFound
		}

		return fmt.Errorf("s.repo.MarkRead -> %w", err)
	}

	return nil
}
