package repository

import (
	"context"
	"fmt"

	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/domain"
	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/repository/dao"
)

var ErrNotificationNotFound = dao.ErrNotificationNotFound

type NotificationDAO interface {
	Insert(ctx context.Context, notification dao.Notification) (dao.Notification, error)
	ListByUser(ctx context.Context, userID uint) ([]dao.Notification, error)
	MarkRead(ctx context.Context, id, userID uint) error
}

type NotificationRepository struct {
	dao NotificationDAO
}

func NewNotificationRepository(dao NotificationDAO) *NotificationRepository {
	return &NotificationRepository{
		dao: dao,
	}
}

func (r *NotificationRepository) daoToDomain(n dao.Notification) domain.Notification {
	return domain.Notification{
		ID:             n.ID,
		UserID:         n.UserID,
		Type:           n.Type,
		Message:        n.Message,
		RelatedEventID: n.RelatedEventID,
		Read:           n.Read,
		CreatedAt:      n.CreatedAt,
	}
}

func (r *NotificationRepository) Create(ctx context.Context, notification domain.Notification) (domain.Notification, error) {
	created, err := r.dao.Insert(ctx, dao.Notification{
		UserID:         notification.UserID,
		Type:           notification.Type,
		Message:        notification.Message,
		RelatedEventID: notification.RelatedEventID,
	})
	if err != nil {
		return domain.Notification{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID uint) ([]domain.Notification, error) {
	notifications, err := r.dao.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListByUser -> %w", err)
	}

	result := make([]domain.Notification, len(notifications))
	for i, n := range notifications {
		result[i] = r.daoToDomain(n)
	}

	return result, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID uint) error {
	if err := r.dao.MarkRead(ctx, id, userID); err != nil {
		if err == dao.ErrNotificationNotFound {
			return ErrNotificationNotFound
		}

		return fmt.Errorf("r.dao.MarkRead -> %w", err)
	}

	return nil
}
