package notif

import (
	"context"

	"github.com/google/uuid"

	"trumpet/internal/common"
	"trumpet/internal/dbmysql"
)

// NotificationService reads and creates notification records. Creation is
// an entrypoint for collaborators that decide when a user should be
// notified; nothing in this module triggers it on its own.
type NotificationService interface {
	Create(ctx context.Context, userID, notifType, title, message string, data common.JSONMap) (*dbmysql.Notification, error)
	List(ctx context.Context, userID string, unreadOnly bool, skip, limit int) ([]*dbmysql.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID string) (*dbmysql.Notification, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
}

type notificationService struct {
	repo NotificationRepository
}

func NewNotificationService(repo NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

func (s *notificationService) Create(ctx context.Context, userID, notifType, title, message string, data common.JSONMap) (*dbmysql.Notification, error) {
	if userID == "" || notifType == "" || title == "" {
		return nil, common.Invalidf("user, type and title required")
	}
	n := &dbmysql.Notification{
		ID:      uuid.NewString(),
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: message,
		Data:    data,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *notificationService) List(ctx context.Context, userID string, unreadOnly bool, skip, limit int) ([]*dbmysql.Notification, error) {
	return s.repo.ListForUser(ctx, userID, unreadOnly, skip, limit)
}

func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID string) (*dbmysql.Notification, error) {
	n, err := s.repo.GetByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if n.UserID != userID {
		return nil, common.NotFoundf("notification %s", notificationID)
	}
	if !n.IsRead {
		if err := s.repo.MarkRead(ctx, n); err != nil {
			return nil, err
		}
		n.IsRead = true
	}
	return n, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return s.repo.MarkAllRead(ctx, userID)
}

func (s *notificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}
