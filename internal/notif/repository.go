package notif

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"trumpet/internal/common"
	"trumpet/internal/dbmysql"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *dbmysql.Notification) error
	GetByID(ctx context.Context, id string) (*dbmysql.Notification, error)
	ListForUser(ctx context.Context, userID string, unreadOnly bool, skip, limit int) ([]*dbmysql.Notification, error)
	MarkRead(ctx context.Context, n *dbmysql.Notification) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *dbmysql.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepository) GetByID(ctx context.Context, id string) (*dbmysql.Notification, error) {
	var n dbmysql.Notification
	err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.NotFoundf("notification %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepository) ListForUser(ctx context.Context, userID string, unreadOnly bool, skip, limit int) ([]*dbmysql.Notification, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}
	var notifications []*dbmysql.Notification
	err := q.Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) MarkRead(ctx context.Context, n *dbmysql.Notification) error {
	return r.db.WithContext(ctx).Model(n).Update("is_read", true).Error
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&dbmysql.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmysql.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}
