package chat

import (
	"context"

	"gorm.io/gorm"

	"trumpet/internal/dbmysql"
)

type ChatRepository interface {
	Save(ctx context.Context, msg *dbmysql.Message) error
	ListForUser(ctx context.Context, userID string) ([]*dbmysql.Message, error)
	FetchThread(ctx context.Context, selfID, partnerID string, skip, limit int) ([]*dbmysql.Message, error)
}

type chatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) Save(ctx context.Context, msg *dbmysql.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// ListForUser returns every message the user is a party to, newest first.
// The conversation aggregation depends on the descending order.
func (r *chatRepository) ListForUser(ctx context.Context, userID string) ([]*dbmysql.Message, error) {
	var messages []*dbmysql.Message
	err := r.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&messages).Error
	return messages, err
}

// FetchThread returns one page of the exchange with partnerID, newest
// first, and marks the partner's unread messages to self as read in the
// same transaction. Read-state is owned by the receiver: fetching the
// thread is the read.
func (r *chatRepository) FetchThread(ctx context.Context, selfID, partnerID string, skip, limit int) ([]*dbmysql.Message, error) {
	var messages []*dbmysql.Message
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.
			Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
				selfID, partnerID, partnerID, selfID).
			Order("created_at DESC").
			Offset(skip).
			Limit(limit).
			Find(&messages).Error
		if err != nil {
			return err
		}

		return tx.Model(&dbmysql.Message{}).
			Where("sender_id = ? AND receiver_id = ? AND is_read = ?", partnerID, selfID, false).
			Update("is_read", true).Error
	})
	return messages, err
}
