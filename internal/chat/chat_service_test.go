package chat

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"trumpet/internal/common"
	"trumpet/internal/dbmysql"
	"trumpet/internal/user"
)

func setupChatService(t *testing.T) (ChatService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, dbmysql.Migrate(db))

	return NewChatService(NewChatRepository(db), user.NewUserRepository(db)), db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *dbmysql.User {
	t.Helper()
	u := &dbmysql.User{
		ID:         uuid.NewString(),
		Email:      username + "@example.com",
		Username:   username,
		FirstName:  "Test",
		LastName:   "User",
		Occupation: "engineer",
		Location:   "Berlin",
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedMessage(t *testing.T, db *gorm.DB, senderID, receiverID, content string, at time.Time, read bool) *dbmysql.Message {
	t.Helper()
	m := &dbmysql.Message{
		ID:         uuid.NewString(),
		Content:    content,
		SenderID:   senderID,
		ReceiverID: receiverID,
		IsRead:     read,
		CreatedAt:  at,
	}
	require.NoError(t, db.Create(m).Error)
	return m
}

func TestGetConversations_GroupingAndOrder(t *testing.T) {
	svc, db := setupChatService(t)
	ctx := context.Background()

	u1 := seedUser(t, db, "u1")
	u2 := seedUser(t, db, "u2")
	u3 := seedUser(t, db, "u3")

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	t1 := base
	t2 := base.Add(1 * time.Minute)
	t3 := base.Add(2 * time.Minute)

	seedMessage(t, db, u1.ID, u2.ID, "hi u2", t1, true)
	seedMessage(t, db, u1.ID, u3.ID, "hi u3", t2, false)
	latest := seedMessage(t, db, u2.ID, u1.ID, "hi back", t3, false)

	conversations, err := svc.GetConversations(ctx, u1.ID)
	require.NoError(t, err)
	require.Len(t, conversations, 2)

	// Partner with the most recent activity first.
	require.Equal(t, u2.ID, conversations[0].User.ID)
	require.Equal(t, latest.ID, conversations[0].LastMessage.ID)
	require.Equal(t, "hi back", conversations[0].LastMessage.Content)
	require.Equal(t, u3.ID, conversations[1].User.ID)
	require.Equal(t, "hi u3", conversations[1].LastMessage.Content)
}

func TestGetConversations_UnreadCounting(t *testing.T) {
	svc, db := setupChatService(t)
	ctx := context.Background()

	u1 := seedUser(t, db, "u1")
	u2 := seedUser(t, db, "u2")

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seedMessage(t, db, u2.ID, u1.ID, "one", base, false)
	seedMessage(t, db, u2.ID, u1.ID, "two", base.Add(time.Minute), false)
	seedMessage(t, db, u2.ID, u1.ID, "three", base.Add(2*time.Minute), false)
	seedMessage(t, db, u2.ID, u1.ID, "old and read", base.Add(-time.Hour), true)

	conversations, err := svc.GetConversations(ctx, u1.ID)
	require.NoError(t, err)
	require.Len(t, conversations, 1)
	require.Equal(t, 3, conversations[0].UnreadCount)

	// Unread counts every message addressed to self, not just the last one;
	// and messages the user sent never count.
	seedMessage(t, db, u1.ID, u2.ID, "reply", base.Add(3*time.Minute), false)
	conversations, err = svc.GetConversations(ctx, u1.ID)
	require.NoError(t, err)
	require.Equal(t, 3, conversations[0].UnreadCount)
	require.Equal(t, "reply", conversations[0].LastMessage.Content)
}

func TestGetThread_MarksReadAndReturnsChronological(t *testing.T) {
	svc, db := setupChatService(t)
	ctx := context.Background()

	u1 := seedUser(t, db, "u1")
	u2 := seedUser(t, db, "u2")

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seedMessage(t, db, u2.ID, u1.ID, "first", base, false)
	seedMessage(t, db, u1.ID, u2.ID, "second", base.Add(time.Minute), false)
	seedMessage(t, db, u2.ID, u1.ID, "third", base.Add(2*time.Minute), false)

	thread, err := svc.GetThread(ctx, u1.ID, u2.ID, 0, 50)
	require.NoError(t, err)
	require.Len(t, thread, 3)
	require.Equal(t, "first", thread[0].Content)
	require.Equal(t, "second", thread[1].Content)
	require.Equal(t, "third", thread[2].Content)
	require.Equal(t, u2.ID, thread[0].Sender.ID)
	require.Equal(t, u1.ID, thread[0].Receiver.ID)
	require.True(t, thread[0].IsRead)

	// Fetching the thread is the read-state transition: a repeat
	// conversation listing shows nothing unread from this partner.
	conversations, err := svc.GetConversations(ctx, u1.ID)
	require.NoError(t, err)
	require.Len(t, conversations, 1)
	require.Equal(t, 0, conversations[0].UnreadCount)

	// The sender's own unread view of u1's messages is untouched:
	// read-state belongs to the receiver.
	var msg dbmysql.Message
	require.NoError(t, db.First(&msg, "content = ?", "second").Error)
	require.False(t, msg.IsRead)
}

func TestSendMessage_Validation(t *testing.T) {
	svc, db := setupChatService(t)
	ctx := context.Background()

	u1 := seedUser(t, db, "u1")

	_, err := svc.SendMessage(ctx, u1.ID, uuid.NewString(), "hello?")
	require.ErrorIs(t, err, common.ErrNotFound)

	_, err = svc.SendMessage(ctx, u1.ID, u1.ID, "talking to myself")
	require.ErrorIs(t, err, common.ErrInvalid)

	u2 := seedUser(t, db, "u2")
	msg, err := svc.SendMessage(ctx, u1.ID, u2.ID, "hello")
	require.NoError(t, err)
	require.False(t, msg.IsRead)
	require.Equal(t, u1.ID, msg.Sender.ID)
	require.Equal(t, u2.ID, msg.Receiver.ID)
}

func TestGetThread_Pagination(t *testing.T) {
	svc, db := setupChatService(t)
	ctx := context.Background()

	u1 := seedUser(t, db, "u1")
	u2 := seedUser(t, db, "u2")

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		seedMessage(t, db, u2.ID, u1.ID, string(rune('a'+i)), base.Add(time.Duration(i)*time.Minute), false)
	}

	// Window of the two newest, still returned oldest-first.
	thread, err := svc.GetThread(ctx, u1.ID, u2.ID, 0, 2)
	require.NoError(t, err)
	require.Len(t, thread, 2)
	require.Equal(t, "d", thread[0].Content)
	require.Equal(t, "e", thread[1].Content)
}
