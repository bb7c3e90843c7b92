package user

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
	"trumpet/internal/config"
	"trumpet/internal/dbmysql"
)

func setupConnRepo(t *testing.T) (ConnectionRepository, *gorm.DB) {
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

	return NewConnectionRepository(db), db
}

func newEdge(requesterID, receiverID, status string) *dbmysql.Connection {
	return &dbmysql.Connection{
		ID:          uuid.NewString(),
		RequesterID: requesterID,
		ReceiverID:  receiverID,
		Status:      status,
	}
}

func TestCreateRequest_DuplicateSameDirection(t *testing.T) {
	repo, db := setupConnRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateRequest(ctx, newEdge("u-1", "u-2", dbmysql.ConnectionStatusPending)))

	err := repo.CreateRequest(ctx, newEdge("u-1", "u-2", dbmysql.ConnectionStatusPending))
	require.ErrorIs(t, err, common.ErrConflict)

	var count int64
	require.NoError(t, db.Model(&dbmysql.Connection{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestCreateRequest_ReverseDirectionBlocked(t *testing.T) {
	repo, _ := setupConnRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateRequest(ctx, newEdge("u-1", "u-2", dbmysql.ConnectionStatusPending)))

	// A live edge blocks a request from the other side, whether pending or
	// accepted.
	err := repo.CreateRequest(ctx, newEdge("u-2", "u-1", dbmysql.ConnectionStatusPending))
	require.ErrorIs(t, err, common.ErrConflict)
}

func TestCreateRequest_AcceptedReverseBlocked(t *testing.T) {
	repo, db := setupConnRepo(t)
	ctx := context.Background()

	edge := newEdge("u-1", "u-2", dbmysql.ConnectionStatusAccepted)
	require.NoError(t, db.Create(edge).Error)

	err := repo.CreateRequest(ctx, newEdge("u-2", "u-1", dbmysql.ConnectionStatusPending))
	require.ErrorIs(t, err, common.ErrConflict)
}

func TestCreateRequest_RejectedEdgeResetsToPending(t *testing.T) {
	repo, db := setupConnRepo(t)
	ctx := context.Background()

	rejected := newEdge("u-1", "u-2", dbmysql.ConnectionStatusRejected)
	require.NoError(t, db.Create(rejected).Error)

	// Asking again after a rejection revives the same edge rather than
	// stacking a second row on the unique index.
	conn := newEdge("u-1", "u-2", dbmysql.ConnectionStatusPending)
	require.NoError(t, repo.CreateRequest(ctx, conn))

	var edges []dbmysql.Connection
	require.NoError(t, db.Find(&edges).Error)
	require.Len(t, edges, 1)
	require.Equal(t, rejected.ID, edges[0].ID)
	require.Equal(t, dbmysql.ConnectionStatusPending, edges[0].Status)

	// The caller's handle carries the revived row's identity, not the id of
	// the insert candidate that never landed.
	require.Equal(t, rejected.ID, conn.ID)
}

func TestRequestConnection_AfterRejectionReturnsStoredID(t *testing.T) {
	repo, db := setupConnRepo(t)
	ctx := context.Background()

	for _, name := range []string{"alice", "bob"} {
		require.NoError(t, db.Create(&dbmysql.User{
			ID:         "u-" + name,
			Email:      name + "@example.com",
			Username:   name,
			FirstName:  "Test",
			LastName:   "User",
			Occupation: "engineer",
			Location:   "Berlin",
		}).Error)
	}
	require.NoError(t, db.Create(newEdge("u-alice", "u-bob", dbmysql.ConnectionStatusRejected)).Error)

	cfg := &config.Config{Auth: config.AuthConfig{TokenTTL: time.Hour}}
	svc := NewUserService(NewUserRepository(db), repo, cfg)

	resp, err := svc.RequestConnection(ctx, "u-alice", "u-bob")
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&dbmysql.Connection{}).Where("id = ?", resp.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)

	// The id the requester hands to the receiver must resolve for accept.
	conn, err := svc.RespondToConnection(ctx, "u-bob", resp.ID, true)
	require.NoError(t, err)
	require.Equal(t, dbmysql.ConnectionStatusAccepted, conn.Status)
}

func TestCreateRequest_RejectedReverseDoesNotBlock(t *testing.T) {
	repo, db := setupConnRepo(t)
	ctx := context.Background()

	require.NoError(t, db.Create(newEdge("u-2", "u-1", dbmysql.ConnectionStatusRejected)).Error)

	require.NoError(t, repo.CreateRequest(ctx, newEdge("u-1", "u-2", dbmysql.ConnectionStatusPending)))

	var count int64
	require.NoError(t, db.Model(&dbmysql.Connection{}).Count(&count).Error)
	require.EqualValues(t, 2, count)
}

func TestListForUser_BothDirections(t *testing.T) {
	repo, db := setupConnRepo(t)
	ctx := context.Background()

	require.NoError(t, db.Create(newEdge("u-1", "u-2", dbmysql.ConnectionStatusPending)).Error)
	require.NoError(t, db.Create(newEdge("u-3", "u-1", dbmysql.ConnectionStatusAccepted)).Error)
	require.NoError(t, db.Create(newEdge("u-2", "u-3", dbmysql.ConnectionStatusPending)).Error)

	conns, err := repo.ListForUser(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, conns, 2)
}
