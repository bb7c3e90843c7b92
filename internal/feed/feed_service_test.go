package feed

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"trumpet/internal/common"
	"trumpet/internal/dbmysql"
	"trumpet/internal/user"
)

func setupFeedService(t *testing.T) (FeedService, *gorm.DB) {
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

	return NewFeedService(NewFeedRepository(db), user.NewUserRepository(db)), db
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

func TestToggleLike_PeriodTwoCycle(t *testing.T) {
	svc, db := setupFeedService(t)
	ctx := context.Background()

	author := seedUser(t, db, "author")
	liker := seedUser(t, db, "liker")
	post, err := svc.CreatePost(ctx, author.ID, "hello world", nil)
	require.NoError(t, err)

	for i, want := range []bool{true, false, true} {
		result, err := svc.ToggleLike(ctx, post.ID, liker.ID)
		require.NoError(t, err)
		require.Equal(t, want, result.Liked, "call %d", i+1)
	}

	var count int64
	require.NoError(t, db.Model(&dbmysql.Like{}).Where("post_id = ?", post.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestToggleLike_MissingPost(t *testing.T) {
	svc, db := setupFeedService(t)
	liker := seedUser(t, db, "liker")

	_, err := svc.ToggleLike(context.Background(), uuid.NewString(), liker.ID)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestCounters_ComputedFromChildren(t *testing.T) {
	svc, db := setupFeedService(t)
	ctx := context.Background()

	author := seedUser(t, db, "author")
	post, err := svc.CreatePost(ctx, author.ID, "counted", nil)
	require.NoError(t, err)

	for _, name := range []string{"alice", "bob", "carol"} {
		u := seedUser(t, db, name)
		result, err := svc.ToggleLike(ctx, post.ID, u.ID)
		require.NoError(t, err)
		require.True(t, result.Liked)
	}
	for _, text := range []string{"first", "second"} {
		_, err := svc.AddComment(ctx, post.ID, author.ID, text)
		require.NoError(t, err)
	}

	shaped, err := svc.GetPost(ctx, post.ID)
	require.NoError(t, err)
	require.EqualValues(t, 3, shaped.LikesCount)
	require.EqualValues(t, 2, shaped.CommentsCount)

	// Counts follow a toggle immediately; nothing is cached.
	u := seedUser(t, db, "dave")
	_, err = svc.ToggleLike(ctx, post.ID, u.ID)
	require.NoError(t, err)
	shaped, err = svc.GetPost(ctx, post.ID)
	require.NoError(t, err)
	require.EqualValues(t, 4, shaped.LikesCount)

	_, err = svc.ToggleLike(ctx, post.ID, u.ID)
	require.NoError(t, err)
	shaped, err = svc.GetPost(ctx, post.ID)
	require.NoError(t, err)
	require.EqualValues(t, 3, shaped.LikesCount)
}

func TestListPosts_AuthorFilters(t *testing.T) {
	svc, db := setupFeedService(t)
	ctx := context.Background()

	engineer := seedUser(t, db, "engineer1")
	designer := &dbmysql.User{
		ID:         uuid.NewString(),
		Email:      "designer@example.com",
		Username:   "designer1",
		FirstName:  "Dee",
		LastName:   "Signer",
		Occupation: "designer",
		Location:   "Hamburg",
	}
	require.NoError(t, db.Create(designer).Error)

	_, err := svc.CreatePost(ctx, engineer.ID, "from engineer", nil)
	require.NoError(t, err)
	_, err = svc.CreatePost(ctx, designer.ID, "from designer", nil)
	require.NoError(t, err)

	posts, err := svc.ListPosts(ctx, PostFilter{Occupation: "designer", Limit: 20})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, "from designer", posts[0].Content)
	require.Equal(t, designer.ID, posts[0].Author.ID)
	require.EqualValues(t, 0, posts[0].LikesCount)

	posts, err = svc.ListPosts(ctx, PostFilter{Location: "ham", Limit: 20})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, designer.ID, posts[0].AuthorID)
}

func TestAddComment_MissingPost(t *testing.T) {
	svc, db := setupFeedService(t)
	u := seedUser(t, db, "commenter")

	_, err := svc.AddComment(context.Background(), uuid.NewString(), u.ID, "hi")
	require.ErrorIs(t, err, common.ErrNotFound)
}
