package user

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
)

func setupUserRepo(t *testing.T) (UserRepository, *gorm.DB) {
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

	return NewUserRepository(db), db
}

func seedInterestedUser(t *testing.T, db *gorm.DB, username string, interests ...string) *dbmysql.User {
	t.Helper()
	u := &dbmysql.User{
		ID:         uuid.NewString(),
		Email:      username + "@example.com",
		Username:   username,
		FirstName:  "Test",
		LastName:   "User",
		Occupation: "engineer",
		Location:   "Berlin",
		Interests:  common.StringList(interests),
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestListUsers_InterestsNarrowTogether(t *testing.T) {
	repo, db := setupUserRepo(t)
	ctx := context.Background()

	both := seedInterestedUser(t, db, "ada", "go", "jazz")
	seedInterestedUser(t, db, "bob", "go", "chess")
	seedInterestedUser(t, db, "cyn", "jazz")
	seedInterestedUser(t, db, "dee")

	// Each term narrows independently: only the user holding every term
	// survives.
	users, err := repo.ListUsers(ctx, ListFilter{Interests: []string{"go", "jazz"}, Limit: 50})
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, both.ID, users[0].ID)

	users, err = repo.ListUsers(ctx, ListFilter{Interests: []string{"go"}, Limit: 50})
	require.NoError(t, err)
	require.Len(t, users, 2)

	users, err = repo.ListUsers(ctx, ListFilter{Interests: []string{"knitting"}, Limit: 50})
	require.NoError(t, err)
	require.Empty(t, users)
}

func TestListUsers_BlankInterestTermsIgnored(t *testing.T) {
	repo, db := setupUserRepo(t)
	ctx := context.Background()

	seedInterestedUser(t, db, "ada", "go", "jazz")
	seedInterestedUser(t, db, "bob", "go")

	// Empty and whitespace-only terms, as a trailing comma in the query
	// string produces, do not filter anything out.
	users, err := repo.ListUsers(ctx, ListFilter{Interests: []string{"go", "", "  "}, Limit: 50})
	require.NoError(t, err)
	require.Len(t, users, 2)
}

func TestListUsers_InterestsComposeWithOtherFilters(t *testing.T) {
	repo, db := setupUserRepo(t)
	ctx := context.Background()

	match := seedInterestedUser(t, db, "ada", "go")
	require.NoError(t, db.Model(&dbmysql.User{}).Where("id = ?", match.ID).
		Update("location", "Hamburg").Error)
	seedInterestedUser(t, db, "bob", "go")

	users, err := repo.ListUsers(ctx, ListFilter{
		Interests: []string{"go"},
		Location:  "ham",
		Limit:     50,
	})
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, match.ID, users[0].ID)
}
