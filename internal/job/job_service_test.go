package job

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

func setupJobService(t *testing.T) (JobService, *gorm.DB) {
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

	return NewJobService(NewJobRepository(db), user.NewUserRepository(db)), db
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

func createJob(t *testing.T, svc JobService, posterID string) *JobResponse {
	t.Helper()
	j, err := svc.CreateJob(context.Background(), posterID, CreateJobInput{
		Title:        "Backend engineer",
		Description:  "Go services",
		Company:      "Acme",
		Location:     "Berlin",
		Type:         "full-time",
		Requirements: []string{"Go", "SQL"},
	})
	require.NoError(t, err)
	return j
}

func TestApply_RejectDuplicate(t *testing.T) {
	svc, db := setupJobService(t)
	ctx := context.Background()

	poster := seedUser(t, db, "poster")
	applicant := seedUser(t, db, "applicant")
	j := createJob(t, svc, poster.ID)

	app, err := svc.Apply(ctx, j.ID, applicant.ID, ApplyInput{})
	require.NoError(t, err)
	require.Equal(t, dbmysql.ApplicationStatusPending, app.Status)

	_, err = svc.Apply(ctx, j.ID, applicant.ID, ApplyInput{})
	require.ErrorIs(t, err, common.ErrConflict)

	var count int64
	require.NoError(t, db.Model(&dbmysql.JobApplication{}).Where("job_id = ?", j.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestApply_InactiveJobGuard(t *testing.T) {
	svc, db := setupJobService(t)
	ctx := context.Background()

	poster := seedUser(t, db, "poster")
	applicant := seedUser(t, db, "applicant")
	j := createJob(t, svc, poster.ID)

	require.NoError(t, db.Model(&dbmysql.Job{}).Where("id = ?", j.ID).Update("is_active", false).Error)

	// Inactive is a Conflict regardless of prior application history.
	_, err := svc.Apply(ctx, j.ID, applicant.ID, ApplyInput{})
	require.ErrorIs(t, err, common.ErrConflict)
}

func TestApply_MissingJob(t *testing.T) {
	svc, db := setupJobService(t)
	applicant := seedUser(t, db, "applicant")

	_, err := svc.Apply(context.Background(), uuid.NewString(), applicant.ID, ApplyInput{})
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetJob_ApplicationsCount(t *testing.T) {
	svc, db := setupJobService(t)
	ctx := context.Background()

	poster := seedUser(t, db, "poster")
	j := createJob(t, svc, poster.ID)

	for _, name := range []string{"alice", "bob", "carol"} {
		u := seedUser(t, db, name)
		_, err := svc.Apply(ctx, j.ID, u.ID, ApplyInput{})
		require.NoError(t, err)
	}

	shaped, err := svc.GetJob(ctx, j.ID)
	require.NoError(t, err)
	require.EqualValues(t, 3, shaped.ApplicationsCount)
	require.Equal(t, poster.ID, shaped.Poster.ID)
}

func TestListApplications_PosterOnly(t *testing.T) {
	svc, db := setupJobService(t)
	ctx := context.Background()

	poster := seedUser(t, db, "poster")
	applicant := seedUser(t, db, "applicant")
	j := createJob(t, svc, poster.ID)

	_, err := svc.Apply(ctx, j.ID, applicant.ID, ApplyInput{})
	require.NoError(t, err)

	apps, err := svc.ListApplications(ctx, j.ID, poster.ID)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	require.Equal(t, applicant.ID, apps[0].User.ID)

	_, err = svc.ListApplications(ctx, j.ID, applicant.ID)
	require.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestListJobs_Filters(t *testing.T) {
	svc, db := setupJobService(t)
	ctx := context.Background()

	poster := seedUser(t, db, "poster")
	createJob(t, svc, poster.ID)
	contract, err := svc.CreateJob(ctx, poster.ID, CreateJobInput{
		Title:       "Contractor",
		Description: "short gig",
		Company:     "Acme",
		Location:    "Remote",
		Type:        "contract",
	})
	require.NoError(t, err)

	jobs, err := svc.ListJobs(ctx, JobFilter{Type: "contract", Limit: 20})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	require.Equal(t, contract.ID, jobs[0].ID)

	jobs, err = svc.ListJobs(ctx, JobFilter{Location: "remo", Limit: 20})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	require.Equal(t, contract.ID, jobs[0].ID)
}
