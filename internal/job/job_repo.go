package job

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"trumpet/internal/common"
	"trumpet/internal/dbmysql"
)

type JobFilter struct {
	Location   string
	Type       string
	Occupation string
	Skip       int
	Limit      int
}

type JobRepository interface {
	CreateJob(ctx context.Context, job *dbmysql.Job) error
	GetJobByID(ctx context.Context, jobID string) (*dbmysql.Job, error)
	ListJobs(ctx context.Context, filter JobFilter) ([]*dbmysql.Job, error)
	CreateApplication(ctx context.Context, app *dbmysql.JobApplication) error
	ListApplications(ctx context.Context, jobID string) ([]*dbmysql.JobApplication, error)
	CountApplications(ctx context.Context, jobID string) (int64, error)
	CountsForJobs(ctx context.Context, jobIDs []string) (map[string]int64, error)
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) CreateJob(ctx context.Context, job *dbmysql.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *jobRepository) GetJobByID(ctx context.Context, jobID string) (*dbmysql.Job, error) {
	var job dbmysql.Job
	err := r.db.WithContext(ctx).First(&job, "id = ?", jobID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.NotFoundf("job %s", jobID)
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) ListJobs(ctx context.Context, filter JobFilter) ([]*dbmysql.Job, error) {
	q := r.db.WithContext(ctx).Model(&dbmysql.Job{}).
		Where("jobs.is_active = ?", true)
	if filter.Location != "" {
		q = q.Where("jobs.location LIKE ?", "%"+filter.Location+"%")
	}
	if filter.Type != "" {
		q = q.Where("jobs.type = ?", filter.Type)
	}
	if filter.Occupation != "" {
		q = q.Joins("JOIN users ON users.id = jobs.poster_id").
			Where("users.occupation = ?", filter.Occupation)
	}

	var jobs []*dbmysql.Job
	err := q.Order("jobs.created_at DESC").
		Offset(filter.Skip).
		Limit(filter.Limit).
		Find(&jobs).Error
	return jobs, err
}

// CreateApplication inserts an application atomically with its invariant
// checks: the job must exist and be active, and the (job, user) pair must
// not already have a row. Duplicates are rejected, never updated.
func (r *jobRepository) CreateApplication(ctx context.Context, app *dbmysql.JobApplication) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var job dbmysql.Job
		if err := tx.First(&job, "id = ?", app.JobID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.NotFoundf("job %s", app.JobID)
			}
			return err
		}
		if !job.IsActive {
			return common.Conflictf("job is no longer active")
		}

		_, _, err := dbmysql.ApplyUnique(tx, dbmysql.PolicyRejectDuplicate,
			func(q *gorm.DB) *gorm.DB {
				return q.Where("job_id = ? AND user_id = ?", app.JobID, app.UserID)
			},
			app, nil)
		if errors.Is(err, common.ErrConflict) {
			return common.Conflictf("you have already applied for this job")
		}
		return err
	})
}

func (r *jobRepository) ListApplications(ctx context.Context, jobID string) ([]*dbmysql.JobApplication, error) {
	var apps []*dbmysql.JobApplication
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *jobRepository) CountApplications(ctx context.Context, jobID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmysql.JobApplication{}).
		Where("job_id = ?", jobID).
		Count(&count).Error
	return count, err
}

type jobCount struct {
	JobID string
	N     int64
}

func (r *jobRepository) CountsForJobs(ctx context.Context, jobIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(jobIDs))
	if len(jobIDs) == 0 {
		return counts, nil
	}
	var rows []jobCount
	err := r.db.WithContext(ctx).Model(&dbmysql.JobApplication{}).
		Select("job_id, COUNT(*) AS n").
		Where("job_id IN ?", jobIDs).
		Group("job_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.JobID] = row.N
	}
	return counts, nil
}
