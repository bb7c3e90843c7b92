package job

import (
	"context"

	"github.com/google/uuid"

	"trumpet/internal/common"
	"trumpet/internal/dbmysql"
	"trumpet/internal/user"
)

type CreateJobInput struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	Type         string   `json:"type"`
	Salary       *string  `json:"salary,omitempty"`
	Requirements []string `json:"requirements,omitempty"`
	Benefits     []string `json:"benefits,omitempty"`
}

type ApplyInput struct {
	CoverLetter *string `json:"cover_letter,omitempty"`
	ResumeURL   *string `json:"resume_url,omitempty"`
}

type JobResponse struct {
	*dbmysql.Job
	Poster            *dbmysql.User `json:"poster"`
	ApplicationsCount int64         `json:"applications_count"`
}

type ApplicationResponse struct {
	*dbmysql.JobApplication
	User *dbmysql.User `json:"user"`
}

type JobService interface {
	CreateJob(ctx context.Context, posterID string, input CreateJobInput) (*JobResponse, error)
	GetJob(ctx context.Context, jobID string) (*JobResponse, error)
	ListJobs(ctx context.Context, filter JobFilter) ([]*JobResponse, error)
	Apply(ctx context.Context, jobID, userID string, input ApplyInput) (*ApplicationResponse, error)
	ListApplications(ctx context.Context, jobID, requesterID string) ([]*ApplicationResponse, error)
}

type jobService struct {
	jobRepo  JobRepository
	userRepo user.UserRepository
}

func NewJobService(jobRepo JobRepository, userRepo user.UserRepository) JobService {
	return &jobService{jobRepo: jobRepo, userRepo: userRepo}
}

func (s *jobService) CreateJob(ctx context.Context, posterID string, input CreateJobInput) (*JobResponse, error) {
	if input.Title == "" || input.Description == "" || input.Company == "" {
		return nil, common.Invalidf("title, description and company required")
	}
	if input.Location == "" || input.Type == "" {
		return nil, common.Invalidf("location and type required")
	}
	poster, err := s.userRepo.GetUserByID(ctx, posterID)
	if err != nil {
		return nil, err
	}

	j := &dbmysql.Job{
		ID:           uuid.NewString(),
		Title:        input.Title,
		Description:  input.Description,
		Company:      input.Company,
		Location:     input.Location,
		Type:         input.Type,
		Salary:       input.Salary,
		Requirements: common.StringList(input.Requirements),
		Benefits:     common.StringList(input.Benefits),
		PosterID:     posterID,
		IsActive:     true,
	}
	if err := s.jobRepo.CreateJob(ctx, j); err != nil {
		return nil, err
	}
	return &JobResponse{Job: j, Poster: poster}, nil
}

func (s *jobService) GetJob(ctx context.Context, jobID string) (*JobResponse, error) {
	j, err := s.jobRepo.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	poster, err := s.userRepo.GetUserByID(ctx, j.PosterID)
	if err != nil {
		return nil, err
	}
	count, err := s.jobRepo.CountApplications(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return &JobResponse{Job: j, Poster: poster, ApplicationsCount: count}, nil
}

func (s *jobService) ListJobs(ctx context.Context, filter JobFilter) ([]*JobResponse, error) {
	jobs, err := s.jobRepo.ListJobs(ctx, filter)
	if err != nil {
		return nil, err
	}

	jobIDs := make([]string, 0, len(jobs))
	posterIDs := make([]string, 0, len(jobs))
	for _, j := range jobs {
		jobIDs = append(jobIDs, j.ID)
		posterIDs = append(posterIDs, j.PosterID)
	}
	counts, err := s.jobRepo.CountsForJobs(ctx, jobIDs)
	if err != nil {
		return nil, err
	}
	posters, err := s.userRepo.GetUsersByIDs(ctx, posterIDs)
	if err != nil {
		return nil, err
	}

	out := make([]*JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, &JobResponse{
			Job:               j,
			Poster:            posters[j.PosterID],
			ApplicationsCount: counts[j.ID],
		})
	}
	return out, nil
}

func (s *jobService) Apply(ctx context.Context, jobID, userID string, input ApplyInput) (*ApplicationResponse, error) {
	u, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	app := &dbmysql.JobApplication{
		ID:          uuid.NewString(),
		JobID:       jobID,
		UserID:      userID,
		CoverLetter: input.CoverLetter,
		ResumeURL:   input.ResumeURL,
		Status:      dbmysql.ApplicationStatusPending,
	}
	if err := s.jobRepo.CreateApplication(ctx, app); err != nil {
		return nil, err
	}
	return &ApplicationResponse{JobApplication: app, User: u}, nil
}

// ListApplications is restricted to the job's poster.
func (s *jobService) ListApplications(ctx context.Context, jobID, requesterID string) ([]*ApplicationResponse, error) {
	j, err := s.jobRepo.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.PosterID != requesterID {
		return nil, common.ErrUnauthorized
	}

	apps, err := s.jobRepo.ListApplications(ctx, jobID)
	if err != nil {
		return nil, err
	}
	userIDs := make([]string, 0, len(apps))
	for _, a := range apps {
		userIDs = append(userIDs, a.UserID)
	}
	users, err := s.userRepo.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	out := make([]*ApplicationResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, &ApplicationResponse{JobApplication: a, User: users[a.UserID]})
	}
	return out, nil
}
