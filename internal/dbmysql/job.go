package dbmysql

import (
	"time"

	"trumpet/internal/common"
)

type Job struct {
	ID           string            `gorm:"primaryKey;size:36" json:"id"`
	Title        string            `gorm:"size:255;not null" json:"title"`
	Description  string            `gorm:"type:text;not null" json:"description"`
	Company      string            `gorm:"size:255;not null" json:"company"`
	Location     string            `gorm:"size:255;not null" json:"location"`
	Type         string            `gorm:"size:50;not null" json:"type"` // full-time, part-time, contract, internship
	Salary       *string           `gorm:"size:100" json:"salary,omitempty"`
	Requirements common.StringList `gorm:"type:text" json:"requirements,omitempty"`
	Benefits     common.StringList `gorm:"type:text" json:"benefits,omitempty"`
	PosterID     string            `gorm:"size:36;not null;index" json:"poster_id"`
	IsActive     bool              `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusAccepted = "accepted"
	ApplicationStatusRejected = "rejected"
)

// JobApplication is unique per (job, user); a second application from the
// same user is rejected, never updated.
type JobApplication struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	JobID       string    `gorm:"size:36;not null;uniqueIndex:idx_job_user" json:"job_id"`
	UserID      string    `gorm:"size:36;not null;uniqueIndex:idx_job_user" json:"user_id"`
	CoverLetter *string   `gorm:"type:text" json:"cover_letter,omitempty"`
	ResumeURL   *string   `gorm:"size:512" json:"resume_url,omitempty"`
	Status      string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
