package dbmysql

import (
	"time"
)

type Event struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Description  string    `gorm:"type:text;not null" json:"description"`
	Location     string    `gorm:"size:255;not null" json:"location"`
	Date         time.Time `gorm:"not null;index" json:"date"`
	ImageURL     *string   `gorm:"size:512" json:"image_url,omitempty"`
	MaxAttendees *int      `json:"max_attendees,omitempty"`
	OrganizerID  string    `gorm:"size:36;not null;index" json:"organizer_id"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

const (
	AttendeeStatusAttending    = "attending"
	AttendeeStatusMaybe        = "maybe"
	AttendeeStatusNotAttending = "not_attending"
)

// EventAttendee is unique per (event, user); re-submitting attendance
// updates the status in place instead of adding a row.
type EventAttendee struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	EventID   string    `gorm:"size:36;not null;uniqueIndex:idx_event_user" json:"event_id"`
	UserID    string    `gorm:"size:36;not null;uniqueIndex:idx_event_user" json:"user_id"`
	Status    string    `gorm:"size:20;not null;default:'attending'" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func ValidAttendeeStatus(status string) bool {
	switch status {
	case AttendeeStatusAttending, AttendeeStatusMaybe, AttendeeStatusNotAttending:
		return true
	}
	return false
}
