package dbmysql

import (
	"time"

	"trumpet/internal/common"
)

// Notification is a record only; delivery transports live elsewhere.
type Notification struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	UserID    string         `gorm:"size:36;not null;index" json:"user_id"`
	Type      string         `gorm:"size:50;not null" json:"type"` // like, comment, connection, event, job
	Title     string         `gorm:"size:255;not null" json:"title"`
	Message   string         `gorm:"type:text;not null" json:"message"`
	IsRead    bool           `gorm:"default:false" json:"is_read"`
	Data      common.JSONMap `gorm:"type:text" json:"data,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
}
