package dbmysql

import (
	"time"
)

const (
	ConnectionStatusPending  = "pending"
	ConnectionStatusAccepted = "accepted"
	ConnectionStatusRejected = "rejected"
)

// Connection is a directional edge from requester to receiver. The unique
// index keeps a requester from piling up duplicate requests to the same
// receiver; the reverse direction is checked by the repository.
type Connection struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	RequesterID string    `gorm:"size:36;not null;uniqueIndex:idx_requester_receiver" json:"requester_id"`
	ReceiverID  string    `gorm:"size:36;not null;uniqueIndex:idx_requester_receiver" json:"receiver_id"`
	Status      string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
