package dbmysql

import (
	"time"

	"trumpet/internal/common"
)

type User struct {
	ID           string            `gorm:"primaryKey;size:36" json:"id"`
	Email        string            `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Username     string            `gorm:"uniqueIndex;size:50;not null" json:"username"`
	FirstName    string            `gorm:"size:100;not null" json:"first_name"`
	LastName     string            `gorm:"size:100;not null" json:"last_name"`
	PasswordHash string            `gorm:"size:255;not null" json:"-"`
	Avatar       *string           `gorm:"size:512" json:"avatar,omitempty"`
	Occupation   string            `gorm:"size:100;not null" json:"occupation"`
	Interests    common.StringList `gorm:"type:text" json:"interests"`
	Location     string            `gorm:"size:255;not null" json:"location"`
	Bio          *string           `gorm:"type:text" json:"bio,omitempty"`
	IsVerified   bool              `gorm:"default:false" json:"is_verified"`
	IsPremium    bool              `gorm:"default:false" json:"is_premium"`
	Level        int               `gorm:"default:1" json:"level"`
	Experience   int               `gorm:"default:0" json:"experience"`
	CreatedAt    time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}
