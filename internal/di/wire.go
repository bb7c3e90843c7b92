//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"trumpet/internal/chat"
	"trumpet/internal/config"
	"trumpet/internal/event"
	"trumpet/internal/feed"
	"trumpet/internal/httpapi"
	"trumpet/internal/job"
	"trumpet/internal/notif"
	"trumpet/internal/user"
)

// InitializeServer wires every repository and service behind the HTTP
// server. Wire generates the real body.
func InitializeServer(db *gorm.DB, cfg *config.Config) *httpapi.Server {
	wire.Build(
		user.NewUserRepository,
		user.NewConnectionRepository,
		user.NewUserService,
		feed.NewFeedRepository,
		feed.NewFeedService,
		event.NewEventRepository,
		event.NewEventService,
		job.NewJobRepository,
		job.NewJobService,
		chat.NewChatRepository,
		chat.NewChatService,
		notif.NewNotificationRepository,
		notif.NewNotificationService,
		httpapi.NewServer,
	)
	return nil
}
