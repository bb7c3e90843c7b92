package httpapi

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"trumpet/internal/chat"
	"trumpet/internal/event"
	"trumpet/internal/feed"
	"trumpet/internal/job"
	"trumpet/internal/notif"
	"trumpet/internal/user"
)

type Server struct {
	users  user.UserService
	feed   feed.FeedService
	events event.EventService
	jobs   job.JobService
	chat   chat.ChatService
	notifs notif.NotificationService
	router *mux.Router
}

func NewServer(
	users user.UserService,
	feedSvc feed.FeedService,
	events event.EventService,
	jobs job.JobService,
	chatSvc chat.ChatService,
	notifs notif.NotificationService,
) *Server {
	s := &Server{
		users:  users,
		feed:   feedSvc,
		events: events,
		jobs:   jobs,
		chat:   chatSvc,
		notifs: notifs,
		router: mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	limiter := newIPRateLimiter(20, 40)
	s.router.Use(limiter.middleware)

	api := s.router.PathPrefix("/api").Subrouter()

	// Public surface.
	api.HandleFunc("/health", s.handleHealth).Methods("GET")
	api.HandleFunc("/auth/register", s.handleRegister).Methods("POST")
	api.HandleFunc("/auth/login", s.handleLogin).Methods("POST")

	// Everything else requires a resolved identity.
	auth := api.NewRoute().Subrouter()
	auth.Use(authMiddleware)

	auth.HandleFunc("/auth/me", s.handleMe).Methods("GET")
	auth.HandleFunc("/auth/profile", s.handleUpdateProfile).Methods("PUT")

	auth.HandleFunc("/users", s.handleListUsers).Methods("GET")
	auth.HandleFunc("/users/search/{query}", s.handleSearchUsers).Methods("GET")
	auth.HandleFunc("/users/{user_id}", s.handleGetUser).Methods("GET")

	auth.HandleFunc("/posts", s.handleCreatePost).Methods("POST")
	auth.HandleFunc("/posts", s.handleListPosts).Methods("GET")
	auth.HandleFunc("/posts/{post_id}", s.handleGetPost).Methods("GET")
	auth.HandleFunc("/posts/{post_id}/like", s.handleLikePost).Methods("POST")
	auth.HandleFunc("/posts/{post_id}/comments", s.handleAddComment).Methods("POST")
	auth.HandleFunc("/posts/{post_id}/comments", s.handleListComments).Methods("GET")

	auth.HandleFunc("/events", s.handleCreateEvent).Methods("POST")
	auth.HandleFunc("/events", s.handleListEvents).Methods("GET")
	auth.HandleFunc("/events/{event_id}", s.handleGetEvent).Methods("GET")
	auth.HandleFunc("/events/{event_id}/attend", s.handleAttendEvent).Methods("POST")

	auth.HandleFunc("/jobs", s.handleCreateJob).Methods("POST")
	auth.HandleFunc("/jobs", s.handleListJobs).Methods("GET")
	auth.HandleFunc("/jobs/{job_id}", s.handleGetJob).Methods("GET")
	auth.HandleFunc("/jobs/{job_id}/apply", s.handleApplyToJob).Methods("POST")
	auth.HandleFunc("/jobs/{job_id}/applications", s.handleListApplications).Methods("GET")

	auth.HandleFunc("/messages", s.handleSendMessage).Methods("POST")
	// Registered before /messages/{user_id} so "conversations" is not taken
	// for a user id.
	auth.HandleFunc("/messages/conversations", s.handleConversations).Methods("GET")
	auth.HandleFunc("/messages/{user_id}", s.handleThread).Methods("GET")

	auth.HandleFunc("/notifications", s.handleListNotifications).Methods("GET")
	auth.HandleFunc("/notifications/unread-count", s.handleUnreadNotificationCount).Methods("GET")
	auth.HandleFunc("/notifications/read-all", s.handleMarkAllNotificationsRead).Methods("PUT")
	auth.HandleFunc("/notifications/{id}/read", s.handleMarkNotificationRead).Methods("PUT")

	auth.HandleFunc("/connections", s.handleRequestConnection).Methods("POST")
	auth.HandleFunc("/connections", s.handleListConnections).Methods("GET")
	auth.HandleFunc("/connections/{id}/accept", s.handleAcceptConnection).Methods("PUT")
	auth.HandleFunc("/connections/{id}/reject", s.handleRejectConnection).Methods("PUT")
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) Listen(addr string) error {
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "OK",
		"message": "Trumpet API is running",
	})
}
