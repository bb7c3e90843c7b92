package event

import (
	"context"
	"time"

	"github.com/google/uuid"

	"trumpet/internal/common"
	"trumpet/internal/dbmysql"
	"trumpet/internal/user"
)

type CreateEventInput struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	Date         time.Time `json:"date"`
	ImageURL     *string   `json:"image_url,omitempty"`
	MaxAttendees *int      `json:"max_attendees,omitempty"`
}

type EventResponse struct {
	*dbmysql.Event
	Organizer      *dbmysql.User `json:"organizer"`
	AttendeesCount int64         `json:"attendees_count"`
}

type AttendeeResponse struct {
	*dbmysql.EventAttendee
	User *dbmysql.User `json:"user"`
}

type EventService interface {
	CreateEvent(ctx context.Context, organizerID string, input CreateEventInput) (*EventResponse, error)
	GetEvent(ctx context.Context, eventID string) (*EventResponse, error)
	ListEvents(ctx context.Context, filter EventFilter) ([]*EventResponse, error)
	Attend(ctx context.Context, eventID, userID, status string) (*AttendeeResponse, error)
}

type eventService struct {
	eventRepo EventRepository
	userRepo  user.UserRepository
}

func NewEventService(eventRepo EventRepository, userRepo user.UserRepository) EventService {
	return &eventService{eventRepo: eventRepo, userRepo: userRepo}
}

func (s *eventService) CreateEvent(ctx context.Context, organizerID string, input CreateEventInput) (*EventResponse, error) {
	if input.Title == "" || input.Description == "" || input.Location == "" {
		return nil, common.Invalidf("title, description and location required")
	}
	if input.Date.IsZero() {
		return nil, common.Invalidf("event date required")
	}
	organizer, err := s.userRepo.GetUserByID(ctx, organizerID)
	if err != nil {
		return nil, err
	}

	event := &dbmysql.Event{
		ID:           uuid.NewString(),
		Title:        input.Title,
		Description:  input.Description,
		Location:     input.Location,
		Date:         input.Date.UTC(),
		ImageURL:     input.ImageURL,
		MaxAttendees: input.MaxAttendees,
		OrganizerID:  organizerID,
	}
	if err := s.eventRepo.CreateEvent(ctx, event); err != nil {
		return nil, err
	}
	return &EventResponse{Event: event, Organizer: organizer}, nil
}

func (s *eventService) GetEvent(ctx context.Context, eventID string) (*EventResponse, error) {
	event, err := s.eventRepo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	organizer, err := s.userRepo.GetUserByID(ctx, event.OrganizerID)
	if err != nil {
		return nil, err
	}
	count, err := s.eventRepo.CountAttendees(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return &EventResponse{Event: event, Organizer: organizer, AttendeesCount: count}, nil
}

func (s *eventService) ListEvents(ctx context.Context, filter EventFilter) ([]*EventResponse, error) {
	if filter.From.IsZero() {
		filter.From = time.Now().UTC()
	}
	events, err := s.eventRepo.ListEvents(ctx, filter)
	if err != nil {
		return nil, err
	}

	eventIDs := make([]string, 0, len(events))
	organizerIDs := make([]string, 0, len(events))
	for _, e := range events {
		eventIDs = append(eventIDs, e.ID)
		organizerIDs = append(organizerIDs, e.OrganizerID)
	}
	counts, err := s.eventRepo.CountsForEvents(ctx, eventIDs)
	if err != nil {
		return nil, err
	}
	organizers, err := s.userRepo.GetUsersByIDs(ctx, organizerIDs)
	if err != nil {
		return nil, err
	}

	out := make([]*EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, &EventResponse{
			Event:          e,
			Organizer:      organizers[e.OrganizerID],
			AttendeesCount: counts[e.ID],
		})
	}
	return out, nil
}

func (s *eventService) Attend(ctx context.Context, eventID, userID, status string) (*AttendeeResponse, error) {
	if status == "" {
		status = dbmysql.AttendeeStatusAttending
	}
	if !dbmysql.ValidAttendeeStatus(status) {
		return nil, common.Invalidf("invalid attendance status %q", status)
	}
	u, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	attendee := &dbmysql.EventAttendee{
		ID:      uuid.NewString(),
		EventID: eventID,
		UserID:  userID,
		Status:  status,
	}
	row, err := s.eventRepo.UpsertAttendance(ctx, attendee)
	if err != nil {
		return nil, err
	}
	return &AttendeeResponse{EventAttendee: row, User: u}, nil
}
