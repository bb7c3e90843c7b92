package event

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"trumpet/internal/common"
	"trumpet/internal/dbmysql"
)

// EventFilter narrows the event listing. From is the date floor; listings
// never include past events.
type EventFilter struct {
	Location   string
	Occupation string
	From       time.Time
	Skip       int
	Limit      int
}

type EventRepository interface {
	CreateEvent(ctx context.Context, event *dbmysql.Event) error
	GetEventByID(ctx context.Context, eventID string) (*dbmysql.Event, error)
	ListEvents(ctx context.Context, filter EventFilter) ([]*dbmysql.Event, error)
	UpsertAttendance(ctx context.Context, attendee *dbmysql.EventAttendee) (*dbmysql.EventAttendee, error)
	CountAttendees(ctx context.Context, eventID string) (int64, error)
	CountsForEvents(ctx context.Context, eventIDs []string) (map[string]int64, error)
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) CreateEvent(ctx context.Context, event *dbmysql.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) GetEventByID(ctx context.Context, eventID string) (*dbmysql.Event, error) {
	var event dbmysql.Event
	err := r.db.WithContext(ctx).First(&event, "id = ?", eventID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.NotFoundf("event %s", eventID)
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) ListEvents(ctx context.Context, filter EventFilter) ([]*dbmysql.Event, error) {
	q := r.db.WithContext(ctx).Model(&dbmysql.Event{}).
		Where("events.date >= ?", filter.From)
	if filter.Location != "" {
		q = q.Where("events.location LIKE ?", "%"+filter.Location+"%")
	}
	if filter.Occupation != "" {
		q = q.Joins("JOIN users ON users.id = events.organizer_id").
			Where("users.occupation = ?", filter.Occupation)
	}

	var events []*dbmysql.Event
	err := q.Order("events.date ASC").
		Offset(filter.Skip).
		Limit(filter.Limit).
		Find(&events).Error
	return events, err
}

// UpsertAttendance records or revises a user's attendance in one
// transaction. A second submission for the same (event, user) updates the
// status of the existing row; it never adds a row.
func (r *eventRepository) UpsertAttendance(ctx context.Context, attendee *dbmysql.EventAttendee) (*dbmysql.EventAttendee, error) {
	var result *dbmysql.EventAttendee
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event dbmysql.Event
		if err := tx.First(&event, "id = ?", attendee.EventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.NotFoundf("event %s", attendee.EventID)
			}
			return err
		}

		_, row, err := dbmysql.ApplyUnique(tx, dbmysql.PolicyUpsert,
			func(q *gorm.DB) *gorm.DB {
				return q.Where("event_id = ? AND user_id = ?", attendee.EventID, attendee.UserID)
			},
			attendee,
			func(existing *dbmysql.EventAttendee) {
				existing.Status = attendee.Status
			})
		if err != nil {
			return err
		}
		result = row
		return nil
	})
	return result, err
}

func (r *eventRepository) CountAttendees(ctx context.Context, eventID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmysql.EventAttendee{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}

type eventCount struct {
	EventID string
	N       int64
}

func (r *eventRepository) CountsForEvents(ctx context.Context, eventIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(eventIDs))
	if len(eventIDs) == 0 {
		return counts, nil
	}
	var rows []eventCount
	err := r.db.WithContext(ctx).Model(&dbmysql.EventAttendee{}).
		Select("event_id, COUNT(*) AS n").
		Where("event_id IN ?", eventIDs).
		Group("event_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.EventID] = row.N
	}
	return counts, nil
}
