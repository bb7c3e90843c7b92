package user

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"trumpet/internal/common"
	"trumpet/internal/dbmysql"
)

type ConnectionRepository interface {
	CreateRequest(ctx context.Context, conn *dbmysql.Connection) error
	GetByID(ctx context.Context, id string) (*dbmysql.Connection, error)
	Update(ctx context.Context, conn *dbmysql.Connection) error
	ListForUser(ctx context.Context, userID string) ([]*dbmysql.Connection, error)
}

type connectionRepository struct {
	db *gorm.DB
}

func NewConnectionRepository(db *gorm.DB) ConnectionRepository {
	return &connectionRepository{db: db}
}

// CreateRequest applies the same check-then-write discipline as the
// uniqueness engine, but the branch depends on the existing edge's status,
// so it is composed here: a pending or accepted edge in either direction
// refuses the request, a previously rejected same-direction edge is reset
// to pending, and only a missing edge inserts a new row. The whole sequence
// runs in one transaction with the unique index arbitrating races. On
// success conn holds the persisted row, whichever branch produced it.
func (r *connectionRepository) CreateRequest(ctx context.Context, conn *dbmysql.Connection) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var reverse dbmysql.Connection
		err := tx.Where("requester_id = ? AND receiver_id = ? AND status IN ?",
			conn.ReceiverID, conn.RequesterID,
			[]string{dbmysql.ConnectionStatusPending, dbmysql.ConnectionStatusAccepted}).
			First(&reverse).Error
		if err == nil {
			return common.Conflictf("connection already exists")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var existing dbmysql.Connection
		err = tx.Where("requester_id = ? AND receiver_id = ?", conn.RequesterID, conn.ReceiverID).
			First(&existing).Error
		switch {
		case err == nil:
			if existing.Status != dbmysql.ConnectionStatusRejected {
				return common.Conflictf("connection request already sent")
			}
			existing.Status = dbmysql.ConnectionStatusPending
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			// The caller holds the revived row from here on, not the
			// candidate insert it built.
			*conn = existing
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(conn).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return common.Conflictf("connection request already sent")
				}
				return err
			}
			return nil
		default:
			return err
		}
	})
}

func (r *connectionRepository) GetByID(ctx context.Context, id string) (*dbmysql.Connection, error) {
	var conn dbmysql.Connection
	err := r.db.WithContext(ctx).First(&conn, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.NotFoundf("connection %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &conn, nil
}

func (r *connectionRepository) Update(ctx context.Context, conn *dbmysql.Connection) error {
	return r.db.WithContext(ctx).Save(conn).Error
}

func (r *connectionRepository) ListForUser(ctx context.Context, userID string) ([]*dbmysql.Connection, error) {
	var conns []*dbmysql.Connection
	err := r.db.WithContext(ctx).
		Where("requester_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&conns).Error
	return conns, err
}
