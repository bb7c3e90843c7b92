package user

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"trumpet/internal/common"
	"trumpet/internal/dbmysql"
)

// ListFilter narrows a user listing. Every set field ANDs into the query.
type ListFilter struct {
	Occupation string
	Location   string
	Interests  []string
	Skip       int
	Limit      int
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *dbmysql.User) error
	GetUserByID(ctx context.Context, userID string) (*dbmysql.User, error)
	GetUserByEmail(ctx context.Context, email string) (*dbmysql.User, error)
	GetUsersByIDs(ctx context.Context, userIDs []string) (map[string]*dbmysql.User, error)
	UpdateUser(ctx context.Context, user *dbmysql.User) error
	CheckIdentityTaken(ctx context.Context, email, username string) (bool, error)
	ListUsers(ctx context.Context, filter ListFilter) ([]*dbmysql.User, error)
	SearchUsers(ctx context.Context, query string, skip, limit int) ([]*dbmysql.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *dbmysql.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// A concurrent registration won the unique index on email/username.
		return common.Conflictf("email or username already registered")
	}
	return err
}

func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*dbmysql.User, error) {
	var user dbmysql.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.NotFoundf("user %s", userID)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*dbmysql.User, error) {
	var user dbmysql.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.NotFoundf("user with email %s", email)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUsersByIDs(ctx context.Context, userIDs []string) (map[string]*dbmysql.User, error) {
	result := make(map[string]*dbmysql.User, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}
	var users []*dbmysql.User
	if err := r.db.WithContext(ctx).Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		result[u.ID] = u
	}
	return result, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *dbmysql.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) CheckIdentityTaken(ctx context.Context, email, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmysql.User{}).
		Where("email = ? OR username = ?", email, username).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepository) ListUsers(ctx context.Context, filter ListFilter) ([]*dbmysql.User, error) {
	q := r.db.WithContext(ctx).Model(&dbmysql.User{})
	if filter.Occupation != "" {
		q = q.Where("occupation = ?", filter.Occupation)
	}
	if filter.Location != "" {
		q = q.Where("location LIKE ?", "%"+filter.Location+"%")
	}
	// AND semantics: each interest term independently narrows the result via
	// a substring filter on the serialized column.
	for _, interest := range filter.Interests {
		interest = strings.TrimSpace(interest)
		if interest == "" {
			continue
		}
		q = q.Where("interests LIKE ?", "%"+interest+"%")
	}

	var users []*dbmysql.User
	err := q.Order("created_at DESC").
		Offset(filter.Skip).
		Limit(filter.Limit).
		Find(&users).Error
	return users, err
}

func (r *userRepository) SearchUsers(ctx context.Context, query string, skip, limit int) ([]*dbmysql.User, error) {
	pattern := "%" + query + "%"
	var users []*dbmysql.User
	err := r.db.WithContext(ctx).
		Where("username LIKE ? OR first_name LIKE ? OR last_name LIKE ? OR occupation LIKE ? OR location LIKE ?",
			pattern, pattern, pattern, pattern, pattern).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&users).Error
	return users, err
}
