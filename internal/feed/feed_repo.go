package feed

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"trumpet/internal/common"
	"trumpet/internal/dbmysql"
)

// PostFilter narrows the post listing by attributes of the author.
type PostFilter struct {
	Occupation string
	Location   string
	Skip       int
	Limit      int
}

type FeedRepository interface {
	CreatePost(ctx context.Context, post *dbmysql.Post) error
	GetPostByID(ctx context.Context, postID string) (*dbmysql.Post, error)
	ListPosts(ctx context.Context, filter PostFilter) ([]*dbmysql.Post, error)
	CreateComment(ctx context.Context, comment *dbmysql.Comment) error
	ListComments(ctx context.Context, postID string) ([]*dbmysql.Comment, error)
	ToggleLike(ctx context.Context, like *dbmysql.Like) (bool, error)
	CountLikes(ctx context.Context, postID string) (int64, error)
	CountComments(ctx context.Context, postID string) (int64, error)
	CountsForPosts(ctx context.Context, postIDs []string) (likes, comments map[string]int64, err error)
}

type feedRepository struct {
	db *gorm.DB
}

func NewFeedRepository(db *gorm.DB) FeedRepository {
	return &feedRepository{db: db}
}

func (r *feedRepository) CreatePost(ctx context.Context, post *dbmysql.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *feedRepository) GetPostByID(ctx context.Context, postID string) (*dbmysql.Post, error) {
	var post dbmysql.Post
	err := r.db.WithContext(ctx).First(&post, "id = ?", postID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.NotFoundf("post %s", postID)
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *feedRepository) ListPosts(ctx context.Context, filter PostFilter) ([]*dbmysql.Post, error) {
	q := r.db.WithContext(ctx).Model(&dbmysql.Post{})
	if filter.Occupation != "" || filter.Location != "" {
		q = q.Joins("JOIN users ON users.id = posts.author_id")
		if filter.Occupation != "" {
			q = q.Where("users.occupation = ?", filter.Occupation)
		}
		if filter.Location != "" {
			q = q.Where("users.location LIKE ?", "%"+filter.Location+"%")
		}
	}

	var posts []*dbmysql.Post
	err := q.Order("posts.created_at DESC").
		Offset(filter.Skip).
		Limit(filter.Limit).
		Find(&posts).Error
	return posts, err
}

func (r *feedRepository) CreateComment(ctx context.Context, comment *dbmysql.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *feedRepository) ListComments(ctx context.Context, postID string) ([]*dbmysql.Comment, error) {
	var comments []*dbmysql.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

// ToggleLike flips the like state for (post, user) atomically: the existence
// check, the branch, and the write share one transaction. Reports whether
// the post ends up liked.
func (r *feedRepository) ToggleLike(ctx context.Context, like *dbmysql.Like) (bool, error) {
	var liked bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post dbmysql.Post
		if err := tx.First(&post, "id = ?", like.PostID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.NotFoundf("post %s", like.PostID)
			}
			return err
		}

		outcome, _, err := dbmysql.ApplyUnique(tx, dbmysql.PolicyToggle,
			func(q *gorm.DB) *gorm.DB {
				return q.Where("post_id = ? AND user_id = ?", like.PostID, like.UserID)
			},
			like, nil)
		if err != nil {
			return err
		}
		liked = outcome == dbmysql.OutcomeInserted
		return nil
	})
	return liked, err
}

func (r *feedRepository) CountLikes(ctx context.Context, postID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmysql.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (r *feedRepository) CountComments(ctx context.Context, postID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmysql.Comment{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

type postCount struct {
	PostID string
	N      int64
}

// CountsForPosts aggregates child cardinalities for a page of posts in two
// grouped queries instead of 2N point lookups.
func (r *feedRepository) CountsForPosts(ctx context.Context, postIDs []string) (map[string]int64, map[string]int64, error) {
	likes := make(map[string]int64, len(postIDs))
	comments := make(map[string]int64, len(postIDs))
	if len(postIDs) == 0 {
		return likes, comments, nil
	}

	var rows []postCount
	err := r.db.WithContext(ctx).Model(&dbmysql.Like{}).
		Select("post_id, COUNT(*) AS n").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, nil, err
	}
	for _, row := range rows {
		likes[row.PostID] = row.N
	}

	rows = nil
	err = r.db.WithContext(ctx).Model(&dbmysql.Comment{}).
		Select("post_id, COUNT(*) AS n").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, nil, err
	}
	for _, row := range rows {
		comments[row.PostID] = row.N
	}
	return likes, comments, nil
}
