package feed

import (
	"context"

	"github.com/google/uuid"

	"trumpet/internal/common"
	"trumpet/internal/dbmysql"
	"trumpet/internal/user"
)

// PostResponse shapes a post for the API: the author is resolved by an
// explicit lookup and the counts are computed from the child tables at read
// time, never stored.
type PostResponse struct {
	*dbmysql.Post
	Author        *dbmysql.User `json:"author"`
	LikesCount    int64         `json:"likes_count"`
	CommentsCount int64         `json:"comments_count"`
}

type CommentResponse struct {
	*dbmysql.Comment
	Author *dbmysql.User `json:"author"`
}

// LikeResult is the toggle outcome reported to the caller.
type LikeResult struct {
	Message string `json:"message"`
	Liked   bool   `json:"liked"`
}

type FeedService interface {
	CreatePost(ctx context.Context, authorID, content string, imageURL *string) (*PostResponse, error)
	GetPost(ctx context.Context, postID string) (*PostResponse, error)
	ListPosts(ctx context.Context, filter PostFilter) ([]*PostResponse, error)
	ToggleLike(ctx context.Context, postID, userID string) (*LikeResult, error)
	AddComment(ctx context.Context, postID, authorID, content string) (*CommentResponse, error)
	ListComments(ctx context.Context, postID string) ([]*CommentResponse, error)
}

type feedService struct {
	feedRepo FeedRepository
	userRepo user.UserRepository
}

func NewFeedService(feedRepo FeedRepository, userRepo user.UserRepository) FeedService {
	return &feedService{feedRepo: feedRepo, userRepo: userRepo}
}

func (s *feedService) CreatePost(ctx context.Context, authorID, content string, imageURL *string) (*PostResponse, error) {
	if content == "" {
		return nil, common.Invalidf("post content required")
	}
	author, err := s.userRepo.GetUserByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	post := &dbmysql.Post{
		ID:       uuid.NewString(),
		Content:  content,
		ImageURL: imageURL,
		AuthorID: authorID,
	}
	if err := s.feedRepo.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return &PostResponse{Post: post, Author: author}, nil
}

func (s *feedService) GetPost(ctx context.Context, postID string) (*PostResponse, error) {
	post, err := s.feedRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return s.shapePost(ctx, post)
}

func (s *feedService) ListPosts(ctx context.Context, filter PostFilter) ([]*PostResponse, error) {
	posts, err := s.feedRepo.ListPosts(ctx, filter)
	if err != nil {
		return nil, err
	}

	postIDs := make([]string, 0, len(posts))
	authorIDs := make([]string, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
		authorIDs = append(authorIDs, p.AuthorID)
	}

	likes, comments, err := s.feedRepo.CountsForPosts(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	authors, err := s.userRepo.GetUsersByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	out := make([]*PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, &PostResponse{
			Post:          p,
			Author:        authors[p.AuthorID],
			LikesCount:    likes[p.ID],
			CommentsCount: comments[p.ID],
		})
	}
	return out, nil
}

func (s *feedService) ToggleLike(ctx context.Context, postID, userID string) (*LikeResult, error) {
	like := &dbmysql.Like{
		ID:     uuid.NewString(),
		PostID: postID,
		UserID: userID,
	}
	liked, err := s.feedRepo.ToggleLike(ctx, like)
	if err != nil {
		return nil, err
	}

	msg := "Post unliked"
	if liked {
		msg = "Post liked"
	}
	return &LikeResult{Message: msg, Liked: liked}, nil
}

func (s *feedService) AddComment(ctx context.Context, postID, authorID, content string) (*CommentResponse, error) {
	if content == "" {
		return nil, common.Invalidf("comment content required")
	}
	if _, err := s.feedRepo.GetPostByID(ctx, postID); err != nil {
		return nil, err
	}
	author, err := s.userRepo.GetUserByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	comment := &dbmysql.Comment{
		ID:       uuid.NewString(),
		Content:  content,
		PostID:   postID,
		AuthorID: authorID,
	}
	if err := s.feedRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return &CommentResponse{Comment: comment, Author: author}, nil
}

func (s *feedService) ListComments(ctx context.Context, postID string) ([]*CommentResponse, error) {
	if _, err := s.feedRepo.GetPostByID(ctx, postID); err != nil {
		return nil, err
	}
	comments, err := s.feedRepo.ListComments(ctx, postID)
	if err != nil {
		return nil, err
	}

	authorIDs := make([]string, 0, len(comments))
	for _, c := range comments {
		authorIDs = append(authorIDs, c.AuthorID)
	}
	authors, err := s.userRepo.GetUsersByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	out := make([]*CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, &CommentResponse{Comment: c, Author: authors[c.AuthorID]})
	}
	return out, nil
}

func (s *feedService) shapePost(ctx context.Context, post *dbmysql.Post) (*PostResponse, error) {
	author, err := s.userRepo.GetUserByID(ctx, post.AuthorID)
	if err != nil {
		return nil, err
	}
	likesCount, err := s.feedRepo.CountLikes(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	commentsCount, err := s.feedRepo.CountComments(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	return &PostResponse{
		Post:          post,
		Author:        author,
		LikesCount:    likesCount,
		CommentsCount: commentsCount,
	}, nil
}
