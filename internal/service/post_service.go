package service

import (
	"context"
	"fmt"
	"log"

	"github.com/Prethish-Kumar/Data-Governance-Console/internal/directory"
	"github.com/Prethish-Kumar/Data-Governance-Console/internal/model"
)

// PostService exposes the post operations of the proxy layer.
type PostService interface {
	GetUserPosts(ctx context.Context, userID string) []model.Post
	CreatePost(ctx context.Context, userID, title, content string) error
	DeletePost(ctx context.Context, postID, userID string) error
}

type postService struct {
	api   directory.PostAPI
	reval Revalidator
}

// NewPostService builds a PostService over the directory client.
func NewPostService(api directory.PostAPI, reval Revalidator) PostService {
	return &postService{api: api, reval: reval}
}

// GetUserPosts returns the user's posts; any failure renders as an empty
// list, never as an error, so the detail view keeps its shape.
func (s *postService) GetUserPosts(ctx context.Context, userID string) []model.Post {
	posts, err := s.api.FetchPosts(ctx, userID)
	if err != nil {
		log.Printf("list posts for user %s: %v", userID, err)
		return []model.Post{}
	}
	if posts == nil {
		posts = []model.Post{}
	}
	return posts
}

// CreatePost publishes a post under a user. Failures are loud, after a
// diagnostic log line.
func (s *postService) CreatePost(ctx context.Context, userID, title, content string) error {
	if err := s.api.CreatePost(ctx, userID, title, content); err != nil {
		log.Printf("create post for user %s: %v", userID, err)
		return fmt.Errorf("create post: %w", err)
	}
	s.reval.Revalidate(ctx, userPath(userID))
	return nil
}

// DeletePost removes a post. The directory only needs the post id; userID
// addresses the detail view to refresh afterwards.
func (s *postService) DeletePost(ctx context.Context, postID, userID string) error {
	if err := s.api.DeletePost(ctx, postID); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	s.reval.Revalidate(ctx, userPath(userID))
	return nil
}
