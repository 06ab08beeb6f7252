package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Prethish-Kumar/Data-Governance-Console/internal/model"
)

// PostAPI defines the post endpoints of the directory.
type PostAPI interface {
	FetchPosts(ctx context.Context, userID string) ([]model.Post, error)
	CreatePost(ctx context.Context, userID, title, content string) error
	DeletePost(ctx context.Context, postID string) error
}

// Ensure Client implements PostAPI
var _ PostAPI = (*Client)(nil)

// FetchPosts returns every post authored by a user.
func (c *Client) FetchPosts(ctx context.Context, userID string) ([]model.Post, error) {
	data, err := c.do(ctx, "list_posts", http.MethodGet, "/api/v1/users/"+url.PathEscape(userID)+"/posts", nil)
	if err != nil {
		return nil, err
	}
	var posts []model.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	return posts, nil
}

// CreatePost publishes a post under a user.
func (c *Client) CreatePost(ctx context.Context, userID, title, content string) error {
	body := struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}{title, content}
	_, err := c.do(ctx, "create_post", http.MethodPost, "/api/v1/users/"+url.PathEscape(userID)+"/posts", body)
	return err
}

// DeletePost removes a post by its own id.
func (c *Client) DeletePost(ctx context.Context, postID string) error {
	_, err := c.do(ctx, "delete_post", http.MethodDelete, "/api/v1/posts/"+url.PathEscape(postID), nil)
	return err
}
