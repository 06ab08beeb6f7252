package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/Prethish-Kumar/Data-Governance-Console/internal/cache"
	"github.com/Prethish-Kumar/Data-Governance-Console/internal/directory"
	"github.com/Prethish-Kumar/Data-Governance-Console/internal/errors"
	"github.com/Prethish-Kumar/Data-Governance-Console/internal/model"
)

// userListTTL is the reuse window for the paged listing: repeated list
// requests inside it are served from cache to absorb bursts. It is the
// only read-path caching the console does.
const userListTTL = 30 * time.Second

// AddUserResult captures the outcome of AddUser instead of raising, so the
// caller chooses navigation behavior.
type AddUserResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// UserService exposes the user operations of the proxy layer.
type UserService interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUsers(ctx context.Context, page int) (model.Page[model.User], error)
	GetUser(ctx context.Context, id string) *model.User
	AddUser(ctx context.Context, username, email, name string, roles []string) AddUserResult
	ToggleUserStatus(ctx context.Context, id string, status model.Status) (*model.User, error)
	DeleteUser(ctx context.Context, id string) error
}

type userService struct {
	api   directory.UserAPI
	cache ViewCache
	reval Revalidator
}

// NewUserService builds a UserService over the directory client.
func NewUserService(api directory.UserAPI, cache ViewCache, reval Revalidator) UserService {
	return &userService{api: api, cache: cache, reval: reval}
}

func (s *userService) listCacheKey(page int) string {
	return cache.ViewKey(fmt.Sprintf("%s?page=%d", usersPath, page))
}

// ListUsers returns the full, unpaged listing, always fetched fresh.
func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.api.FetchUsers(ctx)
}

// GetUsers returns one listing page. Pages are reused for a short window;
// failures are loud, after a diagnostic log line.
func (s *userService) GetUsers(ctx context.Context, page int) (model.Page[model.User], error) {
	if page < 0 {
		page = 0
	}

	key := s.listCacheKey(page)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached model.Page[model.User]
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	result, err := s.api.FetchUserPage(ctx, page)
	if err != nil {
		log.Printf("list users page %d: %v", page, err)
		return model.Page[model.User]{}, err
	}

	if payload, err := json.Marshal(result); err == nil {
		_ = s.cache.Set(ctx, key, payload, userListTTL)
	}
	return result, nil
}

// GetUser returns the user or nil when the directory cannot produce one.
// Failures are logged, never returned, so a detail view can still render
// its other sections.
func (s *userService) GetUser(ctx context.Context, id string) *model.User {
	user, err := s.api.FetchUser(ctx, id)
	if err != nil {
		log.Printf("get user %s: %v", id, err)
		return nil
	}
	return user
}

// AddUser registers a new ACTIVE account and reports the outcome instead
// of failing loudly, so the caller decides where to navigate.
func (s *userService) AddUser(ctx context.Context, username, email, name string, roles []string) AddUserResult {
	if err := s.api.CreateUser(ctx, username, email, name, roles); err != nil {
		log.Printf("add user %q: %v", username, err)
		return AddUserResult{Success: false, Error: "Failed to add user"}
	}
	s.reval.Revalidate(ctx, usersPath)
	return AddUserResult{Success: true}
}

// ToggleUserStatus moves an account between ACTIVE and INACTIVE and returns
// the updated payload. Failures are loud and carry the directory's own
// error text.
func (s *userService) ToggleUserStatus(ctx context.Context, id string, status model.Status) (*model.User, error) {
	user, err := s.api.UpdateUserStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("toggle user status: %w", err)
	}
	s.reval.Revalidate(ctx, usersPath)
	s.reval.Revalidate(ctx, userPath(id))
	return user, nil
}

// DeleteUser removes an account. An empty id fails locally before any
// network call.
func (s *userService) DeleteUser(ctx context.Context, id string) error {
	if id == "" {
		return errors.ErrUserIDRequired
	}
	if err := s.api.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	s.reval.Revalidate(ctx, usersPath)
	return nil
}
