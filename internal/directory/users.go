package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Prethish-Kumar/Data-Governance-Console/internal/model"
)

// UserAPI defines the user endpoints of the directory.
type UserAPI interface {
	FetchUsers(ctx context.Context) ([]model.User, error)
	FetchUserPage(ctx context.Context, page int) (model.Page[model.User], error)
	FetchUser(ctx context.Context, id string) (*model.User, error)
	CreateUser(ctx context.Context, username, email, name string, roles []string) error
	UpdateUserStatus(ctx context.Context, id string, status model.Status) (*model.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// Ensure Client implements UserAPI
var _ UserAPI = (*Client)(nil)

// userPageEnvelope is the backend's page shape. Flags decode through
// pointers so an omitted flag is distinguishable from an explicit false.
type userPageEnvelope struct {
	Content    []model.User `json:"content"`
	TotalPages int          `json:"totalPages"`
	First      *bool        `json:"first"`
	Last       *bool        `json:"last"`
	Number     flexInt      `json:"number"`
}

// normalize fills the gaps the backend may leave: a missing page number
// counts as 0, a missing last flag derives from number+1 >= totalPages,
// and a missing first flag derives from number == 0.
func (e userPageEnvelope) normalize() model.Page[model.User] {
	number := 0
	if e.Number.set {
		number = e.Number.value
	}

	p := model.Page[model.User]{
		Items:      e.Content,
		TotalPages: e.TotalPages,
		Number:     number,
		Size:       model.PageSize,
	}
	if p.Items == nil {
		p.Items = []model.User{}
	}
	for i := range p.Items {
		normalizeUser(&p.Items[i])
	}

	if e.First != nil {
		p.First = *e.First
	} else {
		p.First = number == 0
	}
	if e.Last != nil {
		p.Last = *e.Last
	} else {
		p.Last = number+1 >= e.TotalPages
	}
	return p
}

// normalizeUser keeps the roles-set invariant: decoded users always carry a
// non-nil set.
func normalizeUser(u *model.User) {
	if u.Roles == nil {
		u.Roles = []string{}
	}
}

// FetchUsers returns the unpaged user listing.
func (c *Client) FetchUsers(ctx context.Context) ([]model.User, error) {
	data, err := c.do(ctx, "list_users", http.MethodGet, "/api/v1/users", nil)
	if err != nil {
		return nil, err
	}
	var users []model.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	for i := range users {
		normalizeUser(&users[i])
	}
	return users, nil
}

// FetchUserPage returns one listing page, normalized per the page
// invariants. The page size is fixed.
func (c *Client) FetchUserPage(ctx context.Context, page int) (model.Page[model.User], error) {
	path := fmt.Sprintf("/api/v1/users?page=%d&size=%d", page, model.PageSize)
	data, err := c.do(ctx, "list_users_paged", http.MethodGet, path, nil)
	if err != nil {
		return model.Page[model.User]{}, err
	}
	var envelope userPageEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return model.Page[model.User]{}, fmt.Errorf("decode user page: %w", err)
	}
	return envelope.normalize(), nil
}

// FetchUser returns a single user, including the audit trail when the
// directory ships one.
func (c *Client) FetchUser(ctx context.Context, id string) (*model.User, error) {
	data, err := c.do(ctx, "get_user", http.MethodGet, "/api/v1/users/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	normalizeUser(&user)
	return &user, nil
}

// CreateUser registers a new account. New accounts always start ACTIVE.
func (c *Client) CreateUser(ctx context.Context, username, email, name string, roles []string) error {
	if roles == nil {
		roles = []string{}
	}
	body := struct {
		Username string       `json:"username"`
		Email    string       `json:"email"`
		Name     string       `json:"name"`
		Roles    []string     `json:"roles"`
		Status   model.Status `json:"status"`
	}{username, email, name, roles, model.StatusActive}
	_, err := c.do(ctx, "create_user", http.MethodPost, "/api/v1/users", body)
	return err
}

// UpdateUserStatus patches a user's status and returns the updated payload.
func (c *Client) UpdateUserStatus(ctx context.Context, id string, status model.Status) (*model.User, error) {
	body := struct {
		Status model.Status `json:"status"`
	}{status}
	data, err := c.do(ctx, "update_user_status", http.MethodPatch, "/api/v1/users/"+url.PathEscape(id), body)
	if err != nil {
		return nil, err
	}
	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	normalizeUser(&user)
	return &user, nil
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	_, err := c.do(ctx, "delete_user", http.MethodDelete, "/api/v1/users/"+url.PathEscape(id), nil)
	return err
}
