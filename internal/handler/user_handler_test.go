package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Prethish-Kumar/Data-Governance-Console/internal/errors"
	"github.com/Prethish-Kumar/Data-Governance-Console/internal/model"
	"github.com/Prethish-Kumar/Data-Governance-Console/internal/service"
)

// MockUserService is a mock implementation of service.UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) ListUsers(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserService) GetUsers(ctx context.Context, page int) (model.Page[model.User], error) {
	args := m.Called(ctx, page)
	return args.Get(0).(model.Page[model.User]), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, id string) *model.User {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*model.User)
}

func (m *MockUserService) AddUser(ctx context.Context, username, email, name string, roles []string) service.AddUserResult {
	args := m.Called(ctx, username, email, name, roles)
	return args.Get(0).(service.AddUserResult)
}

func (m *MockUserService) ToggleUserStatus(ctx context.Context, id string, status model.Status) (*model.User, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPreferenceService is a mock implementation of service.PreferenceService.
type MockPreferenceService struct {
	mock.Mock
}

func (m *MockPreferenceService) GetUserPreferences(ctx context.Context, userID string) *model.Preferences {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*model.Preferences)
}

func (m *MockPreferenceService) CreateDefaultPreferences(ctx context.Context, userID string) (*model.Preferences, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Preferences), args.Error(1)
}

// MockPostService is a mock implementation of service.PostService.
type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) GetUserPosts(ctx context.Context, userID string) []model.Post {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]model.Post)
}

func (m *MockPostService) CreatePost(ctx context.Context, userID, title, content string) error {
	args := m.Called(ctx, userID, title, content)
	return args.Error(0)
}

func (m *MockPostService) DeletePost(ctx context.Context, postID, userID string) error {
	args := m.Called(ctx, postID, userID)
	return args.Error(0)
}

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	return e
}

func newHandler(users *MockUserService, prefs *MockPreferenceService, posts *MockPostService) *UserHandler {
	return NewUserHandler(users, prefs, posts)
}

func TestUserHandler_ListUsers(t *testing.T) {
	sevenOfTen := model.Page[model.User]{
		Items: []model.User{
			{ID: "u-1"}, {ID: "u-2"}, {ID: "u-3"}, {ID: "u-4"}, {ID: "u-5"},
		},
		TotalPages: 2,
		First:      true,
		Last:       false,
		Number:     0,
		Size:       model.PageSize,
	}

	tests := []struct {
		name         string
		query        string
		expectedPage int
	}{
		{name: "absent page means the first page", query: "", expectedPage: 0},
		{name: "explicit page is passed through", query: "?page=1", expectedPage: 1},
		{name: "non-numeric page means the first page", query: "?page=abc", expectedPage: 0},
		{name: "negative page means the first page", query: "?page=-2", expectedPage: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUsers := new(MockUserService)
			mockUsers.On("GetUsers", mock.Anything, tt.expectedPage).Return(sevenOfTen, nil)

			e := newTestEcho()
			req := httptest.NewRequest(http.MethodGet, "/api/users"+tt.query, nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			h := newHandler(mockUsers, new(MockPreferenceService), new(MockPostService))
			err := h.ListUsers(c)

			assert.NoError(t, err)
			assert.Equal(t, http.StatusOK, rec.Code)

			var got UserListPage
			assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Len(t, got.Users, 5)
			assert.Equal(t, 2, got.TotalPages)
			assert.True(t, got.IsFirst)
			assert.False(t, got.IsLast)
			assert.Equal(t, 0, got.PageNumber)
			assert.Equal(t, model.PageSize, got.Size)

			// view-model key spelling is part of the page contract
			body := rec.Body.String()
			assert.Contains(t, body, `"isFirst"`)
			assert.Contains(t, body, `"isLast"`)
			assert.Contains(t, body, `"pageNumber"`)
			assert.Contains(t, body, `"totalPages"`)

			mockUsers.AssertExpectations(t)
		})
	}
}

func TestUserHandler_ListUsers_UpstreamFailure(t *testing.T) {
	mockUsers := new(MockUserService)
	mockUsers.On("GetUsers", mock.Anything, 0).
		Return(model.Page[model.User]{}, errors.NewUpstreamError(500, "boom"))

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := newHandler(mockUsers, new(MockPreferenceService), new(MockPostService))
	err := h.ListUsers(c)

	var httpErr *echo.HTTPError
	assert.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadGateway, httpErr.Code)
	mockUsers.AssertExpectations(t)
}

func TestUserHandler_ExportUsers(t *testing.T) {
	mockUsers := new(MockUserService)
	mockUsers.On("ListUsers", mock.Anything).Return([]model.User{{ID: "u-1"}, {ID: "u-2"}, {ID: "u-3"}}, nil)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/api/users/export", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := newHandler(mockUsers, new(MockPreferenceService), new(MockPostService))
	err := h.ExportUsers(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var got []model.User
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 3)
	mockUsers.AssertExpectations(t)
}

func TestUserHandler_GetUser(t *testing.T) {
	tests := []struct {
		name       string
		setupMock  func(*MockUserService, *MockPreferenceService, *MockPostService)
		expectCode int
	}{
		{
			name: "detail view combines all three fetches",
			setupMock: func(users *MockUserService, prefs *MockPreferenceService, posts *MockPostService) {
				users.On("GetUser", mock.Anything, "u-1").Return(&model.User{ID: "u-1", Username: "ada"})
				prefs.On("GetUserPreferences", mock.Anything, "u-1").Return(&model.Preferences{Theme: "dark"})
				posts.On("GetUserPosts", mock.Anything, "u-1").Return([]model.Post{{ID: "p-1"}})
			},
			expectCode: http.StatusOK,
		},
		{
			name: "missing preferences leave the section null",
			setupMock: func(users *MockUserService, prefs *MockPreferenceService, posts *MockPostService) {
				users.On("GetUser", mock.Anything, "u-1").Return(&model.User{ID: "u-1", Username: "ada"})
				prefs.On("GetUserPreferences", mock.Anything, "u-1").Return(nil)
				posts.On("GetUserPosts", mock.Anything, "u-1").Return([]model.Post{})
			},
			expectCode: http.StatusOK,
		},
		{
			name: "missing user is a 404 even when the other sections load",
			setupMock: func(users *MockUserService, prefs *MockPreferenceService, posts *MockPostService) {
				users.On("GetUser", mock.Anything, "u-1").Return(nil)
				prefs.On("GetUserPreferences", mock.Anything, "u-1").Return(nil)
				posts.On("GetUserPosts", mock.Anything, "u-1").Return([]model.Post{})
			},
			expectCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUsers := new(MockUserService)
			mockPrefs := new(MockPreferenceService)
			mockPosts := new(MockPostService)
			tt.setupMock(mockUsers, mockPrefs, mockPosts)

			e := newTestEcho()
			req := httptest.NewRequest(http.MethodGet, "/api/users/u-1", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.SetPath("/api/users/:id")
			c.SetParamNames("id")
			c.SetParamValues("u-1")

			h := newHandler(mockUsers, mockPrefs, mockPosts)
			err := h.GetUser(c)

			if tt.expectCode == http.StatusNotFound {
				var httpErr *echo.HTTPError
				assert.ErrorAs(t, err, &httpErr)
				assert.Equal(t, http.StatusNotFound, httpErr.Code)
				assert.Equal(t, errors.ErrorResponse{Error: "user not found", Code: "USER_NOT_FOUND"}, httpErr.Message)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, http.StatusOK, rec.Code)

				var got map[string]json.RawMessage
				assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
				assert.NotEqual(t, "null", string(got["user"]))
				// posts are always an array, never null
				assert.True(t, strings.HasPrefix(string(got["posts"]), "["))
			}

			mockUsers.AssertExpectations(t)
			mockPrefs.AssertExpectations(t)
			mockPosts.AssertExpectations(t)
		})
	}
}

func TestUserHandler_CreateUser(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMock  func(*MockUserService)
		expectCode int
		expectJSON string
	}{
		{
			name: "successful create reports success",
			body: `{"username":"ada","email":"ada@example.com","name":"Ada Lovelace","roles":["ADMIN"]}`,
			setupMock: func(users *MockUserService) {
				users.On("AddUser", mock.Anything, "ada", "ada@example.com", "Ada Lovelace", []string{"ADMIN"}).
					Return(service.AddUserResult{Success: true})
			},
			expectCode: http.StatusCreated,
			expectJSON: `{"success":true}`,
		},
		{
			name: "captured failure still answers with the outcome",
			body: `{"username":"ada","email":"ada@example.com","name":"Ada Lovelace"}`,
			setupMock: func(users *MockUserService) {
				users.On("AddUser", mock.Anything, "ada", "ada@example.com", "Ada Lovelace", mock.Anything).
					Return(service.AddUserResult{Success: false, Error: "Failed to add user"})
			},
			expectCode: http.StatusBadGateway,
			expectJSON: `{"success":false,"error":"Failed to add user"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUsers := new(MockUserService)
			tt.setupMock(mockUsers)

			e := newTestEcho()
			req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			h := newHandler(mockUsers, new(MockPreferenceService), new(MockPostService))
			err := h.CreateUser(c)

			assert.NoError(t, err)
			assert.Equal(t, tt.expectCode, rec.Code)
			assert.JSONEq(t, tt.expectJSON, rec.Body.String())
			mockUsers.AssertExpectations(t)
		})
	}
}

func TestUserHandler_CreateUser_Validation(t *testing.T) {
	mockUsers := new(MockUserService)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(`{"username":"ada"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := newHandler(mockUsers, new(MockPreferenceService), new(MockPostService))
	err := h.CreateUser(c)

	var httpErr *echo.HTTPError
	assert.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	mockUsers.AssertNotCalled(t, "AddUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUserHandler_CreateUserForm(t *testing.T) {
	tests := []struct {
		name           string
		form           string
		setupMock      func(*MockUserService)
		expectLocation string
	}{
		{
			name: "success navigates to the listing",
			form: "username=ada&email=ada%40example.com&name=Ada+Lovelace",
			setupMock: func(users *MockUserService) {
				users.On("AddUser", mock.Anything, "ada", "ada@example.com", "Ada Lovelace", mock.Anything).
					Return(service.AddUserResult{Success: true})
			},
			expectLocation: "/users?created=ada",
		},
		{
			name: "captured failure navigates back to the form",
			form: "username=ada&email=ada%40example.com&name=Ada+Lovelace",
			setupMock: func(users *MockUserService) {
				users.On("AddUser", mock.Anything, "ada", "ada@example.com", "Ada Lovelace", mock.Anything).
					Return(service.AddUserResult{Success: false, Error: "Failed to add user"})
			},
			expectLocation: "/users/new?error=Failed+to+add+user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUsers := new(MockUserService)
			tt.setupMock(mockUsers)

			e := newTestEcho()
			req := httptest.NewRequest(http.MethodPost, "/users/new", strings.NewReader(tt.form))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			h := newHandler(mockUsers, new(MockPreferenceService), new(MockPostService))
			err := h.CreateUserForm(c)

			assert.NoError(t, err)
			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, tt.expectLocation, rec.Header().Get(echo.HeaderLocation))
			mockUsers.AssertExpectations(t)
		})
	}
}

func TestUserHandler_ToggleUserStatus(t *testing.T) {
	t.Run("valid status comes back applied", func(t *testing.T) {
		mockUsers := new(MockUserService)
		mockUsers.On("ToggleUserStatus", mock.Anything, "u-1", model.StatusInactive).
			Return(&model.User{ID: "u-1", Status: model.StatusInactive}, nil)

		e := newTestEcho()
		req := httptest.NewRequest(http.MethodPatch, "/api/users/u-1/status", strings.NewReader(`{"status":"INACTIVE"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/api/users/:id/status")
		c.SetParamNames("id")
		c.SetParamValues("u-1")

		h := newHandler(mockUsers, new(MockPreferenceService), new(MockPostService))
		err := h.ToggleUserStatus(c)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var got model.User
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, model.StatusInactive, got.Status)
		mockUsers.AssertExpectations(t)
	})

	t.Run("unknown status is rejected before the directory", func(t *testing.T) {
		mockUsers := new(MockUserService)

		e := newTestEcho()
		req := httptest.NewRequest(http.MethodPatch, "/api/users/u-1/status", strings.NewReader(`{"status":"PAUSED"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/api/users/:id/status")
		c.SetParamNames("id")
		c.SetParamValues("u-1")

		h := newHandler(mockUsers, new(MockPreferenceService), new(MockPostService))
		err := h.ToggleUserStatus(c)

		var httpErr *echo.HTTPError
		assert.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
		mockUsers.AssertNotCalled(t, "ToggleUserStatus", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUserHandler_DeleteUser(t *testing.T) {
	t.Run("delete answers no content", func(t *testing.T) {
		mockUsers := new(MockUserService)
		mockUsers.On("DeleteUser", mock.Anything, "u-1").Return(nil)

		e := newTestEcho()
		req := httptest.NewRequest(http.MethodDelete, "/api/users/u-1", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/api/users/:id")
		c.SetParamNames("id")
		c.SetParamValues("u-1")

		h := newHandler(mockUsers, new(MockPreferenceService), new(MockPostService))
		err := h.DeleteUser(c)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		mockUsers.AssertExpectations(t)
	})

	t.Run("upstream not-found maps through", func(t *testing.T) {
		mockUsers := new(MockUserService)
		mockUsers.On("DeleteUser", mock.Anything, "u-1").
			Return(errors.NewUpstreamError(http.StatusNotFound, "user not found"))

		e := newTestEcho()
		req := httptest.NewRequest(http.MethodDelete, "/api/users/u-1", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/api/users/:id")
		c.SetParamNames("id")
		c.SetParamValues("u-1")

		h := newHandler(mockUsers, new(MockPreferenceService), new(MockPostService))
		err := h.DeleteUser(c)

		var httpErr *echo.HTTPError
		assert.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusNotFound, httpErr.Code)
		mockUsers.AssertExpectations(t)
	})
}

func TestUserHandler_DeleteUserForm(t *testing.T) {
	mockUsers := new(MockUserService)
	mockUsers.On("DeleteUser", mock.Anything, "u-1").Return(nil)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/users/u-1/delete", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/users/:id/delete")
	c.SetParamNames("id")
	c.SetParamValues("u-1")

	h := newHandler(mockUsers, new(MockPreferenceService), new(MockPostService))
	err := h.DeleteUserForm(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/users?page=0", rec.Header().Get(echo.HeaderLocation))
	mockUsers.AssertExpectations(t)
}
