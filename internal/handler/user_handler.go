package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/Prethish-Kumar/Data-Governance-Console/internal/errors"
	"github.com/Prethish-Kumar/Data-Governance-Console/internal/model"
	"github.com/Prethish-Kumar/Data-Governance-Console/internal/service"
)

// UserHandler serves the console's user views and actions.
type UserHandler struct {
	users       service.UserService
	preferences service.PreferenceService
	posts       service.PostService
}

// NewUserHandler creates a user handler over the proxy services.
func NewUserHandler(users service.UserService, preferences service.PreferenceService, posts service.PostService) *UserHandler {
	return &UserHandler{users: users, preferences: preferences, posts: posts}
}

// UserListPage is the paged listing view-model.
type UserListPage struct {
	Users      []model.User `json:"users"`
	TotalPages int          `json:"totalPages"`
	IsFirst    bool         `json:"isFirst"`
	IsLast     bool         `json:"isLast"`
	PageNumber int          `json:"pageNumber"`
	Size       int          `json:"size"`
}

// UserDetailPage is the detail view-model. Preferences stay null for users
// who have none; posts are always an array.
type UserDetailPage struct {
	User        *model.User        `json:"user"`
	Preferences *model.Preferences `json:"preferences"`
	Posts       []model.Post       `json:"posts"`
}

// CreateUserRequest carries the new-user fields from JSON or form posts.
type CreateUserRequest struct {
	Username string   `json:"username" form:"username" validate:"required"`
	Email    string   `json:"email" form:"email" validate:"required,email"`
	Name     string   `json:"name" form:"name" validate:"required"`
	Roles    []string `json:"roles" form:"roles"`
}

// ToggleStatusRequest carries the target status for a status change.
type ToggleStatusRequest struct {
	Status model.Status `json:"status" form:"status" validate:"required,oneof=ACTIVE INACTIVE"`
}

// pageParam reads the page query parameter. Absent, non-numeric, or
// negative values all mean the first page.
func pageParam(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 0 {
		return 0
	}
	return page
}

// ListUsers godoc
// @Summary List users, one page at a time
// @Description Returns the requested page of directory users together with paging controls.
// @Tags users
// @Produce json
// @Param page query int false "Page index, defaults to 0"
// @Success 200 {object} UserListPage
// @Failure 502 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	page, err := h.users.GetUsers(c.Request().Context(), pageParam(c))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, UserListPage{
		Users:      page.Items,
		TotalPages: page.TotalPages,
		IsFirst:    page.First,
		IsLast:     page.Last,
		PageNumber: page.Number,
		Size:       page.Size,
	})
}

// ExportUsers godoc
// @Summary List every user without paging
// @Tags users
// @Produce json
// @Success 200 {array} model.User
// @Failure 502 {object} errors.ErrorResponse
// @Router /users/export [get]
func (h *UserHandler) ExportUsers(c echo.Context) error {
	users, err := h.users.ListUsers(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser godoc
// @Summary User detail view
// @Description Fetches the user, their preferences, and their posts concurrently and combines them into one page.
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} UserDetailPage
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	var (
		wg    sync.WaitGroup
		user  *model.User
		prefs *model.Preferences
		posts []model.Post
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		user = h.users.GetUser(ctx, id)
	}()
	go func() {
		defer wg.Done()
		prefs = h.preferences.GetUserPreferences(ctx, id)
	}()
	go func() {
		defer wg.Done()
		posts = h.posts.GetUserPosts(ctx, id)
	}()
	wg.Wait()

	if user == nil {
		return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
			Error: "user not found",
			Code:  "USER_NOT_FOUND",
		})
	}
	return c.JSON(http.StatusOK, UserDetailPage{User: user, Preferences: prefs, Posts: posts})
}

// CreateUser godoc
// @Summary Create a user in the directory
// @Description The outcome is captured rather than raised: the body always reports success or the failure message.
// @Tags users
// @Accept json
// @Produce json
// @Param request body CreateUserRequest true "New user fields"
// @Success 201 {object} service.AddUserResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 502 {object} service.AddUserResult
// @Router /users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	result := h.users.AddUser(c.Request().Context(), req.Username, req.Email, req.Name, req.Roles)
	if !result.Success {
		return c.JSON(http.StatusBadGateway, result)
	}
	return c.JSON(http.StatusCreated, result)
}

// CreateUserForm is the form-post variant of CreateUser. It never raises:
// the outcome is encoded in the redirect target instead.
func (h *UserHandler) CreateUserForm(c echo.Context) error {
	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.Redirect(http.StatusSeeOther, "/users/new?error="+url.QueryEscape("invalid form"))
	}
	if err := c.Validate(&req); err != nil {
		return c.Redirect(http.StatusSeeOther, "/users/new?error="+url.QueryEscape(err.Error()))
	}

	result := h.users.AddUser(c.Request().Context(), req.Username, req.Email, req.Name, req.Roles)
	if !result.Success {
		return c.Redirect(http.StatusSeeOther, "/users/new?error="+url.QueryEscape(result.Error))
	}
	return c.Redirect(http.StatusSeeOther, "/users?created="+url.QueryEscape(req.Username))
}

// ToggleUserStatus godoc
// @Summary Activate or deactivate a user
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body ToggleStatusRequest true "Target status"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /users/{id}/status [patch]
func (h *UserHandler) ToggleUserStatus(c echo.Context) error {
	var req ToggleStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	user, err := h.users.ToggleUserStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser godoc
// @Summary Delete a user from the directory
// @Tags users
// @Param id path string true "User ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	if err := h.users.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteUserForm is the form-post variant of DeleteUser. On success it
// navigates back to the first page of the listing.
func (h *UserHandler) DeleteUserForm(c echo.Context) error {
	if err := h.users.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.Redirect(http.StatusSeeOther, "/users?page=0")
}
