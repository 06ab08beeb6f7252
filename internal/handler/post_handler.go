package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Prethish-Kumar/Data-Governance-Console/internal/errors"
	"github.com/Prethish-Kumar/Data-Governance-Console/internal/service"
)

// PostHandler serves the console's post actions.
type PostHandler struct {
	posts service.PostService
}

// NewPostHandler creates a post handler.
func NewPostHandler(posts service.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// CreatePostRequest carries the new-post fields.
type CreatePostRequest struct {
	Title   string `json:"title" form:"title" validate:"required"`
	Content string `json:"content" form:"content" validate:"required"`
}

// CreatePost godoc
// @Summary Publish a post under a user
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body CreatePostRequest true "Post fields"
// @Success 201 {object} map[string]bool
// @Failure 400 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /users/{id}/posts [post]
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req CreatePostRequest
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

	if err := h.posts.CreatePost(c.Request().Context(), c.Param("id"), req.Title, req.Content); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, map[string]bool{"created": true})
}

// DeletePost godoc
// @Summary Delete a user's post
// @Tags posts
// @Param id path string true "User ID"
// @Param postId path string true "Post ID"
// @Success 204
// @Failure 502 {object} errors.ErrorResponse
// @Router /users/{id}/posts/{postId} [delete]
func (h *PostHandler) DeletePost(c echo.Context) error {
	if err := h.posts.DeletePost(c.Request().Context(), c.Param("postId"), c.Param("id")); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.NoContent(http.StatusNoContent)
}
