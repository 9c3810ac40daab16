package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pictobox/pictobox-api/internal/core/ports"
)

type CommentHandler struct {
	service ports.CommentService
}

func NewCommentHandler(service ports.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

// postRef reads the post address from /profile/:username/posts/:postId.
func postRef(c echo.Context) ports.PostRef {
	return ports.PostRef{Username: c.Param("username"), PostID: c.Param("postId")}
}

type commentRequest struct {
	Content string `json:"content" validate:"required,max=150"`
}

// AddComment comments on a post. The post must be published under the
// username in the path.
//
// @Summary      Add comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string          true  "Post author"
// @Param        postId    path      string          true  "Post id"
// @Param        body      body      commentRequest  true  "Comment"
// @Success      201       {object}  domain.Comment
// @Failure      400       {object}  map[string]string
// @Failure      401       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /profile/{username}/posts/{postId}/comments [post]
func (h *CommentHandler) AddComment(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req commentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.service.AddComment(c.Request().Context(), claims, postRef(c), req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, comment)
}

// UpdateComment edits one of the caller's comments.
//
// @Summary      Edit comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        username   path      string          true  "Post author"
// @Param        postId     path      string          true  "Post id"
// @Param        commentId  path      string          true  "Comment id"
// @Param        body       body      commentRequest  true  "New content"
// @Success      200        {object}  messageResponse
// @Failure      400        {object}  map[string]string
// @Failure      401        {object}  map[string]string
// @Failure      403        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /profile/{username}/posts/{postId}/comments/{commentId} [put]
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req commentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	err = h.service.UpdateComment(c.Request().Context(), claims, postRef(c), c.Param("commentId"), req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "comment updated"})
}

// DeleteComment removes one of the caller's comments.
//
// @Summary      Delete comment
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        username   path      string  true  "Post author"
// @Param        postId     path      string  true  "Post id"
// @Param        commentId  path      string  true  "Comment id"
// @Success      200        {object}  messageResponse
// @Failure      401        {object}  map[string]string
// @Failure      403        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /profile/{username}/posts/{postId}/comments/{commentId} [delete]
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteComment(c.Request().Context(), claims, postRef(c), c.Param("commentId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "comment deleted"})
}
