package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pictobox/pictobox-api/internal/core/domain"
	"github.com/pictobox/pictobox-api/internal/core/ports"
)

type PostHandler struct {
	service ports.PostService
}

func NewPostHandler(service ports.PostService) *PostHandler {
	return &PostHandler{service: service}
}

// --- Request / Response types ---

type createPostRequest struct {
	ImagePath string `json:"imagePath" validate:"required,max=512"`
	Caption   string `json:"caption" validate:"max=150"`
}

type commentResponse struct {
	*domain.Comment
	Username string `json:"username"`
}

type postResponse struct {
	*domain.Post
	Username   string            `json:"username"`
	ProfilePic string            `json:"profilePic,omitempty"`
	Likes      int64             `json:"likes"`
	IsLiked    bool              `json:"isLiked"`
	Comments   []commentResponse `json:"comments"`
}

func newPostResponse(d *ports.PostDetail) postResponse {
	comments := make([]commentResponse, 0, len(d.Comments))
	for _, cv := range d.Comments {
		comments = append(comments, commentResponse{Comment: cv.Comment, Username: cv.Username})
	}
	return postResponse{
		Post:       d.Post,
		Username:   d.Username,
		ProfilePic: d.ProfilePic,
		Likes:      d.Likes,
		IsLiked:    d.IsLiked,
		Comments:   comments,
	}
}

// CreatePost publishes a post on the caller's profile.
//
// @Summary      Create post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string             true  "Own username"
// @Param        body      body      createPostRequest  true  "Image reference and caption"
// @Success      201       {object}  domain.Post
// @Failure      400       {object}  map[string]string
// @Failure      401       {object}  map[string]string
// @Failure      403       {object}  map[string]string
// @Router       /profile/{username}/posts [post]
func (h *PostHandler) CreatePost(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createPostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.service.CreatePost(c.Request().Context(), claims, ports.CreatePostInput{
		ImagePath: req.ImagePath,
		Caption:   req.Caption,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, post)
}

// GetPost returns a post with its comments and likes.
//
// @Summary      Get post
// @Tags         posts
// @Produce      json
// @Param        postId  path      string  true  "Post id"
// @Success      200     {object}  postResponse
// @Failure      404     {object}  map[string]string
// @Router       /posts/{postId} [get]
func (h *PostHandler) GetPost(c echo.Context) error {
	detail, err := h.service.GetPost(c.Request().Context(), c.Param("postId"), viewerID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newPostResponse(detail))
}

// GetProfilePost is GetPost addressed through the author's profile.
//
// @Summary      Get post on a profile
// @Tags         posts
// @Produce      json
// @Param        username  path      string  true  "Author username"
// @Param        postId    path      string  true  "Post id"
// @Success      200       {object}  postResponse
// @Failure      404       {object}  map[string]string
// @Router       /profile/{username}/posts/{postId} [get]
func (h *PostHandler) GetProfilePost(c echo.Context) error {
	detail, err := h.service.GetPost(c.Request().Context(), c.Param("postId"), viewerID(c))
	if err != nil {
		return err
	}
	if detail.Username != c.Param("username") {
		return domain.ErrPostNotFound
	}
	return c.JSON(http.StatusOK, newPostResponse(detail))
}

// DeletePost removes one of the caller's posts.
//
// @Summary      Delete post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Own username"
// @Param        postId    path      string  true  "Post id"
// @Success      200       {object}  messageResponse
// @Failure      401       {object}  map[string]string
// @Failure      403       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /profile/{username}/posts/{postId} [delete]
func (h *PostHandler) DeletePost(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.DeletePost(c.Request().Context(), claims, c.Param("postId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "post deleted"})
}
