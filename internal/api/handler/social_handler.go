package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pictobox/pictobox-api/internal/core/ports"
)

// SocialHandler serves follow and like toggles.
type SocialHandler struct {
	service ports.SocialService
}

func NewSocialHandler(service ports.SocialService) *SocialHandler {
	return &SocialHandler{service: service}
}

// Follow makes the caller follow the user with id followeeId.
//
// @Summary      Follow user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        followeeId  path      string  true  "User id to follow"
// @Success      200         {object}  messageResponse
// @Failure      400         {object}  map[string]string
// @Failure      401         {object}  map[string]string
// @Failure      404         {object}  map[string]string
// @Failure      409         {object}  map[string]string
// @Router       /users/{followeeId}/follow [post]
func (h *SocialHandler) Follow(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	if err := h.service.Follow(c.Request().Context(), claims, c.Param("followeeId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "user followed"})
}

// Unfollow stops the caller following followeeId. Not following is not an error.
//
// @Summary      Unfollow user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        followeeId  path      string  true  "User id to unfollow"
// @Success      200         {object}  messageResponse
// @Failure      401         {object}  map[string]string
// @Router       /users/{followeeId}/unfollow [delete]
func (h *SocialHandler) Unfollow(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	if err := h.service.Unfollow(c.Request().Context(), claims, c.Param("followeeId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "user unfollowed"})
}

// Like records the caller liking a post.
//
// @Summary      Like post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        postId  path      string  true  "Post id"
// @Success      200     {object}  messageResponse
// @Failure      401     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Failure      409     {object}  map[string]string
// @Router       /posts/{postId}/like [post]
func (h *SocialHandler) Like(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	if err := h.service.Like(c.Request().Context(), claims, c.Param("postId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "post liked"})
}

// Unlike removes the caller's like, if any.
//
// @Summary      Unlike post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        postId  path      string  true  "Post id"
// @Success      200     {object}  messageResponse
// @Failure      401     {object}  map[string]string
// @Router       /posts/{postId}/like [delete]
func (h *SocialHandler) Unlike(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	if err := h.service.Unlike(c.Request().Context(), claims, c.Param("postId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "post unliked"})
}
