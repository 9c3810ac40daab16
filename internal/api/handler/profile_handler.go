package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pictobox/pictobox-api/internal/core/domain"
	"github.com/pictobox/pictobox-api/internal/core/ports"
)

const dateLayout = "2006-01-02"

// ProfileHandler serves profile pages, profile edits and user search.
type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// --- Request / Response types ---

type updateProfileRequest struct {
	Username    string `json:"username" validate:"required,max=30"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"max=20"`
	Bio         string `json:"bio" validate:"max=150"`
	DateOfBirth string `json:"dob" validate:"omitempty,datetime=2006-01-02"`
}

type profilePictureRequest struct {
	ProfilePic string `json:"profilePic" validate:"required"`
}

// profileResponse is the public profile page. Contact details stay out of it.
type profileResponse struct {
	UserID         string         `json:"userId"`
	Username       string         `json:"username"`
	Email          string         `json:"email"`
	ProfilePic     string         `json:"profilePic,omitempty"`
	Bio            string         `json:"bio,omitempty"`
	FollowersCount int64          `json:"followersCount"`
	FollowingCount int64          `json:"followingCount"`
	PostsCount     int64          `json:"postsCount"`
	Posts          []*domain.Post `json:"posts"`
	IsFollowing    bool           `json:"isFollowing"`
}

// ownProfileResponse adds the fields only the account owner sees.
type ownProfileResponse struct {
	profileResponse
	PhoneNumber string     `json:"phoneNumber,omitempty"`
	DateOfBirth *time.Time `json:"dob,omitempty"`
}

type userSummaryResponse struct {
	UserID      string `json:"userId"`
	Username    string `json:"username"`
	ProfilePic  string `json:"profilePic,omitempty"`
	IsFollowing bool   `json:"isFollowing"`
}

func newProfileResponse(v *ports.ProfileView) profileResponse {
	posts := v.Posts
	if posts == nil {
		posts = []*domain.Post{}
	}
	return profileResponse{
		UserID:         v.User.ID,
		Username:       v.User.Username,
		Email:          v.User.Email,
		ProfilePic:     v.User.ProfilePic,
		Bio:            v.User.Bio,
		FollowersCount: v.FollowersCount,
		FollowingCount: v.FollowingCount,
		PostsCount:     v.PostsCount,
		Posts:          posts,
		IsFollowing:    v.IsFollowing,
	}
}

func newOwnProfileResponse(v *ports.ProfileView) ownProfileResponse {
	return ownProfileResponse{
		profileResponse: newProfileResponse(v),
		PhoneNumber:     v.User.PhoneNumber,
		DateOfBirth:     v.User.DateOfBirth,
	}
}

// GetOwnProfile returns the authenticated user's profile page.
//
// @Summary      Own profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ownProfileResponse
// @Failure      401  {object}  map[string]string
// @Router       /profile [get]
func (h *ProfileHandler) GetOwnProfile(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	view, err := h.service.GetOwnProfile(c.Request().Context(), claims.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newOwnProfileResponse(view))
}

// GetProfile returns a user's public profile page.
//
// @Summary      Public profile
// @Tags         profile
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  profileResponse
// @Failure      404       {object}  map[string]string
// @Router       /profile/{username} [get]
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	view, err := h.service.GetPublicProfile(c.Request().Context(), c.Param("username"), viewerID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newProfileResponse(view))
}

// UpdateProfileData edits the caller's profile and returns a refreshed token.
//
// @Summary      Update profile data
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string                true  "Own username"
// @Param        body      body      updateProfileRequest  true  "Profile fields"
// @Success      200       {object}  authResponse
// @Failure      400       {object}  map[string]string
// @Failure      401       {object}  map[string]string
// @Failure      403       {object}  map[string]string
// @Router       /profile/{username}/profile-data [put]
func (h *ProfileHandler) UpdateProfileData(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	upd := ports.ProfileUpdate{
		Username:    req.Username,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Bio:         req.Bio,
	}
	if req.DateOfBirth != "" {
		// Format already checked by the datetime tag.
		dob, _ := time.Parse(dateLayout, req.DateOfBirth)
		upd.DateOfBirth = &dob
	}

	res, err := h.service.UpdateProfileData(c.Request().Context(), claims, upd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newAuthResponse(res))
}

// SetProfilePicture stores a reference to the caller's profile picture.
//
// @Summary      Set profile picture
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      profilePictureRequest  true  "Picture reference"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /profile/profile-picture [put]
func (h *ProfileHandler) SetProfilePicture(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req profilePictureRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.service.SetProfilePicture(c.Request().Context(), claims.UserID, req.ProfilePic); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "profile picture updated"})
}

// ClearProfilePicture removes the caller's profile picture.
//
// @Summary      Remove profile picture
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  map[string]string
// @Router       /profile/profile-picture [delete]
func (h *ProfileHandler) ClearProfilePicture(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.ClearProfilePicture(c.Request().Context(), claims.UserID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "profile picture removed"})
}

// SearchUsers finds users by username fragment.
//
// @Summary      Search users
// @Tags         users
// @Produce      json
// @Param        q    query     string  true  "Username fragment"
// @Success      200  {array}   userSummaryResponse
// @Failure      400  {object}  map[string]string
// @Router       /users/search [get]
func (h *ProfileHandler) SearchUsers(c echo.Context) error {
	hits, err := h.service.SearchUsers(c.Request().Context(), c.QueryParam("q"), viewerID(c))
	if err != nil {
		return err
	}

	out := make([]userSummaryResponse, 0, len(hits))
	for _, u := range hits {
		out = append(out, userSummaryResponse{
			UserID:      u.UserID,
			Username:    u.Username,
			ProfilePic:  u.ProfilePic,
			IsFollowing: u.IsFollowing,
		})
	}
	return c.JSON(http.StatusOK, out)
}
