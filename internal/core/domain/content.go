package domain

import "time"

// MaxTextLength caps captions, comments and bios, in characters.
const MaxTextLength = 150

// Post is an image post. UserID is set at creation and never changes.
type Post struct {
	ID        string    `json:"postId"`
	UserID    string    `json:"userId"`
	ImagePath string    `json:"imagePath"`
	Caption   string    `json:"caption"`
	CreatedAt time.Time `json:"postDate"`
}

// Comment belongs to a post and to the user who wrote it.
type Comment struct {
	ID        string    `json:"commentId"`
	PostID    string    `json:"postId"`
	UserID    string    `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"commentDate"`
}

// Follow records that FollowerID follows FolloweeID.
type Follow struct {
	FollowerID string    `json:"followerId"`
	FolloweeID string    `json:"followeeId"`
	CreatedAt  time.Time `json:"followDate"`
}

// Like records a user liking a post. The (PostID, UserID) pair is unique.
type Like struct {
	PostID    string    `json:"postId"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"likeDate"`
}
