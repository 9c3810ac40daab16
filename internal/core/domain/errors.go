package domain

import "errors"

// Authentication failures. Never reveal which part of a credential was wrong.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("authentication required")
)

// ErrForbidden means the caller is authenticated but does not own the resource.
var ErrForbidden = errors.New("access forbidden")

// Validation failures.
var (
	ErrEmailTaken    = errors.New("email already exists")
	ErrUsernameTaken = errors.New("username already exists")
	ErrSelfFollow    = errors.New("users cannot follow themselves")
	ErrInvalidInput  = errors.New("invalid input")
)

// Lookup and store conflicts.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrPostNotFound     = errors.New("post not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrUserExists       = errors.New("a user with this email or username may already exist")
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrAlreadyLiked     = errors.New("post already liked")
)
