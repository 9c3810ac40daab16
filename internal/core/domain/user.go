package domain

import "time"

// User models a registered account.
type User struct {
	ID           string     `json:"userId"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	PhoneNumber  string     `json:"phoneNumber,omitempty"`
	ProfilePic   string     `json:"profilePic,omitempty"`
	Bio          string     `json:"bio,omitempty"`
	DateOfBirth  *time.Time `json:"dob,omitempty"`
	CreatedAt    time.Time  `json:"creationDate"`
}

// Claims is the identity asserted by a verified token.
type Claims struct {
	UserID    string
	Username  string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
