package domain

import "time"

// User represents an account in the system. PasswordHash is the bcrypt
// digest of the signup password; the plaintext is never persisted.
type User struct {
	ID           int64
	Name         string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserSummary is the public slice of a user embedded in posts and feeds.
type UserSummary struct {
	ID       int64
	Name     string
	Username string
}

// Summary strips a user down to its public fields.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Username: u.Username}
}

// FollowEdge is a directed follow relationship: FollowerID follows
// FolloweeID. The pair is unique; an edge has no state beyond existing.
type FollowEdge struct {
	FollowerID int64
	FolloweeID int64
}
