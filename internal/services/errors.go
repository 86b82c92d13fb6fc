package services

import "errors"

// Sentinel errors for the follow subsystem. Handlers translate these to
// HTTP status codes; anything else is a server error.
var (
	// ErrUserNotFound means a referenced user id does not resolve to a live user
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidOperation covers self-follow and self-unfollow
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrAlreadyFollowing rejects a duplicate follow for the same ordered pair
	ErrAlreadyFollowing = errors.New("you are already following this user")

	// ErrNotFollowing rejects an unfollow when no relation exists
	ErrNotFollowing = errors.New("you are not following this user")
)
