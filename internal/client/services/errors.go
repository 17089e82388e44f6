// Package services contains the application services behind the CLI views:
// the user directory with the session lifecycle, and swap request handling.
package services

import "errors"

var (
	// ErrUserNotFound means no directory entry matched the login email. It is
	// an ordinary outcome, distinct from transport failures.
	ErrUserNotFound = errors.New("user not found")
	ErrNotLoggedIn  = errors.New("not logged in")
	ErrNotImage     = errors.New("file is not an image")
	// ErrUnknownRequest means the request is not on the current dashboard.
	ErrUnknownRequest = errors.New("unknown swap request")
	// ErrRefresh wraps a failed dashboard reload after a successful mutation.
	ErrRefresh = errors.New("dashboard refresh failed")
)
