package user

import "errors"

// User records are provisioned by the external auth service; this side
// only ever reads them (organizer lookup, attendee projection).
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

var ErrNotFound = errors.New("user not found")
