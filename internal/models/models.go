package models

import "errors"

// UserRequest is the payload of POST /api/users and PUT /api/users/{id}.
// Active is a pointer so an omitted value can be distinguished from an
// explicit false: an omitted value defaults to true.
type UserRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"fullName"`
	Active   *bool  `json:"active"`
}

// IsActive resolves the Active field with its default.
func (r *UserRequest) IsActive() bool {
	if r.Active == nil {
		return true
	}
	return *r.Active
}

const (
	StorageTypeUnknown = iota
	StorageTypePostgresql
	StorageTypeFile
	StorageTypeMemory
)

// ErrUsernameExists is returned by create/update when the requested username
// already belongs to another user.
var ErrUsernameExists = errors.New("username already exists")

// ErrEmailExists is returned by create/update when the requested email
// already belongs to another user.
var ErrEmailExists = errors.New("email already exists")

// ErrUserNotFound is returned by update/delete when no user with the
// requested id exists.
var ErrUserNotFound = errors.New("user not found")
