// Package user defines the user record stored and served by the application.
package user

// User is the single entity managed by the service.
// ID is assigned by the storage backend on first save and never changes
// afterwards; a zero ID means the record has not been persisted yet.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Active   bool   `json:"active"`
}
