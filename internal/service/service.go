// Package service contains the business rules of user management: the
// username and email uniqueness invariants, the whole-record update
// semantics, and the existence checks guarding update and delete.
package service

import (
	"context"

	"github.com/patric-chuzhbe/usersvc/internal/models"
	"github.com/patric-chuzhbe/usersvc/internal/user"
)

type usersFinder interface {
	FindAll(ctx context.Context) ([]user.User, error)

	FindByActive(ctx context.Context, active bool) ([]user.User, error)

	FindByID(ctx context.Context, id int64) (*user.User, bool, error)

	FindByUsername(ctx context.Context, username string) (*user.User, bool, error)
}

type existenceChecker interface {
	IsUsernameExists(ctx context.Context, username string) (bool, error)

	IsEmailExists(ctx context.Context, email string) (bool, error)

	IsUserExists(ctx context.Context, id int64) (bool, error)
}

type usersKeeper interface {
	SaveUser(ctx context.Context, usr *user.User) (*user.User, error)

	DeleteUser(ctx context.Context, id int64) error
}

type pinger interface {
	Ping(ctx context.Context) error
}

type storage interface {
	usersFinder
	existenceChecker
	usersKeeper
	pinger
}

// Service is a stateless façade over the storage backend. It is safe for
// concurrent use as long as the storage serializes conflicting writes.
type Service struct {
	db storage
}

func New(db storage) *Service {
	return &Service{
		db: db,
	}
}

// GetAllUsers returns every stored user.
func (s *Service) GetAllUsers(ctx context.Context) ([]user.User, error) {
	return s.db.FindAll(ctx)
}

// GetActiveUsers returns the users whose Active flag is set.
func (s *Service) GetActiveUsers(ctx context.Context) ([]user.User, error) {
	return s.db.FindByActive(ctx, true)
}

// GetUserByID returns the user with the given id. A missing record is
// reported through the boolean result, never through an error.
func (s *Service) GetUserByID(ctx context.Context, id int64) (*user.User, bool, error) {
	return s.db.FindByID(ctx, id)
}

// GetUserByUsername returns the user with the given username. A missing
// record is reported through the boolean result, never through an error.
func (s *Service) GetUserByUsername(ctx context.Context, username string) (*user.User, bool, error) {
	return s.db.FindByUsername(ctx, username)
}

// CreateUser stores a new user after verifying that neither its username
// nor its email is taken. The username check runs first, so when both
// fields collide the username error is the one reported. Nothing is written
// when either check fails.
func (s *Service) CreateUser(ctx context.Context, usr *user.User) (*user.User, error) {
	usernameExists, err := s.db.IsUsernameExists(ctx, usr.Username)
	if err != nil {
		return nil, err
	}
	if usernameExists {
		return nil, models.ErrUsernameExists
	}

	emailExists, err := s.db.IsEmailExists(ctx, usr.Email)
	if err != nil {
		return nil, err
	}
	if emailExists {
		return nil, models.ErrEmailExists
	}

	return s.db.SaveUser(ctx, usr)
}

// UpdateUser replaces the four mutable fields of the stored record with the
// fields of details, keeping the id. The uniqueness checks exempt the
// record's own current values, so saving a user under its unchanged
// username or email never fails. Username is checked before email.
func (s *Service) UpdateUser(ctx context.Context, id int64, details *user.User) (*user.User, error) {
	existing, found, err := s.db.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, models.ErrUserNotFound
	}

	if existing.Username != details.Username {
		usernameExists, err := s.db.IsUsernameExists(ctx, details.Username)
		if err != nil {
			return nil, err
		}
		if usernameExists {
			return nil, models.ErrUsernameExists
		}
	}

	if existing.Email != details.Email {
		emailExists, err := s.db.IsEmailExists(ctx, details.Email)
		if err != nil {
			return nil, err
		}
		if emailExists {
			return nil, models.ErrEmailExists
		}
	}

	existing.Username = details.Username
	existing.Email = details.Email
	existing.FullName = details.FullName
	existing.Active = details.Active

	return s.db.SaveUser(ctx, existing)
}

// DeleteUser removes the user with the given id, failing with
// models.ErrUserNotFound when no such record exists.
func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	exists, err := s.db.IsUserExists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return models.ErrUserNotFound
	}

	return s.db.DeleteUser(ctx, id)
}

// Ping checks the health of the storage layer.
func (s *Service) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
