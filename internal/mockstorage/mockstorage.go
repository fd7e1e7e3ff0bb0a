// Package mockstorage provides a testify-based mock implementation of the
// storage contract. It is used for unit testing the service and the HTTP
// handlers by simulating storage behavior.
package mockstorage

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/patric-chuzhbe/usersvc/internal/user"
)

// StorageMock is a testify mock that implements all storage interfaces
// consumed by the service layer.
type StorageMock struct {
	mock.Mock
}

// FindAll mocks fetching every stored user.
func (m *StorageMock) FindAll(ctx context.Context) ([]user.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]user.User)
	return users, args.Error(1)
}

// FindByActive mocks fetching users filtered by their Active flag.
func (m *StorageMock) FindByActive(ctx context.Context, active bool) ([]user.User, error) {
	args := m.Called(ctx, active)
	users, _ := args.Get(0).([]user.User)
	return users, args.Error(1)
}

// FindByID mocks a keyed lookup by id.
func (m *StorageMock) FindByID(ctx context.Context, id int64) (*user.User, bool, error) {
	args := m.Called(ctx, id)
	usr, _ := args.Get(0).(*user.User)
	return usr, args.Bool(1), args.Error(2)
}

// FindByUsername mocks a keyed lookup by username.
func (m *StorageMock) FindByUsername(ctx context.Context, username string) (*user.User, bool, error) {
	args := m.Called(ctx, username)
	usr, _ := args.Get(0).(*user.User)
	return usr, args.Bool(1), args.Error(2)
}

// IsUsernameExists mocks the username uniqueness query.
func (m *StorageMock) IsUsernameExists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

// IsEmailExists mocks the email uniqueness query.
func (m *StorageMock) IsEmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// IsUserExists mocks the id existence query.
func (m *StorageMock) IsUserExists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// SaveUser mocks the upsert of a user record.
func (m *StorageMock) SaveUser(ctx context.Context, usr *user.User) (*user.User, error) {
	args := m.Called(ctx, usr)
	saved, _ := args.Get(0).(*user.User)
	return saved, args.Error(1)
}

// DeleteUser mocks removing a user record by id.
func (m *StorageMock) DeleteUser(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Ping mocks the storage health check.
func (m *StorageMock) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close mocks closing the storage and releasing resources.
func (m *StorageMock) Close() error {
	args := m.Called()
	return args.Error(0)
}
