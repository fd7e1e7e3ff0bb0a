package memorystorage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/patric-chuzhbe/usersvc/internal/user"
)

func Test(t *testing.T) {
	t.Run("The base memorystorage package test", func(t *testing.T) {
		theStorage, err := New()
		assert.NoError(t, err, "The memorystorage.New() should not return error")

		saved, err := theStorage.SaveUser(
			context.Background(),
			&user.User{Username: "john_doe", Email: "john@example.com", Active: true},
		)
		assert.NoError(t, err, "The `theStorage.SaveUser()` should not return error")
		assert.Equal(t, int64(1), saved.ID)

		usr, found, err := theStorage.FindByUsername(context.Background(), "john_doe")
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, saved, usr)

		err = theStorage.Ping(context.Background())
		assert.NoError(t, err, "The memorystorage.Ping() should not return error")

		err = theStorage.Close()
		assert.NoError(t, err, "The memorystorage.Close() should not return error")
	})
}
