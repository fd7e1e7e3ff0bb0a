package jsondb

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patric-chuzhbe/usersvc/internal/models"
	"github.com/patric-chuzhbe/usersvc/internal/user"
)

const (
	testDBFileName = "db_test.json"
)

func Test(t *testing.T) {
	t.Run("The base jsondb package test", func(t *testing.T) {
		theStorage, err := New(testDBFileName)
		require.NoError(t, err)
		require.NotNil(t, theStorage)
		defer func() {
			err := theStorage.Close()
			require.NoError(t, err)
			err = os.Remove(testDBFileName)
			require.NoError(t, err)
		}()

		saved, err := theStorage.SaveUser(
			context.Background(),
			&user.User{Username: "john_doe", Email: "john@example.com", FullName: "John Doe", Active: true},
		)
		assert.NoError(t, err, "The `theStorage.SaveUser()` should not return error")
		assert.Equal(t, int64(1), saved.ID, "The first saved user should get id 1")

		saved2, err := theStorage.SaveUser(
			context.Background(),
			&user.User{Username: "jane_doe", Email: "jane@example.com", FullName: "Jane Doe", Active: false},
		)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), saved2.ID)

		usr, found, err := theStorage.FindByID(context.Background(), saved.ID)
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, saved, usr)

		_, found, err = theStorage.FindByID(context.Background(), 10)
		assert.NoError(t, err)
		assert.False(t, found)

		usr, found, err = theStorage.FindByUsername(context.Background(), "jane_doe")
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, saved2, usr)

		exists, err := theStorage.IsUsernameExists(context.Background(), "john_doe")
		assert.NoError(t, err)
		assert.True(t, exists)

		exists, err = theStorage.IsEmailExists(context.Background(), "nobody@example.com")
		assert.NoError(t, err)
		assert.False(t, exists)

		exists, err = theStorage.IsUserExists(context.Background(), saved2.ID)
		assert.NoError(t, err)
		assert.True(t, exists)

		all, err := theStorage.FindAll(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, []user.User{*saved, *saved2}, all, "FindAll should return the users ordered by id")

		active, err := theStorage.FindByActive(context.Background(), true)
		assert.NoError(t, err)
		assert.Equal(t, []user.User{*saved}, active)

		_, err = theStorage.SaveUser(
			context.Background(),
			&user.User{Username: "john_doe", Email: "other@example.com", Active: true},
		)
		assert.ErrorIs(t, err, models.ErrUsernameExists, "A conflicting insert should be rejected by the storage")

		_, err = theStorage.SaveUser(
			context.Background(),
			&user.User{Username: "somebody", Email: "jane@example.com", Active: true},
		)
		assert.ErrorIs(t, err, models.ErrEmailExists)

		saved.FullName = "Johnny Doe"
		resaved, err := theStorage.SaveUser(context.Background(), saved)
		assert.NoError(t, err, "Replacing a record under its own id should not conflict")
		assert.Equal(t, saved, resaved)

		err = theStorage.DeleteUser(context.Background(), saved2.ID)
		assert.NoError(t, err)

		_, found, err = theStorage.FindByID(context.Background(), saved2.ID)
		assert.NoError(t, err)
		assert.False(t, found)

		err = theStorage.Ping(context.Background())
		assert.NoError(t, err, "The jsondb.Ping() should not return error")
	})
}

func TestReopenKeepsRecordsAndIDSequence(t *testing.T) {
	const fileName = "db_reopen_test.json"
	defer func() {
		err := os.Remove(fileName)
		require.NoError(t, err)
	}()

	theStorage, err := New(fileName)
	require.NoError(t, err)

	saved, err := theStorage.SaveUser(
		context.Background(),
		&user.User{Username: "john_doe", Email: "john@example.com", Active: true},
	)
	require.NoError(t, err)
	require.NoError(t, theStorage.Close())

	reopened, err := New(fileName)
	require.NoError(t, err)

	usr, found, err := reopened.FindByID(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, saved, usr)

	saved2, err := reopened.SaveUser(
		context.Background(),
		&user.User{Username: "jane_doe", Email: "jane@example.com", Active: true},
	)
	require.NoError(t, err)
	assert.Equal(t, saved.ID+1, saved2.ID, "The id sequence should survive a reopen")

	require.NoError(t, reopened.Close())
}
