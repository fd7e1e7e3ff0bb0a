package examples

import (
	"context"
	"errors"
	"fmt"

	"github.com/patric-chuzhbe/usersvc/internal/db/memorystorage"
	"github.com/patric-chuzhbe/usersvc/internal/models"
	"github.com/patric-chuzhbe/usersvc/internal/service"
	"github.com/patric-chuzhbe/usersvc/internal/user"
)

func newUserService() *service.Service {
	theStorage, err := memorystorage.New()
	if err != nil {
		panic(err)
	}

	return service.New(theStorage)
}

func ExampleService_CreateUser() {
	userService := newUserService()

	created, err := userService.CreateUser(
		context.Background(),
		&user.User{Username: "john_doe", Email: "john@example.com", FullName: "John Doe", Active: true},
	)
	if err != nil {
		panic(err)
	}

	fmt.Println("ID:", created.ID)
	fmt.Println("Username:", created.Username)

	_, err = userService.CreateUser(
		context.Background(),
		&user.User{Username: "john_doe", Email: "other@example.com", Active: true},
	)
	fmt.Println("Duplicate username:", errors.Is(err, models.ErrUsernameExists))

	// Output:
	// ID: 1
	// Username: john_doe
	// Duplicate username: true
}

func ExampleService_UpdateUser() {
	userService := newUserService()

	created, err := userService.CreateUser(
		context.Background(),
		&user.User{Username: "jane_doe", Email: "jane@example.com", FullName: "Jane Doe", Active: true},
	)
	if err != nil {
		panic(err)
	}

	updated, err := userService.UpdateUser(
		context.Background(),
		created.ID,
		&user.User{Username: "jane_doe", Email: "jane.doe@example.com", FullName: "Jane Doe", Active: false},
	)
	if err != nil {
		panic(err)
	}

	fmt.Println("Email:", updated.Email)
	fmt.Println("Active:", updated.Active)

	// Output:
	// Email: jane.doe@example.com
	// Active: false
}

func ExampleService_DeleteUser() {
	userService := newUserService()

	created, err := userService.CreateUser(
		context.Background(),
		&user.User{Username: "john_doe", Email: "john@example.com", Active: true},
	)
	if err != nil {
		panic(err)
	}

	err = userService.DeleteUser(context.Background(), created.ID)
	fmt.Println("First delete error:", err)

	err = userService.DeleteUser(context.Background(), created.ID)
	fmt.Println("Second delete is not found:", errors.Is(err, models.ErrUserNotFound))

	// Output:
	// First delete error: <nil>
	// Second delete is not found: true
}
