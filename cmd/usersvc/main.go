package main

import (
	"log"

	"github.com/patric-chuzhbe/usersvc/internal/app"
)

func main() {
	theApp, err := app.New()
	if err != nil {
		log.Fatalf("unable to initialize the application: %v", err)
	}
	defer theApp.Close()

	if err := theApp.Run(); err != nil {
		log.Fatalf("application terminated with error: %v", err)
	}
}
