package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/sgronlund/latias-backend/internal/quiz/app"
)

func main() {
	// Missing .env is fine; production config comes from the environment.
	_ = godotenv.Load()

	cfg := app.LoadConfig()

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
